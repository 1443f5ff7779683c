package forms

// ItemInput новый продукт (ручной ввод или строка чека)
type ItemInput struct {
	Name         string `json:"name" validate:"required,max=100"`
	Category     string `json:"category,omitempty" validate:"max=50"`
	Quantity     *int   `json:"quantity,omitempty" validate:"omitnil,gt=0"`
	PurchaseDate string `json:"purchaseDate,omitempty"`
	ExpiryDate   string `json:"expiryDate,omitempty"`
	Status       string `json:"status,omitempty" validate:"omitempty,item_status"`
	Notified     *bool  `json:"notified,omitempty"`
}

// ItemUpdate частичное обновление, nil означает «не менять».
// Пустая expiryDate снимает срок годности
type ItemUpdate struct {
	Name         *string `json:"name,omitempty" validate:"omitnil,min=1,max=100"`
	Category     *string `json:"category,omitempty" validate:"omitnil,max=50"`
	Quantity     *int    `json:"quantity,omitempty" validate:"omitnil,gt=0"`
	PurchaseDate *string `json:"purchaseDate,omitempty"`
	ExpiryDate   *string `json:"expiryDate,omitempty"`
	Status       *string `json:"status,omitempty" validate:"omitnil,item_status"`
	Notified     *bool   `json:"notified,omitempty"`
}
