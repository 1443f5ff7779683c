package model

import "time"

// ItemStatus состояние продукта. Выставляется пользователем, из дат не вычисляется.
type ItemStatus string

const (
	StatusFresh    ItemStatus = "fresh"
	StatusExpiring ItemStatus = "expiring"
	StatusExpired  ItemStatus = "expired"
)

// Valid проверяет, что статус входит в перечисление.
func (s ItemStatus) Valid() bool {
	switch s {
	case StatusFresh, StatusExpiring, StatusExpired:
		return true
	}
	return false
}

// ItemSource откуда появилась запись.
type ItemSource string

const (
	SourceManual ItemSource = "manual"
	SourceBill   ItemSource = "bill"
)

// DefaultCategory подставляется, когда категория не указана.
const DefaultCategory = "Other"

// Item продукт пользователя со сроком годности.
type Item struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"type:uuid;not null;index" json:"userId"` // ссылка на users.id

	// Связи
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Name         string     `gorm:"not null" json:"name"`
	Category     string     `gorm:"not null;default:Other" json:"category"`
	Quantity     int        `gorm:"not null;default:1" json:"quantity"`
	PurchaseDate time.Time  `json:"purchaseDate"`
	ExpiryDate   *time.Time `gorm:"index" json:"expiryDate,omitempty"`
	Status       ItemStatus `gorm:"type:varchar(16);not null;default:fresh" json:"status"`
	Source       ItemSource `gorm:"type:varchar(16);not null;default:manual" json:"source"`

	// Notified переходит false→true не более одного раза за цикл срока годности.
	Notified bool `gorm:"not null;default:false" json:"notified"`
	// NotifyAt когда проверка срока должна сработать; nil: не запланировано.
	NotifyAt *time.Time `gorm:"index" json:"notifyAt,omitempty"`

	AddedAt   time.Time `gorm:"autoCreateTime" json:"addedAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
