package model

import "time"

// Bill чек покупки, нужен только для аналитики.
type Bill struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"type:uuid;not null;index" json:"userId"`
	User   *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Title  string  `gorm:"not null" json:"title"`
	Amount float64 `gorm:"not null" json:"amount"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
