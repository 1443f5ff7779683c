package model

import "time"

// User учётная запись владельца холодильника.
type User struct {
	ID           string  `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string  `gorm:"not null" json:"name"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"` // bcrypt, наружу не отдаётся
	Phone        *string `json:"phone,omitempty"`
	Avatar       *string `json:"avatar,omitempty"` // URL или data URI

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// HasPhone сообщает, есть ли у пользователя номер для SMS.
func (u *User) HasPhone() bool {
	return u != nil && u.Phone != nil && *u.Phone != ""
}
