package model

import "time"

// Item продукт в том виде, в каком его отдаёт API
type Item struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Quantity     int        `json:"quantity"`
	PurchaseDate time.Time  `json:"purchaseDate"`
	ExpiryDate   *time.Time `json:"expiryDate,omitempty"`
	Status       string     `json:"status"`
	Source       string     `json:"source"`
	Notified     bool       `json:"notified"`
	AddedAt      time.Time  `json:"addedAt"`
}

// Bill запись о покупке
type Bill struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// User профиль текущего пользователя
type User struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  *string `json:"phone,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}
