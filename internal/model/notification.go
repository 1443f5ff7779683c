package model

import "time"

// NotificationStatus шаг задания на отправку напоминания.
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// ChannelSMS единственный канал доставки напоминаний.
const ChannelSMS = "sms"

// Notification журнал отправки напоминания об истечении срока.
// Создаётся в одной транзакции с переводом Item.Notified в true.
type Notification struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	ItemID string `gorm:"type:uuid;not null;index" json:"itemId"`
	Item   *Item  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	UserID string `gorm:"type:uuid;not null;index" json:"userId"`

	Channel   string             `gorm:"type:varchar(16);not null" json:"channel"`
	Recipient string             `gorm:"not null" json:"recipient"`
	Message   string             `gorm:"not null" json:"message"`
	Status    NotificationStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	Error     string             `json:"error,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	SentAt    *time.Time `json:"sentAt,omitempty"`
}
