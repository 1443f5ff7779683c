package repo

import (
	"Fridgella/internal/model"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrClaimLost продукт уже уведомлён или больше не ждёт напоминания
// (его захватил другой обход либо пользователь изменил срок).
var ErrClaimLost = errors.New("item already notified or no longer due")

// NotificationRepository журнал напоминаний и единственное место,
// где флаг items.notified переводится в true.
type NotificationRepository interface {
	// Claim в одной транзакции переводит notified false→true, только если notify_at <= now,
	// перечитывает продукт и создаёт задание pending с текстом render(свежая запись).
	Claim(ctx context.Context, itemID string, now time.Time, recipient string, render func(*model.Item) string) (*model.Notification, error)

	// Postpone переносит notify_at созревшего и не уведомлённого продукта; until == nil снимает расписание.
	// Если продукт успели изменить, ничего не делает.
	Postpone(ctx context.Context, itemID string, now time.Time, until *time.Time) error

	// MarkSent фиксирует успешную отправку.
	MarkSent(ctx context.Context, id string, at time.Time) error

	// MarkFailed помечает задание failed, а продукт снова не уведомлённым и не запланированным.
	MarkFailed(ctx context.Context, id string, reason string) error

	CountSent(ctx context.Context, userID string) (int64, error)
}

// dueCond продукт всё ещё ждёт напоминания к моменту now
const dueCond = "id = ? AND notified = ? AND notify_at IS NOT NULL AND notify_at <= ?"

type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepository создаёт реализацию NotificationRepository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Claim(
	ctx context.Context,
	itemID string,
	now time.Time,
	recipient string,
	render func(*model.Item) string,
) (*model.Notification, error) {
	var n *model.Notification
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Item{}).
			Where(dueCond, itemID, false, now.UTC()).
			Update("notified", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrClaimLost
		}

		var it model.Item
		if err := tx.Where("id = ?", itemID).First(&it).Error; err != nil {
			return err
		}
		n = &model.Notification{
			ID:        uuid.NewString(),
			ItemID:    it.ID,
			UserID:    it.UserID,
			Channel:   model.ChannelSMS,
			Recipient: recipient,
			Message:   render(&it),
			Status:    model.NotificationPending,
		}
		return tx.Create(n).Error
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *notificationRepo) Postpone(ctx context.Context, itemID string, now time.Time, until *time.Time) error {
	var value any
	if until != nil {
		value = until.UTC()
	}
	return r.db.WithContext(ctx).Model(&model.Item{}).
		Where(dueCond, itemID, false, now.UTC()).
		Update("notify_at", value).Error
}

func (r *notificationRepo) MarkSent(ctx context.Context, id string, at time.Time) error {
	at = at.UTC()
	tx := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": model.NotificationSent, "sent_at": at})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n model.Notification
		if err := tx.Where("id = ?", id).First(&n).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Notification{}).
			Where("id = ?", id).
			Updates(map[string]any{"status": model.NotificationFailed, "error": reason}).Error; err != nil {
			return err
		}
		// повторной попытки нет: снимаем и флаг, и расписание до следующего изменения продукта
		return tx.Model(&model.Item{}).
			Where("id = ?", n.ItemID).
			Updates(map[string]any{"notified": false, "notify_at": nil}).Error
	})
}

func (r *notificationRepo) CountSent(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND status = ?", userID, model.NotificationSent).
		Count(&n).Error
	return n, err
}
