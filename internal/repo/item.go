package repo

import (
	"Fridgella/internal/model"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemFilter необязательные фильтры списка продуктов.
type ItemFilter struct {
	Category string
	Status   model.ItemStatus
	Source   model.ItemSource
}

// ItemRepository определяет контракт доступа к Item.
// Все пользовательские методы ограничены условием user_id = userID.
type ItemRepository interface {
	Create(ctx context.Context, it *model.Item) error

	// CreateBatch вставляет все записи в одной транзакции: либо все, либо ни одной.
	CreateBatch(ctx context.Context, items []*model.Item) error

	// GetByID возвращает gorm.ErrRecordNotFound и для чужих записей.
	GetByID(ctx context.Context, userID, id string) (*model.Item, error)

	List(ctx context.Context, userID string, f ItemFilter) ([]model.Item, error)

	// Update меняет только переданные колонки.
	Update(ctx context.Context, userID, id string, updates map[string]any) (*model.Item, error)

	Delete(ctx context.Context, userID, id string) error

	// ListDue не уведомлённые записи, у которых наступил notify_at (по всем пользователям).
	ListDue(ctx context.Context, now time.Time, limit int) ([]model.Item, error)
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepository создаёт реализацию репозитория для Item.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, it *model.Item) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *itemRepo) CreateBatch(ctx context.Context, items []*model.Item) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, it := range items {
			if it.ID == "" {
				it.ID = uuid.NewString()
			}
			if err := tx.Create(it).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *itemRepo) GetByID(ctx context.Context, userID, id string) (*model.Item, error) {
	var it model.Item
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&it).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) List(ctx context.Context, userID string, f ItemFilter) ([]model.Item, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Source != "" {
		q = q.Where("source = ?", f.Source)
	}
	var items []model.Item
	// без срока годности: в конце списка
	if err := q.Order("CASE WHEN expiry_date IS NULL THEN 1 ELSE 0 END, expiry_date ASC, added_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepo) Update(ctx context.Context, userID, id string, updates map[string]any) (*model.Item, error) {
	var out *model.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur model.Item
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&cur).Error; err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&model.Item{}).
				Where("id = ? AND user_id = ?", id, userID).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		var fresh model.Item
		if err := tx.Where("id = ?", id).First(&fresh).Error; err != nil {
			return err
		}
		out = &fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *itemRepo) Delete(ctx context.Context, userID, id string) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Item{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]model.Item, error) {
	if limit <= 0 {
		limit = 100
	}
	var items []model.Item
	err := r.db.WithContext(ctx).
		Where("notified = ? AND notify_at IS NOT NULL AND notify_at <= ?", false, now.UTC()).
		Order("notify_at ASC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// IsNotFound сокращение для проверки отсутствия записи.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
