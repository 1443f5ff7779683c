package repo

import (
	"Fridgella/internal/model"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BillRepository доступ к чекам пользователя.
type BillRepository interface {
	Create(ctx context.Context, b *model.Bill) error
	List(ctx context.Context, userID string) ([]model.Bill, error)
	Delete(ctx context.Context, userID, id string) error
}

type billRepo struct {
	db *gorm.DB
}

// NewBillRepository создаёт реализацию репозитория для Bill.
func NewBillRepository(db *gorm.DB) BillRepository {
	return &billRepo{db: db}
}

func (r *billRepo) Create(ctx context.Context, b *model.Bill) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *billRepo) List(ctx context.Context, userID string) ([]model.Bill, error) {
	var bills []model.Bill
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *billRepo) Delete(ctx context.Context, userID, id string) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Bill{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
