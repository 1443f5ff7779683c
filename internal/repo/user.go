package repo

import (
	"Fridgella/internal/model"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository доступ к учётным записям.
type UserRepository interface {
	// CreateUser сохраняет пользователя; ErrDuplicate, если email занят.
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	// GetUserByEmail ищет по email; gorm.ErrRecordNotFound, если нет.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	// UpdateUser применяет изменения колонок и возвращает актуальную запись.
	UpdateUser(ctx context.Context, id string, updates map[string]any) (*model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository создаёт реализацию UserRepository поверх gorm.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		// драйверы по-разному сообщают о нарушении unique: проверяем фактом
		var n int64
		if cErr := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", user.Email).Count(&n).Error; cErr == nil && n > 0 {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) UpdateUser(ctx context.Context, id string, updates map[string]any) (*model.User, error) {
	if len(updates) > 0 {
		tx := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
		if tx.Error != nil {
			var n int64
			if email, ok := updates["email"]; ok {
				if cErr := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ? AND id <> ?", email, id).Count(&n).Error; cErr == nil && n > 0 {
					return nil, ErrDuplicate
				}
			}
			return nil, tx.Error
		}
		if tx.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetUserByID(ctx, id)
}
