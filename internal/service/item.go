package service

import (
	"Fridgella/internal/forms"
	"Fridgella/internal/model"
	"Fridgella/internal/repo"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExpiryScheduler планирует проверку срока годности перед сохранением записи
type ExpiryScheduler interface {
	ScheduleExpiryCheck(it *model.Item)
}

// ItemFilter фильтры списка из query-параметров
type ItemFilter struct {
	Category string
	Status   string
	Source   string
}

// ItemService CRUD продуктов пользователя
type ItemService struct {
	repo      repo.ItemRepository
	scheduler ExpiryScheduler
	logger    *zap.SugaredLogger
	now       func() time.Time
}

func NewItemService(r repo.ItemRepository, scheduler ExpiryScheduler, logger *zap.SugaredLogger) *ItemService {
	return &ItemService{repo: r, scheduler: scheduler, logger: logger, now: time.Now}
}

// CreateManual добавляет продукт вручную
func (s *ItemService) CreateManual(ctx context.Context, userID string, in forms.ItemInput) (*model.Item, error) {
	it, fields := s.buildItem(userID, in, model.SourceManual)
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	s.schedule(it)
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return it, nil
}

// ImportBill добавляет пачку продуктов из чека атомарно.
// Одна некорректная строка отклоняет всю пачку
func (s *ItemService) ImportBill(ctx context.Context, userID string, entries []forms.ItemInput) ([]model.Item, error) {
	if len(entries) == 0 {
		return nil, fieldError("items", "must contain at least one item")
	}

	items := make([]*model.Item, 0, len(entries))
	var fields []FieldError
	for i, in := range entries {
		it, errs := s.buildItem(userID, in, model.SourceBill)
		if len(errs) > 0 {
			fields = append(fields, withIndex(errs, i)...)
			continue
		}
		items = append(items, it)
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	for _, it := range items {
		s.schedule(it)
	}
	if err := s.repo.CreateBatch(ctx, items); err != nil {
		return nil, fmt.Errorf("import items: %w", err)
	}

	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		out = append(out, *it)
	}
	s.logger.Infow("bill imported", "user_id", userID, "count", len(out))
	return out, nil
}

func (s *ItemService) List(ctx context.Context, userID string, f ItemFilter) ([]model.Item, error) {
	var fields []FieldError
	if f.Status != "" && !model.ItemStatus(f.Status).Valid() {
		fields = append(fields, FieldError{Field: "status", Message: "must be one of fresh, expiring, expired"})
	}
	if f.Source != "" && f.Source != string(model.SourceManual) && f.Source != string(model.SourceBill) {
		fields = append(fields, FieldError{Field: "source", Message: "must be one of manual, bill"})
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	items, err := s.repo.List(ctx, userID, repo.ItemFilter{
		Category: strings.TrimSpace(f.Category),
		Status:   model.ItemStatus(f.Status),
		Source:   model.ItemSource(f.Source),
	})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (s *ItemService) Get(ctx context.Context, userID, id string) (*model.Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrItemNotFound
	}
	it, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// Update меняет только переданные поля и заново планирует проверку срока
func (s *ItemService) Update(ctx context.Context, userID, id string, in forms.ItemUpdate) (*model.Item, error) {
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		in.Name = &n
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	cur, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	next := *cur
	var fields []FieldError

	if in.Name != nil {
		updates["name"] = *in.Name
		next.Name = *in.Name
	}
	if in.Category != nil {
		c := strings.TrimSpace(*in.Category)
		if c == "" {
			c = model.DefaultCategory
		}
		updates["category"] = c
	}
	if in.Quantity != nil {
		updates["quantity"] = *in.Quantity
	}
	if in.PurchaseDate != nil {
		d, err := parseDate(*in.PurchaseDate)
		if err != nil {
			fields = append(fields, FieldError{Field: "purchaseDate", Message: "must be YYYY-MM-DD or RFC3339"})
		} else {
			updates["purchase_date"] = d
		}
	}
	if in.ExpiryDate != nil {
		if strings.TrimSpace(*in.ExpiryDate) == "" {
			next.ExpiryDate = nil
			updates["expiry_date"] = nil
		} else if d, err := parseDate(*in.ExpiryDate); err != nil {
			fields = append(fields, FieldError{Field: "expiryDate", Message: "must be YYYY-MM-DD or RFC3339"})
		} else {
			next.ExpiryDate = &d
			updates["expiry_date"] = d
		}
	}
	if in.Status != nil {
		updates["status"] = model.ItemStatus(*in.Status)
	}
	if in.Notified != nil {
		next.Notified = *in.Notified
		updates["notified"] = *in.Notified
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	// срок или флаг изменились: пересчитываем расписание
	if in.ExpiryDate != nil || in.Notified != nil {
		next.NotifyAt = nil
		s.schedule(&next)
		updates["notify_at"] = next.NotifyAt
	}

	if len(updates) == 0 {
		return cur, nil
	}
	updated, err := s.repo.Update(ctx, userID, id, updates)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("update item: %w", err)
	}
	return updated, nil
}

func (s *ItemService) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrItemNotFound
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if repo.IsNotFound(err) {
			return ErrItemNotFound
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (s *ItemService) schedule(it *model.Item) {
	if s.scheduler != nil {
		s.scheduler.ScheduleExpiryCheck(it)
	}
}

// buildItem валидирует вход и собирает модель с подставленными значениями по умолчанию
func (s *ItemService) buildItem(userID string, in forms.ItemInput, source model.ItemSource) (*model.Item, []FieldError) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)

	var fields []FieldError
	if err := validateStruct(in); err != nil {
		var ve *ValidationError
		if !errors.As(err, &ve) {
			return nil, []FieldError{{Field: "item", Message: err.Error()}}
		}
		fields = append(fields, ve.Fields...)
	}

	it := &model.Item{
		UserID:       userID,
		Name:         in.Name,
		Category:     in.Category,
		Quantity:     1,
		PurchaseDate: s.now().UTC(),
		Status:       model.StatusFresh,
		Source:       source,
	}
	if it.Category == "" {
		it.Category = model.DefaultCategory
	}
	if in.Quantity != nil {
		it.Quantity = *in.Quantity
	}
	if in.Status != "" {
		it.Status = model.ItemStatus(in.Status)
	}
	if in.Notified != nil {
		it.Notified = *in.Notified
	}
	if in.PurchaseDate != "" {
		d, err := parseDate(in.PurchaseDate)
		if err != nil {
			fields = append(fields, FieldError{Field: "purchaseDate", Message: "must be YYYY-MM-DD or RFC3339"})
		} else {
			it.PurchaseDate = d
		}
	}
	if in.ExpiryDate != "" {
		d, err := parseDate(in.ExpiryDate)
		if err != nil {
			fields = append(fields, FieldError{Field: "expiryDate", Message: "must be YYYY-MM-DD or RFC3339"})
		} else {
			it.ExpiryDate = &d
		}
	}
	return it, fields
}
