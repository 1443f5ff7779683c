package service

import (
	"Fridgella/internal/model"
	"Fridgella/internal/repo"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type BillInput struct {
	Title  string   `json:"title" validate:"required,max=200"`
	Amount *float64 `json:"amount" validate:"required,gte=0"`
}

// BillService чеки пользователя; обновления у чека нет
type BillService struct {
	repo repo.BillRepository
}

func NewBillService(r repo.BillRepository) *BillService {
	return &BillService{repo: r}
}

func (s *BillService) Create(ctx context.Context, userID string, in BillInput) (*model.Bill, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	b := &model.Bill{UserID: userID, Title: in.Title, Amount: *in.Amount}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}
	return b, nil
}

func (s *BillService) List(ctx context.Context, userID string) ([]model.Bill, error) {
	bills, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return bills, nil
}

func (s *BillService) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrBillNotFound
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if repo.IsNotFound(err) {
			return ErrBillNotFound
		}
		return fmt.Errorf("delete bill: %w", err)
	}
	return nil
}
