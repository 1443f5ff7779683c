package service

import (
	"Fridgella/internal/analytics"
	"Fridgella/internal/model"
	"Fridgella/internal/repo"
	"context"
	"fmt"
	"time"
)

// SentCounter число отправленных уведомлений пользователя
type SentCounter interface {
	CountSent(ctx context.Context, userID string) (int64, error)
}

// AnalyticsService сводка по продуктам, чекам и уведомлениям
type AnalyticsService struct {
	items repo.ItemRepository
	bills repo.BillRepository
	sent  SentCounter
}

func NewAnalyticsService(items repo.ItemRepository, bills repo.BillRepository, sent SentCounter) *AnalyticsService {
	return &AnalyticsService{items: items, bills: bills, sent: sent}
}

func (s *AnalyticsService) Summary(ctx context.Context, userID string, now time.Time) (*analytics.Report, error) {
	items, err := s.items.List(ctx, userID, repo.ItemFilter{})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	bills, err := s.bills.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}

	report := analytics.Summarize(ItemsForReport(items), BillsForReport(bills), now.UTC())
	if s.sent != nil {
		n, err := s.sent.CountSent(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("count notifications: %w", err)
		}
		report.NotificationsSent = n
	}
	return &report, nil
}

func ItemsForReport(items []model.Item) []analytics.Item {
	out := make([]analytics.Item, 0, len(items))
	for _, it := range items {
		out = append(out, analytics.Item{
			Name:       it.Name,
			Category:   it.Category,
			Status:     string(it.Status),
			Source:     string(it.Source),
			Quantity:   it.Quantity,
			ExpiryDate: it.ExpiryDate,
		})
	}
	return out
}

func BillsForReport(bills []model.Bill) []analytics.Bill {
	out := make([]analytics.Bill, 0, len(bills))
	for _, b := range bills {
		out = append(out, analytics.Bill{Amount: b.Amount})
	}
	return out
}
