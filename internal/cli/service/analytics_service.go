package service

import (
	"Fridgella/internal/analytics"
	"Fridgella/internal/cli/model"
	"Fridgella/internal/cli/repo"
	"context"
	"errors"
	"net/http"
	"time"
)

// AnalyticsService сводка: живые данные, затем кэш, затем демонстрационный набор
type AnalyticsService struct {
	auth  *AuthService
	cache repo.CacheRepository
}

func NewAnalyticsService(a *AuthService, cache repo.CacheRepository) *AnalyticsService {
	return &AnalyticsService{auth: a, cache: cache}
}

func (s *AnalyticsService) Summary(ctx context.Context, now time.Time) (*analytics.Report, DataSource, error) {
	c, _, err := s.auth.Client()
	if err == nil {
		var out struct {
			Analytics analytics.Report `json:"analytics"`
		}
		err = c.Do(ctx, http.MethodGet, "/api/analytics", nil, &out)
		if err == nil {
			return &out.Analytics, SourceLive, nil
		}
		if !offline(err) {
			return nil, "", s.auth.checkAuth(err)
		}
	} else if !errors.Is(err, ErrNotLoggedIn) {
		return nil, "", err
	}

	if s.cache != nil {
		items, ierr := s.cache.ListItems()
		bills, berr := s.cache.ListBills()
		if ierr == nil && berr == nil && (len(items) > 0 || len(bills) > 0) {
			r := Summarize(items, bills, now)
			return &r, SourceCache, nil
		}
	}

	items, bills := SampleData(now)
	r := Summarize(items, bills, now)
	return &r, SourceSample, nil
}

// Summarize считает сводку по данным клиента тем же кодом, что и сервер
func Summarize(items []model.Item, bills []model.Bill, now time.Time) analytics.Report {
	ai := make([]analytics.Item, 0, len(items))
	for _, it := range items {
		ai = append(ai, analytics.Item{
			Name:       it.Name,
			Category:   it.Category,
			Status:     it.Status,
			Source:     it.Source,
			Quantity:   it.Quantity,
			ExpiryDate: it.ExpiryDate,
		})
	}
	ab := make([]analytics.Bill, 0, len(bills))
	for _, b := range bills {
		ab = append(ab, analytics.Bill{Amount: b.Amount})
	}
	return analytics.Summarize(ai, ab, now)
}
