package service

import (
	"Fridgella/internal/cli/model"
	"Fridgella/internal/cli/repo"
	"context"
	"net/http"
	"net/url"
	"strings"
)

// BillService чеки пользователя
type BillService struct {
	auth  *AuthService
	cache repo.CacheRepository
}

func NewBillService(a *AuthService, cache repo.CacheRepository) *BillService {
	return &BillService{auth: a, cache: cache}
}

func (s *BillService) List(ctx context.Context) ([]model.Bill, DataSource, error) {
	c, _, err := s.auth.Client()
	if err != nil {
		return nil, "", err
	}
	var out struct {
		Bills []model.Bill `json:"bills"`
	}
	err = c.Do(ctx, http.MethodGet, "/api/bills", nil, &out)
	if err == nil {
		if s.cache != nil {
			_ = s.cache.ReplaceBills(out.Bills)
		}
		return out.Bills, SourceLive, nil
	}
	if !offline(err) || s.cache == nil {
		return nil, "", s.auth.checkAuth(err)
	}
	cached, cerr := s.cache.ListBills()
	if cerr != nil {
		return nil, "", err
	}
	return cached, SourceCache, nil
}

func (s *BillService) Add(ctx context.Context, title string, amount float64) (*model.Bill, error) {
	title = strings.TrimSpace(title)
	var problems []string
	if title == "" {
		problems = append(problems, "title: is required")
	}
	if amount < 0 {
		problems = append(problems, "amount: must be 0 or greater")
	}
	if err := invalid(problems); err != nil {
		return nil, err
	}

	c, _, err := s.auth.Client()
	if err != nil {
		return nil, err
	}
	var out struct {
		Bill model.Bill `json:"bill"`
	}
	payload := map[string]any{"title": title, "amount": amount}
	if err := c.Do(ctx, http.MethodPost, "/api/bills", payload, &out); err != nil {
		return nil, s.auth.checkAuth(err)
	}
	return &out.Bill, nil
}

func (s *BillService) Remove(ctx context.Context, id string) error {
	c, _, err := s.auth.Client()
	if err != nil {
		return err
	}
	return s.auth.checkAuth(c.Do(ctx, http.MethodDelete, "/api/bills/"+url.PathEscape(id), nil, nil))
}
