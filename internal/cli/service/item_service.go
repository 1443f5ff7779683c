package service

import (
	"Fridgella/internal/cli/api"
	"Fridgella/internal/cli/model"
	"Fridgella/internal/cli/repo"
	"Fridgella/internal/forms"
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// DataSource откуда взяты показанные данные
type DataSource string

const (
	SourceLive   DataSource = "live"
	SourceCache  DataSource = "cache"
	SourceSample DataSource = "sample"
)

// offline запрос не дошёл до сервера (сеть, таймаут), в отличие от ответа с ошибкой
func offline(err error) bool {
	var apiErr *api.Error
	return err != nil && !errors.As(err, &apiErr) && !errors.Is(err, context.Canceled) && !errors.Is(err, ErrNotLoggedIn)
}

// ItemFilter фильтр списка, совпадает с query-параметрами API
type ItemFilter struct {
	Category string
	Status   string
	Source   string
}

func (f ItemFilter) empty() bool { return f == ItemFilter{} }

func (f ItemFilter) query() string {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Source != "" {
		q.Set("source", f.Source)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (f ItemFilter) match(it model.Item) bool {
	return (f.Category == "" || strings.EqualFold(f.Category, it.Category)) &&
		(f.Status == "" || f.Status == it.Status) &&
		(f.Source == "" || f.Source == it.Source)
}

// ItemService продукты пользователя через API с откатом на локальный кэш
type ItemService struct {
	auth  *AuthService
	cache repo.CacheRepository
}

// NewItemService cache может быть nil, тогда офлайн-режим недоступен
func NewItemService(a *AuthService, cache repo.CacheRepository) *ItemService {
	return &ItemService{auth: a, cache: cache}
}

// List при недоступном сервере отдаёт закэшированный список
func (s *ItemService) List(ctx context.Context, f ItemFilter) ([]model.Item, DataSource, error) {
	c, _, err := s.auth.Client()
	if err != nil {
		return nil, "", err
	}

	var out struct {
		Items []model.Item `json:"items"`
	}
	err = c.Do(ctx, http.MethodGet, "/api/items"+f.query(), nil, &out)
	if err == nil {
		// кэшируем только полный список
		if s.cache != nil && f.empty() {
			_ = s.cache.ReplaceItems(out.Items)
		}
		return out.Items, SourceLive, nil
	}
	if !offline(err) || s.cache == nil {
		return nil, "", s.auth.checkAuth(err)
	}

	cached, cerr := s.cache.ListItems()
	if cerr != nil {
		return nil, "", err
	}
	res := make([]model.Item, 0, len(cached))
	for _, it := range cached {
		if f.match(it) {
			res = append(res, it)
		}
	}
	return res, SourceCache, nil
}

func (s *ItemService) Get(ctx context.Context, id string) (*model.Item, error) {
	var out struct {
		Item model.Item `json:"item"`
	}
	if err := s.do(ctx, http.MethodGet, "/api/items/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Item, nil
}

func (s *ItemService) Add(ctx context.Context, in forms.ItemInput) (*model.Item, error) {
	if err := invalid(checkItemInput(in)); err != nil {
		return nil, err
	}
	var out struct {
		Item model.Item `json:"item"`
	}
	if err := s.do(ctx, http.MethodPost, "/api/items/manual", in, &out); err != nil {
		return nil, err
	}
	return &out.Item, nil
}

func (s *ItemService) Edit(ctx context.Context, id string, upd forms.ItemUpdate) (*model.Item, error) {
	var problems []string
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		problems = append(problems, "name: must not be empty")
	}
	if upd.Quantity != nil && *upd.Quantity <= 0 {
		problems = append(problems, "quantity: must be greater than 0")
	}
	if err := invalid(problems); err != nil {
		return nil, err
	}
	var out struct {
		Item model.Item `json:"item"`
	}
	if err := s.do(ctx, http.MethodPut, "/api/items/"+url.PathEscape(id), upd, &out); err != nil {
		return nil, err
	}
	return &out.Item, nil
}

func (s *ItemService) Remove(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/api/items/"+url.PathEscape(id), nil, nil)
}

// Import загружает строки чека одной пачкой: сервер принимает все или ни одной
func (s *ItemService) Import(ctx context.Context, rows []forms.ItemInput) ([]model.Item, error) {
	if len(rows) == 0 {
		return nil, invalid([]string{"items: file contains no entries"})
	}
	var out struct {
		Items []model.Item `json:"items"`
	}
	if err := s.do(ctx, http.MethodPost, "/api/items/bill", rows, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (s *ItemService) do(ctx context.Context, method, path string, payload, out any) error {
	c, _, err := s.auth.Client()
	if err != nil {
		return err
	}
	return s.auth.checkAuth(c.Do(ctx, method, path, payload, out))
}

func checkItemInput(in forms.ItemInput) []string {
	var problems []string
	if strings.TrimSpace(in.Name) == "" {
		problems = append(problems, "name: is required")
	}
	if in.Quantity != nil && *in.Quantity <= 0 {
		problems = append(problems, "quantity: must be greater than 0")
	}
	return problems
}
