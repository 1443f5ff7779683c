package service

import (
	"Fridgella/internal/cli/model"
	"Fridgella/internal/cli/repo"
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

// memSessions SessionStore в памяти
type memSessions struct {
	sess    *model.Session
	cleared int
}

func (m *memSessions) Save(s model.Session) error {
	m.sess = &s
	return nil
}

func (m *memSessions) Load() (*model.Session, error) {
	if m.sess == nil {
		return nil, repo.ErrNoSession
	}
	s := *m.sess
	return &s, nil
}

func (m *memSessions) Clear() error {
	m.sess = nil
	m.cleared++
	return nil
}

// memCache CacheRepository в памяти
type memCache struct {
	items []model.Item
	bills []model.Bill
}

func (c *memCache) ReplaceItems(items []model.Item) error {
	c.items = append([]model.Item(nil), items...)
	return nil
}
func (c *memCache) ListItems() ([]model.Item, error) { return c.items, nil }
func (c *memCache) ReplaceBills(bills []model.Bill) error {
	c.bills = append([]model.Bill(nil), bills...)
	return nil
}
func (c *memCache) ListBills() ([]model.Bill, error) { return c.bills, nil }
func (c *memCache) Close() error                     { return nil }

func loggedIn(token string) *memSessions {
	return &memSessions{sess: &model.Session{Token: token, Email: "jane@example.com", ExpiresAt: time.Now().Add(time.Hour)}}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode: %v", err)
	}
}

// deadURL адрес, на котором заведомо никто не слушает
const deadURL = "http://127.0.0.1:1"
