// Package resettoken хранит использованные токены сброса пароля,
// чтобы каждая ссылка срабатывала только один раз.
package resettoken

import (
	"context"
	"sync"
	"time"
)

// Store регистрирует использование токена по его jti.
// MarkUsed возвращает true только при первом вызове для данного jti.
type Store interface {
	MarkUsed(ctx context.Context, jti string, ttl time.Duration) (bool, error)
}

// MemoryStore хранилище в памяти процесса, используется без Redis
type MemoryStore struct {
	mu   sync.Mutex
	used map[string]time.Time
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{used: make(map[string]time.Time), now: time.Now}
}

func (s *MemoryStore) MarkUsed(_ context.Context, jti string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	// чистим протухшие записи
	for k, exp := range s.used {
		if !exp.After(now) {
			delete(s.used, k)
		}
	}
	if _, ok := s.used[jti]; ok {
		return false, nil
	}
	s.used[jti] = now.Add(ttl)
	return true, nil
}
