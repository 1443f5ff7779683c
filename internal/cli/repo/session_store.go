package repo

import (
	"Fridgella/internal/cli/model"
	"errors"
)

// ErrNoSession сессия ещё не сохранялась или была очищена
var ErrNoSession = errors.New("no active session")

// SessionStore хранилище сессии CLI между запусками.
type SessionStore interface {
	Save(s model.Session) error
	Load() (*model.Session, error)
	Clear() error
}
