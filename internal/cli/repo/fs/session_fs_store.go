package fs

import (
	"Fridgella/internal/cli/model"
	"Fridgella/internal/cli/repo"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// SessionFSStore файловое хранилище сессии CLI (JSON, права 0600).
type SessionFSStore struct {
	// Path путь к файлу; пустой означает <UserConfigDir>/Fridgella/session.json
	Path string
}

var _ repo.SessionStore = SessionFSStore{}

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "Fridgella"), nil
}

func (s SessionFSStore) path() (string, error) {
	if s.Path != "" {
		return s.Path, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

// Save сохраняет сессию, создавая каталог при необходимости.
func (s SessionFSStore) Save(sess model.Session) error {
	if strings.TrimSpace(sess.Token) == "" {
		return errors.New("empty session token")
	}
	p, err := s.path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return err
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// Load читает сессию; отсутствие файла даёт repo.ErrNoSession.
func (s SessionFSStore) Load() (*model.Session, error) {
	p, err := s.path()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, repo.ErrNoSession
		}
		return nil, err
	}
	var sess model.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, err
	}
	// токен мог быть отредактирован вручную
	sess.Token = strings.TrimSpace(sess.Token)
	if sess.Token == "" {
		return nil, repo.ErrNoSession
	}
	return &sess, nil
}

// Clear удаляет файл сессии; повторный вызов не ошибка.
func (s SessionFSStore) Clear() error {
	p, err := s.path()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
