package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LocalStore кладёт файлы в <dir>/avatars, сервер раздаёт их по /uploads
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) *LocalStore {
	if baseURL == "" {
		baseURL = "/uploads"
	}
	return &LocalStore{dir: dir, baseURL: baseURL}
}

func (s *LocalStore) Save(ctx context.Context, userID, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	avatars := filepath.Join(s.dir, "avatars")
	if err := os.MkdirAll(avatars, 0o755); err != nil {
		return "", fmt.Errorf("mkdir avatars: %w", err)
	}
	name := fmt.Sprintf("%s-%d%s", userID, time.Now().UnixNano(), Ext(contentType))
	if err := os.WriteFile(filepath.Join(avatars, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write avatar: %w", err)
	}
	return s.baseURL + "/avatars/" + name, nil
}
