package bootstrap

import (
	"fmt"

	"Fridgella/internal/cli/repo"
	fsrepo "Fridgella/internal/cli/repo/fs"
	reposqlite "Fridgella/internal/cli/repo/sqlite"
	"Fridgella/internal/config"
)

// SessionStore файловое хранилище сессии по настройкам клиента.
func SessionStore(cfg *config.Config) repo.SessionStore {
	return fsrepo.SessionFSStore{Path: cfg.TokenFile}
}

// OpenCache открывает кэш текущего пользователя, выполняет миграции и возвращает (repo, cleanup, error).
// cleanup необходимо вызвать после окончания работы, чтобы закрыть соединение с БД.
func OpenCache(cfg *config.Config, email string) (repo.CacheRepository, func() error, error) {
	if email == "" {
		return nil, nil, fmt.Errorf("нет активного пользователя: выполните login")
	}
	r, _, err := reposqlite.OpenForUser(cfg.ClientDBPath, email)
	if err != nil {
		return nil, nil, fmt.Errorf("open user cache: %w", err)
	}
	if err := r.Migrate(); err != nil {
		_ = r.Close()
		return nil, nil, fmt.Errorf("migrate user cache: %w", err)
	}
	cleanup := func() error { return r.Close() }
	return r, cleanup, nil
}
