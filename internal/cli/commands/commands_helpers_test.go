package commands

import (
	"Fridgella/internal/auth"
	"Fridgella/internal/config"
	"Fridgella/internal/handlers"
	"Fridgella/internal/notifier"
	"Fridgella/internal/repo"
	"Fridgella/internal/service"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// withTempConfig переопределяет пользовательские каталоги на время теста,
// чтобы артефакты (сессия/кэш) создавались в temp.
func withTempConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	db := filepath.Join(dir, "db")
	_ = os.MkdirAll(db, 0o700)
	return &config.Config{
		ServerURL:    serverURL,
		ClientDBPath: db,
		TokenFile:    filepath.Join(dir, "Fridgella", "session.json"),
	}
}

// startServer поднимает настоящий API поверх in-memory SQLite
func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := repo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	logger := zap.NewNop().Sugar()
	users := repo.NewUserRepository(db)
	items := repo.NewItemRepository(db)
	bills := repo.NewBillRepository(db)
	jobs := repo.NewNotificationRepository(db)
	tokens := auth.NewTokenManager("cli-test", time.Hour)
	engine := notifier.NewEngine(items, users, jobs, notifier.LogSender{Logger: logger}, logger)

	h := handlers.NewHandler(handlers.Services{
		Users:     service.NewUserService(users, tokens, logger),
		Items:     service.NewItemService(items, engine, logger),
		Bills:     service.NewBillService(bills),
		Analytics: service.NewAnalyticsService(items, bills, jobs),
	}, tokens, logger, &config.Config{UploadDir: t.TempDir()})

	ts := httptest.NewServer(h.Router)
	t.Cleanup(ts.Close)
	return ts
}
