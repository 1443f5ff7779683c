package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"Fridgella/internal/cli/bootstrap"
	"Fridgella/internal/config"
)

func run(t *testing.T, cfg *config.Config, c Command, args ...string) (string, error) {
	t.Helper()
	var err error
	out := withStdoutCapture(t, func() { err = c.Run(context.Background(), cfg, args) })
	return out, err
}

func mustRun(t *testing.T, cfg *config.Config, c Command, args ...string) string {
	t.Helper()
	out, err := run(t, cfg, c, args...)
	if err != nil {
		t.Fatalf("%s %v: %v\n%s", c.Name(), args, err, out)
	}
	return out
}

func TestRegisterLoginAndSession(t *testing.T) {
	ts := startServer(t)
	cfg := withTempConfig(t, ts.URL)

	out := mustRun(t, cfg, registerCmd{}, "Jane Doe", "jane@example.com", "Secret123!")
	if !strings.Contains(out, "Registered Jane Doe") {
		t.Fatalf("unexpected register output: %s", out)
	}
	// повторная регистрация: конфликт
	if _, err := run(t, cfg, registerCmd{}, "Jane Doe", "jane@example.com", "Secret123!"); err == nil {
		t.Fatalf("duplicate register must fail")
	}

	if _, err := run(t, cfg, loginCmd{}, "jane@example.com", "Wrong123!"); err == nil {
		t.Fatalf("login with wrong password must fail")
	}
	if _, err := os.Stat(cfg.TokenFile); !os.IsNotExist(err) {
		t.Fatalf("failed login must not write a session")
	}

	out = mustRun(t, cfg, loginCmd{}, "jane@example.com", "Secret123!")
	if !strings.Contains(out, "Logged in as jane@example.com") {
		t.Fatalf("unexpected login output: %s", out)
	}
	if _, err := os.Stat(cfg.TokenFile); err != nil {
		t.Fatalf("session not saved: %v", err)
	}
	// для пользователя создаётся кэш: CLIENT_DB_PATH/<email>/client.sqlite
	if _, err := os.Stat(filepath.Join(cfg.ClientDBPath, "jane@example.com", "client.sqlite")); err != nil {
		t.Fatalf("user cache not created: %v", err)
	}

	out = mustRun(t, cfg, meCmd{})
	if !strings.Contains(out, "jane@example.com") || !strings.Contains(out, "no SMS reminders") {
		t.Fatalf("unexpected me output: %s", out)
	}

	mustRun(t, cfg, logoutCmd{})
	if _, err := run(t, cfg, meCmd{}); err == nil {
		t.Fatalf("me after logout must fail")
	}
}

func TestRegister_ClientSideValidationAndUsage(t *testing.T) {
	cfg := withTempConfig(t, "http://127.0.0.1:1")
	_, err := run(t, cfg, registerCmd{}, "J", "nope", "weak")
	if err == nil || !strings.Contains(err.Error(), "invalid input") {
		t.Fatalf("expected client-side validation error, got %v", err)
	}
	if _, err := run(t, cfg, registerCmd{}, "only-name"); err != ErrUsage {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
}

func login(t *testing.T, cfg *config.Config) {
	t.Helper()
	mustRun(t, cfg, registerCmd{}, "Jane Doe", "jane@example.com", "Secret123!")
	mustRun(t, cfg, loginCmd{}, "jane@example.com", "Secret123!")
}

func TestItemsLifecycle(t *testing.T) {
	ts := startServer(t)
	cfg := withTempConfig(t, ts.URL)
	login(t, cfg)

	out := mustRun(t, cfg, itemsCmd{})
	if !strings.Contains(out, "No items") {
		t.Fatalf("expected empty list, got: %s", out)
	}

	out = mustRun(t, cfg, itemAddCmd{}, "-category", "Dairy", "-qty", "2", "-expires", "2030-01-10", "Whole", "Milk")
	if !strings.Contains(out, "Whole Milk") || !strings.Contains(out, "manual") || !strings.Contains(out, "2030-01-10") {
		t.Fatalf("unexpected item-add output: %s", out)
	}
	id := fieldValue(out, "id:")
	if id == "" {
		t.Fatalf("no id in output: %s", out)
	}

	out = mustRun(t, cfg, itemEditCmd{}, "-status", "expiring", "-qty", "1", id)
	if !strings.Contains(out, "expiring") || !strings.Contains(out, "quantity:  1") {
		t.Fatalf("unexpected item-edit output: %s", out)
	}
	if _, err := run(t, cfg, itemEditCmd{}, id); err != ErrUsage {
		t.Fatalf("item-edit without flags must be ErrUsage, got %v", err)
	}

	out = mustRun(t, cfg, itemsCmd{}, "-category", "Dairy")
	if !strings.Contains(out, "Whole Milk") || !strings.Contains(out, "Total: 1") {
		t.Fatalf("unexpected items output: %s", out)
	}

	mustRun(t, cfg, itemRmCmd{}, id)
	if _, err := run(t, cfg, itemGetCmd{}, id); err == nil {
		t.Fatalf("deleted item must not be found")
	}
}

func TestItemsOfflineFromCache(t *testing.T) {
	ts := startServer(t)
	cfg := withTempConfig(t, ts.URL)
	login(t, cfg)
	mustRun(t, cfg, itemAddCmd{}, "Cheese")
	mustRun(t, cfg, itemsCmd{}) // наполняет кэш

	ts.Close()
	out := mustRun(t, cfg, itemsCmd{})
	if !strings.Contains(out, "cached") || !strings.Contains(out, "Cheese") {
		t.Fatalf("expected cached list, got: %s", out)
	}

	out = mustRun(t, cfg, analyticsCmd{})
	if !strings.Contains(out, "cached data") || !strings.Contains(out, "Items:          1") {
		t.Fatalf("expected analytics from cache, got: %s", out)
	}
}

func TestImport(t *testing.T) {
	ts := startServer(t)
	cfg := withTempConfig(t, ts.URL)
	login(t, cfg)
	dir := t.TempDir()

	good := filepath.Join(dir, "bill.json")
	_ = os.WriteFile(good, []byte(`[{"name":"Bread","expiryDate":"2030-02-01"},{"name":"Eggs","quantity":12}]`), 0o600)
	out := mustRun(t, cfg, importCmd{}, good)
	if !strings.Contains(out, "Imported 2 items") || !strings.Contains(out, "bill") {
		t.Fatalf("unexpected import output: %s", out)
	}

	// одна нечитаемая строка: ничего не отправляется
	bad := filepath.Join(dir, "bad.json")
	_ = os.WriteFile(bad, []byte(`{"items":[{"name":"Apples"},{"name":42}]}`), 0o600)
	_, err := run(t, cfg, importCmd{}, bad)
	if err == nil || !strings.Contains(err.Error(), "#1") {
		t.Fatalf("expected malformed entry #1, got %v", err)
	}

	// невалидная строка отклоняется сервером целиком
	invalid := filepath.Join(dir, "invalid.json")
	_ = os.WriteFile(invalid, []byte(`[{"name":"Apples"},{"name":""}]`), 0o600)
	if _, err := run(t, cfg, importCmd{}, invalid); err == nil {
		t.Fatalf("expected server-side rejection")
	}

	out = mustRun(t, cfg, itemsCmd{}, "-source", "bill")
	if !strings.Contains(out, "Total: 2") {
		t.Fatalf("only the first import must be stored, got: %s", out)
	}
}

func TestBillsAndAnalytics(t *testing.T) {
	ts := startServer(t)
	cfg := withTempConfig(t, ts.URL)
	login(t, cfg)

	out := mustRun(t, cfg, billAddCmd{}, "Groceries", "42,50")
	if !strings.Contains(out, "42.50") {
		t.Fatalf("unexpected bill-add output: %s", out)
	}
	if _, err := run(t, cfg, billAddCmd{}, "Groceries", "abc"); err != ErrUsage {
		t.Fatalf("expected ErrUsage for bad amount, got %v", err)
	}
	out = mustRun(t, cfg, billsCmd{})
	if !strings.Contains(out, "Total: 1 bills, 42.50") {
		t.Fatalf("unexpected bills output: %s", out)
	}

	mustRun(t, cfg, itemAddCmd{}, "-category", "Dairy", "Milk")
	out = mustRun(t, cfg, analyticsCmd{})
	if strings.Contains(out, "sample") || !strings.Contains(out, "Dairy") || !strings.Contains(out, "SMS sent") {
		t.Fatalf("expected live analytics, got: %s", out)
	}
}

func TestAnalytics_SampleWhenLoggedOut(t *testing.T) {
	cfg := withTempConfig(t, "http://127.0.0.1:1")
	out := mustRun(t, cfg, analyticsCmd{})
	if !strings.Contains(out, "sample dataset") || !strings.Contains(out, "Items:          6") {
		t.Fatalf("expected sample analytics, got: %s", out)
	}
}

func TestProtectedCommandsRequireLogin(t *testing.T) {
	ts := startServer(t)
	cfg := withTempConfig(t, ts.URL)
	for _, c := range []Command{itemsCmd{}, billsCmd{}, meCmd{}} {
		if _, err := run(t, cfg, c); err == nil || !strings.Contains(err.Error(), "not logged in") {
			t.Fatalf("%s: expected not logged in, got %v", c.Name(), err)
		}
	}
	// без сессии кэш не открывается
	if _, _, err := bootstrap.OpenCache(cfg, ""); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseBillFile(t *testing.T) {
	rows, err := parseBillFile([]byte(" [{\"name\":\"A\"}] "))
	if err != nil || len(rows) != 1 || rows[0].Name != "A" {
		t.Fatalf("array form: %v %+v", err, rows)
	}
	rows, err = parseBillFile([]byte(`{"items":[{"name":"B","quantity":3}]}`))
	if err != nil || len(rows) != 1 || *rows[0].Quantity != 3 {
		t.Fatalf("wrapped form: %v %+v", err, rows)
	}
	if _, err := parseBillFile([]byte(`nope`)); err == nil {
		t.Fatalf("expected error for garbage")
	}
	_, err = parseBillFile([]byte(`[1, {"name":"ok"}, "x"]`))
	if err == nil || !strings.Contains(err.Error(), "#0") || !strings.Contains(err.Error(), "#2") {
		t.Fatalf("expected all malformed rows listed, got %v", err)
	}
}

func TestAvatarValue(t *testing.T) {
	v, err := avatarValue("https://cdn.example.com/a.png")
	if err != nil || v != "https://cdn.example.com/a.png" {
		t.Fatalf("url must pass through: %v %q", err, v)
	}
	p := filepath.Join(t.TempDir(), "a.png")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	_ = os.WriteFile(p, png, 0o600)
	v, err = avatarValue(p)
	if err != nil || !strings.HasPrefix(v, "data:image/png;base64,") {
		t.Fatalf("file must become data URI: %v %q", err, v)
	}
	txt := filepath.Join(t.TempDir(), "a.txt")
	_ = os.WriteFile(txt, []byte("hello"), 0o600)
	if _, err := avatarValue(txt); err == nil {
		t.Fatalf("non-image must be rejected")
	}
}

// fieldValue значение из строки вида "  key: value"
func fieldValue(out, key string) string {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, key) {
			return strings.TrimSpace(strings.TrimPrefix(line, key))
		}
	}
	return ""
}
