package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"Fridgella/internal/cli/api"
	"Fridgella/internal/cli/service"
	"Fridgella/internal/config"

	"github.com/stretchr/testify/assert"
)

type fakeCmd struct {
	name string
	err  error
}

func (f fakeCmd) Name() string        { return f.name }
func (f fakeCmd) Description() string { return "fake " + f.name }
func (f fakeCmd) Usage() string       { return f.name + " <arg>" }
func (f fakeCmd) Run(context.Context, *config.Config, []string) error {
	return f.err
}

// перехват вывода на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

func dispatch(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var code int
	out := withStdoutCapture(t, func() {
		code = Dispatch(context.Background(), &config.Config{}, args)
	})
	return code, out
}

func TestDispatcher_Help(t *testing.T) {
	code, out := dispatch(t)
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, out, "Fridgella CLI")
	for _, name := range []string{"login", "items", "item-add", "import", "analytics", "reset-password", "status"} {
		assert.Contains(t, out, name)
	}

	code, out = dispatch(t, "help")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Environment:")

	code, out = dispatch(t, "help", "LOGIN")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Usage: login")

	code, out = dispatch(t, "help", "nope")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, out, "Unknown command: nope")

	code, _ = dispatch(t, "no-such")
	assert.Equal(t, ExitUsage, code)
}

func TestDispatcher_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		out  string
	}{
		{name: "ok", err: nil, code: ExitOK},
		{name: "usage", err: ErrUsage, code: ExitUsage, out: "Usage: usage <arg>"},
		{name: "nosession", err: service.ErrNotLoggedIn, code: ExitAuth, out: "not logged in"},
		{name: "rejected", err: fmt.Errorf("list: %w", &api.Error{Status: http.StatusUnauthorized, Message: "token expired"}), code: ExitAuth, out: "login again"},
		{name: "invalid", err: &service.InvalidInputError{Problems: []string{"email: bad format"}}, code: ExitUsage, out: "  - email: bad format"},
		{name: "boom", err: errors.New("boom"), code: ExitError, out: "boom error: boom"},
		{name: "canceled", err: context.Canceled, code: ExitError, out: "interrupted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RegisterCmd(fakeCmd{name: tt.name, err: tt.err})
			defer delete(registry, tt.name)

			code, out := dispatch(t, tt.name)
			assert.Equal(t, tt.code, code)
			if tt.out != "" {
				assert.Contains(t, out, tt.out)
			}
		})
	}
}

func TestStatus_Run(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"status":"ok"}`))
	}))
	defer ts.Close()
	cfg := withTempConfig(t, ts.URL)

	var err error
	out := withStdoutCapture(t, func() { err = (statusCmd{}).Run(context.Background(), cfg, nil) })
	assert.NoError(t, err)
	assert.Contains(t, out, "(ok)")
	assert.Contains(t, out, "not logged in")

	assert.ErrorIs(t, (statusCmd{}).Run(context.Background(), cfg, []string{"extra"}), ErrUsage)
}

func TestStatus_Run_ServerProblems(t *testing.T) {
	handlers := map[string]http.HandlerFunc{
		"500": func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
		"bad json": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("{"))
		},
	}
	for name, h := range handlers {
		t.Run(name, func(t *testing.T) {
			ts := httptest.NewServer(h)
			defer ts.Close()
			err := (statusCmd{}).Run(context.Background(), withTempConfig(t, ts.URL), nil)
			assert.Error(t, err)
		})
	}
}
