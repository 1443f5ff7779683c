package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core).Sugar())
	t.Cleanup(func() { SetLogger(zap.NewNop().Sugar()) })
	return logs
}

func TestWithLogging_PassthroughAndFields(t *testing.T) {
	logs := observe(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("hello"))
	})
	h := chimw.RequestID(WithLogging(next))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/items", nil))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "hello", rr.Body.String())

	entries := logs.All()
	if !assert.Len(t, entries, 1) {
		return
	}
	e := entries[0]
	assert.Equal(t, zapcore.InfoLevel, e.Level)
	fields := e.ContextMap()
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/api/items", fields["uri"])
	assert.EqualValues(t, http.StatusCreated, fields["status"])
	assert.EqualValues(t, 5, fields["size"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestWithLogging_ServerErrorLevel(t *testing.T) {
	logs := observe(t)

	h := WithLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	entries := logs.FilterMessage("request failed").All()
	if !assert.Len(t, entries, 1) {
		return
	}
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	_, hasID := entries[0].ContextMap()["request_id"]
	assert.False(t, hasID)
}
