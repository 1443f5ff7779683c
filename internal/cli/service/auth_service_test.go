package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuthService_LoginSavesSession(t *testing.T) {
	exp := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "jane@example.com", body["email"])
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true, "token": "tok-1", "expiresAt": exp,
			"user": map[string]any{"id": "u1", "email": "jane@example.com"},
		})
	}))
	defer ts.Close()

	store := &memSessions{}
	svc := NewAuthService(ts.URL, store)
	sess, err := svc.Login(context.Background(), " jane@example.com ", "Secret123!")
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "tok-1", sess.Token)
	if assert.NotNil(t, store.sess) {
		assert.Equal(t, "jane@example.com", store.sess.Email)
		assert.True(t, store.sess.ExpiresAt.Equal(exp))
	}

	cur, err := svc.Current()
	assert.NoError(t, err)
	assert.Equal(t, "tok-1", cur.Token)
}

func TestAuthService_LoginRejectedKeepsNoSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{"success": false, "message": "invalid email or password"})
	}))
	defer ts.Close()

	store := &memSessions{}
	_, err := NewAuthService(ts.URL, store).Login(context.Background(), "jane@example.com", "nope")
	assert.Error(t, err)
	assert.Nil(t, store.sess)
}

func TestAuthService_ClientSideValidation(t *testing.T) {
	// сервер не должен вызываться
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	}))
	defer ts.Close()

	svc := NewAuthService(ts.URL, &memSessions{})
	_, err := svc.Register(context.Background(), "J", "bad", "weak", nil)
	var inv *InvalidInputError
	if assert.ErrorAs(t, err, &inv) {
		assert.Len(t, inv.Problems, 3)
	}

	_, err = svc.Login(context.Background(), "bad", "")
	assert.ErrorAs(t, err, &inv)

	assert.Error(t, svc.ResetPassword(context.Background(), "", "weak"))
	_, err = svc.ForgotPassword(context.Background(), "nope")
	assert.Error(t, err)
}

func TestAuthService_Register(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "+15551234567", body["phone"])
		writeJSON(t, w, http.StatusCreated, map[string]any{
			"success": true, "user": map[string]any{"id": "u1", "name": "Jane Doe", "email": "jane@example.com"},
		})
	}))
	defer ts.Close()

	phone := "+15551234567"
	u, err := NewAuthService(ts.URL, &memSessions{}).Register(context.Background(), "Jane Doe", "jane@example.com", "Secret123!", &phone)
	if assert.NoError(t, err) {
		assert.Equal(t, "u1", u.ID)
	}
}

func TestAuthService_ExpiredSessionAndLogout(t *testing.T) {
	store := loggedIn("tok")
	store.sess.ExpiresAt = time.Now().Add(-time.Minute)
	svc := NewAuthService(deadURL, store)

	_, err := svc.Current()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	store = loggedIn("tok")
	svc = NewAuthService(deadURL, store)
	assert.NoError(t, svc.Logout())
	_, err = svc.Current()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestAuthService_UnauthorizedClearsSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer stale", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{"success": false, "message": "token expired"})
	}))
	defer ts.Close()

	store := loggedIn("stale")
	_, err := NewAuthService(ts.URL, store).Me(context.Background())
	assert.True(t, errors.Is(err, ErrNotLoggedIn))
	assert.Equal(t, 1, store.cleared)
	assert.Nil(t, store.sess)
}

func TestAuthService_UpdateProfileNeedsCurrentPassword(t *testing.T) {
	svc := NewAuthService(deadURL, loggedIn("tok"))
	np := "Another1!"
	_, err := svc.UpdateProfile(context.Background(), ProfileUpdate{NewPassword: &np})
	var inv *InvalidInputError
	assert.ErrorAs(t, err, &inv)
}
