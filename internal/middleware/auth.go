package middleware

import (
	"Fridgella/internal/auth"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

type ctxKey string

const (
	userIDKey  ctxKey = "user_id"
	authErrKey ctxKey = "auth_error"
)

// WithAuth разбирает Bearer-токен и кладёт user_id в контекст.
// Запрос без токена проходит дальше анонимным, решение принимает RequireAuth
func WithAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				ctx = context.WithValue(ctx, authErrKey, auth.ErrTokenInvalid)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			userID, err := tokens.Parse(strings.TrimSpace(token))
			if err != nil {
				ctx = context.WithValue(ctx, authErrKey, err)
			} else {
				ctx = context.WithValue(ctx, userIDKey, userID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth пропускает только запросы с валидным токеном, иначе 401
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserIDFromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		msg := "missing token"
		if err, ok := r.Context().Value(authErrKey).(error); ok {
			msg = "invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = "token expired"
			}
		}
		writeError(w, http.StatusUnauthorized, msg)
	})
}

// writeError ответ об ошибке в общем формате API
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": msg})
}

// GetUserIDFromContext id пользователя, если запрос аутентифицирован
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}
