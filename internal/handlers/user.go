package handlers

import (
	"Fridgella/internal/middleware"
	"Fridgella/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler регистрация, вход, профиль и сброс пароля
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger}
}

// Register регистрация пользователя
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, h.Logger, "Register", err)
		return
	}

	user, err := h.UserService.Register(r.Context(), req)
	if err != nil {
		writeError(w, h.Logger, "Register", err)
		return
	}

	h.Logger.Infow("user registered", "user_id", user.ID)
	writeOK(w, http.StatusCreated, map[string]any{"message": "registered", "user": user})
}

// Login вход и выдача токена
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginInput
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, h.Logger, "Login", err)
		return
	}

	res, err := h.UserService.Login(r.Context(), req)
	if err != nil {
		writeError(w, h.Logger, "Login", err)
		return
	}

	writeOK(w, http.StatusOK, map[string]any{
		"token":     res.Token,
		"expiresAt": res.ExpiresAt,
		"user":      res.User,
	})
}

// Me текущий пользователь
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	user, err := h.UserService.Me(r.Context(), userID)
	if err != nil {
		writeError(w, h.Logger, "Me", err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"user": user})
}

// UpdateProfile частичное обновление профиля
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req service.UpdateProfileInput
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, h.Logger, "UpdateProfile", err)
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		writeError(w, h.Logger, "UpdateProfile", err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"user": user})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword всегда отвечает одинаково, чтобы не раскрывать наличие email
func (h *UserHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, h.Logger, "ForgotPassword", err)
		return
	}

	if err := h.UserService.ForgotPassword(r.Context(), req.Email); err != nil {
		writeError(w, h.Logger, "ForgotPassword", err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"message": "if the email is registered, a reset link has been sent"})
}

func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req service.ResetPasswordInput
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, h.Logger, "ResetPassword", err)
		return
	}

	if err := h.UserService.ResetPassword(r.Context(), req); err != nil {
		writeError(w, h.Logger, "ResetPassword", err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"message": "password updated"})
}
