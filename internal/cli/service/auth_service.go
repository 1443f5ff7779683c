package service

import (
	"Fridgella/internal/cli/api"
	"Fridgella/internal/cli/auth"
	"Fridgella/internal/cli/model"
	"Fridgella/internal/cli/repo"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrNotLoggedIn нет действующей сессии
var ErrNotLoggedIn = errors.New("not logged in: run `login <email> <password>` first")

// InvalidInputError проверка на клиенте не пройдена, запрос не отправлялся
type InvalidInputError struct {
	Problems []string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + strings.Join(e.Problems, "; ")
}

func invalid(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &InvalidInputError{Problems: problems}
}

// ProfileUpdate частичное обновление профиля, nil поля не отправляются
type ProfileUpdate struct {
	Name            *string `json:"name,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Avatar          *string `json:"avatar,omitempty"`
	CurrentPassword *string `json:"currentPassword,omitempty"`
	NewPassword     *string `json:"newPassword,omitempty"`
}

// AuthService владеет сессией CLI: только Login и Logout меняют её,
// остальные сервисы получают из него готовый клиент API
type AuthService struct {
	baseURL string
	store   repo.SessionStore
	now     func() time.Time
}

func NewAuthService(baseURL string, store repo.SessionStore) *AuthService {
	return &AuthService{baseURL: baseURL, store: store, now: time.Now}
}

// Current действующая сессия или ErrNotLoggedIn
func (s *AuthService) Current() (*model.Session, error) {
	sess, err := s.store.Load()
	if err != nil {
		if errors.Is(err, repo.ErrNoSession) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}
	if !sess.Active(s.now()) {
		return nil, ErrNotLoggedIn
	}
	return sess, nil
}

// Client клиент API с токеном текущей сессии
func (s *AuthService) Client() (*api.Client, *model.Session, error) {
	sess, err := s.Current()
	if err != nil {
		return nil, nil, err
	}
	return api.NewClient(s.baseURL, sess.Token), sess, nil
}

// checkAuth сервер отверг токен: сессия больше не действует
func (s *AuthService) checkAuth(err error) error {
	if api.IsUnauthorized(err) {
		_ = s.store.Clear()
		return fmt.Errorf("%w (session expired)", ErrNotLoggedIn)
	}
	return err
}

func (s *AuthService) Register(ctx context.Context, name, email, password string, phone *string) (*model.User, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	problems := auth.ValidateRegistration(name, email, password)
	if phone != nil {
		problems = append(problems, auth.ValidatePhone(*phone)...)
	}
	if err := invalid(problems); err != nil {
		return nil, err
	}

	payload := map[string]any{"name": name, "email": email, "password": password}
	if phone != nil && *phone != "" {
		payload["phone"] = *phone
	}
	var out struct {
		User model.User `json:"user"`
	}
	if err := api.NewClient(s.baseURL, "").Do(ctx, http.MethodPost, "/api/auth/register", payload, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Login получает токен и сохраняет новую сессию
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Session, error) {
	email = strings.TrimSpace(email)
	if err := invalid(auth.ValidateLogin(email, password)); err != nil {
		return nil, err
	}

	var out struct {
		Token     string     `json:"token"`
		ExpiresAt time.Time  `json:"expiresAt"`
		User      model.User `json:"user"`
	}
	payload := map[string]string{"email": email, "password": password}
	if err := api.NewClient(s.baseURL, "").Do(ctx, http.MethodPost, "/api/auth/login", payload, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, errors.New("server returned no token")
	}

	sess := model.Session{Token: out.Token, Email: out.User.Email, ExpiresAt: out.ExpiresAt}
	if sess.Email == "" {
		sess.Email = strings.ToLower(email)
	}
	if err := s.store.Save(sess); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return &sess, nil
}

// Logout очищает сессию; на сервере токены не отзываются
func (s *AuthService) Logout() error {
	return s.store.Clear()
}

func (s *AuthService) Me(ctx context.Context) (*model.User, error) {
	c, _, err := s.Client()
	if err != nil {
		return nil, err
	}
	var out struct {
		User model.User `json:"user"`
	}
	if err := c.Do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, s.checkAuth(err)
	}
	return &out.User, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*model.User, error) {
	var problems []string
	if upd.Phone != nil {
		problems = append(problems, auth.ValidatePhone(*upd.Phone)...)
	}
	if upd.NewPassword != nil {
		problems = append(problems, auth.ValidateNewPassword(*upd.NewPassword)...)
		if upd.CurrentPassword == nil || *upd.CurrentPassword == "" {
			problems = append(problems, "currentPassword: is required to change the password")
		}
	}
	if err := invalid(problems); err != nil {
		return nil, err
	}

	c, _, err := s.Client()
	if err != nil {
		return nil, err
	}
	var out struct {
		User model.User `json:"user"`
	}
	if err := c.Do(ctx, http.MethodPut, "/api/users/profile", upd, &out); err != nil {
		return nil, s.checkAuth(err)
	}
	return &out.User, nil
}

// ForgotPassword ответ сервера одинаков для известных и неизвестных адресов
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if !auth.ValidEmail(email) {
		return "", invalid([]string{"email: must be a valid email address"})
	}
	var out struct {
		Message string `json:"message"`
	}
	if err := api.NewClient(s.baseURL, "").Do(ctx, http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": email}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	problems := auth.ValidateNewPassword(newPassword)
	if strings.TrimSpace(token) == "" {
		problems = append(problems, "token: is required")
	}
	if err := invalid(problems); err != nil {
		return err
	}
	payload := map[string]string{"token": strings.TrimSpace(token), "newPassword": newPassword}
	return api.NewClient(s.baseURL, "").Do(ctx, http.MethodPost, "/api/auth/reset-password", payload, nil)
}
