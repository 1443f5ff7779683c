package service

import (
	"Fridgella/internal/auth"
	"Fridgella/internal/forms"
	"Fridgella/internal/mailer"
	"Fridgella/internal/model"
	"Fridgella/internal/repo"
	"Fridgella/internal/resettoken"
	"Fridgella/internal/storage"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput данные регистрации
type RegisterInput struct {
	Name     string  `json:"name" validate:"required,person_name"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,strong_password"`
	Phone    *string `json:"phone,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult пользователь и выданный ему токен
type LoginResult struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// UpdateProfileInput частичное обновление профиля: nil: поле не трогаем,
// пустая строка у phone/avatar очищает значение
type UpdateProfileInput struct {
	Name            *string `json:"name,omitempty" validate:"omitnil,person_name"`
	Phone           *string `json:"phone,omitempty"`
	Avatar          *string `json:"avatar,omitempty"`
	CurrentPassword *string `json:"currentPassword,omitempty"`
	NewPassword     *string `json:"newPassword,omitempty" validate:"omitnil,strong_password"`
}

type ResetPasswordInput struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,strong_password"`
}

// UserService регистрация, вход и управление профилем
type UserService struct {
	repo    repo.UserRepository
	tokens  *auth.TokenManager
	logger  *zap.SugaredLogger
	mailer  mailer.Mailer
	avatars storage.AvatarStore
	resets  resettoken.Store
	appURL  string
}

func NewUserService(r repo.UserRepository, tokens *auth.TokenManager, logger *zap.SugaredLogger) *UserService {
	return &UserService{
		repo:   r,
		tokens: tokens,
		logger: logger,
		mailer: mailer.NewLogMailer(logger),
		resets: resettoken.NewMemoryStore(),
		appURL: "http://localhost:3000",
	}
}

func (s *UserService) WithMailer(m mailer.Mailer) *UserService {
	s.mailer = m
	return s
}

func (s *UserService) WithAvatarStore(a storage.AvatarStore) *UserService {
	s.avatars = a
	return s
}

func (s *UserService) WithResetStore(r resettoken.Store) *UserService {
	s.resets = r
	return s
}

// WithAppURL адрес фронтенда для ссылок в письмах
func (s *UserService) WithAppURL(u string) *UserService {
	if u != "" {
		s.appURL = strings.TrimRight(u, "/")
	}
	return s
}

// checkPhone пустой номер допустим (очистка), непустой проверяется по формату
func checkPhone(err error, phone *string) error {
	if phone == nil || *phone == "" || forms.ValidPhone(*phone) {
		return err
	}
	return appendFieldError(err, "phone", "must be a valid phone number")
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// Register создаёт нового пользователя
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := checkPhone(validateStruct(in), in.Phone); err != nil {
		return nil, err
	}

	// проверяем, не занят ли email
	existing, err := s.repo.GetUserByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if in.Phone != nil && *in.Phone != "" {
		p := *in.Phone
		user.Phone = &p
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Login проверяет пароль и выдаёт токен
func (s *UserService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{User: user, Token: token, ExpiresAt: exp}, nil
}

// Me текущий пользователь
func (s *UserService) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateProfile применяет только переданные поля
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*model.User, error) {
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		in.Name = &n
	}
	if err := checkPhone(validateStruct(in), in.Phone); err != nil {
		return nil, err
	}

	user, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Phone != nil {
		if *in.Phone == "" {
			updates["phone"] = nil
		} else {
			updates["phone"] = *in.Phone
		}
	}
	if in.Avatar != nil {
		avatar, err := s.resolveAvatar(ctx, userID, *in.Avatar)
		if err != nil {
			return nil, err
		}
		if avatar == "" {
			updates["avatar"] = nil
		} else {
			updates["avatar"] = avatar
		}
	}
	if in.NewPassword != nil {
		if in.CurrentPassword == nil || *in.CurrentPassword == "" {
			return nil, fieldError("currentPassword", "is required to change password")
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*in.CurrentPassword)) != nil {
			return nil, ErrWrongPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updates["password_hash"] = string(hash)
	}

	if len(updates) == 0 {
		return user, nil
	}
	updated, err := s.repo.UpdateUser(ctx, userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

// resolveAvatar data URI сохраняет в хранилище, URL принимает как есть
func (s *UserService) resolveAvatar(ctx context.Context, userID, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if !storage.IsDataURI(raw) {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https" && !strings.HasPrefix(raw, "/")) {
			return "", fieldError("avatar", "must be an image URL or a data URI")
		}
		return raw, nil
	}

	contentType, data, err := storage.DecodeDataURI(raw)
	if err != nil {
		return "", fieldError("avatar", err.Error())
	}
	if s.avatars == nil {
		// без хранилища держим изображение inline
		return raw, nil
	}
	link, err := s.avatars.Save(ctx, userID, contentType, data)
	if err != nil {
		return "", fmt.Errorf("%w: save avatar: %v", ErrExternalService, err)
	}
	return link, nil
}

// ForgotPassword отправляет ссылку сброса. Для неизвестного email молча ничего не делает
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if !forms.ValidEmail(email) {
		return fieldError("email", "must be a valid email address")
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Infow("forgot password: unknown email")
			return nil
		}
		return fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil
	}

	token, err := s.tokens.IssueReset(user.ID, user.Email)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}
	link := s.appURL + "/reset-password?token=" + url.QueryEscape(token)
	body := fmt.Sprintf("Hi %s,\n\nUse the link below to reset your Fridgella password. It is valid for 15 minutes.\n\n%s\n\nIf you did not request this, ignore this email.", user.Name, link)

	// ошибка почты не раскрывается клиенту
	if err := s.mailer.Send(ctx, user.Email, "Reset your Fridgella password", body); err != nil {
		s.logger.Errorw("forgot password: mail failed", "user_id", user.ID, "error", err)
	}
	return nil
}

// ResetPassword меняет пароль по одноразовому токену
func (s *UserService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	if err := validateStruct(in); err != nil {
		return err
	}
	claims, err := s.tokens.ParseReset(in.Token)
	if err != nil {
		return ErrInvalidResetToken
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return ErrInvalidResetToken
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("get user: %w", err)
	}
	// email сменился после выдачи ссылки
	if !strings.EqualFold(user.Email, claims.Email) {
		return ErrInvalidResetToken
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return ErrInvalidResetToken
	}
	first, err := s.resets.MarkUsed(ctx, claims.JTI, ttl)
	if err != nil {
		return fmt.Errorf("mark reset token: %w", err)
	}
	if !first {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.repo.UpdateUser(ctx, user.ID, map[string]any{"password_hash": string(hash)}); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	s.logger.Infow("password reset", "user_id", user.ID)
	return nil
}
