package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shantum/COH-ERP2-sub002/internal/admin"
	"github.com/shantum/COH-ERP2-sub002/pkg/auth"
	"github.com/shantum/COH-ERP2-sub002/pkg/config"
	"github.com/shantum/COH-ERP2-sub002/pkg/db/models"
	pkgerrors "github.com/shantum/COH-ERP2-sub002/pkg/errors"
	"github.com/shantum/COH-ERP2-sub002/pkg/logger"
	"github.com/shantum/COH-ERP2-sub002/pkg/security"
)

// invalidCredentialsMessage is deliberately identical for unknown emails,
// wrong passwords, and disabled accounts so login failures never confirm
// which accounts exist.
const invalidCredentialsMessage = "invalid email or password"

// userStore is the slice of the admin repository login needs.
type userStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
	RecordLogin(ctx context.Context, userID uuid.UUID) error
}

// sessionStore records one live session per issued token.
type sessionStore interface {
	Create(ctx context.Context, jti, userID string) error
	Revoke(ctx context.Context, jti string) error
}

// LoginInput carries the credentials from the login form.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is the issued token plus the signed-in profile.
type LoginResult struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      admin.UserView `json:"user"`
}

// Service signs back-office users in and out.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context, userID uuid.UUID) (*admin.UserView, error)
}

type service struct {
	users    userStore
	sessions sessionStore
	jwt      config.JWTConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds the auth service.
func NewService(users userStore, sessions sessionStore, jwt config.JWTConfig, logg *logger.Logger) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user store required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		users:    users,
		sessions: sessions,
		jwt:      jwt,
		logg:     logg,
		now:      time.Now,
	}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "email and password required")
	}

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load account")
	}

	matched, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !matched {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	now := s.now()
	jti := uuid.NewString()
	token, err := auth.MintAccessToken(s.jwt, now, auth.AccessTokenPayload{
		UserID:       user.ID,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		JTI:          jti,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}
	if err := s.sessions.Create(ctx, jti, user.ID.String()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create session")
	}

	if err := s.users.RecordLogin(ctx, user.ID); err != nil {
		// The sign-in already succeeded; a missed last_login_at is not
		// worth failing it over.
		s.logg.Warn(s.logg.WithUserID(ctx, user.ID.String()), "failed to record login time")
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Add(s.jwt.TokenTTL()),
		User:      *userView(user),
	}, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeBadRequest, "no session to revoke")
	}
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	return nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*admin.UserView, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account unavailable")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load account")
	}
	return userView(user), nil
}

func userView(user *models.AdminUser) *admin.UserView {
	return &admin.UserView{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		Permissions: admin.EffectivePermissions(user.Role, user.Overrides),
		CreatedAt:   user.CreatedAt,
	}
}
