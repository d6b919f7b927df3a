package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shantum/COH-ERP2-sub002/pkg/config"
	"github.com/shantum/COH-ERP2-sub002/pkg/db"
	"github.com/shantum/COH-ERP2-sub002/pkg/db/models"
	"github.com/shantum/COH-ERP2-sub002/pkg/enums"
	pkgerrors "github.com/shantum/COH-ERP2-sub002/pkg/errors"
	"github.com/shantum/COH-ERP2-sub002/pkg/security"
)

const tempPasswordLength = 16

// UserView is the API shape of an admin account; the hash never leaves the
// service.
type UserView struct {
	ID          uuid.UUID       `json:"id"`
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	Role        enums.AdminRole `json:"role"`
	IsActive    bool            `json:"isActive"`
	LastLoginAt *time.Time      `json:"lastLoginAt,omitempty"`
	Permissions []Permission    `json:"permissions"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// CreateUserInput carries a new account request.
type CreateUserInput struct {
	Email    string
	Name     string
	Role     enums.AdminRole
	Password string
}

// UpdateUserInput carries a partial account edit. Nil fields are untouched.
type UpdateUserInput struct {
	Name     *string
	Role     *enums.AdminRole
	IsActive *bool
}

// OverrideInput is one requested permission override.
type OverrideInput struct {
	Permission Permission
	Allowed    bool
}

// Service manages back-office accounts and their permissions.
type Service interface {
	ListUsers(ctx context.Context) ([]UserView, error)
	GetUser(ctx context.Context, id uuid.UUID) (*UserView, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*UserView, error)
	UpdateUser(ctx context.Context, actorID, id uuid.UUID, input UpdateUserInput) (*UserView, error)
	DeleteUser(ctx context.Context, actorID, id uuid.UUID) error
	ReplaceOverrides(ctx context.Context, id uuid.UUID, overrides []OverrideInput) (*UserView, error)

	// VerifyAccess backs the auth middleware: the account must exist, be
	// active, and still carry the token's version.
	VerifyAccess(ctx context.Context, userID uuid.UUID, tokenVersion int) error
}

type service struct {
	repo     Repository
	tx       txRunner
	password config.PasswordConfig
}

// NewService builds the admin account service.
func NewService(repo Repository, tx txRunner, password config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("admin repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, password: password}, nil
}

func toView(user *models.AdminUser) *UserView {
	return &UserView{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		Permissions: EffectivePermissions(user.Role, user.Overrides),
		CreatedAt:   user.CreatedAt,
	}
}

func (s *service) ListUsers(ctx context.Context) ([]UserView, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	out := make([]UserView, 0, len(users))
	for i := range users {
		out = append(out, *toView(&users[i]))
	}
	return out, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*UserView, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return toView(user), nil
}

func (s *service) loadUser(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "user id required")
	}
	user, err := s.repo.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return user, nil
}

func (s *service) CreateUser(ctx context.Context, input CreateUserInput) (*UserView, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "email required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "name required")
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, fmt.Sprintf("unknown role %q", input.Role))
	}

	password := input.Password
	if password == "" {
		generated, err := security.GenerateTempPassword(tempPasswordLength)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate password")
		}
		password = generated
	}
	hash, err := security.HashPassword(password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.AdminUser{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hash,
		Role:         input.Role,
		IsActive:     true,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a user with that email already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
	return toView(user), nil
}

func (s *service) UpdateUser(ctx context.Context, actorID, id uuid.UUID, input UpdateUserInput) (*UserView, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	roleChanged := false

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "name must not be empty")
		}
		updates["name"] = name
	}
	if input.Role != nil && *input.Role != user.Role {
		if !input.Role.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeBadRequest, fmt.Sprintf("unknown role %q", *input.Role))
		}
		if user.Role.IsAdministrative() && !input.Role.IsAdministrative() {
			if err := s.guardLastAdmin(ctx, user, "demote"); err != nil {
				return nil, err
			}
		}
		updates["role"] = *input.Role
		roleChanged = true
	}
	if input.IsActive != nil && *input.IsActive != user.IsActive {
		if !*input.IsActive && user.Role.IsAdministrative() && user.IsActive {
			if err := s.guardLastAdmin(ctx, user, "deactivate"); err != nil {
				return nil, err
			}
		}
		updates["is_active"] = *input.IsActive
	}

	if len(updates) == 0 {
		return toView(user), nil
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpdateUser(ctx, id, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update user")
		}
		if roleChanged {
			if err := repo.BumpTokenVersion(ctx, id); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "bump token version")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return toView(updated), nil
}

func (s *service) DeleteUser(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return pkgerrors.New(pkgerrors.CodeBadRequest, "you cannot delete your own account")
	}
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return err
	}
	if user.Role.IsAdministrative() && user.IsActive {
		if err := s.guardLastAdmin(ctx, user, "delete"); err != nil {
			return err
		}
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user")
	}
	return nil
}

// guardLastAdmin rejects any operation that would leave zero active
// administrative accounts.
func (s *service) guardLastAdmin(ctx context.Context, user *models.AdminUser, action string) error {
	others, err := s.repo.CountOtherActiveAdmins(ctx, user.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count active admins")
	}
	if others == 0 {
		return pkgerrors.New(pkgerrors.CodeBadRequest, fmt.Sprintf("cannot %s the last active admin", action))
	}
	return nil
}

// ReplaceOverrides swaps the user's whole override set atomically: the old
// rows are deleted and the new ones inserted inside one transaction, so a
// failure leaves the previous set intact. The token version bumps so
// outstanding JWTs are orphaned.
func (s *service) ReplaceOverrides(ctx context.Context, id uuid.UUID, overrides []OverrideInput) (*UserView, error) {
	if _, err := s.loadUser(ctx, id); err != nil {
		return nil, err
	}

	seen := make(map[Permission]struct{}, len(overrides))
	rows := make([]models.PermissionOverride, 0, len(overrides))
	for _, o := range overrides {
		if !IsKnownPermission(o.Permission) {
			return nil, pkgerrors.New(pkgerrors.CodeBadRequest, fmt.Sprintf("unknown permission %q", o.Permission))
		}
		if _, dup := seen[o.Permission]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeBadRequest, fmt.Sprintf("duplicate permission %q", o.Permission))
		}
		seen[o.Permission] = struct{}{}
		rows = append(rows, models.PermissionOverride{
			ID:         uuid.New(),
			UserID:     id,
			Permission: string(o.Permission),
			Allowed:    o.Allowed,
		})
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteOverrides(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear overrides")
		}
		if err := repo.CreateOverrides(ctx, rows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store overrides")
		}
		return repo.BumpTokenVersion(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return toView(updated), nil
}

func (s *service) VerifyAccess(ctx context.Context, userID uuid.UUID, tokenVersion int) error {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "account unavailable")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load account")
	}
	if !user.IsActive {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "account disabled")
	}
	if user.TokenVersion != tokenVersion {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
	}
	return nil
}
