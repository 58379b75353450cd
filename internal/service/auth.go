package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/eventhub-server/internal/logger"
	"github.com/dtroode/eventhub-server/internal/model"
)

// AvatarRemover deletes stored avatars when an account goes away.
type AvatarRemover interface {
	Remove(ctx context.Context, userID uuid.UUID) error
}

type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenService *TokenService
	avatars      AvatarRemover
	logger       *logger.Logger

	decoyOnce sync.Once
	decoyHash string
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenService *TokenService,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

// WithAvatarRemover makes account deletion also remove the user's avatar.
func (a *Auth) WithAvatarRemover(r AvatarRemover) *Auth {
	a.avatars = r
	return a
}

func (a *Auth) Signup(ctx context.Context, params model.SignupParams) (model.User, error) {
	name := strings.TrimSpace(params.Name)
	email := model.NormalizeEmail(params.Email)
	if name == "" || email == "" || params.Password == "" {
		return model.User{}, model.NewValidationError("Missing fields")
	}

	a.logger.Debug("Auth service: starting user registration", "email", email)

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, model.ErrConflict) {
		a.logger.Info("Auth service: user already exists", "email", email)
		return model.User{}, model.NewConflictError("User exists")
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registration completed successfully",
		"email", email,
		"user_id", user.ID)

	return user, nil
}

// Login verifies credentials and issues a session. Unknown email and wrong
// password both return model.ErrInvalidCredentials.
func (a *Auth) Login(ctx context.Context, params model.LoginParams) (model.Session, error) {
	email := model.NormalizeEmail(params.Email)
	if email == "" || params.Password == "" {
		return model.Session{}, model.NewValidationError("Missing fields")
	}

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		// Burn the same bcrypt time as a real comparison.
		a.hasher.Verify(params.Password, a.decoy())
		a.logger.Info("Auth service: login rejected", "email", email)
		return model.Session{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(params.Password, user.PasswordHash) {
		a.logger.Info("Auth service: login rejected", "email", email)
		return model.Session{}, model.ErrInvalidCredentials
	}

	token, expiresAt, err := a.tokenService.Issue(user)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login completed successfully",
		"email", email,
		"user_id", user.ID)

	return model.Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (a *Auth) CurrentUser(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// UpdateProfile changes name and email. The returned session carries a
// fresh token because the email claim changed.
func (a *Auth) UpdateProfile(ctx context.Context, userID uuid.UUID, params model.ProfileParams) (model.Session, error) {
	name := strings.TrimSpace(params.Name)
	email := model.NormalizeEmail(params.Email)
	if name == "" || email == "" {
		return model.Session{}, model.NewValidationError("Name and email are required")
	}

	user, err := a.userStore.UpdateProfile(ctx, userID, name, email)
	if errors.Is(err, model.ErrConflict) {
		return model.Session{}, model.NewConflictError("Email already in use")
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to update profile: %w", err)
	}

	token, expiresAt, err := a.tokenService.Issue(user)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: profile updated", "user_id", userID)

	return model.Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (a *Auth) ChangePassword(ctx context.Context, userID uuid.UUID, params model.ChangePasswordParams) error {
	if params.CurrentPassword == "" || params.NewPassword == "" {
		return model.NewValidationError("Current and new passwords are required")
	}

	user, err := a.userStore.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if !a.hasher.Verify(params.CurrentPassword, user.PasswordHash) {
		a.logger.Info("Auth service: password change rejected", "user_id", userID)
		return model.NewValidationError("Current password is incorrect")
	}

	hash, err := a.hasher.Hash(params.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.userStore.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	a.logger.Info("Auth service: password changed", "user_id", userID)

	return nil
}

// DeleteAccount removes the user; tickets and reviews cascade in the store.
func (a *Auth) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := a.userStore.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if a.avatars != nil {
		if err := a.avatars.Remove(ctx, userID); err != nil && !errors.Is(err, model.ErrNotFound) {
			a.logger.Warn("Auth service: failed to remove avatar of deleted user",
				"user_id", userID,
				"error", err.Error())
		}
	}

	a.logger.Info("Auth service: account deleted", "user_id", userID)

	return nil
}

func (a *Auth) decoy() string {
	a.decoyOnce.Do(func() {
		hash, err := a.hasher.Hash(uuid.NewString())
		if err == nil {
			a.decoyHash = hash
		}
	})
	return a.decoyHash
}
