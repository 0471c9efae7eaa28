// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "fleetauth/internal/delivery/context"
	"fleetauth/internal/domain/entity"
	domainerrors "fleetauth/internal/domain/errors"
	"fleetauth/internal/domain/repository"
	"fleetauth/internal/domain/service"
	"fleetauth/internal/errors"
	"fleetauth/internal/usecase"
)

// credentialService implements the CredentialUsecase interface. It owns the
// registration uniqueness rule and the login verification rule; persistence
// and hashing are delegated to the injected collaborators.
type credentialService struct {
	store  repository.UserStore
	hasher service.PasswordHasher
	logger *slog.Logger
}

// NewCredentialService is the constructor for credentialService. It receives all dependencies as interfaces.
func NewCredentialService(store repository.UserStore, hasher service.PasswordHasher, logger *slog.Logger) usecase.CredentialUsecase {
	return &credentialService{
		store:  store,
		hasher: hasher,
		logger: logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *credentialService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// normalizeEmail applies the fixed case policy: emails are compared and
// stored lowercased, so the uniqueness rule cannot be dodged by casing.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with a hashed password. The pre-check keeps
// the common duplicate case cheap; the store's unique constraint decides
// the concurrent race, and its violation is reported identically.
func (srv *credentialService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email), slog.Any("role", input.Role))

	taken, err := srv.store.ExistsByEmail(ctx, email)
	if err != nil {
		srv.log(ctx).Error("Failed to check email existence", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to check email existence during registration")
	}
	if taken {
		srv.log(ctx).Warn("Registration rejected, email already taken", slog.String("email", email))

		return nil, domainerrors.ErrDuplicateEmail.WrapMessage("registration failed")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	newUser := &entity.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         input.Role,
	}

	if err := srv.store.Create(ctx, newUser); err != nil {
		// The check-then-insert sequence is not atomic at this layer. A
		// constraint violation here means another registration won the race;
		// report it exactly like the pre-check rejection.
		if errors.Is(err, repository.ErrEmailTaken) {
			srv.log(ctx).Warn("Registration lost duplicate-email race", slog.String("email", email))

			return nil, domainerrors.ErrDuplicateEmail.WrapMessage("registration failed")
		}

		srv.log(ctx).Error("Failed to create user", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID), slog.Any("role", newUser.Role))

	return newUser, nil
}

// Login verifies an email/password pair against the store. A missing user
// and a failed password check are indistinguishable to the caller.
func (srv *credentialService) Login(ctx context.Context, input usecase.LoginInput) (*entity.User, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	user, err := srv.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed, unknown email", slog.String("email", email))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		srv.log(ctx).Error("Failed to load user for login", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find user during login")
	}

	// bcrypt check outside any store call; it is CPU-bound.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed, password mismatch", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	srv.log(ctx).Debug("Login verified", slog.Any("userID", user.ID))

	return user, nil
}
