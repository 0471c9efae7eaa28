package impl

import (
	"context"
	"log/slog"

	deliverycontext "fleetauth/internal/delivery/context"
	domainerrors "fleetauth/internal/domain/errors"
	"fleetauth/internal/domain/repository"
	"fleetauth/internal/domain/service"
	"fleetauth/internal/errors"
	"fleetauth/internal/usecase"
)

// authService implements the AuthUsecase facade: it composes the credential
// service with the token service and maps internal outcomes onto the three
// externally visible operations.
type authService struct {
	credentials usecase.CredentialUsecase
	tokens      service.TokenService
	store       repository.UserStore
	logger      *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(
	credentials usecase.CredentialUsecase,
	tokens service.TokenService,
	store repository.UserStore,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		credentials: credentials,
		tokens:      tokens,
		store:       store,
		logger:      logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates the account and mints a token for it. ErrDuplicateEmail
// from the credential service passes through untouched.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	user, err := srv.credentials.Register(ctx, input)
	if err != nil {
		return nil, errors.Wrap(err, "registration failed")
	}

	token, err := srv.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		// The user row is already durable at this point, so a failed mint is
		// an invariant violation of the issuing path, not a user error. The
		// account remains usable via login once the issuer recovers.
		srv.log(ctx).Error("Token issuance failed after registration insert",
			slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to issue token after registration")
	}

	return &usecase.AuthOutput{
		Token: token,
		User:  usecase.NewPublicUser(user),
	}, nil
}

// Login authenticates the credentials and mints a token.
// ErrInvalidCredentials passes through untouched.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	user, err := srv.credentials.Login(ctx, input)
	if err != nil {
		return nil, errors.Wrap(err, "login failed")
	}

	token, err := srv.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		srv.log(ctx).Error("Token issuance failed after login",
			slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to issue token after login")
	}

	return &usecase.AuthOutput{
		Token: token,
		User:  usecase.NewPublicUser(user),
	}, nil
}

// VerifyToken validates the token and re-resolves the user by the subject
// claim. The finer-grained verification outcome is logged here and then
// collapsed: callers outside the core only ever see ErrUnauthorized.
func (srv *authService) VerifyToken(ctx context.Context, token string) (*usecase.PublicUser, error) {
	claims, err := srv.tokens.Verify(token)
	if err != nil {
		srv.log(ctx).Warn("Token verification failed", slog.Any("error", err))

		return nil, domainerrors.ErrUnauthorized.WrapMessage("token verification failed")
	}

	userID, err := claims.UserID()
	if err != nil {
		srv.log(ctx).Warn("Token subject is not a valid user id", slog.String("subject", claims.Subject))

		return nil, domainerrors.ErrUnauthorized.WrapMessage("invalid token subject")
	}

	user, err := srv.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Token subject no longer exists", slog.Any("userID", userID))

			return nil, domainerrors.ErrUnauthorized.WrapMessage("user no longer exists")
		}

		srv.log(ctx).Error("Failed to resolve token subject", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to resolve token subject")
	}

	return usecase.NewPublicUser(user), nil
}
