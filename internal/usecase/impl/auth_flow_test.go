package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fleetauth/config"
	"fleetauth/internal/domain/entity"
	domainerrors "fleetauth/internal/domain/errors"
	"fleetauth/internal/domain/repository"
	"fleetauth/internal/domain/service"
	"fleetauth/internal/infra/auth"
	"fleetauth/internal/usecase"
)

// memoryUserStore is an in-memory UserStore with the same uniqueness
// semantics as the postgres store, for wiring the real services together
// without a database.
type memoryUserStore struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User
	byID    map[uuid.UUID]*entity.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{
		byEmail: make(map[string]*entity.User),
		byID:    make(map[uuid.UUID]*entity.User),
	}
}

func (s *memoryUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.byEmail[email]

	return ok, nil
}

func (s *memoryUserStore) Create(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[user.Email]; ok {
		return errors.Wrap(repository.ErrEmailTaken, "insert users")
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	stored := *user
	s.byEmail[user.Email] = &stored
	s.byID[user.ID] = &stored

	return nil
}

func (s *memoryUserStore) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	found := *user

	return &found, nil
}

func (s *memoryUserStore) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	found := *user

	return &found, nil
}

func (s *memoryUserStore) delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.byID[id]; ok {
		delete(s.byEmail, user.Email)
		delete(s.byID, id)
	}
}

func newFlowServices(t *testing.T) (usecase.AuthUsecase, *memoryUserStore) {
	t.Helper()

	cfg := &config.Config{
		Auth: &config.AuthConfig{TokenTTL: time.Minute},
	}
	cfg.SecretKey.Signing = "test_signing_secret_key_very_long_for_testing"

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	store := newMemoryUserStore()
	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost)
	credentials := NewCredentialService(store, hasher, testLogger())

	return NewAuthService(credentials, tokens, store, testLogger()), store
}

// TestAuthFlow walks the whole credential lifecycle with the real hasher and
// token service: register, duplicate rejection, login both ways, verify,
// tampering, and a deleted account.
func TestAuthFlow(t *testing.T) {
	facade, store := newFlowServices(t)
	ctx := context.Background()

	// Ann registers and the response carries a usable token.
	registered, err := facade.Register(ctx, usecase.RegisterInput{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "pw123",
		Role:     entity.RoleCustomer,
	})
	require.NoError(t, err)
	require.NotEmpty(t, registered.Token)

	verified, err := facade.VerifyToken(ctx, registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, verified.ID)
	assert.Equal(t, "ann@x.com", verified.Email)

	// Bob cannot take the same email, regardless of casing.
	_, err = facade.Register(ctx, usecase.RegisterInput{
		Name:     "Bob",
		Email:    "ANN@x.com",
		Password: "different",
		Role:     entity.RoleDriver,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateEmail))

	// Login fails closed on a wrong password and succeeds on the right one.
	_, err = facade.Login(ctx, usecase.LoginInput{Email: "ann@x.com", Password: "wrong"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	loggedIn, err := facade.Login(ctx, usecase.LoginInput{Email: "Ann@X.com", Password: "pw123"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	// A tampered token is rejected as unauthorized, nothing finer.
	tampered := registered.Token[:len(registered.Token)-4] + "AAAA"
	_, err = facade.VerifyToken(ctx, tampered)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))

	// Once the account is gone, a structurally valid token stops working.
	store.delete(registered.User.ID)
	_, err = facade.VerifyToken(ctx, loggedIn.Token)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestAuthFlow_ExpiredTokenIsUnauthorized(t *testing.T) {
	cfg := &config.Config{
		Auth: &config.AuthConfig{TokenTTL: time.Minute},
	}
	cfg.SecretKey.Signing = "test_signing_secret_key_very_long_for_testing"

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	store := newMemoryUserStore()
	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost)
	credentials := NewCredentialService(store, hasher, testLogger())
	facade := NewAuthService(credentials, tokens, store, testLogger())
	ctx := context.Background()

	registered, err := facade.Register(ctx, usecase.RegisterInput{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "pw123",
		Role:     entity.RoleCustomer,
	})
	require.NoError(t, err)

	// Sign a token for the registered account over the same secret, but with
	// an expiry already in the past.
	past := time.Now().Add(-2 * time.Minute)
	staleClaims := &service.Claims{
		Email: registered.User.Email,
		Role:  registered.User.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   registered.User.ID.String(),
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Minute)),
		},
	}
	staleToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, staleClaims).
		SignedString([]byte(cfg.SecretKey.Signing))
	require.NoError(t, err)

	_, err = facade.VerifyToken(ctx, staleToken)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}
