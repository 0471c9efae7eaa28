package impl

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleetauth/internal/domain/entity"
	domainerrors "fleetauth/internal/domain/errors"
	"fleetauth/internal/domain/repository"
	mockrepo "fleetauth/internal/mocks/repository"
	mocksvc "fleetauth/internal/mocks/service"
	"fleetauth/internal/usecase"
)

func TestCredentialService_Register_Success(t *testing.T) {
	store := new(mockrepo.MockUserStore)
	hasher := new(mocksvc.MockPasswordHasher)
	srv := NewCredentialService(store, hasher, testLogger())

	store.On("ExistsByEmail", mock.Anything, "ann@x.com").Return(false, nil)
	hasher.On("Hash", "pw123").Return("$2a$10$hash", nil)
	store.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "ann@x.com" && u.PasswordHash == "$2a$10$hash" && u.Role == entity.RoleCustomer
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.User).ID = uuid.New()
	}).Return(nil)

	user, err := srv.Register(context.Background(), usecase.RegisterInput{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "pw123",
		Role:     entity.RoleCustomer,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "ann@x.com", user.Email)
	assert.NotEqual(t, "pw123", user.PasswordHash)
	store.AssertExpectations(t)
	hasher.AssertExpectations(t)
}

func TestCredentialService_Register_NormalizesEmail(t *testing.T) {
	store := new(mockrepo.MockUserStore)
	hasher := new(mocksvc.MockPasswordHasher)
	srv := NewCredentialService(store, hasher, testLogger())

	store.On("ExistsByEmail", mock.Anything, "ann@x.com").Return(false, nil)
	hasher.On("Hash", "pw123").Return("$2a$10$hash", nil)
	store.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "ann@x.com"
	})).Return(nil)

	user, err := srv.Register(context.Background(), usecase.RegisterInput{
		Name:     "Ann",
		Email:    "  Ann@X.Com ",
		Password: "pw123",
		Role:     entity.RoleCustomer,
	})

	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", user.Email)
	store.AssertExpectations(t)
}

func TestCredentialService_Register_DuplicateEmail(t *testing.T) {
	store := new(mockrepo.MockUserStore)
	hasher := new(mocksvc.MockPasswordHasher)
	srv := NewCredentialService(store, hasher, testLogger())

	store.On("ExistsByEmail", mock.Anything, "ann@x.com").Return(true, nil)

	user, err := srv.Register(context.Background(), usecase.RegisterInput{
		Name:     "Other Ann",
		Email:    "ANN@x.com",
		Password: "different",
		Role:     entity.RoleDriver,
	})

	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateEmail))
	hasher.AssertNotCalled(t, "Hash", mock.Anything)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCredentialService_Register_LosesInsertRace(t *testing.T) {
	store := new(mockrepo.MockUserStore)
	hasher := new(mocksvc.MockPasswordHasher)
	srv := NewCredentialService(store, hasher, testLogger())

	// The pre-check passes but a concurrent registration commits first; the
	// store reports the constraint violation and the caller must not be able
	// to tell the two rejection paths apart.
	store.On("ExistsByEmail", mock.Anything, "ann@x.com").Return(false, nil)
	hasher.On("Hash", "pw123").Return("$2a$10$hash", nil)
	store.On("Create", mock.Anything, mock.Anything).
		Return(errors.Wrap(repository.ErrEmailTaken, "insert users"))

	user, err := srv.Register(context.Background(), usecase.RegisterInput{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "pw123",
		Role:     entity.RoleCustomer,
	})

	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateEmail))
}

func TestCredentialService_Register_StoreUnavailable(t *testing.T) {
	store := new(mockrepo.MockUserStore)
	hasher := new(mocksvc.MockPasswordHasher)
	srv := NewCredentialService(store, hasher, testLogger())

	storeErr := domainerrors.NewStoreUnavailableError(errors.New("connection refused"), "users lookup")
	store.On("ExistsByEmail", mock.Anything, "ann@x.com").Return(false, storeErr)

	user, err := srv.Register(context.Background(), usecase.RegisterInput{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "pw123",
		Role:     entity.RoleCustomer,
	})

	assert.Nil(t, user)

	var unavailable *domainerrors.StoreUnavailableError
	assert.True(t, errors.As(err, &unavailable))
}

func TestCredentialService_Register_HashFailure(t *testing.T) {
	store := new(mockrepo.MockUserStore)
	hasher := new(mocksvc.MockPasswordHasher)
	srv := NewCredentialService(store, hasher, testLogger())

	store.On("ExistsByEmail", mock.Anything, "ann@x.com").Return(false, nil)
	hasher.On("Hash", "pw123").Return("", errors.New("cost out of range"))

	user, err := srv.Register(context.Background(), usecase.RegisterInput{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "pw123",
		Role:     entity.RoleCustomer,
	})

	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCredentialService_Login_Success(t *testing.T) {
	store := new(mockrepo.MockUserStore)
	hasher := new(mocksvc.MockPasswordHasher)
	srv := NewCredentialService(store, hasher, testLogger())

	stored := &entity.User{
		ID:           uuid.New(),
		Name:         "Ann",
		Email:        "ann@x.com",
		PasswordHash: "$2a$10$hash",
		Role:         entity.RoleCustomer,
	}
	store.On("FindByEmail", mock.Anything, "ann@x.com").Return(stored, nil)
	hasher.On("Check", "pw123", "$2a$10$hash").Return(true)

	user, err := srv.Login(context.Background(), usecase.LoginInput{
		Email:    "Ann@X.com",
		Password: "pw123",
	})

	require.NoError(t, err)
	assert.Equal(t, stored.ID, user.ID)
}

func TestCredentialService_Login_FailuresAreIndistinguishable(t *testing.T) {
	unknownStore := new(mockrepo.MockUserStore)
	unknownHasher := new(mocksvc.MockPasswordHasher)
	unknownSrv := NewCredentialService(unknownStore, unknownHasher, testLogger())
	unknownStore.On("FindByEmail", mock.Anything, "ghost@x.com").
		Return(nil, repository.ErrUserNotFound)

	_, unknownErr := unknownSrv.Login(context.Background(), usecase.LoginInput{
		Email:    "ghost@x.com",
		Password: "whatever",
	})

	wrongStore := new(mockrepo.MockUserStore)
	wrongHasher := new(mocksvc.MockPasswordHasher)
	wrongSrv := NewCredentialService(wrongStore, wrongHasher, testLogger())
	wrongStore.On("FindByEmail", mock.Anything, "ann@x.com").Return(&entity.User{
		ID:           uuid.New(),
		Email:        "ann@x.com",
		PasswordHash: "$2a$10$hash",
		Role:         entity.RoleCustomer,
	}, nil)
	wrongHasher.On("Check", "wrong", "$2a$10$hash").Return(false)

	_, wrongErr := wrongSrv.Login(context.Background(), usecase.LoginInput{
		Email:    "ann@x.com",
		Password: "wrong",
	})

	// Both rejection paths surface the same typed error so a caller cannot
	// probe which emails are registered.
	assert.True(t, errors.Is(unknownErr, domainerrors.ErrInvalidCredentials))
	assert.True(t, errors.Is(wrongErr, domainerrors.ErrInvalidCredentials))
	unknownHasher.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
}
