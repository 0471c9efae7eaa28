package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleetauth/internal/domain/entity"
	domainerrors "fleetauth/internal/domain/errors"
	"fleetauth/internal/domain/repository"
	"fleetauth/internal/errors"
	"fleetauth/internal/infra/persistence/model"
)

// userStore implements the repository.UserStore interface using GORM.
type userStore struct {
	db *gorm.DB
}

// NewUserStore is the constructor for userStore.
// It returns the store as a repository.UserStore interface, adhering to dependency inversion.
func NewUserStore(db *gorm.DB) repository.UserStore {
	return &userStore{db: db}
}

// ExistsByEmail reports whether a user with the given email is persisted.
func (s *userStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, domainerrors.NewStoreUnavailableError(err, "failed to check email existence")
	}

	return count > 0, nil
}

// Create persists a new user. The database assigns the id; a unique-index
// violation on email surfaces as repository.ErrEmailTaken so the service
// layer can treat the insert-time race like a pre-check failure.
func (s *userStore) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := s.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.Wrap(repository.ErrEmailTaken, "failed to create user")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewStoreUnavailableError(err, "failed to create user")
	}

	// Propagate the store-assigned id and timestamps back to the entity.
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// FindByEmail retrieves a single user by their email address.
func (s *userStore) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	if err := s.db.WithContext(ctx).
		Where("email = ?", email).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewStoreUnavailableError(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// FindByID retrieves a single user by their unique ID.
func (s *userStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	if err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewStoreUnavailableError(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Role:         entity.Role(data.Role),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Role:         data.Role.String(),
	}
}
