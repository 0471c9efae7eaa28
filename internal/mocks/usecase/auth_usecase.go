// Package usecase provides testify mocks for the application interfaces.
package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fleetauth/internal/domain/entity"
	"fleetauth/internal/usecase"
)

// MockAuthUsecase is a testify mock of usecase.AuthUsecase.
type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)

	if output, ok := args.Get(0).(*usecase.AuthOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)

	if output, ok := args.Get(0).(*usecase.AuthOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthUsecase) VerifyToken(ctx context.Context, token string) (*usecase.PublicUser, error) {
	args := m.Called(ctx, token)

	if user, ok := args.Get(0).(*usecase.PublicUser); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockCredentialUsecase is a testify mock of usecase.CredentialUsecase.
type MockCredentialUsecase struct {
	mock.Mock
}

func (m *MockCredentialUsecase) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	args := m.Called(ctx, input)

	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCredentialUsecase) Login(ctx context.Context, input usecase.LoginInput) (*entity.User, error) {
	args := m.Called(ctx, input)

	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}
