package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"payverify/internal/model"
	"payverify/internal/repository"
)

type MockVerificationRepository struct {
	mock.Mock
}

func (m *MockVerificationRepository) FindOne(ctx context.Context, f repository.VerificationFilter) (*model.VerificationRecord, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VerificationRecord), args.Error(1)
}

func (m *MockVerificationRepository) Create(ctx context.Context, rec *model.VerificationRecord) (*model.VerificationRecord, error) {
	args := m.Called(ctx, rec)
	if f, ok := args.Get(0).(func(context.Context, *model.VerificationRecord) *model.VerificationRecord); ok {
		return f(ctx, rec), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VerificationRecord), args.Error(1)
}
