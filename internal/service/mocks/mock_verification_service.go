package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"payverify/internal/service"
)

type MockVerificationService struct {
	mock.Mock
}

func (m *MockVerificationService) Verify(ctx context.Context, image []byte, fileName, contentType string, opts service.VerifyOptions) (*service.VerifyResult, error) {
	args := m.Called(ctx, image, fileName, contentType, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.VerifyResult), args.Error(1)
}
