package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"payverify/internal/service"
)

type MockStatusService struct {
	mock.Mock
}

func (m *MockStatusService) MarkPaid(ctx context.Context, invoiceNumber string) (*service.PaidReport, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PaidReport), args.Error(1)
}
