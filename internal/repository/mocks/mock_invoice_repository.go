package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"payverify/internal/model"
	"payverify/internal/repository"
)

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Find(ctx context.Context, f repository.InvoiceFilter) ([]model.Invoice, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindOne(ctx context.Context, f repository.InvoiceFilter) (*model.Invoice, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateStatus(ctx context.Context, f repository.InvoiceFilter, status model.InvoiceStatus) (repository.UpdateResult, error) {
	args := m.Called(ctx, f, status)
	return args.Get(0).(repository.UpdateResult), args.Error(1)
}
