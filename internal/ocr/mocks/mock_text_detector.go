package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"payverify/internal/ocr"
)

type MockTextDetector struct {
	mock.Mock
}

func (m *MockTextDetector) DetectText(ctx context.Context, image []byte) ([]ocr.Annotation, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ocr.Annotation), args.Error(1)
}
