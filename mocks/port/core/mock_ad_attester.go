package core

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAdAttester is a testify mock for the AdAttester port
type MockAdAttester struct {
	mock.Mock
}

func (m *MockAdAttester) Confirm(ctx context.Context, userID string, completed bool) error {
	args := m.Called(ctx, userID, completed)
	return args.Error(0)
}
