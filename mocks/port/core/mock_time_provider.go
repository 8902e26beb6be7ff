package core

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	coreport "github.com/astromine-app/reward-ledger/internal/domain/port/core"
)

// MockTimeProvider is a testify mock for the TimeProvider port. WithTimeout
// is deliberately not expectation-based: use cases wrap every call in it, so
// it passes the context through with a plain cancel.
type MockTimeProvider struct {
	mock.Mock
}

func (m *MockTimeProvider) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

func (m *MockTimeProvider) Since(t time.Time) coreport.Duration {
	args := m.Called(t)
	return args.Get(0).(coreport.Duration)
}

func (m *MockTimeProvider) WithTimeout(ctx context.Context, timeout coreport.Duration) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}

func (m *MockTimeProvider) ParseDuration(s string) (coreport.Duration, error) {
	args := m.Called(s)
	return args.Get(0).(coreport.Duration), args.Error(1)
}
