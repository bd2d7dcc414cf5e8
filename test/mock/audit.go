// test/mock/audit.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dev-rpatel/janus/audit"
)

// MockAuditService is a mock implementation of audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) LogDecision(ctx context.Context, log audit.DecisionLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditService) QueryDecisions(ctx context.Context, from, to time.Time, username, action string) ([]audit.DecisionLog, error) {
	args := m.Called(ctx, from, to, username, action)
	return args.Get(0).([]audit.DecisionLog), args.Error(1)
}
