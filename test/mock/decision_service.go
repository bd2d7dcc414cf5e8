// test/mock/decision_service.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dev-rpatel/janus/model"
	pdp_model "github.com/dev-rpatel/janus/pdp/model"
)

// MockDecisionService is a mock implementation of service.IDecisionService
type MockDecisionService struct {
	mock.Mock
}

func (m *MockDecisionService) Decide(ctx context.Context, request pdp_model.AccessRequest) pdp_model.AccessDecision {
	args := m.Called(ctx, request)
	return args.Get(0).(pdp_model.AccessDecision)
}

func (m *MockDecisionService) ReloadPolicies(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDecisionService) ActivePolicySet() *model.PolicySet {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*model.PolicySet)
}
