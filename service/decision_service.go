package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	logger "github.com/dev-rpatel/janus/logging"
	"github.com/dev-rpatel/janus/model"
	pdp_model "github.com/dev-rpatel/janus/pdp/model"
	"github.com/dev-rpatel/janus/pep"
	"github.com/dev-rpatel/janus/policy"
	"github.com/dev-rpatel/janus/util"
)

// IDecisionService is the surface the HTTP layer depends on: query-form
// evaluation plus policy-set lifecycle operations.
type IDecisionService interface {
	Decide(ctx context.Context, request pdp_model.AccessRequest) pdp_model.AccessDecision
	ReloadPolicies(ctx context.Context) error
	ActivePolicySet() *model.PolicySet
}

// DecisionService bridges the HTTP layer to the enforcement point and the
// policy store.
type DecisionService struct {
	pep      *pep.PEP
	store    *policy.Store
	eventBus *util.EventBus
}

// NewDecisionService creates a new instance of DecisionService
func NewDecisionService(enforcementPoint *pep.PEP, store *policy.Store, eventBus *util.EventBus) *DecisionService {
	service := &DecisionService{
		pep:      enforcementPoint,
		store:    store,
		eventBus: eventBus,
	}

	eventBus.Subscribe(util.EventPolicyReloaded, service.handlePolicyReloaded)

	return service
}

// Decide evaluates a query-form access request.
func (s *DecisionService) Decide(ctx context.Context, request pdp_model.AccessRequest) pdp_model.AccessDecision {
	return s.pep.Decide(ctx, request.Subject.Username, request.Subject.Role, request.Action, request.Resource)
}

// ReloadPolicies re-parses the policy document and swaps the active set.
// A failed reload keeps the previous set serving and is surfaced to the
// operator.
func (s *DecisionService) ReloadPolicies(ctx context.Context) error {
	if err := s.store.Reload(); err != nil {
		logger.Error("Policy reload rejected", zap.Error(err))
		s.eventBus.Publish(ctx, util.EventPolicyReloadFailed, err.Error())
		return err
	}

	s.eventBus.Publish(ctx, util.EventPolicyReloaded, s.store.Active().PolicySetID)
	return nil
}

// ActivePolicySet returns the currently active policy-set snapshot.
func (s *DecisionService) ActivePolicySet() *model.PolicySet {
	return s.store.Active()
}

func (s *DecisionService) handlePolicyReloaded(_ context.Context, event util.Event) error {
	logger.Info("Policy reloaded event received",
		zap.Any("policySetID", event.Payload),
		zap.Time("at", time.Now().UTC()))
	return nil
}
