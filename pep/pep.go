// pep/pep.go

// Package pep is the policy enforcement point: it builds attribute contexts
// from already-authenticated callers, asks the decision point, audits the
// outcome, and converts anything other than Permit into a rejection.
package pep

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dev-rpatel/janus/audit"
	janus_errors "github.com/dev-rpatel/janus/errors"
	logger "github.com/dev-rpatel/janus/logging"
	"github.com/dev-rpatel/janus/model"
	"github.com/dev-rpatel/janus/pdp/engine"
	pdp_model "github.com/dev-rpatel/janus/pdp/model"
	"github.com/dev-rpatel/janus/policy"
)

type PEP struct {
	store        *policy.Store
	evaluator    *engine.Evaluator
	auditService audit.Service
}

func New(store *policy.Store, auditService audit.Service) *PEP {
	return &PEP{
		store:        store,
		evaluator:    engine.NewEvaluator(),
		auditService: auditService,
	}
}

// Decide evaluates one request against the active policy-set snapshot and
// records the outcome. The snapshot is read once, so a concurrent reload
// never mixes old and new rules within one evaluation.
func (p *PEP) Decide(ctx context.Context, username, role, action string, resourceAttrs map[string]string) pdp_model.AccessDecision {
	policySet := p.store.Active()
	requestCtx := pdp_model.NewRequestContext(username, role, action, resourceAttrs)

	trace := p.evaluator.DecideWithTrace(policySet, requestCtx)

	decision := pdp_model.AccessDecision{
		Decision:  trace.Decision,
		Allowed:   trace.Decision == model.DecisionPermit,
		Reason:    trace.Reason(),
		Timestamp: time.Now().UTC(),
	}
	if policySet != nil {
		decision.PolicySetID = policySet.PolicySetID
	}

	p.logDecision(ctx, requestCtx, decision, trace)
	return decision
}

// CheckPermission is the query form: a non-throwing boolean check usable
// inside business logic.
func (p *PEP) CheckPermission(ctx context.Context, username, role, action string, resourceAttrs map[string]string) bool {
	return p.Decide(ctx, username, role, action, resourceAttrs).Allowed
}

// Guard is the guard form: fn runs only when the decision is Permit.
// Anything else returns a ForbiddenError carrying the deny reason for the
// operator's logs; callers surface it as a generic rejection.
func (p *PEP) Guard(ctx context.Context, username, role, action string, resourceAttrs map[string]string, fn func() error) error {
	decision := p.Decide(ctx, username, role, action, resourceAttrs)
	if !decision.Allowed {
		return &janus_errors.ForbiddenError{Action: action, Reason: decision.Reason}
	}
	return fn()
}

// logDecision writes the audit record. Audit failure never alters the
// decision outcome; it is logged and dropped.
func (p *PEP) logDecision(ctx context.Context, requestCtx *pdp_model.AttributeContext, decision pdp_model.AccessDecision, trace pdp_model.EvaluationResult) {
	record := audit.DecisionLog{
		Timestamp:         decision.Timestamp,
		Username:          requestCtx.Subject()[model.AttributeUsername],
		Subject:           requestCtx.Subject(),
		Action:            requestCtx.Action(),
		Resource:          requestCtx.Resource(),
		Decision:          decision.Decision,
		Allowed:           decision.Allowed,
		Reason:            decision.Reason,
		PolicySetID:       decision.PolicySetID,
		EvaluatedPolicies: trace.EvaluatedPolicyIDs(),
	}

	if err := p.auditService.LogDecision(ctx, record); err != nil {
		logger.Error("Failed to write decision audit record",
			zap.Error(err),
			zap.String("username", record.Username),
			zap.String("action", record.Action),
			zap.String("decision", string(record.Decision)))
	}
}
