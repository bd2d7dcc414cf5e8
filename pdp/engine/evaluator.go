package engine

import (
	"github.com/dev-rpatel/janus/model"
	pdp_model "github.com/dev-rpatel/janus/pdp/model"
)

// Evaluator is the policy decision point. It holds no mutable state: the
// policy set and request context are passed per call, so one Evaluator is
// safe for any number of concurrent evaluations.
type Evaluator struct{}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Decide evaluates the request context against the policy set and returns
// the combined decision. Callers converting the decision into an
// allow/reject outcome must treat anything other than Permit as a
// rejection.
func (e *Evaluator) Decide(policySet *model.PolicySet, ctx *pdp_model.AttributeContext) model.Decision {
	return e.DecideWithTrace(policySet, ctx).Decision
}

// DecideWithTrace evaluates the request and additionally reports how every
// policy and rule contributed, for audit records.
func (e *Evaluator) DecideWithTrace(policySet *model.PolicySet, ctx *pdp_model.AttributeContext) pdp_model.EvaluationResult {
	result := pdp_model.EvaluationResult{
		Decision: model.DecisionNotApplicable,
	}
	if policySet == nil {
		return result
	}

	decisions := make([]model.Decision, 0, len(policySet.Policies))
	for _, policy := range policySet.Policies {
		policyResult := e.evaluatePolicy(policy, ctx)
		result.Policies = append(result.Policies, policyResult)
		decisions = append(decisions, policyResult.Decision)
	}

	result.Decision = combineDenyOverrides(decisions)
	return result
}

// evaluatePolicy applies the policy's target, then combines its rules'
// decisions. A target error makes the whole policy Indeterminate; a
// non-matching target excludes the policy from combination entirely.
func (e *Evaluator) evaluatePolicy(policy model.Policy, ctx *pdp_model.AttributeContext) pdp_model.PolicyEvaluationResult {
	result := pdp_model.PolicyEvaluationResult{PolicyID: policy.PolicyID}

	matched, err := Matches(policy.Target, ctx)
	if err != nil {
		result.Decision = model.DecisionIndeterminate
		result.Reason = err.Error()
		return result
	}
	if !matched {
		result.Decision = model.DecisionNotApplicable
		result.Reason = "policy target did not match"
		return result
	}

	decisions := make([]model.Decision, 0, len(policy.Rules))
	for _, rule := range policy.Rules {
		ruleResult := e.evaluateRule(rule, ctx)
		result.Rules = append(result.Rules, ruleResult)
		decisions = append(decisions, ruleResult.Decision)
	}

	result.Decision = combineDenyOverrides(decisions)
	for _, ruleResult := range result.Rules {
		if ruleResult.Decision == result.Decision {
			result.Reason = ruleResult.Reason
			break
		}
	}
	return result
}

// evaluateRule applies the rule's target and condition and converts the
// declared effect into the rule's decision.
func (e *Evaluator) evaluateRule(rule model.Rule, ctx *pdp_model.AttributeContext) pdp_model.RuleEvaluationResult {
	result := pdp_model.RuleEvaluationResult{RuleID: rule.RuleID, Effect: rule.Effect}

	matched, err := Matches(rule.Target, ctx)
	if err != nil {
		result.Decision = model.DecisionIndeterminate
		result.Reason = err.Error()
		return result
	}
	if !matched {
		result.Decision = model.DecisionNotApplicable
		result.Reason = "rule target did not match"
		return result
	}

	holds, err := EvaluateCondition(rule.Condition, ctx)
	if err != nil {
		result.Decision = model.DecisionIndeterminate
		result.Reason = err.Error()
		return result
	}
	if !holds {
		result.Decision = model.DecisionNotApplicable
		result.Reason = "rule condition did not hold"
		return result
	}

	result.Decision = rule.Effect.Decision()
	result.Reason = "rule " + rule.RuleID + " applied"
	return result
}

// combineDenyOverrides folds child decisions with deny-overrides semantics.
// The same routine combines rules within a policy and policies within the
// policy set: a single Deny anywhere wins over every Permit, and an
// Indeterminate only surfaces when nothing decisive was produced.
func combineDenyOverrides(decisions []model.Decision) model.Decision {
	permit := false
	indeterminate := false
	for _, decision := range decisions {
		switch decision {
		case model.DecisionDeny:
			return model.DecisionDeny
		case model.DecisionPermit:
			permit = true
		case model.DecisionIndeterminate:
			indeterminate = true
		}
	}
	if permit {
		return model.DecisionPermit
	}
	if indeterminate {
		return model.DecisionIndeterminate
	}
	return model.DecisionNotApplicable
}
