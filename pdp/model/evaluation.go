package model

import "github.com/dev-rpatel/janus/model"

// RuleEvaluationResult records how one rule contributed to a policy decision.
type RuleEvaluationResult struct {
	RuleID   string         `json:"rule_id"`
	Effect   model.Effect   `json:"effect"`
	Decision model.Decision `json:"decision"`
	Reason   string         `json:"reason,omitempty"`
}

// PolicyEvaluationResult records how one policy contributed to the final
// decision, including its per-rule breakdown when its target matched.
type PolicyEvaluationResult struct {
	PolicyID string                 `json:"policy_id"`
	Decision model.Decision         `json:"decision"`
	Reason   string                 `json:"reason,omitempty"`
	Rules    []RuleEvaluationResult `json:"rules,omitempty"`
}

// EvaluationResult is the full trace of one PolicySet evaluation. The
// enforcement layer attaches it to audit records; it is never returned to
// unprivileged callers.
type EvaluationResult struct {
	Decision model.Decision           `json:"decision"`
	Policies []PolicyEvaluationResult `json:"policies,omitempty"`
}

// EvaluatedPolicyIDs lists the policies that contributed a decision other
// than NotApplicable.
func (r EvaluationResult) EvaluatedPolicyIDs() []string {
	var ids []string
	for _, p := range r.Policies {
		if p.Decision != model.DecisionNotApplicable {
			ids = append(ids, p.PolicyID)
		}
	}
	return ids
}

// Reason summarizes the decisive policy outcome, for deny logging.
func (r EvaluationResult) Reason() string {
	for _, p := range r.Policies {
		if p.Decision == r.Decision && p.Reason != "" {
			return p.Reason
		}
	}
	switch r.Decision {
	case model.DecisionNotApplicable:
		return "no applicable policy"
	case model.DecisionIndeterminate:
		return "evaluation error"
	default:
		return ""
	}
}
