// model/decision.go
package model

// Effect is the outcome a Rule declares when it applies.
type Effect string

const (
	EffectPermit Effect = "Permit"
	EffectDeny   Effect = "Deny"
)

// Decision is the result of evaluating a Rule, a Policy, or the whole
// PolicySet against one request context.
type Decision string

const (
	DecisionPermit        Decision = "Permit"
	DecisionDeny          Decision = "Deny"
	DecisionNotApplicable Decision = "NotApplicable"
	DecisionIndeterminate Decision = "Indeterminate"
)

// Decision converts the Rule's effect into the Decision it contributes when
// the Rule is applicable.
func (e Effect) Decision() Decision {
	if e == EffectDeny {
		return DecisionDeny
	}
	return DecisionPermit
}
