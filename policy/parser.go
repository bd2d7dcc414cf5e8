// policy/parser.go
package policy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	janus_errors "github.com/dev-rpatel/janus/errors"
	"github.com/dev-rpatel/janus/model"
)

var validate = validator.New()

// LoadPolicies parses a policy document into an immutable PolicySet. The
// returned set is fully resolved: every function name has been compiled to
// its enum form, so evaluation never dispatches on strings. Any structural
// or semantic defect rejects the whole document; a rejected document never
// becomes the active set.
func LoadPolicies(documentBytes []byte) (*model.PolicySet, error) {
	decoder := json.NewDecoder(bytes.NewReader(documentBytes))
	decoder.DisallowUnknownFields()

	var doc policySetDocument
	if err := decoder.Decode(&doc); err != nil {
		return nil, janus_errors.NewParseError("", fmt.Errorf("%w: %v", janus_errors.ErrInvalidPolicyDocument, err))
	}
	if err := validate.Struct(doc); err != nil {
		return nil, janus_errors.NewParseError("", fmt.Errorf("%w: %v", janus_errors.ErrInvalidPolicyDocument, err))
	}

	if doc.CombiningAlgorithm != model.CombiningDenyOverrides {
		return nil, janus_errors.NewParseError(
			fmt.Sprintf("policy set %s", doc.PolicySetID),
			fmt.Errorf("%w: %q", janus_errors.ErrUnknownCombining, doc.CombiningAlgorithm))
	}

	policySet := &model.PolicySet{
		PolicySetID:        doc.PolicySetID,
		Description:        doc.Description,
		CombiningAlgorithm: doc.CombiningAlgorithm,
		LoadedAt:           time.Now().UTC(),
	}

	policyIDs := make(map[string]struct{}, len(doc.Policies))
	for _, policyDoc := range doc.Policies {
		if _, dup := policyIDs[policyDoc.PolicyID]; dup {
			return nil, janus_errors.NewParseError(
				fmt.Sprintf("policy %s", policyDoc.PolicyID),
				janus_errors.ErrDuplicatePolicyID)
		}
		policyIDs[policyDoc.PolicyID] = struct{}{}

		policy, err := compilePolicy(policyDoc)
		if err != nil {
			return nil, err
		}
		policySet.Policies = append(policySet.Policies, policy)
	}

	return policySet, nil
}

func compilePolicy(doc policyDocument) (model.Policy, error) {
	location := fmt.Sprintf("policy %s", doc.PolicyID)

	if doc.CombiningAlgorithm != model.CombiningDenyOverrides {
		return model.Policy{}, janus_errors.NewParseError(location,
			fmt.Errorf("%w: %q", janus_errors.ErrUnknownCombining, doc.CombiningAlgorithm))
	}

	target, err := compileTarget(doc.Target, location)
	if err != nil {
		return model.Policy{}, err
	}

	policy := model.Policy{
		PolicyID:           doc.PolicyID,
		Description:        doc.Description,
		CombiningAlgorithm: doc.CombiningAlgorithm,
		Target:             target,
	}

	ruleIDs := make(map[string]struct{}, len(doc.Rules))
	for _, ruleDoc := range doc.Rules {
		ruleLocation := fmt.Sprintf("%s, rule %s", location, ruleDoc.RuleID)
		if _, dup := ruleIDs[ruleDoc.RuleID]; dup {
			return model.Policy{}, janus_errors.NewParseError(ruleLocation, janus_errors.ErrDuplicateRuleID)
		}
		ruleIDs[ruleDoc.RuleID] = struct{}{}

		rule, err := compileRule(ruleDoc, ruleLocation)
		if err != nil {
			return model.Policy{}, err
		}
		policy.Rules = append(policy.Rules, rule)
	}

	return policy, nil
}

func compileRule(doc ruleDocument, location string) (model.Rule, error) {
	target, err := compileTarget(doc.Target, location)
	if err != nil {
		return model.Rule{}, err
	}

	rule := model.Rule{
		RuleID:      doc.RuleID,
		Description: doc.Description,
		Effect:      model.Effect(doc.Effect),
		Target:      target,
	}

	if doc.Condition != nil {
		condition, err := compileBoolExpression(*doc.Condition, location)
		if err != nil {
			return model.Rule{}, err
		}
		rule.Condition = &condition
	}

	return rule, nil
}

func compileTarget(doc targetDocument, location string) (model.Target, error) {
	var target model.Target
	for _, allOfDoc := range doc.AnyOf {
		var allOf model.AllOf
		for _, matchDoc := range allOfDoc.AllOf {
			match, err := compileMatch(matchDoc, location)
			if err != nil {
				return model.Target{}, err
			}
			allOf.Matches = append(allOf.Matches, match)
		}
		target.AnyOf = append(target.AnyOf, allOf)
	}
	return target, nil
}

func compileMatch(doc matchDocument, location string) (model.Match, error) {
	function, err := model.ParseFunction(doc.Function)
	if err != nil {
		return model.Match{}, janus_errors.NewParseError(location,
			fmt.Errorf("%w: %v", janus_errors.ErrUnknownFunction, err))
	}
	if function != model.FunctionStringEqual {
		return model.Match{}, janus_errors.NewParseError(location,
			fmt.Errorf("%w: target matches only support %s", janus_errors.ErrUnknownFunction, model.FunctionStringEqual))
	}
	return model.Match{
		Function:   function,
		Value:      doc.Value.model(),
		Designator: doc.Designator.model(),
	}, nil
}

// compileBoolExpression compiles a condition node expected to produce a
// boolean. Arities are fixed here so that evaluation can assume
// well-formed trees: string-equal takes exactly two leaf operands, not
// takes one boolean, or/and take at least two booleans.
func compileBoolExpression(doc expressionDocument, location string) (model.Expression, error) {
	if doc.Apply == nil {
		return model.Expression{}, janus_errors.NewParseError(location,
			fmt.Errorf("%w: condition node must be a function application", janus_errors.ErrInvalidPolicyDocument))
	}

	function, err := model.ParseFunction(doc.Apply.Function)
	if err != nil {
		return model.Expression{}, janus_errors.NewParseError(location,
			fmt.Errorf("%w: %v", janus_errors.ErrUnknownFunction, err))
	}

	apply := &model.Apply{Function: function}

	switch function {
	case model.FunctionStringEqual:
		if len(doc.Apply.Args) != 2 {
			return model.Expression{}, janus_errors.NewParseError(location,
				fmt.Errorf("%w: string-equal takes exactly 2 arguments, got %d", janus_errors.ErrInvalidPolicyDocument, len(doc.Apply.Args)))
		}
		for _, argDoc := range doc.Apply.Args {
			arg, err := compileValueExpression(argDoc, location)
			if err != nil {
				return model.Expression{}, err
			}
			apply.Args = append(apply.Args, arg)
		}

	case model.FunctionNot:
		if len(doc.Apply.Args) != 1 {
			return model.Expression{}, janus_errors.NewParseError(location,
				fmt.Errorf("%w: not takes exactly 1 argument, got %d", janus_errors.ErrInvalidPolicyDocument, len(doc.Apply.Args)))
		}
		arg, err := compileBoolExpression(doc.Apply.Args[0], location)
		if err != nil {
			return model.Expression{}, err
		}
		apply.Args = append(apply.Args, arg)

	case model.FunctionOr, model.FunctionAnd:
		if len(doc.Apply.Args) < 2 {
			return model.Expression{}, janus_errors.NewParseError(location,
				fmt.Errorf("%w: %s takes at least 2 arguments, got %d", janus_errors.ErrInvalidPolicyDocument, function, len(doc.Apply.Args)))
		}
		for _, argDoc := range doc.Apply.Args {
			arg, err := compileBoolExpression(argDoc, location)
			if err != nil {
				return model.Expression{}, err
			}
			apply.Args = append(apply.Args, arg)
		}
	}

	return model.Expression{Apply: apply}, nil
}

// compileValueExpression compiles a string-equal operand: a literal value
// or an attribute designator.
func compileValueExpression(doc expressionDocument, location string) (model.Expression, error) {
	switch {
	case doc.Value != nil && doc.Designator == nil && doc.Apply == nil:
		value := doc.Value.model()
		return model.Expression{Value: &value}, nil
	case doc.Designator != nil && doc.Value == nil && doc.Apply == nil:
		designator := doc.Designator.model()
		return model.Expression{Designator: &designator}, nil
	default:
		return model.Expression{}, janus_errors.NewParseError(location,
			fmt.Errorf("%w: string-equal operands must be a single value or designator", janus_errors.ErrInvalidPolicyDocument))
	}
}
