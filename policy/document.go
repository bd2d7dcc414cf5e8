// policy/document.go
package policy

import "github.com/dev-rpatel/janus/model"

// Wire schema of a policy document. The document is JSON shaped after the
// PolicySet → Policy → Rule tree: targets are any_of/all_of/match groups and
// conditions are nested apply/designator/value nodes. Struct tags carry the
// structural constraints; semantic checks (duplicate ids, function names)
// happen in the parser.

type policySetDocument struct {
	PolicySetID        string           `json:"policy_set_id" validate:"required"`
	Description        string           `json:"description"`
	CombiningAlgorithm string           `json:"policy_combining_algorithm" validate:"required"`
	Policies           []policyDocument `json:"policies" validate:"required,min=1,dive"`
}

type policyDocument struct {
	PolicyID           string         `json:"policy_id" validate:"required"`
	Description        string         `json:"description"`
	CombiningAlgorithm string         `json:"rule_combining_algorithm" validate:"required"`
	Target             targetDocument `json:"target"`
	Rules              []ruleDocument `json:"rules" validate:"required,min=1,dive"`
}

type ruleDocument struct {
	RuleID      string              `json:"rule_id" validate:"required"`
	Description string              `json:"description"`
	Effect      string              `json:"effect" validate:"required,oneof=Permit Deny"`
	Target      targetDocument      `json:"target"`
	Condition   *expressionDocument `json:"condition,omitempty"`
}

type targetDocument struct {
	AnyOf []allOfDocument `json:"any_of,omitempty" validate:"dive"`
}

type allOfDocument struct {
	AllOf []matchDocument `json:"all_of" validate:"required,min=1,dive"`
}

type matchDocument struct {
	Function   string             `json:"match_function" validate:"required"`
	Value      valueDocument      `json:"value" validate:"required"`
	Designator designatorDocument `json:"designator" validate:"required"`
}

type designatorDocument struct {
	Category      string `json:"category" validate:"required,oneof=subject resource action environment"`
	AttributeID   string `json:"attribute_id" validate:"required"`
	DataType      string `json:"data_type" validate:"required,oneof=string boolean integer"`
	MustBePresent bool   `json:"must_be_present"`
}

type valueDocument struct {
	DataType string `json:"data_type" validate:"required,oneof=string boolean integer"`
	Value    any    `json:"value" validate:"required"`
}

// expressionDocument is one condition node; exactly one field may be set.
type expressionDocument struct {
	Apply      *applyDocument      `json:"apply,omitempty"`
	Designator *designatorDocument `json:"designator,omitempty"`
	Value      *valueDocument      `json:"value,omitempty"`
}

type applyDocument struct {
	Function string               `json:"function" validate:"required"`
	Args     []expressionDocument `json:"args" validate:"required,min=1"`
}

func (d designatorDocument) model() model.AttributeDesignator {
	return model.AttributeDesignator{
		Category:      model.Category(d.Category),
		AttributeID:   d.AttributeID,
		DataType:      model.DataType(d.DataType),
		MustBePresent: d.MustBePresent,
	}
}

func (d valueDocument) model() model.AttributeValue {
	return model.AttributeValue{
		DataType: model.DataType(d.DataType),
		Value:    d.Value,
	}
}
