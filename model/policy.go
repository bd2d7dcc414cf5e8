// model/policy.go
package model

import (
	"fmt"
	"time"
)

// CombiningDenyOverrides is the only combining algorithm the engine
// implements: any applicable Deny wins over any number of Permits.
const CombiningDenyOverrides = "deny-overrides"

// Function enumerates the match/condition functions the engine supports.
// Function names in policy documents are resolved to this enum once at
// parse time; evaluation never dispatches on strings.
type Function int

const (
	FunctionStringEqual Function = iota
	FunctionNot
	FunctionOr
	FunctionAnd
)

const (
	functionNameStringEqual = "string-equal"
	functionNameNot         = "not"
	functionNameOr          = "or"
	functionNameAnd         = "and"
)

// ParseFunction resolves a policy-document function name to its enum value.
func ParseFunction(name string) (Function, error) {
	switch name {
	case functionNameStringEqual:
		return FunctionStringEqual, nil
	case functionNameNot:
		return FunctionNot, nil
	case functionNameOr:
		return FunctionOr, nil
	case functionNameAnd:
		return FunctionAnd, nil
	default:
		return 0, fmt.Errorf("unknown function %q", name)
	}
}

// String returns the document-form name of the function.
func (f Function) String() string {
	switch f {
	case FunctionStringEqual:
		return functionNameStringEqual
	case FunctionNot:
		return functionNameNot
	case FunctionOr:
		return functionNameOr
	case FunctionAnd:
		return functionNameAnd
	default:
		return fmt.Sprintf("function(%d)", int(f))
	}
}

// Match compares a literal value against a designated request attribute
// using a match function. Only string-equal is accepted in targets.
type Match struct {
	Function   Function
	Value      AttributeValue
	Designator AttributeDesignator
}

// AllOf is a conjunction: every Match must hold.
type AllOf struct {
	Matches []Match
}

// Target decides whether a Policy or Rule applies to a request at all: a
// disjunction of conjunctions, true when at least one AllOf group has every
// Match true. An empty Target (no AnyOf children) matches every request.
type Target struct {
	AnyOf []AllOf
}

// Empty reports whether the target matches unconditionally.
func (t Target) Empty() bool {
	return len(t.AnyOf) == 0
}

// Expression is one node of a compiled condition tree. Exactly one of the
// three fields is set: Apply for function application, Designator for an
// attribute lookup leaf, Value for a literal leaf.
type Expression struct {
	Apply      *Apply
	Designator *AttributeDesignator
	Value      *AttributeValue
}

// Apply applies an enumerated function to its argument expressions.
type Apply struct {
	Function Function
	Args     []Expression
}

// Rule is the leaf decision unit: if its Target matches and its Condition
// holds, it contributes its Effect.
type Rule struct {
	RuleID      string
	Description string
	Effect      Effect
	Target      Target
	Condition   *Expression
}

// Policy is an ordered list of Rules behind a shared Target, combined with
// deny-overrides.
type Policy struct {
	PolicyID           string
	Description        string
	CombiningAlgorithm string
	Target             Target
	Rules              []Rule
}

// PolicySet is the root of the policy tree. It is immutable after parsing;
// reload replaces the whole set atomically rather than mutating it.
type PolicySet struct {
	PolicySetID        string
	Description        string
	CombiningAlgorithm string
	Policies           []Policy
	LoadedAt           time.Time
}
