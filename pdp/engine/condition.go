package engine

import (
	"fmt"

	"github.com/dev-rpatel/janus/model"
	pdp_model "github.com/dev-rpatel/janus/pdp/model"
)

// EvaluateCondition evaluates a compiled condition tree against the request
// context. A nil condition is vacuously true: the rule's applicability then
// depends solely on its target.
func EvaluateCondition(condition *model.Expression, ctx *pdp_model.AttributeContext) (bool, error) {
	if condition == nil {
		return true, nil
	}
	return evaluateBool(*condition, ctx)
}

// evaluateBool evaluates an expression expected to produce a boolean.
func evaluateBool(expr model.Expression, ctx *pdp_model.AttributeContext) (bool, error) {
	if expr.Apply == nil {
		// Boolean positions only accept Apply nodes; the parser compiles
		// bare value/designator leaves only as string-equal operands.
		return false, fmt.Errorf("condition node is not a function application")
	}
	apply := expr.Apply
	switch apply.Function {
	case model.FunctionStringEqual:
		left, err := evaluateValue(apply.Args[0], ctx)
		if err != nil {
			return false, err
		}
		right, err := evaluateValue(apply.Args[1], ctx)
		if err != nil {
			return false, err
		}
		return left.Equal(right), nil

	case model.FunctionNot:
		operand, err := evaluateBool(apply.Args[0], ctx)
		if err != nil {
			return false, err
		}
		return !operand, nil

	case model.FunctionOr:
		for _, arg := range apply.Args {
			ok, err := evaluateBool(arg, ctx)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil

	case model.FunctionAnd:
		for _, arg := range apply.Args {
			ok, err := evaluateBool(arg, ctx)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil

	default:
		return false, fmt.Errorf("unsupported function %s", apply.Function)
	}
}

// evaluateValue resolves a leaf operand: a literal or a designated request
// attribute. An optional designator with no matching attribute resolves to
// an empty string value, which compares unequal to any policy literal.
func evaluateValue(expr model.Expression, ctx *pdp_model.AttributeContext) (model.AttributeValue, error) {
	switch {
	case expr.Value != nil:
		return *expr.Value, nil
	case expr.Designator != nil:
		value, present, err := resolveDesignator(*expr.Designator, ctx)
		if err != nil {
			return model.AttributeValue{}, err
		}
		if !present {
			return model.AttributeValue{}, nil
		}
		return value, nil
	default:
		return model.AttributeValue{}, fmt.Errorf("condition operand is not a value or designator")
	}
}
