package engine

import (
	janus_errors "github.com/dev-rpatel/janus/errors"
	"github.com/dev-rpatel/janus/model"
	pdp_model "github.com/dev-rpatel/janus/pdp/model"
)

// resolveDesignator looks up the designated attribute in the request
// context. A missing attribute is an error only when the designator says it
// must be present; otherwise the caller sees a plain non-match.
func resolveDesignator(designator model.AttributeDesignator, ctx *pdp_model.AttributeContext) (model.AttributeValue, bool, error) {
	value, ok := ctx.Lookup(designator.Category, designator.AttributeID)
	if !ok {
		if designator.MustBePresent {
			return model.AttributeValue{}, false, &janus_errors.MissingAttributeError{
				Category:    designator.Category,
				AttributeID: designator.AttributeID,
			}
		}
		return model.AttributeValue{}, false, nil
	}
	return value, true, nil
}

// Matches evaluates a target against the request context: true iff at least
// one AllOf group has every Match true. An empty target matches every
// request; that is how unconditional policies and rules are written.
func Matches(target model.Target, ctx *pdp_model.AttributeContext) (bool, error) {
	if target.Empty() {
		return true, nil
	}
	for _, allOf := range target.AnyOf {
		matched, err := matchAllOfGroup(allOf, ctx)
		if err != nil {
			return false, err
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

func matchAllOfGroup(allOf model.AllOf, ctx *pdp_model.AttributeContext) (bool, error) {
	for _, match := range allOf.Matches {
		ok, err := evaluateMatch(match, ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func evaluateMatch(match model.Match, ctx *pdp_model.AttributeContext) (bool, error) {
	value, present, err := resolveDesignator(match.Designator, ctx)
	if err != nil {
		return false, err
	}
	if !present {
		return false, nil
	}
	// Parse-time validation restricts target match functions to
	// string-equal.
	return match.Value.Equal(value), nil
}
