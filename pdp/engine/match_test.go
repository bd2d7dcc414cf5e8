// pdp/engine/match_test.go
package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	janus_errors "github.com/dev-rpatel/janus/errors"
	"github.com/dev-rpatel/janus/model"
	"github.com/dev-rpatel/janus/pdp/engine"
	pdp_model "github.com/dev-rpatel/janus/pdp/model"
)

func roleMatch(role string) model.Match {
	return model.Match{
		Function: model.FunctionStringEqual,
		Value:    model.StringValue(role),
		Designator: model.AttributeDesignator{
			Category:      model.CategorySubject,
			AttributeID:   model.AttributeRole,
			DataType:      model.DataTypeString,
			MustBePresent: true,
		},
	}
}

func ownerMatch(owner string, mustBePresent bool) model.Match {
	return model.Match{
		Function: model.FunctionStringEqual,
		Value:    model.StringValue(owner),
		Designator: model.AttributeDesignator{
			Category:      model.CategoryResource,
			AttributeID:   model.AttributeResourceOwner,
			DataType:      model.DataTypeString,
			MustBePresent: mustBePresent,
		},
	}
}

func TestMatches_EmptyTargetMatchesEverything(t *testing.T) {
	ctx := pdp_model.NewAttributeContext()

	matched, err := engine.Matches(model.Target{}, ctx)
	require.NoError(t, err)
	assert.True(t, matched)
}

func TestMatches_SingleMatch(t *testing.T) {
	target := model.Target{AnyOf: []model.AllOf{{Matches: []model.Match{roleMatch("moderator")}}}}

	t.Run("matching attribute", func(t *testing.T) {
		ctx := pdp_model.NewRequestContext("alice", "moderator", "flag-file", nil)
		matched, err := engine.Matches(target, ctx)
		require.NoError(t, err)
		assert.True(t, matched)
	})

	t.Run("non-matching attribute", func(t *testing.T) {
		ctx := pdp_model.NewRequestContext("alice", "user", "flag-file", nil)
		matched, err := engine.Matches(target, ctx)
		require.NoError(t, err)
		assert.False(t, matched)
	})
}

func TestMatches_AnyOfIsDisjunctionOfConjunctions(t *testing.T) {
	// role==admin AND owner==root, OR role==user
	target := model.Target{AnyOf: []model.AllOf{
		{Matches: []model.Match{roleMatch("admin"), ownerMatch("root", false)}},
		{Matches: []model.Match{roleMatch("user")}},
	}}

	tests := []struct {
		name    string
		role    string
		owner   string
		matched bool
	}{
		{"first group fully satisfied", "admin", "root", true},
		{"first group half satisfied", "admin", "guest", false},
		{"second group satisfied", "user", "", true},
		{"neither group satisfied", "moderator", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resourceAttrs map[string]string
			if tt.owner != "" {
				resourceAttrs = map[string]string{model.AttributeResourceOwner: tt.owner}
			}
			ctx := pdp_model.NewRequestContext("alice", tt.role, "x", resourceAttrs)

			matched, err := engine.Matches(target, ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.matched, matched)
		})
	}
}

func TestMatches_OptionalAttributeAbsentIsNonMatch(t *testing.T) {
	target := model.Target{AnyOf: []model.AllOf{{Matches: []model.Match{ownerMatch("alice", false)}}}}
	ctx := pdp_model.NewRequestContext("alice", "user", "delete-file", nil)

	matched, err := engine.Matches(target, ctx)
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestMatches_RequiredAttributeAbsentIsError(t *testing.T) {
	target := model.Target{AnyOf: []model.AllOf{{Matches: []model.Match{ownerMatch("alice", true)}}}}
	ctx := pdp_model.NewRequestContext("alice", "user", "delete-file", nil)

	_, err := engine.Matches(target, ctx)
	require.Error(t, err)

	var missingErr *janus_errors.MissingAttributeError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, model.CategoryResource, missingErr.Category)
	assert.Equal(t, model.AttributeResourceOwner, missingErr.AttributeID)
}
