// pdp/engine/evaluator_test.go
package engine_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-rpatel/janus/model"
	"github.com/dev-rpatel/janus/pdp/engine"
	pdp_model "github.com/dev-rpatel/janus/pdp/model"
	"github.com/dev-rpatel/janus/policy"
)

// loadShippedPolicySet parses the policy document the repository ships, so
// the evaluator tests exercise the same tree production runs against.
func loadShippedPolicySet(t *testing.T) *model.PolicySet {
	t.Helper()
	documentBytes, err := os.ReadFile("../../policies/policy.json")
	require.NoError(t, err)
	policySet, err := policy.LoadPolicies(documentBytes)
	require.NoError(t, err)
	return policySet
}

func TestDecide_AccessControlCases(t *testing.T) {
	policySet := loadShippedPolicySet(t)
	evaluator := engine.NewEvaluator()

	tests := []struct {
		name     string
		username string
		role     string
		action   string
		resource map[string]string
		want     model.Decision
	}{
		{
			name:     "default deny: action with no rule anywhere",
			username: "alice", role: "user", action: "launch-nukes",
			want: model.DecisionNotApplicable,
		},
		{
			name:     "user may list files",
			username: "alice", role: "user", action: "list-files",
			want: model.DecisionPermit,
		},
		{
			name:     "owner may delete own file",
			username: "alice", role: "user", action: "delete-file",
			resource: map[string]string{model.AttributeResourceOwner: "alice"},
			want:     model.DecisionPermit,
		},
		{
			name:     "non-owner may not delete someone else's file",
			username: "alice", role: "user", action: "delete-file",
			resource: map[string]string{model.AttributeResourceOwner: "bob"},
			want:     model.DecisionNotApplicable,
		},
		{
			name:     "ownership check with absent owner is not an error",
			username: "alice", role: "user", action: "delete-file",
			want: model.DecisionNotApplicable,
		},
		{
			name:     "moderator policy never fires for plain users",
			username: "alice", role: "user", action: "flag-file",
			want: model.DecisionNotApplicable,
		},
		{
			name:     "moderator may flag files",
			username: "mallory", role: "moderator", action: "flag-file",
			want: model.DecisionPermit,
		},
		{
			name:     "moderator may ban a regular user",
			username: "mallory", role: "moderator", action: "ban-user",
			resource: map[string]string{model.AttributeTargetRole: "user"},
			want:     model.DecisionPermit,
		},
		{
			name:     "moderator may not ban an admin",
			username: "mallory", role: "moderator", action: "ban-user",
			resource: map[string]string{model.AttributeTargetRole: "admin"},
			want:     model.DecisionNotApplicable,
		},
		{
			name:     "admin may update quota of a regular user",
			username: "root", role: "admin", action: "update-quota",
			resource: map[string]string{model.AttributeTargetRole: "user"},
			want:     model.DecisionPermit,
		},
		{
			name:     "admin may not update quota of an admin",
			username: "root", role: "admin", action: "update-quota",
			resource: map[string]string{model.AttributeTargetRole: "admin"},
			want:     model.DecisionNotApplicable,
		},
		{
			name:     "admin may not update quota of a moderator",
			username: "root", role: "admin", action: "update-quota",
			resource: map[string]string{model.AttributeTargetRole: "moderator"},
			want:     model.DecisionNotApplicable,
		},
		{
			name:     "quota update without target role is indeterminate",
			username: "root", role: "admin", action: "update-quota",
			want: model.DecisionIndeterminate,
		},
		{
			name:     "explicit deny: admin may not upload files",
			username: "root", role: "admin", action: "upload-file",
			want: model.DecisionDeny,
		},
		{
			name:     "explicit deny: admin may not delete files",
			username: "root", role: "admin", action: "delete-file",
			resource: map[string]string{model.AttributeResourceOwner: "root"},
			want:     model.DecisionDeny,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := pdp_model.NewRequestContext(tt.username, tt.role, tt.action, tt.resource)
			decision := evaluator.Decide(policySet, ctx)
			assert.Equal(t, tt.want, decision)
		})
	}
}

func TestDecide_DenyOverridesRegardlessOfRuleOrder(t *testing.T) {
	// Both rules apply to every request in both orders; the deny must win.
	documents := []string{
		`{
          "policy_set_id": "order-test",
          "policy_combining_algorithm": "deny-overrides",
          "policies": [
            {
              "policy_id": "p1",
              "rule_combining_algorithm": "deny-overrides",
              "rules": [
                {"rule_id": "permit-all", "effect": "Permit"},
                {"rule_id": "deny-all", "effect": "Deny"}
              ]
            }
          ]
        }`,
		`{
          "policy_set_id": "order-test",
          "policy_combining_algorithm": "deny-overrides",
          "policies": [
            {
              "policy_id": "p1",
              "rule_combining_algorithm": "deny-overrides",
              "rules": [
                {"rule_id": "deny-all", "effect": "Deny"},
                {"rule_id": "permit-all", "effect": "Permit"}
              ]
            }
          ]
        }`,
	}

	evaluator := engine.NewEvaluator()
	ctx := pdp_model.NewRequestContext("alice", "user", "anything", nil)

	for _, document := range documents {
		policySet, err := policy.LoadPolicies([]byte(document))
		require.NoError(t, err)
		assert.Equal(t, model.DecisionDeny, evaluator.Decide(policySet, ctx))
	}
}

func TestDecide_DenyInOnePolicyOverridesPermitInAnother(t *testing.T) {
	document := `{
      "policy_set_id": "cross-policy",
      "policy_combining_algorithm": "deny-overrides",
      "policies": [
        {
          "policy_id": "permitting",
          "rule_combining_algorithm": "deny-overrides",
          "rules": [{"rule_id": "permit-all", "effect": "Permit"}]
        },
        {
          "policy_id": "denying",
          "rule_combining_algorithm": "deny-overrides",
          "rules": [{"rule_id": "deny-all", "effect": "Deny"}]
        }
      ]
    }`

	policySet, err := policy.LoadPolicies([]byte(document))
	require.NoError(t, err)

	ctx := pdp_model.NewRequestContext("alice", "user", "anything", nil)
	assert.Equal(t, model.DecisionDeny, engine.NewEvaluator().Decide(policySet, ctx))
}

func TestDecide_NilPolicySetIsNotApplicable(t *testing.T) {
	ctx := pdp_model.NewRequestContext("alice", "user", "anything", nil)
	assert.Equal(t, model.DecisionNotApplicable, engine.NewEvaluator().Decide(nil, ctx))
}

func TestDecideWithTrace_ReportsContributingPolicies(t *testing.T) {
	policySet := loadShippedPolicySet(t)
	evaluator := engine.NewEvaluator()

	ctx := pdp_model.NewRequestContext("root", "admin", "upload-file", nil)
	trace := evaluator.DecideWithTrace(policySet, ctx)

	assert.Equal(t, model.DecisionDeny, trace.Decision)
	assert.Equal(t, []string{"admin-operations"}, trace.EvaluatedPolicyIDs())
	assert.NotEmpty(t, trace.Reason())

	// Policies whose target does not match are excluded from combination.
	for _, policyResult := range trace.Policies {
		if policyResult.PolicyID == "user-operations" || policyResult.PolicyID == "moderator-operations" {
			assert.Equal(t, model.DecisionNotApplicable, policyResult.Decision)
			assert.Empty(t, policyResult.Rules)
		}
	}
}
