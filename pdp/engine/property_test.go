// pdp/engine/property_test.go
package engine_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dev-rpatel/janus/model"
	"github.com/dev-rpatel/janus/pdp/engine"
	pdp_model "github.com/dev-rpatel/janus/pdp/model"
)

func TestDecideProperties(t *testing.T) {
	policySet := loadShippedPolicySet(t)
	evaluator := engine.NewEvaluator()

	usernames := gen.OneConstOf("alice", "bob", "mallory", "root", "")
	roles := gen.OneConstOf("user", "moderator", "admin", "intern", "")
	actions := gen.OneConstOf(
		"list-files", "upload-file", "download-file", "delete-file",
		"flag-file", "ban-user", "update-quota", "delete-user", "launch-nukes")
	owners := gen.OneConstOf("alice", "bob", "root", "")
	targetRoles := gen.OneConstOf("user", "moderator", "admin", "")

	buildContext := func(username, role, action, owner, targetRole string) *pdp_model.AttributeContext {
		resource := map[string]string{}
		if owner != "" {
			resource[model.AttributeResourceOwner] = owner
		}
		if targetRole != "" {
			resource[model.AttributeTargetRole] = targetRole
		}
		return pdp_model.NewRequestContext(username, role, action, resource)
	}

	properties := gopter.NewProperties(nil)

	properties.Property("evaluation is idempotent", prop.ForAll(
		func(username, role, action, owner, targetRole string) bool {
			ctx := buildContext(username, role, action, owner, targetRole)
			first := evaluator.Decide(policySet, ctx)
			second := evaluator.Decide(policySet, ctx)
			return first == second
		},
		usernames, roles, actions, owners, targetRoles,
	))

	properties.Property("decision is always one of the four outcomes", prop.ForAll(
		func(username, role, action, owner, targetRole string) bool {
			ctx := buildContext(username, role, action, owner, targetRole)
			switch evaluator.Decide(policySet, ctx) {
			case model.DecisionPermit, model.DecisionDeny,
				model.DecisionNotApplicable, model.DecisionIndeterminate:
				return true
			default:
				return false
			}
		},
		usernames, roles, actions, owners, targetRoles,
	))

	properties.Property("unknown roles are never permitted", prop.ForAll(
		func(username, action, owner, targetRole string) bool {
			ctx := buildContext(username, "intern", action, owner, targetRole)
			return evaluator.Decide(policySet, ctx) != model.DecisionPermit
		},
		usernames, actions, owners, targetRoles,
	))

	properties.TestingRun(t)
}
