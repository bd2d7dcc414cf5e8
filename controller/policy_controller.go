// controller/policy_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	janus_errors "github.com/dev-rpatel/janus/errors"
	"github.com/dev-rpatel/janus/service"
	"github.com/dev-rpatel/janus/util"
)

type PolicyController struct {
	decisionService service.IDecisionService
}

func NewPolicyController(decisionService service.IDecisionService) *PolicyController {
	return &PolicyController{
		decisionService: decisionService,
	}
}

// RegisterRoutes registers the API routes
func (pc *PolicyController) RegisterRoutes(r *gin.RouterGroup) {
	policies := r.Group("/policies")
	{
		policies.GET("", pc.GetActivePolicySet)
		policies.POST("/reload", pc.ReloadPolicies)
	}
}

// GetActivePolicySet endpoint: a summary of the active policy-set snapshot.
func (pc *PolicyController) GetActivePolicySet(c *gin.Context) {
	policySet := pc.decisionService.ActivePolicySet()
	if policySet == nil {
		util.RespondWithError(c, http.StatusServiceUnavailable, "No policy set loaded", janus_errors.ErrInvalidPolicyDocument)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"policy_set_id":       policySet.PolicySetID,
		"description":         policySet.Description,
		"combining_algorithm": policySet.CombiningAlgorithm,
		"policy_count":        len(policySet.Policies),
		"loaded_at":           policySet.LoadedAt,
	})
}

// ReloadPolicies endpoint: re-read the policy document and atomically swap
// the active set. A rejected document leaves the previous set serving.
func (pc *PolicyController) ReloadPolicies(c *gin.Context) {
	if err := pc.decisionService.ReloadPolicies(c.Request.Context()); err != nil {
		var parseErr *janus_errors.ParseError
		if errors.As(err, &parseErr) {
			util.RespondWithError(c, http.StatusUnprocessableEntity, "Policy document rejected", err)
			return
		}
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to reload policies", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "reloaded"})
}
