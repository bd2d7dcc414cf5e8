// controller/decision_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	janus_errors "github.com/dev-rpatel/janus/errors"
	pdp_model "github.com/dev-rpatel/janus/pdp/model"
	"github.com/dev-rpatel/janus/service"
	"github.com/dev-rpatel/janus/util"
)

type DecisionController struct {
	decisionService service.IDecisionService
}

func NewDecisionController(decisionService service.IDecisionService) *DecisionController {
	return &DecisionController{
		decisionService: decisionService,
	}
}

// RegisterRoutes registers the API routes
func (dc *DecisionController) RegisterRoutes(r *gin.RouterGroup) {
	decisions := r.Group("/decisions")
	{
		decisions.POST("", dc.Decide)
	}
}

// Decide endpoint: the query form of the enforcement point over the wire.
// The response always carries a decision; default-deny means anything
// other than Permit has allowed=false.
func (dc *DecisionController) Decide(c *gin.Context) {
	var request pdp_model.AccessRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid access request", janus_errors.ErrInvalidAccessRequest)
		return
	}

	decision := dc.decisionService.Decide(c.Request.Context(), request)
	c.JSON(http.StatusOK, decision)
}
