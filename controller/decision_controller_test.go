// controller/decision_controller_test.go
package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dev-rpatel/janus/controller"
	"github.com/dev-rpatel/janus/logging"
	"github.com/dev-rpatel/janus/model"
	pdp_model "github.com/dev-rpatel/janus/pdp/model"
	mock_service "github.com/dev-rpatel/janus/test/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
	logging.InitTestLogger()
}

func newDecisionRouter(decisionService *mock_service.MockDecisionService) *gin.Engine {
	router := gin.New()
	group := router.Group("/api/v1")
	controller.NewDecisionController(decisionService).RegisterRoutes(group)
	return router
}

func TestDecide_Permit(t *testing.T) {
	decisionService := new(mock_service.MockDecisionService)
	decisionService.On("Decide", mock.Anything, mock.MatchedBy(func(request pdp_model.AccessRequest) bool {
		return request.Subject.Username == "alice" &&
			request.Subject.Role == "user" &&
			request.Action == "download-file"
	})).Return(pdp_model.AccessDecision{
		Decision:    model.DecisionPermit,
		Allowed:     true,
		Reason:      "permit-download-own-file",
		PolicySetID: "janus-access-policy",
		Timestamp:   time.Now().UTC(),
	}).Once()

	router := newDecisionRouter(decisionService)

	body := `{
		"subject": {"username": "alice", "role": "user"},
		"action": "download-file",
		"resource": {"resource-owner": "alice"}
	}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/decisions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var decision pdp_model.AccessDecision
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decision))
	assert.True(t, decision.Allowed)
	assert.Equal(t, model.DecisionPermit, decision.Decision)
	assert.Equal(t, "janus-access-policy", decision.PolicySetID)

	decisionService.AssertExpectations(t)
}

func TestDecide_NonPermitStillReturnsOK(t *testing.T) {
	decisionService := new(mock_service.MockDecisionService)
	decisionService.On("Decide", mock.Anything, mock.Anything).Return(pdp_model.AccessDecision{
		Decision: model.DecisionNotApplicable,
		Allowed:  false,
		Reason:   "no applicable policy",
	}).Once()

	router := newDecisionRouter(decisionService)

	body := `{
		"subject": {"username": "alice", "role": "user"},
		"action": "launch-nukes"
	}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/decisions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var decision pdp_model.AccessDecision
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decision))
	assert.False(t, decision.Allowed)
	assert.Equal(t, model.DecisionNotApplicable, decision.Decision)
}

func TestDecide_InvalidRequest(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{"subject": `},
		{"missing subject", `{"action": "download-file"}`},
		{"missing action", `{"subject": {"username": "alice", "role": "user"}}`},
		{"blank username", `{"subject": {"username": "", "role": "user"}, "action": "download-file"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decisionService := new(mock_service.MockDecisionService)
			router := newDecisionRouter(decisionService)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/api/v1/decisions", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			decisionService.AssertNotCalled(t, "Decide")
		})
	}
}
