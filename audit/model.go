// audit/model.go
package audit

import (
	"time"

	"github.com/dev-rpatel/janus/model"
)

// DecisionLog is one structured record per policy decision, the audit
// output consumed by the external log aggregator. Both permits and denies
// are recorded.
type DecisionLog struct {
	Timestamp         time.Time         `json:"timestamp"`
	Username          string            `json:"username"`
	Subject           map[string]string `json:"subject,omitempty"`
	Action            string            `json:"action"`
	Resource          map[string]string `json:"resource,omitempty"`
	Decision          model.Decision    `json:"decision"`
	Allowed           bool              `json:"allowed"`
	Reason            string            `json:"reason,omitempty"`
	PolicySetID       string            `json:"policy_set_id,omitempty"`
	EvaluatedPolicies []string          `json:"evaluated_policies,omitempty"`
}
