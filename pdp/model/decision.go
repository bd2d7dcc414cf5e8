package model

import (
	"time"

	"github.com/dev-rpatel/janus/model"
)

// AccessDecision is the outcome handed back to callers. Status collapses the
// four-valued decision into allowed/rejected under default-deny: anything
// other than exactly Permit is rejected.
type AccessDecision struct {
	Decision    model.Decision `json:"decision"`
	Allowed     bool           `json:"allowed"`
	Reason      string         `json:"reason,omitempty"`
	PolicySetID string         `json:"policy_set_id,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}
