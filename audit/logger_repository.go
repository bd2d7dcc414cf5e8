// audit/logger_repository.go
package audit

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	logger "github.com/dev-rpatel/janus/logging"
)

// ErrQueryNotSupported is returned by repositories that only emit records.
var ErrQueryNotSupported = errors.New("audit query not supported by this repository")

// LoggerRepository writes decision records through the application logger.
// It is the default sink when no Elasticsearch URL is configured; the log
// aggregator picks the records up from the structured log stream.
type LoggerRepository struct{}

func NewLoggerRepository() *LoggerRepository {
	return &LoggerRepository{}
}

func (r *LoggerRepository) LogDecision(_ context.Context, log DecisionLog) error {
	logger.Info("Access decision",
		zap.Time("timestamp", log.Timestamp),
		zap.String("username", log.Username),
		zap.Any("subject", log.Subject),
		zap.String("action", log.Action),
		zap.Any("resource", log.Resource),
		zap.String("decision", string(log.Decision)),
		zap.Bool("allowed", log.Allowed),
		zap.String("reason", log.Reason),
		zap.String("policySetID", log.PolicySetID),
		zap.Strings("evaluatedPolicies", log.EvaluatedPolicies),
	)
	return nil
}

func (r *LoggerRepository) QueryDecisions(context.Context, time.Time, time.Time, string, string) ([]DecisionLog, error) {
	return nil, ErrQueryNotSupported
}
