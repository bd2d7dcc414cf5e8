// audit/repository.go
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const decisionIndex = "decision-logs"

type Repository interface {
	LogDecision(ctx context.Context, log DecisionLog) error
	QueryDecisions(ctx context.Context, from, to time.Time, username, action string) ([]DecisionLog, error)
}

type ElasticsearchRepository struct {
	esClient *elasticsearch.Client
}

// NewElasticsearchRepository creates a new repository with a given Elasticsearch client URL.
func NewElasticsearchRepository(esURL string) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{esURL},
	}
	esClient, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &ElasticsearchRepository{esClient: esClient}, nil
}

// LogDecision indexes one decision record to Elasticsearch.
func (r *ElasticsearchRepository) LogDecision(ctx context.Context, log DecisionLog) error {
	data, err := json.Marshal(log)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      decisionIndex,
		DocumentID: fmt.Sprintf("%d-%s-%s", log.Timestamp.UnixNano(), log.Username, log.Action),
		Body:       strings.NewReader(string(data)),
	}

	res, err := req.Do(ctx, r.esClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}

	return nil
}

// QueryDecisions searches decision records within a time frame, optionally
// filtered by username and action.
func (r *ElasticsearchRepository) QueryDecisions(ctx context.Context, from, to time.Time, username, action string) ([]DecisionLog, error) {
	must := []interface{}{
		map[string]interface{}{
			"range": map[string]interface{}{
				"timestamp": map[string]interface{}{
					"gte": from.Format(time.RFC3339),
					"lte": to.Format(time.RFC3339),
				},
			},
		},
	}

	if username != "" {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{"username": username},
		})
	}
	if action != "" {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{"action": action},
		})
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
	}

	var buf strings.Builder
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, err
	}

	res, err := r.esClient.Search(
		r.esClient.Search.WithContext(ctx),
		r.esClient.Search.WithIndex(decisionIndex),
		r.esClient.Search.WithBody(strings.NewReader(buf.String())),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching documents: %s", res.String())
	}

	var rmap map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&rmap); err != nil {
		return nil, err
	}

	hits := rmap["hits"].(map[string]interface{})["hits"].([]interface{})
	logs := make([]DecisionLog, len(hits))
	for i, hit := range hits {
		source := hit.(map[string]interface{})["_source"]
		data, _ := json.Marshal(source)
		json.Unmarshal(data, &logs[i])
	}

	return logs, nil
}
