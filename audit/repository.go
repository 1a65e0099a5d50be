// api/audit/repository.go
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

type Repository interface {
	Index(ctx context.Context, entry Entry) error
	Query(ctx context.Context, filter Filter) ([]Entry, error)
}

type ElasticsearchRepository struct {
	esClient *elasticsearch.Client
	index    string
}

// NewElasticsearchRepository creates a repository against the given
// Elasticsearch URL and index.
func NewElasticsearchRepository(esURL, index string) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{esURL},
	}
	esClient, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if index == "" {
		index = "access-decisions"
	}
	return &ElasticsearchRepository{esClient: esClient, index: index}, nil
}

// Index writes a single audit entry.
func (r *ElasticsearchRepository) Index(ctx context.Context, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      r.index,
		DocumentID: entry.ID,
		Body:       strings.NewReader(string(data)),
		Refresh:    "true",
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

// Query searches audit entries matching the filter, newest first.
func (r *ElasticsearchRepository) Query(ctx context.Context, filter Filter) ([]Entry, error) {
	must := []interface{}{}

	if !filter.From.IsZero() || !filter.To.IsZero() {
		timeRange := map[string]interface{}{}
		if !filter.From.IsZero() {
			timeRange["gte"] = filter.From.Format(time.RFC3339)
		}
		if !filter.To.IsZero() {
			timeRange["lte"] = filter.To.Format(time.RFC3339)
		}
		must = append(must, map[string]interface{}{
			"range": map[string]interface{}{"timestamp": timeRange},
		})
	}
	if filter.PrincipalID != "" {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{"principal_id": filter.PrincipalID},
		})
	}
	if filter.Resource != "" {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{"resource": filter.Resource},
		})
	}
	if filter.Source != "" {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{"source": filter.Source},
		})
	}
	if filter.Allowed != nil {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{"allowed": *filter.Allowed},
		})
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
		"sort": []interface{}{
			map[string]interface{}{"timestamp": map[string]interface{}{"order": "desc"}},
		},
	}
	if filter.Limit > 0 {
		query["size"] = filter.Limit
	}
	if filter.Offset > 0 {
		query["from"] = filter.Offset
	}

	var buf strings.Builder
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, err
	}

	res, err := r.esClient.Search(
		r.esClient.Search.WithContext(ctx),
		r.esClient.Search.WithIndex(r.index),
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
	entries := make([]Entry, len(hits))
	for i, hit := range hits {
		source := hit.(map[string]interface{})["_source"]
		data, _ := json.Marshal(source)
		json.Unmarshal(data, &entries[i])
	}

	return entries, nil
}
