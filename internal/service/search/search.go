package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Ovsyanko/farm_market/internal/models"
)

// Index pushes one crop document. Indexing is best effort: the listing is
// already committed when this runs, a failed index never rolls it back.
func Index(ctx context.Context, es *elasticsearch.Client, index string, crop models.Crop) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(crop); err != nil {
		return err
	}

	res, err := es.Index(
		index,
		&buf,
		es.Index.WithContext(ctx),
		es.Index.WithDocumentID(strconv.FormatUint(uint64(crop.ID), 10)),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index crop: %s", res.Status())
	}
	return nil
}

func Search(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []models.Crop, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2", "quantity"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, err
	}

	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search crops: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Crop `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	crops := make([]models.Crop, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		crops[i] = hit.Source
	}
	return r.Hits.Total.Value, crops, nil
}
