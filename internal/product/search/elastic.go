package search

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	pkgsearch "github.com/fekuna/omnipos-catalog-service/pkg/search"
)

const productMapping = `{
	"mappings": {
		"properties": {
			"name": { "type": "text" },
			"description": { "type": "text" },
			"productTypeId": { "type": "keyword" },
			"productType": { "type": "text", "fields": { "raw": { "type": "keyword" } } },
			"createdAt": { "type": "date" }
		}
	}
}`

type document struct {
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	ProductTypeID string    `json:"productTypeId"`
	ProductType   string    `json:"productType,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Engine is the subset of the Elasticsearch client the product index needs.
type Engine interface {
	EnsureIndex(ctx context.Context, index, mapping string) error
	Index(ctx context.Context, index, id string, doc any) error
	Delete(ctx context.Context, index, id string) error
	Search(ctx context.Context, index string, query map[string]any) (*pkgsearch.SearchResponse, error)
}

// ElasticIndex keeps product documents in one Elasticsearch index.
type ElasticIndex struct {
	engine Engine
	index  string
}

func NewElasticIndex(engine Engine, index string) *ElasticIndex {
	return &ElasticIndex{engine: engine, index: index}
}

// EnsureIndex creates the product index if it does not exist yet.
func (e *ElasticIndex) EnsureIndex(ctx context.Context) error {
	return e.engine.EnsureIndex(ctx, e.index, productMapping)
}

func (e *ElasticIndex) IndexProduct(ctx context.Context, p *model.Product) error {
	doc := document{
		Name:          p.Name,
		ProductTypeID: p.ProductTypeID,
		CreatedAt:     p.CreatedAt,
	}
	if p.Description != nil {
		doc.Description = *p.Description
	}
	if p.ProductType != nil {
		doc.ProductType = p.ProductType.Name
	}
	return e.engine.Index(ctx, e.index, p.ID, doc)
}

func (e *ElasticIndex) RemoveProduct(ctx context.Context, id string) error {
	return e.engine.Delete(ctx, e.index, id)
}

// SearchProductIDs returns matching product ids ordered by relevance.
func (e *ElasticIndex) SearchProductIDs(ctx context.Context, query string, limit int) ([]string, error) {
	q := map[string]any{
		"size": limit,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^3", "productType^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"_source": false,
	}

	res, err := e.engine.Search(ctx, e.index, q)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}
