package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/bistro/internal/models"
)

// document is the indexed form of a menu item. Elasticsearch reserves _id, so
// the id travels as a plain field.
type document struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Recipe   string          `json:"recipe,omitempty"`
	Image    string          `json:"image,omitempty"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

func toDocument(item models.MenuItem) document {
	return document{ID: item.ID, Name: item.Name, Recipe: item.Recipe, Image: item.Image, Category: item.Category, Price: item.Price}
}

func (d document) toModel() models.MenuItem {
	return models.MenuItem{ID: d.ID, Name: d.Name, Recipe: d.Recipe, Image: d.Image, Category: d.Category, Price: d.Price}
}

// MenuIndex keeps menu items searchable in one Elasticsearch index.
type MenuIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewMenuIndex(es *elasticsearch.Client, index string) *MenuIndex {
	return &MenuIndex{ES: es, Index: index}
}

func (m *MenuIndex) Put(ctx context.Context, item models.MenuItem) error {
	body, err := json.Marshal(toDocument(item))
	if err != nil {
		return err
	}
	res, err := m.ES.Index(m.Index, bytes.NewReader(body),
		m.ES.Index.WithContext(ctx),
		m.ES.Index.WithDocumentID(item.ID),
	)
	if err != nil {
		return fmt.Errorf("index menu item %s: %w", item.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index menu item", res.Status(), res.Body)
	}
	return nil
}

func (m *MenuIndex) Remove(ctx context.Context, id string) error {
	res, err := m.ES.Delete(m.Index, id, m.ES.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("remove menu item %s: %w", id, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("remove menu item", res.Status(), res.Body)
	}
	return nil
}

func (m *MenuIndex) Search(ctx context.Context, query string, from, size int) (int64, []models.MenuItem, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(searchBody(query, from, size)); err != nil {
		return 0, nil, err
	}

	res, err := m.ES.Search(
		m.ES.Search.WithContext(ctx),
		m.ES.Search.WithIndex(m.Index),
		m.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search menu: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, responseError("search menu", res.Status(), res.Body)
	}
	return decodeHits(res.Body)
}

func searchBody(query string, from, size int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "category", "recipe"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}
}

func decodeHits(r io.Reader) (int64, []models.MenuItem, error) {
	var out struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return 0, nil, fmt.Errorf("decode search response: %w", err)
	}
	items := make([]models.MenuItem, len(out.Hits.Hits))
	for i, h := range out.Hits.Hits {
		items[i] = h.Source.toModel()
	}
	return out.Hits.Total.Value, items, nil
}

func responseError(op, status string, body io.Reader) error {
	b, _ := io.ReadAll(io.LimitReader(body, 1024))
	return fmt.Errorf("%s: %s: %s", op, status, bytes.TrimSpace(b))
}
