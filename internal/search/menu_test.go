package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bistro/internal/models"
)

func TestSearchBody(t *testing.T) {
	body := searchBody("salad", 20, 10)
	assert.Equal(t, 20, body["from"])
	assert.Equal(t, 10, body["size"])
	mm := body["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "salad", mm["query"])
	assert.Equal(t, "AUTO", mm["fuzziness"])
}

func TestDecodeHits(t *testing.T) {
	raw := `{"hits":{"total":{"value":2},"hits":[
		{"_source":{"id":"a","name":"Caesar","category":"salad","price":8.5}},
		{"_source":{"id":"b","name":"Greek","category":"salad","price":"7"}}]}}`

	total, items, err := decodeHits(strings.NewReader(raw))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "Caesar", items[0].Name)
	assert.True(t, decimal.RequireFromString("8.5").Equal(items[0].Price))
	assert.True(t, decimal.NewFromInt(7).Equal(items[1].Price))
}

// fakeES answers like a single-node cluster so the client's product check passes.
func fakeES(t *testing.T, handle func(w http.ResponseWriter, r *http.Request)) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handle(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es
}

func TestPutAndRemove(t *testing.T) {
	var paths []string
	var indexed document
	es := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodPut {
			b, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(b, &indexed)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"result":"created"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	})

	idx := NewMenuIndex(es, "menu")
	require.NoError(t, idx.Put(context.Background(), models.MenuItem{ID: "m1", Name: "Soup", Category: "soup", Price: decimal.NewFromInt(4)}))
	require.NoError(t, idx.Remove(context.Background(), "m1"))

	assert.Equal(t, []string{"PUT /menu/_doc/m1", "DELETE /menu/_doc/m1"}, paths)
	assert.Equal(t, "Soup", indexed.Name)
	assert.Equal(t, "m1", indexed.ID)
}

func TestSearchReportsClusterErrors(t *testing.T) {
	es := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad query"}`))
	})

	_, _, err := NewMenuIndex(es, "menu").Search(context.Background(), "x", 0, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad query")
}
