package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrSubstring(t *testing.T) {
	or := OrSubstring("tokyo", "name", "location", "description")
	assert.Equal(t, "(name.ilike.*tokyo*,location.ilike.*tokyo*,description.ilike.*tokyo*)", or)
}

func TestClient_TableURL(t *testing.T) {
	c := NewClient("https://data.example.com/", "key")

	raw := c.tableURL("destinations", Query{
		Filters: []Filter{
			{Column: "recommended", Op: "eq", Value: "true"},
		},
		Order: &Order{Column: "rating"},
		Limit: 10,
	})

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/rest/v1/destinations", parsed.Path)

	params := parsed.Query()
	assert.Equal(t, "*", params.Get("select"))
	assert.Equal(t, "eq.true", params.Get("recommended"))
	assert.Equal(t, "rating.desc", params.Get("order"))
	assert.Equal(t, "10", params.Get("limit"))
}

func TestClient_TableURL_AscendingAndOr(t *testing.T) {
	c := NewClient("https://data.example.com", "key")

	raw := c.tableURL("site_features", Query{
		Or:    "(name.ilike.*a*,location.ilike.*a*)",
		Order: &Order{Column: "display_order", Ascending: true},
	})

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	params := parsed.Query()
	assert.Equal(t, "display_order.asc", params.Get("order"))
	assert.Equal(t, "(name.ilike.*a*,location.ilike.*a*)", params.Get("or"))
}

func TestClient_Select(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "/rest/v1/destinations", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 1, "name": "东京"}, {"id": 2, "name": "巴黎"}]`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-key")

	var rows []Destination
	require.NoError(t, c.Select(context.Background(), "destinations", Query{}, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "东京", rows[0].Name)
}

func TestClient_SelectSingle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.pgrst.object+json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"id": 7, "name": "东京"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-key")

	var row Destination
	require.NoError(t, c.SelectSingle(context.Background(), "destinations", Query{}, &row))
	assert.Equal(t, 7, row.ID)
}

func TestClient_Insert(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 3, "name": "京都"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-key")

	var created Destination
	require.NoError(t, c.Insert(context.Background(), "destinations", map[string]any{"name": "京都"}, &created))
	assert.Equal(t, 3, created.ID)
}

func TestClient_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"row not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-key")

	var row Destination
	err := c.SelectSingle(context.Background(), "destinations", Query{}, &row)
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
	assert.Contains(t, reqErr.Body, "row not found")
}

func TestTagsLiteral(t *testing.T) {
	assert.Equal(t, `{"海岛","美食"}`, tagsLiteral([]string{"海岛", "美食"}))
	assert.Equal(t, `{}`, tagsLiteral(nil))
}
