package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"akiba/internal/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.TestConfig()
	cfg.API.BaseURL = server.URL
	return NewClient(cfg)
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		json.NewEncoder(w).Encode(User{ID: "u1"})
	})
	client.SetToken("tok-abc")

	_, err := client.Me(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "akiba-test/1.0", got.Get("User-Agent"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "Bearer tok-abc", got.Get("Authorization"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
}

func TestErrorDecoding(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		expectedMsg  string
		unauthorized bool
		notFound     bool
	}{
		{
			name:         "unauthorized with message",
			status:       http.StatusUnauthorized,
			body:         `{"error":"token expired"}`,
			expectedMsg:  "token expired",
			unauthorized: true,
		},
		{
			name:        "not found without body",
			status:      http.StatusNotFound,
			body:        ``,
			expectedMsg: "",
			notFound:    true,
		},
		{
			name:        "server error with junk body",
			status:      http.StatusInternalServerError,
			body:        `<html>nope</html>`,
			expectedMsg: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.Me(context.Background())
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.expectedMsg, apiErr.Message)
			assert.NotEmpty(t, apiErr.RequestID)
			assert.Equal(t, tt.unauthorized, IsUnauthorized(err))
			assert.Equal(t, tt.notFound, IsNotFound(err))
		})
	}
}

func TestContentFiltersValues(t *testing.T) {
	tests := []struct {
		name     string
		filters  ContentFilters
		expected map[string]string
	}{
		{
			name:     "sentinels omitted",
			filters:  ContentFilters{Category: CategoryAll, Difficulty: DifficultyAll, ContentType: ContentTypeAll},
			expected: map[string]string{},
		},
		{
			name: "selected values encoded",
			filters: ContentFilters{
				Category:   CategorySavings,
				Difficulty: DifficultyBeginner,
				Search:     "emergency fund",
				SortBy:     SortRecent,
			},
			expected: map[string]string{
				"category":   "SAVINGS",
				"difficulty": "BEGINNER",
				"search":     "emergency fund",
				"sort_by":    "recent",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := tt.filters.Values()
			assert.Len(t, values, len(tt.expected))
			for k, v := range tt.expected {
				assert.Equal(t, v, values.Get(k))
			}
		})
	}
}

func TestListContentEncodesPaging(t *testing.T) {
	var gotQuery map[string][]string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(ContentPage{Total: 0})
	})
	client.SetToken("tok")

	page, err := client.ListContent(context.Background(), ContentFilters{SortBy: SortPopular}, 3, 12)
	require.NoError(t, err)

	assert.Equal(t, []string{"3"}, gotQuery["page"])
	assert.Equal(t, []string{"12"}, gotQuery["page_size"])
	assert.Equal(t, []string{"popular"}, gotQuery["sort_by"])

	// A nil results array decodes as an empty, non-nil page.
	assert.NotNil(t, page.Results)
	assert.Empty(t, page.Results)
}

func TestDetailCacheFetchesOnce(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(ContentDetail{
			ContentSummary: ContentSummary{ID: "c1", Title: "Saving Basics"},
			Body:           "# Saving Basics",
		})
	})

	cache, err := NewDetailCache(client)
	require.NoError(t, err)

	first, err := cache.Get(context.Background(), "c1")
	require.NoError(t, err)
	second, err := cache.Get(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.Len())

	cache.Invalidate("c1")
	_, err = cache.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestLoginSetsToken(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Identifier string `json:"identifier"`
			Password   string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "+254712345678", req.Identifier)

		json.NewEncoder(w).Encode(Session{Token: "tok-new", User: User{Name: "Wanjiku"}})
	})

	sess, err := client.Login(context.Background(), "+254712345678", "secret")
	require.NoError(t, err)

	assert.Equal(t, "tok-new", sess.Token)
	assert.Equal(t, "tok-new", client.Token())
}
