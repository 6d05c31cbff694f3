package commons

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, WithPageDelay(0), WithUserAgent("cattree-test/0.1"))
}

func TestSubcategories_FollowsContinuation(t *testing.T) {
	var requests []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		requests = append(requests, q.Get("cmcontinue"))

		assert.Equal(t, "query", q.Get("action"))
		assert.Equal(t, "categorymembers", q.Get("list"))
		assert.Equal(t, "Category:Orkney Islands", q.Get("cmtitle"))
		assert.Equal(t, "subcat", q.Get("cmtype"))
		assert.Equal(t, "500", q.Get("cmlimit"))
		assert.Equal(t, "cattree-test/0.1", r.Header.Get("User-Agent"))

		switch q.Get("cmcontinue") {
		case "":
			w.Write([]byte(`{
				"continue": {"cmcontinue": "subcat|4b4952|123", "continue": "-||"},
				"query": {"categorymembers": [
					{"ns": 14, "title": "Category:Kirkwall"},
					{"ns": 14, "title": "Category:Hoy"}
				]}
			}`))
		case "subcat|4b4952|123":
			assert.Equal(t, "-||", q.Get("continue"))
			w.Write([]byte(`{
				"batchcomplete": "",
				"query": {"categorymembers": [
					{"ns": 14, "title": "Category:Stromness_harbour"}
				]}
			}`))
		default:
			t.Errorf("unexpected continuation %q", q.Get("cmcontinue"))
		}
	})

	names, err := client.Subcategories(context.Background(), "Orkney_Islands")
	require.NoError(t, err)
	assert.Equal(t, []string{"Kirkwall", "Hoy", "Stromness harbour"}, names)
	assert.Len(t, requests, 2)
}

func TestSubcategories_Empty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"batchcomplete": "", "query": {"categorymembers": []}}`))
	})

	names, err := client.Subcategories(context.Background(), "Empty")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestFileCount(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{
			name: "category info present",
			body: `{"query": {"pages": {"123": {"title": "Category:Hoy", "categoryinfo": {"size": 50, "pages": 0, "files": 42, "subcats": 8}}}}}`,
			want: 42,
		},
		{
			name: "missing category info",
			body: `{"query": {"pages": {"-1": {"title": "Category:Nowhere", "missing": ""}}}}`,
			want: 0,
		},
		{
			name: "no pages",
			body: `{"batchcomplete": ""}`,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				assert.Equal(t, "categoryinfo", q.Get("prop"))
				assert.Equal(t, "Category:Hoy", q.Get("titles"))
				w.Write([]byte(tt.body))
			})

			got, err := client.FileCount(context.Background(), "Hoy")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		errMsg  string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
			},
			errMsg: "503",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>maintenance</html>`))
			},
			errMsg: "decode response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			_, err := client.FileCount(context.Background(), "Hoy")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.True(t, strings.Contains(err.Error(), "Hoy"), "error should name the category: %v", err)

			_, err = client.Subcategories(context.Background(), "Hoy")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCanceledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FileCount(ctx, "Hoy")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
