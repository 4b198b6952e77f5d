package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/0xpinara/company-tracker/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer serves a fixed status and body for one path.
func newTestServer(t *testing.T, method, path string, status int, contentType, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path || r.Method != method {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(&hits, 1)
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestFetchStats(t *testing.T) {
	body := `{
		"total_mentions": 42,
		"recent_mentions": 5,
		"company_mentions": [{"company_name": "Acme", "count": 9}],
		"source_mentions": [],
		"fund_mentions": [{"fund": "FUND I"}],
		"recent_details": [{"id": 7, "company_name": "Acme", "title": "Acme raises", "url": "https://x", "source": "Google News", "sentiment_score": 0.4}]
	}`
	srv, hits := newTestServer(t, http.MethodGet, PathStats, http.StatusOK, "application/json", body)

	c := NewClient(Options{BaseURL: srv.URL + "/"})
	snap, err := c.FetchStats(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
	assert.Equal(t, 42, snap.TotalMentions)
	assert.Equal(t, 5, snap.RecentMentions)
	assert.Equal(t, []CompanyCount{{CompanyName: "Acme", Count: 9}}, snap.CompanyMentions)
	assert.Empty(t, snap.SourceMentions)
	assert.Equal(t, 1, snap.ActiveCompanies())
	require.Len(t, snap.RecentDetails, 1)
	assert.Equal(t, "positive", snap.RecentDetails[0].Sentiment())
}

func TestFetchStats_NoAuthHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"total_mentions":0,"recent_mentions":0,"company_mentions":[],"source_mentions":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient(Options{BaseURL: srv.URL}).FetchStats(context.Background())
	require.NoError(t, err)
}

func TestFetchStats_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantMsg     string
	}{
		{"html body", http.StatusOK, "text/html", "<html>oops</html>", "Unexpected response body"},
		{"truncated json", http.StatusOK, "application/json", `{"total_mentions": 4`, "Unexpected response body"},
		{"server error", http.StatusInternalServerError, "text/plain", "boom", "Backend returned 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, http.MethodGet, PathStats, tt.status, tt.contentType, tt.body)

			snap, err := NewClient(Options{BaseURL: srv.URL}).FetchStats(context.Background())
			require.Error(t, err)
			assert.Nil(t, snap)
			assert.True(t, errors.IsCode(err, errors.ErrHTTP))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestFetchStats_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(Options{BaseURL: url, Timeout: time.Second}).FetchStats(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrHTTP))
	assert.Contains(t, err.Error(), "Couldn't reach")
}

func TestFetchStats_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(Options{BaseURL: srv.URL}).FetchStats(ctx)
	require.Error(t, err)
}

func TestRunMonitoring(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		wantSuccess bool
		wantMessage string
	}{
		{
			name:        "success",
			status:      http.StatusOK,
			body:        `{"success": true, "message": "Monitoring completed successfully"}`,
			wantSuccess: true,
			wantMessage: "Monitoring completed successfully",
		},
		{
			name:        "logical failure",
			status:      http.StatusOK,
			body:        `{"success": false, "message": "rate limited"}`,
			wantMessage: "rate limited",
		},
		{
			name:        "error status with message body",
			status:      http.StatusInternalServerError,
			body:        `{"success": true, "message": "scanner crashed"}`,
			wantMessage: "scanner crashed",
		},
		{
			name:    "error status without body",
			status:  http.StatusBadGateway,
			body:    "bad gateway",
			wantErr: true,
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    "not json",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, http.MethodGet, PathRunMonitoring, tt.status, "application/json", tt.body)

			res, err := NewClient(Options{BaseURL: srv.URL}).RunMonitoring(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrHTTP))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSuccess, res.Success)
			assert.Equal(t, tt.wantMessage, res.Message)
		})
	}
}

func TestRunMonitoring_UsesMonitorTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(150 * time.Millisecond)
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond, MonitorTimeout: 5 * time.Second})

	res, err := c.RunMonitoring(context.Background())
	require.NoError(t, err, "monitoring has its own, longer timeout")
	assert.True(t, res.Success)

	_, err = c.FetchStats(context.Background())
	assert.Error(t, err, "regular requests use the short timeout")
}

func TestCompaniesAndMentions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(PathCompanies, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"Vectroid","fund":"FUND I","website":"vectroid.com","keywords":["Vectroid","vector database"]}]`))
	})
	mux.HandleFunc(PathMentions, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"company_name":"Vectroid","title":"Launch","url":"https://a","source":"Hacker News","sentiment_score":-0.5},
			{"id":2,"company_name":"Kuzudb","title":"Release","url":"https://b","source":"Reddit","sentiment_score":null}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})

	companies, err := c.Companies(context.Background())
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "Vectroid", companies[0].Name)
	assert.Equal(t, []string{"Vectroid", "vector database"}, companies[0].Keywords)

	mentions, err := c.Mentions(context.Background())
	require.NoError(t, err)
	require.Len(t, mentions, 2)
	assert.Equal(t, "negative", mentions[0].Sentiment())
	assert.Nil(t, mentions[1].SentimentScore)
	assert.Equal(t, "neutral", mentions[1].Sentiment())
}

func TestCleanFalsePositives(t *testing.T) {
	srv, _ := newTestServer(t, http.MethodGet, PathCleanFalsePositives, http.StatusOK, "application/json",
		`{"success": true, "message": "Removed 3 false positive mentions", "deleted_count": 3}`)

	res, err := NewClient(Options{BaseURL: srv.URL}).CleanFalsePositives(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 3, res.DeletedCount)
}

func TestCleanFalsePositives_ServerFailure(t *testing.T) {
	srv, _ := newTestServer(t, http.MethodGet, PathCleanFalsePositives, http.StatusInternalServerError, "application/json",
		`{"success": false, "message": "database is locked"}`)

	res, err := NewClient(Options{BaseURL: srv.URL}).CleanFalsePositives(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "database is locked", res.Message)
}

func TestSlackTest(t *testing.T) {
	srv, hits := newTestServer(t, http.MethodPost, PathSlackTest, http.StatusBadRequest, "application/json",
		`{"success": false, "message": "SLACK_WEBHOOK_URL not set"}`)

	res, err := NewClient(Options{BaseURL: srv.URL}).SlackTest(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
	assert.False(t, res.Success)
	assert.Equal(t, "SLACK_WEBHOOK_URL not set", res.Message)
}

func TestMentionSentiment(t *testing.T) {
	score := func(f float64) *float64 { return &f }

	tests := []struct {
		score *float64
		want  string
	}{
		{nil, "neutral"},
		{score(0.5), "positive"},
		{score(0.1), "neutral"},
		{score(-0.1), "neutral"},
		{score(-0.11), "negative"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Mention{SentimentScore: tt.score}.Sentiment())
	}
}

func TestBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:5000", NewClient(Options{BaseURL: "http://localhost:5000///"}).BaseURL())
}
