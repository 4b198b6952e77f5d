package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xpinara/company-tracker/internal/api"
	"github.com/0xpinara/company-tracker/internal/config"
	"github.com/0xpinara/company-tracker/internal/dashboard"
)

// backend serves canned JSON per path and counts hits.
type backend struct {
	srv    *httptest.Server
	hits   map[string]*int32
	bodies map[string]string
	status map[string]int
}

func newBackend(t *testing.T, bodies map[string]string) *backend {
	t.Helper()
	b := &backend{
		hits:   map[string]*int32{},
		bodies: bodies,
		status: map[string]int{},
	}
	for path := range bodies {
		b.hits[path] = new(int32)
	}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := b.bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(b.hits[r.URL.Path], 1)
		w.Header().Set("Content-Type", "application/json")
		if code := b.status[r.URL.Path]; code != 0 {
			w.WriteHeader(code)
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backend) client() *api.Client {
	return api.NewClient(api.Options{BaseURL: b.srv.URL})
}

func (b *backend) Hits(path string) int {
	return int(atomic.LoadInt32(b.hits[path]))
}

// withMachineMode sets --json for the duration of a test.
func withMachineMode(t *testing.T, on bool) {
	t.Helper()
	old := machineMode
	machineMode = on
	t.Cleanup(func() { machineMode = old })
}

const statsBody = `{
	"total_mentions": 42,
	"recent_mentions": 5,
	"company_mentions": [{"company_name": "Acme", "count": 30}, {"company_name": "Globex", "count": 12}],
	"source_mentions": [{"source": "Google News", "count": 40}]
}`

func TestStatsCommand(t *testing.T) {
	withMachineMode(t, false)
	b := newBackend(t, map[string]string{api.PathStats: statsBody})

	var out bytes.Buffer
	err := statsCommand(context.Background(), b.client(), config.DefaultConfig(), false, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Total Mentions: 42")
	assert.Contains(t, text, "Recent Mentions (24h): 5")
	assert.Contains(t, text, "Active Companies: 2")
	assert.Contains(t, text, "Mentions by Company")
	assert.Contains(t, text, "Globex")
	assert.Contains(t, text, "Google News")
	assert.Equal(t, 1, b.Hits(api.PathStats))
}

func TestStatsCommand_Table(t *testing.T) {
	withMachineMode(t, false)
	b := newBackend(t, map[string]string{api.PathStats: statsBody})

	var out bytes.Buffer
	require.NoError(t, statsCommand(context.Background(), b.client(), config.DefaultConfig(), true, &out))

	text := out.String()
	assert.Contains(t, text, "Total Mentions: 42")
	assert.Contains(t, text, "Company")
	assert.Contains(t, text, "Acme")
	assert.Contains(t, text, "30")
	assert.Contains(t, text, "Google News")
	assert.NotContains(t, text, "Mentions by Company")
}

func TestChartOptions(t *testing.T) {
	opts := chartOptions()
	assert.Equal(t, 20, opts.LabelWidth)
	assert.GreaterOrEqual(t, opts.BarWidth, 10)
	assert.LessOrEqual(t, opts.BarWidth, 30)
}

func TestStatsCommand_JSON(t *testing.T) {
	withMachineMode(t, true)
	b := newBackend(t, map[string]string{api.PathStats: statsBody})

	var out bytes.Buffer
	require.NoError(t, statsCommand(context.Background(), b.client(), config.DefaultConfig(), false, &out))

	var env struct {
		Success bool              `json:"success"`
		Data    api.StatsSnapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, 42, env.Data.TotalMentions)
}

func TestStatsCommand_ServerDown(t *testing.T) {
	withMachineMode(t, false)
	b := newBackend(t, map[string]string{api.PathStats: statsBody})
	b.status[api.PathStats] = http.StatusInternalServerError

	var out bytes.Buffer
	err := statsCommand(context.Background(), b.client(), config.DefaultConfig(), false, &out)
	require.Error(t, err)
	assert.Empty(t, out.String())
}

func TestMentionsCommand(t *testing.T) {
	withMachineMode(t, false)
	b := newBackend(t, map[string]string{api.PathMentions: `[
		{"id": 1, "company_name": "Acme", "title": "Acme raises Series B", "source": "Google News", "sentiment_score": 0.5},
		{"id": 2, "company_name": "Globex", "title": "Globex layoffs", "source": "LinkedIn", "sentiment_score": -0.4}
	]`})

	var out bytes.Buffer
	require.NoError(t, mentionsCommand(context.Background(), b.client(), 1, &out))

	assert.Contains(t, out.String(), "Acme raises Series B")
	assert.NotContains(t, out.String(), "Globex layoffs")
}

func TestCompaniesCommand_JSON(t *testing.T) {
	withMachineMode(t, true)
	b := newBackend(t, map[string]string{api.PathCompanies: `[{"name": "Acme", "fund": "Fund I"}]`})

	var out bytes.Buffer
	require.NoError(t, companiesCommand(context.Background(), b.client(), &out))

	var env struct {
		Data []api.Company `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "Fund I", env.Data[0].Fund)
}

func TestRunMonitoringCommand(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
		want    string
	}{
		{
			name: "success",
			body: `{"success": true}`,
			want: dashboard.MsgMonitoringDone,
		},
		{
			name:    "logical failure",
			body:    `{"success": false, "message": "rate limited"}`,
			wantErr: true,
			want:    "Error: rate limited",
		},
		{
			name:    "server error with message",
			status:  http.StatusInternalServerError,
			body:    `{"success": false, "message": "scraper crashed"}`,
			wantErr: true,
			want:    "Error: scraper crashed",
		},
		{
			name:    "request error",
			status:  http.StatusBadGateway,
			body:    `<html>bad gateway</html>`,
			wantErr: true,
			want:    "Error running monitoring: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withMachineMode(t, false)
			b := newBackend(t, map[string]string{api.PathRunMonitoring: tt.body})
			b.status[api.PathRunMonitoring] = tt.status

			var out bytes.Buffer
			err := runMonitoringCommand(context.Background(), b.client(), &out)
			if tt.wantErr {
				assert.ErrorIs(t, err, errSilentExit)
			} else {
				assert.NoError(t, err)
			}
			assert.Contains(t, out.String(), tt.want)
			assert.Equal(t, 1, b.Hits(api.PathRunMonitoring))
		})
	}
}

func TestRunMonitoringCommand_JSON(t *testing.T) {
	withMachineMode(t, true)
	b := newBackend(t, map[string]string{api.PathRunMonitoring: `{"success": false, "message": "rate limited"}`})

	var out bytes.Buffer
	err := runMonitoringCommand(context.Background(), b.client(), &out)
	assert.ErrorIs(t, err, errSilentExit)

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Nil(t, env.Data)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeMonitoringFailed, env.Error.Code)
	assert.Equal(t, "Error: rate limited", env.Error.Message)
}

func TestRunMonitoringCommand_JSONRequestError(t *testing.T) {
	withMachineMode(t, true)
	b := newBackend(t, map[string]string{api.PathRunMonitoring: `<html>bad gateway</html>`})
	b.status[api.PathRunMonitoring] = http.StatusBadGateway

	var out bytes.Buffer
	err := runMonitoringCommand(context.Background(), b.client(), &out)
	assert.ErrorIs(t, err, errSilentExit)

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeMonitoringFailed, env.Error.Code)
	assert.Contains(t, env.Error.Message, "Error running monitoring:")
}

func TestRunMonitoringCommand_JSONSuccess(t *testing.T) {
	withMachineMode(t, true)
	b := newBackend(t, map[string]string{api.PathRunMonitoring: `{"success": true, "message": "Found 3 new mentions"}`})

	var out bytes.Buffer
	require.NoError(t, runMonitoringCommand(context.Background(), b.client(), &out))

	var env struct {
		Success bool             `json:"success"`
		Data    MonitoringReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "succeeded", env.Data.Outcome)
	require.NotEmpty(t, env.Data.Notifications)
	assert.Equal(t, dashboard.KindSuccess, env.Data.Notifications[0].Kind)
}

func TestMonitoringFailure(t *testing.T) {
	assert.Equal(t, "Monitoring errored", monitoringFailure(dashboard.OutcomeErrored, nil))
	assert.Equal(t, "second", monitoringFailure(dashboard.OutcomeFailed, []Notice{{Message: "first"}, {Message: "second"}}))
}

func TestSlackTestCommand(t *testing.T) {
	b := newBackend(t, map[string]string{api.PathSlackTest: `{"success": true, "message": "Test message sent"}`})

	var out bytes.Buffer
	require.NoError(t, slackTestCommand(context.Background(), b.client(), &out))
	assert.Contains(t, out.String(), "Test message sent")
}

func TestSlackTestCommand_Failure(t *testing.T) {
	b := newBackend(t, map[string]string{api.PathSlackTest: `{"success": false, "message": "webhook not configured"}`})

	var out bytes.Buffer
	err := slackTestCommand(context.Background(), b.client(), &out)
	assert.ErrorIs(t, err, errSilentExit)
	assert.Contains(t, out.String(), "Error: webhook not configured")
}

func TestCleanCommand(t *testing.T) {
	b := newBackend(t, map[string]string{api.PathCleanFalsePositives: `{"success": true, "message": "ok", "deleted_count": 3}`})

	var out bytes.Buffer
	require.NoError(t, cleanCommand(context.Background(), b.client(), CleanOptions{Yes: true}, &out))
	assert.Contains(t, out.String(), "Removed 3 false positives")
}

func TestCleanCommand_RequiresConfirmation(t *testing.T) {
	b := newBackend(t, map[string]string{api.PathCleanFalsePositives: `{"success": true, "deleted_count": 3}`})

	var out bytes.Buffer
	err := cleanCommand(context.Background(), b.client(), CleanOptions{NonInteractive: true}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
	assert.Equal(t, 0, b.Hits(api.PathCleanFalsePositives))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "", pluralize(1))
	assert.Equal(t, "s", pluralize(0))
	assert.Equal(t, "s", pluralize(2))
}

func TestConfigWith(t *testing.T) {
	old := cfg
	defer func() { cfg = old }()
	cfg = config.DefaultConfig()

	c, err := configWith(ServerFlags{Server: "http://tracker.internal:5000"})
	require.NoError(t, err)
	assert.Equal(t, "http://tracker.internal:5000", c.Server.URL)
	assert.Equal(t, config.DefaultServerURL, cfg.Server.URL, "loaded config must not change")

	_, err = configWith(ServerFlags{Server: "not a url"})
	assert.Error(t, err)
}
