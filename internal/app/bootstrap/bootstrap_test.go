package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidstream/internal/platform/config"
)

func loadTestConfig(t *testing.T, databaseURL string) config.Config {
	t.Helper()
	t.Setenv("DATABASE_URL", databaseURL)
	t.Setenv("SEED_DEMO_DATA", "true")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("WORKER_POLL_INTERVAL", "10ms")
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func sqliteURL(t *testing.T) string {
	t.Helper()
	return "sqlite://" + filepath.Join(t.TempDir(), "moderation.db")
}

func TestAPIOnSQLiteServesStrikeIssue(t *testing.T) {
	cfg := loadTestConfig(t, sqliteURL(t))
	registry := prometheus.NewRegistry()
	app, err := buildAPI(context.Background(), cfg, registry, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	assert.Nil(t, app.loops)

	req := httptest.NewRequest(http.MethodPost, "/api/moderation/v1/strikes", bytes.NewReader([]byte(
		`{"user_id":"creator-1","type":"SPAM","severity":"STRIKE","reason":"link spam"}`,
	)))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("X-User-Id", "admin-1")
	req.Header.Set("X-User-Role", "ADMIN")
	rr := httptest.NewRecorder()
	app.server.Handler().ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp struct {
		Data struct {
			Strike struct {
				StrikeID  string `json:"strike_id"`
				ChannelID string `json:"channel_id"`
			} `json:"strike"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Strike.StrikeID, 36)
	assert.Equal(t, "channel-1", resp.Data.Strike.ChannelID)

	rr = httptest.NewRecorder()
	app.server.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	app.server.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "moderation_strikes_issued_total")
}

func TestAPIWithoutDatabaseRunsLoopsInProcess(t *testing.T) {
	cfg := loadTestConfig(t, "")
	app, err := buildAPI(context.Background(), cfg, prometheus.NewRegistry(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	require.NotNil(t, app.loops)
	assert.NotNil(t, app.loops.outboxRelay)
	assert.NotNil(t, app.loops.strikeReconciler)
	assert.NotNil(t, app.runtime.store)
}

func TestWorkerRequiresDatabase(t *testing.T) {
	cfg := loadTestConfig(t, "")
	_, err := buildWorker(context.Background(), cfg, prometheus.NewRegistry())
	require.ErrorIs(t, err, errNoDatabase)
}

func TestWorkerStopsWithContext(t *testing.T) {
	cfg := loadTestConfig(t, sqliteURL(t))
	worker, err := buildWorker(context.Background(), cfg, prometheus.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(func() { _ = worker.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestOperatorCommandsOnSQLite(t *testing.T) {
	cfg := loadTestConfig(t, sqliteURL(t))
	ctx := context.Background()
	operator, err := buildOperator(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = operator.Close() })

	require.NoError(t, operator.Migrate(ctx))
	require.NoError(t, operator.SeedDemo(ctx))

	reconciled, err := operator.ReconcileStrikes(ctx)
	require.NoError(t, err)
	assert.Zero(t, reconciled)

	relayed, err := operator.RelayOutbox(ctx)
	require.NoError(t, err)
	assert.Zero(t, relayed)

	standing, err := operator.ChannelStanding(ctx, "channel-1")
	require.NoError(t, err)
	assert.Equal(t, "creator-1", standing.Channel.OwnerID)
	assert.Zero(t, standing.Standing.Strikes)
}

func TestOperatorMigrateNeedsDatabase(t *testing.T) {
	cfg := loadTestConfig(t, "")
	operator, err := buildOperator(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = operator.Close() })

	assert.ErrorIs(t, operator.Migrate(context.Background()), errNoDatabase)
	assert.ErrorIs(t, operator.SeedDemo(context.Background()), errNoDatabase)
}

func TestNormalizeAddr(t *testing.T) {
	assert.Equal(t, ":8080", normalizeAddr(""))
	assert.Equal(t, ":9090", normalizeAddr("9090"))
	assert.Equal(t, ":9090", normalizeAddr(":9090"))
}
