package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	moderationservice "vidstream/contexts/moderation-safety/moderation-service"
	"vidstream/contexts/moderation-safety/moderation-service/adapters/memory"
	prometheusadapter "vidstream/contexts/moderation-safety/moderation-service/adapters/prometheus"
	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	moderationerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
	"vidstream/contexts/moderation-safety/moderation-service/domain/services"
	moderationhttp "vidstream/contexts/moderation-safety/moderation-service/transport/http"
)

type caller struct {
	userID string
	role   string
}

var (
	adminCaller   = caller{userID: "admin-1", role: "ADMIN"}
	creatorCaller = caller{userID: "creator-1"}
	viewerCaller  = caller{userID: "viewer-1"}
	rightsCaller  = caller{userID: "rights-1"}
)

func serve(t *testing.T, server *Server, who caller, method string, path string, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", who.userID)
	if who.role != "" {
		req.Header.Set("X-User-Role", who.role)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func submitVideoFlag(t *testing.T, server *Server, reporter caller) string {
	t.Helper()
	rr := serve(t, server, reporter, http.MethodPost, "/api/moderation/v1/flags",
		`{"target_type":"VIDEO","video_id":"video-1","reason":"VIOLENCE"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	resp := decodeBody[moderationhttp.FlagResponse](t, rr)
	require.Equal(t, "PENDING", resp.Data.Flag.Status)
	return resp.Data.Flag.FlagID
}

func TestFlagDecisionOverHTTP(t *testing.T) {
	module := moderationservice.NewInMemoryModule(nil, slog.Default())
	server := New(module, slog.Default(), ":0")
	flagID := submitVideoFlag(t, server, viewerCaller)

	rr := serve(t, server, adminCaller, http.MethodPost, "/api/moderation/v1/flags/"+flagID+"/review", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "UNDER_REVIEW", decodeBody[moderationhttp.FlagResponse](t, rr).Data.Flag.Status)

	rr = serve(t, server, adminCaller, http.MethodPost, "/api/moderation/v1/flags/"+flagID+"/decision",
		`{"decision":"remove_with_strike","strike_type":"COMMUNITY_GUIDELINES","strike_severity":"STRIKE","notes":"graphic"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decodeBody[moderationhttp.FlagDecisionResponse](t, rr)
	assert.Equal(t, "RESOLVED", resp.Data.Flag.Status)
	assert.Equal(t, "Content removed with strike", resp.Data.Flag.Decision)
	require.NotNil(t, resp.Data.Strike)
	assert.Equal(t, "creator-1", resp.Data.Strike.UserID)
	assert.Equal(t, 1, resp.Data.ActiveStrikes)
	assert.Equal(t, "ACTIVE", resp.Data.ChannelStatus)
	assert.Empty(t, resp.Warnings)

	video, ok := module.Store.Video("video-1")
	require.True(t, ok)
	assert.Equal(t, entities.VisibilityPrivate, video.Visibility)
	reporter, ok := module.Store.User("viewer-1")
	require.True(t, ok)
	assert.Equal(t, 52, reporter.TrustScore)

	rr = serve(t, server, adminCaller, http.MethodPost, "/api/moderation/v1/flags/"+flagID+"/decision",
		`{"decision":"dismiss"}`)
	require.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "ALREADY_RESOLVED", errorCode(t, rr))
}

func TestDuplicateOpenFlagConflicts(t *testing.T) {
	server := newTestServer()
	submitVideoFlag(t, server, viewerCaller)

	rr := serve(t, server, viewerCaller, http.MethodPost, "/api/moderation/v1/flags",
		`{"target_type":"VIDEO","video_id":"video-1","reason":"SPAM"}`)
	require.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "DUPLICATE_FLAG", errorCode(t, rr))
}

func TestUnknownTargetsAreNotFound(t *testing.T) {
	server := newTestServer()
	rr := serve(t, server, adminCaller, http.MethodPost, "/api/moderation/v1/flags/missing/decision", `{"decision":"warn"}`)
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rr))

	rr = serve(t, server, adminCaller, http.MethodPatch, "/api/moderation/v1/strikes/missing", `{"action":"remove"}`)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestInvalidDecisionIsBadRequest(t *testing.T) {
	server := newTestServer()
	flagID := submitVideoFlag(t, server, viewerCaller)

	rr := serve(t, server, adminCaller, http.MethodPost, "/api/moderation/v1/flags/"+flagID+"/decision",
		`{"decision":"remove_with_strike"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, rr))
}

func TestClaimLifecycleOverHTTP(t *testing.T) {
	module := moderationservice.NewInMemoryModule(nil, slog.Default())
	server := New(module, slog.Default(), ":0")

	rr := serve(t, server, rightsCaller, http.MethodPost, "/api/moderation/v1/claims/claim-1/counter-notice",
		`{"counter_notice":"I hold the license"}`)
	require.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "PERMISSION_DENIED", errorCode(t, rr))

	rr = serve(t, server, adminCaller, http.MethodPost, "/api/moderation/v1/claims/claim-1/block", `{"notes":"pending review"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.True(t, decodeBody[moderationhttp.ClaimResponse](t, rr).Data.Claim.VideoBlocked)

	rr = serve(t, server, creatorCaller, http.MethodPost, "/api/moderation/v1/claims/claim-1/counter-notice",
		`{"counter_notice":"I hold the license"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "COUNTER_NOTICED", decodeBody[moderationhttp.ClaimResponse](t, rr).Data.Claim.Status)

	rr = serve(t, server, adminCaller, http.MethodPost, "/api/moderation/v1/claims/claim-1/decision", `{"decision":"reject"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decodeBody[moderationhttp.ClaimDecisionResponse](t, rr)
	assert.Equal(t, "REJECTED", resp.Data.Claim.Status)
	assert.Nil(t, resp.Data.Strike)

	video, ok := module.Store.Video("video-2")
	require.True(t, ok)
	assert.Equal(t, entities.VisibilityPublic, video.Visibility)

	rr = serve(t, server, adminCaller, http.MethodPost, "/api/moderation/v1/claims/claim-1/decision", `{"decision":"uphold","action":"block"}`)
	require.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "ALREADY_DECIDED", errorCode(t, rr))
}

func TestStrikeIdempotencyOverHTTP(t *testing.T) {
	server := newTestServer()
	body := `{"user_id":"creator-1","type":"SPAM","severity":"WARNING","reason":"link spam"}`

	first := serve(t, server, adminCaller, http.MethodPost, "/api/moderation/v1/strikes", body, "Idempotency-Key", "strike-key-1")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	second := serve(t, server, adminCaller, http.MethodPost, "/api/moderation/v1/strikes", body, "Idempotency-Key", "strike-key-1")
	require.Equal(t, http.StatusCreated, second.Code, second.Body.String())
	assert.Equal(t,
		decodeBody[moderationhttp.StrikeResponse](t, first).Data.Strike.StrikeID,
		decodeBody[moderationhttp.StrikeResponse](t, second).Data.Strike.StrikeID,
	)

	rr := serve(t, server, adminCaller, http.MethodGet, "/api/moderation/v1/strikes?user_id=creator-1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody[moderationhttp.ListStrikesResponse](t, rr).Data.Items, 1)

	conflict := serve(t, server, adminCaller, http.MethodPost, "/api/moderation/v1/strikes",
		`{"user_id":"creator-1","type":"SPAM","severity":"STRIKE","reason":"link spam"}`,
		"Idempotency-Key", "strike-key-1")
	require.Equal(t, http.StatusConflict, conflict.Code)
	assert.Equal(t, "IDEMPOTENCY_CONFLICT", errorCode(t, conflict))
}

func TestIdempotencyKeyInUseIsConflict(t *testing.T) {
	rr := httptest.NewRecorder()
	writeModerationDomainError(rr, fmt.Errorf("issue strike: %w", moderationerrors.ErrIdempotencyKeyInUse))
	require.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "IDEMPOTENCY_KEY_IN_USE", errorCode(t, rr))
}

func TestStandingAndAuditOverHTTP(t *testing.T) {
	server := newTestServer()
	var strikeIDs []string
	for i := 0; i < 3; i++ {
		rr := serve(t, server, adminCaller, http.MethodPost, "/api/moderation/v1/strikes",
			`{"user_id":"creator-1","channel_id":"channel-1","type":"COMMUNITY_GUIDELINES","severity":"STRIKE","reason":"repeat"}`)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		strikeIDs = append(strikeIDs, decodeBody[moderationhttp.StrikeResponse](t, rr).Data.Strike.StrikeID)
	}

	rr := serve(t, server, adminCaller, http.MethodGet, "/api/moderation/v1/channels/channel-1/standing", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	standing := decodeBody[moderationhttp.ChannelStandingResponse](t, rr)
	assert.Equal(t, "SUSPENDED", standing.Data.ChannelStatus)
	assert.Equal(t, 3, standing.Data.Strikes)
	assert.Len(t, standing.Data.ActiveStrikes, 3)

	rr = serve(t, server, adminCaller, http.MethodPatch, "/api/moderation/v1/strikes/"+strikeIDs[0], `{"action":"remove","notes":"appeal granted"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	updated := decodeBody[moderationhttp.StrikeResponse](t, rr)
	assert.False(t, updated.Data.Strike.Active)
	assert.Equal(t, "ACTIVE", updated.Data.ChannelStatus)

	rr = serve(t, server, adminCaller, http.MethodGet, "/api/moderation/v1/audit-logs?target_type=STRIKE", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	logs := decodeBody[moderationhttp.ListAuditLogsResponse](t, rr).Data.Items
	require.Len(t, logs, 4)
	for _, entry := range logs {
		assert.Equal(t, "admin-1", entry.AdminID)
		assert.NotNil(t, entry.NewValue)
	}

	rr = serve(t, server, adminCaller, http.MethodGet, "/api/moderation/v1/audit-logs?limit=abc", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNotificationFailureSurfacesAsWarning(t *testing.T) {
	module := moderationservice.NewInMemoryModule(nil, slog.Default())
	module.Store.FailNotifications(errors.New("bus unavailable"))
	server := New(module, slog.Default(), ":0")

	rr := serve(t, server, adminCaller, http.MethodPost, "/api/moderation/v1/strikes",
		`{"user_id":"creator-1","type":"SPAM","severity":"WARNING","reason":"link spam"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	resp := decodeBody[moderationhttp.StrikeResponse](t, rr)
	assert.True(t, resp.Data.Strike.Active)
	require.NotEmpty(t, resp.Warnings)
	assert.Contains(t, resp.Warnings[0], "notification_dispatch")
	assert.Empty(t, module.Store.Delivered())
}

func TestHealthzReflectsReadiness(t *testing.T) {
	healthy := newTestServer()
	rr := httptest.NewRecorder()
	healthy.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	failing := New(moderationservice.NewInMemoryModule(nil, slog.Default()), slog.Default(), ":0",
		WithReadinessCheck(func(context.Context) error { return errors.New("db down") }))
	rr = httptest.NewRecorder()
	failing.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestMetricsEndpointExportsDecisionCounters(t *testing.T) {
	registry := prometheus.NewRegistry()
	store := memory.NewStore()
	store.SeedDemo()
	module := moderationservice.NewModule(moderationservice.Dependencies{
		Repository:     store,
		Idempotency:    store,
		Outbox:         store,
		Reconciler:     store,
		Notifier:       store,
		Clock:          store,
		IDs:            store,
		Policy:         services.DefaultThresholdPolicy(),
		IdempotencyTTL: time.Hour,
		Metrics:        prometheusadapter.NewMetrics(registry),
		Logger:         slog.Default(),
	})
	server := New(module, slog.Default(), ":0",
		WithMetricsHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	rr := serve(t, server, adminCaller, http.MethodPost, "/api/moderation/v1/strikes",
		`{"user_id":"creator-1","type":"SPAM","severity":"STRIKE","reason":"link spam"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `moderation_decisions_total{kind="strike_issue",outcome="applied"} 1`)
	assert.Contains(t, rr.Body.String(), "moderation_strikes_issued_total")
}

func TestSwaggerDocIsServed(t *testing.T) {
	server := newTestServer()
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/api/moderation/v1/flags/{flag_id}/decision")
}
