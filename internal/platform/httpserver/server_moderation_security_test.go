package httpserver

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	moderationservice "vidstream/contexts/moderation-safety/moderation-service"
)

func newTestServer() *Server {
	return New(
		moderationservice.NewInMemoryModule(nil, slog.Default()),
		slog.Default(),
		":0",
	)
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v body=%s", err, rr.Body.String())
	}
	return envelope.Error.Code
}

func TestModerationDecisionRequiresAuthorization(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/moderation/v1/flags/flag-1/decision", bytes.NewReader([]byte(`{
		"decision":"dismiss"
	}`)))
	req.Header.Set("X-User-Id", "admin-1")
	req.Header.Set("X-User-Role", "ADMIN")
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := errorCode(t, rr); code != "UNAUTHORIZED" {
		t.Fatalf("expected UNAUTHORIZED, got %s", code)
	}
}

func TestModerationRejectsMalformedBearer(t *testing.T) {
	server := newTestServer()
	for _, header := range []string{"Basic abc", "Bearer", "Bearer   ", "token"} {
		req := httptest.NewRequest(http.MethodGet, "/api/moderation/v1/flags", nil)
		req.Header.Set("Authorization", header)
		req.Header.Set("X-User-Id", "admin-1")
		req.Header.Set("X-User-Role", "ADMIN")

		rr := httptest.NewRecorder()
		server.mux.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rr.Code)
		}
	}
}

func TestModerationRequiresUserHeader(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/moderation/v1/flags", bytes.NewReader([]byte(`{
		"target_type":"VIDEO","video_id":"video-1","reason":"SPAM"
	}`)))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := errorCode(t, rr); code != "USER_REQUIRED" {
		t.Fatalf("expected USER_REQUIRED, got %s", code)
	}
}

func TestModerationAdminRoutesRejectNonAdmins(t *testing.T) {
	server := newTestServer()
	routes := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/moderation/v1/flags", ""},
		{http.MethodPost, "/api/moderation/v1/flags/flag-1/review", ""},
		{http.MethodPost, "/api/moderation/v1/flags/flag-1/decision", `{"decision":"dismiss"}`},
		{http.MethodGet, "/api/moderation/v1/claims", ""},
		{http.MethodPost, "/api/moderation/v1/claims/claim-1/decision", `{"decision":"reject"}`},
		{http.MethodPost, "/api/moderation/v1/claims/claim-1/block", `{}`},
		{http.MethodGet, "/api/moderation/v1/strikes", ""},
		{http.MethodPost, "/api/moderation/v1/strikes", `{"user_id":"creator-1","type":"SPAM","severity":"STRIKE","reason":"spam"}`},
		{http.MethodPatch, "/api/moderation/v1/strikes/strike-1", `{"action":"remove"}`},
		{http.MethodDelete, "/api/moderation/v1/strikes/strike-1", ""},
		{http.MethodGet, "/api/moderation/v1/channels/channel-1/standing", ""},
		{http.MethodGet, "/api/moderation/v1/audit-logs", ""},
	}
	for _, route := range routes {
		req := httptest.NewRequest(route.method, route.path, bytes.NewReader([]byte(route.body)))
		req.Header.Set("Authorization", "Bearer token")
		req.Header.Set("X-User-Id", "viewer-1")
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		server.mux.ServeHTTP(rr, req)
		if rr.Code != http.StatusForbidden {
			t.Fatalf("%s %s: expected 403, got %d body=%s", route.method, route.path, rr.Code, rr.Body.String())
		}
	}
}

func TestModerationRejectsUnknownFields(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/moderation/v1/strikes", bytes.NewReader([]byte(`{
		"user_id":"creator-1","type":"SPAM","severity":"STRIKE","reason":"spam","channel_status":"ACTIVE"
	}`)))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("X-User-Id", "admin-1")
	req.Header.Set("X-User-Role", "ADMIN")
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := errorCode(t, rr); code != "INVALID_JSON" {
		t.Fatalf("expected INVALID_JSON, got %s", code)
	}
}

func TestSubmitFlagIsOpenToSignedInUsers(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/moderation/v1/flags", bytes.NewReader([]byte(`{
		"target_type":"COMMENT","comment_id":"comment-1","reason":"SPAM"
	}`)))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("X-User-Id", "creator-1")
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
}
