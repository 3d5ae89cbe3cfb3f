package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	httpadapter "vidstream/contexts/moderation-safety/moderation-service/adapters/http"
	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	moderationerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
	moderationhttp "vidstream/contexts/moderation-safety/moderation-service/transport/http"
)

func writeModerationError(w http.ResponseWriter, status int, code string, message string, details map[string]any) {
	writeJSON(w, status, moderationhttp.ErrorEnvelope{
		Status: "error",
		Error: moderationhttp.ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeModerationDecodeError(w http.ResponseWriter, status int, code string, message string) {
	writeModerationError(w, status, strings.ToUpper(code), message, nil)
}

func writeModerationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, moderationerrors.ErrInvalidRequest):
		writeModerationError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	case errors.Is(err, moderationerrors.ErrUnauthorized):
		writeModerationError(w, http.StatusForbidden, "ADMIN_REQUIRED", err.Error(), nil)
	case errors.Is(err, moderationerrors.ErrForbidden):
		writeModerationError(w, http.StatusForbidden, "PERMISSION_DENIED", err.Error(), nil)
	case errors.Is(err, moderationerrors.ErrNotFound):
		writeModerationError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, moderationerrors.ErrAlreadyResolved):
		writeModerationError(w, http.StatusConflict, "ALREADY_RESOLVED", err.Error(), nil)
	case errors.Is(err, moderationerrors.ErrAlreadyDecided):
		writeModerationError(w, http.StatusConflict, "ALREADY_DECIDED", err.Error(), nil)
	case errors.Is(err, moderationerrors.ErrConcurrentModification):
		writeModerationError(w, http.StatusConflict, "CONCURRENT_MODIFICATION", err.Error(), nil)
	case errors.Is(err, moderationerrors.ErrDuplicateFlag):
		writeModerationError(w, http.StatusConflict, "DUPLICATE_FLAG", err.Error(), nil)
	case errors.Is(err, moderationerrors.ErrIdempotencyConflict):
		writeModerationError(w, http.StatusConflict, "IDEMPOTENCY_CONFLICT", err.Error(), nil)
	case errors.Is(err, moderationerrors.ErrIdempotencyKeyInUse):
		writeModerationError(w, http.StatusConflict, "IDEMPOTENCY_KEY_IN_USE", err.Error(), nil)
	case errors.Is(err, moderationerrors.ErrDependencyUnavailable):
		writeModerationError(w, http.StatusServiceUnavailable, "DEPENDENCY_UNAVAILABLE", err.Error(), nil)
	default:
		writeModerationError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
	}
}

func requireModerationAuthorization(w http.ResponseWriter, r *http.Request) bool {
	authHeader := headerValue(r, "Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		writeModerationError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization bearer token is required", nil)
		return false
	}
	return true
}

// requireModerationActor authenticates the caller. Identity and role arrive
// from the session layer in front of this service.
func requireModerationActor(w http.ResponseWriter, r *http.Request) (entities.Actor, bool) {
	if !requireModerationAuthorization(w, r) {
		return entities.Actor{}, false
	}
	userID := headerValue(r, "X-User-Id")
	if userID == "" {
		writeModerationError(w, http.StatusUnauthorized, "USER_REQUIRED", "X-User-Id header is required", nil)
		return entities.Actor{}, false
	}
	role := entities.Role(strings.ToUpper(headerValue(r, "X-User-Role")))
	if role == "" {
		role = entities.RoleUser
	}
	return entities.Actor{UserID: userID, Role: role}, true
}

func requireModerationAdmin(w http.ResponseWriter, r *http.Request) (entities.Actor, bool) {
	actor, ok := requireModerationActor(w, r)
	if !ok {
		return entities.Actor{}, false
	}
	if !actor.IsAdmin() {
		writeModerationError(w, http.StatusForbidden, "ADMIN_REQUIRED", "X-User-Role ADMIN is required", nil)
		return entities.Actor{}, false
	}
	return actor, true
}

func pageQuery(r *http.Request) httpadapter.PageQuery {
	query := r.URL.Query()
	return httpadapter.PageQuery{Limit: query.Get("limit"), Offset: query.Get("offset")}
}

func (s *Server) handleSubmitFlag(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireModerationActor(w, r)
	if !ok {
		return
	}
	var req moderationhttp.SubmitFlagRequest
	if !s.decodeJSON(w, r, &req, writeModerationDecodeError) {
		return
	}
	resp, err := s.moderation.Handler.SubmitFlagHandler(r.Context(), actor, req)
	if err != nil {
		writeModerationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListFlags(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireModerationAdmin(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	resp, err := s.moderation.Handler.ListFlagsHandler(
		r.Context(),
		actor,
		query.Get("status"),
		query.Get("target_type"),
		pageQuery(r),
	)
	if err != nil {
		writeModerationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStartFlagReview(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireModerationAdmin(w, r)
	if !ok {
		return
	}
	resp, err := s.moderation.Handler.StartFlagReviewHandler(
		r.Context(),
		actor,
		r.PathValue("flag_id"),
		headerValue(r, "Idempotency-Key"),
	)
	if err != nil {
		writeModerationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDecideFlag(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireModerationAdmin(w, r)
	if !ok {
		return
	}
	var req moderationhttp.DecideFlagRequest
	if !s.decodeJSON(w, r, &req, writeModerationDecodeError) {
		return
	}
	resp, err := s.moderation.Handler.DecideFlagHandler(
		r.Context(),
		actor,
		r.PathValue("flag_id"),
		headerValue(r, "Idempotency-Key"),
		req,
	)
	if err != nil {
		writeModerationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListClaims(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireModerationAdmin(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	resp, err := s.moderation.Handler.ListClaimsHandler(
		r.Context(),
		actor,
		query.Get("status"),
		query.Get("video_id"),
		pageQuery(r),
	)
	if err != nil {
		writeModerationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDecideClaim(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireModerationAdmin(w, r)
	if !ok {
		return
	}
	var req moderationhttp.DecideClaimRequest
	if !s.decodeJSON(w, r, &req, writeModerationDecodeError) {
		return
	}
	resp, err := s.moderation.Handler.DecideClaimHandler(
		r.Context(),
		actor,
		r.PathValue("claim_id"),
		headerValue(r, "Idempotency-Key"),
		req,
	)
	if err != nil {
		writeModerationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBlockClaimedVideo(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireModerationAdmin(w, r)
	if !ok {
		return
	}
	var req moderationhttp.BlockClaimedVideoRequest
	if !s.decodeJSON(w, r, &req, writeModerationDecodeError) {
		return
	}
	resp, err := s.moderation.Handler.BlockClaimedVideoHandler(
		r.Context(),
		actor,
		r.PathValue("claim_id"),
		headerValue(r, "Idempotency-Key"),
		req,
	)
	if err != nil {
		writeModerationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCounterNotice(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireModerationActor(w, r)
	if !ok {
		return
	}
	var req moderationhttp.CounterNoticeRequest
	if !s.decodeJSON(w, r, &req, writeModerationDecodeError) {
		return
	}
	resp, err := s.moderation.Handler.CounterNoticeHandler(r.Context(), actor, r.PathValue("claim_id"), req)
	if err != nil {
		writeModerationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAppeal(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireModerationActor(w, r)
	if !ok {
		return
	}
	resp, err := s.moderation.Handler.AppealHandler(r.Context(), actor, r.PathValue("claim_id"))
	if err != nil {
		writeModerationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListStrikes(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireModerationAdmin(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	resp, err := s.moderation.Handler.ListStrikesHandler(
		r.Context(),
		actor,
		query.Get("user_id"),
		query.Get("channel_id"),
		query.Get("active"),
		pageQuery(r),
	)
	if err != nil {
		writeModerationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleIssueStrike(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireModerationAdmin(w, r)
	if !ok {
		return
	}
	var req moderationhttp.IssueStrikeRequest
	if !s.decodeJSON(w, r, &req, writeModerationDecodeError) {
		return
	}
	resp, err := s.moderation.Handler.IssueStrikeHandler(r.Context(), actor, headerValue(r, "Idempotency-Key"), req)
	if err != nil {
		writeModerationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateStrike(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireModerationAdmin(w, r)
	if !ok {
		return
	}
	var req moderationhttp.UpdateStrikeRequest
	if !s.decodeJSON(w, r, &req, writeModerationDecodeError) {
		return
	}
	resp, err := s.moderation.Handler.UpdateStrikeHandler(
		r.Context(),
		actor,
		r.PathValue("strike_id"),
		headerValue(r, "Idempotency-Key"),
		req,
	)
	if err != nil {
		writeModerationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePurgeStrike(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireModerationAdmin(w, r)
	if !ok {
		return
	}
	var req moderationhttp.PurgeStrikeRequest
	if !s.decodeJSON(w, r, &req, writeModerationDecodeError) {
		return
	}
	resp, err := s.moderation.Handler.PurgeStrikeHandler(
		r.Context(),
		actor,
		r.PathValue("strike_id"),
		headerValue(r, "Idempotency-Key"),
		req,
	)
	if err != nil {
		writeModerationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChannelStanding(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireModerationAdmin(w, r)
	if !ok {
		return
	}
	resp, err := s.moderation.Handler.ChannelStandingHandler(r.Context(), actor, r.PathValue("channel_id"))
	if err != nil {
		writeModerationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAuditLogs(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireModerationAdmin(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	resp, err := s.moderation.Handler.ListAuditLogsHandler(
		r.Context(),
		actor,
		query.Get("admin_id"),
		query.Get("target_type"),
		query.Get("target_id"),
		pageQuery(r),
	)
	if err != nil {
		writeModerationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
