package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"vidstream/contexts/moderation-safety/moderation-service/application"
	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
	"vidstream/contexts/moderation-safety/moderation-service/ports"
	httptransport "vidstream/contexts/moderation-safety/moderation-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

// PageQuery carries the raw pagination values from a query string.
type PageQuery struct {
	Limit  string
	Offset string
}

func (q PageQuery) parse() (int, int, error) {
	limit, err := parseOptionalInt("limit", q.Limit)
	if err != nil {
		return 0, 0, err
	}
	offset, err := parseOptionalInt("offset", q.Offset)
	if err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

func parseOptionalInt(name string, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domainerrors.Invalid("%s must be an integer", name)
	}
	return value, nil
}

// SubmitFlagHandler godoc
// @Summary Report a video or comment
// @Tags moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-User-Id header string true "Reporter id"
// @Param request body httptransport.SubmitFlagRequest true "Flag target and reason"
// @Success 201 {object} httptransport.FlagResponse
// @Failure 400 {object} httptransport.ErrorEnvelope
// @Failure 404 {object} httptransport.ErrorEnvelope
// @Failure 409 {object} httptransport.ErrorEnvelope
// @Router /api/moderation/v1/flags [post]
func (h Handler) SubmitFlagHandler(ctx context.Context, actor entities.Actor, req httptransport.SubmitFlagRequest) (httptransport.FlagResponse, error) {
	result, err := h.Service.SubmitFlag(ctx, actor, application.SubmitFlagCommand{
		TargetType: req.TargetType,
		VideoID:    req.VideoID,
		CommentID:  req.CommentID,
		Reason:     req.Reason,
		Comment:    req.Comment,
	})
	if err != nil {
		return httptransport.FlagResponse{}, err
	}
	return mapFlagResponse(result), nil
}

func (h Handler) StartFlagReviewHandler(ctx context.Context, actor entities.Actor, flagID string, idempotencyKey string) (httptransport.FlagResponse, error) {
	result, err := h.Service.StartFlagReview(ctx, actor, flagID, idempotencyKey)
	if err != nil {
		return httptransport.FlagResponse{}, err
	}
	return mapFlagResponse(result), nil
}

// DecideFlagHandler godoc
// @Summary Decide a flag
// @Description Applies dismiss, warn, age_restrict, remove or remove_with_strike to an open flag.
// @Tags moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-User-Id header string true "Admin id"
// @Param X-User-Role header string true "Must be ADMIN"
// @Param Idempotency-Key header string false "Replay key"
// @Param flag_id path string true "Flag id"
// @Param request body httptransport.DecideFlagRequest true "Decision"
// @Success 200 {object} httptransport.FlagDecisionResponse
// @Failure 400 {object} httptransport.ErrorEnvelope
// @Failure 403 {object} httptransport.ErrorEnvelope
// @Failure 404 {object} httptransport.ErrorEnvelope
// @Failure 409 {object} httptransport.ErrorEnvelope
// @Router /api/moderation/v1/flags/{flag_id}/decision [post]
func (h Handler) DecideFlagHandler(
	ctx context.Context,
	actor entities.Actor,
	flagID string,
	idempotencyKey string,
	req httptransport.DecideFlagRequest,
) (httptransport.FlagDecisionResponse, error) {
	result, err := h.Service.DecideFlag(ctx, actor, application.DecideFlagCommand{
		FlagID:         flagID,
		Decision:       req.Decision,
		Notes:          req.Notes,
		StrikeType:     req.StrikeType,
		StrikeSeverity: req.StrikeSeverity,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		h.logFailure(ctx, "flag_decision", "flag_id", flagID, err)
		return httptransport.FlagDecisionResponse{}, err
	}
	resp := httptransport.FlagDecisionResponse{Status: "success", Warnings: result.Warnings, Timestamp: nowStamp()}
	resp.Data.Flag = mapFlag(result.Flag)
	resp.Data.Message = result.Message
	resp.Data.Strike = mapOptionalStrike(result.Strike)
	resp.Data.ActiveStrikes = result.ActiveStrikes
	resp.Data.ChannelStatus = string(result.ChannelStatus)
	return resp, nil
}

// DecideClaimHandler godoc
// @Summary Decide a copyright claim
// @Tags moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-User-Id header string true "Admin id"
// @Param X-User-Role header string true "Must be ADMIN"
// @Param Idempotency-Key header string false "Replay key"
// @Param claim_id path string true "Claim id"
// @Param request body httptransport.DecideClaimRequest true "Decision"
// @Success 200 {object} httptransport.ClaimDecisionResponse
// @Failure 400 {object} httptransport.ErrorEnvelope
// @Failure 403 {object} httptransport.ErrorEnvelope
// @Failure 404 {object} httptransport.ErrorEnvelope
// @Failure 409 {object} httptransport.ErrorEnvelope
// @Router /api/moderation/v1/claims/{claim_id}/decision [post]
func (h Handler) DecideClaimHandler(
	ctx context.Context,
	actor entities.Actor,
	claimID string,
	idempotencyKey string,
	req httptransport.DecideClaimRequest,
) (httptransport.ClaimDecisionResponse, error) {
	result, err := h.Service.DecideCopyrightClaim(ctx, actor, application.DecideClaimCommand{
		ClaimID:        claimID,
		Decision:       req.Decision,
		Notes:          req.Notes,
		Action:         req.Action,
		ApplyStrike:    req.ApplyStrike,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		h.logFailure(ctx, "claim_decision", "claim_id", claimID, err)
		return httptransport.ClaimDecisionResponse{}, err
	}
	resp := httptransport.ClaimDecisionResponse{Status: "success", Warnings: result.Warnings, Timestamp: nowStamp()}
	resp.Data.Claim = mapClaim(result.Claim)
	resp.Data.Message = result.Message
	resp.Data.Strike = mapOptionalStrike(result.Strike)
	resp.Data.ActiveStrikes = result.ActiveStrikes
	resp.Data.ChannelStatus = string(result.ChannelStatus)
	return resp, nil
}

func (h Handler) BlockClaimedVideoHandler(
	ctx context.Context,
	actor entities.Actor,
	claimID string,
	idempotencyKey string,
	req httptransport.BlockClaimedVideoRequest,
) (httptransport.ClaimResponse, error) {
	result, err := h.Service.BlockClaimedVideo(ctx, actor, claimID, req.Notes, idempotencyKey)
	if err != nil {
		return httptransport.ClaimResponse{}, err
	}
	return mapClaimResponse(result), nil
}

func (h Handler) CounterNoticeHandler(ctx context.Context, actor entities.Actor, claimID string, req httptransport.CounterNoticeRequest) (httptransport.ClaimResponse, error) {
	result, err := h.Service.SubmitCounterNotice(ctx, actor, claimID, req.CounterNotice)
	if err != nil {
		return httptransport.ClaimResponse{}, err
	}
	return mapClaimResponse(result), nil
}

func (h Handler) AppealHandler(ctx context.Context, actor entities.Actor, claimID string) (httptransport.ClaimResponse, error) {
	result, err := h.Service.SubmitAppeal(ctx, actor, claimID)
	if err != nil {
		return httptransport.ClaimResponse{}, err
	}
	return mapClaimResponse(result), nil
}

// IssueStrikeHandler godoc
// @Summary Issue a strike
// @Tags moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-User-Id header string true "Admin id"
// @Param X-User-Role header string true "Must be ADMIN"
// @Param Idempotency-Key header string false "Replay key"
// @Param request body httptransport.IssueStrikeRequest true "Strike"
// @Success 201 {object} httptransport.StrikeResponse
// @Failure 400 {object} httptransport.ErrorEnvelope
// @Failure 403 {object} httptransport.ErrorEnvelope
// @Failure 404 {object} httptransport.ErrorEnvelope
// @Router /api/moderation/v1/strikes [post]
func (h Handler) IssueStrikeHandler(ctx context.Context, actor entities.Actor, idempotencyKey string, req httptransport.IssueStrikeRequest) (httptransport.StrikeResponse, error) {
	result, err := h.Service.IssueStrike(ctx, actor, application.IssueStrikeCommand{
		UserID:         req.UserID,
		ChannelID:      req.ChannelID,
		Type:           req.Type,
		Severity:       req.Severity,
		Reason:         req.Reason,
		VideoID:        req.VideoID,
		ExpiresInDays:  req.ExpiresInDays,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		h.logFailure(ctx, "strike_issue", "user_id", req.UserID, err)
		return httptransport.StrikeResponse{}, err
	}
	return mapStrikeResponse(result), nil
}

// UpdateStrikeHandler godoc
// @Summary Remove, expire or re-grade a strike
// @Tags moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-User-Id header string true "Admin id"
// @Param X-User-Role header string true "Must be ADMIN"
// @Param Idempotency-Key header string false "Replay key"
// @Param strike_id path string true "Strike id"
// @Param request body httptransport.UpdateStrikeRequest true "Update"
// @Success 200 {object} httptransport.StrikeResponse
// @Failure 400 {object} httptransport.ErrorEnvelope
// @Failure 403 {object} httptransport.ErrorEnvelope
// @Failure 404 {object} httptransport.ErrorEnvelope
// @Router /api/moderation/v1/strikes/{strike_id} [patch]
func (h Handler) UpdateStrikeHandler(
	ctx context.Context,
	actor entities.Actor,
	strikeID string,
	idempotencyKey string,
	req httptransport.UpdateStrikeRequest,
) (httptransport.StrikeResponse, error) {
	result, err := h.Service.UpdateStrike(ctx, actor, application.UpdateStrikeCommand{
		StrikeID:       strikeID,
		Action:         req.Action,
		Severity:       req.Severity,
		Notes:          req.Notes,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		h.logFailure(ctx, "strike_update", "strike_id", strikeID, err)
		return httptransport.StrikeResponse{}, err
	}
	return mapStrikeResponse(result), nil
}

func (h Handler) PurgeStrikeHandler(
	ctx context.Context,
	actor entities.Actor,
	strikeID string,
	idempotencyKey string,
	req httptransport.PurgeStrikeRequest,
) (httptransport.StrikeResponse, error) {
	result, err := h.Service.PurgeStrike(ctx, actor, strikeID, req.Notes, idempotencyKey)
	if err != nil {
		return httptransport.StrikeResponse{}, err
	}
	return mapStrikeResponse(result), nil
}

func (h Handler) ListFlagsHandler(ctx context.Context, actor entities.Actor, status string, targetType string, page PageQuery) (httptransport.ListFlagsResponse, error) {
	limit, offset, err := page.parse()
	if err != nil {
		return httptransport.ListFlagsResponse{}, err
	}
	flags, err := h.Service.ListFlags(ctx, actor, ports.FlagFilter{
		Status:     entities.FlagStatus(status),
		TargetType: entities.FlagTargetType(targetType),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return httptransport.ListFlagsResponse{}, err
	}
	resp := httptransport.ListFlagsResponse{Status: "success", Timestamp: nowStamp()}
	resp.Data.Items = make([]httptransport.FlagDTO, 0, len(flags))
	for _, flag := range flags {
		resp.Data.Items = append(resp.Data.Items, mapFlag(flag))
	}
	return resp, nil
}

func (h Handler) ListClaimsHandler(ctx context.Context, actor entities.Actor, status string, videoID string, page PageQuery) (httptransport.ListClaimsResponse, error) {
	limit, offset, err := page.parse()
	if err != nil {
		return httptransport.ListClaimsResponse{}, err
	}
	claims, err := h.Service.ListClaims(ctx, actor, ports.ClaimFilter{
		Status:  entities.ClaimStatus(status),
		VideoID: videoID,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return httptransport.ListClaimsResponse{}, err
	}
	resp := httptransport.ListClaimsResponse{Status: "success", Timestamp: nowStamp()}
	resp.Data.Items = make([]httptransport.ClaimDTO, 0, len(claims))
	for _, claim := range claims {
		resp.Data.Items = append(resp.Data.Items, mapClaim(claim))
	}
	return resp, nil
}

func (h Handler) ListStrikesHandler(
	ctx context.Context,
	actor entities.Actor,
	userID string,
	channelID string,
	activeOnlyRaw string,
	page PageQuery,
) (httptransport.ListStrikesResponse, error) {
	limit, offset, err := page.parse()
	if err != nil {
		return httptransport.ListStrikesResponse{}, err
	}
	activeOnly := false
	if raw := strings.TrimSpace(activeOnlyRaw); raw != "" {
		activeOnly, err = strconv.ParseBool(raw)
		if err != nil {
			return httptransport.ListStrikesResponse{}, domainerrors.Invalid("active must be a boolean")
		}
	}
	strikes, err := h.Service.ListStrikes(ctx, actor, ports.StrikeFilter{
		UserID:     userID,
		ChannelID:  channelID,
		ActiveOnly: activeOnly,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return httptransport.ListStrikesResponse{}, err
	}
	resp := httptransport.ListStrikesResponse{Status: "success", Timestamp: nowStamp()}
	resp.Data.Items = mapStrikes(strikes)
	return resp, nil
}

func (h Handler) ListAuditLogsHandler(
	ctx context.Context,
	actor entities.Actor,
	adminID string,
	targetType string,
	targetID string,
	page PageQuery,
) (httptransport.ListAuditLogsResponse, error) {
	limit, offset, err := page.parse()
	if err != nil {
		return httptransport.ListAuditLogsResponse{}, err
	}
	logs, err := h.Service.ListAuditLogs(ctx, actor, ports.AuditFilter{
		AdminID:    adminID,
		TargetType: entities.AuditTargetType(targetType),
		TargetID:   targetID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return httptransport.ListAuditLogsResponse{}, err
	}
	resp := httptransport.ListAuditLogsResponse{Status: "success", Timestamp: nowStamp()}
	resp.Data.Items = make([]httptransport.AuditLogDTO, 0, len(logs))
	for _, entry := range logs {
		resp.Data.Items = append(resp.Data.Items, httptransport.AuditLogDTO{
			AuditID:    entry.AuditID,
			AdminID:    entry.AdminID,
			Action:     string(entry.Action),
			TargetType: string(entry.TargetType),
			TargetID:   entry.TargetID,
			OldValue:   rawValue(entry.OldValue),
			NewValue:   rawValue(entry.NewValue),
			Notes:      entry.Notes,
			CreatedAt:  formatTime(entry.CreatedAt),
		})
	}
	return resp, nil
}

// ChannelStandingHandler godoc
// @Summary Effective strike standing of a channel
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param X-User-Id header string true "Admin id"
// @Param X-User-Role header string true "Must be ADMIN"
// @Param channel_id path string true "Channel id"
// @Success 200 {object} httptransport.ChannelStandingResponse
// @Failure 403 {object} httptransport.ErrorEnvelope
// @Failure 404 {object} httptransport.ErrorEnvelope
// @Router /api/moderation/v1/channels/{channel_id}/standing [get]
func (h Handler) ChannelStandingHandler(ctx context.Context, actor entities.Actor, channelID string) (httptransport.ChannelStandingResponse, error) {
	standing, err := h.Service.GetChannelStanding(ctx, actor, channelID)
	if err != nil {
		return httptransport.ChannelStandingResponse{}, err
	}
	resp := httptransport.ChannelStandingResponse{Status: "success", Timestamp: nowStamp()}
	resp.Data.ChannelID = standing.Channel.ChannelID
	resp.Data.OwnerID = standing.Channel.OwnerID
	resp.Data.ChannelStatus = string(standing.Channel.Status)
	resp.Data.Strikes = standing.Standing.Strikes
	resp.Data.CopyrightStrikes = standing.Standing.CopyrightStrikes
	resp.Data.Warnings = standing.Standing.Warnings
	resp.Data.Suspensions = standing.Standing.Suspensions
	resp.Data.Terminations = standing.Standing.Terminations
	resp.Data.ActiveStrikes = mapStrikes(standing.ActiveStrikes)
	resp.Data.EvaluatedAt = formatTime(standing.EvaluatedAt)
	return resp, nil
}

// logFailure records rejected admin mutations. Expected domain outcomes are
// logged at warn, anything else at error.
func (h Handler) logFailure(ctx context.Context, operation string, idKey string, id string, err error) {
	logger := application.ResolveLogger(h.Logger)
	level := slog.LevelError
	if errors.Is(err, domainerrors.ErrInvalidRequest) ||
		errors.Is(err, domainerrors.ErrNotFound) ||
		errors.Is(err, domainerrors.ErrUnauthorized) ||
		errors.Is(err, domainerrors.ErrAlreadyResolved) ||
		errors.Is(err, domainerrors.ErrAlreadyDecided) {
		level = slog.LevelWarn
	}
	logger.Log(ctx, level, "moderation request failed",
		"event", "http_moderation_"+operation+"_failed",
		"module", "moderation-safety/moderation-service",
		"layer", "transport",
		idKey, id,
		"error", err.Error(),
	)
}

func mapFlagResponse(result application.FlagResult) httptransport.FlagResponse {
	resp := httptransport.FlagResponse{Status: "success", Warnings: result.Warnings, Timestamp: nowStamp()}
	resp.Data.Flag = mapFlag(result.Flag)
	resp.Data.Message = result.Message
	return resp
}

func mapClaimResponse(result application.ClaimResult) httptransport.ClaimResponse {
	resp := httptransport.ClaimResponse{Status: "success", Warnings: result.Warnings, Timestamp: nowStamp()}
	resp.Data.Claim = mapClaim(result.Claim)
	resp.Data.Message = result.Message
	return resp
}

func mapStrikeResponse(result application.StrikeResult) httptransport.StrikeResponse {
	resp := httptransport.StrikeResponse{Status: "success", Warnings: result.Warnings, Timestamp: nowStamp()}
	resp.Data.Strike = mapStrike(result.Strike)
	resp.Data.Message = result.Message
	resp.Data.ActiveStrikes = result.ActiveStrikes
	resp.Data.ChannelStatus = string(result.ChannelStatus)
	return resp
}

func mapFlag(flag entities.Flag) httptransport.FlagDTO {
	return httptransport.FlagDTO{
		FlagID:     flag.FlagID,
		ReporterID: flag.ReporterID,
		TargetType: string(flag.TargetType),
		VideoID:    flag.VideoID,
		CommentID:  flag.CommentID,
		Reason:     string(flag.Reason),
		Comment:    flag.Comment,
		Status:     string(flag.Status),
		Decision:   flag.Decision,
		ReviewedBy: flag.ReviewedBy,
		ReviewedAt: formatOptionalTime(flag.ReviewedAt),
		Notes:      flag.Notes,
		CreatedAt:  formatTime(flag.CreatedAt),
		UpdatedAt:  formatTime(flag.UpdatedAt),
	}
}

func mapClaim(claim entities.CopyrightClaim) httptransport.ClaimDTO {
	return httptransport.ClaimDTO{
		ClaimID:          claim.ClaimID,
		VideoID:          claim.VideoID,
		RightsHolderID:   claim.RightsHolderID,
		ClaimType:        string(claim.ClaimType),
		Description:      claim.Description,
		Status:           string(claim.Status),
		Decision:         claim.Decision,
		DecidedBy:        claim.DecidedBy,
		DecidedAt:        formatOptionalTime(claim.DecidedAt),
		CounterNotice:    claim.CounterNotice,
		CounterNoticedAt: formatOptionalTime(claim.CounterNoticedAt),
		VideoBlocked:     claim.VideoBlocked,
		CreatedAt:        formatTime(claim.CreatedAt),
		UpdatedAt:        formatTime(claim.UpdatedAt),
	}
}

func mapStrike(strike entities.Strike) httptransport.StrikeDTO {
	return httptransport.StrikeDTO{
		StrikeID:  strike.StrikeID,
		UserID:    strike.UserID,
		ChannelID: strike.ChannelID,
		Type:      string(strike.Type),
		Severity:  string(strike.Severity),
		Reason:    strike.Reason,
		VideoID:   strike.VideoID,
		IssuedBy:  strike.IssuedBy,
		Active:    strike.Active,
		ExpiresAt: formatTime(strike.ExpiresAt),
		CreatedAt: formatTime(strike.CreatedAt),
	}
}

func mapOptionalStrike(strike *entities.Strike) *httptransport.StrikeDTO {
	if strike == nil {
		return nil
	}
	dto := mapStrike(*strike)
	return &dto
}

func mapStrikes(strikes []entities.Strike) []httptransport.StrikeDTO {
	items := make([]httptransport.StrikeDTO, 0, len(strikes))
	for _, strike := range strikes {
		items = append(items, mapStrike(strike))
	}
	return items
}

func rawValue(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}

func formatOptionalTime(value *time.Time) string {
	if value == nil {
		return ""
	}
	return formatTime(*value)
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
