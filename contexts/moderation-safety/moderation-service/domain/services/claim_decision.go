package services

import (
	"strings"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
)

type ClaimDecisionKind string

const (
	ClaimDecisionUphold  ClaimDecisionKind = "uphold"
	ClaimDecisionReject  ClaimDecisionKind = "reject"
	ClaimDecisionPartial ClaimDecisionKind = "partial"
)

type ClaimAction string

const (
	ClaimActionNone                ClaimAction = "none"
	ClaimActionBlock               ClaimAction = "block"
	ClaimActionMuteAudio           ClaimAction = "mute_audio"
	ClaimActionMonetizeForClaimant ClaimAction = "monetize_for_claimant"
)

type ClaimDecision interface {
	Kind() ClaimDecisionKind
	isClaimDecision()
}

type UpholdClaim struct {
	Action      ClaimAction
	ApplyStrike bool
}

type RejectClaim struct{}

type PartiallyUpholdClaim struct{}

func (UpholdClaim) Kind() ClaimDecisionKind          { return ClaimDecisionUphold }
func (RejectClaim) Kind() ClaimDecisionKind          { return ClaimDecisionReject }
func (PartiallyUpholdClaim) Kind() ClaimDecisionKind { return ClaimDecisionPartial }

func (UpholdClaim) isClaimDecision()          {}
func (RejectClaim) isClaimDecision()          {}
func (PartiallyUpholdClaim) isClaimDecision() {}

func ParseClaimAction(raw string) (ClaimAction, error) {
	value := ClaimAction(strings.ToLower(strings.TrimSpace(raw)))
	switch value {
	case "", ClaimActionNone:
		return ClaimActionNone, nil
	case ClaimActionBlock, ClaimActionMuteAudio, ClaimActionMonetizeForClaimant:
		return value, nil
	}
	return "", domainerrors.Invalid("unknown claim action %q", raw)
}

// ParseClaimDecision builds a decision from wire fields. action and
// applyStrike only belong to uphold.
func ParseClaimDecision(kind string, action string, applyStrike bool) (ClaimDecision, error) {
	parsedAction, err := ParseClaimAction(action)
	if err != nil {
		return nil, err
	}
	switch ClaimDecisionKind(strings.ToLower(strings.TrimSpace(kind))) {
	case ClaimDecisionUphold:
		return UpholdClaim{Action: parsedAction, ApplyStrike: applyStrike}, nil
	case ClaimDecisionReject, ClaimDecisionPartial:
		if parsedAction != ClaimActionNone || applyStrike {
			return nil, domainerrors.Invalid("action and apply_strike are only accepted with %s", ClaimDecisionUphold)
		}
		if ClaimDecisionKind(strings.ToLower(strings.TrimSpace(kind))) == ClaimDecisionReject {
			return RejectClaim{}, nil
		}
		return PartiallyUpholdClaim{}, nil
	}
	return nil, domainerrors.Invalid("unknown claim decision %q", kind)
}

type ClaimPlan struct {
	Status       entities.ClaimStatus
	DecisionText string
	BlockVideo   bool
	RestoreVideo bool
	Strike       *StrikeIntent
	Notice       entities.NotificationType
	AuditAction  entities.AuditAction
}

func PlanClaimDecision(claim entities.CopyrightClaim, decision ClaimDecision) (ClaimPlan, error) {
	if !claim.Status.IsDecidable() {
		return ClaimPlan{}, domainerrors.ErrAlreadyDecided
	}
	if decision == nil {
		return ClaimPlan{}, domainerrors.Invalid("decision is required")
	}
	switch d := decision.(type) {
	case UpholdClaim:
		plan := ClaimPlan{
			Status:      entities.ClaimStatusUpheld,
			Notice:      entities.NotificationClaimUpheld,
			AuditAction: entities.AuditClaimUpheld,
		}
		switch d.Action {
		case ClaimActionBlock:
			plan.DecisionText = "Claim upheld: video blocked"
			plan.BlockVideo = true
		case ClaimActionMuteAudio:
			plan.DecisionText = "Claim upheld: audio muted"
		case ClaimActionMonetizeForClaimant:
			plan.DecisionText = "Claim upheld: monetization assigned to claimant"
		default:
			plan.DecisionText = "Claim upheld"
		}
		if d.ApplyStrike {
			plan.Strike = &StrikeIntent{Type: entities.StrikeTypeCopyright, Severity: entities.SeverityStrike}
		}
		return plan, nil
	case RejectClaim:
		return ClaimPlan{
			Status:       entities.ClaimStatusRejected,
			DecisionText: "Claim rejected: no action taken",
			RestoreVideo: claim.VideoBlocked,
			Notice:       entities.NotificationClaimRejected,
			AuditAction:  entities.AuditClaimRejected,
		}, nil
	case PartiallyUpholdClaim:
		return ClaimPlan{
			Status:       entities.ClaimStatusUpheld,
			DecisionText: "Claim partially upheld",
			Notice:       entities.NotificationClaimPartial,
			AuditAction:  entities.AuditClaimPartiallyUpheld,
		}, nil
	}
	return ClaimPlan{}, domainerrors.Invalid("unsupported claim decision %T", decision)
}
