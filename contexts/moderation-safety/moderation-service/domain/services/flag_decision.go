package services

import (
	"strings"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
)

type FlagDecisionKind string

const (
	FlagDecisionDismiss          FlagDecisionKind = "dismiss"
	FlagDecisionWarn             FlagDecisionKind = "warn"
	FlagDecisionAgeRestrict      FlagDecisionKind = "age_restrict"
	FlagDecisionRemove           FlagDecisionKind = "remove"
	FlagDecisionRemoveWithStrike FlagDecisionKind = "remove_with_strike"
)

// FlagDecision is a closed set: each variant carries only its own fields.
type FlagDecision interface {
	Kind() FlagDecisionKind
	isFlagDecision()
}

type DismissFlag struct{}

type WarnOwner struct{}

type AgeRestrictContent struct{}

type RemoveContent struct{}

type RemoveContentWithStrike struct {
	StrikeType     entities.StrikeType
	StrikeSeverity entities.StrikeSeverity
}

func (DismissFlag) Kind() FlagDecisionKind             { return FlagDecisionDismiss }
func (WarnOwner) Kind() FlagDecisionKind               { return FlagDecisionWarn }
func (AgeRestrictContent) Kind() FlagDecisionKind      { return FlagDecisionAgeRestrict }
func (RemoveContent) Kind() FlagDecisionKind           { return FlagDecisionRemove }
func (RemoveContentWithStrike) Kind() FlagDecisionKind { return FlagDecisionRemoveWithStrike }

func (DismissFlag) isFlagDecision()             {}
func (WarnOwner) isFlagDecision()               {}
func (AgeRestrictContent) isFlagDecision()      {}
func (RemoveContent) isFlagDecision()           {}
func (RemoveContentWithStrike) isFlagDecision() {}

// ParseFlagDecision builds a decision from wire fields. Strike fields are
// required for remove_with_strike and rejected for every other decision.
func ParseFlagDecision(kind string, strikeType string, strikeSeverity string) (FlagDecision, error) {
	strikeType = strings.TrimSpace(strikeType)
	strikeSeverity = strings.TrimSpace(strikeSeverity)
	decisionKind := FlagDecisionKind(strings.ToLower(strings.TrimSpace(kind)))
	if decisionKind != FlagDecisionRemoveWithStrike && (strikeType != "" || strikeSeverity != "") {
		return nil, domainerrors.Invalid("strike fields are only accepted with %s", FlagDecisionRemoveWithStrike)
	}
	switch decisionKind {
	case FlagDecisionDismiss:
		return DismissFlag{}, nil
	case FlagDecisionWarn:
		return WarnOwner{}, nil
	case FlagDecisionAgeRestrict:
		return AgeRestrictContent{}, nil
	case FlagDecisionRemove:
		return RemoveContent{}, nil
	case FlagDecisionRemoveWithStrike:
		if strikeType == "" || strikeSeverity == "" {
			return nil, domainerrors.Invalid("strike_type and strike_severity are required for %s", FlagDecisionRemoveWithStrike)
		}
		parsedType, err := entities.ParseStrikeType(strikeType)
		if err != nil {
			return nil, err
		}
		parsedSeverity, err := entities.ParseStrikeSeverity(strikeSeverity)
		if err != nil {
			return nil, err
		}
		return RemoveContentWithStrike{StrikeType: parsedType, StrikeSeverity: parsedSeverity}, nil
	}
	return nil, domainerrors.Invalid("unknown flag decision %q", kind)
}

type ContentAction int

const (
	ContentUnchanged ContentAction = iota
	ContentAgeRestrict
	ContentRemove
)

type StrikeIntent struct {
	Type     entities.StrikeType
	Severity entities.StrikeSeverity
}

// FlagPlan is the full set of effects a decision has on a flag's target.
type FlagPlan struct {
	Status         entities.FlagStatus
	DecisionText   string
	Content        ContentAction
	Strike         *StrikeIntent
	RewardReporter bool
	NotifyOwner    bool
}

func PlanFlagDecision(flag entities.Flag, decision FlagDecision) (FlagPlan, error) {
	if flag.Status.IsTerminal() {
		return FlagPlan{}, domainerrors.ErrAlreadyResolved
	}
	if decision == nil {
		return FlagPlan{}, domainerrors.Invalid("decision is required")
	}
	plan := FlagPlan{
		Status:         entities.FlagStatusResolved,
		RewardReporter: true,
		NotifyOwner:    true,
	}
	switch d := decision.(type) {
	case DismissFlag:
		plan.Status = entities.FlagStatusDismissed
		plan.DecisionText = "Dismissed"
		plan.RewardReporter = false
		plan.NotifyOwner = false
	case WarnOwner:
		plan.DecisionText = "Warning issued"
	case AgeRestrictContent:
		if flag.TargetType != entities.FlagTargetVideo {
			return FlagPlan{}, domainerrors.Invalid("age restriction applies to videos only")
		}
		plan.DecisionText = "Age restriction applied"
		plan.Content = ContentAgeRestrict
	case RemoveContent:
		plan.DecisionText = "Content removed"
		plan.Content = ContentRemove
	case RemoveContentWithStrike:
		plan.DecisionText = "Content removed with strike"
		plan.Content = ContentRemove
		plan.Strike = &StrikeIntent{Type: d.StrikeType, Severity: d.StrikeSeverity}
		// the strike notice carries the removal message
		plan.NotifyOwner = false
	default:
		return FlagPlan{}, domainerrors.Invalid("unsupported flag decision %T", decision)
	}
	return plan, nil
}
