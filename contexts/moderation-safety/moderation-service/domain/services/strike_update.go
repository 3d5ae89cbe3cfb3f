package services

import (
	"strings"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
)

type StrikeUpdateKind string

const (
	StrikeUpdateRemove         StrikeUpdateKind = "remove"
	StrikeUpdateExpire         StrikeUpdateKind = "expire"
	StrikeUpdateChangeSeverity StrikeUpdateKind = "update_severity"
)

type StrikeUpdate interface {
	Kind() StrikeUpdateKind
	isStrikeUpdate()
}

type RemoveStrike struct{}

type ExpireStrike struct{}

type ChangeStrikeSeverity struct {
	Severity entities.StrikeSeverity
}

func (RemoveStrike) Kind() StrikeUpdateKind         { return StrikeUpdateRemove }
func (ExpireStrike) Kind() StrikeUpdateKind         { return StrikeUpdateExpire }
func (ChangeStrikeSeverity) Kind() StrikeUpdateKind { return StrikeUpdateChangeSeverity }

func (RemoveStrike) isStrikeUpdate()         {}
func (ExpireStrike) isStrikeUpdate()         {}
func (ChangeStrikeSeverity) isStrikeUpdate() {}

func ParseStrikeUpdate(action string, severity string) (StrikeUpdate, error) {
	severity = strings.TrimSpace(severity)
	switch StrikeUpdateKind(strings.ToLower(strings.TrimSpace(action))) {
	case StrikeUpdateRemove:
		if severity != "" {
			return nil, domainerrors.Invalid("severity is only accepted with %s", StrikeUpdateChangeSeverity)
		}
		return RemoveStrike{}, nil
	case StrikeUpdateExpire:
		if severity != "" {
			return nil, domainerrors.Invalid("severity is only accepted with %s", StrikeUpdateChangeSeverity)
		}
		return ExpireStrike{}, nil
	case StrikeUpdateChangeSeverity:
		if severity == "" {
			return nil, domainerrors.Invalid("severity is required for %s", StrikeUpdateChangeSeverity)
		}
		parsed, err := entities.ParseStrikeSeverity(severity)
		if err != nil {
			return nil, err
		}
		return ChangeStrikeSeverity{Severity: parsed}, nil
	}
	return nil, domainerrors.Invalid("unknown strike action %q", action)
}
