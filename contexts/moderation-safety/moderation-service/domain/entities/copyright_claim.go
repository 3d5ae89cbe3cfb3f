package entities

import "time"

type ClaimType string

const (
	ClaimTypeAudio       ClaimType = "AUDIO"
	ClaimTypeVisual      ClaimType = "VISUAL"
	ClaimTypeAudiovisual ClaimType = "AUDIOVISUAL"
	ClaimTypeOther       ClaimType = "OTHER"
)

type ClaimStatus string

const (
	ClaimStatusPending        ClaimStatus = "PENDING"
	ClaimStatusUpheld         ClaimStatus = "UPHELD"
	ClaimStatusRejected       ClaimStatus = "REJECTED"
	ClaimStatusCounterNoticed ClaimStatus = "COUNTER_NOTICED"
	ClaimStatusAppealed       ClaimStatus = "APPEALED"
)

// DecidableClaimStatuses are the statuses from which uphold/reject/partial is accepted.
var DecidableClaimStatuses = []ClaimStatus{ClaimStatusPending, ClaimStatusAppealed, ClaimStatusCounterNoticed}

func (s ClaimStatus) IsDecidable() bool {
	for _, status := range DecidableClaimStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type CopyrightClaim struct {
	ClaimID          string
	VideoID          string
	RightsHolderID   string
	ClaimType        ClaimType
	Description      string
	Status           ClaimStatus
	Decision         string
	DecidedBy        string
	DecidedAt        *time.Time
	CounterNotice    string
	CounterNoticedAt *time.Time
	// VideoBlocked is set while the claimed video is held PRIVATE because of this claim.
	VideoBlocked bool
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
