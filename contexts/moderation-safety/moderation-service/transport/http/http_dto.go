package http

type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Status    string    `json:"status"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

type SubmitFlagRequest struct {
	TargetType string `json:"target_type"`
	VideoID    string `json:"video_id,omitempty"`
	CommentID  string `json:"comment_id,omitempty"`
	Reason     string `json:"reason"`
	Comment    string `json:"comment,omitempty"`
}

type DecideFlagRequest struct {
	Decision       string `json:"decision"`
	Notes          string `json:"notes,omitempty"`
	StrikeType     string `json:"strike_type,omitempty"`
	StrikeSeverity string `json:"strike_severity,omitempty"`
}

type DecideClaimRequest struct {
	Decision    string `json:"decision"`
	Notes       string `json:"notes,omitempty"`
	Action      string `json:"action,omitempty"`
	ApplyStrike bool   `json:"apply_strike,omitempty"`
}

type BlockClaimedVideoRequest struct {
	Notes string `json:"notes,omitempty"`
}

type CounterNoticeRequest struct {
	CounterNotice string `json:"counter_notice"`
}

type IssueStrikeRequest struct {
	UserID        string `json:"user_id"`
	ChannelID     string `json:"channel_id,omitempty"`
	Type          string `json:"type"`
	Severity      string `json:"severity"`
	Reason        string `json:"reason"`
	VideoID       string `json:"video_id,omitempty"`
	ExpiresInDays int    `json:"expires_in_days,omitempty"`
}

type UpdateStrikeRequest struct {
	Action   string `json:"action"`
	Severity string `json:"severity,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type PurgeStrikeRequest struct {
	Notes string `json:"notes,omitempty"`
}

type FlagDTO struct {
	FlagID     string `json:"flag_id"`
	ReporterID string `json:"reporter_id"`
	TargetType string `json:"target_type"`
	VideoID    string `json:"video_id,omitempty"`
	CommentID  string `json:"comment_id,omitempty"`
	Reason     string `json:"reason"`
	Comment    string `json:"comment,omitempty"`
	Status     string `json:"status"`
	Decision   string `json:"decision,omitempty"`
	ReviewedBy string `json:"reviewed_by,omitempty"`
	ReviewedAt string `json:"reviewed_at,omitempty"`
	Notes      string `json:"notes,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type ClaimDTO struct {
	ClaimID          string `json:"claim_id"`
	VideoID          string `json:"video_id"`
	RightsHolderID   string `json:"rights_holder_id"`
	ClaimType        string `json:"claim_type"`
	Description      string `json:"description,omitempty"`
	Status           string `json:"status"`
	Decision         string `json:"decision,omitempty"`
	DecidedBy        string `json:"decided_by,omitempty"`
	DecidedAt        string `json:"decided_at,omitempty"`
	CounterNotice    string `json:"counter_notice,omitempty"`
	CounterNoticedAt string `json:"counter_noticed_at,omitempty"`
	VideoBlocked     bool   `json:"video_blocked"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

type StrikeDTO struct {
	StrikeID  string `json:"strike_id"`
	UserID    string `json:"user_id"`
	ChannelID string `json:"channel_id,omitempty"`
	Type      string `json:"type"`
	Severity  string `json:"severity"`
	Reason    string `json:"reason"`
	VideoID   string `json:"video_id,omitempty"`
	IssuedBy  string `json:"issued_by"`
	Active    bool   `json:"active"`
	ExpiresAt string `json:"expires_at"`
	CreatedAt string `json:"created_at"`
}

type AuditLogDTO struct {
	AuditID    string `json:"audit_id"`
	AdminID    string `json:"admin_id"`
	Action     string `json:"action"`
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	OldValue   any    `json:"old_value,omitempty"`
	NewValue   any    `json:"new_value,omitempty"`
	Notes      string `json:"notes,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type FlagResponse struct {
	Status string `json:"status"`
	Data   struct {
		Flag    FlagDTO `json:"flag"`
		Message string  `json:"message"`
	} `json:"data"`
	Warnings  []string `json:"warnings,omitempty"`
	Timestamp string   `json:"timestamp"`
}

type FlagDecisionResponse struct {
	Status string `json:"status"`
	Data   struct {
		Flag          FlagDTO    `json:"flag"`
		Message       string     `json:"message"`
		Strike        *StrikeDTO `json:"strike,omitempty"`
		ActiveStrikes int        `json:"active_strikes"`
		ChannelStatus string     `json:"channel_status,omitempty"`
	} `json:"data"`
	Warnings  []string `json:"warnings,omitempty"`
	Timestamp string   `json:"timestamp"`
}

type ClaimResponse struct {
	Status string `json:"status"`
	Data   struct {
		Claim   ClaimDTO `json:"claim"`
		Message string   `json:"message"`
	} `json:"data"`
	Warnings  []string `json:"warnings,omitempty"`
	Timestamp string   `json:"timestamp"`
}

type ClaimDecisionResponse struct {
	Status string `json:"status"`
	Data   struct {
		Claim         ClaimDTO   `json:"claim"`
		Message       string     `json:"message"`
		Strike        *StrikeDTO `json:"strike,omitempty"`
		ActiveStrikes int        `json:"active_strikes"`
		ChannelStatus string     `json:"channel_status,omitempty"`
	} `json:"data"`
	Warnings  []string `json:"warnings,omitempty"`
	Timestamp string   `json:"timestamp"`
}

type StrikeResponse struct {
	Status string `json:"status"`
	Data   struct {
		Strike        StrikeDTO `json:"strike"`
		Message       string    `json:"message"`
		ActiveStrikes int       `json:"active_strikes"`
		ChannelStatus string    `json:"channel_status,omitempty"`
	} `json:"data"`
	Warnings  []string `json:"warnings,omitempty"`
	Timestamp string   `json:"timestamp"`
}

type ListFlagsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Items []FlagDTO `json:"items"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}

type ListClaimsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Items []ClaimDTO `json:"items"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}

type ListStrikesResponse struct {
	Status string `json:"status"`
	Data   struct {
		Items []StrikeDTO `json:"items"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}

type ListAuditLogsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Items []AuditLogDTO `json:"items"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}

type ChannelStandingResponse struct {
	Status string `json:"status"`
	Data   struct {
		ChannelID        string      `json:"channel_id"`
		OwnerID          string      `json:"owner_id"`
		ChannelStatus    string      `json:"channel_status"`
		Strikes          int         `json:"strikes"`
		CopyrightStrikes int         `json:"copyright_strikes"`
		Warnings         int         `json:"warnings"`
		Suspensions      int         `json:"suspensions"`
		Terminations     int         `json:"terminations"`
		ActiveStrikes    []StrikeDTO `json:"active_strikes"`
		EvaluatedAt      string      `json:"evaluated_at"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}
