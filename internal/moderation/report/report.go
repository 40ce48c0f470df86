// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

// Package report lets any authenticated user flag bad price or exchange-rate
// data for moderator review.
package report

import "time"

// Subject kinds a report may target.
const (
	SubjectPrice = "price"
	SubjectRate  = "rate"
)

// SubjectKinds lists every accepted subject kind.
var SubjectKinds = []string{SubjectPrice, SubjectRate}

// Status values for a report.
const (
	StatusOpen      = "open"
	StatusResolved  = "resolved"
	StatusDismissed = "dismissed"
)

// Report represents a user-flagged data quality complaint.
type Report struct {
	ID          string    `json:"id"`
	SubjectKind string    `json:"subject_kind"`
	SubjectID   string    `json:"subject_id"`
	ReporterID  string    `json:"reporter_id"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	ResolvedBy  *string   `json:"resolved_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Filter narrows the moderation listing.
type Filter struct {
	Status      string
	SubjectKind string
}

// Global field names for validation
const (
	FieldSubjectKind = "subject_kind"
	FieldSubjectID   = "subject_id"
	FieldReason      = "reason"
	FieldStatus      = "status"
)
