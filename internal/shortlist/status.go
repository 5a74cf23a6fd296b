// Package shortlist defines the applicant shortlist-status state machine and
// the reconciliation from scoring decisions to statuses.
//
// Status graph driven by the scoring engine:
//
//	Waiting ──► Processing (eligible, lead emitted)
//	Waiting ──► Rejected   (criteria not met)
//	Waiting ──► Invalid    (missing data)
//	Invalid ──► any of the above (re-scored after data correction)
//
// Processing and Rejected are never re-triaged; downstream states past
// Processing are owned by the review flow.
package shortlist

import (
	"fmt"

	"github.com/talentops/shortlister/internal/scoring"
)

// Status values mirror the Shortlist Status single-select in the record store.
type Status string

const (
	StatusWaiting    Status = "Waiting"
	StatusProcessing Status = "Processing"
	StatusRejected   Status = "Rejected"
	StatusInvalid    Status = "Invalid"
)

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusWaiting, StatusProcessing, StatusRejected, StatusInvalid:
		return st, nil
	}
	return "", fmt.Errorf("unknown shortlist status %q", s)
}

// Triagable reports whether an applicant in this status may be scored.
// Waiting is the entry state; Invalid stays eligible so corrected data gets a
// second pass. Everything else was settled by a prior run and is skipped
// without mutation.
func Triagable(s Status) bool {
	return s == StatusWaiting || s == StatusInvalid
}

// Reviewable reports whether an applicant in this status is eligible for the
// qualitative review stage, which runs only on applicants already past
// shortlist triage.
func Reviewable(s Status) bool {
	return s != StatusWaiting && s != StatusInvalid
}

// Next maps a scoring decision onto the applicant's next status.
func Next(d scoring.Decision) Status {
	if d.Eligible {
		return StatusProcessing
	}
	if d.Code == scoring.ReasonMissingData {
		return StatusInvalid
	}
	return StatusRejected
}
