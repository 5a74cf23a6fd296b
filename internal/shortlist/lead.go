package shortlist

import (
	"github.com/talentops/shortlister/internal/airtable"
	"github.com/talentops/shortlister/internal/profile"
)

// Lead is one qualifying applicant captured at decision time. Leads are
// emitted at most once per applicant per run; the status state machine keeps
// later runs from emitting duplicates.
type Lead struct {
	ApplicantRecordID string
	ApplicantID       string
	ScoreReason       string
	CompressedProfile string
}

// Record shapes the lead for insertion into the shortlisted leads table.
func (l Lead) Record() airtable.Record {
	return airtable.Record{
		Fields: map[string]any{
			profile.FieldApplicantLink:     []string{l.ApplicantRecordID},
			profile.FieldApplicantID:       l.ApplicantID,
			profile.FieldScoreReason:       l.ScoreReason,
			profile.FieldCompressedProfile: l.CompressedProfile,
		},
	}
}
