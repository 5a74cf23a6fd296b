package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/talentops/shortlister/internal/airtable"
	"github.com/talentops/shortlister/internal/profile"
	"github.com/talentops/shortlister/internal/shortlist"
	"go.uber.org/zap"
)

// ShortlistSummary reports the outcome of one scoring run.
type ShortlistSummary struct {
	Scored      int
	Shortlisted int
	Rejected    int
	Invalid     int
	Skipped     int
}

// ErrDeclined is returned when the operator rejects the pending writes.
var ErrDeclined = errors.New("writes declined by operator")

// ConfirmFunc asks the operator whether the pending writes should be
// committed. A nil ConfirmFunc commits unconditionally.
type ConfirmFunc func(leads, statusUpdates int) bool

// Shortlist scores every triagable applicant, emits a lead per qualifying
// applicant and drives the shortlist status state machine. Applicants
// already moved to Processing or Rejected by a prior run are skipped without
// mutation.
func (p *Pipeline) Shortlist(ctx context.Context, confirm ConfirmFunc) (*ShortlistSummary, error) {
	applicants, err := p.store.FetchAll(p.tables.Applicants)
	if err != nil {
		return nil, fmt.Errorf("fetch applicants: %w", err)
	}

	p.logger.Info("fetched applicants", zap.Int("count", len(applicants)))

	summary := &ShortlistSummary{}
	var leads []airtable.Record
	var statusUpdates []airtable.Record

	for _, applicant := range applicants {
		applicantID := applicant.String(profile.FieldApplicantID)
		blob := applicant.String(profile.FieldCompressedProfile)
		if applicantID == "" || blob == "" {
			summary.Skipped++
			p.logger.Warn("skipping applicant without applicant id or compressed profile",
				zap.String("record_id", applicant.ID),
			)
			continue
		}

		status, err := shortlist.ParseStatus(applicant.String(profile.FieldShortlistStatus))
		if err != nil {
			summary.Skipped++
			p.logger.Warn("skipping applicant with unknown status",
				zap.String("applicant_id", applicantID),
				zap.Error(err),
			)
			continue
		}

		if !shortlist.Triagable(status) {
			summary.Skipped++
			p.logger.Debug("skipping applicant settled by a prior run",
				zap.String("applicant_id", applicantID),
				zap.String("status", string(status)),
			)
			continue
		}

		parsed, err := profile.Parse(blob)
		if err != nil {
			summary.Skipped++
			p.logger.Warn("skipping applicant with malformed compressed profile",
				zap.String("applicant_id", applicantID),
				zap.Error(err),
			)
			continue
		}

		decision := p.engine.Score(parsed)
		summary.Scored++

		next := shortlist.Next(decision)
		statusUpdates = append(statusUpdates, airtable.Record{
			ID: applicant.ID,
			Fields: map[string]any{
				profile.FieldShortlistStatus: string(next),
			},
		})

		switch next {
		case shortlist.StatusProcessing:
			summary.Shortlisted++
			leads = append(leads, shortlist.Lead{
				ApplicantRecordID: applicant.ID,
				ApplicantID:       applicantID,
				ScoreReason:       decision.Reason,
				CompressedProfile: blob,
			}.Record())
		case shortlist.StatusInvalid:
			summary.Invalid++
		default:
			summary.Rejected++
		}

		p.logger.Info("applicant scored",
			zap.String("applicant_id", applicantID),
			zap.Bool("eligible", decision.Eligible),
			zap.String("reason_code", decision.Code.String()),
			zap.String("next_status", string(next)),
		)
	}

	if confirm != nil && !confirm(len(leads), len(statusUpdates)) {
		p.logger.Info("exiting", zap.String("reason", "writes declined by operator"))
		return summary, ErrDeclined
	}

	var failures []error
	if err := p.upsertBatches(p.tables.Shortlisted, leads, airtable.ModeInsert); err != nil {
		failures = append(failures, err)
	}
	if err := p.upsertBatches(p.tables.Applicants, statusUpdates, airtable.ModeUpdate); err != nil {
		failures = append(failures, err)
	}

	p.logger.Info("shortlist completed",
		zap.Int("scored", summary.Scored),
		zap.Int("shortlisted", summary.Shortlisted),
		zap.Int("rejected", summary.Rejected),
		zap.Int("invalid", summary.Invalid),
		zap.Int("skipped", summary.Skipped),
	)

	return summary, errors.Join(failures...)
}
