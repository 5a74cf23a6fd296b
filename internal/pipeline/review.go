package pipeline

import (
	"context"
	"fmt"

	"github.com/talentops/shortlister/internal/airtable"
	"github.com/talentops/shortlister/internal/profile"
	"github.com/talentops/shortlister/internal/shortlist"
	"go.uber.org/zap"
)

// Review sends every triaged applicant's profile to the language model and
// writes the parsed assessment back. An applicant whose model call or parse
// fails is left without a score; the run continues.
func (p *Pipeline) Review(ctx context.Context) error {
	if p.reviewer == nil {
		return fmt.Errorf("reviewer is not configured")
	}

	applicants, err := p.store.FetchAll(p.tables.Applicants)
	if err != nil {
		return fmt.Errorf("fetch applicants: %w", err)
	}

	p.logger.Info("fetched applicants", zap.Int("count", len(applicants)))

	reviewed := 0
	var updates []airtable.Record

	for _, applicant := range applicants {
		applicantID := applicant.String(profile.FieldApplicantID)
		blob := applicant.String(profile.FieldCompressedProfile)
		if applicantID == "" || blob == "" {
			p.logger.Warn("skipping applicant without applicant id or compressed profile",
				zap.String("record_id", applicant.ID),
			)
			continue
		}

		status := shortlist.Status(applicant.String(profile.FieldShortlistStatus))
		if !shortlist.Reviewable(status) {
			p.logger.Debug("skipping applicant not yet past triage",
				zap.String("applicant_id", applicantID),
				zap.String("status", string(status)),
			)
			continue
		}

		if _, err := profile.Parse(blob); err != nil {
			p.logger.Warn("skipping applicant with malformed compressed profile",
				zap.String("applicant_id", applicantID),
				zap.Error(err),
			)
			continue
		}

		result, err := p.reviewer.Review(ctx, blob)
		if err != nil {
			p.logger.Warn("no LLM score for applicant",
				zap.String("applicant_id", applicantID),
				zap.Error(err),
			)
			continue
		}

		reviewed++
		updates = append(updates, airtable.Record{
			ID: applicant.ID,
			Fields: map[string]any{
				profile.FieldLLMSummary:   result.Summary,
				profile.FieldLLMScore:     result.Score,
				profile.FieldLLMIssues:    result.Issues,
				profile.FieldLLMFollowUps: result.FollowUps,
			},
		})

		p.logger.Info("applicant reviewed",
			zap.String("applicant_id", applicantID),
			zap.Int("llm_score", result.Score),
		)
	}

	if err := p.upsertBatches(p.tables.Applicants, updates, airtable.ModeUpdate); err != nil {
		return err
	}

	p.logger.Info("review completed",
		zap.Int("reviewed", reviewed),
		zap.Int("applicants", len(applicants)),
	)

	return nil
}
