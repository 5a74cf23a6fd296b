package pipeline

import (
	"context"
	"fmt"

	"github.com/talentops/shortlister/internal/airtable"
	"github.com/talentops/shortlister/internal/profile"
	"go.uber.org/zap"
)

// Compress joins the four source tables into one flattened profile per
// applicant and writes the serialized documents back to the applicant table.
func (p *Pipeline) Compress(_ context.Context) error {
	applicants, err := p.store.FetchAll(p.tables.Applicants)
	if err != nil {
		return fmt.Errorf("fetch applicants: %w", err)
	}
	personal, err := p.store.FetchAll(p.tables.Personal)
	if err != nil {
		return fmt.Errorf("fetch personal details: %w", err)
	}
	experience, err := p.store.FetchAll(p.tables.Experience)
	if err != nil {
		return fmt.Errorf("fetch work experience: %w", err)
	}
	salary, err := p.store.FetchAll(p.tables.Salary)
	if err != nil {
		return fmt.Errorf("fetch salary preferences: %w", err)
	}

	p.logger.Info("fetched source tables",
		zap.Int("applicants", len(applicants)),
		zap.Int("personal", len(personal)),
		zap.Int("experience", len(experience)),
		zap.Int("salary", len(salary)),
	)

	updates := make([]airtable.Record, 0, len(applicants))
	for _, applicant := range applicants {
		applicantID := applicant.String(profile.FieldApplicantID)
		if applicantID == "" {
			p.logger.Warn("skipping applicant without applicant id", zap.String("record_id", applicant.ID))
			continue
		}

		compressed := profile.Compress(applicant, personal, experience, salary)
		blob, err := compressed.Marshal()
		if err != nil {
			p.logger.Warn("skipping applicant: profile serialization failed",
				zap.String("applicant_id", applicantID),
				zap.Error(err),
			)
			continue
		}

		updates = append(updates, airtable.Record{
			ID: applicant.ID,
			Fields: map[string]any{
				profile.FieldCompressedProfile: blob,
			},
		})

		p.logger.Debug("compressed profile",
			zap.String("applicant_id", applicantID),
			zap.Bool("personal", compressed.HasPersonal()),
			zap.Int("experience_entries", len(compressed.Experience)),
			zap.Bool("salary", compressed.HasSalary()),
		)
	}

	if err := p.upsertBatches(p.tables.Applicants, updates, airtable.ModeUpdate); err != nil {
		return err
	}

	p.logger.Info("compress completed", zap.Int("applicants_updated", len(updates)))
	return nil
}
