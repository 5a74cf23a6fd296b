package pipeline

import (
	"context"
	"fmt"

	"github.com/talentops/shortlister/internal/airtable"
	"github.com/talentops/shortlister/internal/profile"
	"go.uber.org/zap"
)

// Decompress reconstructs per-table record updates from each applicant's
// stored profile and upserts them into the normalized tables.
func (p *Pipeline) Decompress(_ context.Context) error {
	applicants, err := p.store.FetchAll(p.tables.Applicants)
	if err != nil {
		return fmt.Errorf("fetch applicants: %w", err)
	}

	p.logger.Info("fetched applicants", zap.Int("count", len(applicants)))

	failed := 0
	for _, applicant := range applicants {
		applicantID := applicant.String(profile.FieldApplicantID)
		blob := applicant.String(profile.FieldCompressedProfile)
		if applicantID == "" || blob == "" {
			p.logger.Warn("skipping applicant without applicant id or compressed profile",
				zap.String("record_id", applicant.ID),
			)
			continue
		}

		parsed, err := profile.Parse(blob)
		if err != nil {
			p.logger.Warn("skipping applicant with malformed compressed profile",
				zap.String("applicant_id", applicantID),
				zap.Error(err),
			)
			continue
		}

		refs := profile.Refs{
			Personal:   applicant.StringList(profile.FieldPersonalDetailsLink),
			Experience: applicant.StringList(profile.FieldWorkExperienceLink),
			Salary:     applicant.StringList(profile.FieldSalaryPreferencesLink),
		}

		result := profile.Decompress(applicant.ID, applicantID, parsed, refs)

		if err := p.writeDecompressed(applicantID, result); err != nil {
			failed++
			p.logger.Error("decompress writes failed for applicant",
				zap.String("applicant_id", applicantID),
				zap.Error(err),
			)
		}
	}

	if failed > 0 {
		return fmt.Errorf("decompress failed for %d of %d applicants", failed, len(applicants))
	}

	p.logger.Info("decompress completed", zap.Int("applicants", len(applicants)))
	return nil
}

func (p *Pipeline) writeDecompressed(applicantID string, result profile.Result) error {
	if result.Personal != nil {
		if err := p.store.Upsert(p.tables.Personal, []airtable.Record{*result.Personal}, airtable.ModeUpdate); err != nil {
			return fmt.Errorf("personal details: %w", err)
		}
	} else {
		p.logger.Info("personal details not written",
			zap.String("applicant_id", applicantID),
			zap.String("outcome", result.PersonalOutcome.String()),
		)
	}

	if result.Drifted() {
		p.logger.Warn("experience references and entries drifted",
			zap.String("applicant_id", applicantID),
			zap.Int("entries_written", len(result.Experience)),
			zap.Int("zip_length", len(result.ExperienceOutcomes)),
		)
		for _, outcome := range result.ExperienceOutcomes {
			if outcome.Outcome == profile.Updated {
				continue
			}
			p.logger.Warn("experience entry not written",
				zap.String("applicant_id", applicantID),
				zap.Int("index", outcome.Index),
				zap.String("outcome", outcome.Outcome.String()),
			)
		}
	}

	if err := p.upsertBatches(p.tables.Experience, result.Experience, airtable.ModeUpdate); err != nil {
		return fmt.Errorf("work experience: %w", err)
	}

	if result.Salary != nil {
		if err := p.store.Upsert(p.tables.Salary, []airtable.Record{*result.Salary}, airtable.ModeUpdate); err != nil {
			return fmt.Errorf("salary preferences: %w", err)
		}
	} else {
		p.logger.Info("salary preferences not written",
			zap.String("applicant_id", applicantID),
			zap.String("outcome", result.SalaryOutcome.String()),
		)
	}

	return nil
}
