package profile

import (
	"github.com/talentops/shortlister/internal/airtable"
)

// Compress joins the source table records belonging to the applicant into one
// flattened Profile.
//
// The first matching personal and salary record wins, in source collection
// order; multi-record histories are not modeled. All matching experience
// records are collected, preserving source order. A child record belongs to
// the applicant only when its back-reference link is populated and its
// Applicant ID equals the applicant's. Missing matches yield empty sections,
// never an error.
func Compress(applicant airtable.Record, personal, experience, salary []airtable.Record) Profile {
	applicantID := applicant.String(FieldApplicantID)

	var p Profile

	for _, record := range personal {
		if !belongsTo(record, applicantID) {
			continue
		}

		p.Personal = &PersonalSummary{
			Name:     record.String(FieldFullName),
			Location: record.String(FieldLocation),
			Email:    record.String(FieldEmail),
			LinkedIn: record.String(FieldLinkedIn),
		}
		break
	}

	for _, record := range experience {
		if !belongsTo(record, applicantID) {
			continue
		}

		p.Experience = append(p.Experience, ExperienceSummary{
			Company:      record.String(FieldCompany),
			Title:        record.String(FieldTitle),
			Start:        record.String(FieldStart),
			End:          record.String(FieldEnd),
			Technologies: splitTechnologies(record.String(FieldTechnologies)),
		})
	}

	for _, record := range salary {
		if !belongsTo(record, applicantID) {
			continue
		}

		rate, _ := record.Int(FieldPreferredRate)
		minRate, _ := record.Int(FieldMinimumRate)
		availability, _ := record.Int(FieldAvailability)

		p.Salary = &SalarySummary{
			Rate:         rate,
			MinRate:      minRate,
			Currency:     record.String(FieldCurrency),
			Availability: availability,
		}
		break
	}

	return p
}

func belongsTo(record airtable.Record, applicantID string) bool {
	if applicantID == "" {
		return false
	}
	return record.Has(FieldApplicantLink) && record.String(FieldApplicantID) == applicantID
}
