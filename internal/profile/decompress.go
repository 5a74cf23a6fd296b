package profile

import (
	"strconv"

	"github.com/talentops/shortlister/internal/airtable"
)

// Outcome tags what happened to one destination record during decompression.
type Outcome int

const (
	// Updated means a field set was produced for the destination record.
	Updated Outcome = iota
	// SkippedNoReference means profile data exists but no destination record
	// id was supplied to overwrite.
	SkippedNoReference
	// SkippedNoData means a destination record id exists but the profile
	// holds no data for it.
	SkippedNoData
)

func (o Outcome) String() string {
	switch o {
	case Updated:
		return "updated"
	case SkippedNoReference:
		return "skipped: no reference"
	case SkippedNoData:
		return "skipped: no data"
	default:
		return "unknown"
	}
}

// Refs holds the destination record ids to overwrite, taken from the
// applicant's cross-reference link fields. The profile itself carries no
// identifiers.
type Refs struct {
	Personal   []string
	Experience []string
	Salary     []string
}

// ExperienceOutcome reports the per-index result of zipping the experience
// reference ids against the profile's experience entries.
type ExperienceOutcome struct {
	Index   int
	RefID   string
	Outcome Outcome
}

// Result carries the reconstructed per-table field sets plus an explicit
// outcome for every section, so callers can detect drift between the stored
// reference-id count and the compressed entry count instead of silently
// truncating.
type Result struct {
	Personal        *airtable.Record
	PersonalOutcome Outcome

	Experience         []airtable.Record
	ExperienceOutcomes []ExperienceOutcome

	Salary        *airtable.Record
	SalaryOutcome Outcome
}

// Drifted reports whether the experience zip had mismatched lengths.
func (r Result) Drifted() bool {
	for _, e := range r.ExperienceOutcomes {
		if e.Outcome != Updated {
			return true
		}
	}
	return false
}

// Decompress reconstructs per-table record updates from a stored profile.
// applicantRecordID is the store identifier of the applicant row; it is
// reattached as the back-reference on every produced record. Reference ids
// and experience entries are zipped positionally by index.
func Decompress(applicantRecordID, applicantID string, p *Profile, refs Refs) Result {
	var res Result

	switch {
	case !p.HasPersonal():
		res.PersonalOutcome = SkippedNoData
	case len(refs.Personal) == 0:
		res.PersonalOutcome = SkippedNoReference
	default:
		res.PersonalOutcome = Updated
		res.Personal = &airtable.Record{
			ID: refs.Personal[0],
			Fields: map[string]any{
				FieldApplicantLink: []string{applicantRecordID},
				FieldApplicantID:   applicantID,
				FieldFullName:      p.Personal.Name,
				FieldLocation:      p.Personal.Location,
				FieldEmail:         p.Personal.Email,
				FieldLinkedIn:      p.Personal.LinkedIn,
			},
		}
	}

	entries := 0
	if p != nil {
		entries = len(p.Experience)
	}
	n := entries
	if len(refs.Experience) > n {
		n = len(refs.Experience)
	}

	for i := 0; i < n; i++ {
		switch {
		case i >= len(refs.Experience):
			res.ExperienceOutcomes = append(res.ExperienceOutcomes, ExperienceOutcome{Index: i, Outcome: SkippedNoReference})
		case i >= entries:
			res.ExperienceOutcomes = append(res.ExperienceOutcomes, ExperienceOutcome{Index: i, RefID: refs.Experience[i], Outcome: SkippedNoData})
		default:
			entry := p.Experience[i]
			res.ExperienceOutcomes = append(res.ExperienceOutcomes, ExperienceOutcome{Index: i, RefID: refs.Experience[i], Outcome: Updated})
			res.Experience = append(res.Experience, airtable.Record{
				ID: refs.Experience[i],
				Fields: map[string]any{
					FieldApplicantLink: []string{applicantRecordID},
					FieldApplicantID:   applicantID,
					FieldCompany:       entry.Company,
					FieldTitle:         entry.Title,
					FieldStart:         entry.Start,
					FieldEnd:           entry.End,
					FieldTechnologies:  joinTechnologies(entry.Technologies),
				},
			})
		}
	}

	switch {
	case !p.HasSalary():
		res.SalaryOutcome = SkippedNoData
	case len(refs.Salary) == 0:
		res.SalaryOutcome = SkippedNoReference
	default:
		res.SalaryOutcome = Updated
		res.Salary = &airtable.Record{
			ID: refs.Salary[0],
			Fields: map[string]any{
				FieldApplicantLink: []string{applicantRecordID},
				FieldApplicantID:   applicantID,
				FieldPreferredRate: p.Salary.Rate,
				FieldMinimumRate:   p.Salary.MinRate,
				FieldCurrency:      p.Salary.Currency,
				// The destination column is text; availability is stored
				// re-stringified.
				FieldAvailability: strconv.Itoa(p.Salary.Availability),
			},
		}
	}

	return res
}
