// Package profile implements the compressed applicant profile: the flattened
// single-document projection of an applicant's personal, experience and
// salary records, and the transforms between it and the normalized tables.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Profile is the canonical join result stored on the applicant record. It is
// a pure projection and carries no record identifiers of its own;
// reconstruction is driven by externally supplied reference ids.
type Profile struct {
	Personal   *PersonalSummary    `json:"personal"`
	Experience []ExperienceSummary `json:"experience"`
	Salary     *SalarySummary      `json:"salary"`
}

type PersonalSummary struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Email    string `json:"email"`
	LinkedIn string `json:"linkedin"`
}

type ExperienceSummary struct {
	Company      string   `json:"company"`
	Title        string   `json:"title"`
	Start        string   `json:"start"`
	End          string   `json:"end"`
	Technologies []string `json:"technologies"`
}

type SalarySummary struct {
	Rate         int    `json:"rate"`
	MinRate      int    `json:"min_rate"`
	Currency     string `json:"currency"`
	Availability int    `json:"availability"`
}

// HasPersonal reports whether the personal section is present and non-empty.
// Legacy blobs store an empty object rather than null for a missing section.
func (p *Profile) HasPersonal() bool {
	return p != nil && p.Personal != nil && *p.Personal != (PersonalSummary{})
}

// HasSalary reports whether the salary section is present and non-empty.
func (p *Profile) HasSalary() bool {
	return p != nil && p.Salary != nil && *p.Salary != (SalarySummary{})
}

// HasExperience reports whether at least one experience entry is present.
func (p *Profile) HasExperience() bool {
	return p != nil && len(p.Experience) > 0
}

// Marshal serializes the profile into the text blob stored in the applicant's
// compressed profile field.
func (p *Profile) Marshal() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}

	return string(data), nil
}

// Parse deserializes a stored profile blob. It fails closed: any malformed
// blob yields an error and the caller must skip the affected applicant.
func Parse(blob string) (*Profile, error) {
	blob = strings.TrimSpace(blob)
	if blob == "" {
		return nil, errors.New("empty compressed profile")
	}

	var p Profile
	if err := json.Unmarshal([]byte(blob), &p); err != nil {
		return nil, fmt.Errorf("parse compressed profile: %w", err)
	}

	return &p, nil
}

func splitTechnologies(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, TechnologySeparator)
}

func joinTechnologies(techs []string) string {
	return strings.Join(techs, TechnologySeparator)
}
