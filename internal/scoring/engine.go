// Package scoring implements the deterministic eligibility engine deciding
// whether an applicant profile is shortlisted.
package scoring

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/talentops/shortlister/internal/profile"
)

const dateLayout = "2006-01-02"

// ReasonCode classifies a decision so callers never have to inspect the
// human-readable reason text.
type ReasonCode int

const (
	ReasonNone ReasonCode = iota
	// ReasonMissingData means a required profile section is absent or empty.
	ReasonMissingData
	// ReasonCriteriaNotMet means all sections are present but at least one
	// criterion failed.
	ReasonCriteriaNotMet
	// ReasonUnsupportedCurrency means the salary currency has no USD
	// multiplier in the rule set.
	ReasonUnsupportedCurrency
)

func (c ReasonCode) String() string {
	switch c {
	case ReasonNone:
		return "none"
	case ReasonMissingData:
		return "missing data"
	case ReasonCriteriaNotMet:
		return "criteria not met"
	case ReasonUnsupportedCurrency:
		return "unsupported currency"
	default:
		return "unknown"
	}
}

// Decision is the outcome of scoring one profile.
type Decision struct {
	Eligible bool
	Code     ReasonCode
	Reason   string
}

// Engine scores profiles against an immutable rule set.
type Engine struct {
	rules     Rules
	tier1     map[string]struct{}
	locations map[string]struct{}
}

func NewEngine(rules Rules) *Engine {
	e := &Engine{
		rules:     rules,
		tier1:     make(map[string]struct{}, len(rules.Tier1Companies)),
		locations: make(map[string]struct{}, len(rules.AllowedLocations)),
	}

	for _, company := range rules.Tier1Companies {
		e.tier1[strings.ToLower(company)] = struct{}{}
	}
	for _, location := range rules.AllowedLocations {
		e.locations[strings.ToLower(location)] = struct{}{}
	}

	return e
}

// Score is a pure function of the profile and the rule set. It never mutates
// either.
func (e *Engine) Score(p *profile.Profile) Decision {
	if !p.HasExperience() || !p.HasSalary() || !p.HasPersonal() {
		return Decision{Eligible: false, Code: ReasonMissingData, Reason: "missing required fields"}
	}

	fromTier1, totalYears := e.experienceSummary(p.Experience)
	meetsExperience := fromTier1 || totalYears >= e.rules.MinTenureYears

	multiplier, ok := e.rules.CurrencyRates[p.Salary.Currency]
	if !ok {
		return Decision{
			Eligible: false,
			Code:     ReasonUnsupportedCurrency,
			Reason:   fmt.Sprintf("unsupported currency %q", p.Salary.Currency),
		}
	}

	rateUSD := float64(p.Salary.Rate) * multiplier
	meetsCompensation := math.Floor(rateUSD) <= e.rules.MaxHourlyRateUSD &&
		p.Salary.Availability >= e.rules.MinAvailabilityHours

	_, meetsLocation := e.locations[strings.ToLower(p.Personal.Location)]

	if !meetsExperience || !meetsCompensation || !meetsLocation {
		return Decision{Eligible: false, Code: ReasonCriteriaNotMet, Reason: "does not meet all criteria"}
	}

	qualification := fmt.Sprintf("worked at multiple companies with total experience of %.1f years", totalYears)
	if fromTier1 {
		qualification = fmt.Sprintf("worked at a tier-1 company with total experience of %.1f years", totalYears)
	}

	reason := fmt.Sprintf(
		"%s; expects compensation of %.1f USD with availability of %d hours per week; currently in %s",
		qualification, rateUSD, p.Salary.Availability, p.Personal.Location,
	)

	return Decision{Eligible: true, Code: ReasonNone, Reason: reason}
}

// experienceSummary reports whether any entry is at a tier-1 employer and the
// tenure summed across all entries in fractional years. Overlapping intervals
// are summed, not merged. Entries with unparseable dates contribute zero.
func (e *Engine) experienceSummary(entries []profile.ExperienceSummary) (bool, float64) {
	fromTier1 := false
	totalYears := 0.0

	for _, entry := range entries {
		if _, ok := e.tier1[strings.ToLower(entry.Company)]; ok {
			fromTier1 = true
		}

		start, err := time.Parse(dateLayout, entry.Start)
		if err != nil {
			continue
		}
		end, err := time.Parse(dateLayout, entry.End)
		if err != nil {
			continue
		}

		days := end.Sub(start).Hours() / 24
		totalYears += days / 365.0
	}

	return fromTier1, totalYears
}
