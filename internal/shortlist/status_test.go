package shortlist_test

import (
	"testing"

	"github.com/talentops/shortlister/internal/scoring"
	"github.com/talentops/shortlister/internal/shortlist"
)

func TestParseStatus_ValidValues(t *testing.T) {
	valid := []string{"Waiting", "Processing", "Rejected", "Invalid"}
	for _, s := range valid {
		got, err := shortlist.ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseStatus_InvalidValue(t *testing.T) {
	if _, err := shortlist.ParseStatus("Hired"); err == nil {
		t.Error("ParseStatus(\"Hired\") expected error, got nil")
	}
}

func TestParseStatus_EmptyString(t *testing.T) {
	if _, err := shortlist.ParseStatus(""); err == nil {
		t.Error("ParseStatus(\"\") expected error, got nil")
	}
}

func TestTriagable(t *testing.T) {
	cases := []struct {
		status shortlist.Status
		want   bool
	}{
		{shortlist.StatusWaiting, true},
		{shortlist.StatusInvalid, true},
		{shortlist.StatusProcessing, false},
		{shortlist.StatusRejected, false},
	}

	for _, c := range cases {
		if got := shortlist.Triagable(c.status); got != c.want {
			t.Errorf("Triagable(%s) = %v, want %v", c.status, got, c.want)
		}
	}
}

func TestReviewable(t *testing.T) {
	cases := []struct {
		status shortlist.Status
		want   bool
	}{
		{shortlist.StatusWaiting, false},
		{shortlist.StatusInvalid, false},
		{shortlist.StatusProcessing, true},
		{shortlist.StatusRejected, true},
	}

	for _, c := range cases {
		if got := shortlist.Reviewable(c.status); got != c.want {
			t.Errorf("Reviewable(%s) = %v, want %v", c.status, got, c.want)
		}
	}
}

func TestNext(t *testing.T) {
	cases := []struct {
		name     string
		decision scoring.Decision
		want     shortlist.Status
	}{
		{"eligible", scoring.Decision{Eligible: true}, shortlist.StatusProcessing},
		{"missing data", scoring.Decision{Code: scoring.ReasonMissingData}, shortlist.StatusInvalid},
		{"criteria not met", scoring.Decision{Code: scoring.ReasonCriteriaNotMet}, shortlist.StatusRejected},
		{"unsupported currency", scoring.Decision{Code: scoring.ReasonUnsupportedCurrency}, shortlist.StatusRejected},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := shortlist.Next(c.decision); got != c.want {
				t.Errorf("Next(%+v) = %s, want %s", c.decision, got, c.want)
			}
		})
	}
}

func TestLeadRecord(t *testing.T) {
	lead := shortlist.Lead{
		ApplicantRecordID: "recApplicant1",
		ApplicantID:       "A-001",
		ScoreReason:       "qualified",
		CompressedProfile: `{"personal":null,"experience":null,"salary":null}`,
	}

	record := lead.Record()

	if record.ID != "" {
		t.Errorf("lead records are inserts and must carry no store id, got %q", record.ID)
	}
	if record.String("Applicant ID") != "A-001" {
		t.Errorf("unexpected applicant id field: %v", record.Fields["Applicant ID"])
	}
	if got := record.StringList("Applicant"); len(got) != 1 || got[0] != "recApplicant1" {
		t.Errorf("unexpected back-reference: %v", got)
	}
	if record.String("Score Reason") != "qualified" {
		t.Errorf("unexpected score reason: %v", record.Fields["Score Reason"])
	}
}
