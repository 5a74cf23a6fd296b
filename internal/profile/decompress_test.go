package profile

import (
	"reflect"
	"testing"

	"github.com/talentops/shortlister/internal/airtable"
)

func fullProfile() *Profile {
	return &Profile{
		Personal: &PersonalSummary{Name: "Jane", Location: "US", Email: "jane@example.com", LinkedIn: "linkedin.com/in/jane"},
		Experience: []ExperienceSummary{
			{Company: "Google", Title: "Engineer", Start: "2020-01-01", End: "2021-01-01", Technologies: []string{"Python", "Go"}},
			{Company: "Stripe", Title: "Senior Engineer", Start: "2021-02-01", End: "2023-02-01", Technologies: []string{"Go"}},
		},
		Salary: &SalarySummary{Rate: 90, MinRate: 80, Currency: "USD", Availability: 25},
	}
}

func TestDecompressRebuildsAllTables(t *testing.T) {
	refs := Refs{
		Personal:   []string{"recPersonal1"},
		Experience: []string{"recExp1", "recExp2"},
		Salary:     []string{"recSalary1"},
	}

	res := Decompress("recApplicant1", "A-001", fullProfile(), refs)

	if res.PersonalOutcome != Updated || res.Personal == nil {
		t.Fatalf("expected personal update, got outcome %v", res.PersonalOutcome)
	}
	if res.Personal.ID != "recPersonal1" {
		t.Fatalf("unexpected personal record id: %s", res.Personal.ID)
	}
	if got := res.Personal.Fields[FieldApplicantLink]; !reflect.DeepEqual(got, []string{"recApplicant1"}) {
		t.Fatalf("back-reference not reattached: %v", got)
	}
	if res.Personal.Fields[FieldFullName] != "Jane" {
		t.Fatalf("unexpected full name: %v", res.Personal.Fields[FieldFullName])
	}

	if len(res.Experience) != 2 {
		t.Fatalf("expected 2 experience records, got %d", len(res.Experience))
	}
	if res.Experience[0].Fields[FieldTechnologies] != "Python,Go" {
		t.Fatalf("technologies not re-joined: %v", res.Experience[0].Fields[FieldTechnologies])
	}
	if res.Drifted() {
		t.Fatalf("expected no drift for equal lengths")
	}

	if res.SalaryOutcome != Updated || res.Salary == nil {
		t.Fatalf("expected salary update, got outcome %v", res.SalaryOutcome)
	}
	if res.Salary.Fields[FieldAvailability] != "25" {
		t.Fatalf("availability must be re-stringified, got %v", res.Salary.Fields[FieldAvailability])
	}
}

// Compressing the records produced by Decompress reproduces the original
// profile exactly when the reference-id counts match the section counts.
func TestDecompressCompressRoundTrip(t *testing.T) {
	p := fullProfile()
	refs := Refs{
		Personal:   []string{"recPersonal1"},
		Experience: []string{"recExp1", "recExp2"},
		Salary:     []string{"recSalary1"},
	}

	res := Decompress("recApplicant1", "A-001", p, refs)

	recompressed := Compress(
		applicantRecord("A-001"),
		[]airtable.Record{*res.Personal},
		res.Experience,
		[]airtable.Record{*res.Salary},
	)

	if !reflect.DeepEqual(p.Personal, recompressed.Personal) {
		t.Fatalf("personal mismatch:\nwant %+v\ngot  %+v", p.Personal, recompressed.Personal)
	}
	if !reflect.DeepEqual(p.Experience, recompressed.Experience) {
		t.Fatalf("experience mismatch:\nwant %+v\ngot  %+v", p.Experience, recompressed.Experience)
	}
	if !reflect.DeepEqual(p.Salary, recompressed.Salary) {
		t.Fatalf("salary mismatch:\nwant %+v\ngot  %+v", p.Salary, recompressed.Salary)
	}
}

func TestDecompressMoreEntriesThanRefs(t *testing.T) {
	refs := Refs{
		Personal:   []string{"recPersonal1"},
		Experience: []string{"recExp1"},
		Salary:     []string{"recSalary1"},
	}

	res := Decompress("recApplicant1", "A-001", fullProfile(), refs)

	if len(res.Experience) != 1 {
		t.Fatalf("expected only the overlapping prefix written, got %d records", len(res.Experience))
	}
	if !res.Drifted() {
		t.Fatalf("expected drift to be reported")
	}

	outcomes := res.ExperienceOutcomes
	if len(outcomes) != 2 {
		t.Fatalf("expected an outcome per zip index, got %d", len(outcomes))
	}
	if outcomes[0].Outcome != Updated {
		t.Fatalf("index 0 should be updated, got %v", outcomes[0].Outcome)
	}
	if outcomes[1].Outcome != SkippedNoReference {
		t.Fatalf("index 1 should be skipped-no-reference, got %v", outcomes[1].Outcome)
	}
}

func TestDecompressMoreRefsThanEntries(t *testing.T) {
	p := fullProfile()
	p.Experience = p.Experience[:1]

	refs := Refs{
		Experience: []string{"recExp1", "recExp2", "recExp3"},
	}

	res := Decompress("recApplicant1", "A-001", p, refs)

	if len(res.Experience) != 1 {
		t.Fatalf("expected 1 record written, got %d", len(res.Experience))
	}

	outcomes := res.ExperienceOutcomes
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	for _, o := range outcomes[1:] {
		if o.Outcome != SkippedNoData {
			t.Fatalf("index %d should be skipped-no-data, got %v", o.Index, o.Outcome)
		}
	}
}

func TestDecompressSkipsSectionsWithoutRefsOrData(t *testing.T) {
	p := fullProfile()

	res := Decompress("recApplicant1", "A-001", p, Refs{})
	if res.PersonalOutcome != SkippedNoReference {
		t.Fatalf("personal: expected skipped-no-reference, got %v", res.PersonalOutcome)
	}
	if res.SalaryOutcome != SkippedNoReference {
		t.Fatalf("salary: expected skipped-no-reference, got %v", res.SalaryOutcome)
	}

	empty := &Profile{}
	refs := Refs{Personal: []string{"recPersonal1"}, Salary: []string{"recSalary1"}}

	res = Decompress("recApplicant1", "A-001", empty, refs)
	if res.PersonalOutcome != SkippedNoData {
		t.Fatalf("personal: expected skipped-no-data, got %v", res.PersonalOutcome)
	}
	if res.SalaryOutcome != SkippedNoData {
		t.Fatalf("salary: expected skipped-no-data, got %v", res.SalaryOutcome)
	}
	if res.Personal != nil || res.Salary != nil {
		t.Fatalf("expected no records produced for skipped sections")
	}
}
