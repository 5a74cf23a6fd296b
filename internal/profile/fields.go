package profile

// Field names of the record store schema. The Applicant link field is the
// back-reference marker: a child record with no Applicant link is treated as
// orphaned and never joined, even when its Applicant ID matches.
const (
	FieldApplicantID       = "Applicant ID"
	FieldApplicantLink     = "Applicant"
	FieldCompressedProfile = "Compressed JSON"
	FieldShortlistStatus   = "Shortlist Status"

	FieldFullName = "Full Name"
	FieldLocation = "Location"
	FieldEmail    = "Email"
	FieldLinkedIn = "LinkedIn"

	FieldCompany      = "Company"
	FieldTitle        = "Title"
	FieldStart        = "Start"
	FieldEnd          = "End"
	FieldTechnologies = "Technologies"

	FieldPreferredRate = "Preferred Rate"
	FieldMinimumRate   = "Minimum Rate"
	FieldCurrency      = "Currency"
	FieldAvailability  = "Availability (hrs/wk)"

	FieldPersonalDetailsLink   = "Personal Details"
	FieldWorkExperienceLink    = "Work Experience"
	FieldSalaryPreferencesLink = "Salary Preferences"

	FieldScoreReason = "Score Reason"

	FieldLLMSummary   = "LLM Summary"
	FieldLLMScore     = "LLM Score"
	FieldLLMIssues    = "LLM Issues"
	FieldLLMFollowUps = "LLM Follow-Ups"
)

// TechnologySeparator joins the technologies list into the stored string
// representation. A technology name containing the separator does not survive
// a compress/decompress round trip; the separator is not escaped.
const TechnologySeparator = ","
