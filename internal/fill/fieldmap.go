// Package fill implements the automated form-filling engine: a declarative
// field map binding extracted data paths to target-form widgets, a per-kind
// widget filler, and an orchestrator that drives a headless browser through
// the whole map with per-field error isolation and streamed progress.
package fill

// WidgetKind tags how a mapped widget is interacted with.
type WidgetKind string

const (
	WidgetText     WidgetKind = "text"
	WidgetSelect   WidgetKind = "select"
	WidgetCheckbox WidgetKind = "checkbox"
	WidgetDate     WidgetKind = "date"
)

// Locator addresses one widget on the target form. Nth disambiguates
// selectors that match multiple elements.
type Locator struct {
	Selector string
	Nth      int
}

// FieldEntry binds a dotted data path to a target widget. The map is
// authored once and never mutated at runtime.
type FieldEntry struct {
	Path    string
	Locator Locator
	Kind    WidgetKind
}

// GroupOption is one mutually-exclusive option of a checkbox group.
type GroupOption struct {
	Value   string
	Locator Locator
}

// CheckboxGroup binds an enumeration-valued path to a radio-like set of
// checkboxes. At most one option may end up checked.
type CheckboxGroup struct {
	Path    string
	Options []GroupOption
}

func sel(s string) Locator { return Locator{Selector: s} }

// FieldMap drives the simple (non-group) fills, in declaration order.
var FieldMap = []FieldEntry{
	// Part 1: Attorney / Representative
	{Path: "attorney.online_account", Locator: sel("#online-account"), Kind: WidgetText},
	{Path: "attorney.family_name", Locator: sel("#family-name"), Kind: WidgetText},
	{Path: "attorney.given_name", Locator: sel("#given-name"), Kind: WidgetText},
	{Path: "attorney.middle_name", Locator: sel("#middle-name"), Kind: WidgetText},
	{Path: "attorney.street_number", Locator: sel("#street-number"), Kind: WidgetText},
	{Path: "attorney.apt_number", Locator: sel("#apt-number"), Kind: WidgetText},
	{Path: "attorney.city", Locator: sel("#city"), Kind: WidgetText},
	{Path: "attorney.state", Locator: sel("#state"), Kind: WidgetSelect},
	{Path: "attorney.zip_code", Locator: sel("#zip"), Kind: WidgetText},
	{Path: "attorney.country", Locator: sel("#country"), Kind: WidgetText},
	{Path: "attorney.daytime_phone", Locator: sel("#daytime-phone"), Kind: WidgetText},
	{Path: "attorney.mobile_phone", Locator: sel("#mobile-phone"), Kind: WidgetText},
	{Path: "attorney.email", Locator: sel("#email"), Kind: WidgetText},

	// Part 2: Eligibility
	{Path: "eligibility.is_attorney", Locator: sel("#attorney-eligible"), Kind: WidgetCheckbox},
	{Path: "eligibility.licensing_authority", Locator: sel("#licensing-authority"), Kind: WidgetText},
	{Path: "eligibility.bar_number", Locator: sel("#bar-number"), Kind: WidgetText},
	{Path: "eligibility.law_firm", Locator: sel("#law-firm"), Kind: WidgetText},
	{Path: "eligibility.is_accredited_rep", Locator: sel("#accredited-rep"), Kind: WidgetCheckbox},
	{Path: "eligibility.recognized_org", Locator: sel("#recognized-org"), Kind: WidgetText},
	{Path: "eligibility.accreditation_date", Locator: sel("#accreditation-date"), Kind: WidgetDate},
	{Path: "eligibility.is_associated", Locator: sel("#associated-with"), Kind: WidgetCheckbox},
	{Path: "eligibility.associated_with_name", Locator: sel("#associated-with-name"), Kind: WidgetText},
	{Path: "eligibility.is_law_student", Locator: sel("#law-student"), Kind: WidgetCheckbox},
	{Path: "eligibility.student_name", Locator: sel("#student-name"), Kind: WidgetText},

	// Part 3: Passport / Beneficiary
	// The target form reuses id="passport-given-names" for both the given
	// and middle name inputs; Nth picks the right one.
	{Path: "passport.surname", Locator: sel("#passport-surname"), Kind: WidgetText},
	{Path: "passport.given_names", Locator: Locator{Selector: "#passport-given-names", Nth: 0}, Kind: WidgetText},
	{Path: "passport.middle_names", Locator: Locator{Selector: "#passport-given-names", Nth: 1}, Kind: WidgetText},
	{Path: "passport.passport_number", Locator: sel("#passport-number"), Kind: WidgetText},
	{Path: "passport.country_of_issue", Locator: sel("#passport-country"), Kind: WidgetText},
	{Path: "passport.nationality", Locator: sel("#passport-nationality"), Kind: WidgetText},
	{Path: "passport.date_of_birth", Locator: sel("#passport-dob"), Kind: WidgetDate},
	{Path: "passport.place_of_birth", Locator: sel("#passport-pob"), Kind: WidgetText},
	{Path: "passport.sex", Locator: sel("#passport-sex"), Kind: WidgetSelect},
	{Path: "passport.issue_date", Locator: sel("#passport-issue-date"), Kind: WidgetDate},
	{Path: "passport.expiry_date", Locator: sel("#passport-expiry-date"), Kind: WidgetDate},

	// Part 4 (consent/signature) and Part 5 (attorney signature) are
	// intentionally unmapped: the form is populated, never signed.
}

// CheckboxGroups drives the mutually-exclusive option sets, after FieldMap.
var CheckboxGroups = []CheckboxGroup{
	{
		Path: "attorney.apt_type",
		Options: []GroupOption{
			{Value: "apt", Locator: sel("#apt")},
			{Value: "ste", Locator: sel("#ste")},
			{Value: "flr", Locator: sel("#flr")},
		},
	},
	{
		Path: "eligibility.subject_to_orders",
		Options: []GroupOption{
			{Value: "not", Locator: sel("#not-subject")},
			{Value: "am", Locator: sel("#am-subject")},
		},
	},
}

// TotalFields is the fixed progress denominator for one fill run.
func TotalFields() int {
	return len(FieldMap) + len(CheckboxGroups)
}
