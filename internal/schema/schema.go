// Package schema defines the structured data record extracted from legal
// documents and the dotted-path resolution used to drive form filling.
package schema

// AttorneyInfo holds attorney or representative contact details (G-28 Part 1).
type AttorneyInfo struct {
	OnlineAccount *string `json:"online_account,omitempty"`
	FamilyName    string  `json:"family_name"`
	GivenName     string  `json:"given_name"`
	MiddleName    *string `json:"middle_name,omitempty"`
	StreetNumber  string  `json:"street_number"`
	AptType       *string `json:"apt_type,omitempty"` // apt, ste, flr
	AptNumber     *string `json:"apt_number,omitempty"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	ZipCode       string  `json:"zip_code"`
	Country       string  `json:"country"`
	DaytimePhone  string  `json:"daytime_phone"`
	MobilePhone   *string `json:"mobile_phone,omitempty"`
	Email         *string `json:"email,omitempty"`
}

// EligibilityInfo holds attorney eligibility and credentials (G-28 Part 2).
type EligibilityInfo struct {
	IsAttorney         bool    `json:"is_attorney"`
	LicensingAuthority *string `json:"licensing_authority,omitempty"`
	BarNumber          *string `json:"bar_number,omitempty"`
	SubjectToOrders    *string `json:"subject_to_orders,omitempty"` // not, am
	LawFirm            *string `json:"law_firm,omitempty"`
	IsAccreditedRep    bool    `json:"is_accredited_rep"`
	RecognizedOrg      *string `json:"recognized_org,omitempty"`
	AccreditationDate  *string `json:"accreditation_date,omitempty"`
	IsAssociated       bool    `json:"is_associated"`
	AssociatedWithName *string `json:"associated_with_name,omitempty"`
	IsLawStudent       bool    `json:"is_law_student"`
	StudentName        *string `json:"student_name,omitempty"`
}

// PassportInfo holds passport bio-data page fields (Part 3, beneficiary).
type PassportInfo struct {
	Surname        string  `json:"surname"`
	GivenNames     string  `json:"given_names"`
	MiddleNames    *string `json:"middle_names,omitempty"`
	PassportNumber string  `json:"passport_number"`
	CountryOfIssue string  `json:"country_of_issue"`
	Nationality    string  `json:"nationality"`
	DateOfBirth    string  `json:"date_of_birth"`
	PlaceOfBirth   string  `json:"place_of_birth"`
	Sex            *string `json:"sex,omitempty"` // M, F, X
	IssueDate      string  `json:"issue_date"`
	ExpiryDate     string  `json:"expiry_date"`
}

// FormData is the combined extracted data from all uploaded documents.
// Every field has a defined default, so a FormData is always fully
// constructible even when extraction was partial.
type FormData struct {
	Attorney    AttorneyInfo    `json:"attorney"`
	Eligibility EligibilityInfo `json:"eligibility"`
	Passport    PassportInfo    `json:"passport"`
}

// NewFormData returns a FormData with defaults applied.
func NewFormData() *FormData {
	return &FormData{
		Attorney: AttorneyInfo{Country: "United States"},
	}
}

// String returns a pointer to s, for optional-field literals.
func String(s string) *string {
	return &s
}
