package schema

// accessor reads one dotted path from a FormData record. The bool reports
// presence: nil optional fields are absent, while false booleans and empty
// strings are present-but-falsy.
type accessor func(*FormData) (any, bool)

func str(s string) (any, bool) { return s, true }

func boolean(b bool) (any, bool) { return b, true }

func opt(s *string) (any, bool) {
	if s == nil {
		return nil, false
	}
	return *s, true
}

// accessors is the closed enumeration of valid dotted paths. Built once;
// no reflection at resolve time.
var accessors = map[string]accessor{
	"attorney.online_account": func(d *FormData) (any, bool) { return opt(d.Attorney.OnlineAccount) },
	"attorney.family_name":    func(d *FormData) (any, bool) { return str(d.Attorney.FamilyName) },
	"attorney.given_name":     func(d *FormData) (any, bool) { return str(d.Attorney.GivenName) },
	"attorney.middle_name":    func(d *FormData) (any, bool) { return opt(d.Attorney.MiddleName) },
	"attorney.street_number":  func(d *FormData) (any, bool) { return str(d.Attorney.StreetNumber) },
	"attorney.apt_type":       func(d *FormData) (any, bool) { return opt(d.Attorney.AptType) },
	"attorney.apt_number":     func(d *FormData) (any, bool) { return opt(d.Attorney.AptNumber) },
	"attorney.city":           func(d *FormData) (any, bool) { return str(d.Attorney.City) },
	"attorney.state":          func(d *FormData) (any, bool) { return str(d.Attorney.State) },
	"attorney.zip_code":       func(d *FormData) (any, bool) { return str(d.Attorney.ZipCode) },
	"attorney.country":        func(d *FormData) (any, bool) { return str(d.Attorney.Country) },
	"attorney.daytime_phone":  func(d *FormData) (any, bool) { return str(d.Attorney.DaytimePhone) },
	"attorney.mobile_phone":   func(d *FormData) (any, bool) { return opt(d.Attorney.MobilePhone) },
	"attorney.email":          func(d *FormData) (any, bool) { return opt(d.Attorney.Email) },

	"eligibility.is_attorney":          func(d *FormData) (any, bool) { return boolean(d.Eligibility.IsAttorney) },
	"eligibility.licensing_authority":  func(d *FormData) (any, bool) { return opt(d.Eligibility.LicensingAuthority) },
	"eligibility.bar_number":           func(d *FormData) (any, bool) { return opt(d.Eligibility.BarNumber) },
	"eligibility.subject_to_orders":    func(d *FormData) (any, bool) { return opt(d.Eligibility.SubjectToOrders) },
	"eligibility.law_firm":             func(d *FormData) (any, bool) { return opt(d.Eligibility.LawFirm) },
	"eligibility.is_accredited_rep":    func(d *FormData) (any, bool) { return boolean(d.Eligibility.IsAccreditedRep) },
	"eligibility.recognized_org":       func(d *FormData) (any, bool) { return opt(d.Eligibility.RecognizedOrg) },
	"eligibility.accreditation_date":   func(d *FormData) (any, bool) { return opt(d.Eligibility.AccreditationDate) },
	"eligibility.is_associated":        func(d *FormData) (any, bool) { return boolean(d.Eligibility.IsAssociated) },
	"eligibility.associated_with_name": func(d *FormData) (any, bool) { return opt(d.Eligibility.AssociatedWithName) },
	"eligibility.is_law_student":       func(d *FormData) (any, bool) { return boolean(d.Eligibility.IsLawStudent) },
	"eligibility.student_name":         func(d *FormData) (any, bool) { return opt(d.Eligibility.StudentName) },

	"passport.surname":          func(d *FormData) (any, bool) { return str(d.Passport.Surname) },
	"passport.given_names":      func(d *FormData) (any, bool) { return str(d.Passport.GivenNames) },
	"passport.middle_names":     func(d *FormData) (any, bool) { return opt(d.Passport.MiddleNames) },
	"passport.passport_number":  func(d *FormData) (any, bool) { return str(d.Passport.PassportNumber) },
	"passport.country_of_issue": func(d *FormData) (any, bool) { return str(d.Passport.CountryOfIssue) },
	"passport.nationality":      func(d *FormData) (any, bool) { return str(d.Passport.Nationality) },
	"passport.date_of_birth":    func(d *FormData) (any, bool) { return str(d.Passport.DateOfBirth) },
	"passport.place_of_birth":   func(d *FormData) (any, bool) { return str(d.Passport.PlaceOfBirth) },
	"passport.sex":              func(d *FormData) (any, bool) { return opt(d.Passport.Sex) },
	"passport.issue_date":       func(d *FormData) (any, bool) { return str(d.Passport.IssueDate) },
	"passport.expiry_date":      func(d *FormData) (any, bool) { return str(d.Passport.ExpiryDate) },
}

// Resolve looks up a dotted path like "attorney.family_name" against the
// record. The second result is false when the path is unknown or the field
// is absent (nil). It never panics and has no side effects.
func Resolve(d *FormData, path string) (any, bool) {
	if d == nil {
		return nil, false
	}
	get, ok := accessors[path]
	if !ok {
		return nil, false
	}
	return get(d)
}

// KnownPath reports whether the dotted path exists in the record schema.
func KnownPath(path string) bool {
	_, ok := accessors[path]
	return ok
}
