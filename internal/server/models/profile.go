package models

// Profile document keys.
const (
	FieldUserID           = "userId"
	FieldEmail            = "email"
	FieldName             = "name"
	FieldAge              = "age"
	FieldGender           = "gender"
	FieldPartnerName      = "partner_name"
	FieldPartnerEmail     = "partner_email"
	FieldDate             = "date"
	FieldProfileImage     = "profileImage"
	FieldSetupCompleted   = "setupCompleted"
	FieldSetupCompletedAt = "setupCompletedAt"
	FieldIsLoggedIn       = "isLoggedIn"
	FieldLastLoginTime    = "lastLoginTime"
	FieldCreatedAt        = "createdAt"
)

// FieldKind is the JSON type a profile field must hold.
type FieldKind int

const (
	KindString FieldKind = iota
	// KindNumber holds a whole number in [0, common.MaxAge].
	KindNumber
	KindBool
)

// EditableFields lists the profile keys a client may merge, with their types.
// Everything else in the document is maintained by the server.
var EditableFields = map[string]FieldKind{
	FieldName:         KindString,
	FieldAge:          KindNumber,
	FieldGender:       KindString,
	FieldPartnerName:  KindString,
	FieldPartnerEmail: KindString,
	FieldDate:         KindString,
}

// Profile is the typed view of a user's profile document.
type Profile struct {
	UserID           string  `json:"userId"`
	Email            string  `json:"email,omitempty"`
	Name             string  `json:"name,omitempty"`
	Age              float64 `json:"age,omitempty"`
	Gender           string  `json:"gender,omitempty"`
	PartnerName      string  `json:"partner_name,omitempty"`
	PartnerEmail     string  `json:"partner_email,omitempty"`
	Date             string  `json:"date,omitempty"`
	ProfileImage     string  `json:"profileImage,omitempty"`
	SetupCompleted   bool    `json:"setupCompleted"`
	SetupCompletedAt string  `json:"setupCompletedAt,omitempty"`
	IsLoggedIn       bool    `json:"isLoggedIn"`
	LastLoginTime    string  `json:"lastLoginTime,omitempty"`
	CreatedAt        string  `json:"createdAt,omitempty"`
}

// IsSetupCompleted reports whether onboarding is finished: either the flag is
// set, or the fields the wizard collects are all present.
func (p *Profile) IsSetupCompleted() bool {
	if p.SetupCompleted {
		return true
	}
	return p.Name != "" && p.PartnerName != "" && p.Date != ""
}
