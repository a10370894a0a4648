package domain

import "time"

// AccessField names one dashboard module a member can be granted.
type AccessField string

const (
	AccessDashboard         AccessField = "dashboard"
	AccessPosterEditor      AccessField = "posterEditor"
	AccessCertificateEditor AccessField = "certificateEditor"
	AccessVisitingCard      AccessField = "visitingCard"
	AccessIDCard            AccessField = "idCard"
	AccessBgRemover         AccessField = "bgRemover"
	AccessImageEnhancer     AccessField = "imageEnhancer"
	AccessAssets            AccessField = "assets"
	AccessSettings          AccessField = "settings"
	AccessBugReport         AccessField = "bugReport"
	AccessDeveloper         AccessField = "developer"
)

var accessFields = []AccessField{
	AccessDashboard,
	AccessPosterEditor,
	AccessCertificateEditor,
	AccessVisitingCard,
	AccessIDCard,
	AccessBgRemover,
	AccessImageEnhancer,
	AccessAssets,
	AccessSettings,
	AccessBugReport,
	AccessDeveloper,
}

// AccessFields returns every toggleable field in display order.
func AccessFields() []AccessField {
	out := make([]AccessField, len(accessFields))
	copy(out, accessFields)
	return out
}

// ParseAccessField validates a field name against the allow-list.
func ParseAccessField(name string) (AccessField, bool) {
	for _, f := range accessFields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// AccessFlags is the permission set of a member.
type AccessFlags struct {
	Dashboard         bool `json:"dashboard"`
	PosterEditor      bool `json:"posterEditor"`
	CertificateEditor bool `json:"certificateEditor"`
	VisitingCard      bool `json:"visitingCard"`
	IDCard            bool `json:"idCard"`
	BgRemover         bool `json:"bgRemover"`
	ImageEnhancer     bool `json:"imageEnhancer"`
	Assets            bool `json:"assets"`
	Settings          bool `json:"settings"`
	BugReport         bool `json:"bugReport"`
	Developer         bool `json:"developer"`
}

// DefaultAccess is applied to flags a creator did not specify.
func DefaultAccess() AccessFlags {
	return AccessFlags{
		Dashboard: true,
		Settings:  true,
		BugReport: true,
	}
}

func (a *AccessFlags) ref(field AccessField) *bool {
	switch field {
	case AccessDashboard:
		return &a.Dashboard
	case AccessPosterEditor:
		return &a.PosterEditor
	case AccessCertificateEditor:
		return &a.CertificateEditor
	case AccessVisitingCard:
		return &a.VisitingCard
	case AccessIDCard:
		return &a.IDCard
	case AccessBgRemover:
		return &a.BgRemover
	case AccessImageEnhancer:
		return &a.ImageEnhancer
	case AccessAssets:
		return &a.Assets
	case AccessSettings:
		return &a.Settings
	case AccessBugReport:
		return &a.BugReport
	case AccessDeveloper:
		return &a.Developer
	}
	return nil
}

// Get returns the flag value; unknown fields read as false.
func (a AccessFlags) Get(field AccessField) bool {
	if p := a.ref(field); p != nil {
		return *p
	}
	return false
}

// Set assigns a flag and reports whether the field exists.
func (a *AccessFlags) Set(field AccessField, value bool) bool {
	p := a.ref(field)
	if p == nil {
		return false
	}
	*p = value
	return true
}

// AccessPatch carries a partial permission set; nil entries are left alone.
type AccessPatch map[AccessField]*bool

// Apply merges the patch onto base and returns the result.
func (p AccessPatch) Apply(base AccessFlags) AccessFlags {
	for field, value := range p {
		if value != nil {
			base.Set(field, *value)
		}
	}
	return base
}

// Member is an administrator-managed user account.
type Member struct {
	ID        string
	Username  string
	Password  string
	Access    AccessFlags
	CreatedAt time.Time
	UpdatedAt time.Time
}
