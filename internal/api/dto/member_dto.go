package dto

import (
	"time"

	"github.com/studiosadmin/admin-console/internal/domain"
)

// AccessRequest is a partial access object; omitted flags are left unchanged.
type AccessRequest struct {
	Dashboard         *bool `json:"dashboard"`
	PosterEditor      *bool `json:"posterEditor"`
	CertificateEditor *bool `json:"certificateEditor"`
	VisitingCard      *bool `json:"visitingCard"`
	IDCard            *bool `json:"idCard"`
	BgRemover         *bool `json:"bgRemover"`
	ImageEnhancer     *bool `json:"imageEnhancer"`
	Assets            *bool `json:"assets"`
	Settings          *bool `json:"settings"`
	BugReport         *bool `json:"bugReport"`
	Developer         *bool `json:"developer"`
}

// Patch converts the request into a domain patch.
func (r *AccessRequest) Patch() domain.AccessPatch {
	if r == nil {
		return nil
	}
	return domain.AccessPatch{
		domain.AccessDashboard:         r.Dashboard,
		domain.AccessPosterEditor:      r.PosterEditor,
		domain.AccessCertificateEditor: r.CertificateEditor,
		domain.AccessVisitingCard:      r.VisitingCard,
		domain.AccessIDCard:            r.IDCard,
		domain.AccessBgRemover:         r.BgRemover,
		domain.AccessImageEnhancer:     r.ImageEnhancer,
		domain.AccessAssets:            r.Assets,
		domain.AccessSettings:          r.Settings,
		domain.AccessBugReport:         r.BugReport,
		domain.AccessDeveloper:         r.Developer,
	}
}

// CreateMemberRequest payload.
type CreateMemberRequest struct {
	Username string         `json:"username"`
	Password string         `json:"password"`
	Access   *AccessRequest `json:"access"`
}

// UpdateMemberRequest payload.
type UpdateMemberRequest struct {
	Username *string        `json:"username"`
	Password *string        `json:"password"`
	Access   *AccessRequest `json:"access"`
}

// UpdateAccessRequest toggles a single flag.
type UpdateAccessRequest struct {
	Field string `json:"field"`
	Value *bool  `json:"value"`
}

// MemberResponse mirrors the stored member.
type MemberResponse struct {
	ID        string             `json:"_id"`
	Username  string             `json:"username"`
	Password  string             `json:"password"`
	Access    domain.AccessFlags `json:"access"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// UpdateAccessResponse is returned after a flag toggle.
type UpdateAccessResponse struct {
	Success bool           `json:"success"`
	User    MemberResponse `json:"user"`
	Message string         `json:"message"`
}

// NewMemberResponse maps a member.
func NewMemberResponse(m *domain.Member) MemberResponse {
	return MemberResponse{
		ID:        m.ID,
		Username:  m.Username,
		Password:  m.Password,
		Access:    m.Access,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// NewMemberList maps members, never returning nil.
func NewMemberList(members []domain.Member) []MemberResponse {
	out := make([]MemberResponse, 0, len(members))
	for i := range members {
		out = append(out, NewMemberResponse(&members[i]))
	}
	return out
}
