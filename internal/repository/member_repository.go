package repository

import (
	"context"

	"github.com/studiosadmin/admin-console/internal/domain"
)

// MemberFilter narrows member listings.
type MemberFilter struct {
	// Search is a case-insensitive username substring.
	Search string
}

// MemberRepository defines persistence access for members.
type MemberRepository interface {
	// Create assigns ID and timestamps. Returns ErrDuplicate on username clash.
	Create(ctx context.Context, member *domain.Member) error
	// Update replaces username, password and access and refreshes UpdatedAt.
	Update(ctx context.Context, member *domain.Member) error
	// SetAccess writes a single flag and returns the updated member.
	SetAccess(ctx context.Context, id string, field domain.AccessField, value bool) (*domain.Member, error)
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	GetByUsername(ctx context.Context, username string) (*domain.Member, error)
	List(ctx context.Context, filter MemberFilter) ([]domain.Member, error)
	Delete(ctx context.Context, id string) error
}
