package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/studiosadmin/admin-console/internal/domain"
	"github.com/studiosadmin/admin-console/internal/events"
	"github.com/studiosadmin/admin-console/internal/repository"
	apperrors "github.com/studiosadmin/admin-console/pkg/util"
)

const (
	memberResource        = "Member"
	msgUsernameTaken      = "Username already exists."
	msgInvalidAccessField = "Invalid access field."
)

// MemberService manages member accounts and their access flags.
type MemberService struct {
	members repository.MemberRepository
	events  publisher
	logger  *zap.Logger
}

// MemberDependencies encapsulates member service requirements.
type MemberDependencies struct {
	MemberRepo repository.MemberRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewMemberService constructs the service.
func NewMemberService(deps MemberDependencies) *MemberService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemberService{
		members: deps.MemberRepo,
		events:  newPublisher(deps.Dispatcher, logger),
		logger:  logger,
	}
}

// CreateMemberInput describes a new member. Access entries left nil take defaults.
type CreateMemberInput struct {
	Username string
	Password string
	Access   domain.AccessPatch
}

// UpdateMemberInput is a bulk edit. Nil fields and an empty password keep stored values.
type UpdateMemberInput struct {
	Username *string
	Password *string
	Access   domain.AccessPatch
}

// List returns members oldest first.
func (s *MemberService) List(ctx context.Context, search string) ([]domain.Member, error) {
	members, err := s.members.List(ctx, repository.MemberFilter{Search: search})
	if err != nil {
		return nil, storeError(err, memberResource)
	}
	return members, nil
}

// Get loads one member.
func (s *MemberService) Get(ctx context.Context, id string) (*domain.Member, error) {
	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, memberResource)
	}
	return member, nil
}

// Create adds a member after checking the username is free.
func (s *MemberService) Create(ctx context.Context, input CreateMemberInput) (*domain.Member, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("Username and password are required.", nil)
	}

	if err := s.ensureUsernameFree(ctx, username, ""); err != nil {
		return nil, err
	}

	member := &domain.Member{
		Username: username,
		Password: input.Password,
		Access:   input.Access.Apply(domain.DefaultAccess()),
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, memberWriteError(err)
	}

	s.events.publish(ctx, events.EventMemberCreated, member.ID, events.MemberPayload{Username: member.Username})
	return member, nil
}

// Update applies a bulk edit to an existing member.
func (s *MemberService) Update(ctx context.Context, id string, input UpdateMemberInput) (*domain.Member, error) {
	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, memberResource)
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, apperrors.NewValidationError("Username cannot be empty.", nil)
		}
		if username != member.Username {
			if err := s.ensureUsernameFree(ctx, username, member.ID); err != nil {
				return nil, err
			}
		}
		member.Username = username
	}
	if input.Password != nil && *input.Password != "" {
		member.Password = *input.Password
	}
	member.Access = input.Access.Apply(member.Access)

	if err := s.members.Update(ctx, member); err != nil {
		return nil, memberWriteError(err)
	}

	s.events.publish(ctx, events.EventMemberUpdated, member.ID, events.MemberPayload{Username: member.Username})
	return member, nil
}

// SetAccess flips a single permission flag.
func (s *MemberService) SetAccess(ctx context.Context, id, fieldName string, value bool) (*domain.Member, error) {
	field, ok := domain.ParseAccessField(fieldName)
	if !ok {
		return nil, apperrors.NewValidationError(msgInvalidAccessField, map[string]any{"field": fieldName})
	}

	member, err := s.members.SetAccess(ctx, id, field, value)
	if err != nil {
		return nil, storeError(err, memberResource)
	}

	s.events.publish(ctx, events.EventMemberAccessChanged, member.ID, events.MemberAccessChangedPayload{
		Username: member.Username,
		Field:    field,
		Value:    value,
	})
	return member, nil
}

// Delete removes a member.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		return storeError(err, memberResource)
	}
	if err := s.members.Delete(ctx, id); err != nil {
		return storeError(err, memberResource)
	}
	s.events.publish(ctx, events.EventMemberDeleted, member.ID, events.MemberPayload{Username: member.Username})
	return nil
}

func (s *MemberService) ensureUsernameFree(ctx context.Context, username, exceptID string) error {
	existing, err := s.members.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return storeError(err, memberResource)
	case existing.ID != exceptID:
		return apperrors.NewConflict(msgUsernameTaken, nil)
	}
	return nil
}

// memberWriteError reports a unique index race the same way as the pre-check.
func memberWriteError(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperrors.NewConflict(msgUsernameTaken, nil)
	}
	return storeError(err, memberResource)
}
