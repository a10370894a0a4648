package service

import (
	"errors"

	"github.com/studiosadmin/admin-console/internal/repository"
	apperrors "github.com/studiosadmin/admin-console/pkg/util"
)

// storeError translates repository sentinels into API errors for resource.
func storeError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(resource, nil)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.NewConflict(resource+" already exists.", nil)
	}
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return apperrors.NewInternalError(err)
}
