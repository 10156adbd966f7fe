package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub/internal/access"
	apperrors "taskhub/internal/errors"
)

// Authorizer is the part of access.Resolver the services depend on.
type Authorizer interface {
	Require(ctx context.Context, userID uuid.UUID, kind access.Kind, id uuid.UUID) error
}

var _ Authorizer = (*access.Resolver)(nil)

// storeError classifies a repository failure. A missing row after a passed
// access check (concurrent delete) collapses into ErrNotFoundOrForbidden;
// anything else is an infrastructure fault.
func storeError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFoundOrForbidden
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", apperrors.ErrUpstreamUnavailable, op, err)
}
