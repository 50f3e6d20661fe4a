// Package pgerr translates gorm and driver failures into the errs taxonomy so that
// no adapter leaks database errors to the application layer.
package pgerr

import (
	"errors"

	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// Wrap maps err for operation op. Record-not-found and a dangling foreign key become
// ObjectNotFoundError for resource/id, a unique violation becomes ConflictError and
// everything else becomes StoreUnavailableError. Errors already in the taxonomy
// pass through.
func Wrap(op, resource string, id any, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, gorm.ErrForeignKeyViolated):
		return errs.NewObjectNotFoundErrorWithCause(resource, id, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.NewConflictError(resource, "already exists")
	case isTaxonomy(err):
		return err
	default:
		return errs.NewStoreUnavailableError(op, err)
	}
}

// Store maps err for operations that have no natural not-found outcome.
func Store(op string, err error) error {
	if err == nil || isTaxonomy(err) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictError(op, "already exists")
	}
	return errs.NewStoreUnavailableError(op, err)
}

func isTaxonomy(err error) bool {
	for _, target := range []error{
		errs.ErrObjectNotFound,
		errs.ErrValueIsInvalid,
		errs.ErrValueIsRequired,
		errs.ErrValueIsOutOfRange,
		errs.ErrConflict,
		errs.ErrNotPending,
		errs.ErrStoreUnavailable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
