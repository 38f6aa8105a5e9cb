package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgconn"

	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

// EntityWithVersion is implemented by every dashboard row that carries a
// row_version column (landlords, properties, units, tenants, leases).
// comparable so the retry loop can detect a missing row via the zero
// value.
type EntityWithVersion interface {
	comparable
	GetID() string
	GetRowVersion() int64
	SetRowVersion(int64)
}

// UpdateIfVersionFunc writes an entity back with a
// `WHERE id=$n AND row_version=$m` guard; zero rows affected means a
// concurrent writer got there first.
type UpdateIfVersionFunc[T EntityWithVersion] func(
	ctx context.Context,
	entity T,
	expectedVersion int64,
) (pgconn.CommandTag, error)

type GetByIDFunc[T EntityWithVersion] func(
	ctx context.Context,
	id string,
) (T, error)

// WithRetry runs the read-mutate-update loop backing every dashboard
// edit (lease terms, unit vacancy, landlord branding). A row that
// disappears mid-loop surfaces as utils.ErrNotFound; losing the version
// race maxRetries times surfaces as utils.ErrRowVersionConflict, which
// the controllers map to 409.
func WithRetry[T EntityWithVersion](
	ctx context.Context,
	maxRetries int,
	id string,
	getByID GetByIDFunc[T],
	updateIfVersion UpdateIfVersionFunc[T],
	mutate func(T) error,
) error {
	for attempt := 0; attempt < maxRetries; attempt++ {
		current, err := getByID(ctx, id)
		if err != nil {
			return err
		}

		var zero T
		if current == zero {
			return utils.ErrNotFound
		}

		oldVersion := current.GetRowVersion()

		if err := mutate(current); err != nil {
			return err
		}

		tag, err := updateIfVersion(ctx, current, oldVersion)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 1 {
			return nil
		}
		// Lost the race; reload and try again.
	}
	return fmt.Errorf("updating %s: %w", id, utils.ErrRowVersionConflict)
}
