package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

type versionedRow struct {
	ID         string
	Value      string
	RowVersion int64
}

func (r *versionedRow) GetID() string         { return r.ID }
func (r *versionedRow) GetRowVersion() int64  { return r.RowVersion }
func (r *versionedRow) SetRowVersion(v int64) { r.RowVersion = v }

func TestWithRetryAppliesMutation(t *testing.T) {
	row := &versionedRow{ID: "l1", RowVersion: 3}

	err := WithRetry(context.Background(), 3, "l1",
		func(_ context.Context, _ string) (*versionedRow, error) { return row, nil },
		func(_ context.Context, r *versionedRow, expected int64) (pgconn.CommandTag, error) {
			assert.Equal(t, int64(3), expected)
			return pgconn.CommandTag("UPDATE 1"), nil
		},
		func(r *versionedRow) error {
			r.Value = "updated"
			return nil
		},
	)
	require.NoError(t, err)
	assert.Equal(t, "updated", row.Value)
}

func TestWithRetryMissingRow(t *testing.T) {
	err := WithRetry(context.Background(), 3, "gone",
		func(_ context.Context, _ string) (*versionedRow, error) { return nil, nil },
		func(_ context.Context, _ *versionedRow, _ int64) (pgconn.CommandTag, error) {
			t.Fatal("update must not run for a missing row")
			return nil, nil
		},
		func(_ *versionedRow) error { return nil },
	)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestWithRetryRecoversFromOneLostRace(t *testing.T) {
	attempts := 0

	err := WithRetry(context.Background(), 3, "l1",
		func(_ context.Context, _ string) (*versionedRow, error) {
			return &versionedRow{ID: "l1", RowVersion: int64(attempts)}, nil
		},
		func(_ context.Context, _ *versionedRow, _ int64) (pgconn.CommandTag, error) {
			attempts++
			if attempts == 1 {
				return pgconn.CommandTag("UPDATE 0"), nil
			}
			return pgconn.CommandTag("UPDATE 1"), nil
		},
		func(_ *versionedRow) error { return nil },
	)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestWithRetryExhaustedSurfacesConflict(t *testing.T) {
	err := WithRetry(context.Background(), 3, "l1",
		func(_ context.Context, _ string) (*versionedRow, error) {
			return &versionedRow{ID: "l1", RowVersion: 1}, nil
		},
		func(_ context.Context, _ *versionedRow, _ int64) (pgconn.CommandTag, error) {
			return pgconn.CommandTag("UPDATE 0"), nil
		},
		func(_ *versionedRow) error { return nil },
	)
	assert.ErrorIs(t, err, utils.ErrRowVersionConflict)
}

func TestWithRetryMutateErrorStopsLoop(t *testing.T) {
	sentinel := errors.New("lease is not editable")
	calls := 0

	err := WithRetry(context.Background(), 3, "l1",
		func(_ context.Context, _ string) (*versionedRow, error) {
			calls++
			return &versionedRow{ID: "l1", RowVersion: 1}, nil
		},
		func(_ context.Context, _ *versionedRow, _ int64) (pgconn.CommandTag, error) {
			t.Fatal("update must not run when mutate rejects")
			return nil, nil
		},
		func(_ *versionedRow) error { return sentinel },
	)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}
