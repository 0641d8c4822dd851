package pgsql

import (
	"errors"
	"testing"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapPgError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want error
	}{
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "shipments_tracking_number_key"}, apperrors.ErrDuplicate},
		{"serialization", &pgconn.PgError{Code: pgSerializationFailure}, apperrors.ErrTxConflict},
		{"deadlock", &pgconn.PgError{Code: pgDeadlockDetected}, apperrors.ErrTxConflict},
		{"lock timeout", &pgconn.PgError{Code: pgLockNotAvailable}, apperrors.ErrTxConflict},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, mapPgError(tc.err, "op"), tc.want)
		})
	}

	err := mapPgError(&pgconn.PgError{Code: "42P01", Message: "relation does not exist"}, "failed to insert")
	var appErr *apperrors.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, 500, appErr.Code)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}

func TestRequireTx(t *testing.T) {
	base := BaseRepository{}
	_, err := base.requireTx(nil)
	assert.Error(t, err)
}
