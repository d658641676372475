package database

import (
	"context"
	"errors"
	"testing"

	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	"github.com/stretchr/testify/assert"
)

func TestErrorMapper_MapError(t *testing.T) {
	mapper := NewErrorMapper()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"postgres duplicate scan", errors.New(`ERROR: duplicate key value violates unique constraint "idx_scans_user_code" (SQLSTATE 23505)`), errs.ErrDuplicateScan},
		{"sqlite duplicate scan", errors.New("constraint failed: UNIQUE constraint failed: scans.user_id, scans.code_id (2067)"), errs.ErrDuplicateScan},
		{"serialization failure", errors.New("ERROR: could not serialize access due to concurrent update (SQLSTATE 40001)"), errs.ErrConcurrentUpdate},
		{"sqlite busy", errors.New("database is locked (5) (SQLITE_BUSY)"), errs.ErrConcurrentUpdate},
		{"connection lost", errors.New("write tcp: broken pipe"), errs.ErrDatabaseConnection},
		{"deadline", context.DeadlineExceeded, errs.ErrDatabaseConnection},
		{"unknown", errors.New("syntax error"), errs.ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapper.MapError(tt.err, "commit"), tt.want)
		})
	}

	assert.NoError(t, mapper.MapError(nil, "commit"))
}
