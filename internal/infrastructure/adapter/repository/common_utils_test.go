package repository

import (
	"errors"
	"fmt"
	"testing"

	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorClassifier_UniqueViolation(t *testing.T) {
	c := NewErrorClassifier()

	tests := []struct {
		msg  string
		want error
	}{
		{`ERROR: duplicate key value violates unique constraint "idx_scans_user_code" (SQLSTATE 23505)`, errs.ErrDuplicateScan},
		{"UNIQUE constraint failed: scans.user_id, scans.code_id", errs.ErrDuplicateScan},
		{`ERROR: duplicate key value violates unique constraint "idx_codes_token" (SQLSTATE 23505)`, errs.ErrDuplicateCodeToken},
		{"UNIQUE constraint failed: codes.token", errs.ErrDuplicateCodeToken},
		{`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`, errs.ErrDuplicateUser},
		{"UNIQUE constraint failed: users.username", errs.ErrDuplicateUser},
		{"UNIQUE constraint failed: brands.name", nil},
		{"syntax error at or near", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.UniqueViolation(errors.New(tt.msg)), tt.msg)
	}
}

func TestErrorClassifier_MapError(t *testing.T) {
	c := NewErrorClassifier()

	assert.NoError(t, c.MapError(nil, errs.ErrUserNotFound))
	assert.Equal(t, errs.ErrUserNotFound, c.MapError(gorm.ErrRecordNotFound, errs.ErrUserNotFound))
	assert.Equal(t, errs.ErrBrandNotFound, c.MapError(fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), errs.ErrBrandNotFound))
	assert.ErrorIs(t, c.MapError(errors.New("could not serialize access due to concurrent update"), nil), errs.ErrConcurrentUpdate)
	assert.ErrorIs(t, c.MapError(errors.New("dial tcp: connection refused"), nil), errs.ErrDatabaseConnection)
	assert.ErrorIs(t, c.MapError(errors.New("UNIQUE constraint failed: brands.name"), nil), errs.ErrInternalServer)
}

func TestErrorClassifier_Classify(t *testing.T) {
	c := NewErrorClassifier()

	assert.Equal(t, DuplicateKeyError, c.Classify(errors.New("duplicate key value")))
	assert.Equal(t, LockError, c.Classify(errors.New("deadlock detected")))
	assert.Equal(t, LockError, c.Classify(errors.New("database is locked (5) (SQLITE_BUSY)")))
	assert.Equal(t, TransientError, c.Classify(errors.New("unexpected EOF")))
	assert.Equal(t, ConstraintError, c.Classify(errors.New("FOREIGN KEY constraint failed")))
	assert.Equal(t, ErrorType(""), c.Classify(nil))
}
