package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/qr-rewards/mocks/port/core"
)

func TestNewUser(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewFixedTimeProvider(fixedTime)

	t.Run("Valid user creation", func(t *testing.T) {
		user, err := NewUser("  alice ", "alice@example.com", mockTime)

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, int64(0), user.TotalPoints())
		assert.Equal(t, fixedTime, user.CreatedAt)
	})

	t.Run("Invalid user data", func(t *testing.T) {
		testCases := []struct {
			name     string
			username string
			email    string
		}{
			{"empty username", "", "bob@example.com"},
			{"blank username", "   ", "bob@example.com"},
			{"empty email", "bob", ""},
			{"malformed email", "bob", "not-an-email"},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				user, err := NewUser(tc.username, tc.email, mockTime)
				assert.ErrorIs(t, err, errs.ErrInvalidUserData)
				assert.Nil(t, user)
			})
		}
	})
}

func TestUserPoints(t *testing.T) {
	mockTime := coremocks.NewFixedTimeProvider(time.Now())
	user, err := NewUser("carol", "carol@example.com", mockTime)
	require.NoError(t, err)

	t.Run("SetTotalPoints rejects negative", func(t *testing.T) {
		assert.ErrorIs(t, user.SetTotalPoints(-5), errs.ErrNegativePoints)
		require.NoError(t, user.SetTotalPoints(40))
		assert.Equal(t, int64(40), user.TotalPoints())
	})
}
