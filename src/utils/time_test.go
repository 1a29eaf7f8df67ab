package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysToExpiration(t *testing.T) {
	now := time.Date(2024, 1, 1, 22, 30, 0, 0, time.UTC)

	t.Run("counts calendar days", func(t *testing.T) {
		days, err := DaysToExpiration("2024-01-31", now)
		require.NoError(t, err)
		assert.Equal(t, 30, days)
	})

	t.Run("same day and past dates floor at one", func(t *testing.T) {
		days, err := DaysToExpiration("2024-01-01", now)
		require.NoError(t, err)
		assert.Equal(t, 1, days)

		days, err = DaysToExpiration("2023-12-01", now)
		require.NoError(t, err)
		assert.Equal(t, 1, days)
	})

	t.Run("unparsable expiration", func(t *testing.T) {
		_, err := DaysToExpiration("manual", now)
		assert.Error(t, err)
	})
}
