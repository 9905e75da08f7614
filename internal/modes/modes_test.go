package modes_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "scholar-ai/backend/internal/errors"
	"scholar-ai/backend/internal/modes"
)

func TestList(t *testing.T) {
	t.Run("ReturnsAllModesInDisplayOrder", func(t *testing.T) {
		list := modes.List()

		require.Len(t, list, 5)
		assert.Equal(t, modes.General, list[0].ID)
		assert.Equal(t, modes.Reviewer, list[1].ID)
		assert.Equal(t, modes.Writer, list[2].ID)
		assert.Equal(t, modes.Analyst, list[3].ID)
		assert.Equal(t, modes.Humanizer, list[4].ID)
	})

	t.Run("ReturnsACopy", func(t *testing.T) {
		first := modes.List()
		first[0].Title = "mutated"

		second := modes.List()
		assert.NotEqual(t, "mutated", second[0].Title)
	})
}

func TestLookup(t *testing.T) {
	t.Run("KnownMode", func(t *testing.T) {
		cfg, err := modes.Lookup(modes.Humanizer)

		require.NoError(t, err)
		assert.Equal(t, modes.Humanizer, cfg.ID)
		assert.NotEmpty(t, cfg.DefaultInstruction)
		assert.InDelta(t, 0.9, cfg.Temperature, 0.001)
	})

	t.Run("UnknownMode", func(t *testing.T) {
		_, err := modes.Lookup("poet")

		require.Error(t, err)
		assert.True(t, errors.Is(err, app_errors.ErrNotFound))
	})
}

func TestValid(t *testing.T) {
	assert.True(t, modes.Valid(modes.Reviewer))
	assert.False(t, modes.Valid(""))
	assert.False(t, modes.Valid("poet"))
}
