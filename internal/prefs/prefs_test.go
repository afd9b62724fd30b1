package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/timeboxd/internal/model"
	"github.com/sandeepkv93/timeboxd/internal/storage"
)

func TestThemeRoundTrip(t *testing.T) {
	repo := storage.NewMemoryRepository()
	store := New(repo, nil)

	assert.Equal(t, model.ThemeSystem, store.Theme(t.Context()))
	require.NoError(t, store.SetTheme(t.Context(), model.ThemeDark))
	assert.Equal(t, model.ThemeDark, store.Theme(t.Context()))

	raw, err := repo.Get(t.Context(), storage.ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "dark", string(raw))

	_, err = repo.Get(t.Context(), storage.TasksKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUnknownStoredThemeReadsAsSystem(t *testing.T) {
	repo := storage.NewMemoryRepository()
	require.NoError(t, repo.Put(t.Context(), storage.ThemeKey, []byte("sepia")))
	assert.Equal(t, model.ThemeSystem, New(repo, nil).Theme(t.Context()))
}

func TestSetThemeRejectsInvalid(t *testing.T) {
	err := New(storage.NewMemoryRepository(), nil).SetTheme(t.Context(), "neon")
	assert.ErrorIs(t, err, model.ErrInvalidTheme)
}
