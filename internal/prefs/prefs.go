// Package prefs stores display preferences under their own key, apart from
// the task snapshot.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sandeepkv93/timeboxd/internal/model"
	"github.com/sandeepkv93/timeboxd/internal/storage"
)

type Store struct {
	repo   storage.Repository
	logger *zap.Logger
}

func New(repo storage.Repository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{repo: repo, logger: logger}
}

// Theme returns the saved theme. Missing, unreadable or unknown values read
// as system.
func (s *Store) Theme(ctx context.Context) model.Theme {
	if s.repo == nil {
		return model.ThemeSystem
	}
	raw, err := s.repo.Get(ctx, storage.ThemeKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("read theme preference", zap.Error(err))
		}
		return model.ThemeSystem
	}
	theme, err := model.ParseTheme(string(raw))
	if err != nil {
		s.logger.Warn("ignoring stored theme", zap.String("value", strings.TrimSpace(string(raw))))
	}
	return theme
}

func (s *Store) SetTheme(ctx context.Context, theme model.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("prefs: %w: %q", model.ErrInvalidTheme, theme)
	}
	if s.repo == nil {
		return nil
	}
	if err := s.repo.Put(ctx, storage.ThemeKey, []byte(theme)); err != nil {
		return fmt.Errorf("prefs: save theme: %w", err)
	}
	return nil
}
