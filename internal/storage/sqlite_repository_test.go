package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "timeboxd-test.db")
	db, err := sqlx.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func TestSQLiteGetPutDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if _, err := repo.Get(ctx, TasksKey); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on empty store, got: %v", err)
	}

	if err := repo.Put(ctx, TasksKey, []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := repo.Get(ctx, TasksKey)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[{"id":"a"}]` {
		t.Fatalf("unexpected value: %s", got)
	}

	if err := repo.Put(ctx, TasksKey, []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = repo.Get(ctx, TasksKey)
	if err != nil || string(got) != `[]` {
		t.Fatalf("expected overwritten value, got %s (%v)", got, err)
	}

	if err := repo.Delete(ctx, TasksKey); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, TasksKey); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got: %v", err)
	}
}

func TestSQLiteKeysAreSorted(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	for _, key := range []string{ThemeKey, TasksKey} {
		if err := repo.Put(ctx, key, []byte("x")); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	keys, err := repo.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != TasksKey || keys[1] != ThemeKey {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestSQLiteClosedDatabaseIsUnavailable(t *testing.T) {
	repo := setupRepo(t)
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	err := repo.Put(context.Background(), TasksKey, []byte("[]"))
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got: %v", err)
	}
	_, err = repo.Get(context.Background(), TasksKey)
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got: %v", err)
	}
}

func TestOpenSQLiteMigrates(t *testing.T) {
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "open.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer repo.Close()
	if err := repo.Put(t.Context(), ThemeKey, []byte("dark")); err != nil {
		t.Fatalf("put after open: %v", err)
	}
}
