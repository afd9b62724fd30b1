package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

// Open builds the repository for the configured backend. dbPath is only used
// by the sqlite backend and defaults to dataDir/timeboxd.db.
func Open(backend Backend, dataDir, dbPath string) (Repository, error) {
	switch Backend(strings.ToLower(string(backend))) {
	case BackendMemory:
		return NewMemoryRepository(), nil
	case BackendFile:
		repo, err := NewFileRepository(dataDir)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case BackendSQLite, "":
		if strings.TrimSpace(dbPath) == "" {
			if err := os.MkdirAll(dataDir, 0o755); err != nil {
				return nil, fmt.Errorf("%w: create data dir: %v", ErrStorageUnavailable, err)
			}
			dbPath = filepath.Join(dataDir, "timeboxd.db")
		}
		repo, err := OpenSQLite(dbPath)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}
