// Package persist loads and saves ledger snapshots. Every backend stores the
// same versioned JSON document; they differ only in where it lives.
package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cleared-dev/books/internal/model"
)

// Persister stores one snapshot.
type Persister interface {
	// Load returns the saved snapshot, or nil and no error when nothing has
	// been saved yet.
	Load(ctx context.Context) (*model.Snapshot, error)
	// Save replaces the stored snapshot. A failed save leaves the previous
	// snapshot intact.
	Save(ctx context.Context, snap *model.Snapshot) error
	Close() error
}

// Backend names a storage implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendBolt   Backend = "bolt"
	BackendSQLite Backend = "sqlite"
)

// Backends lists the supported backends.
func Backends() []Backend {
	return []Backend{BackendFile, BackendBolt, BackendSQLite}
}

// DefaultPath is the conventional file name for each backend.
func (b Backend) DefaultPath() string {
	switch b {
	case BackendBolt:
		return "books.db"
	case BackendSQLite:
		return "books.sqlite"
	}
	return "books.json"
}

// Open returns the persister for backend at path.
func Open(backend Backend, path string) (Persister, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(path), nil
	case BackendBolt:
		return OpenBolt(path)
	case BackendSQLite:
		return OpenSQLite(path)
	}
	return nil, fmt.Errorf("unknown storage backend %q (want one of %v)", backend, Backends())
}

func encode(snap *model.Snapshot) ([]byte, error) {
	out := *snap
	out.Version = model.SnapshotVersion
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

func decode(data []byte) (*model.Snapshot, error) {
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	switch {
	case snap.Version == 0:
		snap.Version = model.SnapshotVersion
	case snap.Version > model.SnapshotVersion:
		return nil, fmt.Errorf("snapshot version %d is newer than supported version %d", snap.Version, model.SnapshotVersion)
	}
	return &snap, nil
}
