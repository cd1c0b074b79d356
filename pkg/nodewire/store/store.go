// Package store provides persistent snapshot storage for link networks.
//
// Snapshots are serialized topology states (see nodewire.Snapshot) saved
// under a graph id. Every save produces a new revision, so an editor can
// offer history and undo across sessions.
package store

import (
	"errors"
	"time"
)

// Store persists topology snapshots.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a snapshot for a graph and returns its revision.
	// Revisions start at 1 and increase by 1 per save.
	Save(graphID string, data []byte) (int64, error)

	// Load retrieves a specific revision.
	// Returns ErrNotFound if the revision doesn't exist.
	Load(graphID string, revision int64) ([]byte, error)

	// LoadLatest retrieves the newest revision and its number.
	// Returns ErrNotFound if the graph has no snapshots.
	LoadLatest(graphID string) ([]byte, int64, error)

	// List returns metadata for all revisions of a graph, oldest first.
	// Returns an empty slice (not an error) for unknown graphs.
	List(graphID string) ([]Info, error)

	// Delete removes a specific revision.
	// Returns nil if the revision doesn't exist.
	Delete(graphID string, revision int64) error

	// DeleteGraph removes all revisions of a graph.
	// Returns nil if the graph has no snapshots.
	DeleteGraph(graphID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides revision metadata without loading the snapshot.
type Info struct {
	GraphID   string
	Revision  int64
	Timestamp time.Time
	Size      int64
}

// Sentinel errors for snapshot operations.
var (
	// ErrNotFound indicates a snapshot doesn't exist.
	ErrNotFound = errors.New("snapshot not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("snapshot store closed")
)
