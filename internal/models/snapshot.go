package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aleister1102/respdiff/internal/common"
)

// ErrRecordNotFound is returned when a snapshot is not found in the store.
// It matches common.ErrNotFound.
var ErrRecordNotFound = fmt.Errorf("record %w", common.ErrNotFound)

// Snapshot is a stored JSON document that later comparisons can refer to by
// name. Body holds the compact encoding of the document.
type Snapshot struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks that the snapshot can be stored.
func (s Snapshot) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("snapshot name cannot be empty")
	}
	if strings.ContainsAny(s.Name, " \t\r\n") {
		return fmt.Errorf("snapshot name %q cannot contain whitespace", s.Name)
	}
	if s.Body == "" {
		return errors.New("snapshot body cannot be empty")
	}
	return nil
}

// SnapshotStore defines the interface for storing and retrieving snapshots.
type SnapshotStore interface {
	// Save stores a new version of the named document and returns it.
	Save(name, source, body string) (*Snapshot, error)

	// Latest returns the most recent snapshot saved under name.
	Latest(name string) (*Snapshot, error)

	// Get returns the snapshot with the given ID.
	Get(id string) (*Snapshot, error)

	// List returns snapshots newest first. An empty name lists all of them.
	List(name string, limit int) ([]Snapshot, error)

	// Delete removes the snapshot with the given ID.
	Delete(id string) error

	Close() error
}
