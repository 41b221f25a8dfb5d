package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"hexapawn/agent"
)

// ErrNotFound is returned by Load when nothing has been saved under the requested file or name.
var ErrNotFound = errors.New("policy record not found")

// CorruptDataError means stored data exists but does not describe a valid policy record.
type CorruptDataError struct {
	Source string
	Err    error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt policy record in %s: %v", e.Source, e.Err)
}

func (e *CorruptDataError) Unwrap() error {
	return e.Err
}

// Store persists one policy record. Implementations validate a record before committing it, so a failed Save
// never replaces good data, and a failed Load returns no partial record.
type Store interface {
	Save(ctx context.Context, r agent.Record) error
	Load(ctx context.Context) (agent.Record, error)
}

// DefaultName is the policy name used in a database when the location does not name one.
const DefaultName = "default"

// Open picks a backend from a location. Paths ending in .sqlite or .db open a database, optionally followed by
// "#name" to select a policy inside it. Anything else is a JSON file. Close the result when it implements
// io.Closer.
func Open(location string) (Store, error) {
	path, name, _ := strings.Cut(location, "#")
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sqlite", ".db":
		if name == "" {
			name = DefaultName
		}
		return OpenSQLite(path, name)
	default:
		if name != "" {
			return nil, fmt.Errorf("policy name %q is only supported for databases", name)
		}
		return &File{Path: path}, nil
	}
}
