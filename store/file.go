package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"hexapawn/agent"
	"hexapawn/policy"
)

// document is the .hexai layout. Older files name the table AI_Data.
type document struct {
	Games     int           `json:"games"`
	Wins      int           `json:"wins"`
	Benchmark int           `json:"benchmark"`
	History   []int         `json:"benchmark_history"`
	Table     *policy.Table `json:"policy_table,omitempty"`
	Legacy    *policy.Table `json:"AI_Data,omitempty"`
}

// File stores a record as a JSON document at Path.
type File struct {
	Path string
}

// Save writes r to a temporary file next to Path and renames it into place.
func (f *File) Save(ctx context.Context, r agent.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid record: %w", err)
	}
	data, err := Encode(r)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.Path), ".hexai-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary policy file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write policy file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write policy file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("failed to replace policy file: %w", err)
	}
	return nil
}

// Load reads the record at Path. A missing file is ErrNotFound.
func (f *File) Load(ctx context.Context) (agent.Record, error) {
	if err := ctx.Err(); err != nil {
		return agent.Record{}, err
	}
	file, err := os.Open(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return agent.Record{}, fmt.Errorf("%s: %w", f.Path, ErrNotFound)
	}
	if err != nil {
		return agent.Record{}, err
	}
	defer file.Close()

	r, err := Decode(file)
	if err != nil {
		var corrupt *CorruptDataError
		if errors.As(err, &corrupt) {
			corrupt.Source = f.Path
		}
		return agent.Record{}, err
	}
	return r, nil
}

// Encode renders a record as a .hexai document.
func Encode(r agent.Record) ([]byte, error) {
	doc := document{
		Games:     r.Games,
		Wins:      r.Wins,
		Benchmark: r.Benchmark,
		History:   r.History,
		Table:     r.Table,
	}
	if doc.History == nil {
		doc.History = []int{}
	}
	return json.Marshal(doc)
}

// Decode reads and validates a .hexai document. Malformed or invalid content is a *CorruptDataError.
func Decode(reader io.Reader) (agent.Record, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return agent.Record{}, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return agent.Record{}, &CorruptDataError{Source: "document", Err: err}
	}

	r := agent.Record{
		Games:     doc.Games,
		Wins:      doc.Wins,
		Benchmark: doc.Benchmark,
		History:   doc.History,
		Table:     doc.Table,
	}
	if r.Table == nil {
		r.Table = doc.Legacy
	}
	if r.Table == nil {
		return agent.Record{}, &CorruptDataError{Source: "document", Err: errors.New("no policy_table")}
	}
	if err := r.Validate(); err != nil {
		return agent.Record{}, &CorruptDataError{Source: "document", Err: err}
	}
	return r, nil
}
