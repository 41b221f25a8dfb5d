package policy

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes a candidate as a [move, weight, outcome] triple.
func (c Candidate) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Move, c.Weight, c.Outcome})
}

// UnmarshalJSON accepts a [move, weight, outcome] triple, or a [move, weight] pair as written for
// opponent tables, in which case the outcome is 0.
func (c *Candidate) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("candidate must be an array: %w", err)
	}
	if len(fields) != 2 && len(fields) != 3 {
		return fmt.Errorf("candidate must have 2 or 3 fields, got %d", len(fields))
	}
	var out Candidate
	if err := json.Unmarshal(fields[0], &out.Move); err != nil {
		return fmt.Errorf("candidate move: %w", err)
	}
	if err := json.Unmarshal(fields[1], &out.Weight); err != nil {
		return fmt.Errorf("candidate weight: %w", err)
	}
	if len(fields) == 3 {
		if err := json.Unmarshal(fields[2], &out.Outcome); err != nil {
			return fmt.Errorf("candidate outcome: %w", err)
		}
	}
	*c = out
	return nil
}

// MarshalJSON encodes the table as one JSON object whose keys appear in insertion order.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range t.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.State)
		if err != nil {
			return nil, err
		}
		candidates, err := json.Marshal(e.Candidates)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(candidates)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a table object keeping the order of its keys. Duplicate keys are rejected.
func (t *Table) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("policy table must be an object, got %v", tok)
	}

	out := NewTable()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		state, ok := tok.(string)
		if !ok {
			return fmt.Errorf("policy table key must be a string, got %v", tok)
		}
		if _, dup := out.index[state]; dup {
			return fmt.Errorf("policy table repeats board layout %s", state)
		}
		var candidates []Candidate
		if err := dec.Decode(&candidates); err != nil {
			return fmt.Errorf("board layout %s: %w", state, err)
		}
		out.Set(state, candidates)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*t = *out
	return nil
}
