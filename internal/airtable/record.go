package airtable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Record is an Airtable row: an opaque store identifier plus a loosely-typed
// field map. The pipeline reads and mutates Fields only.
type Record struct {
	ID     string         `json:"id,omitempty"`
	Fields map[string]any `json:"fields"`
}

// String returns the named field as a string, or "" when absent or not
// string-shaped.
func (r Record) String(name string) string {
	v, ok := r.Fields[name]
	if !ok || v == nil {
		return ""
	}

	switch typed := v.(type) {
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Int returns the named field as an int. JSON numbers decode as float64, and
// some numeric fields are stored as strings, so all three shapes are accepted.
func (r Record) Int(name string) (int, bool) {
	switch v := r.Fields[name].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// StringList returns the named field as a list of strings. Airtable link
// fields decode as []any of record ids.
func (r Record) StringList(name string) []string {
	v, ok := r.Fields[name]
	if !ok || v == nil {
		return nil
	}

	if typed, ok := v.([]string); ok {
		return typed
	}

	var out []string
	if err := mapstructure.Decode(v, &out); err != nil {
		return nil
	}

	return out
}

// Has reports whether the named field is present and non-nil. Airtable omits
// empty fields entirely, so presence alone marks a populated value.
func (r Record) Has(name string) bool {
	v, ok := r.Fields[name]
	return ok && v != nil
}
