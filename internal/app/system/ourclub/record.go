// internal/app/system/ourclub/record.go
package ourclub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// JSON keys of the fields the dashboard interprets.
const (
	FieldCategory = "categoriasocio"
	FieldHasDebt  = "tieneDeuda"
	FieldActive   = "socio_vigente"
)

// Record is one member row of the personas report.
//
// Only the three fields the dashboard aggregates on are typed. Every other
// key is kept verbatim in Extra and written back unchanged by MarshalJSON.
type Record struct {
	Category string
	HasDebt  bool
	Active   bool

	Extra map[string]json.RawMessage

	// Invalid lists problems found with the required fields while decoding.
	// An invalid record keeps zero values for the affected fields.
	Invalid []string
}

// Valid reports whether all required fields were present and well typed.
func (r Record) Valid() bool { return len(r.Invalid) == 0 }

// ExtraKeys returns the pass-through keys in sorted order.
func (r Record) ExtraKeys() []string {
	keys := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ExtraText renders a pass-through value for tables and CSV cells. Strings
// are unquoted; everything else is shown as compact JSON.
func (r Record) ExtraText(key string) string {
	raw, ok := r.Extra[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// UnmarshalJSON decodes a JSON object, validating the required fields.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("record is not an object: %w", err)
	}
	*r = Record{}
	if fields == nil {
		r.Invalid = []string{"record is null"}
		return nil
	}

	r.Category = decodeField(fields, FieldCategory, "", &r.Invalid)
	r.HasDebt = decodeField(fields, FieldHasDebt, false, &r.Invalid)
	r.Active = decodeField(fields, FieldActive, false, &r.Invalid)

	delete(fields, FieldCategory)
	delete(fields, FieldHasDebt)
	delete(fields, FieldActive)
	if len(fields) > 0 {
		r.Extra = fields
	}
	return nil
}

// MarshalJSON writes the typed fields back under their wire names along
// with every pass-through key.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+3)
	for k, v := range r.Extra {
		out[k] = v
	}
	out[FieldCategory] = r.Category
	out[FieldHasDebt] = r.HasDebt
	out[FieldActive] = r.Active
	return json.Marshal(out)
}

func decodeField[T any](fields map[string]json.RawMessage, key string, zero T, problems *[]string) T {
	raw, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		*problems = append(*problems, "missing "+key)
		return zero
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		*problems = append(*problems, fmt.Sprintf("%s has unexpected value %s", key, raw))
		return zero
	}
	return v
}

// Envelope is the decoded body of a personas report.
//
// The API normally answers {"items": [...]} but has been seen returning the
// bare array; both decode to the same Items. A null body, or an object
// without items, yields zero records.
type Envelope struct {
	Items []Record
}

// UnmarshalJSON accepts either envelope shape.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty body")
	}

	switch trimmed[0] {
	case '[':
		var items []Record
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		e.Items = items
		return nil
	case '{':
		var wrapped struct {
			Items []Record `json:"items"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return err
		}
		e.Items = wrapped.Items
		return nil
	case 'n':
		if string(trimmed) == "null" {
			e.Items = nil
			return nil
		}
	}

	return fmt.Errorf("unexpected report body starting with %q", truncate(string(trimmed), 16))
}

// Len returns the number of records.
func (e *Envelope) Len() int {
	if e == nil {
		return 0
	}
	return len(e.Items)
}

// InvalidCount returns how many records failed required-field validation.
func (e *Envelope) InvalidCount() int {
	if e == nil {
		return 0
	}
	n := 0
	for _, rec := range e.Items {
		if !rec.Valid() {
			n++
		}
	}
	return n
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
