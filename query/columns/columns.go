// Package columns selects and projects record fields.
package columns

import (
	"strings"

	"github.com/satishbabariya/forte-go/catalog"
	"github.com/satishbabariya/forte-go/query/diagnostics"
)

// Selection is a set of fields kept in canonical order.
type Selection struct {
	fields []catalog.Field
}

// All selects every field.
func All() Selection {
	return Selection{fields: catalog.Fields}
}

// NewSelection selects the given fields. Duplicates are collapsed and the
// result follows canonical order regardless of argument order.
func NewSelection(fields ...catalog.Field) Selection {
	if len(fields) == 0 {
		return All()
	}
	var want [8]bool
	for _, f := range fields {
		if int(f) >= 0 && int(f) < len(want) {
			want[f] = true
		}
	}
	selected := make([]catalog.Field, 0, len(fields))
	for _, f := range catalog.Fields {
		if want[f] {
			selected = append(selected, f)
		}
	}
	return Selection{fields: selected}
}

// ParseSelection parses a comma-separated property list. An empty list selects
// every field; an unknown or empty entry is an InvalidProperty.
func ParseSelection(props string) (Selection, error) {
	if props == "" {
		return All(), nil
	}
	names := strings.Split(props, ",")
	fields := make([]catalog.Field, 0, len(names))
	for _, name := range names {
		f, ok := catalog.ParseField(name)
		if !ok {
			return Selection{}, diagnostics.New(diagnostics.InvalidProperty,
				"unknown property %q (valid: %s)", name, strings.Join(catalog.FieldNames(), ", "))
		}
		fields = append(fields, f)
	}
	return NewSelection(fields...), nil
}

// Fields returns the selected fields in canonical order.
func (s Selection) Fields() []catalog.Field {
	if s.fields == nil {
		return catalog.Fields
	}
	return s.fields
}

// IsAll reports whether every field is selected.
func (s Selection) IsAll() bool {
	return len(s.Fields()) == len(catalog.Fields)
}

// Has reports whether f is selected.
func (s Selection) Has(f catalog.Field) bool {
	for _, sf := range s.Fields() {
		if sf == f {
			return true
		}
	}
	return false
}

// String renders the selection as a property list.
func (s Selection) String() string {
	return catalog.JoinFields(s.Fields())
}

// Row is a projected record.
type Row struct {
	Record *catalog.Record
	Fields []catalog.Field
}

// MarshalJSON writes the selected fields in canonical order. With every field
// selected the output is byte-identical to the record's own encoding.
func (r Row) MarshalJSON() ([]byte, error) {
	return catalog.MarshalFields(r.Record, r.Fields)
}

// Get returns the text of a selected field. ok is false when the field is not
// selected or is null.
func (r Row) Get(f catalog.Field) (string, bool) {
	for _, sf := range r.Fields {
		if sf == f {
			return r.Record.Text(f)
		}
	}
	return "", false
}

// Project builds one row per record.
func Project(records []*catalog.Record, sel Selection) []Row {
	fields := sel.Fields()
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = Row{Record: r, Fields: fields}
	}
	return rows
}

// Values returns the text of one field for every record. Null values are
// returned as nil.
func Values(records []*catalog.Record, f catalog.Field) []*string {
	out := make([]*string, len(records))
	for i, r := range records {
		if v, ok := r.Text(f); ok {
			out[i] = &v
		}
	}
	return out
}
