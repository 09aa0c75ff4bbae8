// Package catalog holds the set-class table served by the query engine.
package catalog

import "strings"

// Field identifies one column of a Record.
type Field int

const (
	// FieldNumber is the Forte-style identifier.
	FieldNumber Field = iota
	// FieldPrimeForm is the normalized token sequence.
	FieldPrimeForm
	// FieldVec is the interval-class vector.
	FieldVec
	// FieldZ is the Z-relation partner reference.
	FieldZ
	// FieldComplement is the complement reference.
	FieldComplement
	// FieldInversion is the inversion reference.
	FieldInversion
)

// Fields lists every field in canonical output order.
var Fields = []Field{
	FieldNumber,
	FieldPrimeForm,
	FieldVec,
	FieldZ,
	FieldComplement,
	FieldInversion,
}

var fieldNames = [...]string{
	FieldNumber:     "number",
	FieldPrimeForm:  "primeForm",
	FieldVec:        "vec",
	FieldZ:          "z",
	FieldComplement: "complement",
	FieldInversion:  "inversion",
}

// String returns the wire name of the field.
func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// ParseField resolves a wire name. Names are case-sensitive.
func ParseField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}

// FieldNames returns the wire names in canonical order.
func FieldNames() []string {
	names := make([]string, len(fieldNames))
	copy(names, fieldNames[:])
	return names
}

// IsReference reports whether the field is a nullable reference to another record.
func (f Field) IsReference() bool {
	return f == FieldZ || f == FieldComplement || f == FieldInversion
}

// IsStringValued reports whether predicates on the field compare plain strings.
func (f Field) IsStringValued() bool {
	return f == FieldNumber || f.IsReference()
}

// JoinFields renders fields as a comma-separated list.
func JoinFields(fields []Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, ",")
}
