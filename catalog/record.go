package catalog

import (
	"bytes"
	"encoding/json"
)

// Record is one catalog entry. Records are immutable once a Table is built.
type Record struct {
	Number     string         `json:"number" yaml:"number"`
	PrimeForm  PrimeForm      `json:"primeForm" yaml:"primeForm"`
	Vec        IntervalVector `json:"vec" yaml:"vec"`
	Z          *string        `json:"z" yaml:"z"`
	Complement *string        `json:"complement" yaml:"complement"`
	Inversion  *string        `json:"inversion" yaml:"inversion"`
}

// Text returns the serialized value of a field. ok is false when the field is null.
func (r *Record) Text(f Field) (value string, ok bool) {
	switch f {
	case FieldNumber:
		return r.Number, true
	case FieldPrimeForm:
		return r.PrimeForm.String(), true
	case FieldVec:
		return r.Vec.String(), true
	case FieldZ:
		return deref(r.Z)
	case FieldComplement:
		return deref(r.Complement)
	case FieldInversion:
		return deref(r.Inversion)
	}
	return "", false
}

// Ref returns the reference held by a reference field, or nil.
func (r *Record) Ref(f Field) *string {
	switch f {
	case FieldZ:
		return r.Z
	case FieldComplement:
		return r.Complement
	case FieldInversion:
		return r.Inversion
	}
	return nil
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

// MarshalJSON writes every field in canonical order.
func (r Record) MarshalJSON() ([]byte, error) {
	return MarshalFields(&r, Fields)
}

// MarshalFields writes a JSON object holding only the given fields, in the order
// given. Projection and full-record output share this encoder so both render
// identically. Angle brackets in vectors are written literally.
func MarshalFields(r *Record, fields []Field) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(f.String()); err != nil {
			return nil, err
		}
		trimNewline(&buf)
		buf.WriteByte(':')

		value, ok := r.Text(f)
		if !ok {
			buf.WriteString("null")
			continue
		}
		if err := enc.Encode(value); err != nil {
			return nil, err
		}
		trimNewline(&buf)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// trimNewline drops the newline json.Encoder appends after each value.
func trimNewline(buf *bytes.Buffer) {
	if n := buf.Len(); n > 0 && buf.Bytes()[n-1] == '\n' {
		buf.Truncate(n - 1)
	}
}

// StrPtr is a convenience for building records in code.
func StrPtr(s string) *string {
	return &s
}
