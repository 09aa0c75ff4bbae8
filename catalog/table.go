package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// Table holds the records in canonical order. It is read-only after construction.
type Table struct {
	records  []Record
	numbers  []Number
	byNumber map[string]int
}

// NewTable sorts the records into canonical order and indexes them by number.
// It fails on unparsable or duplicate numbers; reference integrity is checked by
// Validate.
func NewTable(records []Record) (*Table, error) {
	type entry struct {
		rec Record
		num Number
	}
	entries := make([]entry, len(records))
	for i, r := range records {
		n, err := ParseNumber(r.Number)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		entries[i] = entry{rec: r, num: n}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].num.Compare(entries[j].num) < 0
	})

	t := &Table{
		records:  make([]Record, len(entries)),
		numbers:  make([]Number, len(entries)),
		byNumber: make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if _, dup := t.byNumber[e.rec.Number]; dup {
			return nil, fmt.Errorf("duplicate number %q", e.rec.Number)
		}
		t.records[i] = e.rec
		t.numbers[i] = e.num
		t.byNumber[e.rec.Number] = i
	}
	return t, nil
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns the records in canonical order. Callers must not modify the slice.
func (t *Table) Records() []Record {
	return t.records
}

// At returns the record at canonical position i.
func (t *Table) At(i int) *Record {
	return &t.records[i]
}

// Lookup finds a record by number.
func (t *Table) Lookup(number string) (*Record, bool) {
	i, ok := t.byNumber[number]
	if !ok {
		return nil, false
	}
	return &t.records[i], true
}

// Position returns the canonical position of a number.
func (t *Table) Position(number string) (int, bool) {
	i, ok := t.byNumber[number]
	return i, ok
}

// Validate checks reference integrity:
//   - every non-null reference names a record in the table;
//   - complement references are symmetric;
//   - a z partner shares the vector, differs in prime form and has a partner itself.
//
// Inversion references are not required to be symmetric.
func (t *Table) Validate() error {
	var errs []error
	for i := range t.records {
		r := &t.records[i]
		for _, f := range []Field{FieldZ, FieldComplement, FieldInversion} {
			ref := r.Ref(f)
			if ref == nil {
				continue
			}
			if _, ok := t.byNumber[*ref]; !ok {
				errs = append(errs, fmt.Errorf("%s: %s references unknown record %q", r.Number, f, *ref))
			}
		}
		if r.Complement != nil {
			if other, ok := t.Lookup(*r.Complement); ok {
				if other.Complement == nil || *other.Complement != r.Number {
					errs = append(errs, fmt.Errorf("%s: complement %s does not point back", r.Number, other.Number))
				}
			}
		}
		if r.Z != nil {
			if other, ok := t.Lookup(*r.Z); ok {
				switch {
				case other.Vec != r.Vec:
					errs = append(errs, fmt.Errorf("%s: z partner %s has a different vector", r.Number, other.Number))
				case other.PrimeForm.Equal(r.PrimeForm):
					errs = append(errs, fmt.Errorf("%s: z partner %s has the same prime form", r.Number, other.Number))
				case other.Z == nil:
					errs = append(errs, fmt.Errorf("%s: z partner %s has no partner", r.Number, other.Number))
				}
			}
		}
	}
	return errors.Join(errs...)
}
