package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Number is a parsed Forte-style identifier such as "3-3A" or "6-z50".
type Number struct {
	Cardinality int
	Index       int
	Z           bool
	// Variant is 0 for inversionally symmetric classes, otherwise 'A' or 'B'.
	Variant byte
}

// ParseNumber parses "<cardinality>-[z]<index>[A|B]".
func ParseNumber(s string) (Number, error) {
	var n Number
	card, rest, ok := strings.Cut(s, "-")
	if !ok {
		return n, fmt.Errorf("number %q: missing '-'", s)
	}
	c, err := strconv.Atoi(card)
	if err != nil || c < 0 || c > 12 {
		return n, fmt.Errorf("number %q: bad cardinality", s)
	}
	n.Cardinality = c

	if strings.HasPrefix(rest, "z") || strings.HasPrefix(rest, "Z") {
		n.Z = true
		rest = rest[1:]
	}
	if rest != "" {
		switch last := rest[len(rest)-1]; last {
		case 'A', 'B':
			n.Variant = last
			rest = rest[:len(rest)-1]
		}
	}
	idx, err := strconv.Atoi(rest)
	if err != nil || idx < 1 {
		return n, fmt.Errorf("number %q: bad index", s)
	}
	n.Index = idx
	return n, nil
}

// String renders the canonical spelling with a lower-case z.
func (n Number) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(n.Cardinality))
	b.WriteByte('-')
	if n.Z {
		b.WriteByte('z')
	}
	b.WriteString(strconv.Itoa(n.Index))
	if n.Variant != 0 {
		b.WriteByte(n.Variant)
	}
	return b.String()
}

// Compare orders numbers by cardinality, then index, then variant
// (no variant < A < B). It returns -1, 0 or +1.
func (n Number) Compare(o Number) int {
	switch {
	case n.Cardinality != o.Cardinality:
		return sign(n.Cardinality - o.Cardinality)
	case n.Index != o.Index:
		return sign(n.Index - o.Index)
	default:
		return sign(int(n.Variant) - int(o.Variant))
	}
}

func sign(d int) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	}
	return 0
}
