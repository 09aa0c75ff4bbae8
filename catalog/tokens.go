package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// tokenAlphabet maps small counts and residues to their single-character form.
const tokenAlphabet = "0123456789ABC"

// TokenValue decodes a single token character. Letters are upper case only.
func TokenValue(c byte) (int, bool) {
	i := strings.IndexByte(tokenAlphabet, c)
	if i < 0 {
		return 0, false
	}
	return i, true
}

// TokenChar encodes a value in 0..12 as its token character.
func TokenChar(v int) byte {
	if v < 0 || v >= len(tokenAlphabet) {
		return '?'
	}
	return tokenAlphabet[v]
}

// PrimeForm is the ordered residue sequence of a set class. Residues are 0..11.
type PrimeForm []int

// ParsePrimeForm parses the serialized form "[0,1,4]". "[]" is the empty sequence.
func ParsePrimeForm(s string) (PrimeForm, error) {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("prime form %q: missing brackets", s)
	}
	body := s[1 : len(s)-1]
	if body == "" {
		return PrimeForm{}, nil
	}
	parts := strings.Split(body, ",")
	pf := make(PrimeForm, 0, len(parts))
	for _, p := range parts {
		if len(p) != 1 {
			return nil, fmt.Errorf("prime form %q: token %q is not a single character", s, p)
		}
		v, ok := TokenValue(p[0])
		if !ok || v > 11 {
			return nil, fmt.Errorf("prime form %q: illegal token %q", s, p)
		}
		pf = append(pf, v)
	}
	return pf, nil
}

// String renders the sequence as "[0,1,4]".
func (p PrimeForm) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range p {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte(TokenChar(v))
	}
	b.WriteByte(']')
	return b.String()
}

// Tokens renders the sequence without separators, e.g. "014".
func (p PrimeForm) Tokens() string {
	buf := make([]byte, len(p))
	for i, v := range p {
		buf[i] = TokenChar(v)
	}
	return string(buf)
}

// Has reports whether v occurs in the sequence.
func (p PrimeForm) Has(v int) bool {
	for _, x := range p {
		if x == v {
			return true
		}
	}
	return false
}

// Equal compares two sequences element by element.
func (p PrimeForm) Equal(o PrimeForm) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// MarshalText implements encoding.TextMarshaler.
func (p PrimeForm) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PrimeForm) UnmarshalText(text []byte) error {
	pf, err := ParsePrimeForm(string(text))
	if err != nil {
		return err
	}
	*p = pf
	return nil
}

// UnmarshalYAML accepts both the quoted string form and a plain YAML sequence,
// since an unquoted [0,1,4] is a flow sequence in YAML.
func (p *PrimeForm) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return p.UnmarshalText([]byte(node.Value))
	case yaml.SequenceNode:
		pf := make(PrimeForm, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := yamlToken(item.Value)
			if err != nil {
				return fmt.Errorf("line %d: %w", item.Line, err)
			}
			pf = append(pf, v)
		}
		*p = pf
		return nil
	default:
		return fmt.Errorf("line %d: prime form must be a string or a sequence", node.Line)
	}
}

func yamlToken(s string) (int, error) {
	if len(s) == 1 {
		if v, ok := TokenValue(s[0]); ok && v <= 11 {
			return v, nil
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > 11 {
		return 0, fmt.Errorf("illegal prime form token %q", s)
	}
	return v, nil
}

// VectorWidth is the fixed number of interval classes.
const VectorWidth = 6

// IntervalVector counts interval classes 1 through 6.
type IntervalVector [VectorWidth]int

// ParseIntervalVector parses "<1,0,1,1,0,0>".
func ParseIntervalVector(s string) (IntervalVector, error) {
	var iv IntervalVector
	if len(s) < 2 || s[0] != '<' || s[len(s)-1] != '>' {
		return iv, fmt.Errorf("vector %q: missing angle brackets", s)
	}
	parts := strings.Split(s[1:len(s)-1], ",")
	if len(parts) != VectorWidth {
		return iv, fmt.Errorf("vector %q: want %d entries, got %d", s, VectorWidth, len(parts))
	}
	for i, part := range parts {
		if len(part) != 1 {
			return iv, fmt.Errorf("vector %q: entry %q is not a single character", s, part)
		}
		v, ok := TokenValue(part[0])
		if !ok {
			return iv, fmt.Errorf("vector %q: illegal entry %q", s, part)
		}
		iv[i] = v
	}
	return iv, nil
}

// String renders the vector as "<1,0,1,1,0,0>".
func (v IntervalVector) String() string {
	var b strings.Builder
	b.WriteByte('<')
	for i, c := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte(TokenChar(c))
	}
	b.WriteByte('>')
	return b.String()
}

// Compact renders the vector without separators, e.g. "101100".
func (v IntervalVector) Compact() string {
	buf := make([]byte, VectorWidth)
	for i, c := range v {
		buf[i] = TokenChar(c)
	}
	return string(buf)
}

// MarshalText implements encoding.TextMarshaler.
func (v IntervalVector) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *IntervalVector) UnmarshalText(text []byte) error {
	iv, err := ParseIntervalVector(string(text))
	if err != nil {
		return err
	}
	*v = iv
	return nil
}
