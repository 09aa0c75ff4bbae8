package diagnostics

// Span is a half-open byte range [Start, End) in a query string.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewSpan creates a span.
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// Len returns the span width in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Clamp limits the span to a string of length n.
func (s Span) Clamp(n int) Span {
	if s.Start < 0 {
		s.Start = 0
	}
	if s.Start > n {
		s.Start = n
	}
	if s.End < s.Start {
		s.End = s.Start
	}
	if s.End > n {
		s.End = n
	}
	return s
}
