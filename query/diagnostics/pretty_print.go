package diagnostics

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// PrettyPrint writes err for a terminal. Errors that carry a query are shown with
// the offending span highlighted and a caret line underneath.
func PrettyPrint(w io.Writer, err error) error {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	titleColor := color.New(color.Bold)
	arrowColor := color.New(color.FgCyan, color.Bold)
	primary := color.New(color.FgRed, color.Bold)

	var e *Error
	if !errors.As(err, &e) {
		titleColor.Fprintf(w, "error: ")
		fmt.Fprintf(w, "%v\n", err)
		return nil
	}

	titleColor.Fprintf(w, "error[%s]: ", e.Kind)
	fmt.Fprintf(w, "%s\n", e.Message)
	if e.Query == "" {
		return nil
	}

	span := e.Span.Clamp(len(e.Query))
	prefix := e.Query[:span.Start]
	offending := e.Query[span.Start:span.End]
	suffix := e.Query[span.End:]

	arrowColor.Fprintf(w, "  --> ")
	fmt.Fprintf(w, "column %d\n", span.Start+1)
	arrowColor.Fprintf(w, "   | ")
	fmt.Fprintf(w, "%s%s%s\n", prefix, primary.Sprint(offending), suffix)
	arrowColor.Fprintf(w, "   | ")

	width := span.Len()
	if width == 0 {
		width = 1
	}
	fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", span.Start), primary.Sprint(strings.Repeat("^", width)))
	return nil
}
