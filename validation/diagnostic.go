// Package validation dispatches registered checks over grammar AST nodes
// and implements the built-in type consistency check: it verifies that
// every explicitly declared type faithfully describes what the parsing
// rules actually build.
package validation

import "github.com/ruediste/langium/grammar"

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "?"
	}
}

// DiagnosticInfo pins a diagnostic to the smallest relevant syntax element:
// an AST node, optionally narrowed to one of its named sub-ranges (such as
// "name" or "feature") or to an explicit range.
type DiagnosticInfo struct {
	Node     grammar.Node
	Property string // sub-range selector within the node, e.g. "name"
	Index    int    // element index when Property addresses a list, -1 otherwise
	Range    *grammar.Range
}

// At returns the most precise source range available for the diagnostic.
func (d DiagnosticInfo) At() grammar.Range {
	if d.Range != nil {
		return *d.Range
	}
	if d.Node != nil {
		return d.Node.Range()
	}
	return grammar.Range{}
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	Severity Severity
	Message  string
	Info     DiagnosticInfo
}

// Acceptor receives diagnostics as they are produced. Checks stream every
// problem through the acceptor immediately; nothing is buffered or returned
// as an aggregate value.
type Acceptor func(severity Severity, message string, info DiagnosticInfo)

// Collect returns an acceptor that appends to the given slice.
func Collect(out *[]*Diagnostic) Acceptor {
	return func(severity Severity, message string, info DiagnosticInfo) {
		*out = append(*out, &Diagnostic{Severity: severity, Message: message, Info: info})
	}
}
