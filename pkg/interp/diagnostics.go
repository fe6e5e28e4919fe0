package interp

import "fmt"

// DiagnosticKind classifies a recovered interpretation condition. No kind is
// fatal: the interpreter always produces a best-effort scene and reports
// what it had to skip, clamp or approximate.
type DiagnosticKind int

const (
	// StateUnderflow: a restore with an empty state stack; ignored.
	StateUnderflow DiagnosticKind = iota
	// FormatViolation: operator invalid in the current dispatch state, or
	// malformed operand list; the operator is skipped.
	FormatViolation
	// UnsupportedOperator: recognized but out of scope (shadings, inline
	// images, pattern paint); skipped or approximated.
	UnsupportedOperator
	// InvalidColorIndex: out-of-range indexed color component; clamped.
	InvalidColorIndex
	// GlyphNotFound: no metric for a character code; default advance used,
	// glyph not emitted.
	GlyphNotFound
	// ResourceMissing: a named font, color space or XObject is absent from
	// the resource dictionary; the operator is a no-op.
	ResourceMissing
	// RecursionLimitExceeded: XObject nesting deeper than the configured
	// limit; the sub-invocation is truncated.
	RecursionLimitExceeded
)

var diagnosticKindNames = [...]string{
	StateUnderflow:         "StateUnderflow",
	FormatViolation:        "FormatViolation",
	UnsupportedOperator:    "UnsupportedOperator",
	InvalidColorIndex:      "InvalidColorIndex",
	GlyphNotFound:          "GlyphNotFound",
	ResourceMissing:        "ResourceMissing",
	RecursionLimitExceeded: "RecursionLimitExceeded",
}

func (k DiagnosticKind) String() string {
	if k >= 0 && int(k) < len(diagnosticKindNames) {
		return diagnosticKindNames[k]
	}
	return "Unknown"
}

// Diagnostic records one recovered condition.
type Diagnostic struct {
	Kind   DiagnosticKind
	Op     string // operator being dispatched, if any
	Detail string
}

func (d Diagnostic) String() string {
	if d.Op == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Detail)
	}
	return fmt.Sprintf("%s (%s): %s", d.Kind, d.Op, d.Detail)
}
