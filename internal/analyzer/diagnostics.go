package analyzer

import "fmt"

// DiagnosticKind identifies an anomaly observed during analysis.
type DiagnosticKind int

const (
	// AnomalousDocstring means a string literal was found inside a
	// computed signature range. The syntax tree walk should never place a
	// docstring there, so the boundary was adjusted best-effort.
	AnomalousDocstring DiagnosticKind = iota

	// UnexpectedToken means the range resolver met a token kind it has no
	// rule for; the boundary was left unchanged.
	UnexpectedToken

	// EmptyBody means a function body could not be located; the function
	// is treated as having no return statement.
	EmptyBody
)

var diagnosticNames = map[DiagnosticKind]string{
	AnomalousDocstring: "anomalous-docstring",
	UnexpectedToken:    "unexpected-token",
	EmptyBody:          "empty-body",
}

func (k DiagnosticKind) String() string {
	if s, ok := diagnosticNames[k]; ok {
		return s
	}
	return "unknown"
}

// Diagnostic is a typed warning event emitted alongside analysis results.
// None of them are fatal; callers decide how to surface them.
type Diagnostic struct {
	Kind   DiagnosticKind
	Line   int
	Detail string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s at line %d: %s", d.Kind, d.Line, d.Detail)
}
