package domain

import (
	"strings"
	"unicode"
)

// Severity ranks how disruptive a fault code is.
type Severity string

const (
	// SeverityInfo is informational, no service action needed.
	SeverityInfo Severity = "info"

	// SeverityWarning degrades output quality or speed.
	SeverityWarning Severity = "warning"

	// SeverityError stops the affected function.
	SeverityError Severity = "error"

	// SeverityCritical stops the machine entirely.
	SeverityCritical Severity = "critical"
)

// ErrorCode is a normalized fault code with its documented remedy.
type ErrorCode struct {
	// ID is the unique identifier.
	ID string

	// Code is the normalized code (see NormalizeCode).
	Code string

	// ManufacturerID scopes the code to one manufacturer.
	ManufacturerID string

	// Description explains the fault.
	Description string

	// Solution is the documented remedy.
	Solution string

	// Severity ranks the fault.
	Severity Severity
}

// NormalizeCode canonicalizes an error or part code for exact matching:
// lowercase, with all punctuation and whitespace stripped, keeping only
// letters and digits. Idempotent: NormalizeCode(NormalizeCode(x)) ==
// NormalizeCode(x).
func NormalizeCode(code string) string {
	var b strings.Builder
	b.Grow(len(code))
	for _, r := range code {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
