// Package diag defines the single canonical error type reported by the
// scanners and generators. Scanning never aborts on a bad declaration; the
// offending entity is dropped and an *Error is collected instead.
package diag

import "fmt"

// Kind classifies a diagnostic.
type Kind string

const (
	KindNotFound             Kind = "NotFound"
	KindMalformedDeclaration Kind = "MalformedDeclaration"
	KindMalformedCall        Kind = "MalformedCall"
	KindArityMismatch        Kind = "ArityMismatch"
	KindDuplicateStruct      Kind = "DuplicateStruct"
	KindPropertyCollision    Kind = "PropertyCollision"
	KindDuplicateSignal      Kind = "DuplicateSignal"
)

// Severity tells the orchestrator how loudly to report a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Error is a located, structured diagnostic.
type Error struct {
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"severity"`
	// Line is the 1-based input line the entity started on, 0 if unknown.
	Line int `json:"line,omitempty"`
	// Subject names the entity the diagnostic is about (struct, function, signal).
	Subject string `json:"subject,omitempty"`
	Detail  string `json:"detail"`
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s %s: %s", e.Line, e.Kind, e.Subject, e.Detail)
	}
	if e.Subject == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s %s: %s", e.Kind, e.Subject, e.Detail)
}

// Is matches on Kind so callers can use errors.Is(err, diag.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrNotFound             = &Error{Kind: KindNotFound}
	ErrMalformedDeclaration = &Error{Kind: KindMalformedDeclaration}
	ErrMalformedCall        = &Error{Kind: KindMalformedCall}
	ErrArityMismatch        = &Error{Kind: KindArityMismatch}
	ErrDuplicateStruct      = &Error{Kind: KindDuplicateStruct}
	ErrPropertyCollision    = &Error{Kind: KindPropertyCollision}
	ErrDuplicateSignal      = &Error{Kind: KindDuplicateSignal}
)

func NotFound(subject, detail string) *Error {
	return &Error{Kind: KindNotFound, Severity: SeverityError, Subject: subject, Detail: detail}
}
func MalformedDeclaration(line int, subject, detail string) *Error {
	return &Error{Kind: KindMalformedDeclaration, Severity: SeverityWarning, Line: line, Subject: subject, Detail: detail}
}
func MalformedCall(line int, subject, detail string) *Error {
	return &Error{Kind: KindMalformedCall, Severity: SeverityWarning, Line: line, Subject: subject, Detail: detail}
}
func ArityMismatch(line int, subject string, declared, found int) *Error {
	return &Error{
		Kind:     KindArityMismatch,
		Severity: SeverityWarning,
		Line:     line,
		Subject:  subject,
		Detail:   fmt.Sprintf("declared %d values, parsed %d", declared, found),
	}
}
func DuplicateStruct(line int, subject string) *Error {
	return &Error{Kind: KindDuplicateStruct, Severity: SeverityWarning, Line: line, Subject: subject, Detail: "struct declared again, previous entry replaced"}
}
func PropertyCollision(line int, subject, op string) *Error {
	return &Error{Kind: KindPropertyCollision, Severity: SeverityWarning, Line: line, Subject: subject, Detail: fmt.Sprintf("%q accessor replaced", op)}
}
func DuplicateSignal(line int, subject string) *Error {
	return &Error{Kind: KindDuplicateSignal, Severity: SeverityWarning, Line: line, Subject: subject, Detail: "signal registered again, previous entry replaced"}
}
