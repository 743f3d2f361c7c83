// Package validate checks experiment documents and descriptors, collecting
// every problem found rather than stopping at the first.
package validate

import "fmt"

// Kind classifies a validation failure.
type Kind string

const (
	// KindSyntax marks an unparseable document. Fatal; nothing else is checked.
	KindSyntax Kind = "syntax"
	// KindType marks a value that cannot be coerced to its declared type,
	// a missing required field, or an unknown field.
	KindType Kind = "type"
	// KindRange marks a numeric value outside its documented bound.
	KindRange Kind = "range"
	// KindUnknownEnum marks a value outside its fixed set of legal values.
	KindUnknownEnum Kind = "unknown_enum"
	// KindPathTraversal marks a path containing an upward-traversal segment.
	KindPathTraversal Kind = "path_traversal"
	// KindDuplicateKey marks a repeated mapping key that must be unique.
	KindDuplicateKey Kind = "duplicate_key"
)

// ValidationError is one collected failure: the dotted field path, the
// offending raw value, and the violated constraint.
type ValidationError struct {
	Kind       Kind
	Path       string
	Value      any
	Constraint string
}

func (e ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", e.Path, e.Constraint)
	}
	return fmt.Sprintf("%s: %s (got %v)", e.Path, e.Constraint, e.Value)
}

// Result accumulates validation errors and warnings for one document.
type Result struct {
	Errors   []ValidationError
	Warnings []string
}

// IsValid reports whether no errors were collected.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// AddError appends a collected failure.
func (r *Result) AddError(kind Kind, path string, value any, constraint string) {
	r.Errors = append(r.Errors, ValidationError{Kind: kind, Path: path, Value: value, Constraint: constraint})
}

// AddWarning appends an advisory message.
func (r *Result) AddWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Merge appends the errors and warnings of other.
func (r *Result) Merge(other *Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}
