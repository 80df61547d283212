// Package resumedit provides custom error types for better error handling and reporting.
package resumedit

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError reports that a heading, table, contact line or section
// content the caller relies on is absent from the document
type NotFoundError struct {
	What    string
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.What)
}

// NewNotFoundError creates a new not-found error
func NewNotFoundError(what string) error {
	return &NotFoundError{What: what}
}

// EmptyInputError reports that no usable replacement text was provided
type EmptyInputError struct {
	What    string
	Message string
}

func (e *EmptyInputError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s cannot be empty", e.What)
}

// StructuralError reports that the document does not have the structure an
// edit needs, e.g. a bullet paragraph without properties to clone
type StructuralError struct {
	Operation string
	Message   string
}

func (e *StructuralError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("cannot %s: %s", e.Operation, e.Message)
	}
	return e.Message
}

// DocumentError represents an error during document operations
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *DocumentError) Error() string {
	if e.Path != "" && e.Cause != nil {
		return fmt.Sprintf("document error during %s of '%s': %v", e.Operation, e.Path, e.Cause)
	} else if e.Path != "" {
		return fmt.Sprintf("document error during %s of '%s'", e.Operation, e.Path)
	} else if e.Cause != nil {
		return fmt.Sprintf("document error during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("document error during %s", e.Operation)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError creates a new document error
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{
		Operation: operation,
		Path:      path,
		Cause:     cause,
	}
}

// Conditions raised by the bullet engine and the table locator. They are
// returned wrapped with the table index; match them with errors.Is.
var (
	ErrTableNotFound = &NotFoundError{What: "table", Message: "table not found in document body"}

	ErrNoBulletBlock = &StructuralError{
		Operation: "replace bullets",
		Message:   "no bullet block detected under this entry; not modifying to avoid breaking layout",
	}

	ErrEmptyReplacement = &EmptyInputError{What: "bullets", Message: "no new bullets provided"}

	ErrMissingListFormat = &StructuralError{
		Operation: "replace bullets",
		Message:   "template bullet paragraph has no paragraph properties; cannot preserve bullet formatting",
	}
)

// ContextError adds context to an existing error
type ContextError struct {
	Operation string
	Context   map[string]interface{}
	Cause     error
}

func (e *ContextError) Error() string {
	var contextParts []string
	for k, v := range e.Context {
		contextParts = append(contextParts, fmt.Sprintf("%s=%v", k, v))
	}

	if len(contextParts) > 0 {
		return fmt.Sprintf("%s [%s]: %v", e.Operation, strings.Join(contextParts, ", "), e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

func (e *ContextError) Unwrap() error {
	return e.Cause
}

// WithContext wraps an error with additional context
func WithContext(err error, operation string, context map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return &ContextError{
		Operation: operation,
		Context:   context,
		Cause:     err,
	}
}

// IsNotFound checks if an error is (or wraps) a not-found error
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsEmptyInput checks if an error is (or wraps) an empty-input error
func IsEmptyInput(err error) bool {
	var target *EmptyInputError
	return errors.As(err, &target)
}

// IsStructural checks if an error is (or wraps) a structural precondition error
func IsStructural(err error) bool {
	var target *StructuralError
	return errors.As(err, &target)
}

// IsDocumentError checks if an error is (or wraps) a document error
func IsDocumentError(err error) bool {
	var target *DocumentError
	return errors.As(err, &target)
}
