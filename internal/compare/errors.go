package compare

import (
	"errors"
	"fmt"
)

// Error represents a failure surfaced by the comparison engine.
//
// The engine is total on well-formed input: alignment and synthesis never
// fail. The only legitimate failure surfaces are malformed input trees and
// revision markup missing mandatory metadata, so every Error carries a
// code from the fixed taxonomy below plus the tree position it was
// detected at.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Path locates the offending node in the tree, when known.
	Path string
}

// ErrorCode categorizes comparison errors.
type ErrorCode string

const (
	// ErrCodeMalformedDocument indicates an input tree violating structural
	// invariants (nil node, empty table, run with conflicting content).
	// Fatal: no partial result is produced.
	ErrCodeMalformedDocument ErrorCode = "MALFORMED_DOCUMENT"

	// ErrCodeUnsupportedContent indicates an embedded element that cannot
	// be treated even as an opaque unit (no identity at all).
	ErrCodeUnsupportedContent ErrorCode = "UNSUPPORTED_CONTENT"

	// ErrCodeUnrecognizedRevisionShape indicates a revision wrapper missing
	// mandatory metadata (author, date, or id) during extraction.
	ErrCodeUnrecognizedRevisionShape ErrorCode = "UNRECOGNIZED_REVISION_SHAPE"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (at %s)", e.Code, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsMalformedDocument returns true if the error is a malformed-document
// error. Uses errors.As to handle wrapped errors.
func IsMalformedDocument(err error) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeMalformedDocument
	}
	return false
}

// IsUnsupportedContent returns true if the error reports an embedded
// element the engine cannot compare. Uses errors.As to handle wrapped
// errors.
func IsUnsupportedContent(err error) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeUnsupportedContent
	}
	return false
}

// IsUnrecognizedRevisionShape returns true if the error reports revision
// markup missing mandatory metadata. Uses errors.As to handle wrapped
// errors.
func IsUnrecognizedRevisionShape(err error) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeUnrecognizedRevisionShape
	}
	return false
}

// NewMalformedDocumentError creates an Error for a structurally invalid
// input tree.
func NewMalformedDocumentError(cause error) *Error {
	return &Error{
		Code:    ErrCodeMalformedDocument,
		Message: cause.Error(),
	}
}

// NewUnsupportedContentError creates an Error for an embedded element
// with no comparison identity.
func NewUnsupportedContentError(path string) *Error {
	return &Error{
		Code:    ErrCodeUnsupportedContent,
		Message: "embedded object has no identity",
		Path:    path,
	}
}

// NewRevisionShapeError creates an Error for a wrapper missing a
// mandatory attribute.
func NewRevisionShapeError(path, missing string) *Error {
	return &Error{
		Code:    ErrCodeUnrecognizedRevisionShape,
		Message: fmt.Sprintf("revision wrapper missing %s", missing),
		Path:    path,
	}
}
