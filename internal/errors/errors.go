// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package errors provides the structured error type shared by every uridoc package.
//
// Parse failures are reported with a Kind from the comment grammar taxonomy and carry
// their source location as attributes, so callers can decide per comment whether to
// skip or abort.
package errors

import (
	"errors"
	"fmt"
)

// Kind defines the category of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindInternal
	KindValidation
	KindWrongIndentation
	KindMissingContent
	KindMalformedKeyValue
	KindMissingURI
	KindUnsupportedTag
	KindDuplicateMethod
	KindIO
)

// Attribute keys used by the parser packages.
const (
	AttrFile       = "file"
	AttrLine       = "line"
	AttrTag        = "tag"
	AttrText       = "text"
	AttrSuggestion = "suggestion"
	AttrDiff       = "diff"
)

func (k Kind) String() string {
	switch k {
	case KindInternal:
		return "internal"
	case KindValidation:
		return "validation"
	case KindWrongIndentation:
		return "wrong_indentation"
	case KindMissingContent:
		return "missing_content"
	case KindMalformedKeyValue:
		return "malformed_key_value"
	case KindMissingURI:
		return "missing_uri"
	case KindUnsupportedTag:
		return "unsupported_tag"
	case KindDuplicateMethod:
		return "duplicate_method"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// IsParse reports whether the kind is one of the comment grammar failures.
func (k Kind) IsParse() bool {
	switch k {
	case KindWrongIndentation, KindMissingContent, KindMalformedKeyValue,
		KindMissingURI, KindUnsupportedTag, KindDuplicateMethod:
		return true
	}
	return false
}

// Error represents a structured error in uridoc.
type Error struct {
	Kind       Kind
	Message    string
	Underlying error
	Attributes map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Underlying)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// New creates a new Error of the specified kind.
func New(kind Kind, msg string) error {
	return &Error{
		Kind:    kind,
		Message: msg,
	}
}

// Errorf creates a new Error of the specified kind with a formatted message.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error as a new Error of the specified kind.
func Wrap(err error, kind Kind, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind:       kind,
		Message:    msg,
		Underlying: err,
	}
}

// Wrapf wraps an existing error as a new Error of the specified kind with a formatted message.
func Wrapf(err error, kind Kind, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind:       kind,
		Message:    fmt.Sprintf(format, args...),
		Underlying: err,
	}
}

// At creates a parse error of the given kind located at file:line.
// The location is both stored as attributes and appended to the message.
func At(kind Kind, file string, line int, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if file != "" {
		msg = fmt.Sprintf("%s in %s at line %d", msg, file, line)
	} else if line > 0 {
		msg = fmt.Sprintf("%s at line %d", msg, line)
	}
	return &Error{
		Kind:    kind,
		Message: msg,
		Attributes: map[string]any{
			AttrFile: file,
			AttrLine: line,
		},
	}
}

// Attr attaches an attribute to an error. If the error is not an *Error, it wraps it as KindInternal.
func Attr(err error, key string, val any) error {
	if err == nil {
		return nil
	}

	var e *Error
	if !errors.As(err, &e) {
		e = &Error{
			Kind:       KindInternal,
			Message:    err.Error(),
			Underlying: err,
		}
	}

	if e.Attributes == nil {
		e.Attributes = make(map[string]any)
	}
	e.Attributes[key] = val
	return e
}

// GetKind returns the Kind of the error, or KindUnknown if it's not a uridoc error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// GetAttributes returns all attributes associated with the error and its chain.
// Attributes closer to the top of the chain win.
func GetAttributes(err error) map[string]any {
	attrs := make(map[string]any)
	var e *Error

	tempErr := err
	for tempErr != nil {
		if errors.As(tempErr, &e) {
			for k, v := range e.Attributes {
				if _, ok := attrs[k]; !ok {
					attrs[k] = v
				}
			}
			tempErr = e.Underlying
		} else {
			break
		}
	}

	return attrs
}

// Location returns the source file and line recorded on err, if any.
func Location(err error) (string, int) {
	attrs := GetAttributes(err)
	file, _ := attrs[AttrFile].(string)
	line, _ := attrs[AttrLine].(int)
	return file, line
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target, and if so, sets target to that error value and returns true.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err, if err's type contains an Unwrap method returning error.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
