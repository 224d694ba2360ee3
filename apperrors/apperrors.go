package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure so controllers can map it to an HTTP status
// without inspecting message text.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindInvalidState Kind = "invalid_state"
	KindDuplicate    Kind = "duplicate_code"
	KindConflict     Kind = "conflict"
	KindDependency   Kind = "dependency_unavailable"
	KindInternal     Kind = "internal"
)

// AppError carries a kind, a short code and a caller-facing message.
type AppError struct {
	Kind    Kind   `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func New(kind Kind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

func Wrap(kind Kind, code, message string, err error) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message, Err: err}
}

func Validation(message string) *AppError {
	return New(KindValidation, "VALIDATION", message)
}

func NotFound(what string) *AppError {
	return New(KindNotFound, "NOT_FOUND", what+" not found")
}

func InvalidState(code, message string) *AppError {
	return New(KindInvalidState, code, message)
}

func DuplicateCode(message string) *AppError {
	return New(KindDuplicate, "DUPLICATE_CODE", message)
}

func Conflict(message string) *AppError {
	return New(KindConflict, "CONFLICT", message)
}

func Dependency(message string, err error) *AppError {
	return Wrap(KindDependency, "DEPENDENCY_UNAVAILABLE", message, err)
}

func Internal(err error) *AppError {
	return Wrap(KindInternal, "INTERNAL", "unexpected error", err)
}

// Codes for invalid-state failures in the receiving workflow.
const (
	CodeQANotPassed         = "QA_NOT_PASSED"
	CodeEmptyReceipt        = "EMPTY_RECEIPT"
	CodeMissingItemIdentity = "MISSING_ITEM_IDENTITY"
	CodeInvalidState        = "INVALID_STATE"
	CodeOverReceipt         = "OVER_RECEIPT"
)

// As extracts an *AppError from err, if any.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	if appErr, ok := As(err); ok {
		return appErr.Kind == kind
	}
	return false
}

// LineError pins a failure to one receipt line so the caller can fix input.
type LineError struct {
	Line    int    `json:"line"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
	Code    string `json:"code"`
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d [%s]: %s", e.Line, e.Field, e.Message)
}

// LineErrors aggregates every failing line of one request. Validation
// reports all failures at once, not just the first.
type LineErrors struct {
	Errors []LineError `json:"errors"`
}

func (e *LineErrors) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, le := range e.Errors {
		msgs = append(msgs, le.Error())
	}
	return strings.Join(msgs, "; ")
}

func (e *LineErrors) Add(line int, field, message string, kind Kind, code string) {
	e.Errors = append(e.Errors, LineError{Line: line, Field: field, Message: message, Kind: kind, Code: code})
}

func (e *LineErrors) HasErrors() bool { return len(e.Errors) > 0 }

// Kind of the aggregate: invalid-state failures dominate plain
// validation ones when both are present.
func (e *LineErrors) WorstKind() Kind {
	worst := KindValidation
	for _, le := range e.Errors {
		if le.Kind == KindInvalidState {
			worst = KindInvalidState
		}
	}
	return worst
}
