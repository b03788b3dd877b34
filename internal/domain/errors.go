package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain layer.
var (
	ErrUnconfigured  = fmt.Errorf("configuration incomplete")
	ErrEmptyInput    = fmt.Errorf("selection is empty")
	ErrSpawnFailed   = fmt.Errorf("runner process could not start")
	ErrProcessFailed = fmt.Errorf("runner process failed")
	ErrNoJSONFound   = fmt.Errorf("no JSON array found in runner output")
	ErrParse         = fmt.Errorf("runner output is not a valid tenant list")
	ErrEmptyList     = fmt.Errorf("runner returned no tenants")

	// ErrCancelled is the neutral outcome for a user abandoning the tenant
	// picker. It is never rendered as an error.
	ErrCancelled = fmt.Errorf("cancelled")
)

// DomainError wraps a sentinel error with context.
type DomainError struct {
	Op     string // operation name (e.g., "Flow.FetchTenants")
	Err    error  // underlying sentinel or wrapped error
	Detail string // human-readable detail
}

func (e *DomainError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewDomainError creates a new DomainError.
func NewDomainError(op string, err error, detail string) *DomainError {
	return &DomainError{Op: op, Err: err, Detail: detail}
}

// WrapOp adds operation context to an error using fmt.Errorf wrapping.
// Returns nil if err is nil, enabling idiomatic use: return domain.WrapOp("op", err)
func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ErrorCode is a machine-parseable error category for log fields and monitoring.
type ErrorCode string

const (
	CodeUnknown       ErrorCode = "UNKNOWN"
	CodeUnconfigured  ErrorCode = "CONFIG"
	CodeEmptyInput    ErrorCode = "EMPTY_INPUT"
	CodeSpawnFailed   ErrorCode = "SPAWN_FAILED"
	CodeProcessFailed ErrorCode = "PROCESS_FAILED"
	CodeNoJSONFound   ErrorCode = "NO_JSON_FOUND"
	CodeParse         ErrorCode = "PARSE"
	CodeEmptyList     ErrorCode = "EMPTY_LIST"
	CodeCancelled     ErrorCode = "CANCELLED"
)

// errorCodeMap maps sentinel errors to their machine-parseable codes.
var errorCodeMap = map[error]ErrorCode{
	ErrUnconfigured:  CodeUnconfigured,
	ErrEmptyInput:    CodeEmptyInput,
	ErrSpawnFailed:   CodeSpawnFailed,
	ErrProcessFailed: CodeProcessFailed,
	ErrNoJSONFound:   CodeNoJSONFound,
	ErrParse:         CodeParse,
	ErrEmptyList:     CodeEmptyList,
	ErrCancelled:     CodeCancelled,
}

// ErrorCodeOf returns the machine-parseable error code for the given error.
// It unwraps DomainError and uses errors.Is to match sentinel errors.
// Returns CodeUnknown if no matching sentinel is found.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	// Fast path: direct sentinel lookup.
	if code, ok := errorCodeMap[err]; ok {
		return code
	}

	var de *DomainError
	if errors.As(err, &de) {
		if code, ok := errorCodeMap[de.Err]; ok {
			return code
		}
	}

	// Walk the error chain with errors.Is.
	for sentinel, code := range errorCodeMap {
		if errors.Is(err, sentinel) {
			return code
		}
	}

	return CodeUnknown
}
