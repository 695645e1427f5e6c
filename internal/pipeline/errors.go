package pipeline

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a well-known error category raised by the engine.
// The taxonomy mirrors spec section 7 (error handling design).
type ErrorCode string

const (
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrCodeEvaluation      ErrorCode = "EVALUATION_ERROR"
	ErrCodeDuplicate       ErrorCode = "DUPLICATE_ID"
	ErrCodeDependency      ErrorCode = "DEPENDENCY_ERROR"
	ErrCodeCycle           ErrorCode = "CIRCULAR_DEPENDENCY"
	ErrCodeType            ErrorCode = "INVALID_TYPE"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeMissing         ErrorCode = "MISSING_REQUIRED"
	ErrCodeUnknownStep     ErrorCode = "UNKNOWN_STEP"
	ErrCodeBadArgs         ErrorCode = "BAD_ARGS"
	ErrCodeResourceLimit   ErrorCode = "RESOURCE_LIMIT_VIOLATED"
	ErrCodeMissingService  ErrorCode = "MISSING_SERVICE"
	ErrCodeMissingSecret   ErrorCode = "MISSING_SECRET"
	ErrCodeTypeMismatch    ErrorCode = "TYPE_MISMATCH"
	ErrCodeSourceRetrieval ErrorCode = "SOURCE_RETRIEVAL_ERROR"
	ErrCodeExecution       ErrorCode = "EXECUTION_ERROR"
	ErrCodeCancelled       ErrorCode = "CANCELLED"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// EngineError is a typed error enriched with contextual metadata. It is the
// single error representation used across every core package so that callers
// can always recover the failing code and its associated key/value context
// via errors.As, regardless of which layer raised it.
type EngineError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *EngineError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As usage.
func (e *EngineError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is allows errors.Is comparisons based on error code alone.
func (e *EngineError) Is(target error) bool {
	var other *EngineError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// WithContext returns a copy of the error with additional context merged in.
func (e *EngineError) WithContext(ctx map[string]interface{}) *EngineError {
	if e == nil {
		return nil
	}
	merged := make(map[string]interface{}, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}
	return &EngineError{Code: e.Code, Message: e.Message, Cause: e.Cause, Context: merged}
}

// NewEngineError constructs an EngineError with the given code and message.
func NewEngineError(code ErrorCode, message string, cause error, context map[string]interface{}) *EngineError {
	return &EngineError{Code: code, Message: message, Cause: cause, Context: context}
}

// NewDuplicateStepError builds the registration-time "duplicate step" error
// (spec 4.F, "fails with duplicate step if name is already used").
func NewDuplicateStepError(name string) *EngineError {
	return NewEngineError(ErrCodeDuplicate, "duplicate step", nil, map[string]interface{}{"step": name})
}

// NewUnknownStepError builds the dispatch-time "unknown step" error (spec 4.F.1).
func NewUnknownStepError(name string) *EngineError {
	return NewEngineError(ErrCodeUnknownStep, "unknown step", nil, map[string]interface{}{"step": name})
}

// NewBadArgsError builds the dispatch-time "bad args" error (spec 4.F.2).
func NewBadArgsError(name, reason string) *EngineError {
	return NewEngineError(ErrCodeBadArgs, reason, nil, map[string]interface{}{"step": name})
}

// NewMissingServiceError builds the "missing service" error (spec 4.D), always
// including both the requested type/name and qualifier per spec 7.
func NewMissingServiceError(typeName, qualifier string) *EngineError {
	return NewEngineError(ErrCodeMissingService, "no such service", nil, map[string]interface{}{
		"type":      typeName,
		"qualifier": qualifier,
	})
}

// NewMissingSecretError builds the "missing secret" error (spec 4.I).
func NewMissingSecretError(id string) *EngineError {
	return NewEngineError(ErrCodeMissingSecret, "secret not bound", nil, map[string]interface{}{"id": id})
}

// NewSecretTypeMismatchError builds the "mismatched secret" error (spec 4.I),
// carrying both the actual and requested type names.
func NewSecretTypeMismatchError(id, requested, actual string) *EngineError {
	return NewEngineError(ErrCodeTypeMismatch, "mismatched secret", nil, map[string]interface{}{
		"id":        id,
		"requested": requested,
		"actual":    actual,
	})
}

// NewCancelledError builds the cancellation error (spec 5, 7).
func NewCancelledError(reason string) *EngineError {
	return NewEngineError(ErrCodeCancelled, reason, nil, nil)
}
