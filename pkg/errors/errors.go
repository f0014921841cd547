// Package errors provides structured error handling for Stakeview.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess  = 0 // Successful execution
	ExitGeneral  = 1 // General/unknown error
	ExitInput    = 2 // Invalid input
	ExitNetwork  = 3 // Chain provider unreachable or rejected the request
	ExitNotFound = 4 // Resource not found
)

// StakeviewError is the structured error type for Stakeview.
type StakeviewError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *StakeviewError) Error() string {
	msg := e.Message

	// sorted for deterministic output
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *StakeviewError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for StakeviewError.
func (e *StakeviewError) Is(target error) bool {
	var t *StakeviewError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &StakeviewError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &StakeviewError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	ErrNotFound = &StakeviewError{
		Code:     "NOT_FOUND",
		Message:  "resource not found",
		ExitCode: ExitNotFound,
	}

	// Chain-specific errors.
	ErrInvalidAddress = &StakeviewError{
		Code:     "INVALID_ADDRESS",
		Message:  "invalid address format",
		ExitCode: ExitInput,
	}

	ErrNetworkError = &StakeviewError{
		Code:     "NETWORK_ERROR",
		Message:  "network communication failed",
		ExitCode: ExitNetwork,
	}

	ErrUnknownCluster = &StakeviewError{
		Code:     "UNKNOWN_CLUSTER",
		Message:  "unknown cluster",
		ExitCode: ExitInput,
	}

	ErrDecodeFailed = &StakeviewError{
		Code:     "DECODE_FAILED",
		Message:  "account data could not be decoded",
		ExitCode: ExitGeneral,
	}

	// ErrFetchFailed covers every way the stake pool fetch can fail.
	ErrFetchFailed = &StakeviewError{
		Code:     "FETCH_FAILED",
		Message:  "failed to fetch stake pools",
		ExitCode: ExitNetwork,
	}

	// Pool-specific errors.
	ErrPoolNotFound = &StakeviewError{
		Code:     "POOL_NOT_FOUND",
		Message:  "stake pool not found",
		ExitCode: ExitNotFound,
	}

	ErrMetadataInvalid = &StakeviewError{
		Code:     "METADATA_INVALID",
		Message:  "stake pool metadata table is invalid",
		ExitCode: ExitInput,
	}

	// Config-specific errors.
	ErrConfigNotFound = &StakeviewError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitNotFound,
	}

	ErrConfigInvalid = &StakeviewError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}

	ErrInvalidFormat = &StakeviewError{
		Code:     "INVALID_FORMAT",
		Message:  "invalid format",
		ExitCode: ExitInput,
	}
)

// New creates a new StakeviewError with the given code and message.
func New(code, message string) *StakeviewError {
	return &StakeviewError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var se *StakeviewError
	if errors.As(err, &se) {
		return &StakeviewError{
			Code:       se.Code,
			Message:    fmt.Sprintf("%s: %s", msg, se.Message),
			Details:    se.Details,
			Suggestion: se.Suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
		}
	}

	return &StakeviewError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithCause returns a copy of the sentinel carrying cause as its underlying error.
func WithCause(sentinel *StakeviewError, cause error) error {
	if cause == nil {
		return sentinel
	}
	return &StakeviewError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Details:    sentinel.Details,
		Suggestion: sentinel.Suggestion,
		Cause:      cause,
		ExitCode:   sentinel.ExitCode,
	}
}

// WithDetails adds details to an error. Keys already present on a
// StakeviewError are kept unless details overrides them.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var se *StakeviewError
	if errors.As(err, &se) {
		merged := make(map[string]string, len(se.Details)+len(details))
		for k, v := range se.Details {
			merged[k] = v
		}
		for k, v := range details {
			merged[k] = v
		}
		return &StakeviewError{
			Code:       se.Code,
			Message:    se.Message,
			Details:    merged,
			Suggestion: se.Suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
		}
	}

	return &StakeviewError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var se *StakeviewError
	if errors.As(err, &se) {
		return &StakeviewError{
			Code:       se.Code,
			Message:    se.Message,
			Details:    se.Details,
			Suggestion: suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
		}
	}

	return &StakeviewError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var se *StakeviewError
	if errors.As(err, &se) {
		return se.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var se *StakeviewError
	if errors.As(err, &se) {
		return se.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
