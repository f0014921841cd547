package output

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	sverr "github.com/mrz1836/stakeview/pkg/errors"
)

// ErrorOutput represents a structured error for JSON output.
type ErrorOutput struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details.
type ErrorDetail struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	Cause      string            `json:"cause,omitempty"`
	ExitCode   int               `json:"exit_code"`
}

// NewErrorOutput converts err to its structured form.
func NewErrorOutput(err error) ErrorOutput {
	var se *sverr.StakeviewError
	if errors.As(err, &se) {
		detail := ErrorDetail{
			Code:       se.Code,
			Message:    se.Message,
			Details:    se.Details,
			Suggestion: se.Suggestion,
			ExitCode:   se.ExitCode,
		}
		if se.Cause != nil {
			detail.Cause = se.Cause.Error()
		}
		return ErrorOutput{Error: detail}
	}
	return ErrorOutput{Error: ErrorDetail{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		ExitCode: sverr.ExitGeneral,
	}}
}

// FormatError formats an error for display.
func FormatError(w io.Writer, err error, format Format) error {
	if err == nil {
		return nil
	}
	out := NewErrorOutput(err)
	if format == FormatJSON {
		return writeJSON(w, out)
	}

	var sb strings.Builder
	d := out.Error
	if d.Cause != "" {
		sb.WriteString(fmt.Sprintf("Error: %s: %s\n", d.Message, d.Cause))
	} else {
		sb.WriteString(fmt.Sprintf("Error: %s\n", d.Message))
	}

	if len(d.Details) > 0 {
		keys := make([]string, 0, len(d.Details))
		for k := range d.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString("\nDetails:\n")
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, d.Details[k]))
		}
	}

	if d.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\nSuggestion: %s\n", d.Suggestion))
	}

	_, writeErr := io.WriteString(w, sb.String())
	return writeErr
}

// FormatSuccess formats a success message.
func FormatSuccess(w io.Writer, message string, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, map[string]string{"status": "success", "message": message})
	}
	_, err := fmt.Fprintln(w, message)
	return err
}
