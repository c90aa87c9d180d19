package cli

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/HamzaOussama/plantX/internal/errors"
)

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --json output should use this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	Cause      string `json:"cause,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "CONFIG_INVALID"
	ErrCodeFetchFailed    = "FETCH_FAILED"
	ErrCodeCommandFailed  = "COMMAND_FAILED"
	ErrCodeBadResponse    = "BAD_RESPONSE"
	ErrCodeUnknown        = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: true,
		Data:    data,
	})
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: false,
		Error:   ErrorToJSON(err),
	})
}

// writeJSONEnvelope writes the envelope with consistent formatting.
func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	plantErr, ok := err.(*errors.Error)
	if !ok {
		return &JSONError{
			Code:    ErrCodeUnknown,
			Message: err.Error(),
		}
	}

	out := &JSONError{
		Code:       mapErrorCode(plantErr),
		Message:    plantErr.Message,
		Suggestion: plantErr.Suggestion,
	}
	if plantErr.Cause != nil {
		out.Cause = plantErr.Cause.Error()
	}
	return out
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(err *errors.Error) string {
	switch err.Code {
	case errors.ErrConfig:
		if strings.Contains(strings.ToLower(err.Message), "not found") {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	case errors.ErrFetch:
		return ErrCodeFetchFailed
	case errors.ErrDispatch:
		if errors.IsCode(err.Cause, errors.ErrDecode) {
			return ErrCodeBadResponse
		}
		return ErrCodeCommandFailed
	case errors.ErrDecode:
		return ErrCodeBadResponse
	}
	return ErrCodeUnknown
}
