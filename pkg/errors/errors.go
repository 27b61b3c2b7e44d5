package errors

import "fmt"

// Error codes
const (
	CodePipelineError = "PIPELINE_ERROR"
	CodeAPIError      = "API_ERROR"
	CodeValidation    = "VALIDATION_ERROR"
	CodeSchema        = "SCHEMA_ERROR"
	CodeCache         = "CACHE_ERROR"
	CodePublish       = "PUBLISH_ERROR"
)

type PulseError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *PulseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PulseError) Unwrap() error {
	return e.Cause
}

func NewPulseError(message, code string, statusCode int, context map[string]any) *PulseError {
	return &PulseError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *PulseError) WithCause(cause error) *PulseError {
	e.Cause = cause
	return e
}

type APIError struct {
	*PulseError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		PulseError: &PulseError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

type ValidationError struct {
	*PulseError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		PulseError: &PulseError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

// SchemaError marks an unexpected remote-API response shape. A response that
// parses but lacks the fields we depend on is a data-integrity problem, not a
// transient one, so it is never retried.
type SchemaError struct {
	*APIError
}

func NewSchemaError(message string, context map[string]any) *SchemaError {
	return &SchemaError{
		APIError: &APIError{
			PulseError: &PulseError{
				Message:    message,
				Code:       CodeSchema,
				StatusCode: 502,
				Context:    context,
			},
		},
	}
}

func IsSchemaError(err error) bool {
	_, ok := err.(*SchemaError)
	return ok
}

type CacheError struct {
	*PulseError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		PulseError: &PulseError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

type PipelineError struct {
	*PulseError
	Stage string
}

func NewPipelineError(message, stage string, cause error) *PipelineError {
	return &PipelineError{
		PulseError: &PulseError{
			Message:    message,
			Code:       CodePipelineError,
			StatusCode: 500,
			Context: map[string]any{
				"stage": stage,
			},
			Cause: cause,
		},
		Stage: stage,
	}
}

type PublishError struct {
	*PulseError
	Path string
}

func NewPublishError(message, path string, cause error) *PublishError {
	return &PublishError{
		PulseError: &PulseError{
			Message:    message,
			Code:       CodePublish,
			StatusCode: 500,
			Context: map[string]any{
				"path": path,
			},
			Cause: cause,
		},
		Path: path,
	}
}
