// Package errors provides standardized error values for the advisory services
// and their mapping onto the HTTP boundary.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeIntentClassificationFailed ErrorCode = "INTENT_CLASSIFICATION_FAILED"
	ErrCodeEntityExtractionFailed     ErrorCode = "ENTITY_EXTRACTION_FAILED"

	ErrCodeSnapshotInvalid       ErrorCode = "SNAPSHOT_INVALID"
	ErrCodeConversationNotFound  ErrorCode = "CONVERSATION_NOT_FOUND"
	ErrCodeMemoryBackendFailed   ErrorCode = "MEMORY_BACKEND_FAILED"
	ErrCodeTurnProcessingFailed  ErrorCode = "TURN_PROCESSING_FAILED"
	ErrCodeArchiveIndexingFailed ErrorCode = "ARCHIVE_INDEXING_FAILED"

	ErrCodeLLMTimeout          ErrorCode = "LLM_TIMEOUT"
	ErrCodeLLMGenerationFailed ErrorCode = "LLM_GENERATION_FAILED"
	ErrCodeLLMNotConfigured    ErrorCode = "LLM_NOT_CONFIGURED"

	ErrCodePredictionFailed         ErrorCode = "PREDICTION_FAILED"
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"

	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrCodeInternal       ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata returns e with key set in its metadata.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func NewIntentClassificationFailedError(err error) *StandardError {
	return newError(ErrCodeIntentClassificationFailed, "Intent classification failed", err.Error(), false)
}

func NewEntityExtractionFailedError(err error) *StandardError {
	return newError(ErrCodeEntityExtractionFailed, "Entity extraction failed", err.Error(), false)
}

func NewSnapshotInvalidError(details string) *StandardError {
	return newError(ErrCodeSnapshotInvalid, "Conversation snapshot rejected", details, false)
}

func NewConversationNotFoundError(userID string) *StandardError {
	return newError(ErrCodeConversationNotFound, "Conversation not found", fmt.Sprintf("userId: %s", userID), false)
}

// NewMemoryBackendFailedError is retryable: the backing store is usually Redis.
func NewMemoryBackendFailedError(op string, err error) *StandardError {
	return newError(ErrCodeMemoryBackendFailed, "Conversation store error", fmt.Sprintf("op: %s, error: %s", op, err.Error()), true)
}

func NewTurnProcessingFailedError(err error) *StandardError {
	return newError(ErrCodeTurnProcessingFailed, "Turn processing failed", err.Error(), true)
}

func NewArchiveIndexingFailedError(err error) *StandardError {
	return newError(ErrCodeArchiveIndexingFailed, "Turn archive indexing failed", err.Error(), true)
}

func NewLLMTimeoutError() *StandardError {
	return newError(ErrCodeLLMTimeout, "LLM generation timeout", "LLM call exceeded the configured timeout", true)
}

func NewLLMGenerationFailedError(err error) *StandardError {
	return newError(ErrCodeLLMGenerationFailed, "LLM generation API error", err.Error(), true)
}

func NewLLMNotConfiguredError(provider string) *StandardError {
	return newError(ErrCodeLLMNotConfigured, "LLM provider has no credential", fmt.Sprintf("provider: %s", provider), false)
}

func NewPredictionFailedError(model string, err error) *StandardError {
	return newError(ErrCodePredictionFailed, "Model prediction failed", fmt.Sprintf("model: %s, error: %s", model, err.Error()), true)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true)
}

func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query execution error", fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()), true)
}

func NewInvalidRequestError(details string) *StandardError {
	return newError(ErrCodeInvalidRequest, "Invalid request", details, false)
}

// ==========================
// 3. Classification helpers
// ==========================

// AsStandardError unwraps err into a StandardError, normalizing unknown errors
// to INTERNAL_ERROR.
func AsStandardError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeMemoryBackendFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeArchiveIndexingFailed,
		ErrCodeLLMGenerationFailed:
		return 3
	case ErrCodePredictionFailed, ErrCodeTurnProcessingFailed:
		return 2
	case ErrCodeLLMTimeout:
		return 1
	default:
		return 0
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "INTENT") || strings.Contains(codeStr, "ENTITY") || strings.Contains(codeStr, "LLM"):
		return "AI"
	case strings.Contains(codeStr, "SNAPSHOT") || strings.Contains(codeStr, "CONVERSATION") ||
		strings.Contains(codeStr, "MEMORY") || strings.Contains(codeStr, "TURN"):
		return "CONVERSATION"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "ARCHIVE"):
		return "SEARCH"
	case strings.Contains(codeStr, "PREDICTION"):
		return "MODEL"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}

// HTTPStatus maps an error code onto the status the HTTP boundary returns.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest, ErrCodeSnapshotInvalid:
		return http.StatusBadRequest
	case ErrCodeConversationNotFound:
		return http.StatusNotFound
	case ErrCodeMemoryBackendFailed, ErrCodeDatabaseConnectionFailed, ErrCodeArchiveIndexingFailed:
		return http.StatusServiceUnavailable
	case ErrCodeLLMTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
