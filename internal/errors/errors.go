package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

/**
 * Custom error types for the sheet OCR pipeline.
 *
 * Every failure the pipeline can report carries an ErrorCode so the
 * entry point can map it to an exit status without string matching.
 */

// ErrorCode enum for structured error handling
type ErrorCode string

const (
	// Precondition errors
	ErrorSourceMissing  ErrorCode = "SOURCE_MISSING"
	ErrorMetadataFailed ErrorCode = "METADATA_FAILED"

	// Processing errors
	ErrorEnhanceFailed ErrorCode = "ENHANCE_FAILED"
	ErrorOCRFailed     ErrorCode = "OCR_FAILED"

	// Result errors
	ErrorEmptyRecognition ErrorCode = "EMPTY_RECOGNITION"
	ErrorNoQuestions      ErrorCode = "NO_QUESTIONS"
	ErrorWriteFailed      ErrorCode = "WRITE_FAILED"
)

// ProcessingError represents a structured pipeline error
type ProcessingError struct {
	Code      ErrorCode
	Message   string
	Timestamp time.Time
	Details   map[string]interface{}
	Cause     error
}

func (e *ProcessingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ProcessingError) Unwrap() error {
	return e.Cause
}

// Factory functions for common errors

func NewSourceMissingError(path string, cause error) *ProcessingError {
	return &ProcessingError{
		Code:      ErrorSourceMissing,
		Message:   fmt.Sprintf("Source image not found: %s", path),
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"image_path": path,
		},
		Cause: cause,
	}
}

func NewMetadataFailedError(path string, cause error) *ProcessingError {
	return &ProcessingError{
		Code:      ErrorMetadataFailed,
		Message:   fmt.Sprintf("Could not read image dimensions: %s", path),
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"image_path": path,
		},
		Cause: cause,
	}
}

func NewEnhanceFailedError(column string, cause error) *ProcessingError {
	return &ProcessingError{
		Code:      ErrorEnhanceFailed,
		Message:   fmt.Sprintf("Image enhancement failed for column: %s", column),
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"column": column,
		},
		Cause: cause,
	}
}

func NewOCRFailedError(column string, cause error) *ProcessingError {
	return &ProcessingError{
		Code:      ErrorOCRFailed,
		Message:   fmt.Sprintf("Text recognition failed for column: %s", column),
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"column": column,
		},
		Cause: cause,
	}
}

func NewEmptyRecognitionError() *ProcessingError {
	return &ProcessingError{
		Code:      ErrorEmptyRecognition,
		Message:   "Both columns produced empty text",
		Timestamp: time.Now(),
	}
}

func NewNoQuestionsError(textLength int) *ProcessingError {
	return &ProcessingError{
		Code:      ErrorNoQuestions,
		Message:   "Recognized text contained no parseable questions",
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"text_length": textLength,
		},
	}
}

func NewWriteFailedError(path string, cause error) *ProcessingError {
	return &ProcessingError{
		Code:      ErrorWriteFailed,
		Message:   fmt.Sprintf("Failed to write result document: %s", path),
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"output_path": path,
		},
		Cause: cause,
	}
}

// CodeOf returns the ErrorCode carried by err, or "" when err is not a
// ProcessingError.
func CodeOf(err error) ErrorCode {
	var pe *ProcessingError
	if stderrors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
