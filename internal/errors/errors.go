package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// CacheCorrupt indicates the persisted cache could not be decoded
	CacheCorrupt ErrorCode = "CACHE_CORRUPT"
	// PersistFailed indicates the cache could not be written to disk
	PersistFailed ErrorCode = "PERSIST_FAILED"
	// AnalysisFailed indicates symbol extraction failed for a file
	AnalysisFailed ErrorCode = "ANALYSIS_FAILED"
	// FileVanished indicates a file disappeared between discovery and analysis
	FileVanished ErrorCode = "FILE_VANISHED"
	// NotGitRepo indicates the tree is not under version control
	NotGitRepo ErrorCode = "NOT_GIT_REPO"
	// ConfigInvalid indicates a malformed configuration file
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// SymdexError represents a symdex error with code, message, and suggestions
type SymdexError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new SymdexError
func New(code ErrorCode, message string, cause error, suggestedFixes []FixAction) *SymdexError {
	return &SymdexError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: suggestedFixes,
	}
}

// Error implements the error interface
func (e *SymdexError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *SymdexError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *SymdexError) WithDetails(details interface{}) *SymdexError {
	e.Details = details
	return e
}

// CodeOf extracts the error code from an error, if it is a SymdexError.
func CodeOf(err error) (ErrorCode, bool) {
	var se *SymdexError
	if As(err, &se) {
		return se.Code, true
	}
	return "", false
}
