// Package common provides shared constants, types, and utilities
// used across the IP Applet application.
package common

import "errors"

// Sentinel errors for applet operations.
// These can be checked with errors.Is() for proper error handling.
var (
	// Configuration errors.
	ErrConfigLoad             = errors.New("failed to load configuration")
	ErrConfigSave             = errors.New("failed to save configuration")
	ErrInvalidService         = errors.New("unknown public IP service")
	ErrInvalidColor           = errors.New("unknown text color")
	ErrInvalidRefreshInterval = errors.New("unsupported refresh interval")

	// Collaborator errors.
	ErrHistoryUnavailable  = errors.New("address history unavailable")
	ErrNotifierUnavailable = errors.New("notification service unavailable")
	ErrNoDisplay           = errors.New("no graphical display available")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
