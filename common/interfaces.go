// Package common provides shared constants, types, and utilities
// used across the IP Applet application.
package common

import "context"

// InterfaceLister enumerates local interface addresses.
// Implementations return interface name -> IPv4 address and never fail;
// enumeration problems yield an empty map.
type InterfaceLister interface {
	Interfaces(ctx context.Context) map[string]string
}

// PublicIPFetcher resolves the host's public address through an HTTP service.
// Implementations return PublicIPUnavailable instead of an error.
type PublicIPFetcher interface {
	Fetch(ctx context.Context, url string) string
}

// Notifier defines the interface for sending notifications.
type Notifier interface {
	// Notify sends a notification with the given title and message.
	Notify(title, message string) error
}

// ObservationKind tells which source produced an address observation.
type ObservationKind string

const (
	ObservationInterface ObservationKind = "interface"
	ObservationPublic    ObservationKind = "public"
)

// Recorder persists address changes.
type Recorder interface {
	// Record stores one address observation.
	Record(kind ObservationKind, name, address string) error
}

// Clipboard writes text to the desktop clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// Logger defines the interface for structured logging.
type Logger interface {
	// Debug logs a debug message.
	Debug(msg string, args ...interface{})
	// Info logs an informational message.
	Info(msg string, args ...interface{})
	// Warn logs a warning message.
	Warn(msg string, args ...interface{})
	// Error logs an error message.
	Error(msg string, args ...interface{})
}
