// Package common provides shared constants, types, utilities, and interfaces
// used throughout the IP Applet application.
//
// This package serves as the foundation for cross-cutting concerns:
//
//   - Constants: placeholders, refresh intervals, file names and UI sizes
//   - Errors: Sentinel errors for consistent error handling across packages
//   - Interfaces: pollers, notifier, history recorder, clipboard and logger
//   - Logger: leveled logging with optional rotated file output
//   - Utils: config/data directories and small slice helpers
//
// # Usage
//
//	import "github.com/yllada/ip-applet/common"
//
//	common.LogInfo("Public IP changed to %s", ip)
//
//	if errors.Is(err, common.ErrInvalidService) {
//	    // fall back to the default service
//	}
package common
