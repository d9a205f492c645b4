// Package common provides shared constants, types, and utilities
// used across the IP Applet application.
package common

import "time"

// Application metadata.
const (
	// AppID is the unique identifier for the application.
	AppID = "io.github.yllada.IPApplet"
	// AppName is the display name of the application.
	AppName = "IP Applet"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "ip-applet"
)

// File names used by the application.
const (
	ConfigFileName  = "config.yaml"
	HistoryFileName = "history.db"
	LogFileName     = "ip-applet.log"
)

// Display placeholders for the public address.
const (
	// PublicIPFetching is shown until the first public IP fetch completes.
	PublicIPFetching = "Fetching..."
	// PublicIPUnavailable is shown when a public IP fetch fails for any reason.
	PublicIPUnavailable = "Not available"
)

// Polling defaults.
const (
	// DefaultRefreshInterval is the poll period used when none is configured.
	DefaultRefreshInterval = 10 * time.Second
	// EventQueueSize bounds the applet event channel.
	EventQueueSize = 64
	// NotificationTimeout is how long desktop notifications stay visible.
	NotificationTimeout = 5 * time.Second
)

// RefreshIntervals lists the refresh periods, in seconds, offered to the user.
var RefreshIntervals = []uint{5, 10, 15, 30, 60}

// UI constants.
const (
	// PopupMinWidth is the minimum popup width.
	PopupMinWidth = 260
	// PopupMaxWidth is the maximum popup width.
	PopupMaxWidth = 360
	// SettingsHeight is the fixed height of the scrollable settings tab.
	SettingsHeight = 400
	// TrayIconSize is the size of the system tray icon.
	TrayIconSize = 22
	// PublicIPLabel titles the public address row.
	PublicIPLabel = "Public IP"
	// NoInterfacesText is shown when nothing is visible on the info tab.
	NoInterfacesText = "No active interfaces"
)
