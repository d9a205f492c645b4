// Package main provides the entry point for the IP Applet application.
// IP Applet is a GTK4 tray applet for Linux that shows the IPv4 addresses
// of the local network interfaces and the host's public IP address.
//
// Features:
//   - Per-interface visibility with automatic enabling of new interfaces
//   - Public IP lookup through one of four plain-text services
//   - Copy-to-clipboard for every address
//   - Desktop notifications and a local history of address changes
//   - Terminal popup and one-shot output for scripting
//
// Usage:
//
//	ip-applet [options]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/yllada/ip-applet/applet"
	"github.com/yllada/ip-applet/cli"
	"github.com/yllada/ip-applet/common"
	"github.com/yllada/ip-applet/config"
	"github.com/yllada/ip-applet/history"
	"github.com/yllada/ip-applet/netinfo"
	"github.com/yllada/ip-applet/tui"
	"github.com/yllada/ip-applet/ui"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

var (
	// GUI/General flags
	showVersion = flag.Bool("version", false, "Show version and exit")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	showHelp    = flag.Bool("help", false, "Show help message")
	noNotify    = flag.Bool("no-notify", false, "Do not send desktop notifications")
	noHistory   = flag.Bool("no-history", false, "Do not record address changes")

	// Terminal flags
	runTUI       = flag.Bool("tui", false, "Run the popup in the terminal")
	once         = flag.Bool("once", false, "Print the addresses once and exit")
	historyCount = flag.Int("history", 0, "Show the last N recorded address changes")
	configure    = flag.Bool("configure", false, "Edit preferences interactively")
	listServices = flag.Bool("services", false, "List the public IP services")
)

func main() {
	flag.Parse()

	// Handle help flag
	if *showHelp {
		cli.PrintHelp()
		os.Exit(0)
	}

	// Handle version flag
	if *showVersion {
		fmt.Printf("%s v%s\n", common.AppName, appVersion)
		if buildTime != "unknown" {
			fmt.Printf("  Build:  %s\n", buildTime)
			fmt.Printf("  Commit: %s\n", commitSHA)
		}
		os.Exit(0)
	}

	terminalMode := *runTUI || *once || *historyCount > 0 || *configure || *listServices

	// Initialize logger with structured logging and file output
	logLevel := common.LevelInfo
	if *verbose {
		logLevel = common.LevelDebug
	}

	logConfig := common.LogConfig{
		Level:       logLevel,
		EnableFile:  true,
		MaxFileSize: 5 * 1024 * 1024, // 5MB
		MaxBackups:  5,
	}
	// Keep the terminal clean unless asked for logs.
	if terminalMode && !*verbose {
		logConfig.Console = io.Discard
	}
	if err := common.InitLogger(logConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize file logging: %v\n", err)
	}
	defer common.CloseLogger()

	// Setup graceful shutdown context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals (SIGINT, SIGTERM)
	setupSignalHandler(cancel)

	store, prefs := loadPreferences()

	if terminalMode {
		os.Exit(runTerminal(ctx, store, prefs))
	}

	// Start the GTK application (GUI mode)
	common.LogInfo("Starting %s v%s", common.AppName, appVersion)
	a, closeAll := newApplet(store, prefs, !*noNotify, !*noHistory)
	defer closeAll()

	app := ui.NewApplication(ctx, common.AppID, appVersion, a)
	// Flags are ours; GTK only gets the program name.
	exitCode := app.Run(os.Args[:1])

	if exitCode != 0 {
		common.LogWarn("Application exited with code %d", exitCode)
	}
	closeAll()
	common.CloseLogger()
	os.Exit(exitCode)
}

// runTerminal handles the terminal modes and returns the exit code.
func runTerminal(ctx context.Context, store *config.Store, prefs *config.Preferences) int {
	c := cli.New(os.Stdout)
	var err error

	switch {
	case *listServices:
		err = c.Services(prefs)

	case *historyCount > 0:
		var h *history.Store
		h, err = history.OpenDefault()
		if err == nil {
			err = c.History(ctx, h, *historyCount)
			h.Close()
		}

	case *configure:
		observed := netinfo.NewEnumerator().Interfaces(ctx)
		err = c.Configure(prefs, observed, saverFor(store))

	case *once:
		a, closeAll := newApplet(store, prefs, false, !*noHistory)
		err = c.Once(ctx, a)
		closeAll()

	case *runTUI:
		a, closeAll := newApplet(store, prefs, !*noNotify, !*noHistory)
		err = tui.Run(ctx, a, ui.NewSystemClipboard())
		closeAll()
	}

	if err != nil {
		common.LogError("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadPreferences reads the stored preferences, falling back to defaults.
// store is nil when no config directory is available.
func loadPreferences() (*config.Store, *config.Preferences) {
	store, err := config.DefaultStore()
	if err != nil {
		common.LogWarn("Preferences will not be saved: %v", err)
		return nil, config.DefaultPreferences()
	}

	prefs, err := store.Load()
	if err != nil {
		// The store keeps the unreadable file and refuses to overwrite it.
		common.LogWarn("Using default preferences, changes will not be saved: %v", err)
		return store, config.DefaultPreferences()
	}
	return store, prefs
}

// saverFor avoids handing a typed nil store to the applet.
func saverFor(store *config.Store) applet.PreferenceSaver {
	if store == nil {
		return nil
	}
	return store
}

// newApplet wires the applet to the system. The returned function releases
// the optional notifier and history database.
func newApplet(store *config.Store, prefs *config.Preferences, notify, record bool) (*applet.Applet, func()) {
	opts := applet.Options{
		Interfaces: netinfo.NewEnumerator(),
		PublicIP:   netinfo.NewPublicIPClient(nil),
		Store:      saverFor(store),
	}

	var closers []func() error

	if notify {
		if n, err := ui.NewDBusNotifier(); err != nil {
			common.LogWarn("Notifications disabled: %v", err)
		} else {
			opts.Notifier = n
			closers = append(closers, n.Close)
		}
	}

	if record {
		if h, err := history.OpenDefault(); err != nil {
			common.LogWarn("History disabled: %v", err)
		} else {
			opts.History = h
			closers = append(closers, h.Close)
		}
	}

	closed := false
	return applet.New(prefs, opts), func() {
		if closed {
			return
		}
		closed = true
		for _, c := range closers {
			if err := c(); err != nil {
				common.LogDebug("Close failed: %v", err)
			}
		}
	}
}

// setupSignalHandler configures graceful shutdown on SIGINT/SIGTERM.
// When a signal is received, it cancels the context to allow cleanup.
func setupSignalHandler(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		common.LogInfo("Received signal %v, initiating graceful shutdown...", sig)
		cancel()
	}()
}
