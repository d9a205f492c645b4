// Package cli provides the command-line modes of IP Applet.
// They print addresses, history and services from the terminal without
// launching the GUI application.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/yllada/ip-applet/applet"
	"github.com/yllada/ip-applet/common"
	"github.com/yllada/ip-applet/config"
	"github.com/yllada/ip-applet/history"
)

// HistorySource returns recorded observations, newest first.
type HistorySource interface {
	Recent(ctx context.Context, limit int) ([]history.Observation, error)
}

// CLI represents the command-line interface.
type CLI struct {
	out   io.Writer
	color bool
}

// New creates a CLI writing to out. Colours are used when out is a terminal.
func New(out io.Writer) *CLI {
	color := false
	if f, ok := out.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &CLI{out: out, color: color}
}

// Once polls both sources a single time and prints the info view.
func (c *CLI) Once(ctx context.Context, a *applet.Applet) error {
	c.PrintSnapshot(a.RefreshOnce(ctx))
	return nil
}

// PrintSnapshot prints the visible addresses of s, one per line.
func (c *CLI) PrintSnapshot(s applet.Snapshot) {
	if s.Empty() {
		fmt.Fprintln(c.out, common.NoInterfacesText)
		return
	}

	lines := s.Lines()
	width := 0
	for _, line := range lines {
		width = max(width, len(line.Name))
	}

	value := lipgloss.NewStyle()
	if rgb, ok := s.TextColor.RGB(); ok && c.color {
		value = value.Foreground(lipgloss.Color(rgb.Hex()))
	}
	name := lipgloss.NewStyle()
	if c.color {
		name = name.Bold(true)
	}

	for _, line := range lines {
		fmt.Fprintf(c.out, "%s  %s\n",
			name.Render(fmt.Sprintf("%-*s", width, line.Name)),
			value.Render(line.Address))
	}
}

// History prints the latest limit recorded observations.
func (c *CLI) History(ctx context.Context, src HistorySource, limit int) error {
	observations, err := src.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(observations) == 0 {
		fmt.Fprintln(c.out, "No address changes recorded.")
		return nil
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tKIND\tNAME\tADDRESS\tSESSION")
	fmt.Fprintln(w, "----\t----\t----\t-------\t-------")

	for _, o := range observations {
		// Truncate session for display
		session := o.Session
		if len(session) > 8 {
			session = session[:8]
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			o.ObservedAt.Local().Format(time.DateTime), o.Kind, o.Name, o.Address, session)
	}

	return w.Flush()
}

// Services lists the public IP services, marking the selected one.
func (c *CLI) Services(prefs *config.Preferences) error {
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, " \tID\tNAME\tURL")

	for _, svc := range config.AllServices() {
		mark := " "
		if svc == prefs.PublicIPService {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", mark, svc.ID(), svc.Label(), svc.URL())
	}

	return w.Flush()
}

// PrintHelp prints CLI usage help.
func PrintHelp() {
	fmt.Println(`IP Applet - Local and public IP addresses at a glance

Usage:
  ip-applet [OPTIONS]

Options:
  --version         Show version and exit
  --verbose         Enable verbose logging
  --once            Print the addresses once and exit
  --tui             Run the popup in the terminal
  --configure       Edit preferences interactively
  --services        List the public IP services
  --history N       Show the last N recorded address changes
  --no-notify       Do not send desktop notifications
  --no-history      Do not record address changes
  --help            Show this help message

Examples:
  ip-applet
  ip-applet --once
  ip-applet --history 20

Notes:
  - Preferences are stored in ~/.config/ip-applet/config.yaml
  - Run without options to launch the tray applet`)
}
