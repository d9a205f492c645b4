// Package tui is a terminal rendition of the applet popup.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yllada/ip-applet/applet"
	"github.com/yllada/ip-applet/common"
)

// Run drives a from a full-screen terminal view until the user quits or
// ctx is done.
func Run(ctx context.Context, a *applet.Applet, clip common.Clipboard) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := tea.NewProgram(newModel(a.Snapshot(), a, clip), tea.WithAltScreen())

	go func() {
		a.Subscribe(func(s applet.Snapshot) {
			prog.Send(snapshotMsg(s))
		})
	}()

	done := make(chan error, 1)
	go func() {
		done <- a.Run(ctx)
	}()

	go func() {
		<-ctx.Done()
		prog.Quit()
	}()

	_, err := prog.Run()
	cancel()
	if loopErr := <-done; err == nil {
		err = loopErr
	}
	return err
}
