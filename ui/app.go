package ui

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"fyne.io/systray"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/ip-applet/applet"
	"github.com/yllada/ip-applet/common"
)

// Application represents the GTK application hosting the popup and tray.
type Application struct {
	app       *gtk.Application
	applet    *applet.Applet
	clipboard common.Clipboard
	popup     *Popup
	tray      *TrayIndicator
	version   string
	ctx       context.Context
	cancel    context.CancelFunc
	quitOnce  sync.Once
}

// NewApplication creates a new application driving a.
func NewApplication(ctx context.Context, appID, version string, a *applet.Applet) *Application {
	app := gtk.NewApplication(appID, gio.ApplicationFlagsNone)

	ctx, cancel := context.WithCancel(ctx)
	application := &Application{
		app:       app,
		applet:    a,
		clipboard: NewSystemClipboard(),
		version:   version,
		ctx:       ctx,
		cancel:    cancel,
	}

	app.ConnectActivate(application.onActivate)
	app.ConnectShutdown(func() {
		application.cancel()
	})

	go func() {
		<-ctx.Done()
		glib.IdleAdd(application.Quit)
	}()

	return application
}

// Run runs the application
func (a *Application) Run(args []string) int {
	if os.Getenv("WAYLAND_DISPLAY") == "" && os.Getenv("DISPLAY") == "" {
		common.LogError("%v", common.ErrNoDisplay)
		return 1
	}
	return a.app.Run(args)
}

// onActivate is called when the application is activated
func (a *Application) onActivate() {
	if a.popup != nil {
		a.popup.Toggle()
		return
	}

	a.setupAppIcon()
	LoadStyles()

	a.popup = NewPopup(a)
	a.tray = NewTrayIndicator(a)

	// The popup starts hidden; keep the application alive without windows.
	a.app.Hold()

	a.applet.Subscribe(func(s applet.Snapshot) {
		a.tray.Update(s)
		glib.IdleAdd(func() {
			a.popup.Update(s)
		})
	})

	go a.tray.Run()
	go func() {
		if err := a.applet.Run(a.ctx); err != nil {
			common.LogError("Applet loop ended: %v", err)
		}
	}()

	common.LogInfo("%s v%s running", common.AppName, a.version)
}

// setupAppIcon sets up the application icon
func (a *Application) setupAppIcon() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	iconTheme := gtk.IconThemeGetForDisplay(display)
	if iconTheme == nil {
		return
	}

	if execPath, err := os.Executable(); err == nil {
		iconTheme.AddSearchPath(filepath.Join(filepath.Dir(execPath), "assets", "icons"))
	}

	gtk.WindowSetDefaultIconName("network-workgroup-symbolic")
}

// TogglePopup opens or closes the popup. Safe to call from any goroutine.
func (a *Application) TogglePopup() {
	glib.IdleAdd(func() {
		if a.popup != nil {
			a.popup.Toggle()
		}
	})
}

// Copy writes text to the clipboard and forgets about it.
func (a *Application) Copy(text string) {
	if err := a.clipboard.WriteText(text); err != nil {
		common.LogDebug("Clipboard write failed: %v", err)
	}
}

// Post forwards a user intent to the applet.
func (a *Application) Post(ev applet.Event) {
	a.applet.Post(ev)
}

// Quit closes the application
func (a *Application) Quit() {
	a.quitOnce.Do(func() {
		a.cancel()
		systray.Quit()
		a.app.Quit()
	})
}
