// Package ui provides the graphical front end of IP Applet.
//
// The GTK4 popup has two tabs: an info tab listing the visible addresses
// with a copy button per row, and a settings tab with interface toggles,
// public IP options, refresh rate and text colour. A system tray indicator
// mirrors the info tab and toggles the popup.
//
// # Thread Safety
//
// GTK operations must execute on the main thread. Snapshots arrive on the
// applet loop goroutine and are handed over with glib.IdleAdd:
//
//	a.applet.Subscribe(func(s applet.Snapshot) {
//	    glib.IdleAdd(func() {
//	        popup.Update(s)
//	    })
//	})
//
// The tray indicator runs its own loop and guards its state with a mutex.
//
// # File Organization
//
//   - app.go: Application lifecycle
//   - popup.go: Popup window and info tab
//   - settings.go: Settings tab
//   - tray.go: System tray indicator
//   - icons.go: Icon generation for tray
//   - styles.go: CSS styling and text colours
//   - notifications.go: Desktop notifications over D-Bus
//   - clipboard.go: Clipboard access outside GTK
package ui
