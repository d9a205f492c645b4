package ui

import (
	"fmt"
	"strings"
	"sync"

	"fyne.io/systray"
	"github.com/yllada/ip-applet/applet"
	"github.com/yllada/ip-applet/common"
	"github.com/yllada/ip-applet/config"
)

// Pre-generated icons for performance.
var (
	iconOnline  = GenerateOnlineIcon()
	iconOffline = GenerateOfflineIcon()
)

// addressSlot is a reusable menu entry showing one address.
// Clicking it copies the address.
type addressSlot struct {
	item    *systray.MenuItem
	address string
}

// TrayIndicator manages the system tray icon and menu.
// It mirrors the info tab and offers the quick settings.
type TrayIndicator struct {
	app *Application

	mu           sync.Mutex
	ready        bool
	snapshot     applet.Snapshot
	addrMenu     *systray.MenuItem
	slots        []*addressSlot
	publicItem   *systray.MenuItem
	publicAddr   string
	showPublic   *systray.MenuItem
	serviceItems map[config.PublicIPService]*systray.MenuItem
	refreshItems map[uint]*systray.MenuItem
}

// NewTrayIndicator creates a new system tray indicator.
func NewTrayIndicator(app *Application) *TrayIndicator {
	return &TrayIndicator{
		app:          app,
		serviceItems: make(map[config.PublicIPService]*systray.MenuItem),
		refreshItems: make(map[uint]*systray.MenuItem),
	}
}

// Run starts the system tray indicator.
// This should be called from a goroutine as it blocks.
func (t *TrayIndicator) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the systray is ready.
func (t *TrayIndicator) onReady() {
	systray.SetIcon(iconOffline)
	systray.SetTitle(common.AppName)
	systray.SetTooltip(common.AppName)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.addrMenu = systray.AddMenuItem("Interfaces", "Local interface addresses")

	t.publicItem = systray.AddMenuItem(common.PublicIPLabel+": "+common.PublicIPFetching, "Click to copy")
	go func() {
		for range t.publicItem.ClickedCh {
			t.mu.Lock()
			addr := t.publicAddr
			t.mu.Unlock()
			t.copyAddress(addr)
		}
	}()

	systray.AddSeparator()

	openItem := systray.AddMenuItem("Open "+common.AppName, "Show or hide the popup")
	go func() {
		for range openItem.ClickedCh {
			t.app.TogglePopup()
		}
	}()

	t.showPublic = systray.AddMenuItemCheckbox("Show Public IP", "Look up the external address", true)
	go func() {
		for range t.showPublic.ClickedCh {
			t.app.Post(applet.SetShowPublicIP{Show: !t.showPublic.Checked()})
		}
	}()

	serviceMenu := systray.AddMenuItem("Public IP Service", "")
	for _, svc := range config.AllServices() {
		item := serviceMenu.AddSubMenuItemCheckbox(svc.Label(), svc.URL(), false)
		t.serviceItems[svc] = item
		go func(s config.PublicIPService) {
			for range item.ClickedCh {
				t.app.Post(applet.SetPublicIPService{Service: s})
			}
		}(svc)
	}

	refreshMenu := systray.AddMenuItem("Refresh Rate", "")
	for _, secs := range common.RefreshIntervals {
		item := refreshMenu.AddSubMenuItemCheckbox(fmt.Sprintf("%d seconds", secs), "", false)
		t.refreshItems[secs] = item
		go func(s uint) {
			for range item.ClickedCh {
				t.app.Post(applet.SetRefreshInterval{Seconds: s})
			}
		}(secs)
	}

	systray.AddSeparator()

	quitItem := systray.AddMenuItem("Quit", "Close "+common.AppName)
	go func() {
		for range quitItem.ClickedCh {
			t.app.Quit()
		}
	}()

	t.ready = true
	t.render()
}

// onExit is called when the systray is about to exit.
func (t *TrayIndicator) onExit() {
	common.LogInfo("Tray indicator cleanup completed")
}

// Update shows s in the tray. Safe to call from any goroutine.
func (t *TrayIndicator) Update(s applet.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.snapshot = s
	if t.ready {
		t.render()
	}
}

// render applies the stored snapshot. Callers hold t.mu.
func (t *TrayIndicator) render() {
	s := t.snapshot

	if len(s.Rows) > 0 || publicKnown(s) {
		systray.SetIcon(iconOnline)
	} else {
		systray.SetIcon(iconOffline)
	}
	systray.SetTooltip(trayTooltip(s))

	for len(t.slots) < len(s.Rows) {
		t.slots = append(t.slots, t.newSlot())
	}
	for i, slot := range t.slots {
		if i >= len(s.Rows) {
			slot.address = ""
			slot.item.Hide()
			continue
		}
		row := s.Rows[i]
		slot.address = row.Address
		slot.item.SetTitle(row.Name + ": " + row.Address)
		slot.item.Show()
	}
	if len(s.Rows) == 0 {
		t.addrMenu.SetTitle(common.NoInterfacesText)
		t.addrMenu.Disable()
	} else {
		t.addrMenu.SetTitle("Interfaces")
		t.addrMenu.Enable()
	}

	if s.ShowPublicIP {
		t.publicAddr = s.PublicIP
		t.publicItem.SetTitle(common.PublicIPLabel + ": " + s.PublicIP)
		t.publicItem.Show()
		t.showPublic.Check()
	} else {
		t.publicAddr = ""
		t.publicItem.Hide()
		t.showPublic.Uncheck()
	}

	for svc, item := range t.serviceItems {
		if svc == s.Service {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
	for secs, item := range t.refreshItems {
		if secs == s.RefreshIntervalSecs {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
}

// newSlot adds an address entry under the interfaces menu. Callers hold t.mu.
func (t *TrayIndicator) newSlot() *addressSlot {
	slot := &addressSlot{item: t.addrMenu.AddSubMenuItem("", "Click to copy")}
	go func() {
		for range slot.item.ClickedCh {
			t.mu.Lock()
			addr := slot.address
			t.mu.Unlock()
			t.copyAddress(addr)
		}
	}()
	return slot
}

func (t *TrayIndicator) copyAddress(addr string) {
	if addr == "" || addr == common.PublicIPFetching || addr == common.PublicIPUnavailable {
		return
	}
	t.app.Copy(addr)
}

func publicKnown(s applet.Snapshot) bool {
	return s.ShowPublicIP && s.PublicIP != common.PublicIPFetching && s.PublicIP != common.PublicIPUnavailable
}

// trayTooltip lists the visible addresses one per line.
func trayTooltip(s applet.Snapshot) string {
	if s.Empty() {
		return common.AppName + "\n" + common.NoInterfacesText
	}

	var b strings.Builder
	b.WriteString(common.AppName)
	for _, line := range s.Lines() {
		fmt.Fprintf(&b, "\n%s: %s", line.Name, line.Address)
	}
	return b.String()
}
