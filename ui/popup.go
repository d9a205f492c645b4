package ui

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/yllada/ip-applet/applet"
	"github.com/yllada/ip-applet/common"
	"github.com/yllada/ip-applet/config"
)

// Popup is the applet window with the info and settings tabs.
type Popup struct {
	app      *Application
	window   *gtk.ApplicationWindow
	notebook *gtk.Notebook
	info     *gtk.ScrolledWindow
	settings *SettingsPage

	infoHash     uint64
	settingsHash uint64
}

// infoView holds the snapshot fields the info tab renders.
type infoView struct {
	Lines []applet.Row
	Color config.TextColor
	Empty bool
}

// NewPopup creates the popup window. It starts hidden.
func NewPopup(app *Application) *Popup {
	p := &Popup{app: app}

	p.window = gtk.NewApplicationWindow(app.app)
	p.window.SetTitle(common.AppName)
	p.window.SetDefaultSize(common.PopupMaxWidth, common.SettingsHeight)
	p.window.SetSizeRequest(common.PopupMinWidth, -1)
	p.window.SetHideOnClose(true)
	p.window.AddCSSClass("ip-popup")

	p.info = gtk.NewScrolledWindow()
	p.info.SetVExpand(true)
	p.info.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)

	p.settings = NewSettingsPage(app)

	p.notebook = gtk.NewNotebook()
	p.notebook.AppendPage(p.info, gtk.NewLabel("Info"))
	p.notebook.AppendPage(p.settings.Widget(), gtk.NewLabel("Settings"))

	p.window.SetChild(p.notebook)
	return p
}

// Toggle shows the popup if hidden and hides it otherwise.
func (p *Popup) Toggle() {
	if p.window.IsVisible() {
		p.window.SetVisible(false)
		return
	}
	p.notebook.SetCurrentPage(0)
	p.window.Present()
}

// Update renders s. Must be called on the GTK main thread.
func (p *Popup) Update(s applet.Snapshot) {
	view := infoView{Lines: s.Lines(), Color: s.TextColor, Empty: s.Empty()}
	if hash, changed := rehash(view, p.infoHash); changed {
		p.infoHash = hash
		p.info.SetChild(p.buildInfo(view))
	}

	settings := s.Settings()
	if hash, changed := rehash(settings, p.settingsHash); changed {
		p.settingsHash = hash
		p.settings.Update(settings)
	}
}

// rehash reports whether v hashes differently from prev. Values that
// cannot be hashed always count as changed.
func rehash(v interface{}, prev uint64) (uint64, bool) {
	hash, err := hashstructure.Hash(v, hashstructure.FormatV2, nil)
	if err != nil {
		common.LogDebug("Snapshot hash failed: %v", err)
		return 0, true
	}
	return hash, prev == 0 || hash != prev
}

// buildInfo creates the address list.
func (p *Popup) buildInfo(view infoView) *gtk.Box {
	box := gtk.NewBox(gtk.OrientationVertical, 4)
	box.SetMarginTop(12)
	box.SetMarginBottom(12)
	box.SetMarginStart(12)
	box.SetMarginEnd(12)

	if view.Empty {
		empty := gtk.NewLabel(common.NoInterfacesText)
		empty.AddCSSClass("dim-label")
		empty.SetMarginTop(24)
		box.Append(empty)
		return box
	}

	for _, line := range view.Lines {
		box.Append(p.buildInfoRow(line, view.Color))
	}
	return box
}

// buildInfoRow creates one "name  address  [copy]" row.
func (p *Popup) buildInfoRow(line applet.Row, color config.TextColor) *gtk.Box {
	row := gtk.NewBox(gtk.OrientationHorizontal, 8)
	row.AddCSSClass("ip-row")

	name := gtk.NewLabel(line.Name)
	name.SetXAlign(0)
	name.SetHExpand(true)
	name.AddCSSClass("ip-name")
	row.Append(name)

	value := gtk.NewLabel(line.Address)
	value.SetXAlign(1)
	value.SetSelectable(true)
	value.AddCSSClass("ip-value")
	if _, ok := color.RGB(); ok {
		value.AddCSSClass(colorClass(color))
	}
	row.Append(value)

	copyBtn := gtk.NewButtonFromIconName("edit-copy-symbolic")
	copyBtn.AddCSSClass("flat")
	copyBtn.SetTooltipText("Copy " + line.Name)
	address := line.Address
	copyBtn.ConnectClicked(func() {
		p.window.Clipboard().SetText(address)
	})
	row.Append(copyBtn)

	return row
}
