package ui

import (
	"fmt"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/ip-applet/applet"
	"github.com/yllada/ip-applet/common"
	"github.com/yllada/ip-applet/config"
)

// SettingsPage is the settings tab of the popup.
// It is rebuilt from each snapshot and sends every change to the applet.
type SettingsPage struct {
	app      *Application
	scrolled *gtk.ScrolledWindow
}

// NewSettingsPage creates an empty settings tab.
func NewSettingsPage(app *Application) *SettingsPage {
	sp := &SettingsPage{app: app}

	sp.scrolled = gtk.NewScrolledWindow()
	sp.scrolled.SetVExpand(true)
	sp.scrolled.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)
	sp.scrolled.SetMinContentHeight(common.SettingsHeight)

	return sp
}

// Widget returns the tab's root widget.
func (sp *SettingsPage) Widget() gtk.Widgetter {
	return sp.scrolled
}

// Update rebuilds the tab for s.
func (sp *SettingsPage) Update(s applet.SettingsView) {
	mainBox := gtk.NewBox(gtk.OrientationVertical, 20)
	mainBox.SetMarginTop(16)
	mainBox.SetMarginBottom(16)
	mainBox.SetMarginStart(16)
	mainBox.SetMarginEnd(16)

	mainBox.Append(sp.buildInterfaces(s))
	mainBox.Append(sp.buildPublicIP(s))
	mainBox.Append(sp.buildRefresh(s))
	mainBox.Append(sp.buildColors(s))

	sp.scrolled.SetChild(mainBox)
}

func (sp *SettingsPage) buildInterfaces(s applet.SettingsView) *gtk.Box {
	section := sp.createSection("Interfaces", "network-wired-symbolic")
	card := sp.createCard()

	if len(s.Interfaces) == 0 {
		empty := gtk.NewLabel(common.NoInterfacesText)
		empty.AddCSSClass("dim-label")
		empty.SetMarginTop(12)
		empty.SetMarginBottom(12)
		card.Append(empty)
	}

	for i, iface := range s.Interfaces {
		if i > 0 {
			card.Append(sp.createSeparator())
		}

		description := "Hidden"
		if iface.Enabled {
			description = "Shown on the info tab"
		}

		sw := gtk.NewSwitch()
		sw.SetActive(iface.Enabled)
		sw.SetVAlign(gtk.AlignCenter)
		name := iface.Name
		sw.ConnectStateSet(func(state bool) bool {
			sp.app.Post(applet.ToggleInterface{Name: name})
			return false
		})

		card.Append(sp.createSettingRow(iface.Name, description, sw))
	}

	section.Append(card)
	return section
}

func (sp *SettingsPage) buildPublicIP(s applet.SettingsView) *gtk.Box {
	section := sp.createSection(common.PublicIPLabel, "network-workgroup-symbolic")
	card := sp.createCard()

	showSwitch := gtk.NewSwitch()
	showSwitch.SetActive(s.ShowPublicIP)
	showSwitch.SetVAlign(gtk.AlignCenter)
	showSwitch.ConnectStateSet(func(state bool) bool {
		sp.app.Post(applet.SetShowPublicIP{Show: state})
		return false
	})
	card.Append(sp.createSettingRow("Show Public IP", "Look up the external address", showSwitch))

	if s.ShowPublicIP {
		services := config.AllServices()
		labels := make([]string, len(services))
		var selected uint
		for i, svc := range services {
			labels[i] = svc.Label()
			if svc == s.Service {
				selected = uint(i)
			}
		}

		dropDown := gtk.NewDropDown(gtk.NewStringList(labels), nil)
		dropDown.SetSelected(selected)
		dropDown.SetVAlign(gtk.AlignCenter)
		dropDown.AddCSSClass("flat")
		dropDown.NotifyProperty("selected", func() {
			idx := int(dropDown.Selected())
			if idx < len(services) {
				sp.app.Post(applet.SetPublicIPService{Service: services[idx]})
			}
		})

		card.Append(sp.createSeparator())
		card.Append(sp.createSettingRow("Service", s.Service.URL(), dropDown))
	}

	notifySwitch := gtk.NewSwitch()
	notifySwitch.SetActive(s.Notify)
	notifySwitch.SetVAlign(gtk.AlignCenter)
	notifySwitch.ConnectStateSet(func(state bool) bool {
		sp.app.Post(applet.SetNotify{Enabled: state})
		return false
	})
	card.Append(sp.createSeparator())
	card.Append(sp.createSettingRow("Change Alerts", "Notify when the public IP changes", notifySwitch))

	section.Append(card)
	return section
}

func (sp *SettingsPage) buildRefresh(s applet.SettingsView) *gtk.Box {
	section := sp.createSection("Refresh Rate", "view-refresh-symbolic")

	buttons := gtk.NewBox(gtk.OrientationHorizontal, 0)
	buttons.AddCSSClass("linked")
	buttons.SetHAlign(gtk.AlignCenter)

	var group *gtk.ToggleButton
	for _, secs := range common.RefreshIntervals {
		btn := gtk.NewToggleButtonWithLabel(fmt.Sprintf("%ds", secs))
		if group == nil {
			group = btn
		} else {
			btn.SetGroup(group)
		}
		btn.SetActive(secs == s.RefreshIntervalSecs)

		seconds := secs
		btn.ConnectToggled(func() {
			if btn.Active() {
				sp.app.Post(applet.SetRefreshInterval{Seconds: seconds})
			}
		})
		buttons.Append(btn)
	}

	section.Append(buttons)
	return section
}

func (sp *SettingsPage) buildColors(s applet.SettingsView) *gtk.Box {
	section := sp.createSection("Text Color", "preferences-desktop-theme-symbolic")

	swatches := gtk.NewBox(gtk.OrientationHorizontal, 6)
	swatches.SetHAlign(gtk.AlignCenter)

	var group *gtk.ToggleButton
	for _, color := range config.AllTextColors() {
		btn := gtk.NewToggleButtonWithLabel("●")
		btn.AddCSSClass("swatch")
		if _, ok := color.RGB(); ok {
			btn.AddCSSClass(colorClass(color))
		}
		btn.SetTooltipText(color.Label())
		if group == nil {
			group = btn
		} else {
			btn.SetGroup(group)
		}
		btn.SetActive(color == s.TextColor)

		c := color
		btn.ConnectToggled(func() {
			if btn.Active() {
				sp.app.Post(applet.SetTextColor{Color: c})
			}
		})
		swatches.Append(btn)
	}

	section.Append(swatches)
	return section
}

// createSection creates a section with icon and title.
func (sp *SettingsPage) createSection(title string, iconName string) *gtk.Box {
	section := gtk.NewBox(gtk.OrientationVertical, 8)

	headerBox := gtk.NewBox(gtk.OrientationHorizontal, 8)

	icon := gtk.NewImage()
	icon.SetFromIconName(iconName)
	icon.SetPixelSize(16)
	icon.AddCSSClass("dim-label")
	headerBox.Append(icon)

	label := gtk.NewLabel(title)
	label.SetXAlign(0)
	label.AddCSSClass("heading")
	label.AddCSSClass("dim-label")
	headerBox.Append(label)

	section.Append(headerBox)

	return section
}

// createCard creates a styled card container for settings.
func (sp *SettingsPage) createCard() *gtk.Box {
	card := gtk.NewBox(gtk.OrientationVertical, 0)
	card.AddCSSClass("card")
	card.AddCSSClass("settings-card")
	return card
}

// createSettingRow creates a row with title, description, and widget.
func (sp *SettingsPage) createSettingRow(title string, description string, widget gtk.Widgetter) *gtk.Box {
	row := gtk.NewBox(gtk.OrientationHorizontal, 12)
	row.SetMarginTop(10)
	row.SetMarginBottom(10)
	row.SetMarginStart(12)
	row.SetMarginEnd(12)

	textBox := gtk.NewBox(gtk.OrientationVertical, 2)
	textBox.SetHExpand(true)

	titleLabel := gtk.NewLabel(title)
	titleLabel.SetXAlign(0)
	titleLabel.AddCSSClass("settings-title")
	textBox.Append(titleLabel)

	descLabel := gtk.NewLabel(description)
	descLabel.SetXAlign(0)
	descLabel.AddCSSClass("dim-label")
	descLabel.AddCSSClass("caption")
	textBox.Append(descLabel)

	row.Append(textBox)
	row.Append(widget)

	return row
}

// createSeparator creates a styled separator for cards.
func (sp *SettingsPage) createSeparator() *gtk.Separator {
	sep := gtk.NewSeparator(gtk.OrientationHorizontal)
	sep.SetMarginStart(12)
	sep.SetMarginEnd(12)
	return sep
}
