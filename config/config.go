// Package config provides the applet's display preferences.
// It handles defaults, in-place mutation, and loading and saving
// the preference set as YAML.
package config

import (
	"sort"
	"time"

	"github.com/yllada/ip-applet/common"
)

// Preferences is the user-configurable preference set.
// EnabledInterfaces may name interfaces that are currently down.
type Preferences struct {
	// EnabledInterfaces lists the interface names shown on the info tab.
	EnabledInterfaces map[string]struct{}
	// ShowPublicIP toggles the public address row.
	ShowPublicIP bool
	// PublicIPService selects the lookup endpoint.
	PublicIPService PublicIPService
	// RefreshIntervalSecs is the poll period in seconds.
	RefreshIntervalSecs uint
	// TextColor colours address values.
	TextColor TextColor
	// Notify enables desktop notifications when the public IP changes.
	Notify bool
}

// DefaultPreferences returns the default preference set.
func DefaultPreferences() *Preferences {
	return &Preferences{
		EnabledInterfaces: map[string]struct{}{
			"eth0":  {},
			"wlan0": {},
			"tun0":  {},
		},
		ShowPublicIP:        true,
		PublicIPService:     ServiceIfconfig,
		RefreshIntervalSecs: uint(common.DefaultRefreshInterval / time.Second),
		TextColor:           TextDefault,
		Notify:              true,
	}
}

// Clone returns a deep copy of p.
func (p *Preferences) Clone() *Preferences {
	c := *p
	c.EnabledInterfaces = make(map[string]struct{}, len(p.EnabledInterfaces))
	for name := range p.EnabledInterfaces {
		c.EnabledInterfaces[name] = struct{}{}
	}
	return &c
}

// IsEnabled reports whether the interface is shown.
func (p *Preferences) IsEnabled(name string) bool {
	_, ok := p.EnabledInterfaces[name]
	return ok
}

// Enable adds name to the enabled set. It reports whether the set changed.
func (p *Preferences) Enable(name string) bool {
	if p.IsEnabled(name) {
		return false
	}
	if p.EnabledInterfaces == nil {
		p.EnabledInterfaces = make(map[string]struct{})
	}
	p.EnabledInterfaces[name] = struct{}{}
	return true
}

// ToggleInterface flips the enabled flag of name.
func (p *Preferences) ToggleInterface(name string) {
	if p.IsEnabled(name) {
		delete(p.EnabledInterfaces, name)
		return
	}
	p.Enable(name)
}

// SetShowPublicIP sets public address visibility.
func (p *Preferences) SetShowPublicIP(show bool) {
	p.ShowPublicIP = show
}

// SetPublicIPService selects the lookup service.
func (p *Preferences) SetPublicIPService(s PublicIPService) {
	p.PublicIPService = s
}

// SetRefreshInterval sets the poll period in seconds.
func (p *Preferences) SetRefreshInterval(secs uint) {
	p.RefreshIntervalSecs = secs
}

// SetTextColor sets the value colour.
func (p *Preferences) SetTextColor(c TextColor) {
	p.TextColor = c
}

// SetNotify toggles public IP change notifications.
func (p *Preferences) SetNotify(on bool) {
	p.Notify = on
}

// RefreshInterval returns the poll period as a duration.
// A zero interval falls back to the default.
func (p *Preferences) RefreshInterval() time.Duration {
	if p.RefreshIntervalSecs == 0 {
		return common.DefaultRefreshInterval
	}
	return time.Duration(p.RefreshIntervalSecs) * time.Second
}

// EnabledList returns the enabled interface names sorted.
func (p *Preferences) EnabledList() []string {
	names := make([]string, 0, len(p.EnabledInterfaces))
	for name := range p.EnabledInterfaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
