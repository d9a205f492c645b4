package applet

import "github.com/yllada/ip-applet/config"

// Row is one visible address on the info tab.
type Row struct {
	Name    string
	Address string
}

// InterfaceState is one known interface on the settings tab.
type InterfaceState struct {
	Name    string
	Address string
	Enabled bool
}

// Snapshot is an immutable copy of the applet state handed to views.
type Snapshot struct {
	// Rows are the enabled interfaces that currently have an address,
	// in known order.
	Rows []Row
	// Interfaces are all known interfaces in known order.
	Interfaces []InterfaceState

	PublicIP            string
	ShowPublicIP        bool
	Service             config.PublicIPService
	RefreshIntervalSecs uint
	TextColor           config.TextColor
	Notify              bool
}

// InterfaceToggle is one interface switch on the settings tab.
type InterfaceToggle struct {
	Name    string
	Enabled bool
}

// SettingsView holds the snapshot fields the settings tab renders.
type SettingsView struct {
	Interfaces          []InterfaceToggle
	ShowPublicIP        bool
	Service             config.PublicIPService
	RefreshIntervalSecs uint
	TextColor           config.TextColor
	Notify              bool
}

// Settings returns the settings part of s. Addresses are left out, so the
// view only changes when a preference or the set of known interfaces does.
func (s Snapshot) Settings() SettingsView {
	toggles := make([]InterfaceToggle, 0, len(s.Interfaces))
	for _, iface := range s.Interfaces {
		toggles = append(toggles, InterfaceToggle{Name: iface.Name, Enabled: iface.Enabled})
	}
	return SettingsView{
		Interfaces:          toggles,
		ShowPublicIP:        s.ShowPublicIP,
		Service:             s.Service,
		RefreshIntervalSecs: s.RefreshIntervalSecs,
		TextColor:           s.TextColor,
		Notify:              s.Notify,
	}
}

// Empty reports whether the info tab has nothing to show.
func (s Snapshot) Empty() bool {
	return len(s.Rows) == 0 && !s.ShowPublicIP
}

// Lines returns the info tab rows, including the public IP when shown.
func (s Snapshot) Lines() []Row {
	lines := make([]Row, 0, len(s.Rows)+1)
	lines = append(lines, s.Rows...)
	if s.ShowPublicIP {
		lines = append(lines, Row{Name: publicIPRowName, Address: s.PublicIP})
	}
	return lines
}

func (a *Applet) buildSnapshot() Snapshot {
	snap := Snapshot{
		Rows:                make([]Row, 0, len(a.known)),
		Interfaces:          make([]InterfaceState, 0, len(a.known)),
		PublicIP:            a.publicIP,
		ShowPublicIP:        a.prefs.ShowPublicIP,
		Service:             a.prefs.PublicIPService,
		RefreshIntervalSecs: a.prefs.RefreshIntervalSecs,
		TextColor:           a.prefs.TextColor,
		Notify:              a.prefs.Notify,
	}

	for _, name := range a.known {
		addr, up := a.addrs[name]
		enabled := a.prefs.IsEnabled(name)
		snap.Interfaces = append(snap.Interfaces, InterfaceState{
			Name:    name,
			Address: addr,
			Enabled: enabled,
		})
		if enabled && up {
			snap.Rows = append(snap.Rows, Row{Name: name, Address: addr})
		}
	}

	return snap
}
