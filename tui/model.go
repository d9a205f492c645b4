package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yllada/ip-applet/applet"
	"github.com/yllada/ip-applet/common"
	"github.com/yllada/ip-applet/config"
)

// Poster receives user intents.
type Poster interface {
	Post(ev applet.Event)
}

type tab int

const (
	tabInfo tab = iota
	tabSettings
)

type snapshotMsg applet.Snapshot

type copiedMsg struct {
	name string
	err  error
}

// setting is one line of the settings tab. Selecting it posts event.
type setting struct {
	label string
	value string
	event applet.Event
}

type model struct {
	snap           applet.Snapshot
	poster         Poster
	clip           common.Clipboard
	tab            tab
	infoCursor     int
	settingsCursor int
	help           help.Model
	status         string
}

func newModel(snap applet.Snapshot, poster Poster, clip common.Clipboard) model {
	return model{
		snap:   snap,
		poster: poster,
		clip:   clip,
		help:   help.New(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case snapshotMsg:
		m.snap = applet.Snapshot(msg)
		m.infoCursor = clamp(m.infoCursor, len(m.snap.Lines()))
		m.settingsCursor = clamp(m.settingsCursor, len(settings(m.snap)))

	case copiedMsg:
		if msg.err != nil {
			m.status = "Copy failed: " + msg.err.Error()
		} else {
			m.status = "Copied " + msg.name
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, keys.NextTab):
		if m.tab == tabInfo {
			m.tab = tabSettings
		} else {
			m.tab = tabInfo
		}
		m.status = ""

	case key.Matches(msg, keys.Up):
		if m.tab == tabInfo && m.infoCursor > 0 {
			m.infoCursor--
		}
		if m.tab == tabSettings && m.settingsCursor > 0 {
			m.settingsCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.tab == tabInfo && m.infoCursor < len(m.snap.Lines())-1 {
			m.infoCursor++
		}
		if m.tab == tabSettings && m.settingsCursor < len(settings(m.snap))-1 {
			m.settingsCursor++
		}

	case key.Matches(msg, keys.Copy):
		if m.tab == tabInfo {
			return m, m.copySelected()
		}

	case key.Matches(msg, keys.Select):
		if m.tab == tabInfo {
			return m, m.copySelected()
		}
		items := settings(m.snap)
		if m.settingsCursor < len(items) {
			m.poster.Post(items[m.settingsCursor].event)
		}
	}

	return m, nil
}

// copySelected writes the selected address to the clipboard.
func (m model) copySelected() tea.Cmd {
	lines := m.snap.Lines()
	if m.infoCursor >= len(lines) || m.clip == nil {
		return nil
	}
	line := lines[m.infoCursor]
	clip := m.clip
	return func() tea.Msg {
		return copiedMsg{name: line.Name, err: clip.WriteText(line.Address)}
	}
}

// settings lists the settings tab lines for s.
func settings(s applet.Snapshot) []setting {
	items := make([]setting, 0, len(s.Interfaces)+5)

	for _, iface := range s.Interfaces {
		addr := iface.Address
		if addr == "" {
			addr = "down"
		}
		items = append(items, setting{
			label: iface.Name,
			value: checkbox(iface.Enabled) + " " + addr,
			event: applet.ToggleInterface{Name: iface.Name},
		})
	}

	items = append(items, setting{
		label: "Show public IP",
		value: checkbox(s.ShowPublicIP),
		event: applet.SetShowPublicIP{Show: !s.ShowPublicIP},
	})
	if s.ShowPublicIP {
		items = append(items, setting{
			label: "Service",
			value: s.Service.Label(),
			event: applet.SetPublicIPService{Service: nextService(s.Service)},
		})
	}
	items = append(items,
		setting{
			label: "Refresh rate",
			value: fmt.Sprintf("%ds", s.RefreshIntervalSecs),
			event: applet.SetRefreshInterval{Seconds: nextInterval(s.RefreshIntervalSecs)},
		},
		setting{
			label: "Text color",
			value: s.TextColor.Label(),
			event: applet.SetTextColor{Color: nextColor(s.TextColor)},
		},
		setting{
			label: "Change alerts",
			value: checkbox(s.Notify),
			event: applet.SetNotify{Enabled: !s.Notify},
		},
	)

	return items
}

func nextService(cur config.PublicIPService) config.PublicIPService {
	all := config.AllServices()
	for i, s := range all {
		if s == cur {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func nextInterval(cur uint) uint {
	all := common.RefreshIntervals
	for i, v := range all {
		if v == cur {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func nextColor(cur config.TextColor) config.TextColor {
	all := config.AllTextColors()
	for i, c := range all {
		if c == cur {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func clamp(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
