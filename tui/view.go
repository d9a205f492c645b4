package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yllada/ip-applet/common"
	"github.com/yllada/ip-applet/config"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")).
			Border(lipgloss.RoundedBorder(), true, true, false, true).
			BorderForeground(lipgloss.Color("226")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Border(lipgloss.RoundedBorder(), true, true, false, true).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	bodyStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	nameStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Italic(true)
)

// valueStyle renders addresses in the chosen text colour.
func valueStyle(c config.TextColor) lipgloss.Style {
	style := lipgloss.NewStyle()
	if rgb, ok := c.RGB(); ok {
		style = style.Foreground(lipgloss.Color(rgb.Hex()))
	}
	return style
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(common.AppName))
	b.WriteString("\n\n")

	info, sett := tabStyle, tabStyle
	if m.tab == tabInfo {
		info = activeTabStyle
	} else {
		sett = activeTabStyle
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Bottom, info.Render("Info"), sett.Render("Settings")))
	b.WriteString("\n")

	var body string
	if m.tab == tabInfo {
		body = m.infoView()
	} else {
		body = m.settingsView()
	}
	b.WriteString(bodyStyle.Render(body))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(dimStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(keys))
	b.WriteString("\n")

	return b.String()
}

func (m model) infoView() string {
	if m.snap.Empty() {
		return emptyStyle.Render(common.NoInterfacesText)
	}

	lines := m.snap.Lines()
	width := 0
	for _, line := range lines {
		width = max(width, len(line.Name))
	}

	value := valueStyle(m.snap.TextColor)
	rows := make([]string, 0, len(lines))
	for i, line := range lines {
		prefix := "  "
		if i == m.infoCursor {
			prefix = cursorStyle.Render("> ")
		}
		rows = append(rows, fmt.Sprintf("%s%s  %s",
			prefix,
			nameStyle.Render(fmt.Sprintf("%-*s", width, line.Name)),
			value.Render(line.Address)))
	}
	return strings.Join(rows, "\n")
}

func (m model) settingsView() string {
	items := settings(m.snap)
	width := 0
	for _, item := range items {
		width = max(width, len(item.label))
	}

	rows := make([]string, 0, len(items))
	for i, item := range items {
		prefix := "  "
		if i == m.settingsCursor {
			prefix = cursorStyle.Render("> ")
		}
		rows = append(rows, fmt.Sprintf("%s%-*s  %s", prefix, width, item.label, item.value))
	}
	return strings.Join(rows, "\n")
}
