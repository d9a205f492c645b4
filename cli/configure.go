package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/yllada/ip-applet/applet"
	"github.com/yllada/ip-applet/common"
	"github.com/yllada/ip-applet/config"
)

// formValues holds the answers of the configure form.
type formValues struct {
	interfaces   []string
	showPublicIP bool
	service      config.PublicIPService
	refresh      uint
	color        config.TextColor
	notify       bool
}

func newFormValues(prefs *config.Preferences) *formValues {
	return &formValues{
		interfaces:   prefs.EnabledList(),
		showPublicIP: prefs.ShowPublicIP,
		service:      prefs.PublicIPService,
		refresh:      prefs.RefreshIntervalSecs,
		color:        prefs.TextColor,
		notify:       prefs.Notify,
	}
}

// apply writes the answers into prefs.
func (v *formValues) apply(prefs *config.Preferences) {
	prefs.EnabledInterfaces = make(map[string]struct{}, len(v.interfaces))
	for _, name := range v.interfaces {
		prefs.Enable(name)
	}
	prefs.SetShowPublicIP(v.showPublicIP)
	if v.service.Valid() {
		prefs.SetPublicIPService(v.service)
	}
	if config.ValidRefreshInterval(v.refresh) {
		prefs.SetRefreshInterval(v.refresh)
	}
	if v.color.Valid() {
		prefs.SetTextColor(v.color)
	}
	prefs.SetNotify(v.notify)
}

// interfaceOptions offers every observed interface plus enabled ones that
// are currently down.
func interfaceOptions(prefs *config.Preferences, observed map[string]string) []huh.Option[string] {
	names := make(map[string]string, len(observed))
	for name, addr := range observed {
		names[name] = addr
	}
	for _, name := range prefs.EnabledList() {
		if _, ok := names[name]; !ok {
			names[name] = ""
		}
	}

	options := make([]huh.Option[string], 0, len(names))
	for _, name := range common.SortedKeys(names) {
		label := name + " (down)"
		if addr := names[name]; addr != "" {
			label = fmt.Sprintf("%s (%s)", name, addr)
		}
		options = append(options, huh.NewOption(label, name).Selected(prefs.IsEnabled(name)))
	}
	return options
}

// Configure edits prefs with an interactive form and saves the result.
func (c *CLI) Configure(prefs *config.Preferences, observed map[string]string, saver applet.PreferenceSaver) error {
	values := newFormValues(prefs)

	serviceOptions := make([]huh.Option[config.PublicIPService], 0, len(config.AllServices()))
	for _, svc := range config.AllServices() {
		serviceOptions = append(serviceOptions, huh.NewOption(svc.Label()+"  "+svc.URL(), svc))
	}

	refreshOptions := make([]huh.Option[uint], 0, len(common.RefreshIntervals))
	for _, secs := range common.RefreshIntervals {
		refreshOptions = append(refreshOptions, huh.NewOption(fmt.Sprintf("%d seconds", secs), secs))
	}

	colorOptions := make([]huh.Option[config.TextColor], 0, len(config.AllTextColors()))
	for _, color := range config.AllTextColors() {
		colorOptions = append(colorOptions, huh.NewOption(color.Label(), color))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Show interfaces:").
				Options(interfaceOptions(prefs, observed)...).
				Value(&values.interfaces),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Show public IP?").
				Value(&values.showPublicIP),
			huh.NewSelect[config.PublicIPService]().
				Title("Public IP service:").
				Options(serviceOptions...).
				Value(&values.service),
		),
		huh.NewGroup(
			huh.NewSelect[uint]().
				Title("Refresh rate:").
				Options(refreshOptions...).
				Value(&values.refresh),
			huh.NewSelect[config.TextColor]().
				Title("Text color:").
				Options(colorOptions...).
				Value(&values.color),
			huh.NewConfirm().
				Title("Notify when the public IP changes?").
				Value(&values.notify),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}

	values.apply(prefs)
	if saver == nil {
		return fmt.Errorf("%w: no configuration directory", common.ErrConfigSave)
	}
	if err := saver.Save(prefs); err != nil {
		return err
	}

	fmt.Fprintln(c.out, "✓ Preferences saved")
	return nil
}
