package ui

import (
	"fmt"
	"strings"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/ip-applet/config"
)

// Theme-aware popup styles. Value colours are appended by colorCSS.
const appCSS = `
.ip-popup {
    min-width: 260px;
}

.ip-row {
    padding: 4px 6px;
    border-radius: 8px;
}

.ip-row:hover {
    background-color: alpha(currentColor, 0.05);
}

.ip-name {
    font-weight: 600;
}

.ip-value {
    font-family: monospace;
}

.settings-card {
    border-radius: 12px;
    border: 1px solid alpha(currentColor, 0.15);
}

.settings-title {
    font-weight: 500;
}

button.swatch {
    min-width: 28px;
    min-height: 28px;
    border-radius: 50%;
    padding: 0;
    font-size: 16px;
}

button.swatch:checked {
    box-shadow: inset 0 0 0 2px alpha(currentColor, 0.6);
}

button.flat {
    background-color: transparent;
}

button.flat:hover {
    background-color: alpha(currentColor, 0.1);
}
`

// colorClass returns the CSS class applying c to a widget's text.
func colorClass(c config.TextColor) string {
	return "color-" + c.ID()
}

// colorCSS generates one rule per fixed text colour.
func colorCSS() string {
	var b strings.Builder
	for _, c := range config.AllTextColors() {
		rgb, ok := c.RGB()
		if !ok {
			continue
		}
		fmt.Fprintf(&b, ".%s { color: %s; }\n", colorClass(c), rgb.Hex())
	}
	return b.String()
}

// LoadStyles loads the custom CSS styles for the application.
// Should be called during application startup.
func LoadStyles() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	provider := gtk.NewCSSProvider()
	provider.LoadFromString(appCSS + colorCSS())

	gtk.StyleContextAddProviderForDisplay(
		display,
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}
