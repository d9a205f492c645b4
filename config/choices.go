package config

import (
	"fmt"

	"github.com/yllada/ip-applet/common"
)

// PublicIPService selects the HTTP endpoint used to resolve the public address.
type PublicIPService int

const (
	ServiceIfconfig PublicIPService = iota
	ServiceIpify
	ServiceIpify4
	ServiceIcanhazmyip
)

type serviceInfo struct {
	id    string
	label string
	url   string
}

var services = [...]serviceInfo{
	ServiceIfconfig:    {"ifconfig", "ifconfig.io", "https://ifconfig.io/ip"},
	ServiceIpify:       {"ipify", "ipify.org", "https://api.ipify.org"},
	ServiceIpify4:      {"ipify4", "api4.ipify.org", "https://api4.ipify.org"},
	ServiceIcanhazmyip: {"icanhazmyip", "icanhazmyip.com", "https://icanhazmyip.com/ip"},
}

// AllServices returns every public IP service in display order.
func AllServices() []PublicIPService {
	return []PublicIPService{ServiceIfconfig, ServiceIpify, ServiceIpify4, ServiceIcanhazmyip}
}

// Valid reports whether s is one of the known services.
func (s PublicIPService) Valid() bool {
	return s >= 0 && int(s) < len(services)
}

// ID returns the identifier stored in the configuration file.
func (s PublicIPService) ID() string {
	if !s.Valid() {
		return ""
	}
	return services[s].id
}

// Label returns the human-readable service name.
func (s PublicIPService) Label() string {
	if !s.Valid() {
		return "unknown"
	}
	return services[s].label
}

// URL returns the endpoint queried for the public address.
func (s PublicIPService) URL() string {
	if !s.Valid() {
		return services[ServiceIfconfig].url
	}
	return services[s].url
}

func (s PublicIPService) String() string {
	return s.Label()
}

// ParseService maps a configuration identifier back to a service.
func ParseService(id string) (PublicIPService, error) {
	for i, info := range services {
		if info.id == id {
			return PublicIPService(i), nil
		}
	}
	return ServiceIfconfig, fmt.Errorf("%w: %q", common.ErrInvalidService, id)
}

// RGB is a colour with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// Hex returns the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// TextColor is the colour used for address values.
// TextDefault leaves the theme colour untouched.
type TextColor int

const (
	TextDefault TextColor = iota
	TextWhite
	TextGreen
	TextCyan
	TextYellow
	TextOrange
	TextRed
)

type colorInfo struct {
	id    string
	label string
	rgb   *RGB
}

var colors = [...]colorInfo{
	TextDefault: {"default", "Default (theme)", nil},
	TextWhite:   {"white", "White", &RGB{255, 255, 255}},
	TextGreen:   {"green", "Green", &RGB{0, 217, 77}},
	TextCyan:    {"cyan", "Cyan", &RGB{0, 217, 217}},
	TextYellow:  {"yellow", "Yellow", &RGB{255, 217, 0}},
	TextOrange:  {"orange", "Orange", &RGB{255, 140, 0}},
	TextRed:     {"red", "Red", &RGB{230, 51, 51}},
}

// AllTextColors returns every text colour in display order.
func AllTextColors() []TextColor {
	return []TextColor{TextDefault, TextWhite, TextGreen, TextCyan, TextYellow, TextOrange, TextRed}
}

// Valid reports whether c is one of the known colours.
func (c TextColor) Valid() bool {
	return c >= 0 && int(c) < len(colors)
}

// ID returns the identifier stored in the configuration file.
func (c TextColor) ID() string {
	if !c.Valid() {
		return ""
	}
	return colors[c].id
}

// Label returns the human-readable colour name.
func (c TextColor) Label() string {
	if !c.Valid() {
		return "unknown"
	}
	return colors[c].label
}

// RGB returns the colour value. ok is false for TextDefault.
func (c TextColor) RGB() (rgb RGB, ok bool) {
	if !c.Valid() || colors[c].rgb == nil {
		return RGB{}, false
	}
	return *colors[c].rgb, true
}

func (c TextColor) String() string {
	return c.Label()
}

// ParseTextColor maps a configuration identifier back to a colour.
func ParseTextColor(id string) (TextColor, error) {
	for i, info := range colors {
		if info.id == id {
			return TextColor(i), nil
		}
	}
	return TextDefault, fmt.Errorf("%w: %q", common.ErrInvalidColor, id)
}

// ValidRefreshInterval reports whether secs is one of the offered intervals.
func ValidRefreshInterval(secs uint) bool {
	for _, v := range common.RefreshIntervals {
		if v == secs {
			return true
		}
	}
	return false
}
