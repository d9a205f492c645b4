package applet

import "github.com/yllada/ip-applet/config"

// Event is a state change request processed by the applet loop.
type Event interface {
	event()
}

// Tick re-polls interfaces and the public IP.
type Tick struct{}

// InterfacesUpdated carries a completed interface enumeration.
type InterfacesUpdated struct {
	Addrs map[string]string
}

// PublicIPUpdated carries a completed public IP fetch.
type PublicIPUpdated struct {
	IP string
}

// ToggleInterface flips whether an interface is shown.
type ToggleInterface struct {
	Name string
}

// SetShowPublicIP shows or hides the public IP row.
type SetShowPublicIP struct {
	Show bool
}

// SetPublicIPService switches the lookup service and re-fetches at once.
type SetPublicIPService struct {
	Service config.PublicIPService
}

// SetRefreshInterval changes the poll period.
type SetRefreshInterval struct {
	Seconds uint
}

// SetTextColor changes the value colour.
type SetTextColor struct {
	Color config.TextColor
}

// SetNotify toggles public IP change notifications.
type SetNotify struct {
	Enabled bool
}

func (Tick) event()               {}
func (InterfacesUpdated) event()  {}
func (PublicIPUpdated) event()    {}
func (ToggleInterface) event()    {}
func (SetShowPublicIP) event()    {}
func (SetPublicIPService) event() {}
func (SetRefreshInterval) event() {}
func (SetTextColor) event()       {}
func (SetNotify) event()          {}
