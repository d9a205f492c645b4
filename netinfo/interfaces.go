package netinfo

import (
	"context"
	"net"

	"github.com/yllada/ip-applet/common"
)

// Interface is the subset of a host interface the enumerator inspects.
type Interface struct {
	Name  string
	Flags net.Flags
	Addrs []net.Addr
}

// InterfaceSource lists host interfaces.
type InterfaceSource func() ([]Interface, error)

// Enumerator lists local interfaces that are up and carry an IPv4 address.
type Enumerator struct {
	source InterfaceSource
}

var _ common.InterfaceLister = (*Enumerator)(nil)

// NewEnumerator returns an enumerator backed by the operating system.
func NewEnumerator() *Enumerator {
	return &Enumerator{source: systemInterfaces}
}

// NewEnumeratorWithSource returns an enumerator backed by source.
func NewEnumeratorWithSource(source InterfaceSource) *Enumerator {
	return &Enumerator{source: source}
}

// Interfaces returns interface name -> IPv4 address.
// Loopback, down, and IPv6-only interfaces are omitted. When listing fails
// the result is empty.
func (e *Enumerator) Interfaces(ctx context.Context) map[string]string {
	result := make(map[string]string)

	if ctx.Err() != nil {
		return result
	}

	ifaces, err := e.source()
	if err != nil {
		common.LogWarn("Listing network interfaces failed: %v", err)
		return result
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}
		if ip := firstIPv4(iface.Addrs); ip != "" {
			result[iface.Name] = ip
		}
	}

	return result
}

// firstIPv4 returns the first non-loopback IPv4 address in addrs.
func firstIPv4(addrs []net.Addr) string {
	for _, addr := range addrs {
		var ip net.IP
		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}

		if ip == nil || ip.IsLoopback() {
			continue
		}
		if v4 := ip.To4(); v4 != nil {
			return v4.String()
		}
	}
	return ""
}

func systemInterfaces() ([]Interface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	result := make([]Interface, 0, len(ifaces))
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			common.LogDebug("Reading addresses of %s failed: %v", iface.Name, err)
			continue
		}
		result = append(result, Interface{
			Name:  iface.Name,
			Flags: iface.Flags,
			Addrs: addrs,
		})
	}
	return result, nil
}
