package ui

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/yllada/ip-applet/common"
)

const (
	notifyDest   = "org.freedesktop.Notifications"
	notifyPath   = "/org/freedesktop/Notifications"
	notifyMethod = notifyDest + ".Notify"
	notifyIcon   = "network-workgroup"
)

// DBusNotifier sends desktop notifications over the session bus.
// Each notification replaces the previous one.
type DBusNotifier struct {
	conn *dbus.Conn

	mu        sync.Mutex
	replaceID uint32
}

var _ common.Notifier = (*DBusNotifier)(nil)

// NewDBusNotifier connects to the session bus.
func NewDBusNotifier() (*DBusNotifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrNotifierUnavailable, err)
	}
	return &DBusNotifier{conn: conn}, nil
}

// Notify shows a notification with the given title and message.
func (n *DBusNotifier) Notify(title, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	obj := n.conn.Object(notifyDest, notifyPath)
	call := obj.Call(notifyMethod, 0,
		common.AppName,
		n.replaceID,
		notifyIcon,
		title,
		message,
		[]string{},
		map[string]dbus.Variant{"urgency": dbus.MakeVariant(byte(1))},
		int32(common.NotificationTimeout.Milliseconds()),
	)
	if call.Err != nil {
		return common.WrapError(call.Err, "sending notification")
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return common.WrapError(err, "reading notification id")
	}
	n.replaceID = id
	return nil
}

// Close closes the bus connection.
func (n *DBusNotifier) Close() error {
	return n.conn.Close()
}
