package ui

import (
	"github.com/atotto/clipboard"
	"github.com/yllada/ip-applet/common"
)

// SystemClipboard writes through the platform clipboard tools
// (wl-copy, xclip or xsel). It works without a GTK main loop.
type SystemClipboard struct{}

var _ common.Clipboard = SystemClipboard{}

// NewSystemClipboard returns the system clipboard.
func NewSystemClipboard() SystemClipboard {
	return SystemClipboard{}
}

// WriteText replaces the clipboard contents with text.
func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return common.WrapError(common.ErrNoDisplay, "no clipboard tool found")
	}
	return clipboard.WriteAll(text)
}
