package ui

import (
	"fmt"
	"time"

	"github.com/rivo/tview"
)

// SessionData holds session information for display.
type SessionData struct {
	Session  string
	Profile  string
	Mode     string
	Chats    int
	Messages int
	Unread   int
	Uptime   time.Duration
}

// SessionInfo displays session metadata in the header.
type SessionInfo struct {
	*tview.TextView
	theme *Theme
}

// NewSessionInfo creates a new session info panel.
func NewSessionInfo(theme *Theme) *SessionInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 1, 1)

	return &SessionInfo{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders the session info.
func (si *SessionInfo) Update(data *SessionData) {
	si.Clear()
	if data == nil {
		return
	}
	_, _ = fmt.Fprint(si, si.format(data))
}

func (si *SessionInfo) format(data *SessionData) string {
	fg := colorName(si.theme.FgColor)
	ct := colorName(si.theme.CounterColor)

	mode := data.Mode
	if mode == "" {
		mode = "-"
	}
	rows := []struct{ label, value string }{
		{"Session:", data.Session},
		{"Profile:", data.Profile},
		{"Mode:", mode},
		{"Chats:", fmt.Sprintf("%d (%d unread)", data.Chats, data.Unread)},
		{"Msgs:", fmt.Sprintf("%d", data.Messages)},
		{"Uptime:", FormatUptime(data.Uptime)},
	}

	var out string
	for i, r := range rows {
		if i > 0 {
			out += "\n"
		}
		out += fmt.Sprintf("[%s::b]%-9s[-:-:-][%s]%s[-]", fg, r.label, ct, tview.Escape(r.value))
	}
	return out
}

// FormatUptime renders d as "1h5m" or "5m".
func FormatUptime(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
