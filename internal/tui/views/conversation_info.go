package views

import (
	"fmt"

	"github.com/matheus3301/mockchat/internal/store"
	"github.com/matheus3301/mockchat/internal/tui/ui"
	"github.com/matheus3301/mockchat/internal/usage"
	"github.com/rivo/tview"
)

// ConversationInfo displays detailed information about a conversation.
type ConversationInfo struct {
	*tview.TextView
	theme *ui.Theme
}

// NewConversationInfo creates a new conversation info view.
func NewConversationInfo(theme *ui.Theme) *ConversationInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Details ")
	tv.SetTitleColor(theme.TitleColor)

	return &ConversationInfo{
		TextView: tv,
		theme:    theme,
	}
}

// Name implements Component.
func (ci *ConversationInfo) Name() string { return "details" }

// Hints implements Component.
func (ci *ConversationInfo) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
	}
}

// Update renders conversation details.
func (ci *ConversationInfo) Update(chat store.Chat) {
	ci.SetText(formatChatInfo(ci.theme, &chat))
	ci.SetTitle(fmt.Sprintf(" %s ", display(contactName(&chat))))
}

func formatChatInfo(theme *ui.Theme, chat *store.Chat) string {
	fg := ui.Tag(theme.FgColor)
	ct := ui.Tag(theme.CounterColor)
	counts := usage.Count([]store.Chat{*chat})

	status := "-"
	if chat.Contact != nil {
		status = presence(chat.Contact)
	}
	lastActive := chat.Time
	if lastActive == "" {
		lastActive = "-"
	}

	rows := [][2]string{
		{"Name:", display(contactName(chat))},
		{"Chat ID:", fmt.Sprintf("%d", chat.ID)},
		{"Status:", display(status)},
		{"Unread:", fmt.Sprintf("%d", chat.Unread)},
		{"Messages:", fmt.Sprintf("%d (text %d, media %d, files %d, polls %d)", counts.Total, counts.Text, counts.Media, counts.Files, counts.Polls)},
		{"Last Active:", lastActive},
		{"Last Message:", display(chat.LastMessage)},
	}
	out := "\n"
	for _, r := range rows {
		out += fmt.Sprintf(" %s[::b]%-14s[-:-:-] %s%s[-]\n", fg, r[0], ct, r[1])
	}
	return out
}
