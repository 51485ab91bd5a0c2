package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/mockchat/internal/store"
	"github.com/matheus3301/mockchat/internal/tui/ui"
	"github.com/rivo/tview"
)

// ConversationList is the main chat list view.
type ConversationList struct {
	*tview.Table
	theme   *ui.Theme
	chats   []store.Chat
	visible []int64
	filter  string
}

// NewConversationList creates a new conversation list table.
func NewConversationList(theme *ui.Theme) *ConversationList {
	return &ConversationList{
		Table: theme.NewTable(" Чаты "),
		theme: theme,
	}
}

// Name implements Component.
func (cl *ConversationList) Name() string { return "chats" }

// Hints implements Component.
func (cl *ConversationList) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Open"},
		{Key: "/", Description: "Filter"},
		{Key: "1-9", Description: "Jump", Numeric: true},
	}
}

// Update refreshes the chat list with new data, keeping the selection on
// the same chat when it is still visible.
func (cl *ConversationList) Update(chats []store.Chat) {
	selected := cl.SelectedChat()
	cl.chats = chats
	cl.render()
	cl.selectChat(selected)
}

// SetFilter sets the active filter text and re-renders.
func (cl *ConversationList) SetFilter(filter string) {
	cl.filter = filter
	cl.render()
}

// ClearFilter clears the active filter.
func (cl *ConversationList) ClearFilter() {
	cl.filter = ""
	cl.render()
}

// Filter returns the active filter.
func (cl *ConversationList) Filter() string {
	return cl.filter
}

func (cl *ConversationList) matches(c *store.Chat) bool {
	if cl.filter == "" {
		return true
	}
	f := strings.ToLower(cl.filter)
	return strings.Contains(strings.ToLower(contactName(c)), f) ||
		strings.Contains(strings.ToLower(c.LastMessage), f)
}

func (cl *ConversationList) render() {
	cl.Clear()

	cl.theme.SetHeader(cl.Table, " NAME", " LAST MESSAGE", " TIME", " NEW")
	cl.GetCell(0, 0).SetExpansion(1)
	cl.GetCell(0, 1).SetExpansion(2)

	cl.visible = cl.visible[:0]
	row := 1
	for i := range cl.chats {
		chat := &cl.chats[i]
		if !cl.matches(chat) {
			continue
		}
		cl.visible = append(cl.visible, chat.ID)

		dot := " "
		if chat.Contact != nil && chat.Contact.Status == store.Online {
			dot = "●"
		}
		unread := ""
		if chat.Unread > 0 {
			unread = fmt.Sprintf("%d", chat.Unread)
		}

		cl.SetCell(row, 0, tview.NewTableCell(" "+dot+" "+sanitizeForTerminal(contactName(chat))).SetExpansion(1).SetTextColor(cl.theme.FgColor))
		cl.SetCell(row, 1, tview.NewTableCell(" "+sanitizeForTerminal(chat.LastMessage)).SetExpansion(2).SetMaxWidth(48).SetTextColor(cl.theme.FgColor))
		cl.SetCell(row, 2, tview.NewTableCell(" "+chat.Time).SetTextColor(cl.theme.MutedColor).SetAlign(tview.AlignRight))
		cl.SetCell(row, 3, tview.NewTableCell(unread).SetTextColor(cl.theme.CounterColor).SetAlign(tview.AlignRight).SetAttributes(tcell.AttrBold))
		row++
	}

	if cl.filter != "" {
		cl.SetTitle(fmt.Sprintf(" Чаты (%d/%d) filter: %s ", len(cl.visible), len(cl.chats), cl.filter))
	} else {
		cl.SetTitle(fmt.Sprintf(" Чаты (%d) ", len(cl.chats)))
	}
}

// SelectedChat returns the id of the selected chat, 0 if none.
func (cl *ConversationList) SelectedChat() int64 {
	row, _ := cl.GetSelection()
	return cl.ChatByIndex(row)
}

// ChatByIndex returns the id of the Nth visible conversation (1-based).
func (cl *ConversationList) ChatByIndex(n int) int64 {
	if n < 1 || n > len(cl.visible) {
		return 0
	}
	return cl.visible[n-1]
}

func (cl *ConversationList) selectChat(id int64) {
	for i, v := range cl.visible {
		if v == id {
			cl.Select(i+1, 0)
			return
		}
	}
}

func contactName(c *store.Chat) string {
	if c.Contact == nil {
		return fmt.Sprintf("chat %d", c.ID)
	}
	return c.Contact.Name
}
