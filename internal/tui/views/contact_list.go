package views

import (
	"fmt"

	"github.com/matheus3301/mockchat/internal/store"
	"github.com/matheus3301/mockchat/internal/tui/ui"
	"github.com/rivo/tview"
)

// ContactList shows every contact with presence.
type ContactList struct {
	*tview.Table
	theme    *ui.Theme
	contacts []*store.Contact
}

// NewContactList creates the contacts table.
func NewContactList(theme *ui.Theme) *ContactList {
	return &ContactList{Table: theme.NewTable(" Контакты "), theme: theme}
}

// Name implements Component.
func (cl *ContactList) Name() string { return "contacts" }

// Hints implements Component.
func (cl *ContactList) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Chat"},
		{Key: "Esc", Description: "Back"},
	}
}

// Update renders the contacts.
func (cl *ContactList) Update(contacts []*store.Contact) {
	cl.contacts = contacts
	cl.Clear()

	cl.theme.SetHeader(cl.Table, " ", " NAME", " STATUS")
	for i, c := range contacts {
		status := cl.theme.MutedColor
		if c.Status == store.Online {
			status = cl.theme.OnlineColor
		}
		cl.SetCell(i+1, 0, tview.NewTableCell(" "+initials(c.Name)).SetTextColor(cl.theme.TitleColor))
		cl.SetCell(i+1, 1, tview.NewTableCell(" "+sanitizeForTerminal(c.Name)).SetExpansion(1).SetTextColor(cl.theme.FgColor))
		cl.SetCell(i+1, 2, tview.NewTableCell(" "+presence(c)).SetTextColor(status))
	}
	cl.SetTitle(fmt.Sprintf(" Контакты (%d) ", len(contacts)))
}

// SelectedContact returns the highlighted contact's id, 0 if none.
func (cl *ContactList) SelectedContact() int64 {
	row, _ := cl.GetSelection()
	if row < 1 || row > len(cl.contacts) {
		return 0
	}
	return cl.contacts[row-1].ID
}
