package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/mockchat/internal/tui/ui"
	"github.com/rivo/tview"
)

type helpSection struct {
	title string
	rows  [][2]string
}

var helpSections = []helpSection{
	{"Global Keys", [][2]string{
		{":", "Command mode"},
		{"/", "Filter chats"},
		{"Esc", "Cancel / Go back"},
		{"?", "Help"},
		{"c / p / g", "Contacts / Profile / Settings"},
		{"q", "Quit"},
	}},
	{"Conversation List", [][2]string{
		{"Enter", "Open conversation"},
		{"1-9", "Jump to Nth chat"},
		{"0", "Clear filter"},
	}},
	{"Conversation", [][2]string{
		{"i", "Focus composer"},
		{"d", "Conversation details"},
		{"1-9", "Vote in the newest open poll"},
		{"Ctrl-T", "Emoji picker"},
		{"Ctrl-O", "Attach menu (file, poll)"},
		{"Ctrl-R / Ctrl-V", "Record voice / video note"},
		{"Ctrl-S", "Stop recording and send"},
		{"Ctrl-X", "Remove the poll option being edited"},
	}},
	{"Commands (: mode)", [][2]string{
		{":chat <name>", "Open chat by contact name"},
		{":search <query>", "Search messages"},
		{":attach <path>", "Send a file"},
		{":poll", "Create a poll"},
		{":audio / :video", "Start recording"},
		{":stop", "Stop recording"},
		{":vote <n>", "Vote for option n"},
		{":storage", "Storage usage"},
		{":contacts / :profile / :settings", "Open page"},
		{":help / :h", "Show this help"},
		{":quit / :q", "Quit application"},
	}},
}

// HelpView displays key binding reference.
type HelpView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewHelpView creates a new help view.
func NewHelpView(theme *ui.Theme) *HelpView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Help ")
	tv.SetTitleColor(theme.TitleColor)

	hv := &HelpView{
		TextView: tv,
		theme:    theme,
	}
	hv.SetText(formatHelp(theme))
	return hv
}

// Name implements Component.
func (hv *HelpView) Name() string { return "help" }

// Hints implements Component.
func (hv *HelpView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
	}
}

func formatHelp(theme *ui.Theme) string {
	kc := ui.Tag(theme.MenuKeyColor)
	var b strings.Builder
	for _, s := range helpSections {
		fmt.Fprintf(&b, "\n  [::b]%s[-:-:-]\n\n", s.title)
		for _, r := range s.rows {
			fmt.Fprintf(&b, "  %s%-34s[-] %s\n", kc, tview.Escape(r[0]), r[1])
		}
	}
	return b.String()
}
