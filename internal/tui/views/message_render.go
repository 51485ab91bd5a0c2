package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/mockchat/internal/store"
	"github.com/matheus3301/mockchat/internal/tui/ui"
)

const pollBarWidth = 20

// renderMessage formats one message for the thread view. Sent messages are
// attributed to "Вы", received ones to the contact.
func renderMessage(theme *ui.Theme, m *store.Message, contact string) string {
	sender, color := contact, theme.ReceivedColor
	if m.Sent {
		sender, color = "Вы", theme.SentColor
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s[::b]%s[-:-:-] [::d]%s%s[-:-:-]\n", ui.Tag(color), display(sender), m.Time, receipt(m))

	switch m.Kind() {
	case store.TypeAudio:
		fmt.Fprintf(&b, "▶ %s  %s\n", store.AudioLabel, store.FormatDuration(m.Duration))
	case store.TypeVideo:
		fmt.Fprintf(&b, "▶ %s  %s\n", store.VideoLabel, store.FormatDuration(m.Duration))
	case store.TypeFile:
		fmt.Fprintf(&b, "%s %s  [::d]%s[-:-:-]\n", store.FileGlyph, display(m.FileName), display(m.FileSize))
	case store.TypePoll:
		b.WriteString(renderPoll(theme, m))
	default:
		b.WriteString(display(m.Text))
		b.WriteString("\n")
	}
	return b.String()
}

func receipt(m *store.Message) string {
	if !m.Sent {
		return ""
	}
	if m.Read {
		return " ✓✓"
	}
	return " ✓"
}

// renderPoll lists the options with their vote key until the viewer votes,
// then shows per-option bars, percentages and the total.
func renderPoll(theme *ui.Theme, m *store.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [::b]%s[-:-:-]\n", store.PollGlyph, display(m.PollQuestion))

	if !m.Voted() {
		for i, o := range m.PollOptions {
			fmt.Fprintf(&b, "  %s[%d[][-] %s\n", ui.Tag(theme.MenuKeyColor), i+1, display(o.Text))
		}
		return b.String()
	}

	for _, o := range m.PollOptions {
		p := m.Percent(o)
		mark := " "
		if *m.UserVote == o.ID {
			mark = "✓"
		}
		fmt.Fprintf(&b, "  %s %s%s[-] %4s %s\n", mark, ui.Tag(theme.BarColor), bar(p, pollBarWidth), percentLabel(p), display(o.Text))
	}
	fmt.Fprintf(&b, "  [::d]Всего голосов: %d[-:-:-]\n", m.TotalVotes())
	return b.String()
}
