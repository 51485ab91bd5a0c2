package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
)

// menuRows is the header height available to hints; longer lists wrap
// into further columns.
const menuRows = 6

// Menu displays keyboard shortcut hints in columns.
type Menu struct {
	*tview.TextView
	theme *Theme
}

// NewMenu creates a new menu hint bar.
func NewMenu(theme *Theme) *Menu {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 2, 0)

	return &Menu{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders menu hints column-major, menuRows per column.
func (m *Menu) Update(hints []MenuHint) {
	m.Clear()
	_, _ = fmt.Fprint(m, m.format(hints))
}

func (m *Menu) format(hints []MenuHint) string {
	keyColor := colorName(m.theme.MenuKeyColor)
	numColor := colorName(m.theme.NumericKeyColor)

	width := 0
	for _, h := range hints {
		width = max(width, len([]rune(h.Key))+len([]rune(h.Description))+3)
	}

	lines := make([]string, min(len(hints), menuRows))
	for i, h := range hints {
		kc := keyColor
		if h.Numeric {
			kc = numColor
		}
		cell := fmt.Sprintf("[%s::b]<%s>[-:-:-] %s", kc, h.Key, h.Description)
		pad := width - (len([]rune(h.Key)) + len([]rune(h.Description)) + 3)
		row := i % menuRows
		if i >= menuRows {
			lines[row] += "  "
		}
		lines[row] += cell + strings.Repeat(" ", pad)
	}
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.Join(lines, "\n")
}
