package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const crumbSeparator = " › "

// Crumbs is a breadcrumb bar showing the current navigation path.
type Crumbs struct {
	*tview.TextView
	theme *Theme
}

// NewCrumbs creates a new breadcrumb bar.
func NewCrumbs(theme *Theme) *Crumbs {
	tv := tview.NewTextView().SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)
	return &Crumbs{TextView: tv, theme: theme}
}

// Update renders the breadcrumb trail; the last name is the active page.
func (c *Crumbs) Update(names []string) {
	c.Clear()
	_, _ = fmt.Fprint(c, c.format(names))
}

func (c *Crumbs) format(names []string) string {
	var b strings.Builder
	for i, name := range names {
		fg, bg, attr := c.theme.CrumbInactiveFg, c.theme.CrumbInactiveBg, ""
		if i == len(names)-1 {
			fg, bg, attr = c.theme.CrumbActiveFg, c.theme.CrumbActiveBg, "b"
		}
		if i > 0 {
			b.WriteString(crumbSeparator)
		}
		fmt.Fprintf(&b, "[%s:%s:%s] %s [-:-:-]", colorName(fg), colorName(bg), attr, tview.Escape(name))
	}
	return b.String()
}

// colorName returns a tview color tag value for c. Hex keeps it stable
// for colors that have several names.
func colorName(c tcell.Color) string {
	if c == tcell.ColorDefault {
		return "-"
	}
	return fmt.Sprintf("#%06x", c.Hex())
}
