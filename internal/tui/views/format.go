package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/matheus3301/mockchat/internal/store"
)

// initials returns the first letter of each word, e.g. "АС" for
// "Анна Соколова".
func initials(name string) string {
	var b strings.Builder
	for _, w := range strings.Fields(name) {
		r := []rune(w)
		b.WriteRune(r[0])
	}
	return b.String()
}

// presence renders a contact's status line.
func presence(c *store.Contact) string {
	if c == nil {
		return ""
	}
	if c.Status == store.Online {
		return "В сети"
	}
	return c.LastSeen
}

// bar draws a percentage as a width-cell gauge.
func bar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(math.Round(percent / 100 * float64(width)))
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// percentLabel formats a 0-100 value without decimals.
func percentLabel(p float64) string {
	return fmt.Sprintf("%.0f%%", p)
}
