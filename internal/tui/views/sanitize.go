package views

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/tview"
)

// sanitizeForTerminal removes codepoints that tcell renders badly: skin tone
// modifiers, zero width joiners, variation selectors and control characters
// other than newline. Emoji sequences degrade to their base glyph.
func sanitizeForTerminal(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isProblematicRune(r) {
			b.WriteRune(r)
		}
		i += size
	}
	return b.String()
}

// display prepares user content for a dynamic-color tview widget.
func display(s string) string {
	return tview.Escape(sanitizeForTerminal(s))
}

func isProblematicRune(r rune) bool {
	switch {
	case r == '\n':
		return false
	case unicode.IsControl(r):
		return true
	// Skin tone modifiers.
	case r >= 0x1F3FB && r <= 0x1F3FF:
		return true
	// Zero Width Joiner.
	case r == 0x200D:
		return true
	// Variation Selectors.
	case r >= 0xFE00 && r <= 0xFE0F:
		return true
	// Variation Selectors Supplement.
	case r >= 0xE0100 && r <= 0xE01EF:
		return true
	default:
		return false
	}
}
