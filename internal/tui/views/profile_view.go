package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/mockchat/internal/tui/ui"
	"github.com/rivo/tview"
	qrcode "github.com/skip2/go-qrcode"
)

// Profile is the local user's card.
type Profile struct {
	Name     string
	Username string
	Phone    string
	Email    string
	About    string
}

// DefaultProfile is the offline user shown on the profile page.
var DefaultProfile = Profile{
	Name:     "Вы",
	Username: "@username",
	Phone:    "+7 900 123-45-67",
	Email:    "user@example.com",
	About:    "Доступен для общения",
}

// Link is the contact link encoded in the profile QR code.
func (p Profile) Link(session string) string {
	return "mockchat://profile/" + session + "/" + strings.TrimPrefix(p.Username, "@")
}

// ProfileView shows the profile card and its QR code.
type ProfileView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewProfileView creates the profile page.
func NewProfileView(theme *ui.Theme) *ProfileView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Профиль ")
	tv.SetTitleColor(theme.TitleColor)

	return &ProfileView{TextView: tv, theme: theme}
}

// Name implements Component.
func (pv *ProfileView) Name() string { return "profile" }

// Hints implements Component.
func (pv *ProfileView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
	}
}

// Update renders p with a QR code for its link.
func (pv *ProfileView) Update(p Profile, session string) {
	ct := ui.Tag(pv.theme.CounterColor)
	var b strings.Builder
	fmt.Fprintf(&b, "\n[::b]%s[-:-:-]\n[::d]%s[-:-:-]\n\n", display(p.Name), display(p.Username))
	fmt.Fprintf(&b, "Телефон  %s%s[-]\nEmail  %s%s[-]\nО себе  %s%s[-]\n\n", ct, p.Phone, ct, p.Email, ct, display(p.About))
	b.WriteString(renderQR(p.Link(session)))
	pv.SetText(b.String())
}

// renderQR converts a string to a compact QR code using Unicode half-block
// characters, two bitmap rows per terminal line.
func renderQR(content string) string {
	qr, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return "(QR generation failed: " + err.Error() + ")"
	}

	bitmap := qr.Bitmap()
	rows := len(bitmap)
	cols := 0
	if rows > 0 {
		cols = len(bitmap[0])
	}

	var sb strings.Builder
	for y := 0; y < rows; y += 2 {
		for x := 0; x < cols; x++ {
			top := bitmap[y][x]
			bot := y+1 < rows && bitmap[y+1][x]
			switch {
			case top && bot:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bot:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
