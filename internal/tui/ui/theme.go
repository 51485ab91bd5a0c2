package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Theme holds the colors every view draws with.
type Theme struct {
	BgColor          tcell.Color
	FgColor          tcell.Color
	MutedColor       tcell.Color
	BorderColor      tcell.Color
	BorderFocusColor tcell.Color
	TitleColor       tcell.Color
	CounterColor     tcell.Color

	TableHeaderFg tcell.Color
	TableHeaderBg tcell.Color
	TableCursorFg tcell.Color
	TableCursorBg tcell.Color

	CrumbActiveFg   tcell.Color
	CrumbActiveBg   tcell.Color
	CrumbInactiveFg tcell.Color
	CrumbInactiveBg tcell.Color

	MenuKeyColor      tcell.Color
	NumericKeyColor   tcell.Color
	PromptBorderColor tcell.Color

	FlashInfoColor tcell.Color
	FlashWarnColor tcell.Color
	FlashErrColor  tcell.Color

	SentColor      tcell.Color
	ReceivedColor  tcell.Color
	OnlineColor    tcell.Color
	RecordingColor tcell.Color
	BarColor       tcell.Color
}

// DefaultTheme returns the dark terminal palette.
func DefaultTheme() *Theme {
	var (
		accent = tcell.ColorDodgerBlue
		light  = tcell.ColorLightSkyBlue
		warm   = tcell.ColorPapayaWhip
		pop    = tcell.ColorFuchsia
		bg     = tcell.ColorBlack
	)
	return &Theme{
		BgColor:          bg,
		FgColor:          tcell.ColorCadetBlue,
		MutedColor:       tcell.ColorGray,
		BorderColor:      accent,
		BorderFocusColor: light,
		TitleColor:       pop,
		CounterColor:     warm,

		TableHeaderFg: tcell.ColorWhite,
		TableHeaderBg: bg,
		TableCursorFg: bg,
		TableCursorBg: tcell.ColorAqua,

		CrumbActiveFg:   bg,
		CrumbActiveBg:   tcell.ColorOrange,
		CrumbInactiveFg: bg,
		CrumbInactiveBg: tcell.ColorAqua,

		MenuKeyColor:      accent,
		NumericKeyColor:   pop,
		PromptBorderColor: accent,

		FlashInfoColor: tcell.ColorNavajoWhite,
		FlashWarnColor: tcell.ColorOrange,
		FlashErrColor:  tcell.ColorOrangeRed,

		SentColor:      light,
		ReceivedColor:  warm,
		OnlineColor:    tcell.ColorLimeGreen,
		RecordingColor: tcell.ColorRed,
		BarColor:       accent,
	}
}

// CursorStyle is the highlight for the selected table row.
func (t *Theme) CursorStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(t.TableCursorFg).Background(t.TableCursorBg)
}

// NewTable returns a bordered, row-selectable table with a fixed header row.
func (t *Theme) NewTable(title string) *tview.Table {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0).
		SetSelectedStyle(t.CursorStyle())
	table.SetBorder(true).
		SetBorderColor(t.BorderColor).
		SetTitleColor(t.TitleColor).
		SetTitle(title).
		SetBackgroundColor(t.BgColor)
	return table
}

// SetHeader writes a bold, unselectable header into row 0.
func (t *Theme) SetHeader(table *tview.Table, headers ...string) {
	for col, h := range headers {
		table.SetCell(0, col, tview.NewTableCell(h).
			SetSelectable(false).
			SetTextColor(t.TableHeaderFg).
			SetBackgroundColor(t.TableHeaderBg).
			SetAttributes(tcell.AttrBold))
	}
}

// Tag returns a tview color tag for c, e.g. "[#1e90ff]".
func Tag(c tcell.Color) string {
	return "[" + colorName(c) + "]"
}
