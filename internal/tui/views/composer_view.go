package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/mockchat/internal/composer"
	"github.com/matheus3301/mockchat/internal/store"
	"github.com/matheus3301/mockchat/internal/tui/ui"
	"github.com/rivo/tview"
)

// Emojis offered by the picker.
var Emojis = []string{"😀", "😂", "😍", "😎", "🤔", "😢", "👍", "👋", "🙏", "🔥", "🎉", "💯"}

// Attach menu entries.
const (
	attachFile = "Файл"
	attachPoll = "Опрос"
)

// ComposerView is the input region under a conversation. It drives a
// composer.Composer and lays itself out for the composer's mode.
type ComposerView struct {
	*tview.Flex
	theme     *ui.Theme
	c         *composer.Composer
	indicator *tview.TextView
	input     *tview.InputField
	emoji     *tview.List
	attach    *tview.List
	poll      *PollForm
	layout    string

	onSent       func(store.Message)
	onAttachFile func()
	onChanged    func()
	onError      func(string)
}

// NewComposerView creates the composer region for c.
func NewComposerView(theme *ui.Theme, c *composer.Composer) *ComposerView {
	indicator := tview.NewTextView().SetDynamicColors(true)
	indicator.SetBackgroundColor(theme.BgColor)

	input := tview.NewInputField().
		SetLabel(" > ").
		SetFieldWidth(0).
		SetPlaceholder("Введите сообщение...")
	input.SetBorder(true)
	input.SetBorderColor(theme.BorderColor)
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetLabelColor(theme.MenuKeyColor)

	cv := &ComposerView{
		Flex:      tview.NewFlex().SetDirection(tview.FlexRow),
		theme:     theme,
		c:         c,
		indicator: indicator,
		input:     input,
		emoji:     newOverlayList(theme, " Эмодзи "),
		attach:    newOverlayList(theme, " Прикрепить "),
	}
	cv.poll = NewPollForm(theme, c)
	cv.poll.SetOnDone(cv.pollDone)

	for _, e := range Emojis {
		cv.emoji.AddItem(e, "", 0, nil)
	}
	cv.emoji.SetSelectedFunc(func(_ int, glyph, _ string, _ rune) {
		cv.InsertEmoji(glyph)
	})
	cv.emoji.SetDoneFunc(func() {
		cv.c.CloseEmoji()
		cv.changed()
	})

	cv.attach.AddItem(attachFile, "", 'f', nil)
	cv.attach.AddItem(attachPoll, "", 'p', nil)
	cv.attach.SetSelectedFunc(func(_ int, item, _ string, _ rune) {
		cv.chooseAttachment(item)
	})
	cv.attach.SetDoneFunc(func() {
		cv.c.CloseAttach()
		cv.changed()
	})

	input.SetChangedFunc(func(text string) { cv.c.SetText(text) })
	input.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			cv.Send()
		}
	})

	cv.Refresh()
	return cv
}

func newOverlayList(theme *ui.Theme, title string) *tview.List {
	l := tview.NewList().ShowSecondaryText(false)
	l.SetBorder(true)
	l.SetBorderColor(theme.BorderFocusColor)
	l.SetBackgroundColor(theme.BgColor)
	l.SetMainTextColor(theme.FgColor)
	l.SetTitle(title)
	l.SetTitleColor(theme.TitleColor)
	return l
}

// SetOnSent sets the callback run after a message was appended.
func (cv *ComposerView) SetOnSent(fn func(store.Message)) { cv.onSent = fn }

// SetOnAttachFile sets the callback run when "Файл" is chosen.
func (cv *ComposerView) SetOnAttachFile(fn func()) { cv.onAttachFile = fn }

// SetOnChanged sets the callback run after layout or focus should change.
func (cv *ComposerView) SetOnChanged(fn func()) { cv.onChanged = fn }

// SetOnError sets the callback for user-facing failures.
func (cv *ComposerView) SetOnError(fn func(string)) { cv.onError = fn }

// Input returns the text field.
func (cv *ComposerView) Input() *tview.InputField { return cv.input }

// Send sends the current text.
func (cv *ComposerView) Send() {
	msg, ok := cv.c.Send()
	if !ok {
		return
	}
	cv.input.SetText("")
	cv.sent(msg)
}

// InsertEmoji appends glyph to the input; the picker stays open.
func (cv *ComposerView) InsertEmoji(glyph string) {
	cv.c.InsertEmoji(glyph)
	cv.input.SetText(cv.c.Text())
}

// ToggleEmoji opens or closes the emoji picker.
func (cv *ComposerView) ToggleEmoji() {
	cv.c.ToggleEmoji()
	cv.changed()
}

// ToggleAttach opens or closes the attach menu.
func (cv *ComposerView) ToggleAttach() {
	cv.c.ToggleAttach()
	cv.changed()
}

func (cv *ComposerView) chooseAttachment(item string) {
	switch item {
	case attachFile:
		cv.c.CloseAttach()
		cv.changed()
		if cv.onAttachFile != nil {
			cv.onAttachFile()
		}
	case attachPoll:
		cv.StartPoll()
	}
}

// StartPoll switches to the poll form.
func (cv *ComposerView) StartPoll() bool {
	if !cv.c.OpenPoll() {
		return false
	}
	cv.poll.Reset()
	cv.changed()
	return true
}

func (cv *ComposerView) pollDone(msg *store.Message) {
	if msg != nil {
		cv.sent(*msg)
	}
	cv.changed()
}

func (cv *ComposerView) sent(msg store.Message) {
	if cv.onSent != nil {
		cv.onSent(msg)
	}
}

func (cv *ComposerView) changed() {
	cv.Refresh()
	if cv.onChanged != nil {
		cv.onChanged()
	}
}

// Refresh lays the view out for the composer's state and redraws the
// recording indicator.
func (cv *ComposerView) Refresh() {
	mode := cv.c.Mode()
	layout := fmt.Sprintf("%s/%t/%t", mode, cv.c.EmojiOpen(), cv.c.AttachOpen())
	if layout != cv.layout {
		cv.layout = layout
		cv.Clear()
		switch {
		case mode == composer.CreatingPoll:
			cv.AddItem(cv.poll, 0, 1, true)
		default:
			if cv.c.EmojiOpen() {
				cv.AddItem(cv.emoji, 8, 0, true)
			}
			if cv.c.AttachOpen() {
				cv.AddItem(cv.attach, 4, 0, true)
			}
			cv.AddItem(cv.indicator, 1, 0, false)
			cv.AddItem(cv.input, 3, 0, true)
		}
	}
	cv.SetTick(cv.c.Elapsed())
}

// SetTick redraws the indicator line with the given recording clock.
func (cv *ComposerView) SetTick(elapsed int) {
	cv.indicator.Clear()
	_, _ = fmt.Fprint(cv.indicator, indicatorText(cv.theme, cv.c.Mode(), elapsed))
}

func indicatorText(theme *ui.Theme, mode composer.Mode, elapsed int) string {
	switch mode {
	case composer.RecordingAudio:
		return fmt.Sprintf(" %s● %s[-] Запись голосового  [::d]Ctrl-S stop[-:-:-]", ui.Tag(theme.RecordingColor), store.FormatDuration(elapsed))
	case composer.RecordingVideo:
		return fmt.Sprintf(" %s● %s[-] Запись видео  [::d]Ctrl-S stop[-:-:-]", ui.Tag(theme.RecordingColor), store.FormatDuration(elapsed))
	default:
		return " [::d]Enter send  Ctrl-T emoji  Ctrl-O attach  Ctrl-R voice  Ctrl-V video[-:-:-]"
	}
}

// FocusTarget returns the primitive that should hold focus for the
// current state.
func (cv *ComposerView) FocusTarget() tview.Primitive {
	switch {
	case cv.c.Mode() == composer.CreatingPoll:
		return cv.poll
	case cv.c.AttachOpen():
		return cv.attach
	case cv.c.EmojiOpen():
		return cv.emoji
	default:
		return cv.input
	}
}

// Reset clears the input after switching chats.
func (cv *ComposerView) Reset() {
	cv.c.DismissOverlays()
	cv.input.SetText("")
	cv.Refresh()
}
