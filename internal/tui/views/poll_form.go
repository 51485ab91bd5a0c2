package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/mockchat/internal/composer"
	"github.com/matheus3301/mockchat/internal/store"
	"github.com/matheus3301/mockchat/internal/tui/ui"
	"github.com/rivo/tview"
)

// PollForm edits the composer's poll draft.
type PollForm struct {
	*tview.Form
	theme  *ui.Theme
	c      *composer.Composer
	onDone func(*store.Message)

	// lastOption is the option field that last held focus, -1 for none.
	lastOption int
}

// NewPollForm creates the poll creation form.
func NewPollForm(theme *ui.Theme, c *composer.Composer) *PollForm {
	f := tview.NewForm()
	f.SetBorder(true)
	f.SetBorderColor(theme.BorderFocusColor)
	f.SetBackgroundColor(theme.BgColor)
	f.SetTitle(" Создать опрос ")
	f.SetTitleColor(theme.TitleColor)
	f.SetFieldBackgroundColor(theme.BgColor)
	f.SetFieldTextColor(theme.FgColor)
	f.SetLabelColor(theme.MenuKeyColor)
	f.SetButtonBackgroundColor(theme.BorderColor)

	pf := &PollForm{Form: f, theme: theme, c: c, lastOption: -1}
	f.SetCancelFunc(pf.cancel)
	return pf
}

// SetOnDone sets the callback run when the form closes. msg is the sent
// poll, or nil when cancelled.
func (pf *PollForm) SetOnDone(fn func(msg *store.Message)) {
	pf.onDone = fn
}

// Reset rebuilds the form from the composer's draft.
func (pf *PollForm) Reset() {
	pf.rebuild(0)
}

func (pf *PollForm) rebuild(focus int) {
	draft := pf.c.Poll()
	pf.Clear(true)
	pf.lastOption = -1

	pf.AddInputField("Вопрос", draft.Question, 0, nil, func(text string) {
		pf.c.SetPollQuestion(text)
	})
	for i, opt := range draft.Options {
		pf.AddFormItem(pf.optionField(i, opt))
	}

	if draft.CanAddOption() {
		pf.AddButton("Добавить вариант", pf.addOption)
	}
	if draft.CanRemoveOption() {
		pf.AddButton("Убрать вариант", pf.removeOption)
	}
	pf.AddButton("Отправить опрос", pf.submit)
	pf.AddButton("Отмена", pf.cancel)

	pf.SetFocus(min(focus, pf.GetFormItemCount()-1))
}

// optionField edits option i. Ctrl-X inside it removes that option.
func (pf *PollForm) optionField(i int, text string) *tview.InputField {
	field := tview.NewInputField().
		SetLabel(fmt.Sprintf("Вариант %d", i+1)).
		SetText(text).
		SetChangedFunc(func(text string) {
			pf.c.SetPollOption(i, text)
		})
	field.SetFocusFunc(func() { pf.lastOption = i })
	field.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlX {
			pf.removeAt(i)
			return nil
		}
		return event
	})
	return field
}

func (pf *PollForm) addOption() {
	if pf.c.AddPollOption() {
		pf.rebuild(len(pf.c.Poll().Options))
	}
}

// removeOption drops the option that last had focus, or the last one when
// no option was focused.
func (pf *PollForm) removeOption() {
	target := pf.lastOption
	if n := len(pf.c.Poll().Options); target < 0 || target >= n {
		target = n - 1
	}
	pf.removeAt(target)
}

func (pf *PollForm) removeAt(i int) {
	if pf.c.RemovePollOption(i) {
		pf.rebuild(i + 1)
	}
}

func (pf *PollForm) submit() {
	if !pf.c.CanSubmitPoll() {
		pf.SetTitle(" Создать опрос: нужен вопрос и два варианта ")
		return
	}
	msg, ok := pf.c.SubmitPoll()
	pf.SetTitle(" Создать опрос ")
	if !ok {
		return
	}
	pf.done(&msg)
}

func (pf *PollForm) cancel() {
	pf.c.CancelPoll()
	pf.SetTitle(" Создать опрос ")
	pf.done(nil)
}

func (pf *PollForm) done(msg *store.Message) {
	if pf.onDone != nil {
		pf.onDone(msg)
	}
}
