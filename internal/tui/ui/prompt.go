package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// PromptMode indicates the type of prompt.
type PromptMode int

const (
	PromptCommand PromptMode = iota
	PromptFilter
	// PromptInput asks for one free-form value, e.g. a file path.
	PromptInput
)

// Prompt is a command/filter input bar.
type Prompt struct {
	*tview.InputField
	theme    *Theme
	mode     PromptMode
	onSubmit func(mode PromptMode, text string)
	onCancel func()
	onAnswer func(text string)
}

// NewPrompt creates a new prompt input bar.
func NewPrompt(theme *Theme) *Prompt {
	input := tview.NewInputField()
	input.SetBorder(true)
	input.SetBorderColor(theme.PromptBorderColor)
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetLabelColor(theme.MenuKeyColor)

	p := &Prompt{
		InputField: input,
		theme:      theme,
	}
	input.SetDoneFunc(p.done)
	return p
}

func (p *Prompt) done(key tcell.Key) {
	switch key {
	case tcell.KeyEnter:
		text := p.GetText()
		p.SetText("")
		if p.mode == PromptInput {
			answer := p.onAnswer
			p.onAnswer = nil
			if answer != nil {
				answer(text)
			}
			return
		}
		if text == "" {
			if p.onCancel != nil {
				p.onCancel()
			}
			return
		}
		if p.onSubmit != nil {
			p.onSubmit(p.mode, text)
		}
	case tcell.KeyEscape:
		p.SetText("")
		p.onAnswer = nil
		if p.onCancel != nil {
			p.onCancel()
		}
	}
}

// SetOnSubmit sets the callback when the prompt is submitted.
func (p *Prompt) SetOnSubmit(fn func(mode PromptMode, text string)) {
	p.onSubmit = fn
}

// SetOnCancel sets the callback when the prompt is cancelled.
func (p *Prompt) SetOnCancel(fn func()) {
	p.onCancel = fn
}

// Activate shows the prompt in the specified mode.
func (p *Prompt) Activate(mode PromptMode) {
	p.mode = mode
	p.SetText("")
	switch mode {
	case PromptCommand:
		p.SetLabel(":")
		p.SetTitle(" Command ")
	case PromptFilter:
		p.SetLabel("/")
		p.SetTitle(" Filter ")
	}
}

// Ask switches the prompt to a one-shot question; fn receives the answer
// on Enter and is dropped on Esc.
func (p *Prompt) Ask(title, label string, fn func(text string)) {
	p.mode = PromptInput
	p.onAnswer = fn
	p.SetText("")
	p.SetLabel(label)
	p.SetTitle(" " + title + " ")
}

// Mode returns the current prompt mode.
func (p *Prompt) Mode() PromptMode {
	return p.mode
}
