package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/mockchat/internal/store"
	"github.com/matheus3301/mockchat/internal/tui/ui"
	"github.com/rivo/tview"
)

// MessageThread displays the messages of one chat above its composer.
type MessageThread struct {
	*tview.Flex
	theme    *ui.Theme
	header   *tview.TextView
	messages *tview.TextView
	composer *ComposerView
	chatID   int64
	chatName string
}

// NewMessageThread creates a new message thread view around composer.
func NewMessageThread(theme *ui.Theme, composer *ComposerView) *MessageThread {
	header := tview.NewTextView().SetDynamicColors(true)
	header.SetBackgroundColor(theme.BgColor)

	messages := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	messages.SetBorder(true)
	messages.SetBorderColor(theme.BorderColor)
	messages.SetBackgroundColor(theme.BgColor)
	messages.SetTextColor(theme.FgColor)
	messages.SetTitleColor(theme.TitleColor)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(messages, 0, 1, false).
		AddItem(composer, 0, 0, true)

	mt := &MessageThread{
		Flex:     flex,
		theme:    theme,
		header:   header,
		messages: messages,
		composer: composer,
	}
	mt.ResizeComposer()
	return mt
}

// Name implements Component.
func (mt *MessageThread) Name() string {
	if mt.chatName != "" {
		return mt.chatName
	}
	return "conversation"
}

// Hints implements Component.
func (mt *MessageThread) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "i", Description: "Compose"},
		{Key: "d", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

// ChatID returns the displayed chat.
func (mt *MessageThread) ChatID() int64 {
	return mt.chatID
}

// Update renders chat, oldest message first.
func (mt *MessageThread) Update(chat store.Chat) {
	mt.chatID = chat.ID
	mt.chatName = contactName(&chat)

	mt.header.Clear()
	status := mt.theme.MutedColor
	if chat.Contact != nil && chat.Contact.Status == store.Online {
		status = mt.theme.OnlineColor
	}
	_, _ = fmt.Fprintf(mt.header, " [::b]%s[-:-:-]  %s%s[-]", display(mt.chatName), ui.Tag(status), display(presence(chat.Contact)))

	var b strings.Builder
	for i := range chat.Messages {
		b.WriteString(renderMessage(mt.theme, &chat.Messages[i], mt.chatName))
		b.WriteString("\n")
	}
	mt.messages.SetText(b.String())
	mt.messages.SetTitle(fmt.Sprintf(" %s ", display(mt.chatName)))
	mt.messages.ScrollToEnd()
}

// ResizeComposer fits the composer row to its current layout.
func (mt *MessageThread) ResizeComposer() {
	mt.ResizeItem(mt.composer, composerHeight(mt.composer), 0)
}

func composerHeight(cv *ComposerView) int {
	h := 0
	for i := 0; i < cv.GetItemCount(); i++ {
		switch cv.GetItem(i) {
		case cv.indicator:
			h++
		case cv.input:
			h += 3
		case cv.emoji:
			h += 8
		case cv.attach:
			h += 4
		case cv.poll:
			h += 2*len(cv.c.Poll().Options) + 8
		}
	}
	return h
}

// Messages returns the messages text view (for focus management).
func (mt *MessageThread) Messages() *tview.TextView {
	return mt.messages
}

// Composer returns the composer region.
func (mt *MessageThread) Composer() *ComposerView {
	return mt.composer
}
