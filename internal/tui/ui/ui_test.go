package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func TestPagesStack(t *testing.T) {
	p := NewPages()
	for _, name := range []string{"chats", "conversation", "details"} {
		p.AddPage(name, tview.NewBox(), true, false)
	}

	var seen [][]string
	p.SetOnChange(func(stack []string) { seen = append(seen, stack) })

	p.Reset("chats")
	p.Push("conversation")
	p.Push("details")
	if got := p.Current(); got != "details" {
		t.Fatalf("Current() = %q, want details", got)
	}

	// Pushing the top again is a no-op.
	p.Push("details")
	if p.Depth() != 3 {
		t.Errorf("Depth() = %d, want 3", p.Depth())
	}

	// Pushing a page already below unwinds to it.
	p.Push("chats")
	if got := strings.Join(p.Stack(), ","); got != "chats" {
		t.Errorf("Stack() = %q, want chats", got)
	}
	if len(seen) != 4 {
		t.Errorf("onChange fired %d times, want 4", len(seen))
	}
}

func TestPagesPopKeepsRoot(t *testing.T) {
	p := NewPages()
	p.AddPage("chats", tview.NewBox(), true, false)
	p.AddPage("help", tview.NewBox(), true, false)

	p.Reset("chats")
	p.Push("help")
	if got := p.Pop(); got != "help" {
		t.Errorf("Pop() = %q, want help", got)
	}
	if got := p.Pop(); got != "" {
		t.Errorf("Pop() at root = %q, want empty", got)
	}
	if p.Current() != "chats" {
		t.Errorf("Current() = %q, want chats", p.Current())
	}
}

func TestFlashModel(t *testing.T) {
	f := NewFlashModel()
	if f.GetMessage() != nil {
		t.Fatal("new model should be empty")
	}

	f.Warn("disk almost full")
	msg := f.GetMessage()
	if msg == nil || msg.Level != FlashWarn || msg.Text != "disk almost full" {
		t.Fatalf("GetMessage() = %+v", msg)
	}
	select {
	case got := <-f.Watch():
		if got.Text != "disk almost full" {
			t.Errorf("Watch() = %q", got.Text)
		}
	case <-time.After(time.Second):
		t.Fatal("no flash on watch channel")
	}

	f.Clear()
	if f.Get() != "" {
		t.Errorf("Get() after Clear = %q", f.Get())
	}
}

func TestFlashBarRender(t *testing.T) {
	f := NewFlashModel()
	bar := NewFlashBar(DefaultTheme())

	f.Err(errors.New("attach: no such file"))
	bar.Update(f.GetMessage())
	if got := bar.GetText(true); got != " ✖ attach: no such file" {
		t.Errorf("bar = %q", got)
	}

	bar.Update(&FlashMessage{Text: "old", Expires: time.Now().Add(-time.Second)})
	if got := bar.GetText(true); got != "" {
		t.Errorf("expired message rendered %q", got)
	}
}

func TestPromptAsk(t *testing.T) {
	p := NewPrompt(DefaultTheme())

	var submitted, answered string
	p.SetOnSubmit(func(_ PromptMode, text string) { submitted = text })

	p.Ask("Attach", "path: ", func(text string) { answered = text })
	p.SetText("/tmp/report.pdf")
	p.done(tcell.KeyEnter)
	if answered != "/tmp/report.pdf" || submitted != "" {
		t.Errorf("answered = %q, submitted = %q", answered, submitted)
	}

	// The answer callback is one-shot.
	answered = ""
	p.SetText("again")
	p.done(tcell.KeyEnter)
	if answered != "" {
		t.Errorf("second Enter answered %q", answered)
	}

	p.Activate(PromptCommand)
	p.SetText("quit")
	p.done(tcell.KeyEnter)
	if submitted != "quit" {
		t.Errorf("submitted = %q, want quit", submitted)
	}
}

func TestPromptEscapeDropsAnswer(t *testing.T) {
	p := NewPrompt(DefaultTheme())
	cancelled := false
	p.SetOnCancel(func() { cancelled = true })

	called := false
	p.Ask("Attach", "path: ", func(string) { called = true })
	p.done(tcell.KeyEscape)
	p.done(tcell.KeyEnter)
	if called {
		t.Error("answer callback ran after Esc")
	}
	if !cancelled {
		t.Error("cancel callback not run")
	}
}

func TestPromptEmptyCommandCancels(t *testing.T) {
	p := NewPrompt(DefaultTheme())
	cancelled, submitted := false, false
	p.SetOnCancel(func() { cancelled = true })
	p.SetOnSubmit(func(PromptMode, string) { submitted = true })

	p.Activate(PromptCommand)
	p.done(tcell.KeyEnter)
	if submitted || !cancelled {
		t.Errorf("submitted = %v, cancelled = %v", submitted, cancelled)
	}
}

func TestMenuColumns(t *testing.T) {
	m := NewMenu(DefaultTheme())
	var hints []MenuHint
	for _, k := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		hints = append(hints, MenuHint{Key: k, Description: "x"})
	}

	lines := strings.Split(m.format(hints), "\n")
	if len(lines) != menuRows {
		t.Fatalf("got %d lines, want %d", len(lines), menuRows)
	}
	if !strings.Contains(lines[0], "<a>") || !strings.Contains(lines[0], "<g>") {
		t.Errorf("first line = %q, want a and g", lines[0])
	}
	if strings.Contains(lines[2], "<i>") {
		t.Errorf("unexpected hint in %q", lines[2])
	}
}

func TestSessionInfoFormat(t *testing.T) {
	si := NewSessionInfo(DefaultTheme())
	out := si.format(&SessionData{Session: "main", Profile: "Вы", Chats: 3, Unread: 2, Messages: 9, Uptime: 65 * time.Minute})
	for _, want := range []string{"main", "3 (2 unread)", "1h5m", "Mode:"} {
		if !strings.Contains(out, want) {
			t.Errorf("format() missing %q in %q", want, out)
		}
	}
}

func TestTag(t *testing.T) {
	if got := Tag(tcell.ColorRed); got != "[#ff0000]" {
		t.Errorf("Tag(red) = %q", got)
	}
	if got := Tag(tcell.ColorDefault); got != "[-]" {
		t.Errorf("Tag(default) = %q", got)
	}
}

func TestCrumbsFormat(t *testing.T) {
	c := NewCrumbs(DefaultTheme())
	got := c.format([]string{"chats", "Анна Соколова"})
	if strings.Count(got, crumbSeparator) != 1 {
		t.Errorf("format = %q", got)
	}
	if !strings.HasSuffix(got, ":b] Анна Соколова [-:-:-]") {
		t.Errorf("active crumb not bold: %q", got)
	}
	if c.format(nil) != "" {
		t.Error("empty stack should render nothing")
	}
}

func TestThemeTable(t *testing.T) {
	th := DefaultTheme()
	table := th.NewTable(" Chats ")
	th.SetHeader(table, " NAME", " TIME")

	if got := table.GetTitle(); got != " Chats " {
		t.Errorf("title = %q", got)
	}
	if table.GetRowCount() != 1 || table.GetColumnCount() != 2 {
		t.Fatalf("header size = %dx%d", table.GetRowCount(), table.GetColumnCount())
	}
	cell := table.GetCell(0, 1)
	if cell.Text != " TIME" || !cell.NotSelectable {
		t.Errorf("header cell = %q, selectable %v", cell.Text, !cell.NotSelectable)
	}
}
