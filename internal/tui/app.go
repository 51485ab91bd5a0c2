package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/mockchat/internal/bus"
	"github.com/matheus3301/mockchat/internal/config"
	"github.com/matheus3301/mockchat/internal/recording"
	"github.com/matheus3301/mockchat/internal/store"
	"github.com/matheus3301/mockchat/internal/tui/keys"
	"github.com/matheus3301/mockchat/internal/tui/model"
	"github.com/matheus3301/mockchat/internal/tui/ui"
	"github.com/matheus3301/mockchat/internal/tui/views"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const (
	pageChats        = "chats"
	pageContacts     = "contacts"
	pageProfile      = "profile"
	pageSettings     = "settings"
	pageStorage      = "storage"
	pageConversation = "conversation"
	pageSearch       = "search"
	pageHelp         = "help"
	pageDetails      = "details"
)

// Options configures an App.
type Options struct {
	ViewModel  *model.ViewModel
	Bus        *bus.Bus
	Config     *config.Config
	ConfigPath string
	Logger     *zap.Logger
}

// App is the main TUI application shell.
type App struct {
	app      *tview.Application
	theme    *ui.Theme
	root     *tview.Flex
	pages    *ui.Pages
	crumbs   *ui.Crumbs
	menu     *ui.Menu
	info     *ui.SessionInfo
	flash    *ui.FlashModel
	flashBar *ui.FlashBar
	prompt   *ui.Prompt
	registry *keys.Registry

	vm     *model.ViewModel
	bus    *bus.Bus
	cfg    *config.Config
	cfgPth string
	logger *zap.Logger

	chatList *views.ConversationList
	contacts *views.ContactList
	thread   *views.MessageThread
	composer *views.ComposerView
	search   *views.SearchView
	details  *views.ConversationInfo
	storage  *views.StorageView
	profile  *views.ProfileView
	settings *views.SettingsView
	help     *views.HelpView

	components   map[string]ui.Component
	promptActive bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp creates the TUI application.
func NewApp(opts Options) *App {
	ctx, cancel := context.WithCancel(context.Background())
	theme := ui.DefaultTheme()
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	cv := views.NewComposerView(theme, opts.ViewModel.Composer())
	a := &App{
		app:      tview.NewApplication(),
		theme:    theme,
		pages:    ui.NewPages(),
		crumbs:   ui.NewCrumbs(theme),
		menu:     ui.NewMenu(theme),
		info:     ui.NewSessionInfo(theme),
		flash:    ui.NewFlashModel(),
		flashBar: ui.NewFlashBar(theme),
		prompt:   ui.NewPrompt(theme),
		registry: keys.NewRegistry(),
		vm:       opts.ViewModel,
		bus:      opts.Bus,
		cfg:      cfg,
		cfgPth:   opts.ConfigPath,
		logger:   logger,
		chatList: views.NewConversationList(theme),
		contacts: views.NewContactList(theme),
		composer: cv,
		thread:   views.NewMessageThread(theme, cv),
		search:   views.NewSearchView(theme),
		details:  views.NewConversationInfo(theme),
		storage:  views.NewStorageView(theme),
		profile:  views.NewProfileView(theme),
		settings: views.NewSettingsView(theme),
		help:     views.NewHelpView(theme),
		ctx:      ctx,
		cancel:   cancel,
	}

	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()
	a.refreshAll()
	return a
}

func (a *App) setupBindings() {
	global := []struct {
		name string
		r    rune
		desc string
		fn   func()
	}{
		{"command", ':', "Command", func() { a.activatePrompt(ui.PromptCommand) }},
		{"search", 's', "Search", func() { a.showSearch("") }},
		{"contacts", 'c', "Contacts", func() { a.push(pageContacts) }},
		{"profile", 'p', "Profile", func() { a.push(pageProfile) }},
		{"settings", 'g', "Settings", func() { a.push(pageSettings) }},
		{"help", '?', "Help", func() { a.push(pageHelp) }},
		{"quit", 'q', "Quit", func() { a.app.Stop() }},
	}
	for _, g := range global {
		a.registry.AddGlobal(g.name, &keys.Action{
			Key: tcell.KeyRune, Rune: g.r, Label: string(g.r),
			Description: g.desc, Visible: true, Handler: g.fn,
		})
	}

	a.registry.AddView(pageChats, "filter", &keys.Action{
		Key: tcell.KeyRune, Rune: '/', Handler: func() { a.activatePrompt(ui.PromptFilter) },
	})
	a.registry.AddView(pageChats, "unfilter", &keys.Action{
		Key: tcell.KeyRune, Rune: '0', Handler: func() { a.chatList.ClearFilter() },
	})
	for n := 1; n <= 9; n++ {
		a.registry.AddView(pageChats, "jump"+string(rune('0'+n)), &keys.Action{
			Key: tcell.KeyRune, Rune: rune('0' + n),
			Handler: func() {
				if id := a.chatList.ChatByIndex(n); id != 0 {
					a.openChat(id)
				}
			},
		})
		a.registry.AddView(pageConversation, "vote"+string(rune('0'+n)), &keys.Action{
			Key: tcell.KeyRune, Rune: rune('0' + n),
			Enabled: func() bool {
				_, ok := a.vm.OpenPoll()
				return ok
			},
			Handler: func() { a.vote(n) },
		})
	}

	a.registry.AddView(pageContacts, "chat", &keys.Action{
		Key: tcell.KeyEnter, Handler: a.openSelectedContact,
	})
	a.registry.AddView(pageStorage, "clear", &keys.Action{
		Key: tcell.KeyRune, Rune: 'c', Handler: a.clearCache,
	})

	conversation := []struct {
		name string
		key  tcell.Key
		r    rune
		fn   func()
	}{
		{"compose", tcell.KeyRune, 'i', a.focusComposer},
		{"details", tcell.KeyRune, 'd', a.showDetails},
		{"emoji", tcell.KeyCtrlT, 0, a.composer.ToggleEmoji},
		{"attach", tcell.KeyCtrlO, 0, a.composer.ToggleAttach},
		{"audio", tcell.KeyCtrlR, 0, func() { a.startRecording(recording.Audio) }},
		{"video", tcell.KeyCtrlV, 0, func() { a.startRecording(recording.Video) }},
		{"stop", tcell.KeyCtrlS, 0, a.stopRecording},
	}
	for _, b := range conversation {
		a.registry.AddView(pageConversation, b.name, &keys.Action{Key: b.key, Rune: b.r, Handler: b.fn})
	}
}

func (a *App) setupCallbacks() {
	a.chatList.SetSelectedFunc(func(row, _ int) {
		if id := a.chatList.ChatByIndex(row); id != 0 {
			a.openChat(id)
		}
	})

	a.composer.SetOnSent(func(store.Message) {
		a.refreshChats()
	})
	a.composer.SetOnChanged(func() {
		a.thread.ResizeComposer()
		a.focusComposer()
	})
	a.composer.SetOnAttachFile(func() {
		a.prompt.Ask("Прикрепить файл", "path: ", func(path string) {
			a.hidePrompt()
			a.attachFile(path)
		})
		a.showPrompt()
	})
	a.composer.SetOnError(func(msg string) { a.flash.Warn(msg) })

	a.search.SetOnQuery(a.runSearch)
	a.search.Results().SetSelectedFunc(func(int, int) {
		if chatID, _, ok := a.search.SelectedResult(); ok {
			a.openChat(chatID)
		}
	})

	a.settings.SetOnSelect(func(entry string) {
		switch entry {
		case views.SettingStorage:
			a.push(pageStorage)
		case views.SettingHelp:
			a.push(pageHelp)
		default:
			a.flash.Info(entry + ": недоступно в офлайн-режиме")
		}
	})

	a.prompt.SetOnSubmit(func(mode ui.PromptMode, text string) {
		a.hidePrompt()
		switch mode {
		case ui.PromptCommand:
			a.runCommand(ParseCommand(text))
		case ui.PromptFilter:
			a.chatList.SetFilter(text)
		}
	})
	a.prompt.SetOnCancel(a.hidePrompt)

	a.pages.SetOnChange(func(stack []string) {
		names := make([]string, len(stack))
		for i, s := range stack {
			names[i] = a.components[s].Name()
		}
		a.crumbs.Update(names)
		if len(stack) > 0 {
			a.updateMenu(stack[len(stack)-1])
		}
	})
}

func (a *App) setupLayout() {
	a.components = map[string]ui.Component{
		pageChats:        a.chatList,
		pageContacts:     a.contacts,
		pageProfile:      a.profile,
		pageSettings:     a.settings,
		pageStorage:      a.storage,
		pageConversation: a.thread,
		pageSearch:       a.search,
		pageHelp:         a.help,
		pageDetails:      a.details,
	}
	for name, c := range a.components {
		a.pages.AddPage(name, c.(tview.Primitive), true, false)
	}

	header := tview.NewFlex().
		AddItem(a.info, 36, 0, false).
		AddItem(a.menu, 0, 1, false).
		AddItem(ui.NewLogo(a.theme), 16, 0, false)

	a.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 7, 0, false).
		AddItem(a.crumbs, 1, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.flashBar, 1, 0, false)

	a.app.SetRoot(a.root, true)
	a.app.SetInputCapture(a.capture)
	a.pages.Reset(pageChats)
}

func (a *App) capture(event *tcell.EventKey) *tcell.EventKey {
	if a.promptActive {
		return event
	}
	page := a.pages.Current()
	focused := a.app.GetFocus()
	_, typing := focused.(*tview.InputField)
	if page == pageConversation && focused != a.thread.Messages() {
		typing = true
	}

	if event.Key() == tcell.KeyEscape {
		return a.escape(page, focused, event)
	}

	// Control keys work even while typing; letters only outside inputs.
	if event.Key() != tcell.KeyRune || !typing {
		if a.registry.HandleEvent(page, event) {
			return nil
		}
	}
	return event
}

func (a *App) escape(page string, focused tview.Primitive, event *tcell.EventKey) *tcell.EventKey {
	if page == pageConversation {
		c := a.vm.Composer()
		if c.Mode().Recording() {
			a.stopRecording()
			return nil
		}
		if c.EmojiOpen() || c.AttachOpen() || a.composer.FocusTarget() != a.composer.Input() {
			// The overlay or poll form closes itself.
			return event
		}
		if focused == a.composer.Input() {
			a.app.SetFocus(a.thread.Messages())
			return nil
		}
	}
	if page == pageSearch && focused == a.search.Results() {
		a.app.SetFocus(a.search.Input())
		return nil
	}
	a.back()
	return nil
}

func (a *App) push(page string) {
	a.refreshPage(page)
	a.pages.Push(page)
	a.focusPage(page)
}

func (a *App) back() {
	if a.pages.Pop() == "" {
		return
	}
	page := a.pages.Current()
	a.refreshPage(page)
	a.focusPage(page)
}

func (a *App) focusPage(page string) {
	switch page {
	case pageConversation:
		a.focusComposer()
	case pageSearch:
		a.app.SetFocus(a.search.Input())
	case pageSettings:
		a.app.SetFocus(a.settings.List())
	default:
		if p, ok := a.components[page].(tview.Primitive); ok {
			a.app.SetFocus(p)
		}
	}
}

func (a *App) updateMenu(page string) {
	hints := a.components[page].Hints()
	hints = append(hints, a.registry.Hints(page)...)
	a.menu.Update(hints)
}

func (a *App) activatePrompt(mode ui.PromptMode) {
	a.prompt.Activate(mode)
	a.showPrompt()
}

func (a *App) showPrompt() {
	if a.promptActive {
		return
	}
	a.promptActive = true
	a.root.AddItem(a.prompt, 3, 0, true)
	a.app.SetFocus(a.prompt)
}

func (a *App) hidePrompt() {
	if !a.promptActive {
		return
	}
	a.promptActive = false
	a.root.RemoveItem(a.prompt)
	a.focusPage(a.pages.Current())
}

func (a *App) openChat(id int64) {
	chat, ok := a.vm.OpenChat(id)
	if !ok {
		a.flash.Warn("Чат не найден")
		return
	}
	a.composer.Reset()
	a.thread.Update(chat)
	a.thread.ResizeComposer()
	if a.pages.Current() != pageConversation {
		a.pages.Push(pageConversation)
	}
	a.focusComposer()
	a.logger.Debug("chat opened", zap.Int64("chat", id))
}

func (a *App) openSelectedContact() {
	id := a.contacts.SelectedContact()
	if id == 0 {
		return
	}
	chat, ok := a.vm.ChatForContact(id)
	if !ok {
		a.flash.Info("Нет переписки с этим контактом")
		return
	}
	a.openChat(chat.ID)
}

// ensureConversation shows the active chat, or warns when there is none.
func (a *App) ensureConversation() bool {
	chat, ok := a.vm.ActiveChat()
	if !ok {
		a.flash.Warn("Сначала откройте чат")
		return false
	}
	if a.pages.Current() != pageConversation {
		a.thread.Update(chat)
		a.pages.Push(pageConversation)
	}
	return true
}

func (a *App) focusComposer() {
	if a.pages.Current() == pageConversation {
		a.app.SetFocus(a.composer.FocusTarget())
	}
}

func (a *App) showDetails() {
	if chat, ok := a.vm.ActiveChat(); ok {
		a.details.Update(chat)
		a.push(pageDetails)
	}
}

func (a *App) showSearch(query string) {
	a.push(pageSearch)
	if query != "" {
		a.search.SetQuery(query)
		a.runSearch(query)
	}
}

func (a *App) runSearch(query string) {
	results, err := a.vm.Search(query)
	if err != nil {
		a.logger.Error("search failed", zap.String("query", query), zap.Error(err))
		a.flash.Err(err)
		return
	}
	a.search.Update(query, results)
	if len(results) > 0 {
		a.app.SetFocus(a.search.Results())
	}
}

func (a *App) vote(n int) {
	if !a.vm.VoteOpenPoll(n) {
		a.flash.Warn("Нет такого варианта")
	}
}

func (a *App) attachFile(path string) {
	if path == "" {
		return
	}
	if _, err := a.vm.Composer().AttachFile(path); err != nil {
		a.logger.Warn("attach failed", zap.String("path", path), zap.Error(err))
		a.flash.Err(err)
		return
	}
	a.refreshChats()
}

func (a *App) startRecording(kind recording.Kind) {
	c := a.vm.Composer()
	var ok bool
	if kind == recording.Video {
		ok = c.StartVideo(a.ctx)
	} else {
		ok = c.StartAudio(a.ctx)
	}
	if !ok {
		a.flash.Warn("Не удалось начать запись")
	}
}

func (a *App) stopRecording() {
	if _, ok := a.vm.Composer().StopRecording(); !ok {
		a.flash.Info("Запись не идёт")
	}
}

func (a *App) clearCache() {
	if freed := a.vm.ClearCache(); freed > 0 {
		a.flash.Info("Кэш очищен")
	}
	a.storage.Update(a.vm.Usage())
}

func (a *App) refreshChats() {
	a.chatList.Update(a.vm.Chats())
	if chat, ok := a.vm.ActiveChat(); ok && a.thread.ChatID() == chat.ID {
		a.thread.Update(chat)
	}
	a.info.Update(a.vm.Session())
}

func (a *App) refreshPage(page string) {
	switch page {
	case pageChats:
		a.chatList.Update(a.vm.Chats())
	case pageContacts:
		a.contacts.Update(a.vm.Contacts())
	case pageStorage:
		a.storage.Update(a.vm.Usage())
	case pageProfile:
		a.profile.Update(views.DefaultProfile, a.vm.SessionName())
	case pageSettings:
		a.settings.Update(a.cfg, a.cfgPth)
	case pageDetails:
		if chat, ok := a.vm.ActiveChat(); ok {
			a.details.Update(chat)
		}
	}
}

func (a *App) refreshAll() {
	for _, p := range []string{pageChats, pageContacts, pageStorage, pageProfile, pageSettings} {
		a.refreshPage(p)
	}
	a.info.Update(a.vm.Session())
}

// handleEvent applies a bus event on the UI goroutine.
func (a *App) handleEvent(evt bus.Event) {
	switch evt.Kind {
	case bus.RecordingTick:
		if t, ok := evt.Payload.(recording.Tick); ok {
			a.composer.SetTick(t.Elapsed)
		}
	case bus.ComposerModeChanged:
		a.composer.Refresh()
		a.thread.ResizeComposer()
		a.focusComposer()
		a.info.Update(a.vm.Session())
		a.updateMenu(a.pages.Current())
	case bus.MessageAppended, bus.PollVoted:
		a.refreshChats()
		if a.pages.Current() == pageStorage {
			a.storage.Update(a.vm.Usage())
		}
	}
}

func (a *App) watchBus() {
	if a.bus == nil {
		return
	}
	ch, unsub := a.bus.Subscribe("", 64)
	go func() {
		defer unsub()
		for {
			select {
			case evt := <-ch:
				a.app.QueueUpdateDraw(func() { a.handleEvent(evt) })
			case <-a.ctx.Done():
				return
			}
		}
	}()
}

func (a *App) startRefreshLoop() {
	ticker := time.NewTicker(time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				a.app.QueueUpdateDraw(func() {
					a.flashBar.Update(a.flash.GetMessage())
					a.info.Update(a.vm.Session())
				})
			case msg := <-a.flash.Watch():
				a.app.QueueUpdateDraw(func() { a.flashBar.Update(&msg) })
			case <-a.vm.RefreshCh():
				a.app.QueueUpdateDraw(a.refreshChats)
			case <-a.ctx.Done():
				return
			}
		}
	}()
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	a.watchBus()
	a.startRefreshLoop()
	if name := a.cfg.UI.DefaultChat; name != "" {
		if chat, ok := a.vm.OpenChatByName(name); ok {
			a.openChat(chat.ID)
		}
	}
	a.flash.Info("Добро пожаловать, " + a.vm.SessionName())
	err := a.app.Run()
	a.cancel()
	return err
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
