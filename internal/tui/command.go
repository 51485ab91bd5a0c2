package tui

import (
	"strconv"
	"strings"

	"github.com/matheus3301/mockchat/internal/recording"
	"go.uber.org/zap"
)

// Command represents a parsed command.
type Command struct {
	Name string
	Args string
}

// ParseCommand parses a command string (without the leading ':').
func ParseCommand(input string) Command {
	input = strings.TrimSpace(input)
	parts := strings.SplitN(input, " ", 2)
	cmd := Command{Name: strings.ToLower(parts[0])}
	if len(parts) > 1 {
		cmd.Args = strings.TrimSpace(parts[1])
	}
	return cmd
}

type commandFunc func(a *App, args string)

var commands = map[string]commandFunc{
	"chat":     (*App).cmdChat,
	"search":   func(a *App, args string) { a.showSearch(args) },
	"poll":     (*App).cmdPoll,
	"attach":   (*App).cmdAttach,
	"audio":    func(a *App, _ string) { a.cmdRecord(recording.Audio) },
	"video":    func(a *App, _ string) { a.cmdRecord(recording.Video) },
	"stop":     func(a *App, _ string) { a.stopRecording() },
	"vote":     (*App).cmdVote,
	"storage":  func(a *App, _ string) { a.push(pageStorage) },
	"contacts": func(a *App, _ string) { a.push(pageContacts) },
	"profile":  func(a *App, _ string) { a.push(pageProfile) },
	"settings": func(a *App, _ string) { a.push(pageSettings) },
	"chats":    func(a *App, _ string) { a.push(pageChats) },
	"help":     func(a *App, _ string) { a.push(pageHelp) },
	"h":        func(a *App, _ string) { a.push(pageHelp) },
	"quit":     func(a *App, _ string) { a.app.Stop() },
	"q":        func(a *App, _ string) { a.app.Stop() },
}

func (a *App) runCommand(cmd Command) {
	fn, ok := commands[cmd.Name]
	if !ok {
		a.flash.Warn("Неизвестная команда: " + cmd.Name)
		return
	}
	a.logger.Debug("command", zap.String("name", cmd.Name), zap.String("args", cmd.Args))
	fn(a, cmd.Args)
}

func (a *App) cmdChat(args string) {
	if args == "" {
		a.push(pageChats)
		return
	}
	chat, ok := a.vm.OpenChatByName(args)
	if !ok {
		a.flash.Warn("Чат не найден: " + args)
		return
	}
	a.openChat(chat.ID)
}

func (a *App) cmdPoll(string) {
	if !a.ensureConversation() {
		return
	}
	if !a.composer.StartPoll() {
		a.flash.Warn("Опрос сейчас недоступен")
	}
}

func (a *App) cmdAttach(args string) {
	if !a.ensureConversation() {
		return
	}
	if args == "" {
		a.composer.ToggleAttach()
		return
	}
	a.attachFile(args)
}

func (a *App) cmdRecord(kind recording.Kind) {
	if a.ensureConversation() {
		a.startRecording(kind)
	}
}

func (a *App) cmdVote(args string) {
	n, err := strconv.Atoi(args)
	if err != nil || n < 1 {
		a.flash.Warn("Использование: vote <номер>")
		return
	}
	if a.ensureConversation() {
		a.vote(n)
	}
}
