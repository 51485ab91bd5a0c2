package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/matheus3301/mockchat/internal/index"
	"github.com/matheus3301/mockchat/internal/lock"
	"github.com/matheus3301/mockchat/internal/session"
	"github.com/matheus3301/mockchat/internal/store"
	"github.com/matheus3301/mockchat/internal/usage"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	searchChat  int64
	searchLimit int
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a client holds the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runStatus(cmd.OutOrStdout(), sessionName())
	},
}

var chatsCmd = &cobra.Command{
	Use:   "chats",
	Short: "List conversations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printChats(cmd.OutOrStdout(), store.NewSeeded().Chats())
	},
}

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List contacts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printContacts(cmd.OutOrStdout(), store.NewSeeded().Contacts())
	},
}

var messagesCmd = &cobra.Command{
	Use:   "messages <chat>",
	Short: "Print the messages of a conversation (by id or contact name)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chat, err := findChat(store.NewSeeded(), args[0])
		if err != nil {
			return err
		}
		return printMessages(cmd.OutOrStdout(), chat)
	},
}

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Show the storage usage report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printReport(cmd.OutOrStdout(), usage.Compute(store.NewSeeded().Chats()))
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search message text across conversations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := search(store.NewSeeded(), args[0], searchChat, searchLimit)
		if err != nil {
			return err
		}
		return printResults(cmd.OutOrStdout(), results)
	},
}

func init() {
	searchCmd.Flags().Int64Var(&searchChat, "chat", 0, "restrict to one chat id")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "maximum number of results")
}

type statusOutput struct {
	Session string    `json:"session"`
	Path    string    `json:"path"`
	Running bool      `json:"running"`
	PID     int       `json:"pid,omitempty"`
	Since   time.Time `json:"since,omitzero"`
}

func runStatus(w io.Writer, name string) error {
	dir := session.Dir(name)
	out := statusOutput{Session: name, Path: dir}

	if _, err := os.Stat(dir); err == nil {
		out.Running, out.PID, out.Since = lockHolder(dir)
	}

	if jsonFlag {
		return outputJSON(w, out)
	}
	if !out.Running {
		_, err := fmt.Fprintf(w, "Session: %s\nStatus:  not running\n", out.Session)
		return err
	}
	_, err := fmt.Fprintf(w, "Session: %s\nStatus:  running (pid %d since %s)\n",
		out.Session, out.PID, out.Since.Format(time.DateTime))
	return err
}

// lockHolder reports the lock holder without leaving a lock behind.
func lockHolder(dir string) (bool, int, time.Time) {
	lk, err := lock.Acquire(dir)
	var held *lock.HeldError
	switch {
	case errors.As(err, &held):
		h, rerr := lock.Read(dir)
		if rerr != nil {
			logger.Debug("lock unreadable", zap.String("dir", dir), zap.Error(rerr))
		}
		return true, held.PID, h.Since
	case err != nil:
		logger.Warn("lock check failed", zap.String("dir", dir), zap.Error(err))
		return false, 0, time.Time{}
	default:
		_ = lk.Release()
		return false, 0, time.Time{}
	}
}

func printChats(w io.Writer, chats []store.Chat) error {
	if jsonFlag {
		return outputJSON(w, chats)
	}
	table := newTable(w, "ID", "Name", "Last message", "Time", "Unread")
	for i := range chats {
		c := &chats[i]
		table.Append([]string{strconv.FormatInt(c.ID, 10), contactName(c), c.LastMessage, c.Time, strconv.Itoa(c.Unread)})
	}
	table.Render()
	return nil
}

func printContacts(w io.Writer, contacts []*store.Contact) error {
	if jsonFlag {
		return outputJSON(w, contacts)
	}
	table := newTable(w, "ID", "Name", "Status")
	for _, c := range contacts {
		status := "online"
		if c.Status != store.Online {
			status = c.LastSeen
		}
		table.Append([]string{strconv.FormatInt(c.ID, 10), c.Name, status})
	}
	table.Render()
	return nil
}

func findChat(s *store.Store, ref string) (store.Chat, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		if chat, ok := s.Chat(id); ok {
			return chat, nil
		}
		return store.Chat{}, fmt.Errorf("chat %d not found", id)
	}
	if chat, ok := s.ChatByName(ref); ok {
		return chat, nil
	}
	return store.Chat{}, fmt.Errorf("no chat matching %q", ref)
}

func printMessages(w io.Writer, chat store.Chat) error {
	if jsonFlag {
		return outputJSON(w, chat.Messages)
	}
	name := contactName(&chat)
	for i := range chat.Messages {
		m := &chat.Messages[i]
		from := name
		if m.Sent {
			from = "me"
		}
		_, err := fmt.Fprintf(w, "[%s] %s: %s\n", m.Time, from, messageLine(m))
		if err != nil {
			return err
		}
	}
	return nil
}

func messageLine(m *store.Message) string {
	text := store.DisplayText(m)
	switch m.Kind() {
	case store.TypeAudio, store.TypeVideo:
		return fmt.Sprintf("%s (%d:%02d)", text, m.Duration/60, m.Duration%60)
	case store.TypeFile:
		return fmt.Sprintf("%s %s (%s)", store.FileGlyph, text, m.FileSize)
	case store.TypePoll:
		return fmt.Sprintf("%s %s [%d votes]", store.PollGlyph, text, m.TotalVotes())
	default:
		return text
	}
}

func printReport(w io.Writer, r *usage.Report) error {
	if jsonFlag {
		return outputJSON(w, r)
	}
	table := newTable(w)
	table.Append([]string{"used", fmt.Sprintf("%.1f MB of %.0f MB (%.0f%%)", r.Used, r.Total, r.UsedPercent())})
	for _, c := range usage.Categories {
		table.Append([]string{string(c), fmt.Sprintf("%.1f MB", r.Sizes[c])})
	}
	table.Append([]string{"counts", fmt.Sprintf("%d text, %d media, %d files, %d polls",
		r.Counts.Text, r.Counts.Media, r.Counts.Files, r.Counts.Polls)})
	table.Render()
	return nil
}

func search(s *store.Store, query string, chatID int64, limit int) ([]index.Result, error) {
	idx, err := index.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = idx.Close() }()

	if _, err := idx.Migrate(); err != nil {
		return nil, err
	}
	n, err := idx.Rebuild(s.Chats())
	if err != nil {
		return nil, err
	}
	logger.Debug("index built", zap.Int("messages", n))
	return idx.Search(query, chatID, limit)
}

func printResults(w io.Writer, results []index.Result) error {
	if jsonFlag {
		return outputJSON(w, results)
	}
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No matches.")
		return err
	}
	table := newTable(w, "Chat", "From", "Time", "Match")
	for _, r := range results {
		from := r.ContactName
		if r.Sent {
			from = "me"
		}
		table.Append([]string{strconv.FormatInt(r.ChatID, 10), from, r.Time, r.Snippet})
	}
	table.Render()
	return nil
}

func contactName(c *store.Chat) string {
	if c.Contact == nil {
		return fmt.Sprintf("chat %d", c.ID)
	}
	return c.Contact.Name
}

// newTable returns a borderless, left-aligned table; no header when none
// is given.
func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	if len(header) > 0 {
		table.SetHeader(header)
	}
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	return table
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
