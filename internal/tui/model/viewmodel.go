package model

import (
	"errors"
	"sync"
	"time"

	"github.com/matheus3301/mockchat/internal/composer"
	"github.com/matheus3301/mockchat/internal/index"
	"github.com/matheus3301/mockchat/internal/store"
	"github.com/matheus3301/mockchat/internal/tui/ui"
	"github.com/matheus3301/mockchat/internal/usage"
)

// ErrNoSearchIndex is returned by Search when the index failed to open.
var ErrNoSearchIndex = errors.New("search index unavailable")

// ProfileName is how the local user appears in headers and the QR card.
const ProfileName = "Вы"

// ViewModel is the UI's read and command surface over the store, the
// composer and the search index.
type ViewModel struct {
	mu sync.RWMutex

	store    *store.Store
	composer *composer.Composer
	index    *index.Index
	session  string
	started  time.Time

	activeChat   int64
	cacheCleared bool
	refreshCh    chan struct{}
}

// NewViewModel creates a view model. idx may be nil.
func NewViewModel(s *store.Store, c *composer.Composer, idx *index.Index, session string) *ViewModel {
	return &ViewModel{
		store:     s,
		composer:  c,
		index:     idx,
		session:   session,
		started:   time.Now(),
		refreshCh: make(chan struct{}, 1),
	}
}

// RefreshCh returns the channel that signals UI refresh.
func (vm *ViewModel) RefreshCh() <-chan struct{} {
	return vm.refreshCh
}

// SignalRefresh asks the UI to redraw; extra signals coalesce.
func (vm *ViewModel) SignalRefresh() {
	select {
	case vm.refreshCh <- struct{}{}:
	default:
	}
}

// Composer returns the composer bound to the active chat.
func (vm *ViewModel) Composer() *composer.Composer {
	return vm.composer
}

// Chats returns a snapshot of the chat list.
func (vm *ViewModel) Chats() []store.Chat {
	return vm.store.Chats()
}

// Contacts returns the contact list.
func (vm *ViewModel) Contacts() []*store.Contact {
	return vm.store.Contacts()
}

// OpenChat makes id the active chat for display and composing.
func (vm *ViewModel) OpenChat(id int64) (store.Chat, bool) {
	chat, ok := vm.store.Chat(id)
	if !ok {
		return store.Chat{}, false
	}
	vm.mu.Lock()
	vm.activeChat = id
	vm.mu.Unlock()
	vm.composer.SetChat(id)
	return chat, true
}

// OpenChatByName opens the first chat whose contact name contains name.
func (vm *ViewModel) OpenChatByName(name string) (store.Chat, bool) {
	chat, ok := vm.store.ChatByName(name)
	if !ok {
		return store.Chat{}, false
	}
	return vm.OpenChat(chat.ID)
}

// ChatForContact returns the chat with the given contact, if any.
func (vm *ViewModel) ChatForContact(contactID int64) (store.Chat, bool) {
	for _, c := range vm.store.Chats() {
		if c.Contact != nil && c.Contact.ID == contactID {
			return c, true
		}
	}
	return store.Chat{}, false
}

// ActiveChat returns a fresh snapshot of the active chat.
func (vm *ViewModel) ActiveChat() (store.Chat, bool) {
	vm.mu.RLock()
	id := vm.activeChat
	vm.mu.RUnlock()
	if id == 0 {
		return store.Chat{}, false
	}
	return vm.store.Chat(id)
}

// OpenPoll returns the newest poll in the active chat the viewer has not
// voted on.
func (vm *ViewModel) OpenPoll() (store.Message, bool) {
	chat, ok := vm.ActiveChat()
	if !ok {
		return store.Message{}, false
	}
	for i := len(chat.Messages) - 1; i >= 0; i-- {
		m := chat.Messages[i]
		if m.Kind() == store.TypePoll && !m.Voted() {
			return m, true
		}
	}
	return store.Message{}, false
}

// VoteOpenPoll votes for the nth (1-based) option of OpenPoll.
func (vm *ViewModel) VoteOpenPoll(n int) bool {
	poll, ok := vm.OpenPoll()
	if !ok || n < 1 || n > len(poll.PollOptions) {
		return false
	}
	return vm.store.Vote(poll.ID, poll.PollOptions[n-1].ID)
}

// Search queries the index across all chats.
func (vm *ViewModel) Search(query string) ([]index.Result, error) {
	if vm.index == nil {
		return nil, ErrNoSearchIndex
	}
	return vm.index.Search(query, 0, 50)
}

// Usage computes the storage report, honoring an earlier cache clear.
func (vm *ViewModel) Usage() *usage.Report {
	r := usage.Compute(vm.store.Chats())
	vm.mu.RLock()
	cleared := vm.cacheCleared
	vm.mu.RUnlock()
	if cleared {
		r.ClearCache()
	}
	return r
}

// ClearCache drops the cache category. Returns the megabytes freed.
func (vm *ViewModel) ClearCache() float64 {
	r := vm.Usage()
	if !r.CanClearCache() {
		return 0
	}
	vm.mu.Lock()
	vm.cacheCleared = true
	vm.mu.Unlock()
	return r.ClearCache()
}

// Session returns header data for the session info panel.
func (vm *ViewModel) Session() *ui.SessionData {
	chats := vm.store.Chats()
	d := &ui.SessionData{
		Session: vm.session,
		Profile: ProfileName,
		Mode:    string(vm.composer.Mode()),
		Chats:   len(chats),
		Uptime:  time.Since(vm.started),
	}
	for _, c := range chats {
		d.Messages += len(c.Messages)
		d.Unread += c.Unread
	}
	return d
}

// SessionName returns the active session name.
func (vm *ViewModel) SessionName() string {
	return vm.session
}
