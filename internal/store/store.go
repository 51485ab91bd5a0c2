package store

import (
	"slices"
	"sync"
	"time"

	"github.com/matheus3301/mockchat/internal/bus"
)

// Store owns the in-memory contacts, chats and messages. All mutations go
// through AppendMessage and Vote; readers get deep copies.
type Store struct {
	mu       sync.RWMutex
	contacts []*Contact
	chats    []*Chat
	byID     map[int64]int
	version  uint64
	lastID   int64
	bus      *bus.Bus
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithBus publishes mutation events on b.
func WithBus(b *bus.Bus) Option {
	return func(s *Store) { s.bus = b }
}

// WithClock replaces time.Now for ids and time labels.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a store owning copies of the given chats. Chat ids must be
// unique; a later duplicate is ignored.
func New(contacts []*Contact, chats []Chat, opts ...Option) *Store {
	s := &Store{
		contacts: slices.Clone(contacts),
		byID:     make(map[int64]int, len(chats)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, c := range chats {
		if _, dup := s.byID[c.ID]; dup {
			continue
		}
		cp := copyChat(&c)
		s.byID[c.ID] = len(s.chats)
		s.chats = append(s.chats, &cp)
	}
	return s
}

// Version increases by one on every successful mutation.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Contacts returns the seeded contacts in order.
func (s *Store) Contacts() []*Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.contacts)
}

// Chats returns a deep copy of all chats in order.
func (s *Store) Chats() []Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Chat, 0, len(s.chats))
	for _, c := range s.chats {
		out = append(out, copyChat(c))
	}
	return out
}

// Chat returns a deep copy of the chat with the given id.
func (s *Store) Chat(id int64) (Chat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return Chat{}, false
	}
	return copyChat(s.chats[i]), true
}

// ChatByName returns the first chat whose contact name contains name,
// ignoring case.
func (s *Store) ChatByName(name string) (Chat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.chats {
		if c.Contact != nil && containsFold(c.Contact.Name, name) {
			return copyChat(c), true
		}
	}
	return Chat{}, false
}

func copyChat(c *Chat) Chat {
	cp := *c
	cp.Messages = make([]Message, len(c.Messages))
	for i := range c.Messages {
		cp.Messages[i] = copyMessage(&c.Messages[i])
	}
	return cp
}

func copyMessage(m *Message) Message {
	cp := *m
	cp.PollOptions = slices.Clone(m.PollOptions)
	if m.UserVote != nil {
		v := *m.UserVote
		cp.UserVote = &v
	}
	return cp
}
