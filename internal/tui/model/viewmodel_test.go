package model

import (
	"context"
	"testing"

	"github.com/matheus3301/mockchat/internal/composer"
	"github.com/matheus3301/mockchat/internal/index"
	"github.com/matheus3301/mockchat/internal/recording"
	"github.com/matheus3301/mockchat/internal/store"
	"github.com/matheus3301/mockchat/internal/usage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idleRecorder struct{}

func (idleRecorder) Start(context.Context, recording.Kind) error { return recording.ErrBusy }
func (idleRecorder) Stop() (*recording.Artifact, bool, error)    { return nil, false, nil }
func (idleRecorder) Elapsed() int                                { return 0 }

func newViewModel(t *testing.T, idx *index.Index) (*ViewModel, *store.Store) {
	t.Helper()
	s := store.NewSeeded()
	c := composer.New(s, idleRecorder{}, nil, nil)
	return NewViewModel(s, c, idx, "main"), s
}

func TestOpenChatBindsComposer(t *testing.T) {
	vm, _ := newViewModel(t, nil)

	_, ok := vm.ActiveChat()
	assert.False(t, ok)

	chat, ok := vm.OpenChatByName("дмитрий")
	require.True(t, ok)
	assert.Equal(t, int64(2), chat.ID)
	assert.Equal(t, int64(2), vm.Composer().ChatID())

	vm.Composer().SetText("Привет")
	_, sent := vm.Composer().Send()
	require.True(t, sent)

	active, ok := vm.ActiveChat()
	require.True(t, ok)
	assert.Equal(t, "Привет", active.LastMessage)

	_, ok = vm.OpenChat(99)
	assert.False(t, ok)
}

func TestChatForContact(t *testing.T) {
	vm, _ := newViewModel(t, nil)

	chat, ok := vm.ChatForContact(3)
	require.True(t, ok)
	assert.Equal(t, int64(3), chat.ID)

	// The fourth contact has no conversation.
	_, ok = vm.ChatForContact(4)
	assert.False(t, ok)
}

func TestVoteOpenPoll(t *testing.T) {
	vm, s := newViewModel(t, nil)
	_, ok := vm.OpenChat(1)
	require.True(t, ok)

	assert.False(t, vm.VoteOpenPoll(1), "no poll yet")

	c := vm.Composer()
	require.True(t, c.OpenPoll())
	c.SetPollQuestion("Lunch?")
	c.SetPollOption(0, "Pizza")
	c.SetPollOption(1, "Tacos")
	_, ok = c.SubmitPoll()
	require.True(t, ok)

	poll, ok := vm.OpenPoll()
	require.True(t, ok)
	assert.Equal(t, "Lunch?", poll.PollQuestion)

	assert.False(t, vm.VoteOpenPoll(3), "out of range")
	assert.True(t, vm.VoteOpenPoll(2))
	assert.False(t, vm.VoteOpenPoll(1), "already voted")

	chat, _ := s.Chat(1)
	last := chat.Messages[len(chat.Messages)-1]
	require.NotNil(t, last.UserVote)
	assert.Equal(t, last.PollOptions[1].ID, *last.UserVote)
	assert.Equal(t, 1, last.PollOptions[1].Votes)
}

func TestUsageCacheClearSticks(t *testing.T) {
	vm, _ := newViewModel(t, nil)

	before := vm.Usage()
	require.True(t, before.CanClearCache())

	freed := vm.ClearCache()
	assert.InDelta(t, usage.CacheMB, freed, 1e-9)

	after := vm.Usage()
	assert.False(t, after.CanClearCache())
	assert.InDelta(t, before.Used-usage.CacheMB, after.Used, 1e-9)
	assert.Zero(t, vm.ClearCache())
}

func TestSearch(t *testing.T) {
	vm, _ := newViewModel(t, nil)
	_, err := vm.Search("привет")
	assert.ErrorIs(t, err, ErrNoSearchIndex)

	idx, err := index.Open()
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	_, err = idx.Migrate()
	require.NoError(t, err)
	_, err = idx.Rebuild(store.NewSeeded().Chats())
	require.NoError(t, err)

	vm, _ = newViewModel(t, idx)
	results, err := vm.Search("документы")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSessionData(t *testing.T) {
	vm, _ := newViewModel(t, nil)
	d := vm.Session()
	assert.Equal(t, "main", d.Session)
	assert.Equal(t, ProfileName, d.Profile)
	assert.Equal(t, 3, d.Chats)
	assert.Equal(t, 9, d.Messages)
	assert.Equal(t, 2, d.Unread)
	assert.Equal(t, string(composer.Idle), d.Mode)
}

func TestSignalRefreshCoalesces(t *testing.T) {
	vm, _ := newViewModel(t, nil)
	vm.SignalRefresh()
	vm.SignalRefresh()
	<-vm.RefreshCh()
	select {
	case <-vm.RefreshCh():
		t.Fatal("second signal not coalesced")
	default:
	}
}
