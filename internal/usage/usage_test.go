package usage

import (
	"testing"

	"github.com/matheus3301/mockchat/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSeed(t *testing.T) {
	r := Compute(store.NewSeeded().Chats())

	assert.Equal(t, Counts{Total: 9, Text: 9}, r.Counts)
	assert.InDelta(t, 4.5, r.Sizes[Messages], 1e-9)
	assert.InDelta(t, 0.0, r.Sizes[Media], 1e-9)
	assert.InDelta(t, 7.7, r.Used, 1e-9)
	assert.InDelta(t, 92.3, r.Free(), 1e-9)
	assert.InDelta(t, 7.7, r.UsedPercent(), 1e-9)
	assert.InDelta(t, 3.2, r.Percent(Cache), 1e-9)
}

func TestComputeCountsVariants(t *testing.T) {
	s := store.NewSeeded()
	for _, m := range []store.Message{
		{Type: store.TypeAudio},
		{Type: store.TypeVideo},
		{Type: store.TypeFile, FileName: "a.pdf"},
		{Type: store.TypePoll, PollQuestion: "?", PollOptions: store.NewPollOptions([]string{"x", "y"})},
	} {
		_, ok := s.AppendMessage(2, m)
		require.True(t, ok)
	}

	r := Compute(s.Chats())
	assert.Equal(t, Counts{Total: 13, Text: 9, Media: 2, Files: 1, Polls: 1}, r.Counts)
	assert.InDelta(t, 5.0, r.Sizes[Media], 1e-9)
	assert.InDelta(t, 1.8, r.Sizes[Files], 1e-9)
}

func TestClearCache(t *testing.T) {
	r := Compute(nil)
	require.True(t, r.CanClearCache())

	freed := r.ClearCache()
	assert.InDelta(t, CacheMB, freed, 1e-9)
	assert.InDelta(t, 0.0, r.Used, 1e-9)
	assert.False(t, r.CanClearCache())
	assert.InDelta(t, 0.0, r.ClearCache(), 1e-9)
}
