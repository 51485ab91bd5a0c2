package store

import (
	"github.com/matheus3301/mockchat/internal/bus"
	"github.com/samber/lo"
)

// Vote records the viewer's vote for optionID on the first unvoted poll
// with messageID. It returns false and changes nothing when no such poll
// exists, the poll was already voted on, or the option is unknown.
func (s *Store) Vote(messageID int64, optionID int) bool {
	s.mu.Lock()
	for _, chat := range s.chats {
		for i := range chat.Messages {
			m := &chat.Messages[i]
			if m.ID != messageID || m.Kind() != TypePoll || m.Voted() {
				continue
			}
			_, idx, found := lo.FindIndexOf(m.PollOptions, func(o PollOption) bool {
				return o.ID == optionID
			})
			if !found {
				s.mu.Unlock()
				return false
			}
			m.PollOptions[idx].Votes++
			vote := optionID
			m.UserVote = &vote
			s.version++
			chatID := chat.ID
			s.mu.Unlock()

			s.bus.Emit(bus.PollVoted, VoteEvent{ChatID: chatID, MessageID: messageID, OptionID: optionID})
			return true
		}
	}
	s.mu.Unlock()
	return false
}

// TotalVotes sums the votes of all options.
func (m *Message) TotalVotes() int {
	return lo.SumBy(m.PollOptions, func(o PollOption) int { return o.Votes })
}

// Percent is the share of votes for option o, 0..100. It is 0 when nobody
// has voted.
func (m *Message) Percent(o PollOption) float64 {
	total := m.TotalVotes()
	if total == 0 {
		return 0
	}
	return float64(o.Votes) / float64(total) * 100
}

// NewPollOptions turns option labels into zero-vote options indexed by
// position.
func NewPollOptions(labels []string) []PollOption {
	return lo.Map(labels, func(text string, i int) PollOption {
		return PollOption{ID: i, Text: text}
	})
}
