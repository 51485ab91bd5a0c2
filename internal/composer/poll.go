package composer

import (
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const (
	minPollOptions = 2
	maxPollOptions = 10
)

// PollDraft is the poll being edited in CreatingPoll mode.
type PollDraft struct {
	Question string
	Options  []string
}

func newPollDraft() PollDraft {
	return PollDraft{Options: make([]string, minPollOptions)}
}

func (d PollDraft) clone() PollDraft {
	d.Options = slices.Clone(d.Options)
	return d
}

// pollSubmission is a draft after trimming and dropping blank options.
type pollSubmission struct {
	Question string   `validate:"required"`
	Options  []string `validate:"min=2,max=10,dive,required"`
}

var validate = validator.New()

// submission trims the draft and validates it. ok is false when the draft
// cannot be submitted.
func (d PollDraft) submission() (pollSubmission, bool) {
	sub := pollSubmission{
		Question: strings.TrimSpace(d.Question),
		Options: lo.FilterMap(d.Options, func(o string, _ int) (string, bool) {
			o = strings.TrimSpace(o)
			return o, o != ""
		}),
	}
	if err := validate.Struct(sub); err != nil {
		return pollSubmission{}, false
	}
	return sub, true
}

// CanAddOption reports whether another option fits.
func (d PollDraft) CanAddOption() bool {
	return len(d.Options) < maxPollOptions
}

// CanRemoveOption reports whether an option may be removed.
func (d PollDraft) CanRemoveOption() bool {
	return len(d.Options) > minPollOptions
}
