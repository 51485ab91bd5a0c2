package store

// Presence is a contact's online status.
type Presence string

const (
	Online  Presence = "online"
	Offline Presence = "offline"
)

// MessageType is the variant of a message. The empty value means text.
type MessageType string

const (
	TypeText  MessageType = "text"
	TypeAudio MessageType = "audio"
	TypeVideo MessageType = "video"
	TypeFile  MessageType = "file"
	TypePoll  MessageType = "poll"
)

// Contact is a seeded contact. Contacts are never mutated after seeding and
// are shared by pointer between chats and snapshots.
type Contact struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Avatar   string   `json:"avatar"`
	Status   Presence `json:"status"`
	LastSeen string   `json:"last_seen,omitempty"`
}

// Chat is a conversation with a single contact.
type Chat struct {
	ID          int64     `json:"id"`
	Contact     *Contact  `json:"contact"`
	LastMessage string    `json:"last_message"`
	Time        string    `json:"time"`
	Unread      int       `json:"unread"`
	Messages    []Message `json:"messages"`
}

// PollOption is one choice of a poll message.
type PollOption struct {
	ID    int    `json:"id"`
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

// Message is a chat message. Only the fields of its variant are set.
type Message struct {
	ID   int64       `json:"id"`
	Text string      `json:"text"`
	Time string      `json:"time"`
	Sent bool        `json:"sent"`
	Read bool        `json:"read"`
	Type MessageType `json:"type,omitempty"`

	// audio, video
	Duration int    `json:"duration,omitempty"`
	MediaURL string `json:"media_url,omitempty"`

	// file
	FileName string `json:"file_name,omitempty"`
	FileSize string `json:"file_size,omitempty"`
	FileURL  string `json:"file_url,omitempty"`
	MIMEType string `json:"mime_type,omitempty"`

	// poll
	PollQuestion string       `json:"poll_question,omitempty"`
	PollOptions  []PollOption `json:"poll_options,omitempty"`
	UserVote     *int         `json:"user_vote,omitempty"`
}

// Kind returns the message type, treating an unset type as text.
func (m *Message) Kind() MessageType {
	if m.Type == "" {
		return TypeText
	}
	return m.Type
}

// Voted reports whether the viewer has already voted on this poll.
func (m *Message) Voted() bool {
	return m.UserVote != nil
}

// MessageEvent is the payload of bus.MessageAppended.
type MessageEvent struct {
	ChatID  int64
	Message Message
}

// VoteEvent is the payload of bus.PollVoted.
type VoteEvent struct {
	ChatID    int64
	MessageID int64
	OptionID  int
}
