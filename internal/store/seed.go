package store

// SeedContacts returns the hardcoded contact list.
func SeedContacts() []*Contact {
	return []*Contact{
		{ID: 1, Name: "Анна Соколова", Status: Online},
		{ID: 2, Name: "Дмитрий Петров", Status: Offline, LastSeen: "2 часа назад"},
		{ID: 3, Name: "Елена Иванова", Status: Online},
		{ID: 4, Name: "Михаил Зайцев", Status: Offline, LastSeen: "вчера"},
	}
}

// SeedChats returns the hardcoded chats for the given contacts (as returned
// by SeedContacts).
func SeedChats(contacts []*Contact) []Chat {
	return []Chat{
		{
			ID:          1,
			Contact:     contacts[0],
			LastMessage: "Отлично, встречаемся завтра!",
			Time:        "14:32",
			Unread:      2,
			Messages: []Message{
				{ID: 1, Text: "Привет! Как дела?", Time: "14:28", Read: true},
				{ID: 2, Text: "Привет! Всё хорошо, спасибо", Time: "14:30", Sent: true, Read: true},
				{ID: 3, Text: "Можем встретиться завтра?", Time: "14:31", Read: true},
				{ID: 4, Text: "Отлично, встречаемся завтра!", Time: "14:32", Sent: true},
			},
		},
		{
			ID:          2,
			Contact:     contacts[1],
			LastMessage: "Документы отправил на почту",
			Time:        "13:15",
			Messages: []Message{
				{ID: 1, Text: "Не забудь отправить документы", Time: "12:00", Sent: true, Read: true},
				{ID: 2, Text: "Документы отправил на почту", Time: "13:15", Read: true},
			},
		},
		{
			ID:          3,
			Contact:     contacts[2],
			LastMessage: "Спасибо за помощь! 🙏",
			Time:        "Вчера",
			Messages: []Message{
				{ID: 1, Text: "Подскажи, как решить эту задачу?", Time: "Вчера", Read: true},
				{ID: 2, Text: "Конечно, вот решение...", Time: "Вчера", Sent: true, Read: true},
				{ID: 3, Text: "Спасибо за помощь! 🙏", Time: "Вчера", Read: true},
			},
		},
	}
}

// NewSeeded returns a store populated with the seed data.
func NewSeeded(opts ...Option) *Store {
	contacts := SeedContacts()
	return New(contacts, SeedChats(contacts), opts...)
}
