package index

import (
	"strings"
)

// Result is a matched message.
type Result struct {
	ChatID      int64  `json:"chat_id"`
	MessageID   int64  `json:"message_id"`
	ContactName string `json:"contact_name"`
	Body        string `json:"body"`
	Type        string `json:"type"`
	Sent        bool   `json:"sent"`
	Time        string `json:"time"`
	Snippet     string `json:"snippet"`
}

// Search finds messages whose text, file name or poll options contain
// query, ignoring case. chatID 0 searches every chat. Newest first.
func (x *Index) Search(query string, chatID int64, limit int) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}

	q := `
		SELECT chat_id, msg_id, contact_name, body, message_type, sent, time_label
		FROM messages
		WHERE folded LIKE ? ESCAPE '\'`
	args := []any{"%" + escapeLike(strings.ToLower(query)) + "%"}
	if chatID != 0 {
		q += " AND chat_id = ?"
		args = append(args, chatID)
	}
	q += " ORDER BY rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := x.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.ChatID, &r.MessageID, &r.ContactName, &r.Body, &r.Type, &r.Sent, &r.Time); err != nil {
			return nil, err
		}
		r.Snippet = Snippet(r.Body, query, 32)
		results = append(results, r)
	}
	return results, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Snippet marks the first case-insensitive occurrence of query in body
// with << >> and keeps up to context runes on each side.
func Snippet(body, query string, context int) string {
	b := []rune(body)
	q := []rune(strings.ToLower(query))
	lower := []rune(strings.ToLower(body))
	if len(lower) != len(b) || len(q) == 0 {
		return body
	}

	at := -1
	for i := 0; i+len(q) <= len(lower); i++ {
		if string(lower[i:i+len(q)]) == string(q) {
			at = i
			break
		}
	}
	if at < 0 {
		return body
	}

	start := max(at-context, 0)
	end := min(at+len(q)+context, len(b))
	var sb strings.Builder
	if start > 0 {
		sb.WriteString("...")
	}
	sb.WriteString(string(b[start:at]))
	sb.WriteString("<<")
	sb.WriteString(string(b[at : at+len(q)]))
	sb.WriteString(">>")
	sb.WriteString(string(b[at+len(q) : end]))
	if end < len(b) {
		sb.WriteString("...")
	}
	return sb.String()
}
