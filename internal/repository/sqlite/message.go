package sqlite

import (
	"context"
	"fmt"

	"github.com/garnizeh/skillswap/internal/models"
)

func (r *SQLiteRepo) CreateMessage(ctx context.Context, m *models.Message) (int64, error) {
	if m == nil {
		return 0, fmt.Errorf("message is nil")
	}

	sent := m.SentAt.UTC().UnixMilli()
	if m.SentAt.IsZero() {
		sent = now()
	}
	res, err := r.conn.Exec(ctx, `INSERT INTO messages (chat_id, sender_id, content, sent_at) VALUES (?, ?, ?, ?)`, m.ChatID, m.SenderID, m.Content, sent)
	if err != nil {
		return 0, mapErr("create message", err)
	}

	return res.LastInsertId()
}

// ListMessages returns the chat's messages in insertion order.
func (r *SQLiteRepo) ListMessages(ctx context.Context, chatID int64) ([]models.Message, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, chat_id, sender_id, content, sent_at FROM messages WHERE chat_id = ? ORDER BY id`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Message
	for rows.Next() {
		var m models.Message
		var sent int64
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Content, &sent); err != nil {
			return nil, err
		}
		m.SentAt = fromMillis(sent)
		out = append(out, m)
	}
	return out, rows.Err()
}
