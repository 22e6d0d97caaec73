package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garnizeh/skillswap/internal/models"
	"github.com/garnizeh/skillswap/pkg/repository"
)

const chatColumns = `id, user_a, user_b, last_message, last_message_at, unread_a, unread_b, created`

func (r *SQLiteRepo) GetOrCreateChat(ctx context.Context, a, b int64) (*models.Chat, error) {
	pair := models.OrderPair(a, b)
	c, err := scanChat(r.conn.QueryRow(ctx, `SELECT `+chatColumns+` FROM chats WHERE user_a = ? AND user_b = ?`, pair[0], pair[1]))
	if err != nil || c != nil {
		return c, err
	}

	_, err = r.conn.Exec(ctx, `INSERT INTO chats (user_a, user_b, created) VALUES (?, ?, ?)`, pair[0], pair[1], now())
	if err != nil {
		// a concurrent caller created the pair first; read theirs
		if err = mapErr("create chat", err); !errors.Is(err, repository.ErrDuplicate) {
			return nil, err
		}
	}

	c, err = scanChat(r.conn.QueryRow(ctx, `SELECT `+chatColumns+` FROM chats WHERE user_a = ? AND user_b = ?`, pair[0], pair[1]))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("chat %d/%d vanished after insert", pair[0], pair[1])
	}
	return c, nil
}

func (r *SQLiteRepo) GetChat(ctx context.Context, id int64) (*models.Chat, error) {
	return scanChat(r.conn.QueryRow(ctx, `SELECT `+chatColumns+` FROM chats WHERE id = ?`, id))
}

func (r *SQLiteRepo) ListChatsByUser(ctx context.Context, userID int64) ([]models.Chat, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+chatColumns+` FROM chats WHERE user_a = ? OR user_b = ? ORDER BY id`, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Chat
	for rows.Next() {
		c, err := scanChat(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func scanChat(row scanner) (*models.Chat, error) {
	var c models.Chat
	var lastAt sql.NullInt64
	var unreadA, unreadB, created int64
	if err := row.Scan(&c.ID, &c.Participants[0], &c.Participants[1], &c.LastMessage, &lastAt, &unreadA, &unreadB, &created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if lastAt.Valid {
		t := fromMillis(lastAt.Int64)
		c.LastMessageAt = &t
	}
	c.Unread = map[int64]int64{c.Participants[0]: unreadA, c.Participants[1]: unreadB}
	c.CreatedAt = fromMillis(created)
	return &c, nil
}
