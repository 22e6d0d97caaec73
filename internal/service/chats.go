package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/garnizeh/skillswap/internal/apperr"
	"github.com/garnizeh/skillswap/internal/metrics"
	"github.com/garnizeh/skillswap/internal/models"
	"github.com/garnizeh/skillswap/pkg/repository"
)

type Chats struct {
	chats    repository.ChatRepo
	messages repository.MessageRepo
	now      func() time.Time
}

func NewChats(chats repository.ChatRepo, messages repository.MessageRepo) *Chats {
	return &Chats{chats: chats, messages: messages, now: func() time.Time { return time.Now().UTC() }}
}

type PostMessageInput struct {
	ChatID   int64
	SenderID int64
	Content  string
	SentAt   *time.Time
}

// OpenChat returns the chat between a and b, creating it the first time.
func (c *Chats) OpenChat(ctx context.Context, a, b int64) (*models.Chat, error) {
	if a <= 0 || b <= 0 {
		return nil, apperr.Validation("two participants are required")
	}
	if a == b {
		return nil, apperr.Validation("a chat needs two different participants")
	}
	chat, err := c.chats.GetOrCreateChat(ctx, a, b)
	if err != nil {
		return nil, fmt.Errorf("open chat: %w", err)
	}
	return chat, nil
}

func (c *Chats) ListChats(ctx context.Context, userID int64) ([]models.Chat, error) {
	if userID <= 0 {
		return nil, apperr.Validation("userId is required")
	}
	out, err := c.chats.ListChatsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	if out == nil {
		out = []models.Chat{}
	}
	return out, nil
}

func (c *Chats) getChat(ctx context.Context, chatID int64) (*models.Chat, error) {
	if chatID <= 0 {
		return nil, apperr.Validation("chatId is required")
	}
	chat, err := c.chats.GetChat(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("get chat: %w", err)
	}
	if chat == nil {
		return nil, apperr.NotFound("chat not found")
	}
	return chat, nil
}

// ListMessages returns the chat's messages in the order they were posted.
func (c *Chats) ListMessages(ctx context.Context, chatID int64) ([]models.Message, error) {
	if _, err := c.getChat(ctx, chatID); err != nil {
		return nil, err
	}
	out, err := c.messages.ListMessages(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	if out == nil {
		out = []models.Message{}
	}
	return out, nil
}

// PostMessage appends a message from one of the chat's participants. The
// chat's lastMessage and unread counters are left as they are.
func (c *Chats) PostMessage(ctx context.Context, in PostMessageInput) (*models.Message, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" || in.SenderID <= 0 {
		return nil, apperr.Validation("content and senderId are required")
	}
	chat, err := c.getChat(ctx, in.ChatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(in.SenderID) {
		return nil, apperr.Validation("sender is not a participant of this chat")
	}

	m := &models.Message{ChatID: chat.ID, SenderID: in.SenderID, Content: content, SentAt: c.now()}
	if in.SentAt != nil && !in.SentAt.IsZero() {
		m.SentAt = in.SentAt.UTC()
	}
	id, err := c.messages.CreateMessage(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("post message: %w", err)
	}
	m.ID = id
	metrics.MessagesPosted.Inc()
	return m, nil
}
