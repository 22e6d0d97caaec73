package api

import (
	"net/http"
	"time"

	"github.com/garnizeh/skillswap/internal/apperr"
	"github.com/garnizeh/skillswap/internal/payload"
	"github.com/garnizeh/skillswap/internal/service"
)

type ChatsHandler struct {
	chats   *service.Chats
	schemas *payload.Registry
}

func NewChatsHandler(chats *service.Chats, schemas *payload.Registry) *ChatsHandler {
	return &ChatsHandler{chats: chats, schemas: schemas}
}

type openChatBody struct {
	Participants []payload.ID `json:"participants"`
}

type postMessageBody struct {
	ChatID   payload.ID `json:"chatId"`
	SenderID payload.ID `json:"senderId"`
	Content  string     `json:"content"`
	SentAt   string     `json:"sentAt"`
}

func (h *ChatsHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	userID, err := queryID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	list, err := h.chats.ListChats(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"success": true, "chats": list}, http.StatusOK)
}

func (h *ChatsHandler) OpenChat(w http.ResponseWriter, r *http.Request) {
	var body openChatBody
	if err := decodeBody(r, h.schemas, payload.ChatCreate, &body); err != nil {
		writeError(w, r, err)
		return
	}
	if len(body.Participants) != 2 {
		writeError(w, r, apperr.Validation("participants must hold exactly two user ids"))
		return
	}
	chat, err := h.chats.OpenChat(r.Context(), int64(body.Participants[0]), int64(body.Participants[1]))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"success": true, "chat": chat}, http.StatusOK)
}

func (h *ChatsHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	chatID, err := queryID(r, "chatId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	msgs, err := h.chats.ListMessages(r.Context(), chatID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"success": true, "messages": msgs}, http.StatusOK)
}

func (h *ChatsHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var body postMessageBody
	if err := decodeBody(r, h.schemas, payload.MessageCreate, &body); err != nil {
		writeError(w, r, err)
		return
	}

	in := service.PostMessageInput{ChatID: int64(body.ChatID), SenderID: int64(body.SenderID), Content: body.Content}
	if body.SentAt != "" {
		ts, err := time.Parse(time.RFC3339, body.SentAt)
		if err != nil {
			writeError(w, r, apperr.Validation("sentAt must be an RFC 3339 timestamp"))
			return
		}
		in.SentAt = &ts
	}

	msg, err := h.chats.PostMessage(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"success": true, "message": msg}, http.StatusCreated)
}
