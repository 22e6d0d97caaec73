package api_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/garnizeh/skillswap/internal/models"
)

type chatBody struct {
	Success bool        `json:"success"`
	Chat    models.Chat `json:"chat"`
}

func TestChats_Flow(t *testing.T) {
	e := newTestEnv(t, false, nil)

	res, data := e.do(t, http.MethodPost, "/api/chats", map[string]any{"participants": []any{2, "1"}}, "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("open chat: expected 200 got %d body=%s", res.StatusCode, string(data))
	}
	chat := decode[chatBody](t, data).Chat
	if chat.ID == 0 || chat.Participants != [2]int64{1, 2} {
		t.Fatalf("unexpected chat %s", string(data))
	}
	chatID := strconv.FormatInt(chat.ID, 10)

	res, data = e.do(t, http.MethodPost, "/api/messages", map[string]any{"chatId": chat.ID, "senderId": 1, "content": "hello", "sentAt": "2024-03-01T10:00:00Z"}, "")
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("post message: expected 201 got %d body=%s", res.StatusCode, string(data))
	}
	res, data = e.do(t, http.MethodPost, "/api/messages", map[string]any{"chatId": chatID, "senderId": "2", "content": "hey"}, "")
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("post message: expected 201 got %d body=%s", res.StatusCode, string(data))
	}

	res, data = e.do(t, http.MethodGet, "/api/messages?chatId="+chatID, nil, "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("list messages: expected 200 got %d", res.StatusCode)
	}
	msgs := decode[struct {
		Messages []models.Message `json:"messages"`
	}](t, data).Messages
	if len(msgs) != 2 || msgs[0].Content != "hello" || msgs[1].Content != "hey" {
		t.Fatalf("unexpected messages %s", string(data))
	}

	_, data = e.do(t, http.MethodGet, "/api/chats?userId=2", nil, "")
	chats := decode[struct {
		Chats []models.Chat `json:"chats"`
	}](t, data).Chats
	if len(chats) != 1 || chats[0].ID != chat.ID {
		t.Fatalf("unexpected chats %s", string(data))
	}
}

func TestMessages_Errors(t *testing.T) {
	e := newTestEnv(t, false, nil)
	_, data := e.do(t, http.MethodPost, "/api/chats", map[string]any{"participants": []int{1, 2}}, "")
	chatID := decode[chatBody](t, data).Chat.ID

	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{name: "not participant", body: map[string]any{"chatId": chatID, "senderId": 3, "content": "x"}, wantStatus: http.StatusBadRequest},
		{name: "missing content", body: map[string]any{"chatId": chatID, "senderId": 1}, wantStatus: http.StatusBadRequest},
		{name: "unknown chat", body: map[string]any{"chatId": 999, "senderId": 1, "content": "x"}, wantStatus: http.StatusNotFound},
		{name: "bad sentAt", body: map[string]any{"chatId": chatID, "senderId": 1, "content": "x", "sentAt": "yesterday"}, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, data := e.do(t, http.MethodPost, "/api/messages", tt.body, "")
			if res.StatusCode != tt.wantStatus {
				t.Fatalf("expected %d got %d body=%s", tt.wantStatus, res.StatusCode, string(data))
			}
		})
	}

	res, _ := e.do(t, http.MethodPost, "/api/chats", map[string]any{"participants": []int{4, 4}}, "")
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("self chat: expected 400 got %d", res.StatusCode)
	}
	res, _ = e.do(t, http.MethodGet, "/api/messages?chatId=999", nil, "")
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown chat: expected 404 got %d", res.StatusCode)
	}
}
