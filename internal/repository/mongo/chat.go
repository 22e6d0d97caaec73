package mongo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/garnizeh/skillswap/internal/models"
	"github.com/garnizeh/skillswap/pkg/repository"
)

// chatDoc is the stored chat shape; BSON maps need string keys and pair is a
// scalar key for the uniqueness index.
type chatDoc struct {
	ID            int64            `bson:"_id"`
	Pair          string           `bson:"pair"`
	Participants  [2]int64         `bson:"participants"`
	LastMessage   string           `bson:"last_message"`
	LastMessageAt *time.Time       `bson:"last_message_at,omitempty"`
	Unread        map[string]int64 `bson:"unread"`
	CreatedAt     time.Time        `bson:"created_at"`
}

func pairKey(p [2]int64) string {
	return strconv.FormatInt(p[0], 10) + ":" + strconv.FormatInt(p[1], 10)
}

func (d *chatDoc) model() *models.Chat {
	c := &models.Chat{
		ID:            d.ID,
		Participants:  d.Participants,
		LastMessage:   d.LastMessage,
		LastMessageAt: d.LastMessageAt,
		Unread:        make(map[int64]int64, 2),
		CreatedAt:     d.CreatedAt,
	}
	for _, p := range d.Participants {
		c.Unread[p] = d.Unread[strconv.FormatInt(p, 10)]
	}
	return c
}

func (s *Store) GetOrCreateChat(ctx context.Context, a, b int64) (*models.Chat, error) {
	pair := models.OrderPair(a, b)
	existing, err := s.findChat(ctx, bson.M{"pair": pairKey(pair)})
	if err != nil || existing != nil {
		return existing, err
	}

	id, err := s.nextID(ctx, collChats)
	if err != nil {
		return nil, err
	}
	doc := chatDoc{
		ID:           id,
		Pair:         pairKey(pair),
		Participants: pair,
		Unread: map[string]int64{
			strconv.FormatInt(pair[0], 10): 0,
			strconv.FormatInt(pair[1], 10): 0,
		},
		CreatedAt: now(),
	}
	if _, err := s.db.Collection(collChats).InsertOne(ctx, doc); err != nil {
		if err = mapErr("create chat", err); !errors.Is(err, repository.ErrDuplicate) {
			return nil, err
		}
		// lost the race; the winner's chat is the pair's chat
		c, err := s.findChat(ctx, bson.M{"pair": pairKey(pair)})
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("chat %s vanished after duplicate insert", pairKey(pair))
		}
		return c, nil
	}
	return doc.model(), nil
}

func (s *Store) GetChat(ctx context.Context, id int64) (*models.Chat, error) {
	return s.findChat(ctx, bson.M{"_id": id})
}

func (s *Store) findChat(ctx context.Context, filter bson.M) (*models.Chat, error) {
	var d chatDoc
	if err := s.db.Collection(collChats).FindOne(ctx, filter).Decode(&d); err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return d.model(), nil
}

func (s *Store) ListChatsByUser(ctx context.Context, userID int64) ([]models.Chat, error) {
	cur, err := s.db.Collection(collChats).Find(ctx, bson.M{"participants": userID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []chatDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.Chat, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].model())
	}
	return out, nil
}

func (s *Store) CreateMessage(ctx context.Context, m *models.Message) (int64, error) {
	if m == nil {
		return 0, fmt.Errorf("message is nil")
	}

	id, err := s.nextID(ctx, collMessages)
	if err != nil {
		return 0, err
	}
	doc := *m
	doc.ID = id
	if doc.SentAt.IsZero() {
		doc.SentAt = now()
	}
	if _, err := s.db.Collection(collMessages).InsertOne(ctx, doc); err != nil {
		return 0, mapErr("create message", err)
	}
	return id, nil
}

func (s *Store) ListMessages(ctx context.Context, chatID int64) ([]models.Message, error) {
	cur, err := s.db.Collection(collMessages).Find(ctx, bson.M{"chat_id": chatID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []models.Message
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
