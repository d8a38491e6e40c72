package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ctfrange/database"

	"github.com/redis/go-redis/v9"
)

const (
	personalMessageTTL  = 300 * time.Second
	broadcastMessageTTL = 120 * time.Second

	broadcastKey      = "messages:broadcast"
	personalKeyFormat = "messages:inbox:%d"
)

// Message is one mentor announcement
type Message struct {
	From   string    `json:"from"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// Inbox is what a participant sees when polling for messages
type Inbox struct {
	Personal  *Message `json:"personal,omitempty"`
	Broadcast *Message `json:"broadcast,omitempty"`
}

// MessageStore is the ephemeral mentor messaging channel on top of a shared
// TTL cache. Broadcasts persist until expiry and every poller reads them,
// personal messages are consumed by the first fetch.
type MessageStore struct {
	rdb *redis.Client
}

func NewMessageStore(rdb *redis.Client) *MessageStore {
	return &MessageStore{rdb: rdb}
}

// DefaultMessageStore returns a store on the shared redis client
func DefaultMessageStore() *MessageStore {
	return NewMessageStore(database.REDIS)
}

// Broadcast publishes a message to every participant until the TTL expires
func (s *MessageStore) Broadcast(ctx context.Context, from string, text string) error {
	payload, err := json.Marshal(Message{From: from, Text: text, SentAt: time.Now()})
	if err != nil {
		return fmt.Errorf("failed to encode broadcast: %w", err)
	}
	if err := s.rdb.Set(ctx, broadcastKey, payload, broadcastMessageTTL).Err(); err != nil {
		return fmt.Errorf("failed to store broadcast: %w", err)
	}
	return nil
}

// SendPersonal leaves a message for a single recipient. It replaces any
// unread message and expires unread after the TTL.
func (s *MessageStore) SendPersonal(ctx context.Context, recipientID uint, from string, text string) error {
	payload, err := json.Marshal(Message{From: from, Text: text, SentAt: time.Now()})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}
	key := fmt.Sprintf(personalKeyFormat, recipientID)
	if err := s.rdb.Set(ctx, key, payload, personalMessageTTL).Err(); err != nil {
		return fmt.Errorf("failed to store message: %w", err)
	}
	return nil
}

// FetchInbox returns and consumes the recipient's personal message, plus the
// current broadcast if one is live. Reading the broadcast does not clear it.
func (s *MessageStore) FetchInbox(ctx context.Context, recipientID uint) (Inbox, error) {
	var inbox Inbox

	key := fmt.Sprintf(personalKeyFormat, recipientID)
	raw, err := s.rdb.GetDel(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return Inbox{}, fmt.Errorf("failed to fetch personal message: %w", err)
	}
	if err == nil {
		var msg Message
		if err := json.Unmarshal([]byte(raw), &msg); err == nil {
			inbox.Personal = &msg
		}
	}

	raw, err = s.rdb.Get(ctx, broadcastKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return Inbox{}, fmt.Errorf("failed to fetch broadcast: %w", err)
	}
	if err == nil {
		var msg Message
		if err := json.Unmarshal([]byte(raw), &msg); err == nil {
			inbox.Broadcast = &msg
		}
	}

	return inbox, nil
}
