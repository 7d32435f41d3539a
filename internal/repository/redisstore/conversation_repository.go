package redisstore

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"booksland-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix       = "booksland:conversation:"
	conversationTTL = 1 * time.Hour
)

// ConversationRepository keeps conversation state in Redis so multiple
// instances can share it. Same interface as the in-memory variant; storage
// failures degrade to "not found" or a dropped write, logged but never fatal.
type ConversationRepository struct {
	client *redis.Client
}

func NewConversationRepository(client *redis.Client) *ConversationRepository {
	return &ConversationRepository{client: client}
}

func (r *ConversationRepository) Save(conversation *store.Conversation) {
	payload, err := json.Marshal(conversation)
	if err != nil {
		log.Printf("[REDIS] marshal conversation %s: %v", conversation.ID, err)
		return
	}
	if err := r.client.Set(context.Background(), keyPrefix+conversation.ID, payload, conversationTTL).Err(); err != nil {
		log.Printf("[REDIS] save conversation %s: %v", conversation.ID, err)
	}
}

func (r *ConversationRepository) Get(conversationID string) (*store.Conversation, bool) {
	payload, err := r.client.Get(context.Background(), keyPrefix+conversationID).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[REDIS] get conversation %s: %v", conversationID, err)
		}
		return nil, false
	}

	var conversation store.Conversation
	if err := json.Unmarshal(payload, &conversation); err != nil {
		log.Printf("[REDIS] unmarshal conversation %s: %v", conversationID, err)
		return nil, false
	}
	return &conversation, true
}

func (r *ConversationRepository) Delete(conversationID string) {
	if err := r.client.Del(context.Background(), keyPrefix+conversationID).Err(); err != nil {
		log.Printf("[REDIS] delete conversation %s: %v", conversationID, err)
	}
}
