package service

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	"booksland-be/internal/dto"
	"booksland-be/internal/mapper"
	"booksland-be/pkg/chat"

	"github.com/google/uuid"
)

// ErrEmptyQuery rejects a turn that carries neither text nor an image.
var ErrEmptyQuery = errors.New("message or image is required")

type IChatService interface {
	HandleQuery(ctx context.Context, request *dto.ChatQueryRequest) (*dto.ChatQueryResponse, error)
	ResetConversation(ctx context.Context, request *dto.ResetConversationRequest) (*dto.ResetConversationResponse, error)
}

// lockStripes bounds the lock pool; conversations hashing to the same stripe
// serialize together, which only costs a little extra waiting.
const lockStripes = 64

// chatService fronts the orchestrator and serializes turns per conversation.
// Two concurrent requests on the same conversation would race on the
// load-mutate-save cycle; the per-id lock makes the second wait. Locks come
// from a fixed striped pool: conversations expire from their stores after an
// hour, so an ever-growing per-id lock table would leak where the stores don't.
type chatService struct {
	orchestrator *chat.Orchestrator

	locks [lockStripes]sync.Mutex
}

var _ IChatService = &chatService{}

func NewChatService(orchestrator *chat.Orchestrator) IChatService {
	return &chatService{
		orchestrator: orchestrator,
	}
}

func (cs *chatService) HandleQuery(ctx context.Context, request *dto.ChatQueryRequest) (*dto.ChatQueryResponse, error) {
	if request.Message == "" && request.Image == "" {
		return nil, ErrEmptyQuery
	}

	conversationID := request.ConversationId
	if conversationID == "" {
		conversationID = uuid.New().String()
	}

	lock := cs.lockFor(conversationID)
	lock.Lock()
	defer lock.Unlock()

	result, err := cs.orchestrator.Handle(ctx, chat.Query{
		ConversationID: conversationID,
		Text:           request.Message,
		Image:          request.Image,
	})
	if err != nil {
		return nil, err
	}

	response := &dto.ChatQueryResponse{
		ConversationId: result.ConversationID,
		Intent:         string(result.Intent),
		Reply:          result.Reply,
		Suggested:      mapper.ToBookResponses(result.Suggested),
	}
	if result.MatchedBook != nil {
		matched := mapper.ToBookResponse(*result.MatchedBook)
		response.MatchedBook = &matched
	}
	return response, nil
}

func (cs *chatService) ResetConversation(_ context.Context, request *dto.ResetConversationRequest) (*dto.ResetConversationResponse, error) {
	lock := cs.lockFor(request.ConversationId)
	lock.Lock()
	defer lock.Unlock()

	result := cs.orchestrator.Reset(request.ConversationId)
	return &dto.ResetConversationResponse{
		ConversationId: result.ConversationID,
		Reply:          result.Reply,
	}, nil
}

func (cs *chatService) lockFor(conversationID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(conversationID))
	return &cs.locks[h.Sum32()%lockStripes]
}
