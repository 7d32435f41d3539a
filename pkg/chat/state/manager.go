package state

import (
	"log"

	"booksland-be/internal/constant"
	"booksland-be/pkg/store"
)

// ConversationRepository persists per-conversation state. Implementations
// live in internal/repository (go-cache for a single node, Redis when the
// orchestrator scales horizontally).
type ConversationRepository interface {
	Get(conversationID string) (*store.Conversation, bool)
	Save(conversation *store.Conversation)
	Delete(conversationID string)
}

// Manager handles conversation state transitions. All mutations within a turn
// happen on the loaded copy; Save publishes it back in one write.
type Manager struct {
	repo   ConversationRepository
	logger *log.Logger
}

func NewManager(repo ConversationRepository, logger *log.Logger) *Manager {
	return &Manager{
		repo:   repo,
		logger: logger,
	}
}

// LoadOrCreate retrieves the conversation or starts a fresh one. A fresh
// history always opens with the BooksLand persona system message.
func (m *Manager) LoadOrCreate(conversationID string) *store.Conversation {
	if conversation, found := m.repo.Get(conversationID); found {
		return conversation
	}
	return &store.Conversation{
		ID: conversationID,
		History: []store.Message{
			{Role: store.RoleSystem, Content: constant.PersonaSystemPrompt},
		},
	}
}

// Save persists the conversation state.
func (m *Manager) Save(conversation *store.Conversation) {
	m.repo.Save(conversation)
}

// Clear drops all state for the conversation.
func (m *Manager) Clear(conversationID string) {
	m.repo.Delete(conversationID)
	m.logger.Printf("[STATE] Cleared conversation %s", conversationID)
}

// SetLastMatch records the active book. Writes only when the id actually
// changed, so repeated questions about the same book don't churn the state.
func (m *Manager) SetLastMatch(conversation *store.Conversation, book store.Book) {
	if conversation.LastBestMatch != nil && conversation.LastBestMatch.ID == book.ID {
		return
	}
	matched := book
	conversation.LastBestMatch = &matched
	m.logger.Printf("[STATE] Last match -> %q", book.Title)
}

// SetLastSuggested replaces the suggestion list, truncation-free.
func (m *Manager) SetLastSuggested(conversation *store.Conversation, books []store.Book) {
	conversation.LastSuggested = books
	m.logger.Printf("[STATE] Last suggested -> %d books", len(books))
}

// AppendHistory adds one turn, preserving order. The history doubles as the
// prompt context for the reply composer, so completeness matters.
func (m *Manager) AppendHistory(conversation *store.Conversation, role, content string) {
	conversation.History = append(conversation.History, store.Message{
		Role:    role,
		Content: content,
	})
}
