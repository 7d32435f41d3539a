package chat

import (
	"context"
	"log"

	"booksland-be/internal/constant"
	"booksland-be/pkg/chat/intent"
	"booksland-be/pkg/chat/match"
	"booksland-be/pkg/chat/reply"
	"booksland-be/pkg/chat/state"
	"booksland-be/pkg/imaging"
	"booksland-be/pkg/store"
)

// Catalog is the read-side of the book inventory as the orchestrator needs it.
type Catalog interface {
	All(ctx context.Context) ([]store.Book, error)
	FindByID(ctx context.Context, id string) (*store.Book, error)
	Sample(ctx context.Context, n int) ([]store.Book, error)
}

// Query is one customer turn. Image carries the base64 cover photo, with or
// without a data-URL prefix; either field may be empty but not both.
type Query struct {
	ConversationID string
	Text           string
	Image          string
}

// Result is the orchestrator's answer for one turn.
type Result struct {
	ConversationID string         `json:"conversation_id"`
	Intent         intent.Intent  `json:"intent"`
	Reply          string         `json:"reply"`
	MatchedBook    *store.Book    `json:"matched_book,omitempty"`
	Suggested      []store.Book   `json:"suggested,omitempty"`
}

// Orchestrator routes a classified turn through the matcher ladder and the
// reply composer. Collaborator failures (catalog, CLIP, text generation)
// degrade to apology or template replies; the only error it ever returns is
// imaging.ErrInvalidImage for an unparseable image payload.
type Orchestrator struct {
	states   *state.Manager
	titles   *match.TitleMatcher
	colors   *match.ColorMatcher
	semantic *match.SemanticMatcher
	composer *reply.Composer
	catalog  Catalog
	logger   *log.Logger
}

func NewOrchestrator(
	states *state.Manager,
	titles *match.TitleMatcher,
	colors *match.ColorMatcher,
	semantic *match.SemanticMatcher,
	composer *reply.Composer,
	catalog Catalog,
	logger *log.Logger,
) *Orchestrator {
	return &Orchestrator{
		states:   states,
		titles:   titles,
		colors:   colors,
		semantic: semantic,
		composer: composer,
		catalog:  catalog,
		logger:   logger,
	}
}

// Handle runs one full turn: validate the image if present, classify, dispatch
// on the intent, persist the updated conversation and return the reply.
func (o *Orchestrator) Handle(ctx context.Context, query Query) (*Result, error) {
	var imageURL string
	if query.Image != "" {
		img, err := imaging.Decode(query.Image)
		if err != nil {
			return nil, err
		}
		imageURL = img.DataURL
	}

	classified := intent.Classify(query.Text, imageURL != "")
	o.logger.Printf("[CHAT] conversation=%s intent=%s", query.ConversationID, classified)

	// Reset wipes everything and answers from a template, nothing to persist.
	if classified == intent.IntentReset {
		return o.Reset(query.ConversationID), nil
	}

	conversation := o.states.LoadOrCreate(query.ConversationID)
	o.states.AppendHistory(conversation, store.RoleUser, userTurnContent(query.Text, imageURL != ""))

	result := &Result{
		ConversationID: query.ConversationID,
		Intent:         classified,
	}

	switch classified {
	case intent.IntentGreeting:
		result.Reply = constant.GreetingReply

	case intent.IntentConfirmYes:
		o.handleConfirmYes(ctx, conversation, result)

	case intent.IntentConfirmNo:
		o.handleConfirmNo(ctx, conversation, result)

	case intent.IntentPriceQuery:
		o.handlePrice(ctx, conversation, query.Text, result)

	case intent.IntentAvailabilityQuery:
		o.handleAvailability(ctx, conversation, query.Text, result)

	case intent.IntentColorQuery:
		o.handleColor(ctx, conversation, query.Text, result)

	case intent.IntentTitleQuery, intent.IntentFreeformQuery:
		o.handleTitle(ctx, conversation, query.Text, result)

	case intent.IntentImageQuery:
		o.handleImage(ctx, conversation, query.Text, imageURL, result)

	default:
		result.Reply = constant.UnknownReply
	}

	o.states.AppendHistory(conversation, store.RoleAssistant, result.Reply)
	o.states.Save(conversation)
	return result, nil
}

// Reset drops all conversation state and answers from the reset template.
func (o *Orchestrator) Reset(conversationID string) *Result {
	o.states.Clear(conversationID)
	return &Result{
		ConversationID: conversationID,
		Intent:         intent.IntentReset,
		Reply:          constant.ResetReply,
	}
}

// handleConfirmYes re-validates the active book against the catalog before
// quoting it; price or stock may have changed since it was matched.
func (o *Orchestrator) handleConfirmYes(ctx context.Context, conversation *store.Conversation, result *Result) {
	if conversation.LastBestMatch == nil {
		result.Reply = constant.WhichBookAsk
		return
	}

	book, err := o.catalog.FindByID(ctx, conversation.LastBestMatch.ID)
	if err != nil {
		o.logger.Printf("[CHAT] catalog lookup failed: %v", err)
	}
	if book == nil {
		result.Reply = constant.WhichBookAsk
		return
	}

	o.states.SetLastMatch(conversation, *book)
	result.MatchedBook = book
	result.Reply = o.composer.ConfirmReply(ctx, *book, conversation.History)
}

// handleConfirmNo offers alternatives without any external service call:
// the suggestions already shown, or a fresh random sample from the catalog.
func (o *Orchestrator) handleConfirmNo(ctx context.Context, conversation *store.Conversation, result *Result) {
	books := conversation.LastSuggested
	if len(books) == 0 {
		sample, err := o.catalog.Sample(ctx, constant.SuggestionSampleSize)
		if err != nil {
			o.logger.Printf("[CHAT] catalog sample failed: %v", err)
		}
		books = sample
	}
	if len(books) == 0 {
		result.Reply = constant.NoMatchApology
		return
	}

	o.states.SetLastSuggested(conversation, books)
	result.Suggested = books
	result.Reply = o.composer.Alternatives(books)
}

func (o *Orchestrator) handlePrice(ctx context.Context, conversation *store.Conversation, text string, result *Result) {
	if book := o.titles.Match(text, o.allBooks(ctx)); book != nil {
		o.states.SetLastMatch(conversation, *book)
		o.states.SetLastSuggested(conversation, []store.Book{*book})
		result.MatchedBook = book
		result.Reply = o.composer.PriceReply(ctx, *book, conversation.History)
		return
	}

	// no title in the turn, fall back to the book already on the table
	if conversation.LastBestMatch != nil {
		result.MatchedBook = conversation.LastBestMatch
		result.Reply = o.composer.PriceReply(ctx, *conversation.LastBestMatch, conversation.History)
		return
	}

	result.Reply = constant.PriceMissApology
}

func (o *Orchestrator) handleAvailability(ctx context.Context, conversation *store.Conversation, text string, result *Result) {
	if book := o.titles.Match(text, o.allBooks(ctx)); book != nil {
		o.states.SetLastMatch(conversation, *book)
		o.states.SetLastSuggested(conversation, []store.Book{*book})
		result.MatchedBook = book
		result.Reply = o.composer.AvailabilityReply(ctx, *book, conversation.History)
		return
	}

	// the turn names no known title, so treat it as a freeform query
	o.handleTitle(ctx, conversation, text, result)
}

func (o *Orchestrator) handleColor(ctx context.Context, conversation *store.Conversation, text string, result *Result) {
	candidates := o.colors.Match(ctx, text)
	if len(candidates) == 0 {
		result.Reply = constant.ColorMissApology
		return
	}

	books := store.Books(candidates)
	o.states.SetLastMatch(conversation, books[0])
	o.states.SetLastSuggested(conversation, books)
	result.MatchedBook = &books[0]
	result.Suggested = books
	result.Reply = o.composer.ListReply(ctx, constant.InstructionColorList, books, conversation.History)
}

// handleTitle walks the matcher ladder for a text-only query: local title
// matching first, then the embedding service, then an apology.
func (o *Orchestrator) handleTitle(ctx context.Context, conversation *store.Conversation, text string, result *Result) {
	catalog := o.allBooks(ctx)

	if book := o.titles.Match(text, catalog); book != nil {
		o.states.SetLastMatch(conversation, *book)
		o.states.SetLastSuggested(conversation, []store.Book{*book})
		result.MatchedBook = book
		result.Reply = o.composer.AvailabilityReply(ctx, *book, conversation.History)
		return
	}

	candidates := o.semantic.Match(ctx, text, "", catalog)
	if len(candidates) == 0 {
		result.Reply = constant.NoMatchApology
		return
	}

	books := store.Books(candidates)
	o.states.SetLastMatch(conversation, books[0])
	o.states.SetLastSuggested(conversation, books)
	result.MatchedBook = &books[0]
	result.Suggested = books
	result.Reply = o.composer.AvailabilityReply(ctx, books[0], conversation.History)
}

func (o *Orchestrator) handleImage(ctx context.Context, conversation *store.Conversation, text, imageURL string, result *Result) {
	candidates := o.semantic.Match(ctx, text, imageURL, o.allBooks(ctx))
	if len(candidates) == 0 {
		result.Reply = constant.ImageMissApology
		return
	}

	books := store.Books(candidates)
	o.states.SetLastMatch(conversation, books[0])
	o.states.SetLastSuggested(conversation, books)
	result.MatchedBook = &books[0]
	result.Suggested = books
	result.Reply = o.composer.ListReply(ctx, constant.InstructionImageSummary, books, conversation.History)
}

// allBooks loads the catalog, degrading to empty on a repository failure so a
// storage hiccup reads as "no match" instead of a 500.
func (o *Orchestrator) allBooks(ctx context.Context) []store.Book {
	books, err := o.catalog.All(ctx)
	if err != nil {
		o.logger.Printf("[CHAT] catalog load failed: %v", err)
		return nil
	}
	return books
}

func userTurnContent(text string, hasImage bool) string {
	switch {
	case text != "" && hasImage:
		return text + " <Ảnh bìa sách>"
	case hasImage:
		return "<Ảnh bìa sách>"
	default:
		return text
	}
}
