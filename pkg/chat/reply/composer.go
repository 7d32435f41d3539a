package reply

import (
	"context"
	"fmt"
	"log"
	"strings"

	"booksland-be/internal/constant"
	"booksland-be/pkg/llm"
	"booksland-be/pkg/store"
)

// Composer produces the final natural-language reply. Delegated mode builds a
// prompt (persona, fact block, intent instruction, recent history) for the
// text-generation service; every delegated reply has a deterministic template
// fallback built from the same facts, so a delegate failure never reaches the
// customer as an error.
type Composer struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewComposer(llmProvider llm.LLMProvider, logger *log.Logger) *Composer {
	return &Composer{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// AvailabilityReply confirms a title is on the shelf, with a short pitch.
func (c *Composer) AvailabilityReply(ctx context.Context, book store.Book, history []store.Message) string {
	fallback := fmt.Sprintf("Dạ, cuốn '%s' của %s hiện đang có sẵn tại BooksLand với giá %d₫.%s Bạn có muốn mua không ạ?",
		book.Title, book.Author, book.Price, descriptionSentence(book))
	return c.delegate(ctx, constant.InstructionAvailability, factBlock(book), history, fallback)
}

// PriceReply quotes the price of a single book.
func (c *Composer) PriceReply(ctx context.Context, book store.Book, history []store.Message) string {
	fallback := fmt.Sprintf("Cuốn '%s' của tác giả %s hiện có giá %d₫. Bạn có muốn mua không ạ?",
		book.Title, book.Author, book.Price)
	return c.delegate(ctx, constant.InstructionPrice, factBlock(book), history, fallback)
}

// ConfirmReply answers a "yes" follow-up about the active book.
func (c *Composer) ConfirmReply(ctx context.Context, book store.Book, history []store.Message) string {
	fallback := fmt.Sprintf("Dạ, cuốn '%s' vẫn còn hàng, giá %d₫. Bạn muốn mình lên đơn luôn không ạ?",
		book.Title, book.Price)
	return c.delegate(ctx, constant.InstructionConfirm, factBlock(book), history, fallback)
}

// ListReply enumerates a ranked list of books with the total price. Used for
// color matches and multi-object image matches.
func (c *Composer) ListReply(ctx context.Context, instruction string, books []store.Book, history []store.Message) string {
	var total int64
	var lines strings.Builder
	for i, b := range books {
		total += b.Price
		lines.WriteString(fmt.Sprintf("%d. '%s' — %s — %d₫\n", i+1, b.Title, b.Author, b.Price))
	}
	fallback := fmt.Sprintf("Mình tìm được %d cuốn cho bạn:\n%sTổng giá: %d₫. Bạn muốn xem cuốn nào ạ?",
		len(books), lines.String(), total)

	facts := listFactBlock(books, total)
	return c.delegate(ctx, instruction, facts, history, fallback)
}

// Alternatives lists fallback suggestions after a rejection. Template only;
// there is nothing for the delegate to add here.
func (c *Composer) Alternatives(books []store.Book) string {
	var sb strings.Builder
	sb.WriteString(constant.AlternativesLead)
	for i, b := range books {
		sb.WriteString(fmt.Sprintf("\n%d. '%s' — %s — %d₫", i+1, b.Title, b.Author, b.Price))
	}
	return sb.String()
}

func (c *Composer) delegate(ctx context.Context, instruction, facts string, history []store.Message, fallback string) string {
	messages := make([]llm.Message, 0, constant.HistoryTurnsInPrompt+2)
	messages = append(messages, llm.Message{Role: store.RoleSystem, Content: constant.PersonaSystemPrompt})

	// last N non-system turns for continuity
	turns := make([]llm.Message, 0, constant.HistoryTurnsInPrompt)
	for i := len(history) - 1; i >= 0 && len(turns) < constant.HistoryTurnsInPrompt; i-- {
		if history[i].Role == store.RoleSystem {
			continue
		}
		turns = append(turns, llm.Message{Role: history[i].Role, Content: history[i].Content})
	}
	for i := len(turns) - 1; i >= 0; i-- {
		messages = append(messages, turns[i])
	}

	messages = append(messages, llm.Message{
		Role:    store.RoleSystem,
		Content: facts + "\n\nYêu cầu: " + instruction,
	})

	response, err := c.llmProvider.Chat(ctx, messages)
	if err != nil {
		c.logger.Printf("[REPLY] delegate failed, using template: %v", err)
		return fallback
	}
	if strings.TrimSpace(response) == "" {
		return fallback
	}
	return response
}

func factBlock(book store.Book) string {
	var sb strings.Builder
	sb.WriteString("Thông tin sách:\n")
	sb.WriteString(fmt.Sprintf("- Tựa đề: %s\n", book.Title))
	sb.WriteString(fmt.Sprintf("- Tác giả: %s\n", book.Author))
	sb.WriteString(fmt.Sprintf("- Giá: %d₫\n", book.Price))
	if desc := truncate(book.Description, constant.DescriptionRuneLimit); desc != "" {
		sb.WriteString(fmt.Sprintf("- Mô tả: %s\n", desc))
	}
	return sb.String()
}

func listFactBlock(books []store.Book, total int64) string {
	var sb strings.Builder
	sb.WriteString("Danh sách sách tìm được:\n")
	for i, b := range books {
		sb.WriteString(fmt.Sprintf("%d. %s — %s — %d₫\n", i+1, b.Title, b.Author, b.Price))
	}
	sb.WriteString(fmt.Sprintf("Tổng giá: %d₫\n", total))
	return sb.String()
}

func descriptionSentence(book store.Book) string {
	desc := truncate(book.Description, constant.DescriptionRuneLimit)
	if desc == "" {
		return ""
	}
	return " " + desc
}

func truncate(s string, limit int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit]) + "…"
}
