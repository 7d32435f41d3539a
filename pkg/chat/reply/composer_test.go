package reply

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"booksland-be/pkg/llm"
	"booksland-be/pkg/store"
)

type stubLLM struct {
	response string
	err      error
	prompt   []llm.Message
}

func (s *stubLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	s.prompt = history
	return s.response, s.err
}

func (s *stubLLM) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	return s.response, s.err
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

var orwell = store.Book{
	ID:          "b1",
	Title:       "1984",
	Author:      "George Orwell",
	Price:       120000,
	Description: "Tiểu thuyết phản địa đàng kinh điển.",
}

func TestPriceReplyDelegated(t *testing.T) {
	provider := &stubLLM{response: "Cuốn 1984 có giá 120000₫ nha bạn!"}
	c := NewComposer(provider, discardLogger())

	got := c.PriceReply(context.Background(), orwell, nil)
	if got != provider.response {
		t.Errorf("PriceReply = %q, want delegate response", got)
	}

	// the prompt must carry the facts, not just the question
	var factMessage string
	for _, m := range provider.prompt {
		if strings.Contains(m.Content, "1984") {
			factMessage = m.Content
		}
	}
	if !strings.Contains(factMessage, "120000") {
		t.Errorf("delegate prompt missing price, got %q", factMessage)
	}
}

func TestPriceReplyFallbackCarriesFacts(t *testing.T) {
	provider := &stubLLM{err: errors.New("llm down")}
	c := NewComposer(provider, discardLogger())

	got := c.PriceReply(context.Background(), orwell, nil)
	for _, want := range []string{"1984", "George Orwell", "120000"} {
		if !strings.Contains(got, want) {
			t.Errorf("fallback reply %q missing %q", got, want)
		}
	}
}

func TestAvailabilityReplyFallback(t *testing.T) {
	provider := &stubLLM{err: errors.New("llm down")}
	c := NewComposer(provider, discardLogger())

	got := c.AvailabilityReply(context.Background(), orwell, nil)
	for _, want := range []string{"1984", "120000"} {
		if !strings.Contains(got, want) {
			t.Errorf("fallback reply %q missing %q", got, want)
		}
	}
}

func TestListReplyFallbackTotalsPrices(t *testing.T) {
	provider := &stubLLM{response: "   "} // blank delegate output also falls back
	c := NewComposer(provider, discardLogger())

	books := []store.Book{
		{ID: "b1", Title: "1984", Author: "George Orwell", Price: 120000},
		{ID: "b3", Title: "Dune", Author: "Frank Herbert", Price: 180000},
	}
	got := c.ListReply(context.Background(), "liệt kê", books, nil)
	for _, want := range []string{"1984", "Dune", "300000"} {
		if !strings.Contains(got, want) {
			t.Errorf("list reply %q missing %q", got, want)
		}
	}
}

func TestDelegatePromptBoundsHistory(t *testing.T) {
	provider := &stubLLM{response: "ok"}
	c := NewComposer(provider, discardLogger())

	history := []store.Message{
		{Role: store.RoleSystem, Content: "persona"},
	}
	for i := 0; i < 10; i++ {
		history = append(history, store.Message{Role: store.RoleUser, Content: "turn"})
	}

	c.PriceReply(context.Background(), orwell, history)

	// persona system + 3 history turns + fact block
	if len(provider.prompt) != 5 {
		t.Errorf("prompt has %d messages, want 5", len(provider.prompt))
	}
	if provider.prompt[0].Role != store.RoleSystem {
		t.Errorf("first prompt message role = %s, want system", provider.prompt[0].Role)
	}
}

func TestAlternatives(t *testing.T) {
	c := NewComposer(&stubLLM{err: errors.New("unused")}, discardLogger())

	books := []store.Book{
		{ID: "b2", Title: "Nhà Giả Kim", Author: "Paulo Coelho", Price: 95000},
	}
	got := c.Alternatives(books)
	if !strings.Contains(got, "Nhà Giả Kim") || !strings.Contains(got, "95000") {
		t.Errorf("Alternatives = %q, want title and price", got)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("ă", 400)
	got := truncate(long, 300)
	if len([]rune(got)) != 301 { // 300 runes + ellipsis
		t.Errorf("truncate length = %d runes, want 301", len([]rune(got)))
	}
	if short := truncate("ngắn", 300); short != "ngắn" {
		t.Errorf("truncate short = %q, want unchanged", short)
	}
}
