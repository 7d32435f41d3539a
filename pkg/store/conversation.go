package store

// Book represents a single catalog entry. The shape is fixed; unknown fields
// are dropped at the repository boundary.
type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Price       int64  `json:"price"`
	Cover       string `json:"cover,omitempty"`
	Description string `json:"description,omitempty"`
	Stock       int    `json:"stock,omitempty"`
}

// MatchCandidate is a Book scored by one of the matchers.
// Lists of candidates are sorted by descending score; ties keep catalog order.
type MatchCandidate struct {
	Book  Book    `json:"book"`
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}

// Message is a single turn of the conversation history.
type Message struct {
	Role    string `json:"role"` // "system" | "user" | "assistant"
	Content string `json:"content"`
}

// Conversation is the persisted per-conversation state.
//
// LastBestMatch may reference a book that has since left the catalog; it is
// re-validated against the catalog before being quoted (stock/price).
type Conversation struct {
	ID string `json:"id"`

	// THE WORKBENCH (the book currently being discussed)
	LastBestMatch *Book `json:"last_best_match"`

	// THE WAITING ROOM (suggestions shown but not yet confirmed)
	LastSuggested []Book `json:"last_suggested"`

	History []Message `json:"history"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Books extracts the plain books from a ranked candidate list, in order.
func Books(candidates []MatchCandidate) []Book {
	books := make([]Book, 0, len(candidates))
	for _, c := range candidates {
		books = append(books, c.Book)
	}
	return books
}
