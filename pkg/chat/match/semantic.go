package match

import (
	"context"
	"log"

	"booksland-be/pkg/store"
)

// SemanticService is the external embedding-similarity collaborator with its
// three input shapes.
type SemanticService interface {
	MatchText(ctx context.Context, query string, books []store.Book) ([]store.MatchCandidate, error)
	MatchImage(ctx context.Context, query, imageB64 string, books []store.Book) ([]store.MatchCandidate, error)
	Search(ctx context.Context, query string) ([]store.MatchCandidate, error)
}

// SemanticMatcher picks the service endpoint from the input shape and shields
// the orchestrator from service failures.
type SemanticMatcher struct {
	service SemanticService
	logger  *log.Logger
}

func NewSemanticMatcher(service SemanticService, logger *log.Logger) *SemanticMatcher {
	return &SemanticMatcher{
		service: service,
		logger:  logger,
	}
}

// Match scores any combination of text and image against the catalog.
// Failures degrade to an empty list; the caller must still produce a reply.
func (m *SemanticMatcher) Match(ctx context.Context, text, imageB64 string, catalog []store.Book) []store.MatchCandidate {
	var (
		candidates []store.MatchCandidate
		err        error
	)

	switch {
	case imageB64 != "":
		candidates, err = m.service.MatchImage(ctx, text, imageB64, catalog)
	case text != "" && len(catalog) > 0:
		candidates, err = m.service.MatchText(ctx, text, catalog)
	case text != "":
		candidates, err = m.service.Search(ctx, text)
	default:
		return nil
	}

	if err != nil {
		m.logger.Printf("[SEMANTIC] match failed: %v", err)
		return nil
	}
	return candidates
}
