package match

import (
	"context"
	"log"

	"booksland-be/pkg/chat/intent"
	"booksland-be/pkg/store"
)

// ColorService is the external cover-color similarity collaborator.
type ColorService interface {
	MatchByColor(ctx context.Context, color string) ([]store.MatchCandidate, error)
}

// ColorMatcher maps a color mention to a canonical token and delegates ranking
// to the external service. There is no local fallback; a service error
// degrades to "no candidates", never a crash.
type ColorMatcher struct {
	service ColorService
	logger  *log.Logger
}

func NewColorMatcher(service ColorService, logger *log.Logger) *ColorMatcher {
	return &ColorMatcher{
		service: service,
		logger:  logger,
	}
}

func (m *ColorMatcher) Match(ctx context.Context, text string) []store.MatchCandidate {
	token := intent.ColorToken(text)
	if token == "" {
		return nil
	}

	candidates, err := m.service.MatchByColor(ctx, token)
	if err != nil {
		m.logger.Printf("[COLOR] match by %q failed: %v", token, err)
		return nil
	}
	return candidates
}
