package match

import (
	"strings"

	"booksland-be/pkg/store"
)

// TitleMatcher resolves free text to a single catalog record. Exact substring
// containment wins first, then whole-input similarity, then per-word voting.
// Deterministic for a fixed catalog and input; an empty catalog yields nil.
type TitleMatcher struct{}

func NewTitleMatcher() *TitleMatcher {
	return &TitleMatcher{}
}

// maximum near-matches collected per query word during the voting pass
const nearMatchesPerWord = 3

func (m *TitleMatcher) Match(input string, catalog []store.Book) *store.Book {
	query := normalize(input)
	if query == "" || len(catalog) == 0 {
		return nil
	}

	// a. substring containment of the full input against any title,
	// either direction ("1984" inside "1984 giá bao nhiêu?" counts too)
	for i := range catalog {
		title := normalize(catalog[i].Title)
		if title == "" {
			continue
		}
		if strings.Contains(title, query) || strings.Contains(query, title) {
			return &catalog[i]
		}
	}

	// b. whole-input similarity, best ratio wins at the threshold
	bestRatio := 0.0
	bestIdx := -1
	for i := range catalog {
		ratio := similarity(query, normalize(catalog[i].Title))
		if ratio > bestRatio {
			bestRatio = ratio
			bestIdx = i
		}
	}
	if bestIdx >= 0 && bestRatio >= similarityThreshold {
		return &catalog[bestIdx]
	}

	// c. per-word voting: collect up to 3 near-matching titles per query word,
	// the title mentioned most often wins, first-encountered breaks ties
	votes := make(map[int]int)
	order := make([]int, 0, len(catalog))
	for _, word := range strings.Fields(query) {
		collected := 0
		for i := range catalog {
			if collected >= nearMatchesPerWord {
				break
			}
			if similarity(word, normalize(catalog[i].Title)) >= similarityThreshold {
				if votes[i] == 0 {
					order = append(order, i)
				}
				votes[i]++
				collected++
			}
		}
	}

	winner := -1
	winnerVotes := 0
	for _, idx := range order {
		if votes[idx] > winnerVotes {
			winner = idx
			winnerVotes = votes[idx]
		}
	}
	if winner >= 0 {
		return &catalog[winner]
	}

	return nil
}
