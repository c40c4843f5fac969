// Package matching derives candidate found-item matches for a user's own
// lost items by category equality or location overlap.
package matching

import (
	"log"

	"github.com/campusfind/backend/internal/models"
	"github.com/campusfind/backend/internal/repositories"
)

// MaxMatches caps the unioned candidate list.
const MaxMatches = 5

// Engine computes match candidates. Query failures are logged and
// suppressed: the result degrades to whatever was already collected.
type Engine struct {
	items repositories.ItemRepository
}

// NewEngine creates an Engine over the given item repository.
func NewEngine(items repositories.ItemRepository) *Engine {
	return &Engine{items: items}
}

// FindMatches returns up to MaxMatches found-status items, reported by other
// users, that plausibly correspond to one of userID's lost items. For each
// lost item the candidates match by category equality or by the candidate's
// location containing the lost item's location (case-insensitive), newest
// first. Results are unioned across lost items in order and deduplicated by
// item ID, first occurrence winning, then truncated.
//
// A user with no lost items gets an empty result without any candidate
// query being issued. This method never fails; errors are logged.
func (e *Engine) FindMatches(userID uint) []models.Item {
	lost, err := e.items.GetByReporterAndStatus(userID, models.ItemStatusLost)
	if err != nil {
		log.Printf("matching: loading lost items for user %d: %v", userID, err)
		return []models.Item{}
	}
	if len(lost) == 0 {
		return []models.Item{}
	}

	seen := make(map[uint]bool)
	matches := []models.Item{}
	for _, lostItem := range lost {
		candidates, err := e.items.FindFoundCandidates(userID, lostItem.Category, lostItem.Location)
		if err != nil {
			log.Printf("matching: finding candidates for item %d: %v", lostItem.ID, err)
			continue
		}
		for _, candidate := range candidates {
			if seen[candidate.ID] {
				continue
			}
			seen[candidate.ID] = true
			matches = append(matches, candidate)
		}
	}

	if len(matches) > MaxMatches {
		matches = matches[:MaxMatches]
	}
	return matches
}
