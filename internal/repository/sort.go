package repository

import (
	"slices"

	"gamecatalog/backend/internal/models"
)

// SortGamesByDate stable-sorts a copy of games by release date, newest first.
// Games whose date cannot be parsed go last, keeping their relative order.
func SortGamesByDate(games []*models.Game) []*models.Game {
	sorted := slices.Clone(games)
	slices.SortStableFunc(sorted, func(a, b *models.Game) int {
		ta, okA := a.ReleaseTime()
		tb, okB := b.ReleaseTime()
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		// Descending.
		return tb.Compare(ta)
	})
	return sorted
}
