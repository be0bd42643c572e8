package view

import (
	"strings"

	"github.com/Lilac-Rose/gametracker/internal/model"
)

// matches reports whether a game passes the filters: case-insensitive
// substring over title, notes, and tags; exact match on status and platform.
func (f Filters) matches(g *model.Game) bool {
	if f.Status != "" && g.Status != f.Status {
		return false
	}
	if f.Platform != "" && g.Platform != f.Platform {
		return false
	}
	if f.Search == "" {
		return true
	}

	needle := strings.ToLower(f.Search)
	if strings.Contains(strings.ToLower(g.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(g.Notes), needle) {
		return true
	}
	for _, tag := range g.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// applyFilters copies the passing games into a fresh slice, preserving
// fetch order.
func applyFilters(games []model.Game, f Filters) []model.Game {
	out := make([]model.Game, 0, len(games))
	for i := range games {
		if f.matches(&games[i]) {
			out = append(out, games[i])
		}
	}
	return out
}
