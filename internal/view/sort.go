package view

import (
	"sort"

	"github.com/Lilac-Rose/gametracker/internal/model"
)

// SortKey names one ordering of the visible list. The zero value is not
// valid; use SortRecent (the default) instead.
type SortKey string

const (
	SortRecent        SortKey = "recent"
	SortTitle         SortKey = "title"
	SortTitleDesc     SortKey = "title-desc"
	SortHours         SortKey = "hours"
	SortHoursAsc      SortKey = "hours-asc"
	SortRating        SortKey = "rating"
	SortRatingAsc     SortKey = "rating-asc"
	SortCompletion    SortKey = "completion"
	SortCompletionAsc SortKey = "completion-asc"
	SortStatus        SortKey = "status"
	SortPlatform      SortKey = "platform"
)

// ParseSortKey maps a stored or user-supplied name onto a known sort key,
// falling back to SortRecent for anything unrecognized.
func ParseSortKey(s string) SortKey {
	switch key := SortKey(s); key {
	case SortTitle, SortTitleDesc,
		SortHours, SortHoursAsc,
		SortRating, SortRatingAsc,
		SortCompletion, SortCompletionAsc,
		SortStatus, SortPlatform, SortRecent:
		return key
	}
	return SortRecent
}

// applySort orders games in place. Every comparator is paired with a stable
// sort so equal keys keep their fetch order. Missing numeric fields compare
// as zero; the descending variant of each numeric key is the bare name,
// matching how the list is usually browsed (most hours, best rated first).
func applySort(games []model.Game, key SortKey) {
	var less func(a, b *model.Game) bool
	switch key {
	case SortTitle:
		less = func(a, b *model.Game) bool { return a.Title < b.Title }
	case SortTitleDesc:
		less = func(a, b *model.Game) bool { return b.Title < a.Title }
	case SortHours:
		less = func(a, b *model.Game) bool { return a.Hours() > b.Hours() }
	case SortHoursAsc:
		less = func(a, b *model.Game) bool { return a.Hours() < b.Hours() }
	case SortRating:
		less = func(a, b *model.Game) bool { return a.RatingValue() > b.RatingValue() }
	case SortRatingAsc:
		less = func(a, b *model.Game) bool { return a.RatingValue() < b.RatingValue() }
	case SortCompletion:
		less = func(a, b *model.Game) bool { return a.CompletionPercent() > b.CompletionPercent() }
	case SortCompletionAsc:
		less = func(a, b *model.Game) bool { return a.CompletionPercent() < b.CompletionPercent() }
	case SortStatus:
		less = func(a, b *model.Game) bool { return a.Status < b.Status }
	case SortPlatform:
		less = func(a, b *model.Game) bool { return a.Platform < b.Platform }
	default: // SortRecent
		less = func(a, b *model.Game) bool { return a.CreatedAt.After(b.CreatedAt) }
	}

	sort.SliceStable(games, func(i, j int) bool {
		return less(&games[i], &games[j])
	})
}
