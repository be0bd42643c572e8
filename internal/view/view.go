package view

// GameCard is one render-ready row of the visible list.
type GameCard struct {
	ID         int64
	Title      string
	Platform   string
	Status     string
	Rating     int
	Hours      float64
	Completion float64
	Tags       []string
	IsFavorite bool
	Selected   bool
}

// ViewModel is the derived, display-ready state. When no cards are visible
// it carries an explicit placeholder message instead of an ambiguous empty
// list.
type ViewModel struct {
	Cards         []GameCard
	Placeholder   string
	BatchMode     bool
	SelectedCount int
}

// Derive recomputes the visible list from scratch: filter, stable sort,
// then card construction. It never reads a previously derived subset, so
// repeated calls on unchanged state give identical output.
func (s *State) Derive() ViewModel {
	vm := ViewModel{
		BatchMode:     s.batchMode,
		SelectedCount: len(s.selected),
	}

	filtered := applyFilters(s.games, s.filters)
	applySort(filtered, s.sortKey)

	if len(filtered) == 0 {
		if len(s.games) == 0 {
			vm.Placeholder = "No games tracked yet"
		} else {
			vm.Placeholder = "No games match your filters"
		}
		return vm
	}

	vm.Cards = make([]GameCard, len(filtered))
	for i := range filtered {
		g := &filtered[i]
		vm.Cards[i] = GameCard{
			ID:         g.ID,
			Title:      g.Title,
			Platform:   g.Platform,
			Status:     g.Status,
			Rating:     g.RatingValue(),
			Hours:      g.Hours(),
			Completion: g.CompletionPercent(),
			Tags:       g.Tags,
			IsFavorite: g.IsFavorite,
			Selected:   s.selected[g.ID],
		}
	}
	return vm
}
