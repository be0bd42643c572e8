package view

import (
	"github.com/Lilac-Rose/gametracker/internal/model"
)

// Filters narrow the visible game list. Empty fields match everything.
type Filters struct {
	Search   string
	Status   string
	Platform string
}

// State holds the last-fetched game list plus the ephemeral UI state views
// are computed from: filters, sort key, batch selection, the top-10 draft,
// and the session flag. All reads of the visible list go through Derive;
// nothing renders from a previously derived subset.
type State struct {
	games     []model.Game
	filters   Filters
	sortKey   SortKey
	batchMode bool
	selected  map[int64]bool
	draft     *Top10Draft
	loggedIn  bool
}

func NewState() *State {
	return &State{
		sortKey:  SortRecent,
		selected: make(map[int64]bool),
		draft:    NewTop10Draft(),
	}
}

// ReplaceGames swaps in a freshly fetched list wholesale. The slice is
// copied so later fetches cannot mutate state behind its back; the given
// order becomes the fetch order that sorting ties fall back to.
func (s *State) ReplaceGames(games []model.Game) {
	s.games = make([]model.Game, len(games))
	copy(s.games, games)
}

// PatchGame applies fn to the single game with the given id, after a
// confirmed server write. Reports whether the game was found.
func (s *State) PatchGame(id int64, fn func(*model.Game)) bool {
	for i := range s.games {
		if s.games[i].ID == id {
			fn(&s.games[i])
			return true
		}
	}
	return false
}

// RemoveGames drops the given ids from the cached list, preserving order.
func (s *State) RemoveGames(ids []int64) {
	drop := make(map[int64]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := s.games[:0]
	for _, g := range s.games {
		if !drop[g.ID] {
			kept = append(kept, g)
		}
	}
	s.games = kept
}

// Game returns the cached game with the given id, or nil.
func (s *State) Game(id int64) *model.Game {
	for i := range s.games {
		if s.games[i].ID == id {
			return &s.games[i]
		}
	}
	return nil
}

// GameCount reports how many games are cached, filtered or not.
func (s *State) GameCount() int {
	return len(s.games)
}

func (s *State) SetSearch(q string) {
	s.filters.Search = q
}

func (s *State) SetStatus(status string) {
	s.filters.Status = status
}

func (s *State) SetPlatform(p string) {
	s.filters.Platform = p
}

func (s *State) SetSortKey(key SortKey) {
	s.sortKey = key
}

func (s *State) Filters() Filters {
	return s.filters
}

func (s *State) SortKey() SortKey {
	return s.sortKey
}

func (s *State) SetLoggedIn(v bool) {
	s.loggedIn = v
}

func (s *State) LoggedIn() bool {
	return s.loggedIn
}

// Draft returns the working top-10 draft. It survives refetches of the
// game list; only Load replaces its contents.
func (s *State) Draft() *Top10Draft {
	return s.draft
}

// EnterBatchMode switches multi-select on with an empty selection.
func (s *State) EnterBatchMode() {
	s.batchMode = true
	s.selected = make(map[int64]bool)
}

// ExitBatchMode leaves multi-select, discarding the selection. Called on
// both completion and cancellation of a batch action.
func (s *State) ExitBatchMode() {
	s.batchMode = false
	s.selected = make(map[int64]bool)
}

func (s *State) BatchMode() bool {
	return s.batchMode
}

// ToggleSelected adds or removes an id from the batch selection.
func (s *State) ToggleSelected(id int64) {
	if s.selected[id] {
		delete(s.selected, id)
		return
	}
	s.selected[id] = true
}

// Selected returns a snapshot of the selection in the cached list's order,
// so batch operations run in a predictable sequence.
func (s *State) Selected() []int64 {
	ids := make([]int64, 0, len(s.selected))
	for _, g := range s.games {
		if s.selected[g.ID] {
			ids = append(ids, g.ID)
		}
	}
	return ids
}

func (s *State) SelectedCount() int {
	return len(s.selected)
}

// LoadPrefs rehydrates the persisted sort and filter choices.
func (s *State) LoadPrefs(p Prefs) {
	s.sortKey = ParseSortKey(p.Get(PrefSort))
	s.filters.Search = p.Get(PrefSearch)
	s.filters.Status = p.Get(PrefStatus)
	s.filters.Platform = p.Get(PrefPlatform)
}

// SavePrefs persists the current sort and filter choices.
func (s *State) SavePrefs(p Prefs) error {
	pairs := []struct{ key, value string }{
		{PrefSort, string(s.sortKey)},
		{PrefSearch, s.filters.Search},
		{PrefStatus, s.filters.Status},
		{PrefPlatform, s.filters.Platform},
	}
	for _, kv := range pairs {
		if err := p.Set(kv.key, kv.value); err != nil {
			return err
		}
	}
	return nil
}
