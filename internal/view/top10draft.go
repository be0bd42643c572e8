package view

import (
	"errors"

	"github.com/Lilac-Rose/gametracker/internal/model"
)

const draftCapacity = 10

// ErrDraftFull is returned when an eleventh entry is added to the draft.
var ErrDraftFull = errors.New("the top 10 already has 10 entries")

// ErrAlreadyRanked is returned when a game is added to the draft twice.
var ErrAlreadyRanked = errors.New("game is already in the top 10")

// Top10Draft is the favorites ranking under edit, decoupled from the saved
// list until posted wholesale. Positions stay dense 1..N throughout.
type Top10Draft struct {
	entries []draftEntry
}

type draftEntry struct {
	gameID int64
	title  string
	reason string
}

func NewTop10Draft() *Top10Draft {
	return &Top10Draft{}
}

// Load seeds the draft from the saved ranking, discarding any edits.
func (d *Top10Draft) Load(saved []model.Top10Entry) {
	d.entries = d.entries[:0]
	for _, e := range saved {
		if len(d.entries) == draftCapacity {
			break
		}
		d.entries = append(d.entries, draftEntry{gameID: e.GameID, title: e.GameTitle, reason: e.Reason})
	}
}

// Add appends a game at the bottom of the ranking. A full draft refuses the
// add outright rather than silently truncating.
func (d *Top10Draft) Add(gameID int64, title, reason string) error {
	if len(d.entries) >= draftCapacity {
		return ErrDraftFull
	}
	for _, e := range d.entries {
		if e.gameID == gameID {
			return ErrAlreadyRanked
		}
	}
	d.entries = append(d.entries, draftEntry{gameID: gameID, title: title, reason: reason})
	return nil
}

// Remove drops a game from the draft; the entries below it shift up so
// positions remain contiguous. Reports whether the game was present.
func (d *Top10Draft) Remove(gameID int64) bool {
	for i, e := range d.entries {
		if e.gameID == gameID {
			d.entries = append(d.entries[:i], d.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Move places a game at the given 1-based position, shifting its neighbors.
// Out-of-range positions clamp to the ends. Reports whether the game was
// present.
func (d *Top10Draft) Move(gameID int64, position int) bool {
	from := -1
	for i, e := range d.entries {
		if e.gameID == gameID {
			from = i
			break
		}
	}
	if from == -1 {
		return false
	}

	to := position - 1
	if to < 0 {
		to = 0
	}
	if to > len(d.entries)-1 {
		to = len(d.entries) - 1
	}

	entry := d.entries[from]
	d.entries = append(d.entries[:from], d.entries[from+1:]...)
	d.entries = append(d.entries[:to], append([]draftEntry{entry}, d.entries[to:]...)...)
	return true
}

// SetReason updates the annotation for a ranked game.
func (d *Top10Draft) SetReason(gameID int64, reason string) bool {
	for i := range d.entries {
		if d.entries[i].gameID == gameID {
			d.entries[i].reason = reason
			return true
		}
	}
	return false
}

func (d *Top10Draft) Len() int {
	return len(d.entries)
}

// Entries returns the draft as saved-list entries with dense 1-based
// positions, ready for the wholesale replace request.
func (d *Top10Draft) Entries() []model.Top10Entry {
	out := make([]model.Top10Entry, len(d.entries))
	for i, e := range d.entries {
		out[i] = model.Top10Entry{
			Position:  i + 1,
			GameID:    e.gameID,
			GameTitle: e.title,
			Reason:    e.reason,
		}
	}
	return out
}
