package store

import (
	"database/sql"
	"fmt"

	"github.com/Lilac-Rose/gametracker/internal/model"
)

type Top10Store struct {
	db *sql.DB
}

func NewTop10Store(db *sql.DB) *Top10Store {
	return &Top10Store{db: db}
}

// List returns the ranked list in position order with game details joined in.
// Slots whose game was deleted simply disappear.
func (s *Top10Store) List() ([]model.Top10Entry, error) {
	rows, err := s.db.Query(
		`SELECT t.position, t.game_id, t.reason, t.updated_at, g.title, g.cover_url
		 FROM top10 t JOIN games g ON g.id = t.game_id ORDER BY t.position`,
	)
	if err != nil {
		return nil, fmt.Errorf("list top10: %w", err)
	}
	defer rows.Close()

	var entries []model.Top10Entry
	for rows.Next() {
		var e model.Top10Entry
		var reason, coverURL sql.NullString
		if err := rows.Scan(&e.Position, &e.GameID, &reason, &e.UpdatedAt, &e.GameTitle, &coverURL); err != nil {
			return nil, fmt.Errorf("scan top10 entry: %w", err)
		}
		e.Reason = reason.String
		e.CoverURL = coverURL.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Replace swaps the entire ranked list in one transaction. Inputs must carry
// unique positions in 1..10 and unique game IDs; schema constraints back up
// both checks.
func (s *Top10Store) Replace(entries []model.Top10Entry) error {
	if len(entries) > 10 {
		return fmt.Errorf("top10 holds at most 10 entries, got %d", len(entries))
	}
	seenPos := make(map[int]bool, len(entries))
	seenGame := make(map[int64]bool, len(entries))
	for _, e := range entries {
		if e.Position < 1 || e.Position > 10 {
			return fmt.Errorf("position %d out of range", e.Position)
		}
		if seenPos[e.Position] {
			return fmt.Errorf("duplicate position %d", e.Position)
		}
		if seenGame[e.GameID] {
			return fmt.Errorf("game %d listed twice", e.GameID)
		}
		seenPos[e.Position] = true
		seenGame[e.GameID] = true
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM top10`); err != nil {
		return fmt.Errorf("clear top10: %w", err)
	}
	for _, e := range entries {
		_, err := tx.Exec(
			`INSERT INTO top10 (position, game_id, reason, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)`,
			e.Position, e.GameID, nullStr(e.Reason),
		)
		if err != nil {
			return fmt.Errorf("insert top10 entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
