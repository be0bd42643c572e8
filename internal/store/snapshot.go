package store

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/Lilac-Rose/gametracker/internal/model"
)

// breakdownLimit caps a day's breakdown at the most-played games.
const breakdownLimit = 10

type SnapshotStore struct {
	db *sql.DB
}

func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Record captures the library's playtime for the given date: the summed total
// plus one row per game that has any hours. Re-running for the same date
// overwrites that day's capture.
func (s *SnapshotStore) Record(date string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO daily_snapshots (date, total_hours)
		 SELECT ?, COALESCE(SUM(hours_played), 0) FROM games WHERE true
		 ON CONFLICT(date) DO UPDATE SET total_hours = excluded.total_hours`,
		date,
	)
	if err != nil {
		return fmt.Errorf("record total snapshot: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM daily_game_snapshots WHERE date = ?`, date); err != nil {
		return fmt.Errorf("clear game snapshots: %w", err)
	}
	_, err = tx.Exec(
		`INSERT INTO daily_game_snapshots (date, game_id, game_title, hours_played, cover_url)
		 SELECT ?, id, title, hours_played, COALESCE(cover_url, '')
		 FROM games WHERE hours_played IS NOT NULL AND hours_played > 0`,
		date,
	)
	if err != nil {
		return fmt.Errorf("record game snapshots: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetTotal returns the library-wide snapshot for a date, or (nil, nil) if none
// was taken that day.
func (s *SnapshotStore) GetTotal(date string) (*model.DailySnapshot, error) {
	row := s.db.QueryRow(`SELECT date, total_hours FROM daily_snapshots WHERE date = ?`, date)
	var snap model.DailySnapshot
	err := row.Scan(&snap.Date, &snap.TotalHours)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return &snap, nil
}

// ListRecent returns up to limit snapshots ending at the newest, in ascending
// date order for charting.
func (s *SnapshotStore) ListRecent(limit int) ([]model.DailySnapshot, error) {
	rows, err := s.db.Query(
		`SELECT date, total_hours FROM daily_snapshots ORDER BY date DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []model.DailySnapshot
	for rows.Next() {
		var snap model.DailySnapshot
		if err := rows.Scan(&snap.Date, &snap.TotalHours); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(snaps)-1; i < j; i, j = i+1, j-1 {
		snaps[i], snaps[j] = snaps[j], snaps[i]
	}
	return snaps, nil
}

// BreakdownForDate computes per-game hours gained on a date by diffing that
// day's snapshot against the previous calendar day's. Only the day's
// most-played games are considered; a game absent from the previous day
// counts from zero, and gains of 0.1h or less are dropped as rounding noise.
func (s *SnapshotStore) BreakdownForDate(date string) ([]model.GameHoursDelta, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot date: %w", err)
	}
	prevDate := day.AddDate(0, 0, -1).Format("2006-01-02")

	today, err := s.topGameSnapshots(date)
	if err != nil {
		return nil, err
	}
	prevHours, err := s.hoursByGame(prevDate)
	if err != nil {
		return nil, err
	}

	deltas := []model.GameHoursDelta{}
	for _, snap := range today {
		added := snap.HoursPlayed - prevHours[snap.GameID]
		if added <= 0.1 {
			continue
		}
		deltas = append(deltas, model.GameHoursDelta{
			GameID:     snap.GameID,
			GameTitle:  snap.GameTitle,
			HoursAdded: math.Round(added*10) / 10,
			TotalHours: math.Round(snap.HoursPlayed*10) / 10,
			CoverURL:   snap.CoverURL,
		})
	}
	return deltas, nil
}

func (s *SnapshotStore) topGameSnapshots(date string) ([]model.GameSnapshot, error) {
	rows, err := s.db.Query(
		`SELECT date, game_id, game_title, hours_played, cover_url
		 FROM daily_game_snapshots WHERE date = ?
		 ORDER BY hours_played DESC LIMIT ?`,
		date, breakdownLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("list game snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []model.GameSnapshot
	for rows.Next() {
		var snap model.GameSnapshot
		var coverURL sql.NullString
		if err := rows.Scan(&snap.Date, &snap.GameID, &snap.GameTitle, &snap.HoursPlayed, &coverURL); err != nil {
			return nil, fmt.Errorf("scan game snapshot: %w", err)
		}
		snap.CoverURL = coverURL.String
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

func (s *SnapshotStore) hoursByGame(date string) (map[int64]float64, error) {
	rows, err := s.db.Query(
		`SELECT game_id, hours_played FROM daily_game_snapshots WHERE date = ?`, date,
	)
	if err != nil {
		return nil, fmt.Errorf("list game snapshots: %w", err)
	}
	defer rows.Close()

	hours := make(map[int64]float64)
	for rows.Next() {
		var gameID int64
		var played float64
		if err := rows.Scan(&gameID, &played); err != nil {
			return nil, fmt.Errorf("scan game snapshot: %w", err)
		}
		hours[gameID] = played
	}
	return hours, rows.Err()
}
