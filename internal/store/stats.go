package store

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/Lilac-Rose/gametracker/internal/model"
)

type StatsStore struct {
	db *sql.DB
}

func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

// Collect assembles the dashboard payload: library totals, achievement
// progress, breakdowns by status and platform, recent completions, and the
// last 30 days of playtime history.
func (s *StatsStore) Collect() (*model.Stats, error) {
	stats := &model.Stats{
		StatusBreakdown:     map[string]int{},
		PlatformBreakdown:   map[string]int{},
		AchievementProgress: []model.AchievementProgress{},
		RecentCompletions:   []model.RecentCompletion{},
		DailyHistory:        []model.DailySnapshot{},
	}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COUNT(CASE WHEN status = 'Completed' THEN 1 END),
		        COALESCE(SUM(hours_played), 0)
		 FROM games`,
	).Scan(&stats.TotalGames, &stats.CompletedGames, &stats.TotalHours)
	if err != nil {
		return nil, fmt.Errorf("collect game totals: %w", err)
	}
	stats.TotalHours = math.Round(stats.TotalHours*10) / 10

	err = s.db.QueryRow(
		`SELECT COUNT(CASE WHEN unlocked = 1 THEN 1 END), COUNT(*) FROM achievements`,
	).Scan(&stats.AchievementsUnlocked, &stats.AchievementsTotal)
	if err != nil {
		return nil, fmt.Errorf("collect achievement totals: %w", err)
	}

	if err := s.collectProgress(stats); err != nil {
		return nil, err
	}
	if err := s.collectBreakdown(stats.StatusBreakdown, "status"); err != nil {
		return nil, err
	}
	if err := s.collectBreakdown(stats.PlatformBreakdown, "platform"); err != nil {
		return nil, err
	}
	if err := s.collectRecentCompletions(stats); err != nil {
		return nil, err
	}

	history, err := NewSnapshotStore(s.db).ListRecent(30)
	if err != nil {
		return nil, err
	}
	stats.DailyHistory = history

	return stats, nil
}

func (s *StatsStore) collectProgress(stats *model.Stats) error {
	rows, err := s.db.Query(
		`SELECT g.id, g.title,
		        COUNT(CASE WHEN a.unlocked = 1 THEN 1 END) AS unlocked,
		        COUNT(a.id) AS total
		 FROM games g LEFT JOIN achievements a ON a.game_id = g.id
		 GROUP BY g.id
		 HAVING COUNT(a.id) > 0
		 ORDER BY g.created_at DESC, g.id DESC`,
	)
	if err != nil {
		return fmt.Errorf("collect achievement progress: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p model.AchievementProgress
		if err := rows.Scan(&p.GameID, &p.Title, &p.UnlockedAchievements, &p.TotalAchievements); err != nil {
			return fmt.Errorf("scan achievement progress: %w", err)
		}
		stats.AchievementProgress = append(stats.AchievementProgress, p)
	}
	return rows.Err()
}

func (s *StatsStore) collectBreakdown(into map[string]int, column string) error {
	rows, err := s.db.Query(
		`SELECT ` + column + `, COUNT(*) FROM games
		 WHERE ` + column + ` IS NOT NULL AND ` + column + ` != ''
		 GROUP BY ` + column,
	)
	if err != nil {
		return fmt.Errorf("collect %s breakdown: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return fmt.Errorf("scan %s breakdown: %w", column, err)
		}
		into[key] = count
	}
	return rows.Err()
}

func (s *StatsStore) collectRecentCompletions(stats *model.Stats) error {
	rows, err := s.db.Query(
		`SELECT id, title, COALESCE(cover_url, ''), completion_date
		 FROM games
		 WHERE status = 'Completed' AND completion_date IS NOT NULL
		 ORDER BY completion_date DESC, id DESC LIMIT 5`,
	)
	if err != nil {
		return fmt.Errorf("collect recent completions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rc model.RecentCompletion
		if err := rows.Scan(&rc.GameID, &rc.Title, &rc.CoverURL, &rc.CompletionDate); err != nil {
			return fmt.Errorf("scan recent completion: %w", err)
		}
		stats.RecentCompletions = append(stats.RecentCompletions, rc)
	}
	return rows.Err()
}
