package store

import (
	"database/sql"
	"fmt"

	"github.com/Lilac-Rose/gametracker/internal/model"
)

type AchievementStore struct {
	db *sql.DB
}

func NewAchievementStore(db *sql.DB) *AchievementStore {
	return &AchievementStore{db: db}
}

const achievementCols = "id, game_id, title, description, date, unlocked, icon_url"

func scanAchievement(scanner interface{ Scan(...any) error }) (*model.Achievement, error) {
	var a model.Achievement
	var description, date, iconURL sql.NullString
	var unlocked int

	err := scanner.Scan(&a.ID, &a.GameID, &a.Title, &description, &date, &unlocked, &iconURL)
	if err != nil {
		return nil, err
	}
	a.Description = description.String
	a.Date = date.String
	a.Unlocked = unlocked != 0
	a.IconURL = iconURL.String
	return &a, nil
}

// ListForGame returns a game's achievements, most recently dated first.
func (s *AchievementStore) ListForGame(gameID int64) ([]model.Achievement, error) {
	rows, err := s.db.Query(
		`SELECT `+achievementCols+` FROM achievements WHERE game_id = ? ORDER BY date DESC, id DESC`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	var achievements []model.Achievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		achievements = append(achievements, *a)
	}
	return achievements, rows.Err()
}

func (s *AchievementStore) GetByID(id int64) (*model.Achievement, error) {
	row := s.db.QueryRow(`SELECT `+achievementCols+` FROM achievements WHERE id = ?`, id)
	a, err := scanAchievement(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get achievement: %w", err)
	}
	return a, nil
}

func (s *AchievementStore) Create(gameID int64, title, description, date string, unlocked bool, iconURL string) (*model.Achievement, error) {
	unlockedInt := 0
	if unlocked {
		unlockedInt = 1
	}
	result, err := s.db.Exec(
		`INSERT INTO achievements (game_id, title, description, date, unlocked, icon_url) VALUES (?, ?, ?, ?, ?, ?)`,
		gameID, title, nullStr(description), nullStr(date), unlockedInt, nullStr(iconURL),
	)
	if err != nil {
		return nil, fmt.Errorf("insert achievement: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

// SetUnlocked flips the unlocked flag; date is stamped or cleared alongside so
// a re-locked achievement loses its unlock date.
func (s *AchievementStore) SetUnlocked(id int64, unlocked bool, date string) (*model.Achievement, error) {
	unlockedInt := 0
	if unlocked {
		unlockedInt = 1
	}
	_, err := s.db.Exec(
		`UPDATE achievements SET unlocked = ?, date = ? WHERE id = ?`,
		unlockedInt, nullStr(date), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update achievement: %w", err)
	}
	return s.GetByID(id)
}

func (s *AchievementStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM achievements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete achievement: %w", err)
	}
	return nil
}

// ReplaceForGame swaps a game's full achievement set in one transaction.
// Steam sync and bulk import both go through here.
func (s *AchievementStore) ReplaceForGame(gameID int64, achievements []model.Achievement) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM achievements WHERE game_id = ?`, gameID); err != nil {
		return 0, fmt.Errorf("clear achievements: %w", err)
	}

	inserted := 0
	for _, a := range achievements {
		unlockedInt := 0
		if a.Unlocked {
			unlockedInt = 1
		}
		_, err := tx.Exec(
			`INSERT INTO achievements (game_id, title, description, date, unlocked, icon_url) VALUES (?, ?, ?, ?, ?, ?)`,
			gameID, a.Title, nullStr(a.Description), nullStr(a.Date), unlockedInt, nullStr(a.IconURL),
		)
		if err != nil {
			return 0, fmt.Errorf("insert achievement: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}
