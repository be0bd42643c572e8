package store

import (
	"database/sql"
	"fmt"

	"github.com/Lilac-Rose/gametracker/internal/model"
)

type ChallengeStore struct {
	db *sql.DB
}

func NewChallengeStore(db *sql.DB) *ChallengeStore {
	return &ChallengeStore{db: db}
}

// ChallengeParams carries the writable fields of a completionist challenge.
type ChallengeParams struct {
	Title          string
	Description    string
	Difficulty     *int
	TimeToComplete string
	CompletionDate string
	Notes          string
	Completed      bool
}

const challengeCols = "id, game_id, title, description, difficulty, time_to_complete, completion_date, notes, completed, created_at"

func scanChallenge(scanner interface{ Scan(...any) error }) (*model.Challenge, error) {
	var c model.Challenge
	var description, timeToComplete, completionDate, notes sql.NullString
	var difficulty sql.NullInt64
	var completed int

	err := scanner.Scan(
		&c.ID, &c.GameID, &c.Title, &description, &difficulty, &timeToComplete,
		&completionDate, &notes, &completed, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Description = description.String
	c.TimeToComplete = timeToComplete.String
	c.CompletionDate = completionDate.String
	c.Notes = notes.String
	c.Completed = completed != 0
	if difficulty.Valid {
		d := int(difficulty.Int64)
		c.Difficulty = &d
	}
	return &c, nil
}

// ListForGame returns a game's challenges. sortBy "difficulty" orders hardest
// first with unrated last; anything else orders newest first.
func (s *ChallengeStore) ListForGame(gameID int64, sortBy string) ([]model.Challenge, error) {
	order := "ORDER BY created_at DESC, id DESC"
	if sortBy == "difficulty" {
		order = "ORDER BY difficulty DESC, id DESC"
	}

	rows, err := s.db.Query(
		`SELECT `+challengeCols+` FROM completionist_challenges WHERE game_id = ? `+order,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	defer rows.Close()

	var challenges []model.Challenge
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("scan challenge: %w", err)
		}
		challenges = append(challenges, *c)
	}
	return challenges, rows.Err()
}

func (s *ChallengeStore) GetByID(id int64) (*model.Challenge, error) {
	row := s.db.QueryRow(`SELECT `+challengeCols+` FROM completionist_challenges WHERE id = ?`, id)
	c, err := scanChallenge(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get challenge: %w", err)
	}
	return c, nil
}

func (s *ChallengeStore) Create(gameID int64, p ChallengeParams) (*model.Challenge, error) {
	completedInt := 0
	if p.Completed {
		completedInt = 1
	}
	result, err := s.db.Exec(
		`INSERT INTO completionist_challenges (game_id, title, description, difficulty, time_to_complete, completion_date, notes, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		gameID, p.Title, nullStr(p.Description), nullIntPtr(p.Difficulty),
		nullStr(p.TimeToComplete), nullStr(p.CompletionDate), nullStr(p.Notes), completedInt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert challenge: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ChallengeStore) Update(id int64, p ChallengeParams) (*model.Challenge, error) {
	completedInt := 0
	if p.Completed {
		completedInt = 1
	}
	_, err := s.db.Exec(
		`UPDATE completionist_challenges SET title = ?, description = ?, difficulty = ?,
		 time_to_complete = ?, completion_date = ?, notes = ?, completed = ? WHERE id = ?`,
		p.Title, nullStr(p.Description), nullIntPtr(p.Difficulty),
		nullStr(p.TimeToComplete), nullStr(p.CompletionDate), nullStr(p.Notes), completedInt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update challenge: %w", err)
	}
	return s.GetByID(id)
}

func (s *ChallengeStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM completionist_challenges WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete challenge: %w", err)
	}
	return nil
}

// ListAll returns challenges across every game with the game title joined in.
// status narrows the set: "completed", "in_progress", or anything else for all.
// sortBy follows the same rules as ListForGame.
func (s *ChallengeStore) ListAll(sortBy, status string) ([]model.ChallengeWithGame, error) {
	query := `SELECT c.id, c.game_id, c.title, c.description, c.difficulty, c.time_to_complete,
		c.completion_date, c.notes, c.completed, c.created_at, g.title
		FROM completionist_challenges c JOIN games g ON g.id = c.game_id`
	switch status {
	case "completed":
		query += " WHERE c.completed = 1"
	case "in_progress":
		query += " WHERE c.completed = 0"
	}
	if sortBy == "difficulty" {
		query += " ORDER BY c.difficulty DESC, c.id DESC"
	} else {
		query += " ORDER BY c.created_at DESC, c.id DESC"
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list all challenges: %w", err)
	}
	defer rows.Close()

	var challenges []model.ChallengeWithGame
	for rows.Next() {
		var c model.ChallengeWithGame
		var description, timeToComplete, completionDate, notes sql.NullString
		var difficulty sql.NullInt64
		var completed int

		err := rows.Scan(
			&c.ID, &c.GameID, &c.Title, &description, &difficulty, &timeToComplete,
			&completionDate, &notes, &completed, &c.CreatedAt, &c.GameTitle,
		)
		if err != nil {
			return nil, fmt.Errorf("scan challenge: %w", err)
		}
		c.Description = description.String
		c.TimeToComplete = timeToComplete.String
		c.CompletionDate = completionDate.String
		c.Notes = notes.String
		c.Completed = completed != 0
		if difficulty.Valid {
			d := int(difficulty.Int64)
			c.Difficulty = &d
		}
		challenges = append(challenges, c)
	}
	return challenges, rows.Err()
}
