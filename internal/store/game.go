package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Lilac-Rose/gametracker/internal/model"
)

type GameStore struct {
	db *sql.DB
}

func NewGameStore(db *sql.DB) *GameStore {
	return &GameStore{db: db}
}

// GameParams carries the writable fields of a game for Create and Update.
type GameParams struct {
	Title          string
	Platform       string
	Status         string
	Notes          string
	Rating         *int
	HoursPlayed    *float64
	SteamAppID     *int64
	CoverURL       string
	CompletionDate string
	Tags           []string
}

const gameCols = `g.id, g.title, g.platform, g.status, g.notes, g.rating, g.hours_played,
	g.steam_app_id, g.cover_url, g.completion_date, g.is_favorite, g.created_at,
	COUNT(CASE WHEN a.unlocked = 1 THEN 1 END) AS unlocked_achievements,
	COUNT(a.id) AS total_achievements`

const gameFrom = ` FROM games g LEFT JOIN achievements a ON a.game_id = g.id`

func scanGame(scanner interface{ Scan(...any) error }) (*model.Game, error) {
	var g model.Game
	var platform, status, notes, coverURL, completionDate sql.NullString
	var rating, steamAppID sql.NullInt64
	var hours sql.NullFloat64
	var favorite int

	err := scanner.Scan(
		&g.ID, &g.Title, &platform, &status, &notes, &rating, &hours,
		&steamAppID, &coverURL, &completionDate, &favorite, &g.CreatedAt,
		&g.UnlockedAchievements, &g.TotalAchievements,
	)
	if err != nil {
		return nil, err
	}

	g.Platform = platform.String
	g.Status = status.String
	g.Notes = notes.String
	g.CoverURL = coverURL.String
	g.CompletionDate = completionDate.String
	g.IsFavorite = favorite != 0
	if rating.Valid {
		r := int(rating.Int64)
		g.Rating = &r
	}
	if hours.Valid {
		g.HoursPlayed = &hours.Float64
	}
	if steamAppID.Valid {
		g.SteamAppID = &steamAppID.Int64
	}
	return &g, nil
}

// List returns every game with tags and achievement counts attached,
// newest first. This ordering is the client's "fetch order".
func (s *GameStore) List() ([]model.Game, error) {
	rows, err := s.db.Query(
		`SELECT ` + gameCols + gameFrom + ` GROUP BY g.id ORDER BY g.created_at DESC, g.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []model.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tagsByGame, err := s.allTags()
	if err != nil {
		return nil, err
	}
	for i := range games {
		games[i].Tags = tagsByGame[games[i].ID]
		if games[i].Tags == nil {
			games[i].Tags = []string{}
		}
	}
	return games, nil
}

func (s *GameStore) GetByID(id int64) (*model.Game, error) {
	row := s.db.QueryRow(
		`SELECT `+gameCols+gameFrom+` WHERE g.id = ? GROUP BY g.id`, id,
	)
	g, err := scanGame(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get game: %w", err)
	}

	tags, err := s.tagsFor(id)
	if err != nil {
		return nil, err
	}
	g.Tags = tags
	return g, nil
}

func (s *GameStore) Create(p GameParams) (*model.Game, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO games (title, platform, status, notes, rating, hours_played, steam_app_id, cover_url, completion_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, nullStr(p.Platform), nullStr(p.Status), nullStr(p.Notes),
		nullIntPtr(p.Rating), nullFloatPtr(p.HoursPlayed), nullInt64Ptr(p.SteamAppID),
		nullStr(p.CoverURL), nullStr(p.CompletionDate),
	)
	if err != nil {
		return nil, fmt.Errorf("insert game: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if err := insertTags(tx, id, p.Tags); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

// Update replaces every writable field and the full tag set.
func (s *GameStore) Update(id int64, p GameParams) (*model.Game, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`UPDATE games SET title = ?, platform = ?, status = ?, notes = ?, rating = ?,
		 hours_played = ?, steam_app_id = ?, cover_url = ?, completion_date = ? WHERE id = ?`,
		p.Title, nullStr(p.Platform), nullStr(p.Status), nullStr(p.Notes),
		nullIntPtr(p.Rating), nullFloatPtr(p.HoursPlayed), nullInt64Ptr(p.SteamAppID),
		nullStr(p.CoverURL), nullStr(p.CompletionDate), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update game: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM tags WHERE game_id = ?`, id); err != nil {
		return nil, fmt.Errorf("clear tags: %w", err)
	}
	if err := insertTags(tx, id, p.Tags); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes a game; achievements, challenges, tags, and any top-10 slot
// go with it via foreign keys.
func (s *GameStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}

// ToggleFavorite flips the favorite flag and returns the updated game,
// or (nil, nil) if the game does not exist.
func (s *GameStore) ToggleFavorite(id int64) (*model.Game, error) {
	game, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, nil
	}

	newFav := 0
	if !game.IsFavorite {
		newFav = 1
	}
	if _, err := s.db.Exec(`UPDATE games SET is_favorite = ? WHERE id = ?`, newFav, id); err != nil {
		return nil, fmt.Errorf("toggle favorite: %w", err)
	}
	return s.GetByID(id)
}

// UpdateHours sets hours_played, used by Steam playtime sync.
func (s *GameStore) UpdateHours(id int64, hours float64) error {
	_, err := s.db.Exec(`UPDATE games SET hours_played = ? WHERE id = ?`, hours, id)
	if err != nil {
		return fmt.Errorf("update hours: %w", err)
	}
	return nil
}

// Random picks one qualifying game at random. Empty status/platform match any;
// maxHours, when set, keeps games at or under that playtime (absent hours
// count as zero). Returns (nil, nil) when nothing qualifies.
func (s *GameStore) Random(status, platform string, maxHours *float64) (*model.Game, error) {
	var where []string
	var args []any

	if status != "" {
		where = append(where, "g.status = ?")
		args = append(args, status)
	}
	if platform != "" {
		where = append(where, "g.platform = ?")
		args = append(args, platform)
	}
	if maxHours != nil {
		where = append(where, "COALESCE(g.hours_played, 0) <= ?")
		args = append(args, *maxHours)
	}

	query := `SELECT ` + gameCols + gameFrom
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " GROUP BY g.id ORDER BY RANDOM() LIMIT 1"

	row := s.db.QueryRow(query, args...)
	g, err := scanGame(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("random game: %w", err)
	}

	tags, err := s.tagsFor(g.ID)
	if err != nil {
		return nil, err
	}
	g.Tags = tags
	return g, nil
}

// ExistingSteamAppIDs returns the set of steam_app_ids already tracked,
// used to skip duplicates during library import.
func (s *GameStore) ExistingSteamAppIDs() (map[int64]bool, error) {
	rows, err := s.db.Query(`SELECT steam_app_id FROM games WHERE steam_app_id IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("list steam app ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan steam app id: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

func (s *GameStore) tagsFor(gameID int64) ([]string, error) {
	rows, err := s.db.Query(`SELECT tag FROM tags WHERE game_id = ? ORDER BY id`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (s *GameStore) allTags() (map[int64][]string, error) {
	rows, err := s.db.Query(`SELECT game_id, tag FROM tags ORDER BY game_id, id`)
	if err != nil {
		return nil, fmt.Errorf("list all tags: %w", err)
	}
	defer rows.Close()

	byGame := make(map[int64][]string)
	for rows.Next() {
		var gameID int64
		var t string
		if err := rows.Scan(&gameID, &t); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		byGame[gameID] = append(byGame[gameID], t)
	}
	return byGame, rows.Err()
}

func insertTags(tx *sql.Tx, gameID int64, tags []string) error {
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, err := tx.Exec(`INSERT INTO tags (game_id, tag) VALUES (?, ?)`, gameID, t); err != nil {
			return fmt.Errorf("insert tag: %w", err)
		}
	}
	return nil
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullIntPtr(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullInt64Ptr(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullFloatPtr(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
