// Package storage provides SQLite-based persistence for completed level scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/fire-drill/internal/game"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DefaultPlayer is recorded when a score has no player name.
const DefaultPlayer = "local"

// Store manages the SQLite database connection for the leaderboard.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one stored level completion.
type ScoreEntry struct {
	ID                int64
	LevelID           int
	Player            string
	Score             int
	TimeRemaining     int
	FiresExtinguished int
	ItemsCollected    int
	TipsFound         int
	CompletedAt       time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// MemoryPath gives a database that lives as long as the Store.
func Open(dbPath string) (*Store, error) {
	if dbPath != MemoryPath {
		// Expand ~ to home directory
		if dbPath != "" && dbPath[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
			}
			dbPath = filepath.Join(home, dbPath[1:])
		}

		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS level_scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id INTEGER NOT NULL,
			player TEXT NOT NULL DEFAULT 'local',
			score INTEGER NOT NULL,
			time_remaining INTEGER NOT NULL DEFAULT 0,
			fires_extinguished INTEGER NOT NULL DEFAULT 0,
			items_collected INTEGER NOT NULL DEFAULT 0,
			tips_found INTEGER NOT NULL DEFAULT 0,
			completed_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_level_scores_level ON level_scores(level_id);
		CREATE INDEX IF NOT EXISTS idx_level_scores_top ON level_scores(level_id, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save records a level completion for player.
// Returns the ID of the inserted record.
func (s *Store) Save(player string, rec game.LevelScore) (int64, error) {
	if player == "" {
		player = DefaultPlayer
	}
	completedAt := rec.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO level_scores
		 (level_id, player, score, time_remaining, fires_extinguished, items_collected, tips_found, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.LevelID, player, rec.Score, rec.TimeRemaining,
		rec.FiresExtinguished, rec.ItemsCollected, rec.TipsFound,
		completedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveLevelScore implements game.ScoreSink for the default player.
func (s *Store) SaveLevelScore(rec game.LevelScore) error {
	_, err := s.Save(DefaultPlayer, rec)
	return err
}

// Ensure Store implements ScoreSink
var _ game.ScoreSink = (*Store)(nil)

// PlayerSink records scores under one player name, e.g. an SSH user.
type PlayerSink struct {
	store  *Store
	player string
}

// ForPlayer returns a sink that tags every record with player.
func (s *Store) ForPlayer(player string) *PlayerSink {
	return &PlayerSink{store: s, player: player}
}

// SaveLevelScore implements game.ScoreSink.
func (p *PlayerSink) SaveLevelScore(rec game.LevelScore) error {
	_, err := p.store.Save(p.player, rec)
	return err
}

var _ game.ScoreSink = (*PlayerSink)(nil)

// TopScores retrieves the top N scores for the given level.
// Results are ordered by score descending, earlier completions first on ties.
func (s *Store) TopScores(levelID, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, player, score, time_remaining, fires_extinguished,
		        items_collected, tips_found, completed_at
		 FROM level_scores
		 WHERE level_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var completedAt any
		if err := rows.Scan(&e.ID, &e.LevelID, &e.Player, &e.Score, &e.TimeRemaining,
			&e.FiresExtinguished, &e.ItemsCollected, &e.TipsFound, &completedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CompletedAt = parseTime(completedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given level.
// Returns 0 if no scores exist.
func (s *Store) HighScore(levelID int) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM level_scores WHERE level_id = ?",
		levelID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given level.
func (s *Store) ClearScores(levelID int) error {
	_, err := s.db.Exec("DELETE FROM level_scores WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID     int
	Completions int
	HighScore   int
	AvgScore    float64
	TotalFires  int
	LastPlayed  time.Time
}

// GetLevelStats retrieves aggregated statistics for a specific level.
func (s *Store) GetLevelStats(levelID int) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(fires_extinguished), 0)
		 FROM level_scores WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Completions, &stats.HighScore, &stats.AvgScore, &stats.TotalFires)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT completed_at FROM level_scores WHERE level_id = ? ORDER BY completed_at DESC LIMIT 1`,
		levelID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllLevelStats retrieves statistics for every level that has been completed.
func (s *Store) GetAllLevelStats() (map[int]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), MAX(score), AVG(score), SUM(fires_extinguished), MAX(completed_at)
		 FROM level_scores
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var lastPlayed any
		if err := rows.Scan(&st.LevelID, &st.Completions, &st.HighScore, &st.AvgScore, &st.TotalFires, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.LevelID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and the text forms SQLite hands back.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	case []byte:
		return parseTime(string(v))
	}
	return time.Time{}
}
