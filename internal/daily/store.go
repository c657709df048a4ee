package daily

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
)

// DefaultLeaderboardLimit applies when Leaderboard is called with limit <= 0.
const DefaultLeaderboardLimit = 20

// Result is a user's finished daily play.
// Stored in daily_results (UNIQUE(user_id, date)).
type Result struct {
	UserID    string     `json:"userId"`
	Date      string     `json:"date"`
	WordIndex int        `json:"wordIndex"`
	Outcome   game.State `json:"outcome"`
	Guesses   int        `json:"guesses"`
	ElapsedMs int        `json:"elapsedMs"`
}

// LBRow is one leaderboard entry.
type LBRow struct {
	UserID    string `json:"userId"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Store persists daily results.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Played reports how userID finished date, if they did.
func (s *Store) Played(ctx context.Context, userID, date string) (game.State, bool, error) {
	var outcome string
	err := s.db.QueryRowContext(ctx,
		`SELECT outcome FROM daily_results WHERE user_id=? AND date=?`,
		userID, date,
	).Scan(&outcome)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return game.StateInProgress, false, nil
	case err != nil:
		return game.StateInProgress, false, fmt.Errorf("daily: played: %w", err)
	case outcome == game.StateWon.String():
		return game.StateWon, true, nil
	default:
		return game.StateLost, true, nil
	}
}

// InsertResult stores r and reports whether it was new. A second result for
// the same user and date is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, word_index, outcome, guesses, elapsed_ms)
		 VALUES(?,?,?,?,?,?)`, r.UserID, r.Date, r.WordIndex, r.Outcome.String(), r.Guesses, r.ElapsedMs,
	)
	if err != nil {
		return false, fmt.Errorf("daily: insert result: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("daily: insert result: %w", err)
	}
	return n == 1, nil
}

// Reassign moves results recorded under from (a guest ID) to the account to.
// Days the account already has a result for keep the account's result.
func (s *Store) Reassign(ctx context.Context, from, to string) error {
	if from == "" || to == "" || from == to {
		return nil
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE OR IGNORE daily_results SET user_id=? WHERE user_id=?`, to, from,
	); err != nil {
		return fmt.Errorf("daily: reassign: %w", err)
	}
	return nil
}

// Leaderboard returns the fastest wins for date.
// Ordered by elapsed time, then guesses, then insertion time.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, guesses, elapsed_ms
		 FROM daily_results
		 WHERE date=? AND outcome='won'
		 ORDER BY elapsed_ms ASC, guesses ASC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("daily: leaderboard: %w", err)
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Guesses, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
