// internal/httpserver/routes_game.go
//
// Free-play game endpoints:
//   - POST /game/new   → start a session (random answer, or a fixed one outside production)
//   - POST /game/guess → score a guess against a session
//   - GET  /game/{id}  → board so far; the answer is only revealed once the game is over
//
// Boards live in the in-memory store. The games table only tracks outcomes.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
	"github.com/robalobadob/wordle/apps/go-engine/internal/metrics"
	"github.com/robalobadob/wordle/apps/go-engine/internal/store"
	"github.com/robalobadob/wordle/apps/go-engine/internal/words"
)

// rejectStatus maps a guess error to an HTTP status and error code.
func rejectStatus(err error) (int, string) {
	switch {
	case errors.Is(err, game.ErrInvalidLength):
		return http.StatusBadRequest, "invalid_length"
	case errors.Is(err, game.ErrSessionFinished):
		return http.StatusConflict, "session_finished"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer (ignored in production)
}
type newGameRes struct {
	GameID      string `json:"gameId"`
	WordLength  int    `json:"wordLength"`
	MaxAttempts int    `json:"maxAttempts"`
}

// handleNewGame creates a new in-memory session and a DB owner row
// (either user_id or anonymous_id) for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	secret := words.RandomAnswer()
	if req.Answer != "" && !s.cfg.Production {
		fixed, err := game.ParseWord(words.Normalize(req.Answer))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_length")
			return
		}
		secret = fixed
	}

	g := game.NewSession(secret)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	metrics.RecordStart(metrics.ModeNormal)
	metrics.SetActive(s.store.Len())

	now := s.now().UTC().Format(time.RFC3339)
	if me := userFrom(r); me != nil {
		_, err := s.db.ExecContext(r.Context(), `INSERT INTO games (id, user_id, started_at, status, guesses)
		                     VALUES (?,?,?,?,0)`, g.ID, me.ID, now, game.StateInProgress.String())
		if err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("insert user game row")
		}
	} else {
		anon := s.ensureAnonID(w, r)
		_, err := s.db.ExecContext(r.Context(), `INSERT INTO games (id, anonymous_id, started_at, status, guesses)
		                     VALUES (?,?,?,?,0)`, g.ID, anon, now, game.StateInProgress.String())
		if err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("insert anon game row")
		}
	}

	writeJSON(w, http.StatusOK, newGameRes{GameID: g.ID, WordLength: game.WordLength, MaxAttempts: game.MaxAttempts})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Tiles    game.Guess `json:"tiles"`
	State    game.State `json:"state"`
	Attempts int        `json:"attempts"`
	Answer   string     `json:"answer,omitempty"` // set once the game is over
}

// handleGuess applies a guess to an in-memory session, persists progress,
// and (if finished) updates user stats in a best-effort transaction.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	var res guessRes
	err := s.store.Update(r.Context(), req.GameID, func(g *game.Session) error {
		st, err := g.SubmitString(words.Normalize(req.Guess))
		if err != nil {
			return err
		}
		res.Tiles, _ = g.Last()
		res.State = st
		res.Attempts = g.Attempts()
		if st.Terminal() {
			res.Answer = g.Secret().String()
		}
		return nil
	})
	if err != nil {
		status, code := rejectStatus(err)
		metrics.RecordRejected(code)
		log.Debug().Err(err).Str("gameId", req.GameID).Msg("guess rejected")
		writeError(w, status, code)
		return
	}
	metrics.RecordGuess(metrics.ModeNormal, res.Tiles, res.State, res.Attempts)

	s.recordProgress(w, r, req.GameID, res.State)

	writeJSON(w, http.StatusOK, res)
}

// recordProgress bumps the outcome row and, on a finished game, the player's stats.
// Failures are logged and never surface to the player.
func (s *Server) recordProgress(w http.ResponseWriter, r *http.Request, gameID string, st game.State) {
	me := userFrom(r)
	ownerClause, ownerArg := `user_id=?`, ""
	if me != nil {
		ownerArg = me.ID
	} else {
		ownerClause, ownerArg = `anonymous_id=?`, s.ensureAnonID(w, r)
	}

	tx, err := s.db.BeginTx(r.Context(), nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin progress tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE games SET guesses = guesses + 1, status=? WHERE id=? AND `+ownerClause,
		st.String(), gameID, ownerArg); err != nil {
		log.Warn().Err(err).Msg("update guesses")
	}

	if st.Terminal() {
		if _, err := tx.Exec(`UPDATE games SET finished_at=? WHERE id=? AND `+ownerClause,
			s.now().UTC().Format(time.RFC3339), gameID, ownerArg); err != nil {
			log.Warn().Err(err).Msg("finish game")
		}
		if me != nil {
			if err := bumpStats(tx, me.ID, st == game.StateWon); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit progress")
	}
}

type gameRes struct {
	GameID      string       `json:"gameId"`
	History     []game.Guess `json:"history"`
	State       game.State   `json:"state"`
	Attempts    int          `json:"attempts"`
	MaxAttempts int          `json:"maxAttempts"`
	Answer      string       `json:"answer,omitempty"`
}

// handleGetGame returns the board of a session.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var res gameRes
	err := s.store.View(r.Context(), id, func(g *game.Session) error {
		res = gameRes{
			GameID:      g.ID,
			History:     g.History(),
			State:       g.State(),
			Attempts:    g.Attempts(),
			MaxAttempts: game.MaxAttempts,
		}
		if g.State().Terminal() {
			res.Answer = g.Secret().String()
		}
		return nil
	})
	if err != nil {
		status, code := rejectStatus(err)
		writeError(w, status, code)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
