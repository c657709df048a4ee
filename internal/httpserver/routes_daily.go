// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start a daily game (creates or reuses session)
//   - POST /daily/guess       → submit a guess for today’s daily game
//   - GET  /daily/leaderboard → fetch top results for today (or a given date)
//
// Each player gets one play per day. Active plays are held in memory; the
// outcome (won or lost) is written to the DB once the play ends, and a guest's
// play follows them when they sign up or log in.
// Deterministic word selection is based on date + salt.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-engine/internal/daily"
	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
	"github.com/robalobadob/wordle/apps/go-engine/internal/metrics"
	"github.com/robalobadob/wordle/apps/go-engine/internal/words"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv   *Server
	store *daily.Store
	salt  string
	plays map[string]*daily.Play // active plays keyed by userID|date
	mu    sync.Mutex             // guards plays and the sessions inside them
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:   s,
		store: daily.NewStore(s.db),
		salt:  s.cfg.DailySalt,
		plays: make(map[string]*daily.Play),
	}
	s.daily = dd
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns today's date key, deterministic word index, and answer.
func (d *dailyServer) today() (date string, idx int, answer game.Word, ok bool) {
	now := d.srv.now().UTC()
	date = daily.DateKey(now)
	idx = daily.WordIndex(now, d.salt, words.Count())
	answer, ok = words.AnswerAt(idx)
	return date, idx, answer, ok
}

// playerID returns the authenticated user ID if logged in,
// otherwise the anonymous cookie ID.
func (d *dailyServer) playerID(w http.ResponseWriter, r *http.Request) string {
	if me := userFrom(r); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

func playKey(uid, date string) string { return uid + "|" + date }

// dropStaleLocked forgets plays from earlier days. Callers hold d.mu.
func (d *dailyServer) dropStaleLocked(date string) {
	for k, p := range d.plays {
		if p.Date != date {
			delete(d.plays, k)
		}
	}
}

// -----------------------------------------------------------------------------
// /daily/new

// newRes is returned by /daily/new.
type newRes struct {
	GameID   string     `json:"gameId"`
	Date     string     `json:"date"`
	Played   bool       `json:"played"`
	State    game.State `json:"state"`
	Attempts int        `json:"attempts"`
}

// handleNew creates or reuses a daily session for the current date.
//   - A play still in memory is returned as is, finished or not.
//   - Otherwise a DB result for today means Played=true with its outcome.
//   - Otherwise a fresh session is started.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.playerID(w, r)
	date, idx, answer, ok := d.today()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no_answers")
		return
	}
	key := playKey(uid, date)

	d.mu.Lock()
	d.dropStaleLocked(date)
	p, ok := d.plays[key]
	var res newRes
	if ok {
		res = playRes(p)
	}
	d.mu.Unlock()
	if ok {
		writeJSON(w, http.StatusOK, res)
		return
	}

	if st, played, err := d.store.Played(r.Context(), uid, date); err != nil {
		log.Warn().Err(err).Str("user", uid).Msg("daily played")
	} else if played {
		writeJSON(w, http.StatusOK, newRes{Date: date, Played: true, State: st})
		return
	}

	d.mu.Lock()
	p, ok = d.plays[key]
	if !ok {
		p = daily.NewPlay(uid, date, idx, answer, d.srv.now())
		d.plays[key] = p
		metrics.RecordStart(metrics.ModeDaily)
	}
	res = playRes(p)
	d.mu.Unlock()

	writeJSON(w, http.StatusOK, res)
}

// playRes describes p. Callers hold d.mu.
func playRes(p *daily.Play) newRes {
	st := p.Session.State()
	return newRes{
		GameID:   p.Session.ID,
		Date:     p.Date,
		Played:   st.Terminal(),
		State:    st,
		Attempts: p.Session.Attempts(),
	}
}

// claim hands the guest's plays over to userID. A day the account already
// has a play for keeps the account's play.
func (d *dailyServer) claim(ctx context.Context, anonID, userID string) {
	if anonID == "" || userID == "" {
		return
	}
	d.mu.Lock()
	for k, p := range d.plays {
		if !strings.HasPrefix(k, anonID+"|") {
			continue
		}
		delete(d.plays, k)
		to := playKey(userID, p.Date)
		if _, taken := d.plays[to]; taken {
			continue
		}
		p.UserID = userID
		d.plays[to] = p
	}
	d.mu.Unlock()

	if err := d.store.Reassign(ctx, anonID, userID); err != nil {
		log.Warn().Err(err).Str("user", userID).Msg("claim daily results")
	}
}

// -----------------------------------------------------------------------------
// /daily/guess

// dailyGuessReq is the request payload for /daily/guess.
type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}

// dailyGuessRes is the response payload for /daily/guess.
type dailyGuessRes struct {
	Tiles   game.Guess `json:"tiles"`
	State   game.State `json:"state"`
	Guesses int        `json:"guesses"`
	Answer  string     `json:"answer,omitempty"` // only after a loss
}

// handleGuess validates and applies a guess for today's daily session.
//   - Rejects if there is no session or it is finished.
//   - Scores through the session; persists the outcome once it ends.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid := d.playerID(w, r)

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	date, _, _, _ := d.today()

	d.mu.Lock()
	play, ok := d.plays[playKey(uid, date)]
	if !ok || play.Session.ID != p.GameID {
		d.mu.Unlock()
		writeError(w, http.StatusConflict, "no_session")
		return
	}
	st, err := play.Session.SubmitString(words.Normalize(p.Word))
	var res dailyGuessRes
	if err == nil {
		res.Tiles, _ = play.Session.Last()
		res.State = st
		res.Guesses = play.Session.Attempts()
		if st == game.StateLost {
			res.Answer = play.Session.Secret().String()
		}
	}
	result, done := play.Result(d.srv.now())
	d.mu.Unlock()

	if err != nil {
		status, code := rejectStatus(err)
		metrics.RecordRejected(code)
		writeError(w, status, code)
		return
	}
	metrics.RecordGuess(metrics.ModeDaily, res.Tiles, res.State, res.Guesses)

	if done {
		d.finish(r, result)
	}
	writeJSON(w, http.StatusOK, res)
}

// finish records the outcome and, for signed-in players, counts the game in
// their stats. Stats only move when the outcome is new.
func (d *dailyServer) finish(r *http.Request, result daily.Result) {
	inserted, err := d.store.InsertResult(r.Context(), result)
	if err != nil {
		log.Warn().Err(err).Str("user", result.UserID).Msg("insert daily result")
		return
	}
	me := userFrom(r)
	if !inserted || me == nil || me.ID != result.UserID {
		return
	}

	tx, err := d.srv.db.BeginTx(r.Context(), nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin daily stats tx")
		return
	}
	defer func() { _ = tx.Rollback() }()
	if err := bumpStats(tx, me.ID, result.Outcome == game.StateWon); err != nil {
		log.Warn().Err(err).Str("user", me.ID).Msg("bump daily stats")
		return
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit daily stats")
	}
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _, _ = d.today()
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit > 100 {
		limit = 100
	}
	rows, err := d.store.Leaderboard(r.Context(), date, limit)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("daily leaderboard")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
