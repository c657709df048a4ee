// Package daily implements the Daily Challenge: one shared secret per UTC day,
// chosen deterministically from the answer list, with results kept in SQLite.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Play is one player's attempt at one day's word.
type Play struct {
	Session   *game.Session
	UserID    string
	Date      string
	WordIndex int
	Start     time.Time
}

// NewPlay starts a session for userID on date.
func NewPlay(userID, date string, idx int, secret game.Word, now time.Time) *Play {
	return &Play{
		Session:   game.NewSession(secret),
		UserID:    userID,
		Date:      date,
		WordIndex: idx,
		Start:     now,
	}
}

// Result summarises a finished play. Wins and losses are both kept so a
// player cannot start the same day over; only wins are ranked.
func (p *Play) Result(now time.Time) (Result, bool) {
	st := p.Session.State()
	if !st.Terminal() {
		return Result{}, false
	}
	return Result{
		UserID:    p.UserID,
		Date:      p.Date,
		WordIndex: p.WordIndex,
		Outcome:   st,
		Guesses:   p.Session.Attempts(),
		ElapsedMs: int(now.Sub(p.Start).Milliseconds()),
	}, true
}
