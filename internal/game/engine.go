// internal/game/engine.go
//
// Core game engine for a single Wordle session.
// Responsibilities:
//   - Create sessions around a fixed secret word (6 attempts × 5 letters).
//   - Score guesses with the matcher in score.go and keep them in order.
//   - Track state transitions: in_progress → won/lost.
//
// Notes:
//   - A Session has one owner; it does no locking of its own.
//   - Text normalisation (trim, case) is the caller's job.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Session holds the state of a single game.
type Session struct {
	ID      string  // Unique session identifier (random hex string).
	secret  Word    // Never changes after NewSession.
	history []Guess // Append-only, chronological.
	state   State
}

// NewSession starts a game around secret with an empty history.
func NewSession(secret Word) *Session {
	return &Session{
		ID:      randomID(),
		secret:  secret,
		history: make([]Guess, 0, MaxAttempts),
		state:   StateInProgress,
	}
}

// Submit scores guess, appends it to the history and returns the new state.
//
// State transitions, in priority order:
//   - Every tile Exact → StateWon.
//   - Else attempts reached MaxAttempts → StateLost.
//   - Else StateInProgress.
//
// A finished session rejects the guess with ErrSessionFinished and is left unchanged.
func (s *Session) Submit(guess Word) (State, error) {
	if s.state.Terminal() {
		return s.state, fmt.Errorf("submit %s: %w", guess, ErrSessionFinished)
	}

	g := Score(s.secret, guess)
	s.history = append(s.history, g)

	switch {
	case g.Solved():
		s.state = StateWon
	case len(s.history) >= MaxAttempts:
		s.state = StateLost
	}
	return s.state, nil
}

// SubmitString parses guess and submits it.
// A malformed guess returns ErrInvalidLength without touching the session.
func (s *Session) SubmitString(guess string) (State, error) {
	w, err := ParseWord(guess)
	if err != nil {
		return s.state, err
	}
	return s.Submit(w)
}

// State reports the current lifecycle state.
func (s *Session) State() State { return s.state }

// Attempts is the number of guesses submitted so far.
func (s *Session) Attempts() int { return len(s.history) }

// History returns a copy of the scored guesses in submission order.
func (s *Session) History() []Guess {
	out := make([]Guess, len(s.history))
	copy(out, s.history)
	return out
}

// Last returns the most recent guess, if any.
func (s *Session) Last() (Guess, bool) {
	if len(s.history) == 0 {
		return Guess{}, false
	}
	return s.history[len(s.history)-1], true
}

// Secret returns the word being guessed.
func (s *Session) Secret() Word { return s.secret }

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
