// internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - Word:  a fixed-length (5) sequence of letters.
//   - Mark:  per-letter result of a guess (exact/misplaced/absent).
//   - Tile:  one submitted letter paired with its Mark.
//   - Guess: the immutable record produced by scoring one guess.
//   - State: session lifecycle (in_progress → won | lost).

package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

// WordLength is the number of letters in every secret and guess.
const WordLength = 5

// MaxAttempts is the number of guesses a session allows before it is lost.
const MaxAttempts = 6

// Word is a fixed-length sequence of letters.
// The core never folds case; callers pick a convention (the service uses upper case).
type Word [WordLength]rune

// ParseWord converts s into a Word.
// Returns ErrInvalidLength unless s holds exactly WordLength runes.
func ParseWord(s string) (Word, error) {
	var w Word
	rs := []rune(s)
	if len(rs) != WordLength {
		return w, fmt.Errorf("%w: got %d letters, want %d", ErrInvalidLength, len(rs), WordLength)
	}
	copy(w[:], rs)
	return w, nil
}

// MustParseWord is ParseWord for trusted literals; it panics on bad input.
func MustParseWord(s string) Word {
	w, err := ParseWord(s)
	if err != nil {
		panic(err)
	}
	return w
}

// String returns the letters as a plain string.
func (w Word) String() string {
	var b strings.Builder
	for _, r := range w {
		b.WriteRune(r)
	}
	return b.String()
}

// Mark represents the evaluation result for a single letter in a guess.
// The zero value is MarkAbsent.
type Mark uint8

const (
	MarkAbsent    Mark = iota // no unclaimed occurrence left in the secret
	MarkMisplaced             // in the secret, but not at this position
	MarkExact                 // same letter at the same position
)

var markNames = [...]string{
	MarkAbsent:    "absent",
	MarkMisplaced: "misplaced",
	MarkExact:     "exact",
}

func (m Mark) String() string {
	if int(m) < len(markNames) {
		return markNames[m]
	}
	return fmt.Sprintf("Mark(%d)", uint8(m))
}

// MarshalText encodes the mark as its lowercase name.
func (m Mark) MarshalText() ([]byte, error) {
	if int(m) >= len(markNames) {
		return nil, fmt.Errorf("game: invalid mark %d", uint8(m))
	}
	return []byte(markNames[m]), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (m *Mark) UnmarshalText(b []byte) error {
	for i, name := range markNames {
		if name == string(b) {
			*m = Mark(i)
			return nil
		}
	}
	return fmt.Errorf("game: unknown mark %q", b)
}

// Tile is one letter of a scored guess.
type Tile struct {
	Letter rune
	Mark   Mark
}

// MarshalJSON renders the tile as {"letter":"A","mark":"exact"}.
func (t Tile) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Letter string `json:"letter"`
		Mark   Mark   `json:"mark"`
	}{string(t.Letter), t.Mark})
}

// Guess is the record of one scored guess, in submission order of its letters.
type Guess [WordLength]Tile

// Word reconstructs the submitted letters.
func (g Guess) Word() Word {
	var w Word
	for i, t := range g {
		w[i] = t.Letter
	}
	return w
}

// Marks returns the classification of each position.
func (g Guess) Marks() [WordLength]Mark {
	var m [WordLength]Mark
	for i, t := range g {
		m[i] = t.Mark
	}
	return m
}

// Solved reports whether every letter is MarkExact.
func (g Guess) Solved() bool {
	for _, t := range g {
		if t.Mark != MarkExact {
			return false
		}
	}
	return true
}

// State is the lifecycle of a Session.
type State uint8

const (
	StateInProgress State = iota
	StateWon
	StateLost
)

var stateNames = [...]string{
	StateInProgress: "in_progress",
	StateWon:        "won",
	StateLost:       "lost",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Terminal reports whether no further guesses are accepted.
func (s State) Terminal() bool { return s == StateWon || s == StateLost }

// MarshalText encodes the state as its snake_case name.
func (s State) MarshalText() ([]byte, error) {
	if int(s) >= len(stateNames) {
		return nil, fmt.Errorf("game: invalid state %d", uint8(s))
	}
	return []byte(stateNames[s]), nil
}
