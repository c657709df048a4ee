// internal/game/score.go
//
// The word matcher: classifies each letter of a guess against a secret.

package game

import "fmt"

// ledger counts unclaimed occurrences of each secret letter.
// It lives for a single Assess call.
type ledger map[rune]int

func newLedger(secret Word) ledger {
	l := make(ledger, WordLength)
	for _, r := range secret {
		l[r]++
	}
	return l
}

// claim consumes one occurrence of r, reporting whether one was left.
func (l ledger) claim(r rune) bool {
	if l[r] <= 0 {
		return false
	}
	l[r]--
	return true
}

// Assess implements the two-pass Wordle scoring algorithm.
//
// Pass 1:
//   - Mark exact matches and claim that occurrence from the ledger.
//
// Pass 2 (left to right):
//   - For each non-exact guess letter: if the ledger still has an unclaimed
//     occurrence, mark Misplaced and claim it; otherwise leave Absent.
//
// Exact matches are settled before any Misplaced credit is handed out, so a
// repeated guess letter can never be credited more often than it occurs in
// the secret.
func Assess(secret, guess Word) [WordLength]Mark {
	var res [WordLength]Mark
	counts := newLedger(secret)

	for i := range guess {
		if guess[i] == secret[i] {
			res[i] = MarkExact
			counts.claim(guess[i])
		}
	}

	for i := range guess {
		if res[i] == MarkExact {
			continue
		}
		if counts.claim(guess[i]) {
			res[i] = MarkMisplaced
		}
	}
	return res
}

// Score runs Assess and pairs each guessed letter with its mark.
func Score(secret, guess Word) Guess {
	marks := Assess(secret, guess)
	var g Guess
	for i := range guess {
		g[i] = Tile{Letter: guess[i], Mark: marks[i]}
	}
	return g
}

// ScoreString validates both words before scoring.
func ScoreString(secret, guess string) (Guess, error) {
	s, err := ParseWord(secret)
	if err != nil {
		return Guess{}, fmt.Errorf("secret: %w", err)
	}
	g, err := ParseWord(guess)
	if err != nil {
		return Guess{}, fmt.Errorf("guess: %w", err)
	}
	return Score(s, g), nil
}
