// internal/words/daily_exports.go
//
// Indexed access to the answer list for the Daily Challenge mode.
// The daily package picks an index from the date; this file turns it into a Word.

package words

import "github.com/robalobadob/wordle/apps/go-engine/internal/game"

// Answers returns the loaded answer list (upper case). Callers must not modify it.
func Answers() []string { return answers }

// AnswerAt returns the answer at index i.
func AnswerAt(i int) (game.Word, bool) {
	if i < 0 || i >= len(answers) {
		return game.Word{}, false
	}
	return game.MustParseWord(answers[i]), true
}
