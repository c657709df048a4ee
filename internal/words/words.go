// internal/words/words.go
//
// Secret-word sourcing for new sessions.
//
// Responsibilities:
//   - Load the answer list from an environment-provided file or fall back to the embedded default.
//   - Maintain a set for quick membership checks.
//   - Supply RandomAnswer, IsAnswer and Count.
//
// Initialization behavior (Init):
//  1. If WORDS_ANSWERS_FILE (or the configured path) is set, load answers from it.
//  2. Otherwise fall back to assets/answers.txt.
//
// Constraints:
//   - Words must be 5 letters A–Z; anything else is skipped.
//   - Lists are normalized to upper case.
//   - Initialization runs once (sync.Once).
//
// Guesses are never checked against this list.

package words

import (
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-engine/assets"
	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
)

// ErrEmpty is returned by Init when no usable answer was found.
var ErrEmpty = errors.New("words: answers list is empty")

var (
	initOnce   sync.Once
	answers    []string
	answersSet map[string]struct{}
	initialErr error
)

// Init loads the answer list exactly once. An empty path means the embedded default.
func Init(path string) error {
	initOnce.Do(func() {
		var raw []string
		var err error
		if path != "" {
			raw, err = readWordFile(path)
		} else {
			raw, err = assets.AnswersList()
		}
		if err != nil {
			initialErr = err
			return
		}
		load(raw)
		if len(answers) == 0 {
			initialErr = ErrEmpty
			return
		}
		src := path
		if src == "" {
			src = "embedded"
		}
		log.Info().Str("source", src).Int("answers", len(answers)).Msg("word list loaded")
	})
	return initialErr
}

// load replaces the lists with the valid entries of raw.
func load(raw []string) {
	answers = make([]string, 0, len(raw))
	answersSet = make(map[string]struct{}, len(raw))
	for _, w := range raw {
		w = Normalize(w)
		if !valid(w) {
			continue
		}
		if _, dup := answersSet[w]; dup {
			continue
		}
		answersSet[w] = struct{}{}
		answers = append(answers, w)
	}
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

// Normalize trims surrounding space and upper-cases s.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// valid reports whether s is WordLength ASCII letters A–Z.
func valid(s string) bool {
	if len(s) != game.WordLength {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// RandomAnswer returns a cryptographically random answer.
// If no answers are loaded, falls back to "CRANE".
func RandomAnswer() game.Word {
	if len(answers) == 0 {
		return game.MustParseWord("CRANE")
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(answers))))
	return game.MustParseWord(answers[nBig.Int64()])
}

// IsAnswer reports whether w is an answer word.
func IsAnswer(w string) bool {
	_, ok := answersSet[Normalize(w)]
	return ok
}

// Count returns how many answers are loaded.
func Count() int { return len(answers) }
