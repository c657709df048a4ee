package game_test

import (
	"encoding/json"
	"errors"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
)

const (
	E = game.MarkExact
	M = game.MarkMisplaced
	A = game.MarkAbsent
)

// randomWord draws from a small alphabet so duplicates are common.
func randomWord(rng *rand.Rand) game.Word {
	const alphabet = "ABCDE"
	var w game.Word
	for i := range w {
		w[i] = rune(alphabet[rng.Intn(len(alphabet))])
	}
	return w
}

var _ = Describe("Assess", func() {
	DescribeTable("classifies every letter",
		func(secret, guess string, want [game.WordLength]game.Mark) {
			got := game.Assess(game.MustParseWord(secret), game.MustParseWord(guess))
			Expect(got).To(Equal(want))
		},
		Entry("full match", "ABCDE", "ABCDE", [5]game.Mark{E, E, E, E, E}),
		Entry("no match", "ABCDE", "FGHIJ", [5]game.Mark{A, A, A, A, A}),
		Entry("all misplaced", "ABCDE", "BCDEA", [5]game.Mark{M, M, M, M, M}),
		Entry("a bit of everything", "ABCDE", "ABDCF", [5]game.Mark{E, E, M, M, A}),
		Entry("repeated guess letter", "ABADE", "AABCA", [5]game.Mark{E, M, M, A, A}),
		Entry("exact claims before misplaced", "ABBEY", "BBBBB", [5]game.Mark{A, E, E, A, A}),
		Entry("left-most surplus wins", "AABDE", "CDAAA", [5]game.Mark{A, M, M, M, A}),
		Entry("single secret letter, doubled guess", "CRANE", "EERIE", [5]game.Mark{A, A, M, A, E}),
	)

	It("is case sensitive", func() {
		got := game.Assess(game.MustParseWord("ABCDE"), game.MustParseWord("abcde"))
		Expect(got).To(Equal([5]game.Mark{A, A, A, A, A}))
	})

	Context("properties over random words", func() {
		var rng *rand.Rand

		BeforeEach(func() {
			rng = rand.New(rand.NewSource(42))
		})

		It("marks exactly the equal positions as Exact", func() {
			for n := 0; n < 2000; n++ {
				s, g := randomWord(rng), randomWord(rng)
				marks := game.Assess(s, g)
				for i := range marks {
					Expect(marks[i] == game.MarkExact).To(Equal(s[i] == g[i]), "secret %s guess %s pos %d", s, g, i)
				}
			}
		})

		It("never credits a letter more often than the secret holds it", func() {
			for n := 0; n < 2000; n++ {
				s, g := randomWord(rng), randomWord(rng)
				marks := game.Assess(s, g)

				inSecret := map[rune]int{}
				for _, r := range s {
					inSecret[r]++
				}
				credited := map[rune]int{}
				for i, m := range marks {
					if m != game.MarkAbsent {
						credited[g[i]]++
					}
				}
				for r, c := range credited {
					Expect(c).To(BeNumerically("<=", inSecret[r]), "secret %s guess %s letter %c", s, g, r)
				}
			}
		})

		It("returns the same result on repeated calls", func() {
			for n := 0; n < 200; n++ {
				s, g := randomWord(rng), randomWord(rng)
				Expect(game.Assess(s, g)).To(Equal(game.Assess(s, g)))
			}
		})

		It("is solved exactly when guess equals secret", func() {
			for n := 0; n < 2000; n++ {
				s, g := randomWord(rng), randomWord(rng)
				Expect(game.Score(s, g).Solved()).To(Equal(s == g))
			}
		})
	})
})

var _ = Describe("Score", func() {
	It("keeps the submitted letters", func() {
		guess := game.MustParseWord("WRONG")
		g := game.Score(game.MustParseWord("RIGHT"), guess)
		Expect(g.Word()).To(Equal(guess))
		Expect(g.Word().String()).To(Equal("WRONG"))
		Expect(g.Marks()).To(Equal([5]game.Mark{A, M, A, A, M}))
	})

	It("encodes tiles as letter and mark", func() {
		g := game.Score(game.MustParseWord("ABCDE"), game.MustParseWord("ABDCF"))
		b, err := json.Marshal(g)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(Equal(`[{"letter":"A","mark":"exact"},{"letter":"B","mark":"exact"},` +
			`{"letter":"D","mark":"misplaced"},{"letter":"C","mark":"misplaced"},{"letter":"F","mark":"absent"}]`))
	})

	Describe("ScoreString", func() {
		It("rejects a short guess", func() {
			_, err := game.ScoreString("ABCDE", "ABC")
			Expect(errors.Is(err, game.ErrInvalidLength)).To(BeTrue())
		})

		It("rejects a long secret", func() {
			_, err := game.ScoreString("ABCDEF", "ABCDE")
			Expect(err).To(MatchError(game.ErrInvalidLength))
		})

		It("counts runes, not bytes", func() {
			g, err := game.ScoreString("ÄBCDE", "ÄBCDE")
			Expect(err).ToNot(HaveOccurred())
			Expect(g.Solved()).To(BeTrue())
		})
	})
})

var _ = Describe("Mark", func() {
	It("defaults to Absent", func() {
		var m game.Mark
		Expect(m).To(Equal(game.MarkAbsent))
		Expect(m.String()).To(Equal("absent"))
	})

	It("decodes the names it encodes", func() {
		for _, m := range []game.Mark{E, M, A} {
			b, err := m.MarshalText()
			Expect(err).ToNot(HaveOccurred())
			var back game.Mark
			Expect(back.UnmarshalText(b)).To(Succeed())
			Expect(back).To(Equal(m))
		}
	})

	It("refuses unknown names", func() {
		var m game.Mark
		Expect(m.UnmarshalText([]byte("green"))).ToNot(Succeed())
	})
})
