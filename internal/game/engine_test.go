package game_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
)

var _ = Describe("Session", func() {
	var s *game.Session

	BeforeEach(func() {
		s = game.NewSession(game.MustParseWord("RIGHT"))
	})

	It("starts empty and in progress", func() {
		Expect(s.Attempts()).To(Equal(0))
		Expect(s.History()).To(BeEmpty())
		Expect(s.State()).To(Equal(game.StateInProgress))
		Expect(s.ID).To(HaveLen(16))
		_, ok := s.Last()
		Expect(ok).To(BeFalse())
	})

	It("fills the history in submission order", func() {
		_, err := s.SubmitString("WRONG")
		Expect(err).ToNot(HaveOccurred())
		Expect(s.Attempts()).To(Equal(1))

		_, err = s.SubmitString("FALSE")
		Expect(err).ToNot(HaveOccurred())
		Expect(s.Attempts()).To(Equal(2))

		h := s.History()
		Expect(h[0].Word().String()).To(Equal("WRONG"))
		Expect(h[1].Word().String()).To(Equal("FALSE"))

		last, ok := s.Last()
		Expect(ok).To(BeTrue())
		Expect(last).To(Equal(h[1]))
	})

	It("hands out a copy of the history", func() {
		_, _ = s.SubmitString("WRONG")
		h := s.History()
		h[0] = game.Guess{}
		Expect(s.History()[0].Word().String()).To(Equal("WRONG"))
	})

	It("wins on the first exact guess", func() {
		st, err := s.SubmitString("RIGHT")
		Expect(err).ToNot(HaveOccurred())
		Expect(st).To(Equal(game.StateWon))
		Expect(s.Attempts()).To(Equal(1))
	})

	It("wins on the sixth attempt rather than losing", func() {
		for i := 0; i < game.MaxAttempts-1; i++ {
			Expect(s.SubmitString("FALSE")).To(Equal(game.StateInProgress))
		}
		Expect(s.SubmitString("RIGHT")).To(Equal(game.StateWon))
	})

	It("loses after six misses and refuses a seventh guess", func() {
		for i := 0; i < game.MaxAttempts-1; i++ {
			Expect(s.SubmitString("FALSE")).To(Equal(game.StateInProgress))
		}
		Expect(s.SubmitString("FALSE")).To(Equal(game.StateLost))

		st, err := s.SubmitString("RIGHT")
		Expect(err).To(MatchError(game.ErrSessionFinished))
		Expect(st).To(Equal(game.StateLost))
		Expect(s.Attempts()).To(Equal(game.MaxAttempts))
	})

	It("stays frozen after a win", func() {
		_, _ = s.SubmitString("RIGHT")
		for i := 0; i < 3; i++ {
			_, err := s.SubmitString("FALSE")
			Expect(err).To(MatchError(game.ErrSessionFinished))
		}
		Expect(s.Attempts()).To(Equal(1))
		Expect(s.State()).To(Equal(game.StateWon))
	})

	It("ignores malformed guesses", func() {
		st, err := s.SubmitString("RIGHTS")
		Expect(err).To(MatchError(game.ErrInvalidLength))
		Expect(st).To(Equal(game.StateInProgress))
		Expect(s.Attempts()).To(Equal(0))
	})

	It("keeps the secret for the reveal", func() {
		Expect(s.Secret().String()).To(Equal("RIGHT"))
	})
})

var _ = Describe("State", func() {
	It("knows which states are terminal", func() {
		Expect(game.StateInProgress.Terminal()).To(BeFalse())
		Expect(game.StateWon.Terminal()).To(BeTrue())
		Expect(game.StateLost.Terminal()).To(BeTrue())
	})

	It("encodes as snake_case", func() {
		b, err := json.Marshal(map[string]game.State{"state": game.StateInProgress})
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(Equal(`{"state":"in_progress"}`))
	})
})
