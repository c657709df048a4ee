package metrics

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
)

func TestMetrics(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Metrics Suite")
}

var _ = Describe("RecordGuess", func() {
	It("counts marks and finished sessions", func() {
		exactBefore := testutil.ToFloat64(marksTotal.WithLabelValues("exact"))
		wonBefore := testutil.ToFloat64(sessionsFinished.WithLabelValues(ModeNormal, "won"))

		g := game.Score(game.MustParseWord("CRANE"), game.MustParseWord("CRANE"))
		RecordGuess(ModeNormal, g, game.StateWon, 3)

		Expect(testutil.ToFloat64(marksTotal.WithLabelValues("exact")) - exactBefore).To(Equal(5.0))
		Expect(testutil.ToFloat64(sessionsFinished.WithLabelValues(ModeNormal, "won")) - wonBefore).To(Equal(1.0))
	})

	It("leaves finished counters alone mid-game", func() {
		before := testutil.ToFloat64(sessionsFinished.WithLabelValues(ModeDaily, "in_progress"))
		g := game.Score(game.MustParseWord("CRANE"), game.MustParseWord("SLATE"))
		RecordGuess(ModeDaily, g, game.StateInProgress, 1)
		Expect(testutil.ToFloat64(sessionsFinished.WithLabelValues(ModeDaily, "in_progress"))).To(Equal(before))
		Expect(testutil.ToFloat64(guessesTotal.WithLabelValues(ModeDaily, "in_progress"))).To(BeNumerically(">=", 1))
	})
})

var _ = Describe("gauges", func() {
	It("tracks active sessions", func() {
		SetActive(7)
		Expect(testutil.ToFloat64(sessionsActive)).To(Equal(7.0))
	})

	It("accumulates pruned sessions", func() {
		before := testutil.ToFloat64(sessionsPruned)
		RecordPruned(3)
		Expect(testutil.ToFloat64(sessionsPruned) - before).To(Equal(3.0))
	})
})
