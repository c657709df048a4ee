// Package metrics holds the Prometheus collectors for the game service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
)

var (
	// Session metrics
	sessionsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_sessions_started_total",
			Help: "Total number of sessions started",
		},
		[]string{"mode"},
	)

	sessionsFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_sessions_finished_total",
			Help: "Total number of sessions that reached a terminal state",
		},
		[]string{"mode", "result"},
	)

	sessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wordle_sessions_active",
			Help: "Sessions currently held in memory",
		},
	)

	sessionsPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wordle_sessions_pruned_total",
			Help: "Idle sessions dropped by the janitor",
		},
	)

	// Guess metrics
	guessesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_guesses_total",
			Help: "Accepted guesses by resulting session state",
		},
		[]string{"mode", "state"},
	)

	marksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_marks_total",
			Help: "Letter classifications handed out",
		},
		[]string{"mark"},
	)

	attemptsToWin = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wordle_attempts_to_win",
			Help:    "Number of guesses taken by winning sessions",
			Buckets: []float64{1, 2, 3, 4, 5, 6},
		},
	)

	// Error metrics
	rejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_guesses_rejected_total",
			Help: "Guesses rejected before scoring, by reason",
		},
		[]string{"reason"},
	)
)

// Game modes used as label values.
const (
	ModeNormal = "normal"
	ModeDaily  = "daily"
)

// RecordStart counts a new session.
func RecordStart(mode string) {
	sessionsStarted.WithLabelValues(mode).Inc()
}

// RecordGuess counts an accepted guess and, if it ended the session, the outcome.
func RecordGuess(mode string, g game.Guess, st game.State, attempts int) {
	guessesTotal.WithLabelValues(mode, st.String()).Inc()
	for _, m := range g.Marks() {
		marksTotal.WithLabelValues(m.String()).Inc()
	}
	if st.Terminal() {
		sessionsFinished.WithLabelValues(mode, st.String()).Inc()
	}
	if st == game.StateWon {
		attemptsToWin.Observe(float64(attempts))
	}
}

// RecordRejected counts a guess refused with reason.
func RecordRejected(reason string) {
	rejectedTotal.WithLabelValues(reason).Inc()
}

// SetActive reports the number of sessions in memory.
func SetActive(n int) {
	sessionsActive.Set(float64(n))
}

// RecordPruned counts sessions dropped for idleness.
func RecordPruned(n int) {
	sessionsPruned.Add(float64(n))
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
