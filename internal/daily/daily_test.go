package daily_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/robalobadob/wordle/apps/go-engine/assets"
	"github.com/robalobadob/wordle/apps/go-engine/internal/daily"
	"github.com/robalobadob/wordle/apps/go-engine/internal/db"
	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
)

func TestDaily(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Daily Suite")
}

func newTestDB() *sql.DB {
	conn, err := db.Open(filepath.Join(GinkgoT().TempDir(), "daily-test.db"))
	Expect(err).ToNot(HaveOccurred())
	DeferCleanup(conn.Close)
	Expect(db.Migrate(conn, assets.Migrations())).To(Succeed())
	return conn
}

var _ = Describe("word selection", func() {
	day := time.Date(2026, 10, 17, 23, 30, 0, 0, time.FixedZone("X", -3*3600))

	It("keys dates in UTC", func() {
		Expect(daily.DateKey(day)).To(Equal("2026-10-18"))
	})

	It("is deterministic per date and salt", func() {
		a := daily.WordIndex(day, "salt", 400)
		Expect(daily.WordIndex(day, "salt", 400)).To(Equal(a))
		Expect(a).To(BeNumerically(">=", 0))
		Expect(a).To(BeNumerically("<", 400))
	})

	It("spreads across days", func() {
		seen := map[int]bool{}
		for d := 0; d < 30; d++ {
			seen[daily.WordIndex(day.AddDate(0, 0, d), "salt", 400)] = true
		}
		Expect(len(seen)).To(BeNumerically(">", 20))
	})

	It("handles an empty list", func() {
		Expect(daily.WordIndex(day, "salt", 0)).To(Equal(0))
	})
})

var _ = Describe("Play", func() {
	start := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)

	It("reports a result once won", func() {
		p := daily.NewPlay("u1", "2026-10-17", 3, game.MustParseWord("CRANE"), start)
		_, _ = p.Session.SubmitString("SLATE")
		_, ok := p.Result(start.Add(time.Minute))
		Expect(ok).To(BeFalse())

		_, _ = p.Session.SubmitString("CRANE")
		r, ok := p.Result(start.Add(90 * time.Second))
		Expect(ok).To(BeTrue())
		Expect(r).To(Equal(daily.Result{
			UserID: "u1", Date: "2026-10-17", WordIndex: 3,
			Outcome: game.StateWon, Guesses: 2, ElapsedMs: 90000,
		}))
	})

	It("reports a result once lost", func() {
		p := daily.NewPlay("u1", "2026-10-17", 3, game.MustParseWord("CRANE"), start)
		for i := 0; i < game.MaxAttempts; i++ {
			_, _ = p.Session.SubmitString("ZZZZZ")
		}
		r, ok := p.Result(start.Add(time.Minute))
		Expect(ok).To(BeTrue())
		Expect(r.Outcome).To(Equal(game.StateLost))
		Expect(r.Guesses).To(Equal(game.MaxAttempts))
	})
})

var _ = Describe("Store", func() {
	var (
		st  *daily.Store
		ctx context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		st = daily.NewStore(newTestDB())
	})

	insert := func(r daily.Result) bool {
		inserted, err := st.InsertResult(ctx, r)
		Expect(err).ToNot(HaveOccurred())
		return inserted
	}

	It("records one result per user and day", func() {
		_, played, err := st.Played(ctx, "u1", "2026-10-17")
		Expect(err).ToNot(HaveOccurred())
		Expect(played).To(BeFalse())

		Expect(insert(daily.Result{UserID: "u1", Date: "2026-10-17", Outcome: game.StateWon, Guesses: 3, ElapsedMs: 5000})).To(BeTrue())
		Expect(insert(daily.Result{UserID: "u1", Date: "2026-10-17", Outcome: game.StateWon, Guesses: 1, ElapsedMs: 10})).To(BeFalse())

		outcome, played, err := st.Played(ctx, "u1", "2026-10-17")
		Expect(err).ToNot(HaveOccurred())
		Expect(played).To(BeTrue())
		Expect(outcome).To(Equal(game.StateWon))

		rows, err := st.Leaderboard(ctx, "2026-10-17", 0)
		Expect(err).ToNot(HaveOccurred())
		Expect(rows).To(Equal([]daily.LBRow{{UserID: "u1", Guesses: 3, ElapsedMs: 5000}}))
	})

	It("remembers losses without ranking them", func() {
		Expect(insert(daily.Result{UserID: "u2", Date: "d", Outcome: game.StateLost, Guesses: 6, ElapsedMs: 100})).To(BeTrue())

		outcome, played, err := st.Played(ctx, "u2", "d")
		Expect(err).ToNot(HaveOccurred())
		Expect(played).To(BeTrue())
		Expect(outcome).To(Equal(game.StateLost))

		Expect(insert(daily.Result{UserID: "u2", Date: "d", Outcome: game.StateWon, Guesses: 1, ElapsedMs: 1})).To(BeFalse())
		rows, err := st.Leaderboard(ctx, "d", 0)
		Expect(err).ToNot(HaveOccurred())
		Expect(rows).To(BeEmpty())
	})

	It("moves guest results to an account", func() {
		Expect(insert(daily.Result{UserID: "guest", Date: "d1", Outcome: game.StateLost, Guesses: 6})).To(BeTrue())
		Expect(insert(daily.Result{UserID: "guest", Date: "d2", Outcome: game.StateWon, Guesses: 2})).To(BeTrue())
		Expect(insert(daily.Result{UserID: "acct", Date: "d2", Outcome: game.StateWon, Guesses: 4})).To(BeTrue())

		Expect(st.Reassign(ctx, "guest", "acct")).To(Succeed())

		outcome, played, err := st.Played(ctx, "acct", "d1")
		Expect(err).ToNot(HaveOccurred())
		Expect(played).To(BeTrue())
		Expect(outcome).To(Equal(game.StateLost))

		rows, err := st.Leaderboard(ctx, "d2", 0)
		Expect(err).ToNot(HaveOccurred())
		Expect(rows).To(ConsistOf(
			daily.LBRow{UserID: "acct", Guesses: 4},
			daily.LBRow{UserID: "guest", Guesses: 2},
		))
	})

	It("ranks by time, then guesses", func() {
		for _, r := range []daily.Result{
			{UserID: "slow", Date: "d", Outcome: game.StateWon, Guesses: 2, ElapsedMs: 9000},
			{UserID: "fast", Date: "d", Outcome: game.StateWon, Guesses: 5, ElapsedMs: 1000},
			{UserID: "tied", Date: "d", Outcome: game.StateWon, Guesses: 4, ElapsedMs: 1000},
			{UserID: "other-day", Date: "e", Outcome: game.StateWon, Guesses: 1, ElapsedMs: 1},
		} {
			Expect(insert(r)).To(BeTrue())
		}

		rows, err := st.Leaderboard(ctx, "d", 2)
		Expect(err).ToNot(HaveOccurred())
		Expect(rows).To(HaveLen(2))
		Expect(rows[0].UserID).To(Equal("tied"))
		Expect(rows[1].UserID).To(Equal("fast"))
	})
})
