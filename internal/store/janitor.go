package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-engine/internal/metrics"
)

// StartJanitor prunes sessions idle for longer than ttl on a 5-field cron schedule
// (e.g. "*/5 * * * *"). An empty schedule disables it and returns a nil stop func.
func StartJanitor(st Store, schedule string, ttl time.Duration) (stop func(), err error) {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		log.Info().Msg("session janitor disabled")
		return nil, nil
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("janitor: ttl must be positive, got %s", ttl)
	}

	c := cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)))
	if _, err := c.AddFunc(schedule, func() { Sweep(st, ttl) }); err != nil {
		return nil, fmt.Errorf("janitor: schedule %q: %w", schedule, err)
	}
	c.Start()
	log.Info().Str("schedule", schedule).Dur("ttl", ttl).Msg("session janitor started")

	return func() { <-c.Stop().Done() }, nil
}

// Sweep runs one prune pass and publishes the result.
func Sweep(st Store, ttl time.Duration) int {
	n := st.Prune(context.Background(), ttl)
	metrics.RecordPruned(n)
	metrics.SetActive(st.Len())
	if n > 0 {
		log.Debug().Int("pruned", n).Int("remaining", st.Len()).Msg("idle sessions pruned")
	}
	return n
}
