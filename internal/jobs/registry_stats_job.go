// Package jobs holds the scheduled background tasks of the shipping core.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/cargoline/shipping-core/internal/api/metrics"
	"github.com/cargoline/shipping-core/internal/core/ports"
)

// DefaultStatsSchedule refreshes the registry gauges every thirty seconds.
const DefaultStatsSchedule = "@every 30s"

// RegistryStatsJob periodically counts the active and history views and
// exports them as gauges.
type RegistryStatsJob struct {
	registry ports.RegistryService
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   zerolog.Logger
}

func NewRegistryStatsJob(registry ports.RegistryService, schedule string, logger zerolog.Logger) *RegistryStatsJob {
	if schedule == "" {
		schedule = DefaultStatsSchedule
	}
	return &RegistryStatsJob{
		registry: registry,
		schedule: schedule,
		timeout:  10 * time.Second,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With().Str("component", "registry_stats_job").Logger(),
	}
}

// Start registers the job and starts the scheduler. It refreshes once
// immediately so the gauges are populated before the first tick.
func (j *RegistryStatsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return fmt.Errorf("schedule registry stats %q: %w", j.schedule, err)
	}
	j.run()
	j.cron.Start()
	j.logger.Info().Str("schedule", j.schedule).Msg("registry stats job started")
	return nil
}

// Stop halts the scheduler and waits for a running refresh to finish.
func (j *RegistryStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info().Msg("registry stats job stopped")
}

func (j *RegistryStatsJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if _, err := j.Refresh(ctx); err != nil {
		j.logger.Error().Err(err).Msg("registry stats refresh failed")
	}
}

// Refresh counts both views once and updates the gauges.
func (j *RegistryStatsJob) Refresh(ctx context.Context) (map[ports.View]int, error) {
	counts := make(map[ports.View]int, 2)
	for _, view := range []ports.View{ports.ViewActive, ports.ViewHistory} {
		items, err := j.registry.List(ctx, view)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", view, err)
		}
		counts[view] = len(items)
		metrics.ShipmentsInView.WithLabelValues(string(view)).Set(float64(len(items)))
	}
	return counts, nil
}
