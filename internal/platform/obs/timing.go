package obs

import (
	"context"
	"pickup-delivery-planner/internal/metrics"
	"time"

	"github.com/rs/zerolog"
)

// Time logs how long an operation took, with the run id carried by ctx.
// Usage: defer obs.Time(ctx, "phase")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)
		metrics.PhaseDuration.WithLabelValues(name).Observe(dur.Seconds())

		logger := zerolog.Ctx(ctx)
		if errp != nil && *errp != nil {
			logger.Error().Err(*errp).Str("op", name).Int64("dur_ms", dur.Milliseconds()).Msg("op failed")
			return
		}
		logger.Info().Str("op", name).Int64("dur_ms", dur.Milliseconds()).Msg("op done")
	}
}
