package obs

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey string

const RunIDKey ctxKey = "run_id"

// NewLogger builds the diagnostics logger. Diagnostics never share a stream
// with the route output, so callers pass stderr (or a buffer in tests).
func NewLogger(level, format string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("new logger: parse level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
	case "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	default:
		return zerolog.Nop(), fmt.Errorf("new logger: unknown format %q", format)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// WithRun returns a context carrying the run id and a logger tagged with it.
func WithRun(ctx context.Context, logger zerolog.Logger, runID string) context.Context {
	ctx = context.WithValue(ctx, RunIDKey, runID)
	tagged := logger.With().Str(string(RunIDKey), runID).Logger()
	return tagged.WithContext(ctx)
}

func RunID(ctx context.Context) string {
	id, _ := ctx.Value(RunIDKey).(string)
	return id
}
