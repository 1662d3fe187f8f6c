package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lotplan/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Published 42 spots (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks reports layout edits and publication writes to the logger.
// Commits go to debug level and rejections to warn.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnCommit(op string, spotID int) {
	h.logger.Debug("layout edit applied", "op", op, "spot", spotID)
}

func (h *logHooks) OnReject(op string, spotID int, code string) {
	h.logger.Warn("layout edit rejected", "op", op, "spot", spotID, "code", code)
}

func (h *logHooks) OnSave(_ context.Context, backend string, spots int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("publication write failed", "backend", backend, "err", err)
		return
	}
	h.logger.Debug("publication written", "backend", backend, "spots", spots, "elapsed", d.Round(time.Millisecond))
}

var (
	_ observability.LayoutHooks = (*logHooks)(nil)
	_ observability.StoreHooks  = (*logHooks)(nil)
)
