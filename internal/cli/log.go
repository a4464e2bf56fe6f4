package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/piwi3910/doorcut/internal/model"
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

// runLog reports one generate run: a debug line per door, a warning per
// face that could not be drawn, and a closing tally with the elapsed time.
type runLog struct {
	logger  *log.Logger
	start   time.Time
	doors   int
	skipped int
	files   []string
}

func newRunLog(l *log.Logger) *runLog {
	return &runLog{logger: l, start: time.Now()}
}

// door records the files written for result. Faces the door does not have
// are logged at debug level, faces that failed as warnings.
func (r *runLog) door(result model.DoorResult, dir string, files []string) {
	for _, sk := range result.Skipped {
		if sk.NotApplicable() {
			r.logger.Debug("Face not applicable", "mark", result.Mark, "face", sk.Face)
			continue
		}
		r.skipped++
		r.logger.Warn("Face skipped", "mark", result.Mark, "face", sk.Face, "reason", sk.Reason)
	}
	r.doors++
	r.files = append(r.files, files...)
	r.logger.Debug("Door written", "mark", result.Mark, "faces", len(files), "dir", dir)
}

// report records an extra artefact such as the PDF cut list.
func (r *runLog) report(path string) {
	r.files = append(r.files, path)
	r.logger.Debug("Report written", "path", path)
}

// finish logs e.g. "Generate finished doors=2 files=6 skipped=0 elapsed=31ms".
func (r *runLog) finish() {
	r.logger.Info("Generate finished",
		"doors", r.doors,
		"files", len(r.files),
		"skipped", r.skipped,
		"elapsed", time.Since(r.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
