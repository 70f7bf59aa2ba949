// Package cli implements the combview command-line interface.
//
// This package provides commands for rendering frame layouts to raster
// images, converting physical coordinates into image pixels, inspecting
// layout sections, managing stored layouts and the render cache, and
// serving the HTTP API. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Draw a layout to PNG, BMP, or TIFF
//   - convert: Map a physical point onto a rendered image
//   - specs: Print accelerometer, actuator, or LED sections as JSON
//   - layouts: List, show, and import layouts
//   - serve: Run the HTTP API
//   - cache: Manage the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports pipeline and cache events. Loggers are passed through
// context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
// The returned progress should call done when the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Rendered frame_layout (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
// This ensures commands always have a valid logger even if context setup fails.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports pipeline and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnLoadStart(ctx context.Context, name string) {
	h.logger.Debug("loading layout", "layout", name)
}

func (h *logHooks) OnLoadComplete(ctx context.Context, name string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "layout", name, "duration", d, "err", err)
		return
	}
	h.logger.Debug("load complete", "layout", name, "duration", d)
}

func (h *logHooks) OnRenderStart(ctx context.Context, name, format string) {
	h.logger.Debug("rendering", "layout", name, "format", format)
}

func (h *logHooks) OnRenderComplete(ctx context.Context, name, format string, clipped int, d time.Duration, err error) {
	h.logger.Debug("render complete", "layout", name, "format", format, "clipped", clipped, "duration", d, "err", err)
}

func (h *logHooks) OnCacheHit(ctx context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h *logHooks) OnCacheMiss(ctx context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h *logHooks) OnCacheSet(ctx context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}
