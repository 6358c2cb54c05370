package glyphedit

import (
	"log/slog"
	"time"
)

// Default pick radii and animation timing. Radii are screen pixels;
// hit-testing divides them by the zoom so targets keep their clickable
// size at any magnification.
const (
	DefaultHitRadius         = 6.0
	DefaultOriginRadius      = 9.0
	DefaultStrokeRadius      = 4.0
	DefaultAnimationDuration = 150 * time.Millisecond
)

// Option configures an Editor during creation.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	interp       Interpolator
	renderer     Renderer
	scheduler    Scheduler
	clock        func() time.Time
	hitRadius    float64
	originRadius float64
	strokeRadius float64
	animDuration time.Duration
	autoPan      bool
}

func defaultOptions() options {
	return options{
		logger:       newNopLogger(),
		clock:        time.Now,
		hitRadius:    DefaultHitRadius,
		originRadius: DefaultOriginRadius,
		strokeRadius: DefaultStrokeRadius,
		animDuration: DefaultAnimationDuration,
		autoPan:      true,
	}
}

// WithLogger routes the editor's diagnostics to l. By default the
// editor is silent.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithInterpolator provides the service that computes in-between
// layers. Without one, requests for non-master locations fail and are
// logged; exact master locations still work.
func WithInterpolator(i Interpolator) Option {
	return func(o *options) { o.interp = i }
}

// WithRenderer provides the surface to notify when the visible state
// changes.
func WithRenderer(r Renderer) Option {
	return func(o *options) { o.renderer = r }
}

// WithScheduler provides the host's frame loop. Without one, posted
// work runs inline and animations snap to their target.
func WithScheduler(s Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// WithClock substitutes the time source used for animation progress.
// Tests use this to step animations deterministically.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithHitRadius sets the node and anchor pick radius in screen pixels.
func WithHitRadius(r float64) Option {
	return func(o *options) { o.hitRadius = r }
}

// WithOriginRadius sets the component origin marker pick radius in
// screen pixels.
func WithOriginRadius(r float64) Option {
	return func(o *options) { o.originRadius = r }
}

// WithStrokeRadius sets the pick distance for open-path outlines in
// screen pixels.
func WithStrokeRadius(r float64) Option {
	return func(o *options) { o.strokeRadius = r }
}

// WithAnimationDuration sets how long a layer-switch animation runs.
func WithAnimationDuration(d time.Duration) Option {
	return func(o *options) { o.animDuration = d }
}

// WithAutoPan controls whether the viewport re-anchors the outline's
// center on screen when a layer switch changes the geometry. On by
// default.
func WithAutoPan(enabled bool) Option {
	return func(o *options) { o.autoPan = enabled }
}

// WithSettings applies a loaded settings file. Explicit options given
// after it override individual values.
func WithSettings(s Settings) Option {
	return func(o *options) {
		for _, opt := range s.Options() {
			opt(o)
		}
	}
}
