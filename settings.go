package glyphedit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds the user-tunable editor preferences, loaded from a
// TOML file. Zero values mean "use the default".
type Settings struct {
	HitRadius    float64 `toml:"hit_radius"`
	OriginRadius float64 `toml:"origin_radius"`
	StrokeRadius float64 `toml:"stroke_radius"`
	AnimationMS  int     `toml:"animation_ms"`
	AutoPan      *bool   `toml:"auto_pan"`
}

// DefaultSettings returns the built-in preferences.
func DefaultSettings() Settings {
	on := true
	return Settings{
		HitRadius:    DefaultHitRadius,
		OriginRadius: DefaultOriginRadius,
		StrokeRadius: DefaultStrokeRadius,
		AnimationMS:  int(DefaultAnimationDuration / time.Millisecond),
		AutoPan:      &on,
	}
}

// LoadSettings reads a TOML settings file and overlays it on the
// defaults. A missing file is not an error and yields the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, err
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("glyphedit: parsing %s: %w", path, err)
	}
	return s, nil
}

// Options converts the settings into editor options, skipping zero
// values so they fall through to the defaults.
func (s Settings) Options() []Option {
	var opts []Option
	if s.HitRadius > 0 {
		opts = append(opts, WithHitRadius(s.HitRadius))
	}
	if s.OriginRadius > 0 {
		opts = append(opts, WithOriginRadius(s.OriginRadius))
	}
	if s.StrokeRadius > 0 {
		opts = append(opts, WithStrokeRadius(s.StrokeRadius))
	}
	if s.AnimationMS > 0 {
		opts = append(opts, WithAnimationDuration(time.Duration(s.AnimationMS)*time.Millisecond))
	}
	if s.AutoPan != nil {
		opts = append(opts, WithAutoPan(*s.AutoPan))
	}
	return opts
}
