package glyph

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Location maps axis tags to design-space coordinates.
type Location map[string]float64

// Clone returns a copy of the location. A nil location stays nil.
func (loc Location) Clone() Location {
	if loc == nil {
		return nil
	}
	return maps.Clone(loc)
}

// Equal reports whether both locations name the same axes with exactly
// equal coordinates.
func (loc Location) Equal(o Location) bool {
	if len(loc) != len(o) {
		return false
	}
	for tag, v := range loc {
		ov, ok := o[tag]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Lerp linearly interpolates between two locations. Axes named by only
// one side are treated as zero on the other.
func (loc Location) Lerp(o Location, t float64) Location {
	out := make(Location, max(len(loc), len(o)))
	for tag, v := range loc {
		out[tag] = v + (o[tag]-v)*t
	}
	for tag, v := range o {
		if _, ok := loc[tag]; !ok {
			out[tag] = v * t
		}
	}
	return out
}

// String renders the location as space-separated tag=value pairs in
// tag order, e.g. "wdth=100 wght=700".
func (loc Location) String() string {
	tags := slices.Sorted(maps.Keys(loc))
	var sb strings.Builder
	for i, tag := range tags {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%g", tag, loc[tag])
	}
	return sb.String()
}

// Axis describes one axis of variation.
type Axis struct {
	Tag     string  `json:"tag"`
	Name    string  `json:"name,omitempty"`
	Min     float64 `json:"min"`
	Default float64 `json:"default"`
	Max     float64 `json:"max"`
}

// Master is one source location in the designspace. Each glyph draws
// it as the layer sharing the master's ID.
type Master struct {
	ID       string   `json:"id"`
	Name     string   `json:"name,omitempty"`
	Location Location `json:"location"`
}
