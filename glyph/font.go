package glyph

// Glyph is a named drawing with one layer per master.
type Glyph struct {
	Name   string   `json:"name"`
	Layers []*Layer `json:"layers"`
}

// Layer returns the glyph's layer with the given ID, or nil.
func (g *Glyph) Layer(id string) *Layer {
	if g == nil {
		return nil
	}
	for _, l := range g.Layers {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// Font is the source of truth the editor works against: the axes,
// masters and glyphs of a variable design.
type Font struct {
	Name       string    `json:"name,omitempty"`
	UnitsPerEm int       `json:"upm,omitempty"`
	Axes       []Axis    `json:"axes,omitempty"`
	Masters    []*Master `json:"masters"`
	Glyphs     []*Glyph  `json:"glyphs"`
}

// Glyph returns the named glyph, or nil.
func (f *Font) Glyph(name string) *Glyph {
	for _, g := range f.Glyphs {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// Master returns the master with the given ID, or nil.
func (f *Font) Master(id string) *Master {
	for _, m := range f.Masters {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// MasterAt returns the master whose location exactly equals loc, or
// nil. Equality is exact; nearby locations do not match.
func (f *Font) MasterAt(loc Location) *Master {
	for _, m := range f.Masters {
		if m.Location.Equal(loc) {
			return m
		}
	}
	return nil
}

// Axis returns the axis with the given tag, or nil.
func (f *Font) Axis(tag string) *Axis {
	for i := range f.Axes {
		if f.Axes[i].Tag == tag {
			return &f.Axes[i]
		}
	}
	return nil
}

// Layer returns the named glyph's layer for the given master ID, or
// nil if either is missing.
func (f *Font) Layer(glyphName, masterID string) *Layer {
	return f.Glyph(glyphName).Layer(masterID)
}
