package glyphedit

import (
	"errors"
	"fmt"
)

// Sentinel errors for the editor core.
var (
	// ErrNoSession is returned by operations that need an open glyph.
	ErrNoSession = errors.New("glyphedit: no glyph open")

	// ErrNotEditable is returned when a mutation targets interpolated
	// geometry. Interpolated layers are render material; edits apply
	// to master layers only.
	ErrNotEditable = errors.New("glyphedit: interpolated layer is not editable")

	// ErrShapeRange marks a navigation step whose shape index no
	// longer exists in the layer.
	ErrShapeRange = errors.New("glyphedit: shape index out of range")

	// ErrNotComponent marks a navigation step that lands on a path
	// instead of a component.
	ErrNotComponent = errors.New("glyphedit: shape is not a component")

	// ErrNoResolvedLayer marks a component without a resolved layer to
	// descend into.
	ErrNoResolvedLayer = errors.New("glyphedit: component has no resolved layer")
)

// NavError reports a navigation path that no longer matches the layer
// tree it is resolved against.
type NavError struct {
	Path string // breadcrumb of the failing path
	Step int    // index of the step that failed, -1 for the root
	Err  error
}

func (e *NavError) Error() string {
	if e.Step < 0 {
		return fmt.Sprintf("glyphedit: resolving %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("glyphedit: resolving %s: step %d: %v", e.Path, e.Step, e.Err)
}

func (e *NavError) Unwrap() error { return e.Err }
