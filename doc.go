// Package glyphedit implements the outline editing core of a glyph
// design tool: navigating into nested component references, selecting
// and dragging control points at any nesting depth, and showing the
// glyph at arbitrary positions in a variable font's design space.
//
// # Sessions and the navigation path
//
// An [Editor] edits one glyph layer at a time. [Editor.Open] fetches a
// master's layer from the [Store] and makes it the session's root
// layer. The root is the only live geometry: when the user descends
// into a component with [Editor.EnterComponent], the editor does not
// copy or swap any layer data, it only extends the [NavPath]. Every
// nesting level is resolved on demand from the root through the path,
// so there is never a second, divergent copy of the same outline.
//
// A [NavPath] is serializable ([NavPath.Token], [ParseToken]) and
// addresses a nesting position using only the glyph name, layer ID,
// and component indices. Breadcrumb displays and undo logs can hold
// tokens without holding geometry.
//
// # Coordinate spaces
//
// Glyph geometry lives in y-up design units. Each component carries an
// affine transform placing its referenced glyph in the parent's frame;
// [NavPath.Accumulate] composes the transforms along the path, and
// [Viewport] maps glyph space to y-down screen pixels. Pointer input
// travels the inverse direction: screen position through the inverted
// viewport and component transforms into the edited layer's local
// frame. A near-singular transform (determinant magnitude at most
// [geom.DegenerateDet]) makes the affected operation a logged no-op
// rather than an error.
//
// # Hit-testing and mutation
//
// [HitTest] picks the topmost item under the cursor: component origin
// markers first, then component bodies by a single nonzero-winding
// containment test over their flattened outlines, then anchors, then
// nodes. Pick radii are given in screen pixels and divided by the view
// scale, so targets keep their clickable size at any zoom.
//
// [ApplyDelta] moves the current [Selection]. On-curve nodes carry
// their attached off-curve handles, and dragging a lone handle next to
// a smooth on-curve node mirrors the opposite handle through it,
// keeping the pair collinear at equal distance. Edits persist to the
// [Store] fire-and-forget; a failed save is logged and the in-memory
// state stands.
//
// # Interpolation and animation
//
// [Editor.RequestInterpolation] shows the glyph at an arbitrary axis
// location via the [Interpolator], unless the location lands exactly
// on a master, in which case the master's real geometry is installed.
// [Editor.AnimateToLayer] switches masters with a cubic ease-out
// transition, interpolating an in-between frame on every tick.
// Interpolated geometry is display-only; drags are refused until exact
// geometry is installed again.
//
// Every request captures a monotonically increasing token, and a
// result is applied only if its token is still the latest. Stale
// results are dropped silently, so out-of-order completions can never
// roll the display back to an older request.
//
// # Concurrency model
//
// The editor is single-threaded and cooperative. Interpolation results
// and animation steps arrive as callbacks on the host's [Scheduler],
// on the same goroutine as every other editor call; there are no locks
// and no preemption. Without a scheduler, posted work runs inline and
// animations snap to their target.
package glyphedit
