// Package glyph defines the font object model the editor operates on:
// nodes, paths, components, layers, anchors, masters and the font that
// ties them together.
//
// All geometry is stored in design units with y growing upward. Layers
// own their shapes; components refer to other glyphs by name and carry
// an affine placement. A component may cache a resolved copy of the
// layer it refers to, so that consumers can flatten nested outlines
// without reaching back into the font.
package glyph
