package glyph

import (
	"encoding/json"
	"fmt"

	"honnef.co/go/glyphedit/geom"
)

// NodeType classifies a node on a path.
//
// On-curve nodes are either corners or smooth points. A smooth point
// keeps its two neighboring off-curve handles collinear with itself, so
// the curve passes through it without a kink. Line nodes are on-curve
// points reached by a straight segment; a smooth line node constrains
// the following handle to the direction of the incoming line.
type NodeType int

const (
	// OffCurve is a Bézier control handle.
	OffCurve NodeType = iota + 1
	// Curve is an on-curve corner point reached by a curve.
	Curve
	// CurveSmooth is an on-curve point whose flanking handles stay
	// collinear through it.
	CurveSmooth
	// Line is an on-curve corner point reached by a straight segment.
	Line
	// LineSmooth is an on-curve point reached by a straight segment
	// whose outgoing handle continues the line's direction.
	LineSmooth
)

// OnCurve reports whether the node lies on the outline.
func (t NodeType) OnCurve() bool { return t != OffCurve }

// Smooth reports whether the node constrains its neighboring handles
// to be collinear.
func (t NodeType) Smooth() bool { return t == CurveSmooth || t == LineSmooth }

func (t NodeType) String() string {
	switch t {
	case OffCurve:
		return "o"
	case Curve:
		return "c"
	case CurveSmooth:
		return "cs"
	case Line:
		return "l"
	case LineSmooth:
		return "ls"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// ParseNodeType parses the short node type names used by [NodeType.String].
func ParseNodeType(s string) (NodeType, error) {
	switch s {
	case "o":
		return OffCurve, nil
	case "c":
		return Curve, nil
	case "cs":
		return CurveSmooth, nil
	case "l":
		return Line, nil
	case "ls":
		return LineSmooth, nil
	default:
		return 0, fmt.Errorf("glyph: unknown node type %q", s)
	}
}

// Node is a single point on a path, either on-curve or an off-curve
// control handle.
type Node struct {
	X    float64
	Y    float64
	Type NodeType
}

// Pos returns the node's position.
func (n Node) Pos() geom.Point { return geom.Pt(n.X, n.Y) }

// WithPos returns a copy of the node moved to p.
func (n Node) WithPos(p geom.Point) Node {
	n.X = p.X
	n.Y = p.Y
	return n
}

// Translate returns a copy of the node moved by v.
func (n Node) Translate(v geom.Vec2) Node {
	n.X += v.X
	n.Y += v.Y
	return n
}

// Transform returns a copy of the node with aff applied to its
// position. The node type is unchanged.
func (n Node) Transform(aff geom.Affine) Node {
	return n.WithPos(aff.Transform(n.Pos()))
}

func (n Node) String() string {
	return fmt.Sprintf("[%g, %g, %s]", n.X, n.Y, n.Type)
}

// MarshalJSON encodes the node as a [x, y, "type"] triple.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{n.X, n.Y, n.Type.String()})
}

// UnmarshalJSON decodes a [x, y, "type"] triple.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw [3]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("glyph: node must be a [x, y, type] triple: %w", err)
	}
	if err := json.Unmarshal(raw[0], &n.X); err != nil {
		return fmt.Errorf("glyph: node x: %w", err)
	}
	if err := json.Unmarshal(raw[1], &n.Y); err != nil {
		return fmt.Errorf("glyph: node y: %w", err)
	}
	var s string
	if err := json.Unmarshal(raw[2], &s); err != nil {
		return fmt.Errorf("glyph: node type: %w", err)
	}
	t, err := ParseNodeType(s)
	if err != nil {
		return err
	}
	n.Type = t
	return nil
}
