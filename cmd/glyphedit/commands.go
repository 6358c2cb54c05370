package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"honnef.co/go/glyphedit"
	"honnef.co/go/glyphedit/geom"
	"honnef.co/go/glyphedit/glyph"
	"honnef.co/go/glyphedit/store"
)

var errQuit = errors.New("quit")

type command struct {
	usage string
	brief string
	run   func(c *cli, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"help":    {"help", "list commands", cmdHelp},
		"glyphs":  {"glyphs", "list the font's glyphs", cmdGlyphs},
		"masters": {"masters", "list the font's masters", cmdMasters},
		"axes":    {"axes", "list the font's axes", cmdAxes},
		"open":    {"open <glyph> [master]", "start an editing session", cmdOpen},
		"shapes":  {"shapes", "list the shapes of the edited layer", cmdShapes},
		"nodes":   {"nodes <shape>", "list the nodes of a path shape", cmdNodes},
		"enter":   {"enter <shape>", "descend into a component", cmdEnter},
		"exit":    {"exit", "ascend one nesting level", cmdExit},
		"path":    {"path", "show the navigation path and its token", cmdPath},
		"goto":    {"goto <token>", "jump to a navigation path token", cmdGoto},
		"hit":     {"hit <x> <y>", "hit-test a screen position", cmdHit},
		"click":   {"click <x> <y> [add]", "select what is under a screen position", cmdClick},
		"rect":    {"rect <x0> <y0> <x1> <y1>", "select nodes and anchors in a screen rectangle", cmdRect},
		"drag":    {"drag <dx> <dy>", "move the selection by a screen delta", cmdDrag},
		"type":    {"type <shape> <node> <o|c|cs|l|ls>", "retype a node", cmdType},
		"sel":     {"sel", "show the selection", cmdSel},
		"interp":  {"interp <tag=value>...", "show the glyph at an axis location", cmdInterp},
		"layer":   {"layer <master>", "switch to a master's layer, animated", cmdLayer},
		"state":   {"state", "show the session state", cmdState},
		"svg":     {"svg", "print the displayed outlines as SVG path data", cmdSVG},
		"zoom":    {"zoom <factor>", "set the viewport zoom", cmdZoom},
		"pan":     {"pan <x> <y>", "set the viewport pan", cmdPan},
		"save":    {"save <path>", "write the font to a file", cmdSave},
		"quit":    {"quit", "leave the shell", cmdQuit},
	}
}

func cmdHelp(c *cli, args []string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	data := [][]string{{"Command", "Description"}}
	for _, name := range names {
		data = append(data, []string{commands[name].usage, commands[name].brief})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil
}

func cmdQuit(c *cli, args []string) error {
	return errQuit
}

func cmdGlyphs(c *cli, args []string) error {
	names := c.store.GlyphNames()
	pterm.Printf("%d glyphs: %s\n", len(names), strings.Join(names, " "))
	return nil
}

func cmdMasters(c *cli, args []string) error {
	data := [][]string{{"ID", "Name", "Location"}}
	for _, m := range c.store.Masters() {
		data = append(data, []string{m.ID, m.Name, m.Location.String()})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil
}

func cmdAxes(c *cli, args []string) error {
	data := [][]string{{"Tag", "Name", "Min", "Default", "Max"}}
	for _, a := range c.store.Axes() {
		data = append(data, []string{
			a.Tag, a.Name,
			strconv.FormatFloat(a.Min, 'g', -1, 64),
			strconv.FormatFloat(a.Default, 'g', -1, 64),
			strconv.FormatFloat(a.Max, 'g', -1, 64),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil
}

func cmdOpen(c *cli, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: open <glyph> [master]")
	}
	masters := c.store.Masters()
	if len(masters) == 0 {
		return errors.New("font has no masters")
	}
	masterID := masters[0].ID
	if len(args) > 1 {
		masterID = args[1]
	}
	if err := c.ed.Open(args[0], masterID); err != nil {
		return err
	}
	layer, err := c.ed.EditLayer()
	if err != nil {
		return err
	}
	pterm.Printf("opened %s on %s: width %g, %d shape(s), %d anchor(s)\n",
		args[0], masterID, layer.Width, len(layer.Shapes), len(layer.Anchors))
	return nil
}

func cmdShapes(c *cli, args []string) error {
	layer, err := c.ed.EditLayer()
	if err != nil {
		return err
	}
	for i, sh := range layer.Shapes {
		switch sh.Kind {
		case glyph.PathKind:
			closed := "open"
			if sh.Path.Closed {
				closed = "closed"
			}
			pterm.Printf("%2d: path, %d node(s), %s\n", i, len(sh.Path.Nodes), closed)
		case glyph.ComponentKind:
			pterm.Printf("%2d: component -> %s at %s\n", i, sh.Component.Ref, formatAffine(sh.Component.Transform))
		}
	}
	for i, a := range layer.Anchors {
		pterm.Printf(" a%d: anchor %q at (%g, %g)\n", i, a.Name, a.X, a.Y)
	}
	return nil
}

func cmdNodes(c *cli, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: nodes <shape>")
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad shape index %q", args[0])
	}
	layer, err := c.ed.EditLayer()
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(layer.Shapes) {
		return fmt.Errorf("shape index %d out of range", idx)
	}
	sh := layer.Shapes[idx]
	if sh.Kind != glyph.PathKind {
		return fmt.Errorf("shape %d is a component, use 'enter %d'", idx, idx)
	}
	for j, n := range sh.Path.Nodes {
		pterm.Printf("%3d: %s\n", j, n)
	}
	return nil
}

func cmdEnter(c *cli, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: enter <shape>")
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad shape index %q", args[0])
	}
	return c.ed.EnterComponent(idx)
}

func cmdExit(c *cli, args []string) error {
	if !c.ed.ExitComponent() {
		pterm.Println("already at the root")
	}
	return nil
}

func cmdPath(c *cli, args []string) error {
	p := c.ed.Path()
	if p.Glyph == "" {
		return glyphedit.ErrNoSession
	}
	pterm.Printf("path:  %s\n", p)
	pterm.Printf("token: %s\n", p.Token())
	aff, err := c.ed.EditTransform()
	if err != nil {
		return err
	}
	pterm.Printf("to root: %s\n", formatAffine(aff))
	return nil
}

func cmdGoto(c *cli, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: goto <token>")
	}
	p, err := glyphedit.ParseToken(args[0])
	if err != nil {
		return err
	}
	return c.ed.NavigateTo(p)
}

func cmdHit(c *cli, args []string) error {
	pt, err := parsePoint(args)
	if err != nil {
		return err
	}
	if hit, ok := c.ed.Hover(pt); ok {
		pterm.Printf("hit: %s\n", hit)
	} else {
		pterm.Println("hit: nothing")
	}
	return nil
}

func cmdClick(c *cli, args []string) error {
	additive := len(args) == 3 && args[2] == "add"
	if additive {
		args = args[:2]
	}
	pt, err := parsePoint(args)
	if err != nil {
		return err
	}
	if hit, ok := c.ed.Click(pt, additive); ok {
		pterm.Printf("selected: %s\n", hit)
	} else {
		pterm.Println("selected: nothing")
	}
	return nil
}

func cmdRect(c *cli, args []string) error {
	if len(args) != 4 {
		return errors.New("usage: rect <x0> <y0> <x1> <y1>")
	}
	v := make([]float64, 4)
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("bad coordinate %q", a)
		}
		v[i] = f
	}
	return c.ed.SelectRect(geom.NewRect(v[0], v[1], v[2], v[3]))
}

func cmdDrag(c *cli, args []string) error {
	pt, err := parsePoint(args)
	if err != nil {
		return err
	}
	return c.ed.Drag(geom.Vec(pt.X, pt.Y))
}

func cmdType(c *cli, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: type <shape> <node> <o|c|cs|l|ls>")
	}
	shape, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad shape index %q", args[0])
	}
	node, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("bad node index %q", args[1])
	}
	t, err := glyph.ParseNodeType(args[2])
	if err != nil {
		return err
	}
	return c.ed.SetNodeType(glyphedit.NodeRef{Shape: shape, Node: node}, t)
}

func cmdSel(c *cli, args []string) error {
	sel := c.ed.Selection()
	pterm.Printf("selection: %s\n", sel)
	for _, ref := range sel.Nodes() {
		pterm.Printf("  node %d/%d\n", ref.Shape, ref.Node)
	}
	for _, i := range sel.Anchors() {
		pterm.Printf("  anchor %d\n", i)
	}
	for _, i := range sel.Components() {
		pterm.Printf("  component %d\n", i)
	}
	return nil
}

func cmdInterp(c *cli, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: interp <tag=value>...")
	}
	loc := make(glyph.Location, len(args))
	for _, a := range args {
		tag, value, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("bad axis value %q, want tag=value", a)
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("bad axis value %q", a)
		}
		loc[tag] = f
	}
	return c.ed.RequestInterpolation(loc)
}

func cmdLayer(c *cli, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: layer <master>")
	}
	return c.ed.AnimateToLayer(args[0])
}

func cmdState(c *cli, args []string) error {
	layer, err := c.ed.EditLayer()
	if err != nil {
		return err
	}
	pterm.Printf("state:  %s\n", c.ed.State())
	pterm.Printf("layer:  %s, width %g\n", layer.ID, layer.Width)
	if layer.Interpolated() {
		pterm.Printf("location: %s\n", layer.Location)
	}
	pterm.Printf("bounds: %v\n", layer.FlattenedBounds())
	return nil
}

func cmdSVG(c *cli, args []string) error {
	rs := c.ed.RenderState()
	if rs.Glyph == "" {
		return glyphedit.ErrNoSession
	}
	for _, p := range rs.Outlines {
		pterm.Println(p.SVG(geom.SVGOptions{}))
	}
	return nil
}

func cmdZoom(c *cli, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: zoom <factor>")
	}
	z, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("bad zoom %q", args[0])
	}
	c.ed.SetZoom(z)
	return nil
}

func cmdPan(c *cli, args []string) error {
	pt, err := parsePoint(args)
	if err != nil {
		return err
	}
	c.ed.SetPan(geom.Vec(pt.X, pt.Y))
	return nil
}

func cmdSave(c *cli, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: save <path>")
	}
	if err := store.SaveFont(args[0], c.font); err != nil {
		return err
	}
	pterm.Printf("wrote %s\n", args[0])
	return nil
}

func parsePoint(args []string) (geom.Point, error) {
	if len(args) != 2 {
		return geom.Point{}, errors.New("need an x and a y coordinate")
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("bad coordinate %q", args[0])
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("bad coordinate %q", args[1])
	}
	return geom.Pt(x, y), nil
}

// formatAffine renders pure translations compactly and everything else
// as the six coefficients.
func formatAffine(aff geom.Affine) string {
	co := aff.Coefficients()
	if co[0] == 1 && co[1] == 0 && co[2] == 0 && co[3] == 1 {
		return fmt.Sprintf("translate(%g, %g)", co[4], co[5])
	}
	return fmt.Sprintf("[%g %g %g %g %g %g]", co[0], co[1], co[2], co[3], co[4], co[5])
}
