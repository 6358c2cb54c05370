// Command glyphedit is an interactive shell around the glyph editing
// core. It loads a font, opens editing sessions on its glyphs and
// exposes the navigation, hit-testing, mutation and interpolation
// operations as commands, printing the state a GUI would draw.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"honnef.co/go/glyphedit"
	"honnef.co/go/glyphedit/glyph"
	"honnef.co/go/glyphedit/interp"
	"honnef.co/go/glyphedit/store"
)

func main() {
	fontPath := flag.String("font", "", "font file to edit (JSON); empty loads a built-in demo font")
	settingsPath := flag.String("settings", "", "TOML settings file")
	verbose := flag.Bool("v", false, "log debug output")
	flag.Parse()

	initDisplay()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var (
		font *glyph.Font
		err  error
	)
	if *fontPath == "" {
		font = demoFont()
		pterm.Info.Println("No font given, using the built-in demo font")
	} else {
		font, err = store.LoadFont(*fontPath)
		if err != nil {
			fatalf("cannot load font: %v", err)
		}
		pterm.Info.Printf("Loaded %s (%d glyphs, %d masters)\n", *fontPath, len(font.Glyphs), len(font.Masters))
	}

	settings := glyphedit.DefaultSettings()
	if *settingsPath != "" {
		settings, err = glyphedit.LoadSettings(*settingsPath)
		if err != nil {
			fatalf("cannot load settings: %v", err)
		}
	}

	repl, err := readline.New("glyphedit > ")
	if err != nil {
		fatalf("cannot set up line editing: %v", err)
	}
	defer repl.Close()

	c := &cli{
		font:   font,
		store:  store.NewMemory(font),
		queue:  &runQueue{},
		screen: &consoleRenderer{},
		repl:   repl,
	}
	opts := append(settings.Options(),
		glyphedit.WithLogger(log),
		glyphedit.WithInterpolator(interp.New(font, log)),
		glyphedit.WithRenderer(c.screen),
		glyphedit.WithScheduler(c.queue),
	)
	c.ed = glyphedit.New(c.store, opts...)

	pterm.Info.Println("Type 'help' for commands, quit with 'quit' or <ctrl>D")
	c.loop()
	pterm.Info.Println("Good bye!")
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

type cli struct {
	font   *glyph.Font
	store  *store.Memory
	ed     *glyphedit.Editor
	queue  *runQueue
	screen *consoleRenderer
	repl   *readline.Instance
}

// loop reads commands until EOF or quit. Scheduled editor work drains
// after every command, so asynchronous interpolation and saves complete
// before the next prompt.
func (c *cli) loop() {
	for {
		c.repl.SetPrompt(c.prompt())
		line, err := c.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		fields := strings.Fields(line)
		name, args := strings.ToLower(fields[0]), fields[1:]
		cmd, ok := commands[name]
		if !ok {
			pterm.Error.Printf("unknown command %q, try 'help'\n", name)
			continue
		}
		if err := cmd.run(c, args); err != nil {
			if err == errQuit {
				break
			}
			pterm.Error.Println(err)
		}
		c.queue.drain()
		if c.screen.pending {
			c.screen.pending = false
			c.printStatus()
		}
	}
}

func (c *cli) prompt() string {
	p := c.ed.Path()
	if p.Glyph == "" {
		return "glyphedit > "
	}
	return fmt.Sprintf("glyphedit [%s] > ", p)
}

// printStatus prints the one-line summary a render pass would draw.
func (c *cli) printStatus() {
	rs := c.ed.RenderState()
	if rs.Glyph == "" {
		pterm.Println("no session")
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s | %s", rs.Path, rs.State)
	if rs.State == glyphedit.StateAnimating {
		fmt.Fprintf(&sb, " %3.0f%%", rs.Progress*100)
	}
	if rs.Layer != nil && rs.Layer.Interpolated() {
		fmt.Fprintf(&sb, " @ %s", rs.Layer.Location)
	}
	fmt.Fprintf(&sb, " | %s | zoom %g pan %s", c.ed.Selection(), rs.Viewport.Zoom, rs.Viewport.Pan)
	pterm.Println(sb.String())
}

// runQueue is a synchronous Scheduler: callbacks queue up and run when
// the shell drains them between commands. Delayed callbacks sleep out
// their delay, so animation steps see real elapsed time.
type runQueue struct {
	jobs []queuedJob
}

type queuedJob struct {
	delay time.Duration
	fn    func()
}

func (q *runQueue) Post(fn func()) {
	q.jobs = append(q.jobs, queuedJob{fn: fn})
}

func (q *runQueue) After(d time.Duration, fn func()) {
	q.jobs = append(q.jobs, queuedJob{delay: d, fn: fn})
}

func (q *runQueue) drain() {
	for guard := 0; len(q.jobs) > 0; guard++ {
		if guard > 10000 {
			pterm.Error.Println("scheduler queue refuses to drain, dropping remaining work")
			q.jobs = nil
			return
		}
		j := q.jobs[0]
		q.jobs = q.jobs[1:]
		if j.delay > 0 {
			time.Sleep(j.delay)
		}
		j.fn()
	}
}

// consoleRenderer stands in for a drawing surface: it only remembers
// that a repaint was asked for, and the shell prints one status line
// per drained command instead.
type consoleRenderer struct {
	pending bool
}

func (r *consoleRenderer) RequestRender() { r.pending = true }

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "glyphedit: "+format+"\n", args...)
	os.Exit(1)
}
