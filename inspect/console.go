package inspect

import (
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// ConsoleConfig controls console output.
type ConsoleConfig struct {
	Colors  bool           // use ANSI colors
	Context *uax11.Context // for display width of East Asian text
}

// ConfigFromTerminal creates a console configuration from the properties of
// stdout and the user environment. Colors are used only if stdout is a
// terminal.
func ConfigFromTerminal() *ConsoleConfig {
	config := &ConsoleConfig{
		Colors:  term.IsTerminal(int(os.Stdout.Fd())),
		Context: uax11.ContextFromEnvironment(),
	}
	tracer().P("inspect", "console").Debugf("colors=%v", config.Colors)
	return config
}

var setupGraphemes sync.Once

// displayWidth returns the number of fixed-width cells s occupies.
func displayWidth(s string, context *uax11.Context) int {
	if s == "" {
		return 0
	}
	setupGraphemes.Do(func() { grapheme.SetupGraphemeClasses() })
	gstr := grapheme.StringFromString(s)
	return uax11.StringWidth(gstr, context)
}

// WriteConsole outputs rows as a table with aligned columns. If config is
// nil, ConfigFromTerminal is used.
func WriteConsole(w io.Writer, rows []Row, config *ConsoleConfig) error {
	if config == nil {
		config = ConfigFromTerminal()
	}
	context := config.Context
	if context == nil {
		context = uax11.LatinContext
	}
	keyColor, subColor := color.New(color.FgBlue), color.New(color.FgRed)
	if config.Colors {
		keyColor.EnableColor()
		subColor.EnableColor()
	} else {
		keyColor.DisableColor()
		subColor.DisableColor()
	}
	partitioned := isPartitioned(rows)
	pw, sw := 0, 0
	for _, row := range rows {
		pw = max(pw, displayWidth(row.Primary, context))
		sw = max(sw, displayWidth(row.Secondary, context))
	}
	cw := &errWriter{w: w}
	for _, g := range groups(rows) {
		for i, row := range rows[g[0]:g[1]] {
			primary := row.Primary
			if i > 0 { // print the primary key once per partition
				primary = ""
			}
			keyColor.Fprint(cw, primary)
			cw.pad(pw - displayWidth(primary, context) + 2)
			if partitioned {
				subColor.Fprint(cw, row.Secondary)
				cw.pad(sw - displayWidth(row.Secondary, context) + 2)
			}
			io.WriteString(cw, row.Value)
			io.WriteString(cw, "\n")
			if cw.err != nil {
				tracer().Errorf("inspect console: %s", cw.err.Error())
				return cw.err
			}
		}
	}
	return nil
}

// errWriter remembers the first write error.
type errWriter struct {
	w   io.Writer
	err error
}

func (cw *errWriter) Write(p []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	n, err := cw.w.Write(p)
	cw.err = err
	return n, err
}

func (cw *errWriter) pad(n int) {
	for ; n > 0; n-- {
		cw.Write([]byte{' '})
	}
}
