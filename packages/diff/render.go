package diff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// DefaultWidth is the width of the rule printed between hunks.
const DefaultWidth = 80

type options struct {
	context int
	width   int
	color   *bool
}

type Option func(*options)

// WithContext sets the number of unchanged lines around each change.
func WithContext(n int) Option {
	return func(o *options) {
		o.context = n
	}
}

// WithWidth sets the hunk separator width.
func WithWidth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.width = n
		}
	}
}

// WithColor forces ANSI colors on or off. Without it the fatih/color
// global setting applies.
func WithColor(enabled bool) Option {
	return func(o *options) {
		o.color = &enabled
	}
}

func newOptions(opts []Option) *options {
	o := &options{context: DefaultContext, width: DefaultWidth}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type palette struct {
	number   *color.Color
	sign     map[Kind]*color.Color
	text     map[Kind]*color.Color
	emphasis map[Kind]*color.Color
}

func newPalette(enabled *bool) *palette {
	p := &palette{
		number: color.New(color.Faint),
		sign: map[Kind]*color.Color{
			Equal:  color.New(color.Faint, color.Bold),
			Delete: color.New(color.FgRed, color.Bold),
			Insert: color.New(color.FgGreen, color.Bold),
		},
		text: map[Kind]*color.Color{
			Equal:  color.New(color.Faint),
			Delete: color.New(color.FgRed),
			Insert: color.New(color.FgGreen),
		},
		emphasis: map[Kind]*color.Color{
			Equal:  color.New(color.Faint),
			Delete: color.New(color.FgRed, color.Underline, color.BgBlack),
			Insert: color.New(color.FgGreen, color.Underline, color.BgBlack),
		},
	}
	if enabled != nil {
		for _, c := range p.all() {
			if *enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
	return p
}

func (p *palette) all() []*color.Color {
	out := []*color.Color{p.number}
	for _, m := range []map[Kind]*color.Color{p.sign, p.text, p.emphasis} {
		for _, c := range m {
			out = append(out, c)
		}
	}
	return out
}

// Render prints hunks as
//
//	OLD NEW |<sign><content>
//
// with line numbers left-aligned in four columns, blank when the line is
// absent on that side. Hunks are separated by a rule of dashes.
func Render(hunks []Hunk, opts ...Option) string {
	o := newOptions(opts)
	p := newPalette(o.color)

	var sb strings.Builder
	for i, h := range hunks {
		if i > 0 {
			sb.WriteString(strings.Repeat("-", o.width))
			sb.WriteByte('\n')
		}
		for _, l := range h.Lines {
			writeLine(&sb, p, l)
		}
	}
	return sb.String()
}

func writeLine(sb *strings.Builder, p *palette, l Line) {
	sb.WriteString(p.number.Sprint(lineNumber(l.OldLine)))
	sb.WriteString(p.number.Sprint(lineNumber(l.NewLine)))
	sb.WriteString(" |")
	sb.WriteString(p.sign[l.Kind].Sprint(l.Kind.Sign()))
	for _, s := range l.Spans {
		if s.Emphasized {
			sb.WriteString(p.emphasis[l.Kind].Sprint(s.Text))
		} else {
			sb.WriteString(p.text[l.Kind].Sprint(s.Text))
		}
	}
	sb.WriteByte('\n')
}

func lineNumber(n int) string {
	if n == 0 {
		return "    "
	}
	return fmt.Sprintf("%-4s", strconv.Itoa(n))
}

// Text computes and renders the diff of a and b in one step.
func Text(a, b string, opts ...Option) string {
	o := newOptions(opts)
	return Render(Compute(a, b, o.context), opts...)
}
