// Package diff computes and renders line diffs between two texts.
//
// Lines are compared whole, changes are grouped into hunks with a context
// window, and paired deleted/inserted lines carry character level spans so
// the differing parts can be emphasized.
package diff

import (
	"encoding/json"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContext is the number of unchanged lines kept around a change.
const DefaultContext = 3

// Kind is the role of a line in a diff.
type Kind int

const (
	Equal Kind = iota
	Delete
	Insert
)

// Sign returns the marker printed before the line content.
func (k Kind) Sign() string {
	switch k {
	case Delete:
		return "-"
	case Insert:
		return "+"
	default:
		return " "
	}
}

func (k Kind) String() string {
	switch k {
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	default:
		return "equal"
	}
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Span is a piece of a line. Emphasized spans are the characters that
// differ from the paired line.
type Span struct {
	Text       string `json:"text"`
	Emphasized bool   `json:"emphasized,omitempty"`
}

// Line is one rendered diff line. Line numbers are 1-based; 0 means the
// line does not exist on that side.
type Line struct {
	Kind    Kind   `json:"kind"`
	OldLine int    `json:"old,omitempty"`
	NewLine int    `json:"new,omitempty"`
	Spans   []Span `json:"spans"`
}

// Content returns the line text without its terminator.
func (l Line) Content() string {
	var sb strings.Builder
	for _, s := range l.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Hunk is a contiguous group of changed lines and their context.
type Hunk struct {
	Lines []Line `json:"lines"`
}

// HasChanges reports whether any hunk contains an insert or delete.
func HasChanges(hunks []Hunk) bool {
	added, removed := Stats(hunks)
	return added+removed > 0
}

// Stats counts inserted and deleted lines.
func Stats(hunks []Hunk) (added, removed int) {
	for _, h := range hunks {
		for _, l := range h.Lines {
			switch l.Kind {
			case Insert:
				added++
			case Delete:
				removed++
			}
		}
	}
	return added, removed
}

func newMatcher() *diffmatchpatch.DiffMatchPatch {
	dmp := diffmatchpatch.New()
	// no deadline, so the result only depends on the inputs
	dmp.DiffTimeout = 0
	return dmp
}

// Compute diffs a against b line by line and groups the result into hunks
// with context unchanged lines around each change. Identical inputs give a
// single hunk of context lines covering the whole text.
func Compute(a, b string, context int) []Hunk {
	if context < 0 {
		context = 0
	}

	lines := lineDiff(a, b)
	if len(lines) == 0 {
		return nil
	}

	ranges := changeRanges(lines, context)
	if len(ranges) == 0 {
		return []Hunk{{Lines: lines}}
	}

	hunks := make([]Hunk, 0, len(ranges))
	for _, r := range ranges {
		hunk := Hunk{Lines: append([]Line(nil), lines[r[0]:r[1]]...)}
		emphasize(hunk.Lines)
		hunks = append(hunks, hunk)
	}
	return hunks
}

func lineDiff(a, b string) []Line {
	runesA, runesB, lines := encodeLines(a, b)
	diffs := newMatcher().DiffMainRunes(runesA, runesB, false)

	var out []Line
	oldLine, newLine := 0, 0
	for _, d := range diffs {
		for _, r := range d.Text {
			text := lines[r]
			line := Line{Spans: []Span{{Text: strings.TrimSuffix(text, "\n")}}}
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				oldLine++
				newLine++
				line.Kind, line.OldLine, line.NewLine = Equal, oldLine, newLine
			case diffmatchpatch.DiffDelete:
				oldLine++
				line.Kind, line.OldLine = Delete, oldLine
			case diffmatchpatch.DiffInsert:
				newLine++
				line.Kind, line.NewLine = Insert, newLine
			}
			out = append(out, line)
		}
	}
	return out
}

// encodeLines maps every distinct line of a and b to its own rune so the
// matcher compares whole lines. Surrogate code points are skipped because
// they do not survive the matcher's string conversions.
func encodeLines(a, b string) ([]rune, []rune, map[rune]string) {
	index := make(map[string]rune)
	lines := make(map[rune]string)
	next := rune(1)

	encode := func(text string) []rune {
		var out []rune
		for _, line := range splitLines(text) {
			r, ok := index[line]
			if !ok {
				if next >= 0xD800 && next <= 0xDFFF {
					next = 0xE000
				}
				r = next
				next++
				index[line] = r
				lines[r] = line
			}
			out = append(out, r)
		}
		return out
	}
	return encode(a), encode(b), lines
}

// splitLines splits after every newline, keeping the terminators.
func splitLines(s string) []string {
	var out []string
	for s != "" {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			out = append(out, s)
			break
		}
		out = append(out, s[:i+1])
		s = s[i+1:]
	}
	return out
}

// changeRanges returns [start, end) windows around changed lines. Windows
// closer than 2*context unchanged lines are merged.
func changeRanges(lines []Line, context int) [][2]int {
	var ranges [][2]int
	for i, l := range lines {
		if l.Kind == Equal {
			continue
		}
		start := max(0, i-context)
		end := min(len(lines), i+context+1)
		if n := len(ranges); n > 0 && start <= ranges[n-1][1] {
			ranges[n-1][1] = max(ranges[n-1][1], end)
			continue
		}
		ranges = append(ranges, [2]int{start, end})
	}
	return ranges
}

// emphasize pairs the i-th deleted line of each change block with its i-th
// inserted line and splits both into spans.
func emphasize(lines []Line) {
	dmp := newMatcher()
	for i := 0; i < len(lines); {
		if lines[i].Kind == Equal {
			i++
			continue
		}
		var deletes, inserts []int
		for ; i < len(lines) && lines[i].Kind != Equal; i++ {
			if lines[i].Kind == Delete {
				deletes = append(deletes, i)
			} else {
				inserts = append(inserts, i)
			}
		}
		for k := 0; k < len(deletes) && k < len(inserts); k++ {
			oldSpans, newSpans := inlineSpans(dmp, lines[deletes[k]].Content(), lines[inserts[k]].Content())
			lines[deletes[k]].Spans = oldSpans
			lines[inserts[k]].Spans = newSpans
		}
	}
}

func inlineSpans(dmp *diffmatchpatch.DiffMatchPatch, oldText, newText string) ([]Span, []Span) {
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var oldSpans, newSpans []Span
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			oldSpans = appendSpan(oldSpans, d.Text, false)
			newSpans = appendSpan(newSpans, d.Text, false)
		case diffmatchpatch.DiffDelete:
			oldSpans = appendSpan(oldSpans, d.Text, true)
		case diffmatchpatch.DiffInsert:
			newSpans = appendSpan(newSpans, d.Text, true)
		}
	}
	return ensureSpan(oldSpans), ensureSpan(newSpans)
}

func appendSpan(spans []Span, text string, emphasized bool) []Span {
	if text == "" {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].Emphasized == emphasized {
		spans[n-1].Text += text
		return spans
	}
	return append(spans, Span{Text: text, Emphasized: emphasized})
}

func ensureSpan(spans []Span) []Span {
	if len(spans) == 0 {
		return []Span{{Text: ""}}
	}
	return spans
}
