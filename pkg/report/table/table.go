package table

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/MaineK00n/amalgamate/pkg/types"
)

const (
	DefaultWidth             = 100
	DefaultLabelWidth        = 15
	DefaultSummaryLabelWidth = 30

	PathSeparator = " > "
)

const (
	topLeft     = "┌"
	topRight    = "┐"
	bottomLeft  = "└"
	bottomRight = "┘"
	horizontal  = "─"
	edge        = "│"
)

type BorderKind int

const (
	BorderTop BorderKind = iota
	BorderBottom
	BorderSeparator
)

// Table lays out two-column rows inside a box Width cells wide, not
// counting the two outer edges. The label column is LabelWidth cells; the
// value column holds a leading space and then up to Width-LabelWidth-2 cells.
type Table struct {
	Width      int
	LabelWidth int
}

// New validates the widths. The label column must hold one double-width
// character and the value column two, so a broken path segment still has
// room for its " >" marker.
func New(width, labelWidth int) (Table, error) {
	t := Table{Width: width, LabelWidth: labelWidth}
	if labelWidth < 2 {
		return Table{}, types.InvalidConfigurationf("label width must be at least 2, actual: %d", labelWidth)
	}
	if t.Capacity() < 4 {
		return Table{}, types.InvalidConfigurationf("width %d leaves no room for values next to a %d cell label column", width, labelWidth)
	}
	return t, nil
}

// Capacity is the number of cells available to a value on one line.
func (t Table) Capacity() int {
	return t.Width - t.LabelWidth - 2
}

func (t Table) Border(kind BorderKind) string {
	line := strings.Repeat(horizontal, t.Width)
	switch kind {
	case BorderTop:
		return topLeft + line + topRight
	case BorderBottom:
		return bottomLeft + line + bottomRight
	default:
		return edge + line + edge
	}
}

// Row renders label and value side by side. Text that does not fit its
// column continues on following lines with the other column left blank, so
// every returned line is exactly Width+2 cells.
func (t Table) Row(label, value string) []string {
	return t.lines(Wrap(label, t.LabelWidth), Wrap(value, t.Capacity()))
}

// PathRow is Row for a dependency path, broken between segments.
func (t Table) PathRow(label string, segments []string) []string {
	return t.lines(Wrap(label, t.LabelWidth), t.WrapPath(segments))
}

func (t Table) lines(labels, values []string) []string {
	n := max(len(labels), len(values))
	ls := make([]string, 0, n)
	for i := range n {
		var l, v string
		if i < len(labels) {
			l = labels[i]
		}
		if i < len(values) {
			v = values[i]
		}
		ls = append(ls, edge+pad(l, t.LabelWidth)+edge+" "+pad(v, t.Capacity())+edge)
	}
	return ls
}

// WrapPath joins segments with " > ". When the result is wider than the value
// column, whole segments are packed greedily onto lines, each line but the
// last ending in " >". A segment too wide for a line on its own is broken
// by grapheme cluster.
func (t Table) WrapPath(segments []string) []string {
	joined := strings.Join(segments, PathSeparator)
	if Width(joined) <= t.Capacity() {
		return []string{joined}
	}

	const cont = " >"
	var (
		lines []string
		cur   string
	)
	for i, seg := range segments {
		reserve := len(cont)
		if i == len(segments)-1 {
			reserve = 0
		}

		if i > 0 {
			if candidate := cur + PathSeparator + seg; Width(candidate)+reserve <= t.Capacity() {
				cur = candidate
				continue
			}
			lines = append(lines, cur+cont)
		}

		if Width(seg)+reserve <= t.Capacity() {
			cur = seg
			continue
		}
		chunks := breakWidth(seg, t.Capacity()-reserve)
		lines = append(lines, chunks[:len(chunks)-1]...)
		cur = chunks[len(chunks)-1]
	}
	return append(lines, cur)
}

// Width is the number of terminal cells s occupies.
func Width(s string) int {
	return uniseg.StringWidth(s)
}

// Wrap breaks s into lines no wider than width, preferring spaces and
// falling back to breaking inside a word.
func Wrap(s string, width int) []string {
	if Width(s) <= width {
		return []string{s}
	}

	var (
		lines []string
		cur   string
	)
	for _, w := range strings.Fields(s) {
		switch {
		case cur != "" && Width(cur)+1+Width(w) <= width:
			cur += " " + w
			continue
		case cur != "":
			lines = append(lines, cur)
			cur = ""
		}

		if Width(w) <= width {
			cur = w
			continue
		}
		chunks := breakWidth(w, width)
		lines = append(lines, chunks[:len(chunks)-1]...)
		cur = chunks[len(chunks)-1]
	}
	if cur != "" || len(lines) == 0 {
		lines = append(lines, cur)
	}
	return lines
}

// breakWidth splits s into chunks of at most width cells without splitting
// a grapheme cluster. It always returns at least one chunk.
func breakWidth(s string, width int) []string {
	var (
		chunks []string
		b      strings.Builder
		w      int
	)
	state := -1
	for s != "" {
		var (
			cluster string
			cw      int
		)
		cluster, s, cw, state = uniseg.FirstGraphemeClusterInString(s, state)
		if w+cw > width && b.Len() > 0 {
			chunks = append(chunks, b.String())
			b.Reset()
			w = 0
		}
		b.WriteString(cluster)
		w += cw
	}
	return append(chunks, b.String())
}

func pad(s string, width int) string {
	n := width - Width(s)
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}
