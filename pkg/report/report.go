package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/MaineK00n/amalgamate/pkg/report/table"
	"github.com/MaineK00n/amalgamate/pkg/types"
)

const countColumnWidth = 10

type Renderer struct {
	Detail         table.Table
	Summary        table.Table
	IncludeSummary bool
}

func NewRenderer() Renderer {
	return Renderer{
		Detail:         table.Table{Width: table.DefaultWidth, LabelWidth: table.DefaultLabelWidth},
		Summary:        table.Table{Width: table.DefaultWidth, LabelWidth: table.DefaultSummaryLabelWidth},
		IncludeSummary: true,
	}
}

// Render writes the summary panel, when enabled, followed by one detail
// panel per resolution.
func (r Renderer) Render(w io.Writer, ss []types.ProjectSummary, rs []types.Resolution) error {
	var lines []string
	if r.IncludeSummary {
		lines = append(lines, r.SummaryPanel(ss)...)
	}
	for _, res := range rs {
		lines = append(lines, r.DetailPanel(res)...)
	}

	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.Wrap(err, "write report")
	}
	return nil
}

func (r Renderer) SummaryPanel(ss []types.ProjectSummary) []string {
	t := r.Summary

	header := make([]string, 0, len(types.Severities))
	for _, s := range types.Severities {
		header = append(header, s.Title())
	}

	lines := []string{t.Border(table.BorderTop)}
	lines = append(lines, t.Row("Project", columns(header))...)
	for _, s := range ss {
		lines = append(lines, t.Border(table.BorderSeparator))

		cs := make([]string, 0, len(types.Severities))
		for _, v := range s.Counts.Values() {
			cs = append(cs, strconv.Itoa(v))
		}
		lines = append(lines, t.Row(Stem(s.Project), columns(cs))...)
	}
	return append(lines, t.Border(table.BorderBottom))
}

func (r Renderer) DetailPanel(res types.Resolution) []string {
	t := r.Detail

	dependencyOf := res.Root()
	if res.Dev {
		dependencyOf += " [dev]"
	}

	lines := []string{t.Border(table.BorderTop)}
	for i, row := range [][]string{
		t.Row(res.Vulnerability.Severity.Title(), res.Vulnerability.Title),
		t.Row("Package", res.Module),
		t.Row("Dependency of", dependencyOf),
		t.PathRow("Path", res.Path),
		t.Row("More info", res.Vulnerability.URL),
		t.Row("Project", res.Project),
	} {
		if i > 0 {
			lines = append(lines, t.Border(table.BorderSeparator))
		}
		lines = append(lines, row...)
	}
	return append(lines, t.Border(table.BorderBottom))
}

// Stem is the file name of an audit path without directory and extension;
// a trailing ".zst" is removed first.
func Stem(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), ".zst")
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// columns left-aligns every cell but the last in a fixed-width sub-column.
func columns(cells []string) string {
	var sb strings.Builder
	for i, c := range cells {
		if i == len(cells)-1 {
			sb.WriteString(c)
			break
		}
		fmt.Fprintf(&sb, "%-*s", countColumnWidth, c)
	}
	return sb.String()
}
