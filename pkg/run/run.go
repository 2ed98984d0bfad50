package run

import (
	"bytes"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	progressbar "github.com/schollz/progressbar/v3"

	"github.com/MaineK00n/amalgamate/pkg/aggregate"
	"github.com/MaineK00n/amalgamate/pkg/audit"
	"github.com/MaineK00n/amalgamate/pkg/report"
	"github.com/MaineK00n/amalgamate/pkg/report/table"
	"github.com/MaineK00n/amalgamate/pkg/summary"
	"github.com/MaineK00n/amalgamate/pkg/types"
)

type options struct {
	width             int
	labelWidth        int
	summaryLabelWidth int

	summary    bool
	noProgress bool
}

type Option interface {
	apply(*options)
}

type widthOption int

func (o widthOption) apply(opts *options) {
	opts.width = int(o)
}

func WithWidth(width int) Option {
	return widthOption(width)
}

type labelWidthOption int

func (o labelWidthOption) apply(opts *options) {
	opts.labelWidth = int(o)
}

func WithLabelWidth(width int) Option {
	return labelWidthOption(width)
}

type summaryLabelWidthOption int

func (o summaryLabelWidthOption) apply(opts *options) {
	opts.summaryLabelWidth = int(o)
}

func WithSummaryLabelWidth(width int) Option {
	return summaryLabelWidthOption(width)
}

type summaryOption bool

func (o summaryOption) apply(opts *options) {
	opts.summary = bool(o)
}

func WithSummary(summary bool) Option {
	return summaryOption(summary)
}

type noProgressOption bool

func (o noProgressOption) apply(opts *options) {
	opts.noProgress = bool(o)
}

func WithNoProgress(noProgress bool) Option {
	return noProgressOption(noProgress)
}

// Run merges the audit files in inputs into one text report at output. The
// report is built in memory and written only once every input has been read,
// so a failed run leaves output untouched.
func Run(output string, kind string, inputs []string, opts ...Option) error {
	options := &options{
		width:             table.DefaultWidth,
		labelWidth:        table.DefaultLabelWidth,
		summaryLabelWidth: table.DefaultSummaryLabelWidth,
		summary:           true,
		noProgress:        false,
	}
	for _, o := range opts {
		o.apply(options)
	}

	k, err := aggregate.ParseKind(kind)
	if err != nil {
		return errors.Wrap(err, "parse kind")
	}
	if len(inputs) == 0 {
		return types.InvalidConfigurationf("no input audit files")
	}

	detail, err := table.New(options.width, options.labelWidth)
	if err != nil {
		return errors.Wrap(err, "detail table")
	}
	sum, err := table.New(options.width, options.summaryLabelWidth)
	if err != nil {
		return errors.Wrap(err, "summary table")
	}

	pb := func() *progressbar.ProgressBar {
		if options.noProgress {
			return progressbar.DefaultBytesSilent(-1)
		}
		return progressbar.DefaultBytes(-1, "reading")
	}()

	var rs []types.Resolution
	for _, in := range inputs {
		slog.Info("Read", "path", in)
		doc, err := audit.Open(in, audit.WithProgress(pb))
		if err != nil {
			_ = pb.Exit()
			return errors.Wrapf(err, "read %s", in)
		}

		gathered, err := aggregate.Gather(doc, in)
		if err != nil {
			_ = pb.Exit()
			return errors.Wrapf(err, "gather %s", in)
		}
		rs = append(rs, gathered...)
	}
	_ = pb.Finish()

	filtered, err := aggregate.FilterByKind(rs, k)
	if err != nil {
		return errors.Wrap(err, "filter")
	}
	aggregate.SortBySeverity(filtered)

	ss, err := summary.Summarize(filtered)
	if err != nil {
		return errors.Wrap(err, "summarize")
	}
	slog.Info("Aggregate", "kind", k, "total", len(rs), "reported", len(filtered), "projects", len(ss))

	var buf bytes.Buffer
	r := report.Renderer{
		Detail:         detail,
		Summary:        sum,
		IncludeSummary: options.summary,
	}
	if err := r.Render(&buf, ss, filtered); err != nil {
		return errors.Wrap(err, "render")
	}

	if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
		return types.IOError(err, "write %s", output)
	}
	slog.Info("Write", "path", output, "bytes", buf.Len())

	return nil
}
