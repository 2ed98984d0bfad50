package run

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	utilflag "github.com/MaineK00n/amalgamate/pkg/cmd/util/flag"
	"github.com/MaineK00n/amalgamate/pkg/config"
	"github.com/MaineK00n/amalgamate/pkg/report/table"
	"github.com/MaineK00n/amalgamate/pkg/run"
	utilos "github.com/MaineK00n/amalgamate/pkg/util/os"
)

func NewCmd() *cobra.Command {
	options := struct {
		config            string
		width             int
		labelWidth        int
		summaryLabelWidth int
		noSummary         bool
		noProgress        bool
		debug             bool
	}{
		config:            filepath.Join(utilos.UserConfigDir(), "config.json"),
		width:             table.DefaultWidth,
		labelWidth:        table.DefaultLabelWidth,
		summaryLabelWidth: table.DefaultSummaryLabelWidth,
		noSummary:         false,
		noProgress:        false,
		debug:             false,
	}

	cmd := &cobra.Command{
		Use:   "run <output file> <kind> <input files>",
		Short: "merge npm audit reports into a text report",
		Long: heredoc.Doc(`
			Merge one or more "npm audit --json" reports into a fixed-width text report.
			<kind> is one of dependencies, devDependencies or both.
			<input files> is a comma-separated list; files ending in .zst are zstd-decompressed.
		`),
		Example: heredoc.Doc(`
		$ amalgamate run report.txt both frontend.json,backend.json
		$ amalgamate run report.txt dependencies audits/api.json.zst --no-summary
		`),
		Args: cobra.ExactArgs(3),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 1 {
				return utilflag.KindCompletion(cmd, args, toComplete)
			}
			return nil, cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind utilflag.Kind
			if err := kind.Set(args[1]); err != nil {
				return errors.Wrap(err, "run")
			}

			c, err := func() (config.Config, error) {
				if !cmd.Flags().Changed("config") {
					if _, err := os.Stat(options.config); errors.Is(err, fs.ErrNotExist) {
						return config.Config{}, nil
					}
				}
				return config.Open(options.config)
			}()
			if err != nil {
				return errors.Wrap(err, "load config")
			}

			width := pick(cmd, "width", options.width, c.Width)
			labelWidth := pick(cmd, "label-width", options.labelWidth, c.LabelWidth)
			summaryLabelWidth := pick(cmd, "summary-label-width", options.summaryLabelWidth, c.SummaryLabelWidth)
			noProgress := pick(cmd, "no-progress", options.noProgress, c.NoProgress)
			debug := pick(cmd, "debug", options.debug, c.Debug)
			summary := !options.noSummary
			if !cmd.Flags().Changed("no-summary") && c.Summary != nil {
				summary = *c.Summary
			}

			if debug {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}

			if err := run.Run(args[0], kind.String(), splitInputs(args[2]),
				run.WithWidth(width),
				run.WithLabelWidth(labelWidth),
				run.WithSummaryLabelWidth(summaryLabelWidth),
				run.WithSummary(summary),
				run.WithNoProgress(noProgress),
			); err != nil {
				return errors.Wrap(err, "run")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&options.config, "config", "c", options.config, "config file path (.json, .yaml or .yml)")
	cmd.Flags().IntVarP(&options.width, "width", "", options.width, "table width excluding the outer edges")
	cmd.Flags().IntVarP(&options.labelWidth, "label-width", "", options.labelWidth, "label column width of detail panels")
	cmd.Flags().IntVarP(&options.summaryLabelWidth, "summary-label-width", "", options.summaryLabelWidth, "label column width of the summary panel")
	cmd.Flags().BoolVarP(&options.noSummary, "no-summary", "", options.noSummary, "omit the summary panel")
	cmd.Flags().BoolVarP(&options.noProgress, "no-progress", "", options.noProgress, "no progress bar")
	cmd.Flags().BoolVarP(&options.debug, "debug", "d", options.debug, "debug mode")

	return cmd
}

// pick prefers an explicitly set flag, then the config file, then the flag default.
func pick[T any](cmd *cobra.Command, name string, flagValue T, configValue *T) T {
	if cmd.Flags().Changed(name) || configValue == nil {
		return flagValue
	}
	return *configValue
}

func splitInputs(s string) []string {
	var inputs []string
	for _, in := range strings.Split(s, ",") {
		if in = strings.TrimSpace(in); in != "" {
			inputs = append(inputs, in)
		}
	}
	return inputs
}
