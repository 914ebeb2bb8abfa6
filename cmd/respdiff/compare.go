package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aleister1102/respdiff/internal/common"
	"github.com/aleister1102/respdiff/internal/config"
	"github.com/aleister1102/respdiff/internal/differ"
	"github.com/aleister1102/respdiff/internal/history"
	"github.com/aleister1102/respdiff/internal/models"
	"github.com/aleister1102/respdiff/internal/reporter"
	"github.com/aleister1102/respdiff/internal/source"
	"github.com/aleister1102/respdiff/internal/watcher"
)

type compareOptions struct {
	exclusions   []string
	ignoreOrder  bool
	format       string
	onlyChanges  bool
	contextLines int
	width        int
	noColor      bool
	save         string
	exitCode     bool
	output       string
	watch        bool
}

func compareCmd(a *app) *cobra.Command {
	var opts compareOptions

	command := &cobra.Command{
		Use:   "compare LEFT RIGHT",
		Short: "Compare two JSON documents",
		Example: `  respdiff compare old.json new.json
  respdiff compare -x meta.requestId -x 'items[*].ts' snapshot:users https://api.example.com/users
  curl -s https://api.example.com/users | respdiff compare --ignore-order snapshot:users -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.compare(cmd, opts, args[0], args[1])
		},
	}

	flags := command.Flags()
	flags.StringArrayVarP(&opts.exclusions, "exclude", "x", nil, "path to remove from both documents before comparing, e.g. items[*].id (repeatable)")
	flags.BoolVar(&opts.ignoreOrder, "ignore-order", false, "sort object keys and array elements before comparing")
	flags.StringVarP(&opts.format, "format", "f", "", "output format: inline, side-by-side, unified, json, html")
	flags.BoolVar(&opts.onlyChanges, "only-changes", false, "hide unchanged lines outside the context window")
	flags.IntVar(&opts.contextLines, "context", config.DefaultReportContextLines, "unchanged lines kept around changes")
	flags.IntVar(&opts.width, "width", reporter.DefaultWidth, "total width of the side-by-side view")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.StringVar(&opts.save, "save", "", "save the right document as a snapshot with this name")
	flags.BoolVar(&opts.exitCode, "exit-code", false, "exit with status 1 when the documents differ")
	flags.StringVarP(&opts.output, "output", "o", "", "write the report to a file instead of stdout")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "re-run the comparison whenever a local input file changes")

	return command
}

func (a *app) compare(cmd *cobra.Command, opts compareOptions, leftRef, rightRef string) error {
	for _, p := range config.NormalizeExclusionPaths(opts.exclusions) {
		if err := config.ValidateExclusionPath(p); err != nil {
			return err
		}
	}

	diffCfg := a.cfg.Diff.WithExtraExclusionPaths(opts.exclusions...)
	if opts.ignoreOrder {
		diffCfg.IgnoreOrder = true
	}
	jsonDiffer, err := differ.NewJSONDifferBuilder(a.logger).WithConfig(&diffCfg).Build()
	if err != nil {
		return err
	}

	format, renderOpts := a.reportSettings(cmd, opts, leftRef, rightRef)
	renderer, err := reporter.NewRenderer(format, renderOpts)
	if err != nil {
		return err
	}

	var store *history.Store
	if opts.save != "" || needsStore(leftRef, rightRef) {
		store, err = a.openStore()
		if err != nil {
			return err
		}
		defer store.Close()
	}

	loader, err := a.newLoader(cmd, store)
	if err != nil {
		return err
	}

	once := func(ctx context.Context) (*models.JSONComparison, error) {
		left, right, err := loader.LoadPair(ctx, leftRef, rightRef)
		if err != nil {
			return nil, err
		}

		cmp := jsonDiffer.Compare(left.Value, right.Value, jsonDiffer.DefaultOptions())
		if err := a.writeReport(cmd.OutOrStdout(), opts.output, renderer, cmp); err != nil {
			return nil, err
		}

		if opts.save != "" {
			snap, err := store.SaveValue(opts.save, rightRef, right.Value)
			if err != nil {
				return nil, err
			}
			a.logger.Info().Str("name", snap.Name).Str("id", snap.ID).Msg("Saved right document as snapshot")
		}
		return cmp, nil
	}

	if opts.watch {
		return a.watchCompare(cmd, once, leftRef, rightRef)
	}

	cmp, err := once(cmd.Context())
	if err != nil {
		return err
	}
	if opts.exitCode && !cmp.IsIdentical {
		return errDifferences
	}
	return nil
}

// reportSettings resolves the output format and renderer options from the
// config file and any flags given explicitly.
func (a *app) reportSettings(cmd *cobra.Command, opts compareOptions, leftRef, rightRef string) (string, reporter.Options) {
	rc := a.cfg.Report
	flags := cmd.Flags()

	format := rc.Format
	if flags.Changed("format") {
		format = opts.format
	}

	renderOpts := reporter.OptionsFromConfig(rc)
	if flags.Changed("only-changes") {
		renderOpts.OnlyChanges = opts.onlyChanges
	}
	if flags.Changed("context") {
		renderOpts.ContextLines = opts.contextLines
	}
	if flags.Changed("width") {
		renderOpts.Width = opts.width
	}
	renderOpts.NoColor = renderOpts.NoColor || opts.noColor || color.NoColor || opts.output != ""
	renderOpts.LeftLabel = leftRef
	renderOpts.RightLabel = rightRef

	return format, renderOpts
}

// writeReport renders cmp to out, or to the file at path when one is given.
func (a *app) writeReport(out io.Writer, path string, renderer reporter.Renderer, cmp *models.JSONComparison) error {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, cmp); err != nil {
		return common.WrapError(err, "failed to render comparison")
	}

	if path == "" {
		_, err := out.Write(buf.Bytes())
		return err
	}

	if err := common.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return err
	}
	a.logger.Info().Str("path", path).Msg("Report written")
	return nil
}

// watchCompare runs the comparison once and again after every change to a
// local input file, until the command's context is canceled.
func (a *app) watchCompare(cmd *cobra.Command, once func(context.Context) (*models.JSONComparison, error), leftRef, rightRef string) error {
	if source.KindOf(leftRef) == source.RefStdin || source.KindOf(rightRef) == source.RefStdin {
		return common.NewValidationError("watch", source.StdinRef, "--watch cannot read from stdin")
	}
	files := source.LocalPaths(leftRef, rightRef)
	if len(files) == 0 {
		return common.NewValidationError("watch", []string{leftRef, rightRef}, "--watch needs at least one local file")
	}

	ctx := cmd.Context()
	if _, err := once(ctx); err != nil {
		a.logger.Error().Err(err).Msg("Comparison failed")
	}

	opts := watcher.DefaultOptions()
	opts.Logger = a.logger
	w, err := watcher.New(files, func(ctx context.Context, changed []string) error {
		a.logger.Info().Strs("files", changed).Msg("Input changed, comparing again")
		_, err := fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		_, err = once(ctx)
		return err
	}, opts)
	if err != nil {
		return err
	}
	defer w.Close()

	a.logger.Info().Strs("files", w.Files()).Msg("Watching for changes, press Ctrl+C to stop")
	return w.Run(ctx)
}
