package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"classdraw/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file path (or base path for multiple formats)
	formats []string // output formats: png, svg, uml, json
	refresh bool     // recompute even when cached
	noCache bool     // disable the artifact cache entirely
}

// newRenderCmd creates the render command: run the full pipeline on a
// document and write one file per requested format.
func newRenderCmd(cfg *Config) *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file.uml>",
		Short: "Render a class diagram to PNG, SVG, UML, or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return runRender(cmd, args[0], *cfg, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), svg, uml, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache and recompute")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func runRender(cmd *cobra.Command, input string, cfg Config, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	d, err := loadDiagram(input)
	if err != nil {
		return err
	}
	d = cfg.applyStyle(d)

	runner, err := newRunner(cfg, opts.noCache, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "rendering "+filepath.Base(input))
	spinner.Start()

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, d, pipeline.Options{
		Formats: opts.formats,
		Layout:  cfg.layoutConfig(),
		Refresh: opts.refresh,
		Logger:  logger,
	})
	if err != nil {
		spinner.StopWithError(err.Error())
		if res != nil {
			for _, issue := range res.Report.Errors {
				printDetail("%s", formatIssue(issue))
			}
		}
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d artifacts", len(res.Artifacts)))

	for _, issue := range res.Report.Warnings {
		printWarning("%s", formatIssue(issue))
	}
	for _, w := range res.Layout.Warnings {
		printWarning("%s", w.Message)
	}
	for _, w := range res.Routes.Warnings {
		printWarning("%s", w.Message)
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := base + "." + format
		if opts.output != "" && len(opts.formats) == 1 {
			path = opts.output
		}
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return err
		}
		printFile(path)
	}

	printStats(res.Stats.ClassCount, res.Stats.ConnectionCount, res.CacheInfo.RenderHit)
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. If output has
// a known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	switch strings.TrimPrefix(ext, ".") {
	case pipeline.FormatPNG, pipeline.FormatSVG, pipeline.FormatUML, pipeline.FormatJSON:
		return strings.TrimSuffix(output, ext)
	}
	return output
}
