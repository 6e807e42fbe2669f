package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schedgrid/pkg/pipeline"
	"github.com/matzehuels/schedgrid/pkg/render"
	"github.com/matzehuels/schedgrid/pkg/timetable"
)

// layoutSuffix marks files written by the layout command.
const layoutSuffix = ".layout.json"

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [schedule.toml|schedule.json|url|file.layout.json]",
		Short: "Render a day grid as text, agenda, DOT or SVG",
		Long: `Render a day grid as text, agenda, DOT or SVG.

The input is either a schedule document (a file or an http(s) URL), which
is laid out first, or a
layout file written by 'layout'. Selection and grid flags only apply to
schedule documents.

Formats: ` + strings.Join(render.Formats, ", ") + `

With -o - a single format is written to stdout. Rendered artifacts are
cached by the content of the layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if output == "-" && len(opts.Formats) > 1 {
				return fmt.Errorf("-o - needs exactly one format, got %d", len(opts.Formats))
			}
			c.applyConfig(&opts)
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", render.FormatText, "output format(s), comma-separated")
	cmd.Flags().BoolVar(&opts.Color, "color", false, "color session cells in text output")
	cmd.Flags().BoolVar(&opts.Details, "details", false, "show times and speakers in DOT and SVG cells")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached artifacts and fetched schedules")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addSelectionFlags(cmd, &opts)
	addGridFlags(cmd, &opts)

	return cmd
}

// runRender lays out (when needed) and renders input.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var (
		l         timetable.Layout
		artifacts map[string][]byte
		cacheHit  bool
		stats     *pipeline.Stats
	)
	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	if strings.HasSuffix(input, layoutSuffix) {
		l, err = timetable.ReadLayoutFile(input)
		if err == nil {
			artifacts, cacheHit, err = runner.RenderWithCacheInfo(ctx, l, opts)
		}
	} else {
		var res *pipeline.Result
		if ev, ierr := c.loadSchedule(ctx, input, opts.Refresh); ierr != nil {
			err = ierr
		} else if res, err = runner.Execute(ctx, ev, opts); err == nil {
			l, artifacts, cacheHit, stats = res.Layout, res.Artifacts, res.CacheInfo.RenderHit, &res.Stats
		}
	}
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if output == "-" {
		_, err := os.Stdout.Write(artifacts[opts.Formats[0]])
		return err
	}

	paths, err := writeArtifacts(artifacts, opts.Formats, renderBase(input, output, l.Day), output, len(opts.Formats) == 1)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	if stats != nil {
		printStats(*stats, cacheHit)
	}
	return nil
}

// renderBase derives the output base path: the -o value for multiple
// formats, otherwise "<input base>.<day>".
func renderBase(input, output, day string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	base := strings.TrimSuffix(input, layoutSuffix)
	if base == input {
		base = inputBase(input)
		if day != "" {
			base += "." + day
		}
	}
	return base
}

// writeArtifacts writes one file per format. A single format with an
// explicit output path is written to that path verbatim.
func writeArtifacts(artifacts map[string][]byte, formats []string, base, output string, single bool) ([]string, error) {
	var paths []string
	for _, format := range formats {
		path := base + "." + render.Ext(format)
		if single && output != "" {
			path = output
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
