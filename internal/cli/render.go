package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/yuletree/pkg/config"
	"github.com/matzehuels/yuletree/pkg/errors"
	"github.com/matzehuels/yuletree/pkg/pipeline"
	"github.com/matzehuels/yuletree/pkg/render"
)

const defaultOutputBase = "yuletree"

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
		flags      treeFlags
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the greeting page, SVG or layout JSON to files",
		Long: `Render the greeting page, SVG or layout JSON to files.

With a single format, -o names the output file ("-" writes to stdout).
With several formats, -o is the base path and each format adds its own
extension. Results are cached according to the cache configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags.apply(&cfg)
			return c.runRender(cmd.Context(), cfg, parseFormats(formatsStr), output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (default: yuletree)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): html (default), svg, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.register(cmd)

	formats := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		formats[i] = string(f)
	}
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(formats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runRender(ctx context.Context, cfg config.Config, formats []string, output string, noCache bool) error {
	logger := loggerFromContext(ctx)

	opts, err := pipelineOptions(cfg)
	if err != nil {
		return err
	}
	opts.Formats = formats
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	runner, closeAll, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer closeAll()

	prog := newProgress(logger)
	sp := newSpinner(ctx, "Decorating the tree")
	sp.Start()
	res, err := runner.Render(ctx, opts)
	if err != nil {
		sp.StopWithError("Render failed")
		return err
	}
	sp.Stop()

	if output == "-" {
		if len(res.Artifacts) != 1 {
			return errors.New(errors.ErrCodeInvalidInput, "-o - needs exactly one format")
		}
		for _, data := range res.Artifacts {
			if _, err := stdout.Write(data); err != nil {
				return err
			}
		}
		return nil
	}

	paths := outputPaths(output, res.Artifacts)
	for _, f := range render.Formats {
		data, ok := res.Artifacts[f]
		if !ok {
			continue
		}
		path := paths[f]
		if err := writeFile(path, data); err != nil {
			return err
		}
		printFile(path)
	}
	printStats(res.Stats.Messages, len(res.Scene.Ornaments), len(res.CacheHits) == len(res.Artifacts))
	prog.done(fmt.Sprintf("Rendered %d file(s)", len(res.Artifacts)))

	if p, ok := paths[render.FormatHTML]; ok {
		printNextStep("Open it in a browser", p)
	}
	return nil
}

// outputPaths maps each rendered format to its file. A single format
// writes exactly to output (when set); several formats share output as a
// base path with any known extension stripped.
func outputPaths(output string, artifacts map[render.Format][]byte) map[render.Format]string {
	paths := make(map[render.Format]string, len(artifacts))
	if len(artifacts) == 1 && output != "" && output != "-" {
		for f := range artifacts {
			paths[f] = output
		}
		return paths
	}
	base := basePath(output)
	for f := range artifacts {
		paths[f] = base + f.Ext()
	}
	return paths
}

// basePath strips a known format extension from output, defaulting to
// "yuletree" in the working directory.
func basePath(output string) string {
	if output == "" || output == "-" {
		return defaultOutputBase
	}
	ext := filepath.Ext(output)
	if _, err := render.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
