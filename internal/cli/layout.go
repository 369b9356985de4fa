package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/yuletree/pkg/config"
	"github.com/matzehuels/yuletree/pkg/render"
	"github.com/matzehuels/yuletree/pkg/shell"
)

// maxMessageWidth truncates message texts in the layout table.
const maxMessageWidth = 40

// layoutCommand creates the layout command for inspecting placements.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		asJSON bool
		flags  treeFlags
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show where every ornament goes",
		Long: `Show where every ornament goes.

The layout command binds the configured messages to the silhouette and
prints the resulting placements as a table. With --json it prints the
layout snapshot instead (the same document GET /layout.json serves).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags.apply(&cfg)
			return c.runLayout(cmd.Context(), cfg, asJSON, output)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the layout snapshot as JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the JSON snapshot to a file")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, cfg config.Config, asJSON bool, output string) error {
	opts, err := pipelineOptions(cfg)
	if err != nil {
		return err
	}
	runner, closeAll, err := c.newRunner(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer closeAll()

	scene, err := runner.Scene(ctx, opts)
	if err != nil {
		return err
	}

	if asJSON || output != "" {
		data, err := render.RenderJSON(scene, render.WithJSONStyle(opts.Style), render.WithJSONIndent())
		if err != nil {
			return err
		}
		if output == "" {
			_, err = stdout.Write(append(data, '\n'))
			return err
		}
		if err := writeFile(output, data); err != nil {
			return err
		}
		printSuccess("Wrote layout of %s", StyleHighlight.Render(opts.Spec.Name))
		printFile(output)
		return nil
	}

	printLayoutTable(scene)
	printDetail("%d lights · %d snowflakes · seed %d", len(scene.Lights), len(scene.Snow), scene.Seed)
	return nil
}

func printLayoutTable(scene render.Scene) {
	items := scene.Items()
	if len(items) == 0 {
		printInfo("No messages; the tree is bare")
		return
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, layoutRow(scene, it))
	}
	printTable([]string{"Kind", "#", "Row", "X", "Y", "Color", "Message"}, rows)
}

func layoutRow(scene render.Scene, it shell.Item) []string {
	x, y := it.Placed.X, it.Placed.Y
	index, row := strconv.Itoa(it.Placed.Index), strconv.Itoa(it.Placed.Row)
	color := it.Placed.Color
	if it.Kind == shell.KindStar {
		x, y = scene.Spec.Star.X, scene.Spec.Star.Y
		index, row = "-", "-"
		color = scene.Spec.Star.Color
	}
	return []string{
		it.Kind.String(),
		index,
		row,
		fmt.Sprintf("%.1f", x),
		fmt.Sprintf("%.1f", y),
		color,
		truncate(it.Message.Text, maxMessageWidth),
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
