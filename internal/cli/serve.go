package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/yuletree/pkg/config"
	"github.com/matzehuels/yuletree/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		watch   bool
		noCache bool
		flags   treeFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the greeting page over HTTP",
		Long: `Serve the greeting page over HTTP.

Routes:
  GET /              the interactive page
  GET /tree.svg      the tree alone (?style=, ?static=, ?snow=, ?seed=)
  GET /layout.json   the layout snapshot
  GET /messages      the message list as JSON
  GET /healthz       liveness probe

With --watch the silhouette file is reloaded whenever it changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags.apply(&cfg)
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if watch {
				cfg.Server.Watch = true
			}
			return c.runServe(cmd.Context(), cfg, noCache)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default: :8080)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the silhouette file when it changes")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config, noCache bool) error {
	opts, err := pipelineOptions(cfg)
	if err != nil {
		return err
	}
	runner, closeAll, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer closeAll()

	srv, err := server.New(runner, opts, c.Logger)
	if err != nil {
		return err
	}

	var w *server.Watcher
	if cfg.Server.Watch {
		if cfg.Tree.Silhouette == "" {
			printWarning("--watch needs a silhouette file; nothing to watch")
		} else if w, err = server.NewWatcher(cfg.Tree.Silhouette, srv.Reload, c.Logger); err != nil {
			return fmt.Errorf("watch %s: %w", cfg.Tree.Silhouette, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.ListenAndServe(gctx, cfg.Server) })
	if w != nil {
		g.Go(func() error { return w.Run(gctx) })
	}

	printSuccess("Serving %s", StyleHighlight.Render(opts.Spec.Name))
	printKeyValue("store", cfg.Store.Driver)
	printKeyValue("cache", cacheLabel(cfg, noCache))
	printNextStep("Open", StyleLink.Render(serverURL(cfg.Server.Addr)))

	return g.Wait()
}

func cacheLabel(cfg config.Config, noCache bool) string {
	if noCache {
		return config.CacheNone
	}
	return cfg.Cache.Driver
}

// serverURL turns a listen address into a browsable URL.
func serverURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/"
}
