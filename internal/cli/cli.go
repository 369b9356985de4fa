package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/yuletree/pkg/buildinfo"
	"github.com/matzehuels/yuletree/pkg/cache"
	"github.com/matzehuels/yuletree/pkg/config"
	"github.com/matzehuels/yuletree/pkg/errors"
	"github.com/matzehuels/yuletree/pkg/message"
	"github.com/matzehuels/yuletree/pkg/message/mongo"
	"github.com/matzehuels/yuletree/pkg/message/sqlite"
	"github.com/matzehuels/yuletree/pkg/observability"
	"github.com/matzehuels/yuletree/pkg/pipeline"
	"github.com/matzehuels/yuletree/pkg/render"
	"github.com/matzehuels/yuletree/pkg/render/styles"
	"github.com/matzehuels/yuletree/pkg/silhouette"
)

// =============================================================================
// Constants
// =============================================================================

const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides the config file location (--config).
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. Debug level also routes the
// observability hooks into the log.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Register()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Yuletree renders an interactive Christmas tree of messages",
		Long: `Yuletree decorates a tree silhouette with ornaments, each holding a short
message that opens when clicked, plus twinkling lights and falling snow.
It serves the page over HTTP, renders it to files or lets you browse it
in the terminal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: ~/.config/yuletree/config.toml)")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.messagesCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("loaded config", "store", cfg.Store.Driver, "cache", cfg.Cache.Driver)
	return cfg, nil
}

// treeFlags are the scene flags shared by render, layout and browse. Flags
// left unset defer to the config file.
type treeFlags struct {
	silhouette string
	style      string
	seed       uint64
	static     bool
	noSnow     bool

	// cmd owns the flags; seed 0 is a valid layout seed, so only an
	// explicit --seed overrides the config.
	cmd *cobra.Command
}

func (f *treeFlags) register(cmd *cobra.Command) {
	f.cmd = cmd
	cmd.Flags().StringVarP(&f.silhouette, "silhouette", "s", "", "silhouette TOML file (default: the classic tree)")
	cmd.Flags().StringVar(&f.style, "style", "", "visual style: classic (default), simple")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "layout seed (default: 42)")
	cmd.Flags().BoolVar(&f.static, "static", false, "disable animations in SVG output")
	cmd.Flags().BoolVar(&f.noSnow, "no-snow", false, "disable snowfall")

	_ = cmd.RegisterFlagCompletionFunc("style", cobra.FixedCompletions(styles.Names, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.MarkFlagFilename("silhouette", "toml")
}

func (f *treeFlags) apply(cfg *config.Config) {
	if f.silhouette != "" {
		cfg.Tree.Silhouette = f.silhouette
	}
	if f.style != "" {
		cfg.Tree.Style = f.style
	}
	if f.cmd != nil && f.cmd.Flags().Changed("seed") {
		cfg.Tree.Seed = f.seed
	}
	if f.static {
		cfg.Tree.Static = true
	}
	if f.noSnow {
		cfg.Tree.Snow = false
	}
}

// pipelineOptions builds pipeline options from the configuration, loading
// the silhouette file when one is set.
func pipelineOptions(cfg config.Config) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	if cfg.Tree.Silhouette != "" {
		spec, err := silhouette.Load(cfg.Tree.Silhouette)
		if err != nil {
			return opts, err
		}
		opts.Spec = spec
	}
	opts.Style = cfg.Tree.Style
	opts.Static = cfg.Tree.Static
	opts.Snow = cfg.Tree.Snow
	opts.Scene.Layout.Seed = cfg.Tree.Seed
	opts.Scene.Lights = cfg.Tree.Lights
	opts.Scene.Snowflakes = cfg.Tree.Snowflakes
	opts.Page = render.PageOptions{
		Title:    cfg.Page.Title,
		Subtitle: cfg.Page.Subtitle,
		Footer:   cfg.Page.Footer,
		Lang:     cfg.Page.Lang,
		Year:     time.Now().Year(),
	}
	return opts, opts.ValidateAndSetDefaults()
}

// =============================================================================
// Stores, Caches and Runners
// =============================================================================

// remoteStore lists a remote server's messages. It cannot append.
type remoteStore struct {
	*message.HTTPClient
}

func (remoteStore) Create(context.Context, string) (message.Message, error) {
	return message.Message{}, errors.New(errors.ErrCodeUnsupported, "the http store is read-only")
}

func (remoteStore) Close() error { return nil }

// openStore opens the configured message store. Empty sqlite and mongo
// stores are seeded with cfg.Seed.
func openStore(ctx context.Context, cfg config.StoreConfig) (message.Store, error) {
	seed, err := message.Seed(cfg.Seed)
	if err != nil {
		return nil, err
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	switch cfg.Driver {
	case config.StoreMemory, "":
		return message.NewMemoryStore(seed), nil
	case config.StoreSQLite:
		return sqlite.Open(ctx, cfg.DSN, seed)
	case config.StoreMongo:
		return mongo.Open(ctx, cfg.DSN, cfg.Database, seed)
	case config.StoreHTTP:
		client, err := message.NewHTTPClient(cfg.DSN, cfg.Headers)
		if err != nil {
			return nil, err
		}
		return remoteStore{client}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store driver %q", cfg.Driver)
}

// openCache opens the configured artifact cache and the keyer scoping its
// keys. noCache forces the null cache.
func openCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, cache.Keyer, error) {
	keyer := cache.NewScopedKeyer(nil, cfg.Cache.Prefix)
	if noCache {
		return cache.NewNullCache(), keyer, nil
	}
	switch cfg.Cache.Driver {
	case config.CacheNone:
		return cache.NewNullCache(), keyer, nil
	case config.CacheMemory, "":
		return cache.NewMemoryCache(cfg.Cache.MaxEntries), keyer, nil
	case config.CacheFile:
		dir, err := cfg.CacheDir()
		if err != nil {
			return nil, nil, err
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, nil, err
		}
		return fc, keyer, nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.URL)
		if err != nil {
			return nil, nil, err
		}
		return rc, keyer, nil
	}
	return nil, nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache driver %q", cfg.Cache.Driver)
}

// newRunner wires a pipeline runner to the configured store and cache.
// The returned function releases both.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, func(), error) {
	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, nil, err
	}
	ch, keyer, err := openCache(ctx, cfg, noCache)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	r := pipeline.NewRunner(store, ch, keyer, c.Logger)
	if cfg.Cache.TTL > 0 {
		r.TTL = cfg.Cache.TTL
	}
	closeAll := func() {
		if err := ch.Close(); err != nil {
			c.Logger.Warn("close cache", "err", err)
		}
		if err := store.Close(); err != nil {
			c.Logger.Warn("close store", "err", err)
		}
	}
	return r, closeAll, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{string(render.FormatHTML)}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
