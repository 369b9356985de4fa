package pipeline

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/yuletree/pkg/cache"
	"github.com/matzehuels/yuletree/pkg/message"
	"github.com/matzehuels/yuletree/pkg/observability"
	"github.com/matzehuels/yuletree/pkg/render"
)

// Runner executes the pipeline with caching.
//
// The Runner keeps no per-run state, so one Runner may serve concurrent
// requests with different options.
type Runner struct {
	Store  message.Lister
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL of cached artifacts; zero selects DefaultTTL.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the default keyer and a nil logger discards output. A nil store
// renders trees without messages.
func NewRunner(store message.Lister, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Store: store, Cache: c, Keyer: keyer, Logger: logger, TTL: DefaultTTL}
}

// Result is the outcome of [Runner.Render].
type Result struct {
	Scene     render.Scene
	Artifacts map[render.Format][]byte
	// CacheHits lists the formats served from the cache.
	CacheHits []render.Format
	Stats     Stats
}

// Stats records stage durations.
type Stats struct {
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
	Messages   int
}

// observedLister reports each listing to the pipeline hooks.
type observedLister struct {
	inner message.Lister
}

func (o observedLister) List(ctx context.Context) ([]message.Message, error) {
	start := time.Now()
	msgs, err := o.inner.List(ctx)
	observability.Pipeline().OnMessagesLoaded(ctx, fmt.Sprintf("%T", o.inner), len(msgs), time.Since(start), err)
	return msgs, err
}

// Messages loads the message list. Failures are logged and yield an empty
// list.
func (r *Runner) Messages(ctx context.Context) []message.Message {
	var l message.Lister
	if r.Store != nil {
		l = observedLister{inner: r.Store}
	}
	return message.Fetch(ctx, l, r.Logger)
}

// Scene loads the messages and lays out the tree.
func (r *Runner) Scene(ctx context.Context, opts Options) (render.Scene, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return render.Scene{}, fmt.Errorf("invalid options: %w", err)
	}
	s, _, err := r.scene(ctx, opts)
	return s, err
}

func (r *Runner) scene(ctx context.Context, opts Options) (render.Scene, Stats, error) {
	var stats Stats

	start := time.Now()
	msgs := r.Messages(ctx)
	stats.LoadTime = time.Since(start)
	stats.Messages = len(msgs)

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Spec.Name, len(msgs))
	start = time.Now()
	s := render.NewScene(opts.Spec, msgs, opts.Scene)
	stats.LayoutTime = time.Since(start)
	hooks.OnLayoutComplete(ctx, opts.Spec.Name, stats.LayoutTime, nil)

	r.Logger.Debug("computed layout",
		"silhouette", opts.Spec.Name,
		"messages", len(msgs),
		"ornaments", len(s.Ornaments),
		"lights", len(s.Lights),
		"duration", stats.LayoutTime)
	return s, stats, nil
}

// Render runs the whole pipeline and returns one artifact per requested
// format. Artifacts are looked up in the cache first; misses are rendered
// and stored.
func (r *Runner) Render(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	s, stats, err := r.scene(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result := &Result{Scene: s, Artifacts: make(map[render.Format][]byte), Stats: stats}

	sceneKey, err := r.sceneKey(opts, s)
	if err != nil {
		return nil, fmt.Errorf("cache key: %w", err)
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() {
		result.Stats.RenderTime = time.Since(start)
		hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	}()

	for _, name := range opts.Formats {
		f, perr := render.ParseFormat(name)
		if perr != nil {
			err = perr
			return nil, err
		}
		if _, done := result.Artifacts[f]; done {
			continue
		}
		data, hit, rerr := r.artifact(ctx, s, f, sceneKey, opts)
		if rerr != nil {
			err = fmt.Errorf("render %s: %w", f, rerr)
			return nil, err
		}
		result.Artifacts[f] = data
		if hit {
			result.CacheHits = append(result.CacheHits, f)
		}
	}

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", len(result.CacheHits),
		"duration", time.Since(start))
	return result, nil
}

func (r *Runner) sceneKey(opts Options, s render.Scene) (string, error) {
	specHash, err := cache.HashJSON(opts.Spec)
	if err != nil {
		return "", err
	}
	msgHash, err := cache.HashJSON(s.Messages())
	if err != nil {
		return "", err
	}
	ko, err := opts.sceneKeyOpts()
	if err != nil {
		return "", err
	}
	return r.Keyer.SceneKey(specHash, msgHash, ko), nil
}

// artifact returns the cached artifact for f or renders and stores it.
// Cache failures are logged and never fail the render.
func (r *Runner) artifact(ctx context.Context, s render.Scene, f render.Format, sceneKey string, opts Options) ([]byte, bool, error) {
	key := r.Keyer.ArtifactKey(sceneKey, opts.artifactKeyOpts(f))
	ch := observability.Cache()

	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "format", f, "err", err)
	}
	if ok {
		ch.OnCacheHit(ctx, "artifact")
		return data, true, nil
	}
	ch.OnCacheMiss(ctx, "artifact")

	data, err = renderFormat(s, f, opts)
	if err != nil {
		return nil, false, err
	}

	ttl := r.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "format", f, "err", err)
	} else {
		ch.OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

// HasHit reports whether format f was served from the cache.
func (res *Result) HasHit(f render.Format) bool {
	return slices.Contains(res.CacheHits, f)
}
