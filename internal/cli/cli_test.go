package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/yuletree/pkg/cache"
	"github.com/matzehuels/yuletree/pkg/config"
	"github.com/matzehuels/yuletree/pkg/errors"
	"github.com/matzehuels/yuletree/pkg/message"
	"github.com/matzehuels/yuletree/pkg/render"
	"github.com/matzehuels/yuletree/pkg/shell"
	"github.com/matzehuels/yuletree/pkg/silhouette"
)

// captureStdout redirects status output to a buffer for the rest of the
// test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

// isolate points every config and cache lookup at a fresh directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("YULETREE_CONFIG", "")
	t.Setenv("DATABASE_URL", "")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := captureStdout(t)
	c := New(&bytes.Buffer{}, log.WarnLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func defaultConfig(t *testing.T) config.Config {
	t.Helper()
	isolate(t)
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	return cfg
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"html"}},
		{"svg", []string{"svg"}},
		{"html,svg,json", []string{"html", "svg", "json"}},
		{" svg , json ", []string{"svg", "json"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
			t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, want string
	}{
		{"", "yuletree"},
		{"-", "yuletree"},
		{"card.html", "card"},
		{"out/card.svg", "out/card"},
		{"card.json", "card"},
		{"card.png", "card.png"},
		{"card", "card"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output); got != tt.want {
			t.Errorf("basePath(%q) = %q, want %q", tt.output, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	one := map[render.Format][]byte{render.FormatSVG: nil}
	many := map[render.Format][]byte{render.FormatHTML: nil, render.FormatJSON: nil}

	tests := []struct {
		name      string
		output    string
		artifacts map[render.Format][]byte
		want      map[render.Format]string
	}{
		{"single exact", "tree.image", one, map[render.Format]string{render.FormatSVG: "tree.image"}},
		{"single default", "", one, map[render.Format]string{render.FormatSVG: "yuletree.svg"}},
		{"many share base", "out/card.html", many, map[render.Format]string{
			render.FormatHTML: "out/card.html",
			render.FormatJSON: "out/card.json",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, outputPaths(tt.output, tt.artifacts)); diff != "" {
				t.Errorf("outputPaths() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTreeFlagsApply(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want config.TreeConfig
	}{
		{"unset keeps config", nil, config.TreeConfig{Style: "classic", Seed: 42, Snow: true}},
		{"explicit zero seed", []string{"--seed", "0"}, config.TreeConfig{Style: "classic", Seed: 0, Snow: true}},
		{
			"all flags",
			[]string{"-s", "tree.toml", "--style", "simple", "--seed", "7", "--static", "--no-snow"},
			config.TreeConfig{Silhouette: "tree.toml", Style: "simple", Seed: 7, Static: true, Snow: false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f treeFlags
			cmd := &cobra.Command{Use: "render"}
			f.register(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags() error = %v", err)
			}

			cfg := config.Config{Tree: config.TreeConfig{Style: "classic", Seed: 42, Snow: true}}
			f.apply(&cfg)
			if diff := cmp.Diff(tt.want, cfg.Tree); diff != "" {
				t.Errorf("apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Tree.Seed = 9
	cfg.Tree.Lights = 3
	cfg.Page.Title = "Boas Festas"

	opts, err := pipelineOptions(cfg)
	if err != nil {
		t.Fatalf("pipelineOptions() error = %v", err)
	}
	if opts.Spec.Name != silhouette.Default().Name {
		t.Errorf("Spec.Name = %q, want the default silhouette", opts.Spec.Name)
	}
	if opts.Scene.Layout.Seed != 9 || opts.Scene.Lights != 3 {
		t.Errorf("Scene = %+v, want seed 9 and 3 lights", opts.Scene)
	}
	if opts.Page.Title != "Boas Festas" || opts.Page.Year == 0 {
		t.Errorf("Page = %+v", opts.Page)
	}
}

func TestPipelineOptionsSilhouetteFile(t *testing.T) {
	cfg := defaultConfig(t)
	spec := silhouette.Default()
	spec.Name = "porch"
	data, err := silhouette.Marshal(spec)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "porch.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.Tree.Silhouette = path

	opts, err := pipelineOptions(cfg)
	if err != nil {
		t.Fatalf("pipelineOptions() error = %v", err)
	}
	if opts.Spec.Name != "porch" {
		t.Errorf("Spec.Name = %q, want %q", opts.Spec.Name, "porch")
	}

	cfg.Tree.Silhouette = filepath.Join(t.TempDir(), "missing.toml")
	if _, err := pipelineOptions(cfg); err == nil {
		t.Error("pipelineOptions() with a missing silhouette succeeded")
	}
}

func TestPipelineOptionsBadStyle(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Tree.Style = "baroque"
	if _, err := pipelineOptions(cfg); err == nil {
		t.Error("pipelineOptions() accepted an unknown style")
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		cfg  config.StoreConfig
		want int
	}{
		{"memory", config.StoreConfig{Driver: config.StoreMemory, Seed: "en"}, 12},
		{"sqlite", config.StoreConfig{Driver: config.StoreSQLite, Seed: "pt", DSN: filepath.Join(t.TempDir(), "m.db")}, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := openStore(ctx, tt.cfg)
			if err != nil {
				t.Fatalf("openStore() error = %v", err)
			}
			defer store.Close()

			msgs, err := store.List(ctx)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(msgs) != tt.want {
				t.Errorf("List() returned %d messages, want %d", len(msgs), tt.want)
			}
		})
	}
}

func TestOpenStoreErrors(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		cfg  config.StoreConfig
		code errors.Code
	}{
		{"unknown driver", config.StoreConfig{Driver: "etcd"}, errors.ErrCodeInvalidConfig},
		{"unknown seed", config.StoreConfig{Driver: config.StoreMemory, Seed: "xx"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := openStore(ctx, tt.cfg)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("openStore() code = %v, want %v (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestRemoteStoreIsReadOnly(t *testing.T) {
	store, err := openStore(context.Background(), config.StoreConfig{Driver: config.StoreHTTP, DSN: "http://127.0.0.1:1"})
	if err != nil {
		t.Fatalf("openStore() error = %v", err)
	}
	defer store.Close()

	_, err = store.Create(context.Background(), "hello")
	if got := errors.GetCode(err); got != errors.ErrCodeUnsupported {
		t.Errorf("Create() code = %v, want %v", got, errors.ErrCodeUnsupported)
	}
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()
	cfg := defaultConfig(t)
	cfg.Cache.Dir = t.TempDir()

	tests := []struct {
		name    string
		driver  string
		noCache bool
		check   func(cache.Cache) bool
	}{
		{"none", config.CacheNone, false, func(c cache.Cache) bool { _, ok := c.(cache.NullCache); return ok }},
		{"memory", config.CacheMemory, false, func(c cache.Cache) bool { _, ok := c.(*cache.MemoryCache); return ok }},
		{"file", config.CacheFile, false, func(c cache.Cache) bool { _, ok := c.(*cache.FileCache); return ok }},
		{"no-cache wins", config.CacheFile, true, func(c cache.Cache) bool { _, ok := c.(cache.NullCache); return ok }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg.Cache.Driver = tt.driver
			c, keyer, err := openCache(ctx, cfg, tt.noCache)
			if err != nil {
				t.Fatalf("openCache() error = %v", err)
			}
			defer c.Close()
			if keyer == nil {
				t.Error("openCache() returned a nil keyer")
			}
			if !tt.check(c) {
				t.Errorf("openCache() = %T", c)
			}
		})
	}

	cfg.Cache.Driver = "memcached"
	if _, _, err := openCache(ctx, cfg, false); errors.GetCode(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("openCache(memcached) error = %v, want INVALID_CONFIG", err)
	}
}

func TestServerURL(t *testing.T) {
	tests := []struct{ addr, want string }{
		{":8080", "http://localhost:8080/"},
		{"127.0.0.1:9000", "http://127.0.0.1:9000/"},
	}
	for _, tt := range tests {
		if got := serverURL(tt.addr); got != tt.want {
			t.Errorf("serverURL(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"Smile", 10, "Smile"},
		{"Merry Christmas", 6, "Merry…"},
		{"Feliz Natal é já", 13, "Feliz Natal …"},
	}
	for _, tt := range tests {
		if got := truncate(tt.s, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
		}
	}
}

func TestConfetti(t *testing.T) {
	b := shell.Burst{OriginX: 0.5, Colors: []string{"#ff0000", "#00ff00"}, ParticleCount: 20}

	got := confetti(b, 40)
	particles := strings.TrimLeft(got, " ")
	if pad := len(got) - len(particles); pad != 15 {
		t.Errorf("confetti() padding = %d, want 15", pad)
	}
	if n := utf8.RuneCountInString(particles); n != 10 {
		t.Errorf("confetti() drew %d particles, want 10", n)
	}

	if got := confetti(shell.Burst{ParticleCount: 20}, 40); got != "" {
		t.Errorf("confetti() without colours = %q, want empty", got)
	}
}

func testScene(t *testing.T) render.Scene {
	t.Helper()
	msgs, err := message.Seed("en")
	if err != nil {
		t.Fatal(err)
	}
	return render.NewScene(silhouette.Default(), msgs, render.DefaultSceneOptions())
}

func press(m browseModel, msg tea.KeyMsg) browseModel {
	next, _ := m.Update(msg)
	return next.(browseModel)
}

func TestBrowseModel(t *testing.T) {
	scene := testScene(t)
	m := newBrowseModel(scene)

	if _, ok := m.shell.Selected(); ok {
		t.Fatal("new model has a selection")
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Fatalf("cursor after down = %d, want 1", m.cursor)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	want := m.items[1].Message
	got, ok := m.shell.Selected()
	if !ok || got != want {
		t.Fatalf("Selected() = %v, %v, want %v", got, ok, want)
	}
	if m.bursts.last == nil {
		t.Error("selecting an ornament requested no burst")
	}
	if view := m.View(); !strings.Contains(view, want.Text) {
		t.Errorf("View() does not show %q", want.Text)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := m.shell.Selected(); ok {
		t.Error("esc did not dismiss the message")
	}
	if view := m.View(); strings.Contains(view, want.Text) {
		t.Errorf("View() still shows %q after esc", want.Text)
	}
}

func TestBrowseModelBurstFollowsWidth(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		wantCount int
	}{
		{"initial", 0, 60},
		{"wide", 120, 120},
		{"narrow", 4, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newBrowseModel(testScene(t))
			if tt.width > 0 {
				next, _ := m.Update(tea.WindowSizeMsg{Width: tt.width, Height: 30})
				m = next.(browseModel)
			}
			m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

			if m.bursts.last == nil {
				t.Fatal("selecting the star requested no burst")
			}
			if got := m.bursts.last.ParticleCount; got != tt.wantCount {
				t.Errorf("ParticleCount = %d, want %d", got, tt.wantCount)
			}
			if diff := cmp.Diff(shell.BurstColors, m.bursts.last.Colors); diff != "" {
				t.Errorf("burst colors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBrowseModelStar(t *testing.T) {
	m := press(newBrowseModel(testScene(t)), tea.KeyMsg{Type: tea.KeyEnter})

	got, ok := m.shell.Selected()
	if !ok || !shell.IsLoveMessage(got.Text) {
		t.Errorf("Selected() = %v, %v, want the love message on the star", got, ok)
	}
}

func TestBrowseModelScrolls(t *testing.T) {
	m := newBrowseModel(testScene(t))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 16})
	m = next.(browseModel)
	if m.height != 5 {
		t.Fatalf("height = %d, want the minimum 5", m.height)
	}

	for range 7 {
		m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != 7 || m.offset != 3 {
		t.Errorf("cursor, offset = %d, %d, want 7, 3", m.cursor, m.offset)
	}
	for range 20 {
		m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	}
	if m.cursor != 0 || m.offset != 0 {
		t.Errorf("cursor, offset = %d, %d, want 0, 0", m.cursor, m.offset)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("q did not quit")
	}
}

func TestRenderCommand(t *testing.T) {
	dir := isolate(t)

	tests := []struct {
		name  string
		args  []string
		files []string
	}{
		{"single exact path", []string{"-f", "svg", "-o", filepath.Join(dir, "a", "card.svg")}, []string{"a/card.svg"}},
		{"many formats", []string{"-f", "html,json", "-o", filepath.Join(dir, "b", "card")}, []string{"b/card.html", "b/card.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"render", "--no-cache"}, tt.args...)...)
			if err != nil {
				t.Fatalf("render error = %v", err)
			}
			for _, f := range tt.files {
				path := filepath.Join(dir, f)
				data, err := os.ReadFile(path)
				if err != nil {
					t.Errorf("missing %s: %v", f, err)
					continue
				}
				if len(data) == 0 {
					t.Errorf("%s is empty", f)
				}
				if !strings.Contains(out, path) {
					t.Errorf("output does not list %s:\n%s", path, out)
				}
			}
		})
	}
}

func TestRenderCommandStdout(t *testing.T) {
	isolate(t)
	out, err := execute(t, "render", "--no-cache", "-f", "svg", "-o", "-")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if !strings.Contains(out, "<svg") {
		t.Errorf("stdout does not hold an SVG document: %.80q", out)
	}

	_, err = execute(t, "render", "--no-cache", "-f", "svg,json", "-o", "-")
	if errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("render -o - with two formats error = %v, want INVALID_INPUT", err)
	}
}

func TestRenderCommandBadFormat(t *testing.T) {
	isolate(t)
	if _, err := execute(t, "render", "-f", "pdf"); err == nil {
		t.Error("render -f pdf succeeded")
	}
}

func TestMessagesListJSON(t *testing.T) {
	isolate(t)
	out, err := execute(t, "messages", "list", "--json")
	if err != nil {
		t.Fatalf("messages list error = %v", err)
	}
	var msgs []message.Message
	if err := json.Unmarshal([]byte(out), &msgs); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(msgs) != 12 || msgs[0] != (message.Message{ID: 1, Text: "I love you"}) {
		t.Errorf("messages = %v", msgs)
	}
}

func TestMessagesAddSQLite(t *testing.T) {
	dir := isolate(t)
	t.Setenv("YULETREE_STORE_DRIVER", config.StoreSQLite)
	t.Setenv("YULETREE_STORE_DSN", filepath.Join(dir, "messages.db"))

	if _, err := execute(t, "messages", "add", "Boas", "festas!"); err != nil {
		t.Fatalf("messages add error = %v", err)
	}
	out, err := execute(t, "messages", "list", "--json")
	if err != nil {
		t.Fatalf("messages list error = %v", err)
	}
	var msgs []message.Message
	if err := json.Unmarshal([]byte(out), &msgs); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	last := msgs[len(msgs)-1]
	if last != (message.Message{ID: 13, Text: "Boas festas!"}) {
		t.Errorf("last message = %v, want id 13 %q", last, "Boas festas!")
	}
}

func TestLayoutCommandJSON(t *testing.T) {
	isolate(t)
	out, err := execute(t, "layout", "--json", "--seed", "7")
	if err != nil {
		t.Fatalf("layout error = %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(doc) == 0 {
		t.Error("layout snapshot is empty")
	}
}

func TestLayoutCommandTable(t *testing.T) {
	isolate(t)
	out, err := execute(t, "layout")
	if err != nil {
		t.Fatalf("layout error = %v", err)
	}
	for _, want := range []string{"star", "ornament", "I love you", "seed 42"} {
		if !strings.Contains(out, want) {
			t.Errorf("layout output missing %q", want)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	dir := isolate(t)
	cacheDir := filepath.Join(dir, "cache", "yuletree")

	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error = %v", err)
	}
	if got := strings.TrimSpace(out); got != cacheDir {
		t.Errorf("cache path = %q, want %q", got, cacheDir)
	}

	out, err = execute(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error = %v", err)
	}
	if !strings.Contains(out, "empty") {
		t.Errorf("cache clear on a missing dir = %q", out)
	}

	t.Setenv("YULETREE_CACHE_DRIVER", config.CacheFile)
	if _, err := execute(t, "render", "-f", "svg", "-o", filepath.Join(dir, "tree.svg")); err != nil {
		t.Fatalf("render error = %v", err)
	}
	out, err = execute(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error = %v", err)
	}
	if strings.Contains(out, "Cleared 0 ") || !strings.Contains(out, "Cleared") {
		t.Errorf("cache clear after render = %q", out)
	}
}
