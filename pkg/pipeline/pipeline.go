// Package pipeline provides the load → layout → render pipeline shared by
// the CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: fetch the message list; a failed fetch yields no messages
//  2. Layout: bind messages to the silhouette and place every decoration
//  3. Render: produce HTML, SVG or JSON, cached by all inputs
//
// # Usage
//
//	runner := pipeline.NewRunner(store, cache, nil, logger)
//	opts := pipeline.Options{Spec: silhouette.Default(), Formats: []string{"html"}}
//	result, err := runner.Render(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	page := result.Artifacts[render.FormatHTML]
package pipeline

import (
	"time"

	"github.com/matzehuels/yuletree/pkg/cache"
	"github.com/matzehuels/yuletree/pkg/errors"
	"github.com/matzehuels/yuletree/pkg/render"
	"github.com/matzehuels/yuletree/pkg/render/styles"
	"github.com/matzehuels/yuletree/pkg/silhouette"
)

const (
	// DefaultStyle is the default visual style.
	DefaultStyle = "classic"

	// DefaultTTL is how long rendered artifacts stay cached.
	DefaultTTL = 24 * time.Hour
)

// DefaultFormats are rendered when Options.Formats is empty.
var DefaultFormats = []string{string(render.FormatHTML)}

// Options configures one pipeline run.
type Options struct {
	// Spec is the silhouette to decorate. A zero spec selects
	// [silhouette.Default].
	Spec silhouette.Spec `json:"spec"`

	Scene render.SceneOptions `json:"scene"`

	Formats []string `json:"formats"`
	Style   string   `json:"style"`

	// Static disables the light, ornament and star animations in SVG
	// output. HTML is always animated.
	Static bool `json:"static,omitempty"`
	// Snow draws snowflakes in SVG output and behind the HTML page.
	Snow bool `json:"snow,omitempty"`

	Page render.PageOptions `json:"-"`
}

// DefaultOptions returns options for the canonical tree rendered as a page.
func DefaultOptions() Options {
	return Options{
		Spec:    silhouette.Default(),
		Scene:   render.DefaultSceneOptions(),
		Formats: DefaultFormats,
		Style:   DefaultStyle,
		Snow:    true,
		Page:    render.DefaultPageOptions(),
	}
}

// ValidateAndSetDefaults fills unset options and rejects invalid ones.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Spec.Kind == "" && len(o.Spec.Tiers) == 0 {
		o.Spec = silhouette.Default()
	}
	if err := o.Spec.Validate(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = DefaultFormats
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if _, err := styles.ByName(o.Style); err != nil {
		return err
	}
	if o.Scene.Lights < 0 || o.Scene.Snowflakes < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "lights and snowflakes must not be negative")
	}
	if o.Page.Title == "" {
		o.Page.Title = render.DefaultTitle
	}
	return nil
}

// ValidateFormats checks that every format is supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := render.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func (o *Options) sceneKeyOpts() (cache.SceneKeyOpts, error) {
	h, err := cache.HashJSON(o.Scene.Layout)
	if err != nil {
		return cache.SceneKeyOpts{}, err
	}
	return cache.SceneKeyOpts{
		Seed:       o.Scene.Layout.Seed,
		Lights:     o.Scene.Lights,
		Snowflakes: o.Scene.Snowflakes,
		Options:    h,
	}, nil
}

// pageKey covers the page fields that reach the output.
type pageKey struct {
	Title, Subtitle, Footer, Lang string
	Year                          int
}

func (o *Options) artifactKeyOpts(f render.Format) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:   string(f),
		Style:    o.Style,
		Animated: !o.Static,
		Snow:     o.Snow,
	}
	switch f {
	case render.FormatHTML:
		p := o.Page
		k.Page, _ = cache.HashJSON(pageKey{p.Title, p.Subtitle, p.Footer, p.Lang, p.Year})
		k.Animated = true
	case render.FormatJSON:
		k.Animated, k.Snow = false, false
	}
	return k
}
