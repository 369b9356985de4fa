package render

import (
	"github.com/matzehuels/yuletree/pkg/layout"
	"github.com/matzehuels/yuletree/pkg/message"
	"github.com/matzehuels/yuletree/pkg/shell"
	"github.com/matzehuels/yuletree/pkg/silhouette"
)

// Scene is everything drawn for one tree: the silhouette, the decorations
// bound to messages and the ambient lights and snow.
type Scene struct {
	Spec      silhouette.Spec
	Star      *shell.Item
	Ornaments []shell.Item
	Lights    []layout.Light
	Snow      []layout.Snowflake
	Seed      uint64
}

// SceneOptions controls scene construction.
type SceneOptions struct {
	Layout     layout.Options `json:"layout"`
	Lights     int            `json:"lights"`
	Snowflakes int            `json:"snowflakes"`
}

// DefaultSceneOptions returns the canonical layout with the default number
// of lights and snowflakes.
func DefaultSceneOptions() SceneOptions {
	return SceneOptions{
		Layout:     layout.DefaultOptions(),
		Lights:     layout.DefaultLights,
		Snowflakes: layout.DefaultSnowflakes,
	}
}

// NewScene binds msgs to the silhouette and scatters the ambient
// decorations. An empty message list yields a bare, still decorated tree.
func NewScene(spec silhouette.Spec, msgs []message.Message, opts SceneOptions) Scene {
	e := layout.ForSpec(spec, opts.Layout)
	b := shell.Bind(msgs, e)
	seed := e.Options().Seed
	return Scene{
		Spec:      spec,
		Star:      b.Star,
		Ornaments: b.Ornaments,
		Lights:    e.ScatterLights(opts.Lights),
		Snow:      layout.Snowfall(opts.Snowflakes, seed),
		Seed:      seed,
	}
}

// Items returns the clickable decorations, star first.
func (s Scene) Items() []shell.Item {
	return shell.Binding{Star: s.Star, Ornaments: s.Ornaments}.Items()
}

// Messages returns the bound messages in item order.
func (s Scene) Messages() []message.Message {
	items := s.Items()
	msgs := make([]message.Message, len(items))
	for i, it := range items {
		msgs[i] = it.Message
	}
	return msgs
}
