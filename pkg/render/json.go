package render

import (
	"encoding/json"

	"github.com/matzehuels/yuletree/pkg/layout"
	"github.com/matzehuels/yuletree/pkg/silhouette"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style  string
	indent bool
}

// WithJSONStyle records the style name in the snapshot.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONIndent pretty-prints the snapshot.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Silhouette string             `json:"silhouette"`
	Kind       silhouette.Kind    `json:"kind"`
	ViewBox    silhouette.ViewBox `json:"viewbox"`
	Style      string             `json:"style,omitempty"`
	Seed       uint64             `json:"seed"`
	Star       *jsonItem          `json:"star,omitempty"`
	Ornaments  []jsonItem         `json:"ornaments"`
	Lights     []layout.Light     `json:"lights"`
	Snowflakes []layout.Snowflake `json:"snowflakes"`
}

type jsonItem struct {
	Index   int     `json:"index"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Color   string  `json:"color,omitempty"`
	Row     int     `json:"row"`
	ID      int     `json:"id"`
	Message string  `json:"message"`
}

// RenderJSON returns a snapshot of the scene's layout.
func RenderJSON(s Scene, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Silhouette: s.Spec.Name,
		Kind:       s.Spec.Kind,
		ViewBox:    s.Spec.ViewBox,
		Style:      r.style,
		Seed:       s.Seed,
		Ornaments:  make([]jsonItem, 0, len(s.Ornaments)),
		Lights:     s.Lights,
		Snowflakes: s.Snow,
	}
	if out.Lights == nil {
		out.Lights = []layout.Light{}
	}
	if out.Snowflakes == nil {
		out.Snowflakes = []layout.Snowflake{}
	}
	if s.Star != nil {
		st := s.Spec.Star
		out.Star = &jsonItem{Index: -1, X: st.X, Y: st.Y, Color: st.Color, Row: -1, ID: s.Star.Message.ID, Message: s.Star.Message.Text}
	}
	for _, it := range s.Ornaments {
		p := it.Placed
		out.Ornaments = append(out.Ornaments, jsonItem{
			Index: p.Index, X: p.X, Y: p.Y, Color: p.Color, Row: p.Row,
			ID: it.Message.ID, Message: it.Message.Text,
		})
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
