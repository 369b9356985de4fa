package pipeline

import (
	"fmt"

	"github.com/matzehuels/yuletree/pkg/errors"
	"github.com/matzehuels/yuletree/pkg/render"
	"github.com/matzehuels/yuletree/pkg/render/styles"
)

// RenderScene produces one artifact per requested format, bypassing the
// cache. Options must have been validated.
func RenderScene(s render.Scene, opts Options) (map[render.Format][]byte, error) {
	artifacts := make(map[render.Format][]byte, len(opts.Formats))
	for _, name := range opts.Formats {
		f, err := render.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		data, err := renderFormat(s, f, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f, err)
		}
		artifacts[f] = data
	}
	return artifacts, nil
}

func renderFormat(s render.Scene, f render.Format, opts Options) ([]byte, error) {
	style, err := styles.ByName(opts.Style)
	if err != nil {
		return nil, err
	}

	switch f {
	case render.FormatSVG:
		return render.RenderSVG(s, svgOptions(style, opts)...), nil
	case render.FormatHTML:
		page := opts.Page
		page.Snow = opts.Snow
		page.SVG = append([]render.SVGOption{render.WithStyle(style)}, opts.Page.SVG...)
		return render.RenderHTML(s, page)
	case render.FormatJSON:
		return render.RenderJSON(s, render.WithJSONStyle(style.Name()), render.WithJSONIndent())
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %s", f)
}

func svgOptions(style styles.Style, opts Options) []render.SVGOption {
	out := []render.SVGOption{render.WithStyle(style)}
	if !opts.Static {
		out = append(out, render.WithAnimations())
	}
	if opts.Snow {
		out = append(out, render.WithSnow())
	}
	return out
}
