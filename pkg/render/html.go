package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"

	"github.com/matzehuels/yuletree/pkg/errors"
	"github.com/matzehuels/yuletree/pkg/shell"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

// Page defaults.
const (
	DefaultTitle    = "My Christmas gift to you my Selsell"
	DefaultSubtitle = "Click on an ornament to reveal a special Christmas message."
	DefaultFooter   = "Made with ❤️ and Christmas spirit"
)

// PageOptions configures [RenderHTML].
type PageOptions struct {
	Title    string
	Subtitle string
	Footer   string
	Lang     string
	// Year is shown in the footer copyright line; zero omits it.
	Year int
	// Snow adds the falling snowflakes behind the page.
	Snow bool
	// SVG options for the embedded tree. Animations and interactivity are
	// always enabled.
	SVG []SVGOption
}

// DefaultPageOptions returns the greeting page defaults.
func DefaultPageOptions() PageOptions {
	return PageOptions{
		Title:    DefaultTitle,
		Subtitle: DefaultSubtitle,
		Footer:   DefaultFooter,
		Lang:     "en",
		Snow:     true,
	}
}

type pageData struct {
	Title    string
	Subtitle string
	Footer   string
	Lang     string
	Year     int
	SVG      template.HTML
	Snow     []template.CSS
	Messages map[string]string
	Burst    shell.Burst
}

// RenderHTML renders the full greeting page: header, the interactive tree,
// a hidden message dialog and the script that opens it. A scene without
// messages still renders a decorated, non-interactive tree.
func RenderHTML(s Scene, opts PageOptions) ([]byte, error) {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Lang == "" {
		opts.Lang = "en"
	}

	svgOpts := append([]SVGOption{WithAnimations(), WithInteractive()}, opts.SVG...)
	data := pageData{
		Title:    opts.Title,
		Subtitle: opts.Subtitle,
		Footer:   opts.Footer,
		Lang:     opts.Lang,
		Year:     opts.Year,
		SVG:      template.HTML(RenderSVG(s, svgOpts...)),
		Messages: make(map[string]string),
		Burst:    shell.DefaultBurst(),
	}
	for _, it := range s.Items() {
		data.Messages[strconv.Itoa(it.Message.ID)] = it.Message.Text
	}
	if opts.Snow {
		for _, f := range s.Snow {
			data.Snow = append(data.Snow, template.CSS(fmt.Sprintf(
				"left: %.1f%%; animation-duration: %.2fs; animation-delay: %.2fs; transform: scale(%.2f);",
				f.Left, f.Duration, f.Delay, f.Scale)))
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render page")
	}
	return buf.Bytes(), nil
}
