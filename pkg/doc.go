// Package pkg provides the libraries behind yuletree, an interactive
// Christmas tree whose ornaments each hold a short message.
//
// # Overview
//
// A silhouette describes the tree's outline. The layout engine fits
// ornament rows and lights inside it, the shell binds messages to the
// ornaments (and the love message to the star), and the renderer draws the
// result as SVG, a greeting page or a JSON snapshot. The packages are
// organized into three areas:
//
//  1. Domain: [silhouette], [layout], [shell], [message]
//  2. Output: [render], [pipeline], [server]
//  3. Infrastructure: [cache], [config], [errors], [observability], [buildinfo]
//
// # Data Flow
//
//	message store (memory, sqlite, mongo, http)
//	         ↓
//	    [silhouette] + [layout] (rows, ornaments, lights, snow)
//	         ↓
//	    [shell] (bind messages to items)
//	         ↓
//	    [render] (SVG, HTML, JSON)
//
// [pipeline.Runner] runs these steps and caches scenes and artifacts;
// [server] serves the artifacts over HTTP and the command line renders
// them to files.
//
// # Quick Start
//
//	store, _ := message.NewSeededMemoryStore("en")
//	runner := pipeline.NewRunner(store, cache.NewMemoryCache(64), nil, nil)
//
//	opts := pipeline.DefaultOptions()
//	opts.Formats = []string{"svg"}
//	res, _ := runner.Render(ctx, opts)
//	os.WriteFile("tree.svg", res.Artifacts[render.FormatSVG], 0o644)
//
// # Determinism
//
// Every position and animation timing derives from [layout.Hash] and the
// layout seed. The same silhouette, messages and options produce
// byte-identical output in any process, which is what makes the artifact
// cache sound.
package pkg
