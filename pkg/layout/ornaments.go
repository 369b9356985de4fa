package layout

import (
	"math"

	"github.com/matzehuels/yuletree/pkg/silhouette"
)

// Item is a placed ornament. It is derived from (silhouette, index, seed)
// and never stored.
type Item struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
	// Row is the row plan entry the item was placed in, or -1 when the
	// silhouette had no usable row and the item sits at the fallback point.
	Row int `json:"row"`
}

// Slot is one precomputed ornament position.
type Slot struct {
	Row int
	X   float64
	Y   float64
	// Lo and Hi bound the usable span of the slot's row after margins.
	Lo, Hi float64
	// Step is the even spacing of the row's base positions; zero for rows
	// holding a single ornament.
	Step float64
	// Jitter is the largest horizontal offset applied to the slot.
	Jitter float64
}

// Engine places ornaments inside a silhouette. Slots are computed once in
// [NewEngine]; every method afterwards is a pure lookup, so an Engine may
// be shared between goroutines.
type Engine struct {
	boundary silhouette.Boundary
	opts     Options
	rows     []silhouette.Row
	slots    []Slot
}

// NewEngine precomputes the ornament slots for boundary b and row plan
// rows. A nil or empty plan is replaced by [AutoRows].
func NewEngine(b silhouette.Boundary, rows []silhouette.Row, opts Options) *Engine {
	opts = opts.withDefaults()
	if len(rows) == 0 {
		rows = AutoRows(b, opts)
	}
	e := &Engine{boundary: b, opts: opts, rows: rows}
	e.slots = e.computeSlots()
	return e
}

// ForSpec builds an engine from a silhouette spec, using the spec's row
// plan when it has one.
func ForSpec(spec silhouette.Spec, opts Options) *Engine {
	return NewEngine(spec.Boundary(), spec.Rows, opts)
}

// Options returns the effective options, defaults filled in.
func (e *Engine) Options() Options { return e.opts }

// Boundary returns the boundary the engine places into.
func (e *Engine) Boundary() silhouette.Boundary { return e.boundary }

// Rows returns the row plan in use.
func (e *Engine) Rows() []silhouette.Row { return append([]silhouette.Row(nil), e.rows...) }

// Slots returns the precomputed slots, top row first and left to right
// within a row.
func (e *Engine) Slots() []Slot { return append([]Slot(nil), e.slots...) }

func (e *Engine) computeSlots() []Slot {
	o := e.opts
	half := o.JitterY / 2

	var slots []Slot
	for r, row := range e.rows {
		if row.Count <= 0 {
			continue
		}
		lo, hi := bandSpan(e.boundary, row.Y-half, row.Y+half)
		lo, hi = lo+o.Margin, hi-o.Margin
		w := hi - lo
		q := min(row.Count, capacity(w, o.MinSpacing))
		if q == 0 {
			continue
		}

		var step, jitter float64
		if q > 1 {
			step = w / float64(q-1)
			jitter = math.Min(o.JitterX/2, (step-o.MinSpacing)/2)
		}
		for j := range q {
			k := uint64(len(slots))
			x := (lo + hi) / 2
			if q > 1 {
				x = lo + float64(j)*step
				x += (Seeded(o.Seed, StreamOrnamentX, k) - 0.5) * 2 * jitter
				x = math.Max(lo, math.Min(hi, x))
			}
			y := row.Y + (Seeded(o.Seed, StreamOrnamentY, k)-0.5)*o.JitterY
			slots = append(slots, Slot{Row: r, X: x, Y: y, Lo: lo, Hi: hi, Step: step, Jitter: jitter})
		}
	}
	return slots
}

// PlaceOrnament returns the position of ornament i. Indices beyond the
// slot count wrap onto existing slots; a silhouette without any usable
// slot places every ornament at the centre of its extent.
func (e *Engine) PlaceOrnament(i int) Item {
	it := Item{Index: i, Color: cycle(e.opts.Palette, i), Row: -1}
	if n := len(e.slots); n > 0 {
		s := e.slots[mod(i, n)]
		it.X, it.Y, it.Row = s.X, s.Y, s.Row
		return it
	}
	top, bottom := e.boundary.Extent()
	it.Y = (top + bottom) / 2
	it.X = silhouette.Center(e.boundary, it.Y)
	return it
}

// PlaceOrnaments returns the positions of ornaments 0..n-1.
func (e *Engine) PlaceOrnaments(n int) []Item {
	items := make([]Item, max(n, 0))
	for i := range items {
		items[i] = e.PlaceOrnament(i)
	}
	return items
}

func cycle(palette []string, i int) string {
	return palette[mod(i, len(palette))]
}

func mod(i, n int) int {
	return ((i % n) + n) % n
}
