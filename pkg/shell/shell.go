// Package shell binds messages to placed decorations and tracks which
// message is currently shown.
//
// The shell has no knowledge of any rendering framework: clicks arrive as
// a typed [ClickEvent] and the celebratory particle burst is requested
// through the [Celebrator] interface. The web page mirrors the same
// behaviour in its inline script; the terminal browser drives a [Shell]
// directly.
package shell

import (
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/yuletree/pkg/layout"
	"github.com/matzehuels/yuletree/pkg/message"
)

// Kind tells ornaments and the star topper apart.
type Kind int

const (
	KindOrnament Kind = iota
	KindStar
)

func (k Kind) String() string {
	if k == KindStar {
		return "star"
	}
	return "ornament"
}

// Item is a clickable decoration bound to a message.
type Item struct {
	Kind    Kind
	Placed  layout.Item
	Message message.Message
}

// loveMarkers select the message shown on the star topper.
var loveMarkers = []string{"i love you", "amo você"}

// IsLoveMessage reports whether text is a declaration of love, matched
// case-insensitively.
func IsLoveMessage(text string) bool {
	t := strings.ToLower(text)
	for _, m := range loveMarkers {
		if strings.Contains(t, m) {
			return true
		}
	}
	return false
}

// Binding is the result of [Bind].
type Binding struct {
	// Star is bound to the first love message, if any.
	Star *Item
	// Ornaments hold the remaining messages in order.
	Ornaments []Item
}

// Items returns the star (when bound) followed by the ornaments.
func (b Binding) Items() []Item {
	items := make([]Item, 0, len(b.Ornaments)+1)
	if b.Star != nil {
		items = append(items, *b.Star)
	}
	return append(items, b.Ornaments...)
}

// Bind places msgs on the tree. The first love message goes on the star;
// every other message becomes ornament 0..n-1 in order, positioned by e.
func Bind(msgs []message.Message, e *layout.Engine) Binding {
	var b Binding
	for _, m := range msgs {
		if b.Star == nil && IsLoveMessage(m.Text) {
			b.Star = &Item{Kind: KindStar, Placed: layout.Item{Index: -1, Row: -1}, Message: m}
			continue
		}
		i := len(b.Ornaments)
		b.Ornaments = append(b.Ornaments, Item{Kind: KindOrnament, Placed: e.PlaceOrnament(i), Message: m})
	}
	return b
}

// Shell holds the single selection. It is safe for concurrent use.
type Shell struct {
	mu        sync.Mutex
	selected  *message.Message
	celebrate Celebrator
	burst     Burst
}

// New returns a shell that requests bursts from c. A nil celebrator
// disables the bursts; selection still works.
func New(c Celebrator) *Shell {
	return &Shell{celebrate: c, burst: DefaultBurst()}
}

// SetBurst replaces the burst parameters used for future selections.
func (s *Shell) SetBurst(b Burst) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.burst = b
}

// SelectItem shows item's message and requests a burst at the click's
// normalised position. The selection is made before the burst is
// requested and never depends on it.
func (s *Shell) SelectItem(item Item, ev ClickEvent) {
	s.mu.Lock()
	m := item.Message
	s.selected = &m
	b := s.burst
	c := s.celebrate
	s.mu.Unlock()

	b.Colors = slices.Clone(b.Colors)
	b.OriginX, b.OriginY = ev.Normalize()
	celebrate(c, b)
}

// Dismiss clears the selection.
func (s *Shell) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// Selected returns the shown message and whether one is shown.
func (s *Shell) Selected() (message.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return message.Message{}, false
	}
	return *s.selected, true
}
