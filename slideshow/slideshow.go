// Package slideshow cycles hover-revealed thumbnail carousels. Each gallery
// entry is a container of ordered images, at most one marked current; while
// the pointer rests on the entry the marker advances circularly on a fixed
// interval, materializing lazily-loaded images the first time they are
// revealed.
//
// The controller owns an explicit state record per entry; the tree keeps
// only the current-image class as a rendering consequence. Timer and
// image-load continuations fire on their own goroutines, so a single mutex
// keeps each entry to at most one pending continuation.
package slideshow

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/net/html"

	"github.com/izum00/insidious/internal/dom"
)

const (
	// ContainerClass marks gallery entries in rendered markup.
	ContainerClass = "hover-thumbnails"
	// CurrentClass marks the image currently shown.
	CurrentClass = "current"
	// DeferredAttr holds an image source that is applied only when the
	// image is first revealed.
	DeferredAttr = "to-load"

	defaultInterval = time.Second
)

// Config controls a Controller.
type Config struct {
	// Interval between advances while the pointer stays on an entry.
	// Defaults to one second.
	Interval time.Duration

	// Clock drives the advance timers. Defaults to the wall clock; tests
	// substitute a fake.
	Clock clockwork.Clock

	Logger *slog.Logger
}

// Entry is one collected gallery container.
type Entry struct {
	// Node is the container element.
	Node *html.Node

	images []*html.Node
	loaded map[*html.Node]bool
}

// Images returns the entry's image elements in document order.
func (e *Entry) Images() []*html.Node { return e.images }

type phase int

const (
	phaseIdle phase = iota
	phaseWaitingLoad
	phaseAdvancing
)

// state is the per-entry record: tagged phase, current image index (-1 when
// none is marked), the pending timer handle, and whether the pointer is
// over the entry. At most one of timer/load-wait is ever pending.
type state struct {
	phase    phase
	current  int
	waiting  int
	timer    clockwork.Timer
	hovering bool
}

// Controller drives the slideshow state machines. Entries are independent;
// one controller serves a whole page.
type Controller struct {
	interval time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger

	mu     sync.Mutex
	states map[*Entry]*state
}

// NewController builds a Controller. The zero Config is usable.
func NewController(cfg Config) *Controller {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Controller{
		interval: cfg.Interval,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		states:   make(map[*Entry]*state),
	}
}

// Collect finds every gallery container under root and returns an Entry per
// container. Images without a deferred source are considered loaded
// already; deferred ones become loaded when ImageLoaded reports them.
func (c *Controller) Collect(root *html.Node) []*Entry {
	var entries []*Entry
	for _, n := range dom.ByClass(root, ContainerClass) {
		e := &Entry{Node: n, loaded: make(map[*html.Node]bool)}
		for _, img := range dom.ByTag(n, "img") {
			e.images = append(e.images, img)
			if _, deferred := dom.Attr(img, DeferredAttr); !deferred {
				e.loaded[img] = true
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// PointerEnter starts the slideshow for an entry. A no-op when the entry
// has no images or a cycle is already running.
func (c *Controller) PointerEnter(e *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.state(e)
	st.hovering = true
	if len(e.images) == 0 || st.phase != phaseIdle {
		return
	}
	c.start(e, st)
}

// PointerLeave stops the slideshow: the pending timer or load wait is
// dropped and the current marker removed. The entry returns to idle and can
// be re-entered indefinitely.
func (c *Controller) PointerLeave(e *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.states[e]
	if !ok {
		return
	}
	st.hovering = false
	c.stop(e, st)
}

// ImageLoaded reports a native load completion for one of the entry's
// images. The image is remembered as loaded; when the entry is suspended
// waiting on exactly that image, the cycle resumes.
func (c *Controller) ImageLoaded(e *Entry, img *html.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.states[e]
	if !ok {
		return
	}
	e.loaded[img] = true
	if st.phase == phaseWaitingLoad && e.images[st.waiting] == img {
		c.advance(e, st, st.waiting)
	}
}

func (c *Controller) state(e *Entry) *state {
	st, ok := c.states[e]
	if !ok {
		st = &state{current: -1}
		c.states[e] = st
	}
	return st
}

// start picks the next image after the current one in circular order,
// materializes its deferred source on first reveal, and either advances
// immediately or suspends until the load signal. Caller holds the lock.
func (c *Controller) start(e *Entry, st *state) {
	next := (st.current + 1) % len(e.images)
	img := e.images[next]

	if src, ok := dom.Attr(img, DeferredAttr); ok {
		dom.SetAttr(img, "src", src)
		dom.RemoveAttr(img, DeferredAttr)
	}

	if e.loaded[img] {
		c.advance(e, st, next)
		return
	}
	st.phase = phaseWaitingLoad
	st.waiting = next
	c.logger.Debug("slideshow suspended on image load", "image", next)
}

// advance moves the current marker to next and, while the pointer remains
// on the entry, schedules the following start. Caller holds the lock.
func (c *Controller) advance(e *Entry, st *state, next int) {
	if st.current >= 0 {
		dom.RemoveClass(e.images[st.current], CurrentClass)
	}
	dom.AddClass(e.images[next], CurrentClass)
	st.current = next

	if !st.hovering {
		c.stop(e, st)
		return
	}

	st.phase = phaseAdvancing
	var t clockwork.Timer
	t = c.clock.AfterFunc(c.interval, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		cur, ok := c.states[e]
		if !ok || cur.timer != t {
			// Cancelled or superseded after the timer fired.
			return
		}
		cur.timer = nil
		c.start(e, cur)
	})
	st.timer = t
}

// stop cancels the pending continuation and unmarks the current image,
// returning the entry to idle. Caller holds the lock.
func (c *Controller) stop(e *Entry, st *state) {
	if st.timer != nil {
		st.timer.Stop()
		st.timer = nil
	}
	if st.current >= 0 {
		dom.RemoveClass(e.images[st.current], CurrentClass)
	}
	st.current = -1
	st.phase = phaseIdle
}
