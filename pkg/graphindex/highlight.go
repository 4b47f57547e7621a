// -- pkg/graphindex/highlight.go --
package graphindex

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// HighlightSet is the transient set of node/edge IDs newly introduced by the
// most recent snapshot diff.
type HighlightSet struct {
	Nodes map[string]struct{}
	Edges map[string]struct{}
}

// Empty reports whether the set highlights nothing.
func (h HighlightSet) Empty() bool {
	return len(h.Nodes) == 0 && len(h.Edges) == 0
}

// HasNode reports whether the node is highlighted.
func (h HighlightSet) HasNode(id string) bool {
	_, ok := h.Nodes[id]
	return ok
}

// HasEdge reports whether the edge is highlighted.
func (h HighlightSet) HasEdge(id string) bool {
	_, ok := h.Edges[id]
	return ok
}

// Highlighter diffs consecutive snapshot indexes and holds the resulting
// HighlightSet until the fixed display duration elapses or the next diff
// arrives, whichever comes first. A non-empty diff replaces the set and
// restarts the timer; an empty diff clears it. The very first index observed
// in a session produces no highlight.
type Highlighter struct {
	mu       sync.Mutex
	duration time.Duration
	prev     *Index
	current  HighlightSet
	timer    *time.Timer
	onChange func(HighlightSet)
	closed   bool
	log      *zap.Logger
}

// NewHighlighter creates a Highlighter. onChange, when non-nil, is invoked on
// every highlight change, including the automatic clear.
func NewHighlighter(duration time.Duration, onChange func(HighlightSet), logger *zap.Logger) *Highlighter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Highlighter{
		duration: duration,
		onChange: onChange,
		log:      logger.Named("highlighter"),
	}
}

// Observe feeds the next snapshot index into the differ. It returns the
// HighlightSet that resulted (possibly empty).
func (h *Highlighter) Observe(idx *Index) HighlightSet {
	h.mu.Lock()
	prev := h.prev
	h.prev = idx

	if prev == nil || idx == nil {
		h.mu.Unlock()
		return HighlightSet{}
	}

	set := HighlightSet{
		Nodes: diffIDs(idx.NodeIDs(), prev.nodes),
		Edges: diffIDs(idx.EdgeIDs(), prev.edges),
	}

	// Every diff replaces the active set: an empty diff clears a still-showing
	// highlight instead of letting it run out its timer.
	if set.Empty() {
		if h.timer != nil {
			h.timer.Stop()
			h.timer = nil
		}
		hadHighlight := !h.current.Empty()
		h.current = HighlightSet{}
		notify := h.onChange
		h.mu.Unlock()

		if hadHighlight && notify != nil {
			notify(HighlightSet{})
		}
		return set
	}

	h.current = set
	if h.timer != nil {
		h.timer.Stop()
	}
	if !h.closed {
		h.timer = time.AfterFunc(h.duration, h.clear)
	}
	notify := h.onChange
	h.mu.Unlock()

	h.log.Debug("New entities highlighted",
		zap.Int("nodes", len(set.Nodes)),
		zap.Int("edges", len(set.Edges)))
	if notify != nil {
		notify(set)
	}
	return set
}

// Current returns the active HighlightSet, which may be empty.
func (h *Highlighter) Current() HighlightSet {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Close stops the pending clear timer. The highlighter must not be observed
// again afterwards.
func (h *Highlighter) Close() {
	h.mu.Lock()
	h.closed = true
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	h.mu.Unlock()
}

func (h *Highlighter) clear() {
	h.mu.Lock()
	if h.current.Empty() {
		h.mu.Unlock()
		return
	}
	h.current = HighlightSet{}
	notify := h.onChange
	h.mu.Unlock()

	if notify != nil {
		notify(HighlightSet{})
	}
}

// diffIDs returns the members of current that are absent from prev.
func diffIDs[V any](current []string, prev map[string]V) map[string]struct{} {
	out := make(map[string]struct{})
	for _, id := range current {
		if _, ok := prev[id]; !ok {
			out[id] = struct{}{}
		}
	}
	return out
}
