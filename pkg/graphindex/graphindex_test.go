package graphindex

import (
	"sync"
	"testing"
	"time"

	"github.com/kynelabs/graphscope/api/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotWith(nodeIDs []string, edges []schemas.Edge) *schemas.Snapshot {
	snap := &schemas.Snapshot{GeneratedAt: time.Now()}
	for _, id := range nodeIDs {
		snap.Nodes = append(snap.Nodes, schemas.Node{ID: id, Label: "Doc", Title: id})
	}
	snap.Edges = edges
	return snap
}

func TestIndexDropsDanglingEdges(t *testing.T) {
	snap := snapshotWith([]string{"a", "b"}, []schemas.Edge{
		{ID: "ok", Source: "a", Target: "b", Type: "DOCUMENTS"},
		{ID: "no-src", Source: "ghost", Target: "b", Type: "DOCUMENTS"},
		{ID: "no-dst", Source: "a", Target: "ghost", Type: "DOCUMENTS"},
	})
	idx := New(snap, nil)

	assert.Equal(t, []string{"ok"}, idx.EdgeIDs())
	assert.Equal(t, 1, idx.Degree("a"))
	assert.Equal(t, 1, idx.Degree("b"))
}

func TestIndexAdjacency(t *testing.T) {
	snap := snapshotWith([]string{"a", "b", "c"}, []schemas.Edge{
		{ID: "e1", Source: "a", Target: "b", Type: "T"},
		{ID: "e2", Source: "c", Target: "a", Type: "T"},
	})
	idx := New(snap, nil)

	// Adjacency is undirected and sorted.
	assert.Equal(t, []string{"b", "c"}, idx.Neighbors("a"))
	assert.True(t, idx.IsNeighbor("a", "c"))
	assert.True(t, idx.IsNeighbor("c", "a"))
	assert.False(t, idx.IsNeighbor("b", "c"))
	assert.Equal(t, []string{"e1", "e2"}, idx.IncidentEdges("a"))
}

func TestIndexEmptySnapshot(t *testing.T) {
	idx := New(&schemas.Snapshot{}, nil)
	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.NodeIDs())

	nilIdx := New(nil, nil)
	assert.Equal(t, 0, nilIdx.Len())
}

func TestHighlighterFirstSnapshotProducesNoHighlight(t *testing.T) {
	h := NewHighlighter(time.Hour, nil, nil)
	defer h.Close()

	set := h.Observe(New(snapshotWith([]string{"1", "2", "3"}, nil), nil))
	assert.True(t, set.Empty())
	assert.True(t, h.Current().Empty())
}

func TestHighlighterDiffCorrectness(t *testing.T) {
	h := NewHighlighter(time.Hour, nil, nil)
	defer h.Close()

	h.Observe(New(snapshotWith([]string{"1", "2", "3"}, nil), nil))
	set := h.Observe(New(snapshotWith([]string{"2", "3", "4"}, nil), nil))

	// Exactly {4}: nothing for the surviving 2 and 3, nothing for the
	// removed 1.
	require.Len(t, set.Nodes, 1)
	assert.True(t, set.HasNode("4"))
	assert.Empty(t, set.Edges)
}

func TestHighlighterEdgeDiff(t *testing.T) {
	h := NewHighlighter(time.Hour, nil, nil)
	defer h.Close()

	h.Observe(New(snapshotWith([]string{"a", "b"}, []schemas.Edge{
		{ID: "e1", Source: "a", Target: "b", Type: "T"},
	}), nil))
	set := h.Observe(New(snapshotWith([]string{"a", "b"}, []schemas.Edge{
		{ID: "e1", Source: "a", Target: "b", Type: "T"},
		{ID: "e2", Source: "b", Target: "a", Type: "T"},
	}), nil))

	assert.Empty(t, set.Nodes)
	require.Len(t, set.Edges, 1)
	assert.True(t, set.HasEdge("e2"))
}

func TestHighlighterAutoClear(t *testing.T) {
	var mu sync.Mutex
	var events []HighlightSet
	h := NewHighlighter(20*time.Millisecond, func(s HighlightSet) {
		mu.Lock()
		events = append(events, s)
		mu.Unlock()
	}, nil)
	defer h.Close()

	h.Observe(New(snapshotWith([]string{"1"}, nil), nil))
	h.Observe(New(snapshotWith([]string{"1", "2"}, nil), nil))
	require.False(t, h.Current().Empty())

	assert.Eventually(t, func() bool {
		return h.Current().Empty()
	}, time.Second, 5*time.Millisecond, "highlight clears after the display duration")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, events, 2, "one set notification, one clear notification")
	assert.False(t, events[0].Empty())
	assert.True(t, events[1].Empty())
}

func TestHighlighterNewDiffSupersedesClear(t *testing.T) {
	h := NewHighlighter(80*time.Millisecond, nil, nil)
	defer h.Close()

	h.Observe(New(snapshotWith([]string{"1"}, nil), nil))
	h.Observe(New(snapshotWith([]string{"1", "2"}, nil), nil))
	time.Sleep(10 * time.Millisecond)

	// A newer diff replaces the set and restarts the clock.
	set := h.Observe(New(snapshotWith([]string{"1", "2", "3"}, nil), nil))
	require.True(t, set.HasNode("3"))
	assert.False(t, set.HasNode("2"), "only entities new relative to the immediately previous snapshot")

	time.Sleep(40 * time.Millisecond)
	assert.True(t, h.Current().HasNode("3"), "clear timer was rescheduled, not fired early")
}

func TestHighlighterEmptyDiffClearsImmediately(t *testing.T) {
	var mu sync.Mutex
	var events []HighlightSet
	h := NewHighlighter(time.Hour, func(s HighlightSet) {
		mu.Lock()
		events = append(events, s)
		mu.Unlock()
	}, nil)
	defer h.Close()

	h.Observe(New(snapshotWith([]string{"1"}, nil), nil))
	h.Observe(New(snapshotWith([]string{"1", "2"}, nil), nil))
	require.True(t, h.Current().HasNode("2"))

	// The next snapshot introduces nothing: the highlight ends now, not when
	// the hour-long timer would have fired.
	set := h.Observe(New(snapshotWith([]string{"1", "2"}, nil), nil))
	assert.True(t, set.Empty())
	assert.True(t, h.Current().Empty())

	mu.Lock()
	require.Len(t, events, 2, "one set notification, one clear notification")
	assert.True(t, events[1].Empty())
	mu.Unlock()

	// With nothing showing, further empty diffs stay silent.
	h.Observe(New(snapshotWith([]string{"1", "2"}, nil), nil))
	mu.Lock()
	assert.Len(t, events, 2)
	mu.Unlock()
}
