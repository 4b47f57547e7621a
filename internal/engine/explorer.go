// -- internal/engine/explorer.go --

// Package engine wires the snapshot client, layout engine, viewport,
// interaction session, diff/highlight engine and filter/time-travel state
// into one explorer. The explorer owns all mutable state; collaborators only
// see immutable snapshots of it.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/kynelabs/graphscope/api/schemas"
	"github.com/kynelabs/graphscope/internal/config"
	"github.com/kynelabs/graphscope/pkg/graphindex"
	"github.com/kynelabs/graphscope/pkg/interaction"
	"github.com/kynelabs/graphscope/pkg/layout"
	"github.com/kynelabs/graphscope/pkg/render"
	"github.com/kynelabs/graphscope/pkg/viewport"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"
)

// Fetcher is the slice of the snapshot client the explorer needs. Narrowed
// to an interface so tests can substitute a fake backend.
type Fetcher interface {
	Fetch(ctx context.Context, cfg schemas.RequestConfig) (*schemas.Snapshot, schemas.RequestInfo, error)
	URL(cfg schemas.RequestConfig) (string, error)
	Abort()
}

// Explorer is the orchestrator behind one graph view.
type Explorer struct {
	cfg    *config.Config
	log    *zap.Logger
	client Fetcher

	cam         *viewport.Camera
	session     *interaction.Session
	highlighter *graphindex.Highlighter

	mu        sync.Mutex
	snapshot  *schemas.Snapshot
	idx       *graphindex.Index
	positions map[string]r2.Vec
	layoutKey string
	strategy  layout.Strategy

	modality   string // "" means show all
	limit      int
	snapshotAt *time.Time // nil means live
	rootNodeID string     // "" for the overview mode

	selected    string
	lastRequest *schemas.RequestInfo

	replayStop chan struct{}
	wg         sync.WaitGroup
	closed     bool

	subMu       sync.Mutex
	subscribers []func(Event)
}

// New creates an explorer from configuration and a snapshot fetcher.
func New(cfg *config.Config, client Fetcher, logger *zap.Logger) *Explorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	strategy, err := layout.ParseStrategy(cfg.Layout.Strategy)
	if err != nil {
		strategy = layout.StrategyRadial
	}

	e := &Explorer{
		cfg:      cfg,
		log:      logger.Named("explorer"),
		client:   client,
		strategy: strategy,
		limit:    cfg.Filters.ClampLimit(cfg.Filters.DefaultLimit),
	}
	e.cam = viewport.New(viewport.Options{
		Width:    cfg.Viewport.Width,
		Height:   cfg.Viewport.Height,
		MinScale: cfg.Viewport.MinScale,
		MaxScale: cfg.Viewport.MaxScale,
		Padding:  cfg.Viewport.Padding,
		Locked:   cfg.Viewport.Locked,
	})
	e.session = interaction.NewSession(interaction.Options{
		Camera:         e.cam,
		NodePickRadius: cfg.Interaction.NodePickRadius,
		EdgePickRadius: cfg.Interaction.EdgePickRadius,
		DragThreshold:  cfg.Interaction.DragThreshold,
		OnSelect:       e.onSelect,
		OnHoverChange:  func(interaction.Hover) { e.publish(Event{Kind: EventHover}) },
		Logger:         logger,
	})
	e.highlighter = graphindex.NewHighlighter(
		cfg.Highlight.Duration,
		func(graphindex.HighlightSet) { e.publish(Event{Kind: EventHighlight}) },
		logger,
	)
	return e
}

// Subscribe registers a callback for state-change notifications. Callbacks
// must be quick; they run on whichever goroutine produced the change.
func (e *Explorer) Subscribe(fn func(Event)) {
	e.subMu.Lock()
	e.subscribers = append(e.subscribers, fn)
	e.subMu.Unlock()
}

func (e *Explorer) publish(ev Event) {
	e.subMu.Lock()
	subs := make([]func(Event), len(e.subscribers))
	copy(subs, e.subscribers)
	e.subMu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

// Camera exposes the viewport for the host's renderer and input wiring.
func (e *Explorer) Camera() *viewport.Camera { return e.cam }

// Session exposes the pointer state machine for the host's input wiring.
func (e *Explorer) Session() *interaction.Session { return e.session }

// RequestConfig materializes the current controller state into a request.
func (e *Explorer) RequestConfig() schemas.RequestConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.requestConfigLocked()
}

func (e *Explorer) requestConfigLocked() schemas.RequestConfig {
	var modalities []string
	if e.modality != "" {
		modalities = []string{e.modality}
	}
	return schemas.RequestConfig{
		Mode:       e.cfg.API.Mode,
		Depth:      e.cfg.API.Depth,
		ProjectID:  e.cfg.API.ProjectID,
		RootNodeID: e.rootNodeID,
		Filters: schemas.FilterState{
			Modalities: modalities,
			Limit:      e.limit,
			SnapshotAt: e.snapshotAt,
		},
	}
}

// Refresh fetches a snapshot for the current state and applies it. Aborted
// (superseded) fetches are dropped silently; failures are captured into the
// request state, never returned as panics or surfaced twice.
func (e *Explorer) Refresh(ctx context.Context) error {
	cfg := e.RequestConfig()
	snap, info, err := e.client.Fetch(ctx, cfg)

	// A superseded fetch leaves no trace: the request that replaced it owns
	// the user-visible request state.
	if info.Status == schemas.RequestAborted {
		return nil
	}

	e.mu.Lock()
	e.lastRequest = &info
	e.mu.Unlock()
	e.publish(Event{Kind: EventRequest})

	if err != nil {
		e.log.Warn("Snapshot fetch failed",
			zap.String("kind", string(info.ErrorKind)),
			zap.String("error", info.ErrorMessage))
		return err
	}
	e.apply(snap)
	return nil
}

// refreshAsync runs Refresh on its own goroutine, for UI-thread callers.
func (e *Explorer) refreshAsync() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.wg.Add(1)
	e.mu.Unlock()

	go func() {
		defer e.wg.Done()
		_ = e.Refresh(context.Background())
	}()
}

// apply installs a new snapshot: rebuild the index, diff for highlights,
// re-layout only when the node-id set (or strategy) changed, and refit the
// camera on layout changes.
func (e *Explorer) apply(snap *schemas.Snapshot) {
	idx := graphindex.New(snap, e.log)

	e.mu.Lock()
	e.snapshot = snap
	e.idx = idx

	key := layout.Fingerprint(idx.NodeIDs(), e.strategy)
	layoutChanged := key != e.layoutKey
	if layoutChanged {
		e.layoutKey = key
		e.positions = layout.Compute(snap.Nodes, e.strategy, e.layoutConfigLocked())
	}
	positions := e.positions
	e.mu.Unlock()

	// Diff after install so the very first snapshot yields no highlight.
	e.highlighter.Observe(idx)
	e.session.UpdateGraph(idx, positions)

	if layoutChanged {
		e.FocusAll()
	}
	e.publish(Event{Kind: EventSnapshot})
}

func (e *Explorer) layoutConfigLocked() layout.Config {
	return layout.Config{
		AnchorLabels:  e.cfg.Layout.AnchorLabels,
		Aliases:       e.cfg.Layout.Aliases,
		ColumnOrder:   e.cfg.Layout.ColumnOrder,
		ColumnSpacing: e.cfg.Layout.ColumnSpacing,
		RowSpacing:    e.cfg.Layout.RowSpacing,
	}
}

// SetStrategy switches the layout strategy and recomputes positions for the
// current node set.
func (e *Explorer) SetStrategy(s layout.Strategy) {
	e.mu.Lock()
	if s == e.strategy {
		e.mu.Unlock()
		return
	}
	e.strategy = s
	var positions map[string]r2.Vec
	if e.snapshot != nil {
		e.layoutKey = layout.Fingerprint(e.idx.NodeIDs(), s)
		e.positions = layout.Compute(e.snapshot.Nodes, s, e.layoutConfigLocked())
		positions = e.positions
	}
	idx := e.idx
	e.mu.Unlock()

	if idx != nil {
		e.session.UpdateGraph(idx, positions)
		e.FocusAll()
	}
	e.publish(Event{Kind: EventSnapshot})
}

// FocusAll fits the camera to every positioned node.
func (e *Explorer) FocusAll() {
	e.FocusNodes(nil)
}

// FocusNodes fits the camera to the given node IDs, or to all nodes when the
// list is nil/empty entries are skipped.
func (e *Explorer) FocusNodes(ids []string) {
	e.mu.Lock()
	var points []r2.Vec
	if ids == nil {
		for _, p := range e.positions {
			points = append(points, p)
		}
	} else {
		for _, id := range ids {
			if p, ok := e.positions[id]; ok {
				points = append(points, p)
			}
		}
	}
	e.mu.Unlock()

	e.cam.FocusNodes(points)
	e.publish(Event{Kind: EventView})
}

func (e *Explorer) onSelect(nodeID string) {
	e.mu.Lock()
	e.selected = nodeID
	e.mu.Unlock()
	e.publish(Event{Kind: EventSelection})
}

// Selected returns the currently selected node ID, "" for none.
func (e *Explorer) Selected() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

// LastRequest returns the most recent RequestInfo, or nil before the first
// fetch.
func (e *Explorer) LastRequest() *schemas.RequestInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastRequest == nil {
		return nil
	}
	info := *e.lastRequest
	return &info
}

// Index returns the current snapshot index (possibly nil before the first
// successful fetch).
func (e *Explorer) Index() *graphindex.Index {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.idx
}

// Scene assembles the renderer input for the current state.
func (e *Explorer) Scene() render.Scene {
	hover := e.session.HoverTarget()
	e.mu.Lock()
	defer e.mu.Unlock()
	return render.Scene{
		Index:          e.idx,
		Positions:      e.positions,
		Selected:       e.selected,
		HoverNode:      hover.NodeID,
		HoverEdge:      hover.EdgeID,
		Highlight:      e.highlighter.Current(),
		ModalityFilter: e.modality,
	}
}

// -- Filter / time-travel controller --

// ToggleModality implements single-select-or-clear: toggling the active
// modality clears the filter, anything else replaces it. Cancels replay.
func (e *Explorer) ToggleModality(modality string) {
	e.stopReplay()
	e.mu.Lock()
	if e.modality == modality {
		e.modality = ""
	} else {
		e.modality = modality
	}
	e.mu.Unlock()
	e.publish(Event{Kind: EventFilters})
	e.refreshAsync()
}

// Modality returns the active modality filter, "" for show-all.
func (e *Explorer) Modality() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.modality
}

// SetLimit clamps and applies the result limit. Cancels replay.
func (e *Explorer) SetLimit(limit int) {
	e.stopReplay()
	e.mu.Lock()
	e.limit = e.cfg.Filters.ClampLimit(limit)
	e.mu.Unlock()
	e.publish(Event{Kind: EventFilters})
	e.refreshAsync()
}

// Limit returns the active result limit.
func (e *Explorer) Limit() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.limit
}

// SetSnapshotAt requests the graph as of a point in time. Cancels replay.
func (e *Explorer) SetSnapshotAt(t time.Time) {
	e.stopReplay()
	e.mu.Lock()
	e.snapshotAt = &t
	e.mu.Unlock()
	e.publish(Event{Kind: EventFilters})
	e.refreshAsync()
}

// SnapshotAt returns the time-travel timestamp, nil when live.
func (e *Explorer) SnapshotAt() *time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotAt
}

// Live clears time travel and returns to the current snapshot. Cancels
// replay.
func (e *Explorer) Live() {
	e.stopReplay()
	e.mu.Lock()
	e.snapshotAt = nil
	e.mu.Unlock()
	e.publish(Event{Kind: EventFilters})
	e.refreshAsync()
}

// SetRootNode scopes subsequent requests to a root entity. Cancels replay.
func (e *Explorer) SetRootNode(id string) {
	e.stopReplay()
	e.mu.Lock()
	e.rootNodeID = id
	e.mu.Unlock()
	e.publish(Event{Kind: EventFilters})
	e.refreshAsync()
}

// ApplyFilterState installs filter state in bulk without triggering a fetch.
// Used to restore host state or to seed one-shot CLI invocations before the
// first Refresh; interactive changes go through the individual mutators.
func (e *Explorer) ApplyFilterState(fs schemas.FilterState) {
	e.mu.Lock()
	e.modality = ""
	if len(fs.Modalities) > 0 {
		e.modality = fs.Modalities[0]
	}
	if fs.Limit > 0 {
		e.limit = e.cfg.Filters.ClampLimit(fs.Limit)
	}
	e.snapshotAt = fs.SnapshotAt
	e.mu.Unlock()
	e.publish(Event{Kind: EventFilters})
}

// Close stops replay, aborts any in-flight fetch, and waits for background
// work. The explorer must not be used afterwards.
func (e *Explorer) Close() {
	e.stopReplay()
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.client.Abort()
	e.highlighter.Close()
	e.wg.Wait()
}
