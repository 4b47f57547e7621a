// -- internal/engine/events.go --
package engine

// EventKind names a state change the renderer (or any other subscriber) may
// care about. Publishing state changes explicitly decouples "what changed"
// from "how it's drawn": the renderer redraws only on notification.
type EventKind string

const (
	EventSnapshot  EventKind = "snapshot"  // new snapshot applied (index, layout)
	EventView      EventKind = "view"      // camera pan/zoom/fit changed
	EventSelection EventKind = "selection" // selected node changed
	EventHover     EventKind = "hover"     // hover target changed
	EventHighlight EventKind = "highlight" // new-entity highlight set or cleared
	EventRequest   EventKind = "request"   // a RequestInfo phase transition
	EventFilters   EventKind = "filters"   // modality/limit/time-travel state changed
)

// Event is a notification of one state change.
type Event struct {
	Kind EventKind
}
