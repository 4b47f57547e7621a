// -- internal/engine/diagnostics.go --
package engine

import (
	"context"
	"fmt"

	"github.com/kynelabs/graphscope/api/schemas"
)

// Diagnostics is what the host shows when a snapshot came back empty: the
// last request's fate and a command that reproduces the exact fetch.
type Diagnostics struct {
	LastRequest *schemas.RequestInfo
	CurlCommand string
}

// Diagnostics returns the diagnostic view when the current snapshot contains
// zero nodes, and nil otherwise (including before the first fetch completes,
// when there is nothing to explain yet).
func (e *Explorer) Diagnostics() *Diagnostics {
	e.mu.Lock()
	empty := e.idx != nil && e.idx.Len() == 0
	last := e.lastRequest
	cfg := e.requestConfigLocked()
	e.mu.Unlock()

	if !empty || last == nil {
		return nil
	}

	info := *last
	d := &Diagnostics{LastRequest: &info}
	if target, err := e.client.URL(cfg); err == nil {
		d.CurlCommand = fmt.Sprintf("curl -sS %q", target)
	}
	return d
}

// Retry re-triggers the fetch pipeline from scratch, producing a fresh
// RequestInfo generation.
func (e *Explorer) Retry(ctx context.Context) error {
	return e.Refresh(ctx)
}

// DeepLink is a recognized external link found in a node's props.
type DeepLink struct {
	Kind string
	URL  string
}

// deepLinkKeys maps recognized props keys to link kinds, in display order.
// Key presence is the whole contract; no schema negotiation beyond that.
var deepLinkKeys = []struct {
	key  string
	kind string
}{
	{"url", "external"},
	{"repoUrl", "source"},
	{"permalink", "source"},
	{"docUrl", "document"},
	{"threadUrl", "chat"},
	{"ticketUrl", "tracker"},
}

// DeepLinks extracts the clickable external links from a node's props.
func DeepLinks(node schemas.Node) []DeepLink {
	var links []DeepLink
	for _, entry := range deepLinkKeys {
		if v, ok := node.Props[entry.key]; ok && v != "" {
			links = append(links, DeepLink{Kind: entry.kind, URL: v})
		}
	}
	return links
}
