// -- internal/demo/snapshot.go --
package demo

import (
	"fmt"
	"sort"
	"time"

	"github.com/kynelabs/graphscope/api/schemas"
)

// The sample graph: a handful of components with activity fanning out over a
// two-hour window, so time travel over [base, base+2h] shows the graph grow.
var base = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type seedNode struct {
	id       string
	label    string
	modality string
	title    string
	offset   time.Duration // creation time relative to base
	props    map[string]string
}

type seedEdge struct {
	id, source, target, kind string
	offset                   time.Duration
}

var seedNodes = []seedNode{
	{"comp-auth", "Component", "", "Auth Service", 0, nil},
	{"comp-billing", "Component", "", "Billing Service", 0, nil},
	{"person-rivera", "Person", "person", "A. Rivera", 0, nil},
	{"repo-auth", "Repository", "repo", "auth-service", 10 * time.Minute, map[string]string{"repoUrl": "https://git.example.com/auth-service"}},
	{"doc-auth-design", "Doc", "doc", "Auth design notes", 25 * time.Minute, map[string]string{"docUrl": "https://docs.example.com/auth-design"}},
	{"slack-incident", "SlackEvent", "slack", "#incident-412 thread", 40 * time.Minute, map[string]string{"threadUrl": "https://chat.example.com/t/412"}},
	{"ticket-412", "Ticket", "ticket", "AUTH-412 token expiry", 55 * time.Minute, map[string]string{"ticketUrl": "https://tracker.example.com/AUTH-412"}},
	{"commit-9f3", "Commit", "git", "fix: refresh token clock skew", 80 * time.Minute, map[string]string{"permalink": "https://git.example.com/auth-service/commit/9f3"}},
	{"doc-postmortem", "Doc", "doc", "Incident 412 postmortem", 110 * time.Minute, map[string]string{"docUrl": "https://docs.example.com/pm-412"}},
	{"mail-rollout", "Email", "email", "Rollout announcement", 120 * time.Minute, nil},
}

var seedEdges = []seedEdge{
	{"e1", "doc-auth-design", "comp-auth", "DOCUMENTS", 25 * time.Minute},
	{"e2", "repo-auth", "comp-auth", "TRACKS", 10 * time.Minute},
	{"e3", "slack-incident", "comp-auth", "DISCUSSES", 40 * time.Minute},
	{"e4", "ticket-412", "comp-auth", "TRACKS", 55 * time.Minute},
	{"e5", "commit-9f3", "repo-auth", "MODIFIES", 80 * time.Minute},
	{"e6", "person-rivera", "commit-9f3", "AUTHORED", 80 * time.Minute},
	{"e7", "doc-postmortem", "comp-auth", "DOCUMENTS", 110 * time.Minute},
	{"e8", "doc-postmortem", "comp-billing", "DOCUMENTS", 110 * time.Minute},
	{"e9", "mail-rollout", "comp-billing", "MENTIONS", 120 * time.Minute},
	{"e10", "slack-incident", "person-rivera", "MENTIONS", 40 * time.Minute},
}

// Snapshot builds the sample snapshot for a query. Nodes created after
// SnapshotAt are excluded, as are nodes outside the modality filter (anchor
// components always remain so the radial layout keeps its center).
func Snapshot(q Query) schemas.Snapshot {
	modalities := make(map[string]struct{}, len(q.Modalities))
	for _, m := range q.Modalities {
		modalities[m] = struct{}{}
	}

	included := make(map[string]bool)
	var nodes []schemas.Node
	var minTS, maxTS *time.Time

	for _, s := range seedNodes {
		created := base.Add(s.offset)
		if q.SnapshotAt != nil && created.After(*q.SnapshotAt) {
			continue
		}
		if len(modalities) > 0 && s.modality != "" {
			if _, ok := modalities[s.modality]; !ok {
				continue
			}
		}
		if len(nodes) >= q.Limit {
			break
		}
		createdAt := created
		nodes = append(nodes, schemas.Node{
			ID:        s.id,
			Label:     s.label,
			Modality:  s.modality,
			Title:     s.title,
			CreatedAt: &createdAt,
			Props:     s.props,
		})
		included[s.id] = true
		if minTS == nil || created.Before(*minTS) {
			t := created
			minTS = &t
		}
		if maxTS == nil || created.After(*maxTS) {
			t := created
			maxTS = &t
		}
	}

	var edges []schemas.Edge
	relCounts := make(map[string]int)
	for _, s := range seedEdges {
		if !included[s.source] || !included[s.target] {
			continue
		}
		edges = append(edges, schemas.Edge{
			ID:     s.id,
			Source: s.source,
			Target: s.target,
			Type:   s.kind,
		})
		relCounts[s.kind]++
	}

	labelCounts := make(map[string]int)
	modalityCounts := make(map[string]int)
	propKeys := make(map[string]struct{})
	for _, n := range nodes {
		labelCounts[n.Label]++
		if n.Modality != "" {
			modalityCounts[n.Modality]++
		}
		for k := range n.Props {
			propKeys[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(propKeys))
	for k := range propKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return schemas.Snapshot{
		GeneratedAt: time.Now().UTC(),
		Nodes:       nodes,
		Edges:       edges,
		Meta: schemas.SnapshotMeta{
			LabelCounts:        labelCounts,
			RelationshipCounts: relCounts,
			ModalityCounts:     modalityCounts,
			PropertyKeys:       keys,
			MinTimestamp:       minTS,
			MaxTimestamp:       maxTS,
		},
	}
}

// Describe is a convenience for logs and tests.
func Describe(s schemas.Snapshot) string {
	return fmt.Sprintf("%d nodes / %d edges", len(s.Nodes), len(s.Edges))
}
