package layout

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kynelabs/graphscope/api/schemas"
	"github.com/kynelabs/graphscope/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		AnchorLabels:  []string{"Component"},
		Aliases:       config.DefaultAliases(),
		ColumnOrder:   config.DefaultColumnOrder(),
		ColumnSpacing: 120,
		RowSpacing:    70,
	}
}

func testNodes() []schemas.Node {
	return []schemas.Node{
		{ID: "comp-1", Label: "Component", Title: "Auth"},
		{ID: "comp-2", Label: "Component", Title: "Billing"},
		{ID: "doc-1", Label: "Doc", Modality: "doc", Title: "Design"},
		{ID: "doc-2", Label: "Doc", Modality: "doc", Title: "Postmortem"},
		{ID: "slack-1", Label: "SlackEvent", Modality: "slack", Title: "Thread"},
		{ID: "repo-1", Label: "Repository", Modality: "repo", Title: "auth-service"},
		{ID: "weird-1", Label: "Satellite", Modality: "telemetry", Title: "Feed"},
	}
}

func TestComputeDeterminism(t *testing.T) {
	nodes := testNodes()
	cfg := testConfig()

	for _, strategy := range []Strategy{StrategyRadial, StrategyColumn} {
		first := Compute(nodes, strategy, cfg)
		second := Compute(nodes, strategy, cfg)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("strategy %s not deterministic (-first +second):\n%s", strategy, diff)
		}
		require.Len(t, first, len(nodes), "every node must be positioned")
	}
}

func TestRadialScenario(t *testing.T) {
	// One Component and one doc: the component sits at the exact center, the
	// doc on the first peripheral ring.
	nodes := []schemas.Node{
		{ID: "a", Label: "Component"},
		{ID: "b", Label: "Doc", Modality: "doc"},
	}
	pos := Compute(nodes, StrategyRadial, testConfig())

	require.Len(t, pos, 2)
	assert.Equal(t, 0.0, math.Hypot(pos["a"].X, pos["a"].Y))
	assert.InDelta(t, 140.0, math.Hypot(pos["b"].X, pos["b"].Y), 1e-9)
}

func TestRadialMultipleCenters(t *testing.T) {
	nodes := []schemas.Node{
		{ID: "a", Label: "Component"},
		{ID: "b", Label: "Component"},
		{ID: "c", Label: "Doc", Modality: "doc"},
	}
	pos := Compute(nodes, StrategyRadial, testConfig())

	for _, id := range []string{"a", "b"} {
		assert.InDelta(t, 40.0, math.Hypot(pos[id].X, pos[id].Y), 1e-9, "center nodes share the small ring")
	}
}

func TestRadialPeripheralRingsSortedByGroup(t *testing.T) {
	pos := Compute(testNodes(), StrategyRadial, testConfig())

	// Groups come out sorted by canonical key: document < repository <
	// slackevent < telemetry. Ring radius encodes group index.
	radius := func(id string) float64 { return math.Hypot(pos[id].X, pos[id].Y) }
	assert.InDelta(t, 140.0, radius("doc-1"), 1e-9)
	assert.InDelta(t, 230.0, radius("repo-1"), 1e-9)
	assert.InDelta(t, 320.0, radius("slack-1"), 1e-9)
	assert.InDelta(t, 410.0, radius("weird-1"), 1e-9)
}

func TestRadialFallbackRing(t *testing.T) {
	// With no anchor-type node at all, everything lands on one ring.
	nodes := []schemas.Node{
		{ID: "x", Label: "Doc", Modality: "doc"},
		{ID: "y", Label: "Ticket", Modality: "ticket"},
	}
	pos := Compute(nodes, StrategyRadial, testConfig())
	for id, p := range pos {
		assert.InDelta(t, 120.0, math.Hypot(p.X, p.Y), 1e-9, "node %s", id)
	}
}

func TestColumnAliasRouting(t *testing.T) {
	// "slack" and "repo" alias onto their canonical columns; the unknown
	// "telemetry" kind is appended after all configured columns.
	pos := Compute(testNodes(), StrategyColumn, testConfig())

	colOf := func(id string) float64 { return math.Round(pos[id].X/120) * 120 }
	assert.Less(t, colOf("comp-1"), colOf("repo-1"))
	assert.Less(t, colOf("repo-1"), colOf("slack-1"))
	assert.Less(t, colOf("slack-1"), colOf("doc-1"))
	assert.Greater(t, colOf("weird-1"), colOf("doc-1"), "unknown kinds come last")
}

func TestColumnJitterBounded(t *testing.T) {
	pos := Compute(testNodes(), StrategyColumn, testConfig())

	// Each x must be within jitter range of its column's grid line.
	for id, p := range pos {
		grid := math.Round(p.X/120) * 120
		assert.LessOrEqual(t, math.Abs(p.X-grid), 7.0, "node %s x jitter", id)
	}
}

func TestColumnStackSortedByID(t *testing.T) {
	nodes := []schemas.Node{
		{ID: "doc-c", Modality: "doc"},
		{ID: "doc-a", Modality: "doc"},
		{ID: "doc-b", Modality: "doc"},
	}
	pos := Compute(nodes, StrategyColumn, testConfig())

	// Rows are 70 apart (± jitter), ordered by id.
	assert.Less(t, pos["doc-a"].Y, pos["doc-b"].Y)
	assert.Less(t, pos["doc-b"].Y, pos["doc-c"].Y)
}

func TestFingerprintIgnoresOrder(t *testing.T) {
	a := Fingerprint([]string{"x", "y", "z"}, StrategyRadial)
	b := Fingerprint([]string{"z", "x", "y"}, StrategyRadial)
	assert.Equal(t, a, b)

	assert.NotEqual(t, a, Fingerprint([]string{"x", "y"}, StrategyRadial))
	assert.NotEqual(t, a, Fingerprint([]string{"x", "y", "z"}, StrategyColumn))
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("RADIAL")
	require.NoError(t, err)
	assert.Equal(t, StrategyRadial, s)

	_, err = ParseStrategy("spiral")
	assert.Error(t, err)
}
