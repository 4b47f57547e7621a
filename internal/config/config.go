// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger      LoggerConfig      `mapstructure:"logger" yaml:"logger"`
	API         APIConfig         `mapstructure:"api" yaml:"api"`
	Layout      LayoutConfig      `mapstructure:"layout" yaml:"layout"`
	Viewport    ViewportConfig    `mapstructure:"viewport" yaml:"viewport"`
	Interaction InteractionConfig `mapstructure:"interaction" yaml:"interaction"`
	Highlight   HighlightConfig   `mapstructure:"highlight" yaml:"highlight"`
	Replay      ReplayConfig      `mapstructure:"replay" yaml:"replay"`
	Filters     FilterConfig      `mapstructure:"filters" yaml:"filters"`
}

// LoggerConfig configures the zap logger and the optional rotating file sink.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// APIConfig describes the remote snapshot endpoint.
type APIConfig struct {
	BaseURL        string        `mapstructure:"base_url" yaml:"base_url"`
	EndpointPath   string        `mapstructure:"endpoint_path" yaml:"endpoint_path"`
	Mode           string        `mapstructure:"mode" yaml:"mode"`
	Depth          int           `mapstructure:"depth" yaml:"depth"`
	ProjectID      string        `mapstructure:"project_id" yaml:"project_id"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	ForceHTTP2     bool          `mapstructure:"force_http2" yaml:"force_http2"`
}

// LayoutConfig parameterizes both layout strategies. The alias table maps
// loose type names coming off the wire ("slack", "repo", ...) onto the
// canonical column keys; unmapped kinds fall into trailing columns sorted
// lexicographically rather than being dropped.
type LayoutConfig struct {
	Strategy      string            `mapstructure:"strategy" yaml:"strategy"`
	AnchorLabels  []string          `mapstructure:"anchor_labels" yaml:"anchor_labels"`
	Aliases       map[string]string `mapstructure:"aliases" yaml:"aliases"`
	ColumnOrder   []string          `mapstructure:"column_order" yaml:"column_order"`
	ColumnSpacing float64           `mapstructure:"column_spacing" yaml:"column_spacing"`
	RowSpacing    float64           `mapstructure:"row_spacing" yaml:"row_spacing"`
}

// ViewportConfig bounds the camera.
type ViewportConfig struct {
	Width    float64 `mapstructure:"width" yaml:"width"`
	Height   float64 `mapstructure:"height" yaml:"height"`
	MinScale float64 `mapstructure:"min_scale" yaml:"min_scale"`
	MaxScale float64 `mapstructure:"max_scale" yaml:"max_scale"`
	Padding  float64 `mapstructure:"padding" yaml:"padding"`
	Locked   bool    `mapstructure:"locked" yaml:"locked"`
}

// InteractionConfig holds the pointer thresholds, in world units except for
// the drag threshold which is screen pixels.
type InteractionConfig struct {
	NodePickRadius float64 `mapstructure:"node_pick_radius" yaml:"node_pick_radius"`
	EdgePickRadius float64 `mapstructure:"edge_pick_radius" yaml:"edge_pick_radius"`
	DragThreshold  float64 `mapstructure:"drag_threshold" yaml:"drag_threshold"`
}

// HighlightConfig controls the new-entity highlight fade.
type HighlightConfig struct {
	Duration time.Duration `mapstructure:"duration" yaml:"duration"`
}

// ReplayConfig controls stepped time-travel replay.
type ReplayConfig struct {
	Steps    int           `mapstructure:"steps" yaml:"steps"`
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
}

// FilterConfig bounds the user adjustable result limit.
type FilterConfig struct {
	DefaultLimit int `mapstructure:"default_limit" yaml:"default_limit"`
	MinLimit     int `mapstructure:"min_limit" yaml:"min_limit"`
	MaxLimit     int `mapstructure:"max_limit" yaml:"max_limit"`
}

// ClampLimit pulls an arbitrary requested limit into the configured range.
func (f FilterConfig) ClampLimit(limit int) int {
	if limit < f.MinLimit {
		return f.MinLimit
	}
	if limit > f.MaxLimit {
		return f.MaxLimit
	}
	return limit
}

// NewDefaultConfig creates a configuration struct populated with defaults.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Should not happen with defaults alone.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "graphscope")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)

	// -- API --
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.endpoint_path", "/api/graph/snapshot")
	v.SetDefault("api.mode", "overview")
	v.SetDefault("api.depth", 2)
	v.SetDefault("api.project_id", "")
	v.SetDefault("api.request_timeout", "30s")
	v.SetDefault("api.force_http2", false)

	// -- Layout --
	v.SetDefault("layout.strategy", "radial")
	v.SetDefault("layout.anchor_labels", []string{"Component"})
	v.SetDefault("layout.aliases", DefaultAliases())
	v.SetDefault("layout.column_order", DefaultColumnOrder())
	v.SetDefault("layout.column_spacing", 120.0)
	v.SetDefault("layout.row_spacing", 70.0)

	// -- Viewport --
	v.SetDefault("viewport.width", 1280.0)
	v.SetDefault("viewport.height", 800.0)
	v.SetDefault("viewport.min_scale", 0.6)
	v.SetDefault("viewport.max_scale", 4.0)
	v.SetDefault("viewport.padding", 60.0)
	v.SetDefault("viewport.locked", false)

	// -- Interaction --
	v.SetDefault("interaction.node_pick_radius", 18.0)
	v.SetDefault("interaction.edge_pick_radius", 14.0)
	v.SetDefault("interaction.drag_threshold", 1.0)

	// -- Highlight / Replay / Filters --
	v.SetDefault("highlight.duration", 1800*time.Millisecond)
	v.SetDefault("replay.steps", 16)
	v.SetDefault("replay.interval", 1200*time.Millisecond)
	v.SetDefault("filters.default_limit", 300)
	v.SetDefault("filters.min_limit", 25)
	v.SetDefault("filters.max_limit", 1200)
}

// DefaultAliases maps the loose entity kind spellings the backend emits onto
// the canonical column keys. Kept as configuration so new entity kinds can be
// routed without a code change.
func DefaultAliases() map[string]string {
	return map[string]string{
		"component":   "component",
		"comp":        "component",
		"person":      "person",
		"user":        "person",
		"repo":        "repository",
		"repository":  "repository",
		"git":         "repository",
		"commit":      "commit",
		"pr":          "pullrequest",
		"pullrequest": "pullrequest",
		"slack":       "slackevent",
		"slackevent":  "slackevent",
		"message":     "slackevent",
		"doc":         "document",
		"document":    "document",
		"ticket":      "ticket",
		"issue":       "ticket",
		"email":       "email",
		"mail":        "email",
		"meeting":     "meeting",
		"event":       "meeting",
	}
}

// DefaultColumnOrder is the fixed left-to-right ordering of the known entity
// kinds in the column layout. Unknown kinds are appended after these, sorted.
func DefaultColumnOrder() []string {
	return []string{
		"component",
		"person",
		"repository",
		"commit",
		"pullrequest",
		"slackevent",
		"document",
		"ticket",
		"email",
		"meeting",
	}
}

// Validate checks invariants that viper cannot express.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.Viewport.MinScale <= 0 || c.Viewport.MaxScale < c.Viewport.MinScale {
		return fmt.Errorf("viewport scale bounds invalid: min=%f max=%f", c.Viewport.MinScale, c.Viewport.MaxScale)
	}
	if c.Viewport.Width <= 2*c.Viewport.Padding || c.Viewport.Height <= 2*c.Viewport.Padding {
		return fmt.Errorf("viewport too small for padding %f", c.Viewport.Padding)
	}
	if c.Filters.MinLimit <= 0 || c.Filters.MaxLimit < c.Filters.MinLimit {
		return fmt.Errorf("filter limit bounds invalid: min=%d max=%d", c.Filters.MinLimit, c.Filters.MaxLimit)
	}
	if c.Replay.Steps <= 0 {
		return fmt.Errorf("replay.steps must be positive")
	}
	switch c.Layout.Strategy {
	case "radial", "column":
	default:
		return fmt.Errorf("unknown layout strategy %q", c.Layout.Strategy)
	}
	return nil
}
