package config

import "time"

// Settings are the knobs a host editor configures for its link networks.
// Zero-ish defaults mean "in memory, no observability, no autosave".
type Settings struct {
	// GraphID names the graph for snapshot storage.
	GraphID string

	// StorePath is the SQLite file for snapshots, empty for in-memory.
	StorePath string

	// AutosaveInterval is how often the host saves a snapshot,
	// zero to disable autosave.
	AutosaveInterval time.Duration

	// MetricsEnabled turns on OpenTelemetry metrics.
	MetricsEnabled bool

	// TracingEnabled turns on OpenTelemetry spans.
	TracingEnabled bool

	// EventBufferSize is the per-subscriber event buffer.
	EventBufferSize int
}

// DefaultSettings returns the settings used when no config is present.
func DefaultSettings() Settings {
	return Settings{
		GraphID:         "default",
		EventBufferSize: 256,
	}
}

// SettingsFrom extracts Settings from a loaded Config, falling back to
// defaults per key.
//
// Recognized keys:
//
//	graph_id: default
//	store_path: ./graphs.db
//	autosave_interval: 30s
//	metrics_enabled: true
//	tracing_enabled: false
//	event_buffer_size: 256
func SettingsFrom(cfg Config) Settings {
	def := DefaultSettings()
	return Settings{
		GraphID:          cfg.String("graph_id", def.GraphID),
		StorePath:        cfg.String("store_path", def.StorePath),
		AutosaveInterval: cfg.Duration("autosave_interval", def.AutosaveInterval),
		MetricsEnabled:   cfg.Bool("metrics_enabled", def.MetricsEnabled),
		TracingEnabled:   cfg.Bool("tracing_enabled", def.TracingEnabled),
		EventBufferSize:  cfg.Int("event_buffer_size", def.EventBufferSize),
	}
}
