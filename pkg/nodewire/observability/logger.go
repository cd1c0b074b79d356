// Package observability provides production-grade observability for
// nodewire: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// LogLinkConnected logs a new link registration.
func LogLinkConnected(logger *slog.Logger, linkID, originID int64, originSlot int, targetID int64, targetSlot int) {
	if logger == nil {
		return
	}
	logger.Debug("link connected",
		slog.Int64("link_id", linkID),
		slog.Int64("origin_id", originID),
		slog.Int("origin_slot", originSlot),
		slog.Int64("target_id", targetID),
		slog.Int("target_slot", targetSlot),
	)
}

// LogLinkDisconnected logs a link removal.
func LogLinkDisconnected(logger *slog.Logger, linkID int64) {
	if logger == nil {
		return
	}
	logger.Debug("link disconnected",
		slog.Int64("link_id", linkID),
	)
}

// LogFloatingLinkCreated logs registration of a floating link.
func LogFloatingLinkCreated(logger *slog.Logger, linkID, anchorID int64) {
	if logger == nil {
		return
	}
	logger.Debug("floating link created",
		slog.Int64("link_id", linkID),
		slog.Int64("anchor_reroute_id", anchorID),
	)
}

// LogRerouteCreated logs creation of a waypoint.
func LogRerouteCreated(logger *slog.Logger, rerouteID, parentID int64) {
	if logger == nil {
		return
	}
	logger.Debug("reroute created",
		slog.Int64("reroute_id", rerouteID),
		slog.Int64("parent_id", parentID),
	)
}

// LogRerouteRemoved logs removal of a waypoint.
func LogRerouteRemoved(logger *slog.Logger, rerouteID int64) {
	if logger == nil {
		return
	}
	logger.Debug("reroute removed",
		slog.Int64("reroute_id", rerouteID),
	)
}

// LogChainCycle logs detection of a corrupt reroute chain. Cycles mean
// the stored topology is damaged, so this logs at error level.
func LogChainCycle(logger *slog.Logger, segmentID int64) {
	if logger == nil {
		return
	}
	logger.Error("reroute chain cycle detected",
		slog.Int64("segment_id", segmentID),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
