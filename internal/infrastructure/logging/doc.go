// Package logging provides structured logging for ScoreLink Core.
//
// It wraps the standard library log/slog with configuration-driven setup:
// output format (JSON or text), level filtering, and default fields
// identifying the service and version.
//
// Usage:
//
//	log := logging.New(cfg.Logging, version)
//	log.Info("discovery complete", "accessories", 2, "failures", 0)
//
// All methods are safe for concurrent use.
package logging
