// Package logging builds the slog loggers used across the pipeline: a
// console or JSON handler on stdout combined with a timestamped per-run log
// file, plus retention pruning for old run logs.
package logging
