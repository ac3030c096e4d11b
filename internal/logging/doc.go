// Package logging constructs the slog logger used across the tool.
//
// Two formats are supported: a human console format for interactive runs and
// JSON for machine consumption. Diagnostics go to stderr so they never mix
// with the forwarded output of the download process on stdout.
package logging
