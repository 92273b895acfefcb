// Package diag defines the diagnostic model shared by the scanner and the
// consistency checker.
//
// Diagnostic is the central record: a Severity, a stable Code, a message,
// a primary source.Span, optional secondary Notes, and optional Fix
// suggestions (structured text edits, e.g. a correctly-cased label).
//
// Producers emit through a Reporter so they stay decoupled from storage
// and rendering. BagReporter collects into a Bag, which supports sorting,
// deduplication and error queries. Rendering lives in internal/diagfmt;
// this package performs no formatting or IO beyond the plain short form
// used by tests and the CLI short format.
package diag
