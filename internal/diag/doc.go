// Package diag defines the diagnostic model shared by the scanner, the matcher
// and the renderers.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for structural findings
//     (mis-nested, stray and unclosed tags) and for I/O failures.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Package diag does no formatting beyond the one-line short form, no IO and no
// CLI integration. Rendering lives in internal/diagfmt; orchestration in
// internal/driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text. For tag findings this is the exact legacy
//     sentence ("Error at line 3 <b> is not constructed correctly.").
//   - Primary span – the source.Span of the tag that triggered the finding.
//   - Notes – optional secondary spans, e.g. where a mis-nested tag was opened.
//
// # Ordering
//
// A Bag keeps emission order. The matcher emits findings in report order
// (interior mismatches and unclosed tags first, stray closing tags second), so
// nothing downstream may sort a bag that belongs to a single document.
package diag
