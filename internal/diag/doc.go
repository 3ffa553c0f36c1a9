// Package diag defines the diagnostic model shared by the checker, the driver
// and the CLI.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form
//     such as SEM3001.
//   - Message – human oriented text, rendered once at report time.
//   - Primary span – the source.Span of the offending expression.
//   - Notes – optional secondary spans/messages.
//   - Operands – structured payload for operator mismatches.
//
// # Emitting diagnostics
//
// Producers write to a Reporter. ReportBuilder (ReportError/ReportWarning)
// chains WithNote / WithOperands before Emit. BagReporter appends to a Bag,
// which keeps insertion order and an optional cap; FilterReporter applies a
// category Policy. Every rejected operation is one entry, even when two
// entries render identically. Reporters compose:
//
//	FilterReporter{Next: MultiReporter{BagReporter{Bag: bag}, extra}, Policy: p}
//
// # Scope
//
// Package diag does not perform IO. Pretty and JSON rendering live in
// internal/diagfmt; FormatShortDiagnostics is kept here because tests use it
// as a golden format.
package diag
