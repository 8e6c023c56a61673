// Package repositories implements SQLite persistence for the export history.
//
// Key Implementations:
//   - [ExportRepository] : one row per spreadsheet written, with row and skip counts
//
// Sequence numbers provide stable, human-readable ordering (export #1, #2, ...) independent of UUIDs and creation
// timestamps. The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence
// tables.
package repositories
