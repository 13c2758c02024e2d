// Package sqlite provides the SQLite-backed record archive and envelope
// ledger.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. A single database connection serves:
//
//   - EnvelopeLedger: uids of documents already normalised
//   - RecordArchive: emitted records, queryable by issue
//   - RecordSink: archives records as the pipeline emits them
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.bodacc/data/archive.db
package sqlite
