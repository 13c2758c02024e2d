// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Normaliser: maps one schema family into announcement records
//   - NormaliserRegistry: resolves a format code to its normaliser
//   - RecordSink: receives every emitted record
//
// # Optional Interfaces
//
// These can be nil - the pipeline degrades gracefully:
//
//   - EnvelopeLedger: remembers processed envelopes for --skip-processed
//   - RecordArchive: keeps emitted records for later listing
//   - EnvelopeSource: feeds envelope files from a watched directory
//   - ConfigStore: application configuration
//
// # Import Rules
//
//   - Can Import: domain and xmldoc packages only
//   - Cannot Import: Any adapter or normaliser package
package driven
