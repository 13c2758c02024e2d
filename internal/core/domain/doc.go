// Package domain defines the core business entities for bodacc.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Envelope: one input line handed over by the retrieval collaborator
//   - Issue: one numbered edition of a bulletin sub-series
//   - Record: one normalised announcement
//   - Entity: the company or person an announcement is about
//   - Act: the legal event an announcement describes
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
