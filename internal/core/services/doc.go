// Package services implements the driving port interfaces.
// Services contain the core normalisation flow and orchestrate
// calls to driven ports (normalisers, sinks, the envelope ledger).
//
// Services are pure Go with no CGO.
package services
