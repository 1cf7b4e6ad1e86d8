// Package planner drives a travel request through its phases: extracting trip
// parameters, one optional tooling round, and a durable finalizing pause that
// an explicit resume completes.
package planner

import "github.com/voyagent/voyagent/src/storage"

// Phase is a session lifecycle stage. Values are persisted on the session
// row, so they alias the storage vocabulary.
type Phase = string

const (
	PhaseExtracting Phase = storage.PhaseExtracting
	PhaseTooling    Phase = storage.PhaseTooling
	PhaseFinalizing Phase = storage.PhaseFinalizing
	PhaseDelivered  Phase = storage.PhaseDelivered
	PhaseFailed     Phase = storage.PhaseFailed
)
