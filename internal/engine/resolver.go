package engine

import "github.com/google/uuid"

// Resolver answers existence checks for externally owned reference ids
// (students, interventions). It has no side effects and never errors for
// a missing id; it returns false and the engine translates that into a
// NotFound naming the kind and id.
type Resolver interface {
	Exists(kind Kind, id uuid.UUID) bool
}
