package engine

import (
	"errors"
	"fmt"
)

// Kind names the entity class a reference id points at.
type Kind string

const (
	KindStudent      Kind = "student"
	KindIntervention Kind = "intervention"
	KindGoal         Kind = "goal"
)

// NotFound reports that a referenced entity does not exist. It always
// carries the kind and id so callers can produce an actionable message.
type NotFound struct {
	Kind Kind
	ID   string
}

func (e *NotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// IsNotFound reports whether err is a NotFound of any kind.
func IsNotFound(err error) bool {
	var nf *NotFound
	return errors.As(err, &nf)
}
