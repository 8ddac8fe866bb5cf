// Package roster cycles through the available service resources, for
// example the doctors on shift. Assignment is strict round robin: each
// served patient takes the next resource in the circle.
package roster

import (
	"container/ring"

	"hospital-triage/errors"
)

// Rotation hands out resources in a fixed circular order.
type Rotation struct {
	current *ring.Ring
	names   []string
}

// New builds a rotation over the given resource names in order. At
// least one name is required.
func New(names []string) (*Rotation, error) {
	if len(names) == 0 {
		return nil, errors.ErrNoResources
	}
	r := ring.New(len(names))
	for _, name := range names {
		r.Value = name
		r = r.Next()
	}
	kept := make([]string, len(names))
	copy(kept, names)
	return &Rotation{current: r, names: kept}, nil
}

// Next returns the resource whose turn it is and advances the circle.
func (r *Rotation) Next() string {
	name := r.current.Value.(string)
	r.current = r.current.Next()
	return name
}

// Names returns the resources in their configured order.
func (r *Rotation) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len reports the number of resources in the rotation.
func (r *Rotation) Len() int { return len(r.names) }
