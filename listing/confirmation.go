package listing

import (
	"github.com/jrsteele09/restaurant-console/catalog"
)

// Confirmation is the two step delete gate: Closed until a delete is
// requested, then Open(target) until it is confirmed or cancelled.
// It is not safe for concurrent use; Controller guards it.
type Confirmation[T catalog.Entity] struct {
	target T
	open   bool
}

// Request opens the gate for target. A second request while open replaces the target.
func (c *Confirmation[T]) Request(target T) {
	c.target = target
	c.open = true
}

// Cancel closes the gate. Cancelling a closed gate does nothing.
func (c *Confirmation[T]) Cancel() {
	var zero T
	c.target = zero
	c.open = false
}

// Target returns the entity awaiting confirmation
func (c *Confirmation[T]) Target() (T, bool) {
	return c.target, c.open
}

// IsOpen reports whether a delete is waiting for confirmation
func (c *Confirmation[T]) IsOpen() bool {
	return c.open
}

// Holds reports whether the gate is open for the entity with id
func (c *Confirmation[T]) Holds(id catalog.ID) bool {
	return c.open && c.target.EntityID() == id
}
