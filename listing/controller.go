// Package listing runs the lifecycle of one paginated resource view: fetch a
// page, page through the collection, and delete records behind an explicit
// confirmation step followed by a reload.
package listing

import (
	"context"
	"sync"

	"github.com/jrsteele09/restaurant-console/catalog"
	"github.com/jrsteele09/restaurant-console/internal/errors"
	"github.com/jrsteele09/restaurant-console/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Source is the backend collection a controller lists and deletes from
type Source[T catalog.Entity] interface {
	// List returns one page of at most pageSize items and the collection total
	List(ctx context.Context, page, pageSize int) ([]T, int, error)
	Delete(ctx context.Context, id catalog.ID) error
}

// Controller holds the state of one mounted list view.
//
// Loads may overlap. Each load takes a sequence number and only the response
// of the latest one is applied; older responses are discarded with
// ErrSuperseded. Once Close is called no response changes the state.
type Controller[T catalog.Entity] struct {
	name     string
	source   Source[T]
	pageSize int

	lock     sync.Mutex
	items    []T
	page     int
	total    int
	loading  bool
	loaded   bool
	deleting bool
	err      error
	seq      uint64
	closed   bool
	confirm  Confirmation[T]
}

// New creates a controller for the named resource. A pageSize below 1 uses catalog.DefaultPageSize.
func New[T catalog.Entity](name string, source Source[T], pageSize int) *Controller[T] {
	if pageSize < 1 {
		pageSize = catalog.DefaultPageSize
	}
	return &Controller[T]{
		name:     name,
		source:   source,
		pageSize: pageSize,
		page:     1,
		items:    []T{},
	}
}

// Name is the resource name the controller was created for
func (c *Controller[T]) Name() string {
	return c.name
}

// Load fetches page and, if it is still the latest load, replaces the items,
// total and page. A failed load keeps the previous items and records the error.
func (c *Controller[T]) Load(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}

	c.lock.Lock()
	if c.closed {
		c.lock.Unlock()
		return errors.ErrViewClosed
	}
	c.seq++
	seq := c.seq
	c.loading = true
	c.lock.Unlock()

	defer func() {
		c.lock.Lock()
		if c.seq == seq {
			c.loading = false
		}
		c.lock.Unlock()
	}()

	items, total, err := c.source.List(ctx, page, c.pageSize)

	c.lock.Lock()
	defer c.lock.Unlock()

	if c.closed {
		metrics.RecordListLoad(c.name, "discarded")
		return errors.ErrViewClosed
	}
	if seq != c.seq {
		metrics.RecordListLoad(c.name, "stale")
		log.Debug().Str("resource", c.name).Int("page", page).Msg("discarding superseded list response")
		return errors.ErrSuperseded
	}
	if err != nil {
		metrics.RecordListLoad(c.name, "error")
		c.err = err
		return errors.Wrapf(err, "[listing %s] load page %d", c.name, page)
	}

	if len(items) > c.pageSize {
		items = items[:c.pageSize]
	}
	if total < 0 {
		total = 0
	}
	c.items = items
	c.total = total
	c.page = page
	c.loaded = true
	c.err = nil
	metrics.RecordListLoad(c.name, "success")
	return nil
}

// Reload fetches the current page again
func (c *Controller[T]) Reload(ctx context.Context) error {
	c.lock.Lock()
	page := c.page
	c.lock.Unlock()
	return c.Load(ctx, page)
}

// RequestDelete opens the confirmation for entity. Nothing is sent to the backend.
func (c *Controller[T]) RequestDelete(entity T) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return errors.ErrViewClosed
	}
	c.confirm.Request(entity)
	return nil
}

// RequestDeleteByID opens the confirmation for the item with id on the current page
func (c *Controller[T]) RequestDeleteByID(id catalog.ID) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return errors.ErrViewClosed
	}
	for _, item := range c.items {
		if item.EntityID() == id {
			c.confirm.Request(item)
			return nil
		}
	}
	return errors.Wrapf(errors.ErrNotOnPage, "[listing %s] id %s", c.name, id)
}

// ConfirmDelete deletes the pending target and reloads the current page. id
// is the record the operator was shown; nothing is deleted unless the
// confirmation is open on exactly that record.
//
// It fails with ErrNoPendingDelete when the confirmation is closed or holds
// another record, and with ErrBusy while another confirm is in flight. A
// rejected delete leaves the confirmation open on the same target and the
// items untouched. If the reload lands on an empty page past the end of the
// collection, the last page is loaded instead.
func (c *Controller[T]) ConfirmDelete(ctx context.Context, id catalog.ID) error {
	c.lock.Lock()
	if c.closed {
		c.lock.Unlock()
		return errors.ErrViewClosed
	}
	if c.deleting {
		c.lock.Unlock()
		return errors.ErrBusy
	}
	target, ok := c.confirm.Target()
	if !ok {
		c.lock.Unlock()
		return errors.ErrNoPendingDelete
	}
	if !c.confirm.Holds(id) {
		c.lock.Unlock()
		metrics.RecordDelete(c.name, "mismatch")
		return errors.Wrapf(errors.ErrNoPendingDelete, "[listing %s] confirm for %s while %s is pending", c.name, id, target.EntityID())
	}
	c.deleting = true
	page := c.page
	c.lock.Unlock()

	err := c.source.Delete(ctx, id)

	c.lock.Lock()
	c.deleting = false
	if err != nil {
		if !c.closed {
			c.err = err
		}
		c.lock.Unlock()
		metrics.RecordDelete(c.name, "error")
		return errors.Wrapf(err, "[listing %s] delete %s", c.name, id)
	}
	if c.confirm.Holds(id) {
		c.confirm.Cancel()
	}
	closed := c.closed
	c.lock.Unlock()

	metrics.RecordDelete(c.name, "success")
	log.Info().Str("resource", c.name).Str("id", string(id)).Msg("deleted")
	if closed {
		return nil
	}

	err = c.Load(ctx, page)
	if errors.Is(err, errors.ErrNotFound) && page > 1 {
		// paginated backends answer 404 for a page past the end
		err = c.Load(ctx, page-1)
	}
	if err != nil {
		if errors.Is(err, errors.ErrSuperseded) || errors.Is(err, errors.ErrViewClosed) {
			return nil
		}
		return errors.Wrapf(err, "[listing %s] reload after delete", c.name)
	}

	s := c.State()
	if len(s.Items) == 0 && s.Page > s.LastPage() {
		if err := c.Load(ctx, s.LastPage()); err != nil && !errors.Is(err, errors.ErrSuperseded) && !errors.Is(err, errors.ErrViewClosed) {
			return errors.Wrapf(err, "[listing %s] reload last page", c.name)
		}
	}
	return nil
}

// CancelDelete closes the confirmation. It is a no-op when already closed.
func (c *Controller[T]) CancelDelete() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.confirm.Cancel()
}

// Close unmounts the view; responses arriving afterwards are discarded
func (c *Controller[T]) Close() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.closed = true
	c.loading = false
	c.confirm.Cancel()
}

// Closed reports whether Close has been called
func (c *Controller[T]) Closed() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.closed
}

// ClearError drops the transient error banner
func (c *Controller[T]) ClearError() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.err = nil
}

// State returns a copy of the current state
func (c *Controller[T]) State() State[T] {
	c.lock.Lock()
	defer c.lock.Unlock()

	items := make([]T, len(c.items))
	copy(items, c.items)
	s := State[T]{
		Items:         items,
		Page:          c.page,
		PageSize:      c.pageSize,
		TotalCount:    c.total,
		IsLoading:     c.loading,
		Loaded:        c.loaded,
		IsConfirmOpen: c.confirm.IsOpen(),
		Deleting:      c.deleting,
		Err:           c.err,
	}
	if target, ok := c.confirm.Target(); ok {
		s.PendingDelete = &target
	}
	return s
}
