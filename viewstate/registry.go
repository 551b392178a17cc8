// Package viewstate keeps the mounted list views of every signed in session.
// A view is created on the first visit to a resource page, reused on later
// requests, and closed on logout, on session teardown or after sitting idle.
package viewstate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jrsteele09/restaurant-console/internal/metrics"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const defaultIdleTimeout = 30 * time.Minute

// View is a mounted per session view, e.g. a listing.Controller
type View interface {
	Close()
}

type entry struct {
	view     View
	lastUsed time.Time
}

// Registry maps session id -> resource name -> view
type Registry struct {
	idle    time.Duration
	nowTime func() time.Time

	lock     sync.Mutex
	sessions map[string]map[string]*entry
	count    int
	cron     *cron.Cron
}

type RegistryOption func(*Registry)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) RegistryOption {
	return func(r *Registry) {
		r.nowTime = nowFunc
	}
}

// NewRegistry creates a registry that closes views unused for idle
func NewRegistry(idle time.Duration, options ...RegistryOption) *Registry {
	if idle <= 0 {
		idle = defaultIdleTimeout
	}
	r := &Registry{
		idle:     idle,
		nowTime:  time.Now,
		sessions: make(map[string]map[string]*entry),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Mount returns the session's view for name, creating it with create on first use
func Mount[V View](r *Registry, sessionID, name string, create func() V) V {
	r.lock.Lock()
	defer r.lock.Unlock()

	now := r.nowTime()
	views, ok := r.sessions[sessionID]
	if !ok {
		views = make(map[string]*entry)
		r.sessions[sessionID] = views
	}
	if e, ok := views[name]; ok {
		if v, ok := e.view.(V); ok {
			e.lastUsed = now
			return v
		}
		// same name mounted with another type, replace it
		e.view.Close()
		r.count--
	}

	v := create()
	views[name] = &entry{view: v, lastUsed: now}
	r.count++
	metrics.MountedViews.Set(float64(r.count))
	return v
}

// Lookup returns a mounted view without creating one
func Lookup[V View](r *Registry, sessionID, name string) (V, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	var zero V
	e, ok := r.sessions[sessionID][name]
	if !ok {
		return zero, false
	}
	v, ok := e.view.(V)
	if !ok {
		return zero, false
	}
	e.lastUsed = r.nowTime()
	return v, true
}

// UnmountSession closes every view of the session and returns how many were closed
func (r *Registry) UnmountSession(sessionID string) int {
	r.lock.Lock()
	views := r.sessions[sessionID]
	delete(r.sessions, sessionID)
	r.count -= len(views)
	metrics.MountedViews.Set(float64(r.count))
	r.lock.Unlock()

	for _, e := range views {
		e.view.Close()
	}
	return len(views)
}

// Sweep closes views idle for longer than the idle timeout
func (r *Registry) Sweep() int {
	r.lock.Lock()
	now := r.nowTime()
	var stale []View
	for sessionID, views := range r.sessions {
		for name, e := range views {
			if now.Sub(e.lastUsed) > r.idle {
				stale = append(stale, e.view)
				delete(views, name)
			}
		}
		if len(views) == 0 {
			delete(r.sessions, sessionID)
		}
	}
	r.count -= len(stale)
	metrics.MountedViews.Set(float64(r.count))
	r.lock.Unlock()

	for _, v := range stale {
		v.Close()
	}
	if len(stale) > 0 {
		log.Debug().Int("closed", len(stale)).Msg("swept idle views")
	}
	return len(stale)
}

// Count is the number of mounted views
func (r *Registry) Count() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.count
}

// StartSweeper runs Sweep on a cron schedule such as "@every 1m"
func (r *Registry) StartSweeper(schedule string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.cron != nil {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { r.Sweep() }); err != nil {
		return fmt.Errorf("[viewstate StartSweeper] invalid schedule %q: %w", schedule, err)
	}
	c.Start()
	r.cron = c
	log.Info().Str("schedule", schedule).Dur("idle", r.idle).Msg("view sweeper started")
	return nil
}

// StopSweeper stops the sweeper and waits for a running sweep, bounded by ctx
func (r *Registry) StopSweeper(ctx context.Context) {
	r.lock.Lock()
	c := r.cron
	r.cron = nil
	r.lock.Unlock()
	if c == nil {
		return
	}
	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
	}
}
