// Package state holds the client-side caches for machines, alerts and
// maintenance records. Reads are synchronous against the cache; writes go
// through the data access layer first and the cache is only touched after the
// call succeeds, using the returned record as the authoritative patch source.
package state

import (
	"sync"

	"github.com/sirupsen/logrus"

	"fleetops-dashboard/internal/mockapi"
)

// base carries what every domain container shares: a lock, an in-flight
// operation count, and the last user-facing error.
type base struct {
	mu        sync.RWMutex
	pending   int
	lastError string
	log       *logrus.Entry
}

// begin marks an operation as in flight.
func (b *base) begin() {
	b.mu.Lock()
	b.pending++
	b.mu.Unlock()
}

// fail finishes an operation, records the user-facing message and hands the
// error back unchanged so the initiating caller can react to it too.
func (b *base) fail(err error, fallback string) error {
	b.mu.Lock()
	b.pending--
	b.lastError = mockapi.Humanize(err, fallback)
	b.mu.Unlock()
	return err
}

// done finishes an operation, clears the error and applies the cache mutation
// under the lock. Failed calls never reach apply, so cached state is
// all-or-nothing from the caller's point of view.
func (b *base) done(apply func()) {
	b.mu.Lock()
	b.pending--
	b.lastError = ""
	if apply != nil {
		apply()
	}
	b.mu.Unlock()
}

// IsLoading reports whether any operation is in flight. Previously cached
// data stays visible while it is.
func (b *base) IsLoading() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pending > 0
}

// LastError returns the most recent user-facing failure message, if any.
func (b *base) LastError() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastError
}

// ClearError resets the error without touching cached data.
func (b *base) ClearError() {
	b.mu.Lock()
	b.lastError = ""
	b.mu.Unlock()
}
