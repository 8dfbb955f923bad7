// Package mockapi simulates a REST backend for the dashboard: asynchronous
// CRUD over an in-memory database with artificial latency and typed failures.
// It exists so the state layer can be developed and tested without a server;
// a real HTTP client implementing the same call surface is a drop-in
// replacement.
package mockapi

import (
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Options tunes the simulated backend.
type Options struct {
	// LatencyScale multiplies the baseline per-operation latency. Zero
	// disables the artificial delay, which is what tests want.
	LatencyScale float64
	// SessionTTL bounds how long a bearer token stays resolvable.
	SessionTTL time.Duration
	// AttemptsPerMinute and AttemptBurst throttle credential attempts per
	// email address.
	AttemptsPerMinute float64
	AttemptBurst      int
	// Now supplies timestamps for the seed fixtures; defaults to time.Now.
	Now func() time.Time
}

// Repository owns the source-of-truth records. Every method returns detached
// copies, so callers can merge results into their own caches freely.
type Repository struct {
	db       *gorm.DB
	sessions *cache.Cache
	attempts *keyedLimiter
	opts     Options
	log      *logrus.Entry
}

// New builds a repository over the given database. Each repository instance
// is fully isolated; tests construct one per case.
func New(db *gorm.DB, opts Options) *Repository {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if opts.AttemptsPerMinute <= 0 {
		opts.AttemptsPerMinute = 60
	}
	if opts.AttemptBurst <= 0 {
		opts.AttemptBurst = 10
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Repository{
		db:       db,
		sessions: cache.New(opts.SessionTTL, 10*time.Minute),
		attempts: newKeyedLimiter(rate.Limit(opts.AttemptsPerMinute/60), opts.AttemptBurst),
		opts:     opts,
		log:      logrus.WithField("component", "mockapi"),
	}
}
