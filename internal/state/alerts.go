package state

import (
	"context"

	"github.com/sirupsen/logrus"

	"fleetops-dashboard/internal/model"
	"fleetops-dashboard/internal/session"
)

// AlertAPI is the slice of the data access layer the alert container
// consumes.
type AlertAPI interface {
	ListAlerts(ctx context.Context) ([]model.Alert, error)
	ListUserAlerts(ctx context.Context, token string) ([]model.Alert, error)
	CreateAlert(ctx context.Context, token string, input model.CreateAlertInput) (model.Alert, error)
	UpdateAlert(ctx context.Context, id string, patch model.UpdateAlertInput) (model.Alert, error)
	AssignAlert(ctx context.Context, id, technicianID string) (model.Alert, error)
}

// Alerts caches the full alert list and the subset authored by the current
// user.
type Alerts struct {
	base
	api  AlertAPI
	sess *session.Container

	items   []model.Alert
	mine    []model.Alert
	listSeq uint64
	mineSeq uint64
}

// NewAlerts builds the container and subscribes it to the session's
// authenticated event. Both lists are fetched for every role, matching the
// dashboard's prefetch behavior.
func NewAlerts(api AlertAPI, sess *session.Container) *Alerts {
	a := &Alerts{api: api, sess: sess}
	a.log = logrus.WithField("component", "alerts")
	sess.OnAuthenticated(func(model.User) {
		go func() {
			if err := a.FetchAll(context.Background()); err != nil {
				a.log.WithError(err).Warn("initial alert fetch failed")
			}
			if err := a.FetchMine(context.Background()); err != nil {
				a.log.WithError(err).Warn("initial user alert fetch failed")
			}
		}()
	})
	return a
}

// Items returns a copy of the cached alert list.
func (a *Alerts) Items() []model.Alert {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]model.Alert, len(a.items))
	copy(out, a.items)
	return out
}

// Mine returns a copy of the alerts authored by the current user.
func (a *Alerts) Mine() []model.Alert {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]model.Alert, len(a.mine))
	copy(out, a.mine)
	return out
}

// FetchAll replaces the cached list with a fresh server snapshot.
func (a *Alerts) FetchAll(ctx context.Context) error {
	a.mu.Lock()
	a.pending++
	a.listSeq++
	seq := a.listSeq
	a.mu.Unlock()

	items, err := a.api.ListAlerts(ctx)
	if err != nil {
		return a.fail(err, "Failed to fetch alerts.")
	}
	a.done(func() {
		if seq == a.listSeq {
			a.items = items
		}
	})
	return nil
}

// FetchMine replaces the authored-by-me list with a fresh server snapshot.
func (a *Alerts) FetchMine(ctx context.Context) error {
	a.mu.Lock()
	a.pending++
	a.mineSeq++
	seq := a.mineSeq
	a.mu.Unlock()

	mine, err := a.api.ListUserAlerts(ctx, a.sess.Token())
	if err != nil {
		return a.fail(err, "Failed to fetch your alerts.")
	}
	a.done(func() {
		if seq == a.mineSeq {
			a.mine = mine
		}
	})
	return nil
}

// Create raises a new alert. The created record lands in both lists: the
// caller is always its author.
func (a *Alerts) Create(ctx context.Context, input model.CreateAlertInput) error {
	a.begin()
	created, err := a.api.CreateAlert(ctx, a.sess.Token(), input)
	if err != nil {
		return a.fail(err, "Failed to create alert.")
	}
	a.done(func() {
		a.items = append(a.items, created)
		a.mine = append(a.mine, created)
	})
	return nil
}

// Update edits an alert and merges the server's record over both cached
// lists.
func (a *Alerts) Update(ctx context.Context, id string, patch model.UpdateAlertInput) error {
	a.begin()
	updated, err := a.api.UpdateAlert(ctx, id, patch)
	if err != nil {
		return a.fail(err, "Failed to update alert.")
	}
	a.done(func() {
		mergeAlert(a.items, updated)
		mergeAlert(a.mine, updated)
	})
	return nil
}

// Assign hands the alert to a technician. Only the full list is merged:
// assignment does not change authorship, so the "mine" list needs no edit
// beyond what a later fetch would bring in.
func (a *Alerts) Assign(ctx context.Context, id, technicianID string) error {
	a.begin()
	updated, err := a.api.AssignAlert(ctx, id, technicianID)
	if err != nil {
		return a.fail(err, "Failed to assign alert.")
	}
	a.done(func() {
		mergeAlert(a.items, updated)
	})
	return nil
}

func mergeAlert(list []model.Alert, updated model.Alert) {
	for i := range list {
		if list[i].ID == updated.ID {
			list[i] = updated
		}
	}
}
