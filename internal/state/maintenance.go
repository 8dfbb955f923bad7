package state

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"fleetops-dashboard/internal/model"
	"fleetops-dashboard/internal/session"
)

// MaintenanceAPI is the slice of the data access layer the maintenance
// container consumes.
type MaintenanceAPI interface {
	ListMaintenance(ctx context.Context) ([]model.Maintenance, error)
	ListTechnicianMaintenance(ctx context.Context, token string) ([]model.Maintenance, error)
	GetMaintenance(ctx context.Context, id string) (model.Maintenance, error)
	CreateMaintenance(ctx context.Context, token string, input model.CreateMaintenanceInput) (model.Maintenance, error)
	UpdateMaintenance(ctx context.Context, id string, patch model.UpdateMaintenanceInput) (model.Maintenance, error)
	CompleteMaintenance(ctx context.Context, id string, endTime time.Time) (model.Maintenance, error)
}

// Maintenance caches all maintenance records, the subset owned by the
// current technician, and a selected record for the detail view.
type Maintenance struct {
	base
	api  MaintenanceAPI
	sess *session.Container

	items    []model.Maintenance
	mine     []model.Maintenance
	selected *model.Maintenance
	listSeq  uint64
	mineSeq  uint64
	selSeq   uint64
}

// NewMaintenance builds the container and subscribes it to the session's
// authenticated event. The technician-scoped list is only fetched for the
// technician role; nobody else consumes it.
func NewMaintenance(api MaintenanceAPI, sess *session.Container) *Maintenance {
	m := &Maintenance{api: api, sess: sess}
	m.log = logrus.WithField("component", "maintenance")
	sess.OnAuthenticated(func(user model.User) {
		go func() {
			if err := m.FetchAll(context.Background()); err != nil {
				m.log.WithError(err).Warn("initial maintenance fetch failed")
			}
			if user.Role == model.RoleTechnician {
				if err := m.FetchMine(context.Background()); err != nil {
					m.log.WithError(err).Warn("initial technician maintenance fetch failed")
				}
			}
		}()
	})
	return m
}

// Items returns a copy of the cached record list.
func (m *Maintenance) Items() []model.Maintenance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Maintenance, len(m.items))
	copy(out, m.items)
	return out
}

// Mine returns a copy of the records owned by the current technician.
func (m *Maintenance) Mine() []model.Maintenance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Maintenance, len(m.mine))
	copy(out, m.mine)
	return out
}

// Selected returns a copy of the selected record, or nil.
func (m *Maintenance) Selected() *model.Maintenance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.selected == nil {
		return nil
	}
	sel := *m.selected
	return &sel
}

// FetchAll replaces the cached list with a fresh server snapshot.
func (m *Maintenance) FetchAll(ctx context.Context) error {
	m.mu.Lock()
	m.pending++
	m.listSeq++
	seq := m.listSeq
	m.mu.Unlock()

	items, err := m.api.ListMaintenance(ctx)
	if err != nil {
		return m.fail(err, "Failed to fetch maintenance records.")
	}
	m.done(func() {
		if seq == m.listSeq {
			m.items = items
		}
	})
	return nil
}

// FetchMine replaces the technician-scoped list with a fresh snapshot.
func (m *Maintenance) FetchMine(ctx context.Context) error {
	m.mu.Lock()
	m.pending++
	m.mineSeq++
	seq := m.mineSeq
	m.mu.Unlock()

	mine, err := m.api.ListTechnicianMaintenance(ctx, m.sess.Token())
	if err != nil {
		return m.fail(err, "Failed to fetch your maintenance records.")
	}
	m.done(func() {
		if seq == m.mineSeq {
			m.mine = mine
		}
	})
	return nil
}

// FetchByID loads a single record into the selected slot. On failure the
// previous selection is left untouched.
func (m *Maintenance) FetchByID(ctx context.Context, id string) error {
	m.mu.Lock()
	m.pending++
	m.selSeq++
	seq := m.selSeq
	m.mu.Unlock()

	record, err := m.api.GetMaintenance(ctx, id)
	if err != nil {
		return m.fail(err, "Failed to fetch maintenance details.")
	}
	m.done(func() {
		if seq == m.selSeq {
			m.selected = &record
		}
	})
	return nil
}

// Create opens a new record. It lands in the technician-scoped list as well
// when the caller holds the technician role, since the backend makes the
// caller its technician.
func (m *Maintenance) Create(ctx context.Context, input model.CreateMaintenanceInput) error {
	m.begin()
	created, err := m.api.CreateMaintenance(ctx, m.sess.Token(), input)
	if err != nil {
		return m.fail(err, "Failed to create maintenance record.")
	}
	technician := false
	if u := m.sess.User(); u != nil && u.Role == model.RoleTechnician {
		technician = true
	}
	m.done(func() {
		m.items = append(m.items, created)
		if technician {
			m.mine = append(m.mine, created)
		}
	})
	return nil
}

// Update edits a record and merges the server's record over every cached
// copy.
func (m *Maintenance) Update(ctx context.Context, id string, patch model.UpdateMaintenanceInput) error {
	m.begin()
	updated, err := m.api.UpdateMaintenance(ctx, id, patch)
	if err != nil {
		return m.fail(err, "Failed to update maintenance record.")
	}
	m.done(func() {
		m.merge(updated)
	})
	return nil
}

// Complete closes a record. The merged server record carries the completed
// status and end time together, and the merge happens under one lock, so the
// two are never observable apart.
func (m *Maintenance) Complete(ctx context.Context, id string, endTime time.Time) error {
	m.begin()
	updated, err := m.api.CompleteMaintenance(ctx, id, endTime)
	if err != nil {
		return m.fail(err, "Failed to complete maintenance record.")
	}
	m.done(func() {
		m.merge(updated)
	})
	return nil
}

// ClearSelected drops the selection without touching the lists.
func (m *Maintenance) ClearSelected() {
	m.mu.Lock()
	m.selected = nil
	m.mu.Unlock()
}

func (m *Maintenance) merge(updated model.Maintenance) {
	for i := range m.items {
		if m.items[i].ID == updated.ID {
			m.items[i] = updated
		}
	}
	for i := range m.mine {
		if m.mine[i].ID == updated.ID {
			m.mine[i] = updated
		}
	}
	if m.selected != nil && m.selected.ID == updated.ID {
		sel := updated
		m.selected = &sel
	}
}
