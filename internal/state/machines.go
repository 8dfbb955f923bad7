package state

import (
	"context"

	"github.com/sirupsen/logrus"

	"fleetops-dashboard/internal/model"
	"fleetops-dashboard/internal/session"
)

// MachineAPI is the slice of the data access layer the machine container
// consumes.
type MachineAPI interface {
	ListMachines(ctx context.Context) ([]model.Machine, error)
	GetMachine(ctx context.Context, id string) (model.Machine, error)
	CreateMachine(ctx context.Context, input model.CreateMachineInput) (model.Machine, error)
	UpdateMachine(ctx context.Context, id string, patch model.UpdateMachineInput) (model.Machine, error)
	DeleteMachine(ctx context.Context, id string) error
}

// Machines caches the fleet list and the selected machine.
type Machines struct {
	base
	api MachineAPI

	items    []model.Machine
	selected *model.Machine
	// Fetch sequence counters. A list or detail response that resolves after
	// a newer fetch of the same kind has started is dropped, closing the
	// last-write-wins race between overlapping fetches.
	listSeq uint64
	selSeq  uint64
}

// NewMachines builds the container and subscribes it to the session's
// authenticated event, so the initial fetch fires on login and never before.
func NewMachines(api MachineAPI, sess *session.Container) *Machines {
	m := &Machines{api: api}
	m.log = logrus.WithField("component", "machines")
	sess.OnAuthenticated(func(model.User) {
		go func() {
			if err := m.FetchAll(context.Background()); err != nil {
				m.log.WithError(err).Warn("initial machine fetch failed")
			}
		}()
	})
	return m
}

// Items returns a copy of the cached fleet list.
func (m *Machines) Items() []model.Machine {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Machine, len(m.items))
	copy(out, m.items)
	return out
}

// Selected returns a copy of the selected machine, or nil.
func (m *Machines) Selected() *model.Machine {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.selected == nil {
		return nil
	}
	sel := *m.selected
	return &sel
}

// FetchAll replaces the cached list with a fresh server snapshot.
func (m *Machines) FetchAll(ctx context.Context) error {
	m.mu.Lock()
	m.pending++
	m.listSeq++
	seq := m.listSeq
	m.mu.Unlock()

	items, err := m.api.ListMachines(ctx)
	if err != nil {
		return m.fail(err, "Failed to fetch machines.")
	}
	m.done(func() {
		if seq == m.listSeq {
			m.items = items
		}
	})
	return nil
}

// FetchOne loads a single machine into the selected slot. On failure the
// previous selection is left untouched.
func (m *Machines) FetchOne(ctx context.Context, id string) error {
	m.mu.Lock()
	m.pending++
	m.selSeq++
	seq := m.selSeq
	m.mu.Unlock()

	machine, err := m.api.GetMachine(ctx, id)
	if err != nil {
		return m.fail(err, "Failed to fetch machine details.")
	}
	m.done(func() {
		if seq == m.selSeq {
			m.selected = &machine
		}
	})
	return nil
}

// Create registers a new machine and appends the created record to the list.
func (m *Machines) Create(ctx context.Context, input model.CreateMachineInput) error {
	m.begin()
	created, err := m.api.CreateMachine(ctx, input)
	if err != nil {
		return m.fail(err, "Failed to create machine.")
	}
	m.done(func() {
		m.items = append(m.items, created)
	})
	return nil
}

// Update edits a machine and merges the server's record over the cached
// entry, and over the selection when it is the same machine.
func (m *Machines) Update(ctx context.Context, id string, patch model.UpdateMachineInput) error {
	m.begin()
	updated, err := m.api.UpdateMachine(ctx, id, patch)
	if err != nil {
		return m.fail(err, "Failed to update machine.")
	}
	m.done(func() {
		for i := range m.items {
			if m.items[i].ID == id {
				m.items[i] = updated
			}
		}
		if m.selected != nil && m.selected.ID == id {
			sel := updated
			m.selected = &sel
		}
	})
	return nil
}

// Delete removes a machine from the backend and the cache, clearing the
// selection when it pointed at the deleted machine.
func (m *Machines) Delete(ctx context.Context, id string) error {
	m.begin()
	if err := m.api.DeleteMachine(ctx, id); err != nil {
		return m.fail(err, "Failed to delete machine.")
	}
	m.done(func() {
		kept := make([]model.Machine, 0, len(m.items))
		for _, it := range m.items {
			if it.ID != id {
				kept = append(kept, it)
			}
		}
		m.items = kept
		if m.selected != nil && m.selected.ID == id {
			m.selected = nil
		}
	})
	return nil
}

// ClearSelected drops the selection without touching the list.
func (m *Machines) ClearSelected() {
	m.mu.Lock()
	m.selected = nil
	m.mu.Unlock()
}
