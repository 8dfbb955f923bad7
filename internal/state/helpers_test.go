package state

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fleetops-dashboard/internal/db"
	"fleetops-dashboard/internal/mockapi"
	"fleetops-dashboard/internal/model"
	"fleetops-dashboard/internal/session"
)

// env wires a seeded zero-latency backend to a fresh session container, the
// same shape the binary assembles at startup.
type env struct {
	repo *mockapi.Repository
	sess *session.Container
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gormDB, err := db.Open()
	require.NoError(t, err)
	repo := mockapi.New(gormDB, mockapi.Options{})
	require.NoError(t, repo.Seed())
	return &env{repo: repo, sess: session.New(repo, &session.MemTokenStore{})}
}

func (e *env) login(t *testing.T, email string) {
	t.Helper()
	require.NoError(t, e.sess.Login(context.Background(), email, mockapi.TestPassword))
}

// settle waits until the fetches spawned by the authenticated event have
// drained. The backend runs with zero latency, so a short grace period covers
// the gap between the goroutine's sequential fetches where the loading flag
// dips back to false.
func settle(t *testing.T, c interface{ IsLoading() bool }) {
	t.Helper()
	time.Sleep(25 * time.Millisecond)
	require.Eventually(t, func() bool { return !c.IsLoading() }, time.Second, 2*time.Millisecond)
}

// fakeMachineAPI counts list calls and serves canned data; the write methods
// are never reached in the tests that use it.
type fakeMachineAPI struct {
	mu        sync.Mutex
	listCalls int
	items     []model.Machine
}

func (f *fakeMachineAPI) ListMachines(context.Context) ([]model.Machine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return f.items, nil
}

func (f *fakeMachineAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func (f *fakeMachineAPI) GetMachine(context.Context, string) (model.Machine, error) {
	return model.Machine{}, mockapi.ErrNotFound
}

func (f *fakeMachineAPI) CreateMachine(context.Context, model.CreateMachineInput) (model.Machine, error) {
	return model.Machine{}, mockapi.ErrValidation
}

func (f *fakeMachineAPI) UpdateMachine(context.Context, string, model.UpdateMachineInput) (model.Machine, error) {
	return model.Machine{}, mockapi.ErrNotFound
}

func (f *fakeMachineAPI) DeleteMachine(context.Context, string) error {
	return mockapi.ErrNotFound
}

// blockingMachineAPI parks every ListMachines call until the test feeds its
// reply channel, so overlapping fetches can be resolved in a chosen order.
type blockingMachineAPI struct {
	fakeMachineAPI
	calls chan chan []model.Machine
}

func (b *blockingMachineAPI) ListMachines(context.Context) ([]model.Machine, error) {
	reply := make(chan []model.Machine)
	b.calls <- reply
	return <-reply, nil
}

// fakeMaintenanceAPI counts the two list fetches to observe role gating.
type fakeMaintenanceAPI struct {
	mu        sync.Mutex
	listCalls int
	mineCalls int
}

func (f *fakeMaintenanceAPI) ListMaintenance(context.Context) ([]model.Maintenance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return nil, nil
}

func (f *fakeMaintenanceAPI) ListTechnicianMaintenance(context.Context, string) ([]model.Maintenance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mineCalls++
	return nil, nil
}

func (f *fakeMaintenanceAPI) counts() (list, mine int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.mineCalls
}

func (f *fakeMaintenanceAPI) GetMaintenance(context.Context, string) (model.Maintenance, error) {
	return model.Maintenance{}, mockapi.ErrNotFound
}

func (f *fakeMaintenanceAPI) CreateMaintenance(context.Context, string, model.CreateMaintenanceInput) (model.Maintenance, error) {
	return model.Maintenance{}, mockapi.ErrValidation
}

func (f *fakeMaintenanceAPI) UpdateMaintenance(context.Context, string, model.UpdateMaintenanceInput) (model.Maintenance, error) {
	return model.Maintenance{}, mockapi.ErrNotFound
}

func (f *fakeMaintenanceAPI) CompleteMaintenance(context.Context, string, time.Time) (model.Maintenance, error) {
	return model.Maintenance{}, mockapi.ErrNotFound
}
