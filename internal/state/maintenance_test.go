package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetops-dashboard/internal/model"
)

func TestMaintenanceFetchOnLoginAsTechnician(t *testing.T) {
	e := newEnv(t)
	m := NewMaintenance(e.repo, e.sess)

	e.login(t, "tech@example.com")

	// The seed technician owns all three records.
	require.Eventually(t, func() bool {
		return len(m.Items()) == 3 && len(m.Mine()) == 3 && !m.IsLoading()
	}, time.Second, 2*time.Millisecond)
}

func TestMaintenanceScopedFetchIsTechnicianOnly(t *testing.T) {
	for _, email := range []string{"admin@example.com", "user@example.com"} {
		t.Run(email, func(t *testing.T) {
			e := newEnv(t)
			api := &fakeMaintenanceAPI{}
			NewMaintenance(api, e.sess)

			e.login(t, email)

			require.Eventually(t, func() bool {
				list, _ := api.counts()
				return list == 1
			}, time.Second, 2*time.Millisecond)

			// Give a wrongly gated scoped fetch time to show up.
			time.Sleep(50 * time.Millisecond)
			_, mine := api.counts()
			assert.Zero(t, mine, "only the technician role fetches the scoped list")
		})
	}
}

func TestMaintenanceFetchByID(t *testing.T) {
	e := newEnv(t)
	m := NewMaintenance(e.repo, e.sess)
	e.login(t, "tech@example.com")
	settle(t, m)
	ctx := context.Background()

	require.NoError(t, m.FetchByID(ctx, "2"))
	require.NotNil(t, m.Selected())
	assert.Equal(t, model.MaintenanceInProgress, m.Selected().Status)

	err := m.FetchByID(ctx, "999")
	require.Error(t, err)
	require.NotNil(t, m.Selected())
	assert.Equal(t, "2", m.Selected().ID)

	m.ClearSelected()
	assert.Nil(t, m.Selected())
}

func TestMaintenanceCreateAsTechnician(t *testing.T) {
	e := newEnv(t)
	m := NewMaintenance(e.repo, e.sess)
	e.login(t, "tech@example.com")
	settle(t, m)

	require.NoError(t, m.Create(context.Background(), model.CreateMaintenanceInput{
		MachineID:          "1",
		ProblemDescription: "Laser head recalibration",
		StartTime:          time.Now().Add(time.Hour),
	}))

	require.Len(t, m.Items(), 4)
	require.Len(t, m.Mine(), 4, "a technician's new record lands in the scoped list")
	assert.Equal(t, model.UserRef{ID: "2", Name: "Technician User"}, m.Mine()[3].Technician)
}

func TestMaintenanceCreateAsAdmin(t *testing.T) {
	e := newEnv(t)
	m := NewMaintenance(e.repo, e.sess)
	e.login(t, "admin@example.com")
	settle(t, m)

	require.NoError(t, m.Create(context.Background(), model.CreateMaintenanceInput{
		MachineID:          "1",
		ProblemDescription: "Inspection after relocation",
		StartTime:          time.Now().Add(time.Hour),
	}))

	require.Len(t, m.Items(), 4)
	assert.Empty(t, m.Mine(), "non-technicians do not consume the scoped list")
}

func TestMaintenanceUpdate(t *testing.T) {
	e := newEnv(t)
	m := NewMaintenance(e.repo, e.sess)
	e.login(t, "tech@example.com")
	settle(t, m)

	notes := "Valve replaced, running load test."
	require.NoError(t, m.Update(context.Background(), "2", model.UpdateMaintenanceInput{Notes: &notes}))

	assert.Equal(t, notes, m.Items()[1].Notes)
	assert.Equal(t, notes, m.Mine()[1].Notes)

	// The update path never closes a record.
	assert.Equal(t, model.MaintenanceInProgress, m.Items()[1].Status)
	assert.Nil(t, m.Items()[1].EndTime)
}

func TestMaintenanceCompleteMergesEverywhere(t *testing.T) {
	e := newEnv(t)
	m := NewMaintenance(e.repo, e.sess)
	e.login(t, "tech@example.com")
	settle(t, m)
	ctx := context.Background()

	require.NoError(t, m.FetchByID(ctx, "2"))

	end := time.Now().Round(time.Second)
	require.NoError(t, m.Complete(ctx, "2", end))

	for _, got := range []model.Maintenance{m.Items()[1], m.Mine()[1], *m.Selected()} {
		assert.Equal(t, model.MaintenanceCompleted, got.Status)
		require.NotNil(t, got.EndTime)
		assert.True(t, got.EndTime.Equal(end))
	}
}

func TestMaintenanceCompleteFailureLeavesCache(t *testing.T) {
	e := newEnv(t)
	m := NewMaintenance(e.repo, e.sess)
	e.login(t, "tech@example.com")
	settle(t, m)

	err := m.Complete(context.Background(), "999", time.Now())
	require.Error(t, err)

	assert.Equal(t, model.MaintenanceInProgress, m.Items()[1].Status)
	assert.NotEmpty(t, m.LastError())
}
