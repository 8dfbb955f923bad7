package mockapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleetops-dashboard/internal/model"
)

// ListMachines returns a snapshot of the whole fleet.
func (r *Repository) ListMachines(ctx context.Context) ([]model.Machine, error) {
	if err := r.simulate(ctx, latencyList); err != nil {
		return nil, err
	}
	var machines []model.Machine
	if err := r.db.WithContext(ctx).Order("id").Find(&machines).Error; err != nil {
		return nil, fmt.Errorf("list machines: %w", err)
	}
	return machines, nil
}

// GetMachine returns a single machine by id.
func (r *Repository) GetMachine(ctx context.Context, id string) (model.Machine, error) {
	if err := r.simulate(ctx, latencyGet); err != nil {
		return model.Machine{}, err
	}
	return r.machineByID(ctx, id)
}

// CreateMachine registers a new machine as freshly operational.
func (r *Repository) CreateMachine(ctx context.Context, input model.CreateMachineInput) (model.Machine, error) {
	if err := r.simulate(ctx, latencyCreate); err != nil {
		return model.Machine{}, err
	}
	machine := model.Machine{
		ID:               uuid.NewString(),
		Name:             input.Name,
		SerialNumber:     input.SerialNumber,
		Model:            input.Model,
		Type:             input.Type,
		Location:         input.Location,
		Status:           model.MachineOperational,
		Metrics:          model.Metrics{Availability: 100, Performance: 100, Quality: 100, OEE: 100},
		InstallationDate: input.InstallationDate,
		ImageURL:         input.ImageURL,
	}
	if err := r.db.WithContext(ctx).Create(&machine).Error; err != nil {
		return model.Machine{}, fmt.Errorf("create machine: %w", err)
	}
	return machine, nil
}

// UpdateMachine shallow-merges the non-nil patch fields over the stored
// record and refreshes its update timestamp.
func (r *Repository) UpdateMachine(ctx context.Context, id string, patch model.UpdateMachineInput) (model.Machine, error) {
	if err := r.simulate(ctx, latencyUpdate); err != nil {
		return model.Machine{}, err
	}
	machine, err := r.machineByID(ctx, id)
	if err != nil {
		return model.Machine{}, err
	}
	if patch.Name != nil {
		machine.Name = *patch.Name
	}
	if patch.SerialNumber != nil {
		machine.SerialNumber = *patch.SerialNumber
	}
	if patch.Model != nil {
		machine.Model = *patch.Model
	}
	if patch.Type != nil {
		machine.Type = *patch.Type
	}
	if patch.Location != nil {
		machine.Location = *patch.Location
	}
	if patch.Status != nil {
		machine.Status = *patch.Status
	}
	if patch.LastMaintenance != nil {
		machine.LastMaintenance = patch.LastMaintenance
	}
	if patch.NextMaintenance != nil {
		machine.NextMaintenance = patch.NextMaintenance
	}
	if patch.Metrics != nil {
		machine.Metrics = *patch.Metrics
	}
	if patch.InstallationDate != nil {
		machine.InstallationDate = *patch.InstallationDate
	}
	if patch.ImageURL != nil {
		machine.ImageURL = *patch.ImageURL
	}
	if err := r.db.WithContext(ctx).Save(&machine).Error; err != nil {
		return model.Machine{}, fmt.Errorf("update machine %s: %w", id, err)
	}
	return machine, nil
}

// DeleteMachine removes a machine from the fleet. Alerts and maintenance
// records keep their snapshot of the machine's name.
func (r *Repository) DeleteMachine(ctx context.Context, id string) error {
	if err := r.simulate(ctx, latencyDelete); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Delete(&model.Machine{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete machine %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("machine %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *Repository) machineByID(ctx context.Context, id string) (model.Machine, error) {
	var machine model.Machine
	err := r.db.WithContext(ctx).First(&machine, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Machine{}, fmt.Errorf("machine %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Machine{}, fmt.Errorf("get machine %s: %w", id, err)
	}
	return machine, nil
}
