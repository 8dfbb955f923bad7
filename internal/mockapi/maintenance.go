package mockapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleetops-dashboard/internal/model"
)

// ListMaintenance returns a snapshot of every maintenance record.
func (r *Repository) ListMaintenance(ctx context.Context) ([]model.Maintenance, error) {
	if err := r.simulate(ctx, latencyList); err != nil {
		return nil, err
	}
	var records []model.Maintenance
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list maintenance: %w", err)
	}
	return records, nil
}

// ListTechnicianMaintenance returns the records owned by the token's user as
// technician.
func (r *Repository) ListTechnicianMaintenance(ctx context.Context, token string) ([]model.Maintenance, error) {
	if err := r.simulate(ctx, latencyScoped); err != nil {
		return nil, err
	}
	user, err := r.caller(ctx, token)
	if err != nil {
		return nil, err
	}
	var records []model.Maintenance
	if err := r.db.WithContext(ctx).Where("technician_id = ?", user.ID).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list technician maintenance: %w", err)
	}
	return records, nil
}

// GetMaintenance returns a single record by id.
func (r *Repository) GetMaintenance(ctx context.Context, id string) (model.Maintenance, error) {
	if err := r.simulate(ctx, latencyGet); err != nil {
		return model.Maintenance{}, err
	}
	return r.maintenanceByID(ctx, id)
}

// CreateMaintenance opens a new record with the token's user as technician.
// The referenced machine must exist; its name is snapshotted onto the record.
func (r *Repository) CreateMaintenance(ctx context.Context, token string, input model.CreateMaintenanceInput) (model.Maintenance, error) {
	if err := r.simulate(ctx, latencyCreate); err != nil {
		return model.Maintenance{}, err
	}
	user, err := r.caller(ctx, token)
	if err != nil {
		return model.Maintenance{}, err
	}
	var machine model.Machine
	err = r.db.WithContext(ctx).First(&machine, "id = ?", input.MachineID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Maintenance{}, fmt.Errorf("machine %s does not exist: %w", input.MachineID, ErrValidation)
	}
	if err != nil {
		return model.Maintenance{}, fmt.Errorf("create maintenance: %w", err)
	}

	status := input.Status
	if status == "" {
		status = model.MaintenancePending
	}
	record := model.Maintenance{
		ID:                 uuid.NewString(),
		MachineID:          machine.ID,
		MachineName:        machine.Name,
		ProblemDescription: input.ProblemDescription,
		StartTime:          input.StartTime,
		Status:             status,
		Technician:         model.UserRef{ID: user.ID, Name: user.Name},
		Notes:              input.Notes,
		PartsReplaced:      input.PartsReplaced,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return model.Maintenance{}, fmt.Errorf("create maintenance: %w", err)
	}
	return record, nil
}

// UpdateMaintenance shallow-merges the non-nil patch fields over the stored
// record. The end time cannot be changed here; see CompleteMaintenance.
func (r *Repository) UpdateMaintenance(ctx context.Context, id string, patch model.UpdateMaintenanceInput) (model.Maintenance, error) {
	if err := r.simulate(ctx, latencyUpdate); err != nil {
		return model.Maintenance{}, err
	}
	record, err := r.maintenanceByID(ctx, id)
	if err != nil {
		return model.Maintenance{}, err
	}
	if patch.ProblemDescription != nil {
		record.ProblemDescription = *patch.ProblemDescription
	}
	if patch.StartTime != nil {
		record.StartTime = *patch.StartTime
	}
	if patch.Status != nil {
		record.Status = *patch.Status
	}
	if patch.Notes != nil {
		record.Notes = *patch.Notes
	}
	if patch.PartsReplaced != nil {
		record.PartsReplaced = *patch.PartsReplaced
	}
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return model.Maintenance{}, fmt.Errorf("update maintenance %s: %w", id, err)
	}
	return record, nil
}

// CompleteMaintenance closes a record: the completed status and the end time
// are set together in a single write, so no caller ever observes one without
// the other.
func (r *Repository) CompleteMaintenance(ctx context.Context, id string, endTime time.Time) (model.Maintenance, error) {
	if err := r.simulate(ctx, latencyDelete); err != nil {
		return model.Maintenance{}, err
	}
	record, err := r.maintenanceByID(ctx, id)
	if err != nil {
		return model.Maintenance{}, err
	}
	record.Status = model.MaintenanceCompleted
	record.EndTime = &endTime
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return model.Maintenance{}, fmt.Errorf("complete maintenance %s: %w", id, err)
	}
	return record, nil
}

func (r *Repository) maintenanceByID(ctx context.Context, id string) (model.Maintenance, error) {
	var record model.Maintenance
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Maintenance{}, fmt.Errorf("maintenance record %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Maintenance{}, fmt.Errorf("get maintenance %s: %w", id, err)
	}
	return record, nil
}
