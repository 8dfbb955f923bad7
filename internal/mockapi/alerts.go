package mockapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleetops-dashboard/internal/model"
)

// ListAlerts returns a snapshot of every alert, unfiltered.
func (r *Repository) ListAlerts(ctx context.Context) ([]model.Alert, error) {
	if err := r.simulate(ctx, latencyList); err != nil {
		return nil, err
	}
	var alerts []model.Alert
	if err := r.db.WithContext(ctx).Order("id").Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return alerts, nil
}

// ListUserAlerts returns the alerts authored by the token's user.
func (r *Repository) ListUserAlerts(ctx context.Context, token string) ([]model.Alert, error) {
	if err := r.simulate(ctx, latencyScoped); err != nil {
		return nil, err
	}
	user, err := r.caller(ctx, token)
	if err != nil {
		return nil, err
	}
	var alerts []model.Alert
	if err := r.db.WithContext(ctx).Where("created_by_id = ?", user.ID).Order("id").Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("list user alerts: %w", err)
	}
	return alerts, nil
}

// CreateAlert raises a new alert authored by the token's user. The referenced
// machine must exist; its name is snapshotted onto the alert.
func (r *Repository) CreateAlert(ctx context.Context, token string, input model.CreateAlertInput) (model.Alert, error) {
	if err := r.simulate(ctx, latencyCreate); err != nil {
		return model.Alert{}, err
	}
	user, err := r.caller(ctx, token)
	if err != nil {
		return model.Alert{}, err
	}
	var machine model.Machine
	err = r.db.WithContext(ctx).First(&machine, "id = ?", input.MachineID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Alert{}, fmt.Errorf("machine %s does not exist: %w", input.MachineID, ErrValidation)
	}
	if err != nil {
		return model.Alert{}, fmt.Errorf("create alert: %w", err)
	}

	alert := model.Alert{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		MachineID:   machine.ID,
		MachineName: machine.Name,
		Priority:    input.Priority,
		Status:      model.AlertPending,
		CreatedBy:   model.UserRef{ID: user.ID, Name: user.Name},
	}
	if err := r.db.WithContext(ctx).Create(&alert).Error; err != nil {
		return model.Alert{}, fmt.Errorf("create alert: %w", err)
	}
	return alert, nil
}

// UpdateAlert shallow-merges the non-nil patch fields over the stored alert.
func (r *Repository) UpdateAlert(ctx context.Context, id string, patch model.UpdateAlertInput) (model.Alert, error) {
	if err := r.simulate(ctx, latencyUpdate); err != nil {
		return model.Alert{}, err
	}
	alert, err := r.alertByID(ctx, id)
	if err != nil {
		return model.Alert{}, err
	}
	if patch.Title != nil {
		alert.Title = *patch.Title
	}
	if patch.Description != nil {
		alert.Description = *patch.Description
	}
	if patch.Priority != nil {
		alert.Priority = *patch.Priority
	}
	if patch.Status != nil {
		alert.Status = *patch.Status
	}
	if err := r.db.WithContext(ctx).Save(&alert).Error; err != nil {
		return model.Alert{}, fmt.Errorf("update alert %s: %w", id, err)
	}
	return alert, nil
}

// AssignAlert hands the alert to a technician and moves it to the assigned
// status. Assignment is never undone by later updates.
func (r *Repository) AssignAlert(ctx context.Context, id, technicianID string) (model.Alert, error) {
	if err := r.simulate(ctx, latencyDelete); err != nil {
		return model.Alert{}, err
	}
	alert, err := r.alertByID(ctx, id)
	if err != nil {
		return model.Alert{}, err
	}
	var tech model.User
	err = r.db.WithContext(ctx).First(&tech, "id = ?", technicianID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Alert{}, fmt.Errorf("technician %s: %w", technicianID, ErrNotFound)
	}
	if err != nil {
		return model.Alert{}, fmt.Errorf("assign alert %s: %w", id, err)
	}

	alert.AssignedTo = model.UserRef{ID: tech.ID, Name: tech.Name}
	alert.Status = model.AlertAssigned
	if err := r.db.WithContext(ctx).Save(&alert).Error; err != nil {
		return model.Alert{}, fmt.Errorf("assign alert %s: %w", id, err)
	}
	return alert, nil
}

func (r *Repository) alertByID(ctx context.Context, id string) (model.Alert, error) {
	var alert model.Alert
	err := r.db.WithContext(ctx).First(&alert, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Alert{}, fmt.Errorf("alert %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Alert{}, fmt.Errorf("get alert %s: %w", id, err)
	}
	return alert, nil
}
