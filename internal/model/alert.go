package model

import "time"

// Alert priorities.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Alert statuses. Transitions go pending -> assigned (via assignment) and on
// to in-progress/resolved via updates; assignment is never undone.
const (
	AlertPending    = "pending"
	AlertAssigned   = "assigned"
	AlertInProgress = "in-progress"
	AlertResolved   = "resolved"
)

// Alert is an operational problem report raised against a machine.
type Alert struct {
	ID          string `gorm:"primaryKey;size:64" json:"id"`
	Title       string `gorm:"size:256;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	MachineID   string `gorm:"size:64;index;not null" json:"machineId"`
	// MachineName is snapshotted from the machine at creation time and is not
	// re-synced if the machine is later renamed.
	MachineName string    `gorm:"size:128" json:"machineName"`
	Priority    string    `gorm:"size:16;not null" json:"priority"`
	Status      string    `gorm:"size:16;not null" json:"status"`
	CreatedBy   UserRef   `gorm:"embedded;embeddedPrefix:created_by_" json:"createdBy"`
	AssignedTo  UserRef   `gorm:"embedded;embeddedPrefix:assigned_to_" json:"assignedTo,omitzero"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Assigned reports whether the alert has been handed to a technician.
func (a Alert) Assigned() bool { return a.AssignedTo.ID != "" }

// CreateAlertInput is the validated input shape for alert creation. The
// creator and machine name snapshot are filled in by the backend.
type CreateAlertInput struct {
	Title       string
	Description string
	MachineID   string
	Priority    string
}

// UpdateAlertInput carries a partial edit; nil fields are left untouched.
// Assignment has its own operation and cannot be changed here.
type UpdateAlertInput struct {
	Title       *string
	Description *string
	Priority    *string
	Status      *string
}
