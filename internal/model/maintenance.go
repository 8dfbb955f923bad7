package model

import "time"

// Maintenance statuses.
const (
	MaintenancePending    = "pending"
	MaintenanceInProgress = "in-progress"
	MaintenanceCompleted  = "completed"
)

// Maintenance is one service intervention on a machine.
type Maintenance struct {
	ID        string `gorm:"primaryKey;size:64" json:"id"`
	MachineID string `gorm:"size:64;index;not null" json:"machineId"`
	// MachineName is snapshotted at creation time, same as on alerts.
	MachineName        string    `gorm:"size:128" json:"machineName"`
	ProblemDescription string    `gorm:"type:text" json:"problemDescription"`
	StartTime          time.Time `json:"startTime"`
	// EndTime stays nil until the record is completed.
	EndTime       *time.Time `json:"endTime"`
	Status        string     `gorm:"size:16;not null" json:"status"`
	Technician    UserRef    `gorm:"embedded;embeddedPrefix:technician_" json:"technician"`
	Notes         string     `gorm:"type:text" json:"notes,omitempty"`
	PartsReplaced string     `gorm:"size:256" json:"partsReplaced,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// CreateMaintenanceInput is the validated input shape for creating a record.
// The technician is the authenticated caller.
type CreateMaintenanceInput struct {
	MachineID          string
	ProblemDescription string
	StartTime          time.Time
	Status             string
	Notes              string
	PartsReplaced      string
}

// UpdateMaintenanceInput carries a partial edit; nil fields are left
// untouched. There is deliberately no end time here: completing a record is
// the only operation allowed to set it, together with the completed status.
type UpdateMaintenanceInput struct {
	ProblemDescription *string
	StartTime          *time.Time
	Status             *string
	Notes              *string
	PartsReplaced      *string
}
