package model

import "time"

// Machine statuses.
const (
	MachineOperational = "operational"
	MachineMaintenance = "maintenance"
	MachineOffline     = "offline"
)

// Metrics holds a machine's operating percentages.
type Metrics struct {
	Availability int `json:"availability"`
	Performance  int `json:"performance"`
	Quality      int `json:"quality"`
	OEE          int `gorm:"column:oee" json:"oee"`
}

// Machine is one manufacturing machine in the fleet.
type Machine struct {
	ID               string     `gorm:"primaryKey;size:64" json:"id"`
	Name             string     `gorm:"size:128;not null" json:"name"`
	SerialNumber     string     `gorm:"size:64" json:"serialNumber"`
	Model            string     `gorm:"size:128" json:"model"`
	Type             string     `gorm:"size:64" json:"type"`
	Location         string     `gorm:"size:128" json:"location"`
	Status           string     `gorm:"size:16;not null" json:"status"`
	LastMaintenance  *time.Time `json:"lastMaintenance"`
	NextMaintenance  *time.Time `json:"nextMaintenance"`
	Metrics          Metrics    `gorm:"embedded;embeddedPrefix:metric_" json:"metrics"`
	InstallationDate time.Time  `json:"installationDate"`
	ImageURL         string     `gorm:"size:256" json:"imageUrl,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// CreateMachineInput is the validated input shape for machine creation.
// Status and metrics are assigned by the backend.
type CreateMachineInput struct {
	Name             string
	SerialNumber     string
	Model            string
	Type             string
	Location         string
	InstallationDate time.Time
	ImageURL         string
}

// UpdateMachineInput carries a partial edit; nil fields are left untouched.
type UpdateMachineInput struct {
	Name             *string
	SerialNumber     *string
	Model            *string
	Type             *string
	Location         *string
	Status           *string
	LastMaintenance  *time.Time
	NextMaintenance  *time.Time
	Metrics          *Metrics
	InstallationDate *time.Time
	ImageURL         *string
}
