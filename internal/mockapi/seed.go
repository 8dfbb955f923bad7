package mockapi

import (
	"fmt"
	"time"

	"fleetops-dashboard/internal/model"
)

// Seed loads the demo fleet: three accounts (one per role), three machines
// and a spread of alert and maintenance states, all with fixed ids "1".."3".
func (r *Repository) Seed() error {
	now := r.opts.Now()

	users := []model.User{
		{ID: "1", Name: "Admin User", Email: "admin@example.com", Role: model.RoleAdmin},
		{ID: "2", Name: "Technician User", Email: "tech@example.com", Role: model.RoleTechnician},
		{ID: "3", Name: "Regular User", Email: "user@example.com", Role: model.RoleUser},
	}

	machines := []model.Machine{
		{
			ID:               "1",
			Name:             "DLM-1001",
			SerialNumber:     "SN-10029485",
			Model:            "Denim Laser 3000",
			Type:             "Laser Processing",
			Location:         "Production Floor A",
			Status:           model.MachineOperational,
			LastMaintenance:  tp(date(2023, time.July, 15)),
			NextMaintenance:  tp(date(2023, time.October, 15)),
			Metrics:          model.Metrics{Availability: 92, Performance: 85, Quality: 98, OEE: 76},
			InstallationDate: date(2022, time.February, 10),
			CreatedAt:        date(2022, time.February, 10),
			UpdatedAt:        date(2023, time.August, 5),
		},
		{
			ID:               "2",
			Name:             "DLM-2003",
			SerialNumber:     "SN-20038572",
			Model:            "Denim Washing Pro",
			Type:             "Denim Washing",
			Location:         "Production Floor B",
			Status:           model.MachineMaintenance,
			LastMaintenance:  tp(date(2023, time.June, 10)),
			NextMaintenance:  tp(date(2023, time.September, 10)),
			Metrics:          model.Metrics{Availability: 78, Performance: 82, Quality: 95, OEE: 61},
			InstallationDate: date(2021, time.April, 15),
			CreatedAt:        date(2021, time.April, 15),
			UpdatedAt:        date(2023, time.August, 6),
		},
		{
			ID:               "3",
			Name:             "DLM-3005",
			SerialNumber:     "SN-30047859",
			Model:            "Denim Cutter X2",
			Type:             "Cutting",
			Location:         "Production Floor A",
			Status:           model.MachineOperational,
			LastMaintenance:  tp(date(2023, time.August, 1)),
			NextMaintenance:  tp(date(2023, time.November, 1)),
			Metrics:          model.Metrics{Availability: 95, Performance: 89, Quality: 97, OEE: 82},
			InstallationDate: date(2022, time.June, 20),
			CreatedAt:        date(2022, time.June, 20),
			UpdatedAt:        date(2023, time.August, 7),
		},
	}

	alerts := []model.Alert{
		{
			ID:          "1",
			Title:       "Temperature Exceeding Limits",
			Description: "Machine temperature has reached 95°C, exceeding the safe limit of 85°C.",
			MachineID:   "1",
			MachineName: "DLM-1001",
			Priority:    model.PriorityCritical,
			Status:      model.AlertPending,
			CreatedBy:   model.UserRef{ID: "3", Name: "Regular User"},
			CreatedAt:   now.Add(-30 * time.Minute),
			UpdatedAt:   now.Add(-30 * time.Minute),
		},
		{
			ID:          "2",
			Title:       "Pressure Drop Detected",
			Description: "Machine operating pressure has dropped below 40 PSI. Normal range is 60-80 PSI.",
			MachineID:   "2",
			MachineName: "DLM-2003",
			Priority:    model.PriorityMedium,
			Status:      model.AlertAssigned,
			CreatedBy:   model.UserRef{ID: "3", Name: "Regular User"},
			AssignedTo:  model.UserRef{ID: "2", Name: "Technician User"},
			CreatedAt:   now.Add(-5 * time.Hour),
			UpdatedAt:   now.Add(-4 * time.Hour),
		},
		{
			ID:          "3",
			Title:       "Unexpected Vibration",
			Description: "Unusual vibration detected in the main drive unit. Please inspect belt tension.",
			MachineID:   "3",
			MachineName: "DLM-3005",
			Priority:    model.PriorityLow,
			Status:      model.AlertResolved,
			CreatedBy:   model.UserRef{ID: "3", Name: "Regular User"},
			AssignedTo:  model.UserRef{ID: "2", Name: "Technician User"},
			CreatedAt:   now.Add(-48 * time.Hour),
			UpdatedAt:   now.Add(-20 * time.Hour),
		},
	}

	maintenance := []model.Maintenance{
		{
			ID:                 "1",
			MachineID:          "1",
			MachineName:        "DLM-1001",
			ProblemDescription: "Routine maintenance and calibration",
			StartTime:          time.Date(2023, time.July, 15, 9, 0, 0, 0, time.UTC),
			EndTime:            tp(time.Date(2023, time.July, 15, 11, 30, 0, 0, time.UTC)),
			Status:             model.MaintenanceCompleted,
			Technician:         model.UserRef{ID: "2", Name: "Technician User"},
			Notes:              "Replaced air filters and lubricated moving parts. System is running optimally.",
			PartsReplaced:      "Air filters, lubricant",
			CreatedAt:          date(2023, time.July, 14),
			UpdatedAt:          date(2023, time.July, 15),
		},
		{
			ID:                 "2",
			MachineID:          "2",
			MachineName:        "DLM-2003",
			ProblemDescription: "Pressure system failure",
			StartTime:          now.Add(-24 * time.Hour),
			Status:             model.MaintenanceInProgress,
			Technician:         model.UserRef{ID: "2", Name: "Technician User"},
			Notes:              "Investigating pressure system issues. Initial diagnosis suggests valve failure.",
			CreatedAt:          now.Add(-26 * time.Hour),
			UpdatedAt:          now.Add(-20 * time.Hour),
		},
		{
			ID:                 "3",
			MachineID:          "3",
			MachineName:        "DLM-3005",
			ProblemDescription: "Scheduled preventive maintenance",
			StartTime:          now.Add(48 * time.Hour),
			Status:             model.MaintenancePending,
			Technician:         model.UserRef{ID: "2", Name: "Technician User"},
			CreatedAt:          now.Add(-7 * 24 * time.Hour),
			UpdatedAt:          now.Add(-7 * 24 * time.Hour),
		},
	}

	if err := r.db.Create(&users).Error; err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := r.db.Create(&machines).Error; err != nil {
		return fmt.Errorf("seed machines: %w", err)
	}
	if err := r.db.Create(&alerts).Error; err != nil {
		return fmt.Errorf("seed alerts: %w", err)
	}
	if err := r.db.Create(&maintenance).Error; err != nil {
		return fmt.Errorf("seed maintenance: %w", err)
	}
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func tp(t time.Time) *time.Time { return &t }
