package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fleetman/internal/domain"
	"fleetman/internal/repos"
)

// ValidationService recomputes vehicle statuses from maintenance history
// and alerts, and persists the verdict when it differs from the stored
// status. The stored status is only the comparison target for the
// write-back, never an input to the rules.
type ValidationService struct {
	DB          *sqlx.DB
	Vehicles    *repos.VehicleRepo
	Maintenance *repos.MaintenanceRepo
	Alerts      *repos.AlertRepo

	// Now is the clock; tests pin it for deterministic day math.
	Now func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewValidationService(db *sqlx.DB, vehicles *repos.VehicleRepo, maintenance *repos.MaintenanceRepo, alerts *repos.AlertRepo) *ValidationService {
	return &ValidationService{
		DB:          db,
		Vehicles:    vehicles,
		Maintenance: maintenance,
		Alerts:      alerts,
		Now:         time.Now,
		locks:       make(map[string]*sync.Mutex),
	}
}

// lockVehicle serializes validations of the same vehicle id. Different
// vehicles may validate concurrently.
func (s *ValidationService) lockVehicle(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// ValidateVehicle runs the rules for one vehicle and, when the verdict
// differs from the stored status, updates the vehicle and emits an alert
// in the same transaction.
func (s *ValidationService) ValidateVehicle(ctx context.Context, vehicleID string) (domain.ValidationResult, error) {
	unlock := s.lockVehicle(vehicleID)
	defer unlock()

	now := s.Now().UTC()

	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return domain.ValidationResult{}, fmt.Errorf("begin validation tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	vehicle, err := s.Vehicles.GetTx(tx, vehicleID)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	alerts, err := s.Alerts.ListByVehicleTx(tx, vehicleID)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	history, err := s.Maintenance.ListByVehicleTx(tx, vehicleID)
	if err != nil {
		return domain.ValidationResult{}, err
	}

	res := EvaluateVehicle(vehicle, alerts, history, now)

	if vehicle.Status != res.Status {
		if err := s.Vehicles.UpdateStatusTx(tx, vehicleID, res.Status); err != nil {
			return domain.ValidationResult{}, err
		}
		if res.Status != domain.StatusOperational {
			if err := s.Alerts.CreateTx(tx, verdictAlert(vehicle, res, now)); err != nil {
				return domain.ValidationResult{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.ValidationResult{}, fmt.Errorf("commit validation: %w", err)
	}
	return res, nil
}

// verdictAlert builds the alert emitted when a validation degrades a
// vehicle's stored status.
func verdictAlert(vehicle domain.Vehicle, res domain.ValidationResult, now time.Time) domain.Alert {
	alertType := "maintenance-due"
	if res.Status == domain.StatusInRepair {
		alertType = "repair-needed"
	}
	priority := domain.PriorityMedium
	if len(res.UrgentIssues) > 0 {
		priority = domain.PriorityUrgent
	}
	return domain.Alert{
		ID:        uuid.NewString(),
		VehicleID: vehicle.ID,
		Type:      alertType,
		Message:   fmt.Sprintf("Vehicle status for %s: %s", vehicle.Plate, strings.Join(res.Reasons, ", ")),
		Priority:  priority,
		IsRead:    false,
		CreatedAt: now,
	}
}

// ValidateAll sweeps the whole fleet. A failing vehicle does not abort
// the sweep; per-vehicle failures are collected and returned joined.
func (s *ValidationService) ValidateAll(ctx context.Context) error {
	vehicles, err := s.Vehicles.List()
	if err != nil {
		return fmt.Errorf("list vehicles: %w", err)
	}

	var failures []error
	for _, v := range vehicles {
		if _, err := s.ValidateVehicle(ctx, v.ID); err != nil {
			failures = append(failures, fmt.Errorf("vehicle %s (%s): %w", v.ID, v.Plate, err))
		}
	}
	return errors.Join(failures...)
}
