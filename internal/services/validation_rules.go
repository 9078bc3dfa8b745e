package services

import (
	"time"

	"fleetman/internal/domain"
)

// Maintenance intervals and mileage thresholds.
const (
	oilChangeIntervalDays = 180
	annualIntervalDays    = 365
	repairWindow          = 24 * time.Hour
	highMileageKm         = 200000
	moderateMileageKm     = 100000
)

// EvaluateVehicle applies the status rules to one vehicle's history and
// alerts. Pure: no store access, no clock reads, no side effects. Rules
// only ever escalate the status, so a fresh repair (in_repair) is never
// downgraded by a later maintenance or mileage rule.
func EvaluateVehicle(v domain.Vehicle, alerts []domain.Alert, history []domain.MaintenanceRecord, now time.Time) domain.ValidationResult {
	res := domain.ValidationResult{
		Status:       domain.StatusOperational,
		Reasons:      []string{},
		UrgentIssues: []string{},
	}

	// Unread high/urgent alerts surface as urgent issues.
	for _, a := range alerts {
		if !a.IsRead && (a.Priority == domain.PriorityUrgent || a.Priority == domain.PriorityHigh) {
			res.UrgentIssues = append(res.UrgentIssues, a.Message)
		}
	}

	// Most recent maintenance of any type: sets lastInspection, and a
	// repair completed within the last 24h means the vehicle is still in
	// the workshop.
	if last := latestRecord(history); last != nil {
		completed := last.CompletedAt
		res.LastInspection = &completed
		if last.Type == domain.MaintenanceRepair && now.Sub(completed) < repairWindow {
			res.Status = res.Status.Escalate(domain.StatusInRepair)
			res.Reasons = append(res.Reasons, "recent repair in progress")
		}
	}

	// Interval checks against the most recent major maintenance.
	if major := latestMajorRecord(history); major != nil {
		days := daysSince(major.CompletedAt, now)
		switch major.Type {
		case domain.MaintenanceOilChange:
			if days > oilChangeIntervalDays {
				res.Status = res.Status.Escalate(domain.StatusMaintenanceDue)
				res.Reasons = append(res.Reasons, "oil change due (over 6 months)")
				next := major.CompletedAt.AddDate(0, 0, oilChangeIntervalDays)
				res.NextMaintenanceDue = &next
			}
		case domain.MaintenanceInspection:
			if days > annualIntervalDays {
				res.Status = res.Status.Escalate(domain.StatusMaintenanceDue)
				res.Reasons = append(res.Reasons, "technical inspection expired")
				res.UrgentIssues = append(res.UrgentIssues, "mandatory technical inspection expired")
			}
		case domain.MaintenanceGeneralService:
			if days > annualIntervalDays {
				res.Status = res.Status.Escalate(domain.StatusMaintenanceDue)
				res.Reasons = append(res.Reasons, "annual service due")
			}
		}
	} else {
		res.Status = res.Status.Escalate(domain.StatusMaintenanceDue)
		res.Reasons = append(res.Reasons, "no maintenance history")
		res.UrgentIssues = append(res.UrgentIssues, "vehicle has no maintenance history")
	}

	// Mileage checks.
	if v.Mileage > highMileageKm {
		res.Reasons = append(res.Reasons, "high mileage (over 200k km)")
		res.Status = res.Status.Escalate(domain.StatusMaintenanceDue)
	} else if v.Mileage > moderateMileageKm {
		res.Reasons = append(res.Reasons, "moderate mileage (over 100k km)")
	}

	// Any urgent issue keeps the vehicle off the road until looked at.
	if len(res.UrgentIssues) > 0 {
		res.Status = res.Status.Escalate(domain.StatusMaintenanceDue)
	}

	if res.Status == domain.StatusOperational && len(res.Reasons) == 0 {
		res.Reasons = append(res.Reasons, "all checks passed")
	}
	return res
}

// latestRecord returns the record with the most recent completion time.
func latestRecord(history []domain.MaintenanceRecord) *domain.MaintenanceRecord {
	var latest *domain.MaintenanceRecord
	for i := range history {
		r := &history[i]
		if latest == nil || r.CompletedAt.After(latest.CompletedAt) {
			latest = r
		}
	}
	return latest
}

// latestMajorRecord returns the most recent oil change, inspection or
// general service.
func latestMajorRecord(history []domain.MaintenanceRecord) *domain.MaintenanceRecord {
	var latest *domain.MaintenanceRecord
	for i := range history {
		r := &history[i]
		if !domain.IsMajorMaintenance(r.Type) {
			continue
		}
		if latest == nil || r.CompletedAt.After(latest.CompletedAt) {
			latest = r
		}
	}
	return latest
}

func daysSince(t time.Time, now time.Time) float64 {
	if t.IsZero() {
		return annualIntervalDays // no date on record, assume long overdue
	}
	return now.Sub(t).Hours() / 24
}
