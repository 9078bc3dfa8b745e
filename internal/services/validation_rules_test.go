package services

import (
	"testing"
	"time"

	"fleetman/internal/domain"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time { return testNow.AddDate(0, 0, -n) }

func record(typ string, completed time.Time) domain.MaintenanceRecord {
	return domain.MaintenanceRecord{
		ID:          "rec-" + typ,
		VehicleID:   "veh-1",
		Type:        typ,
		Description: typ,
		Duration:    60,
		Technician:  "T. Tester",
		CompletedAt: completed,
	}
}

func hasReason(res domain.ValidationResult, want string) bool {
	for _, r := range res.Reasons {
		if r == want {
			return true
		}
	}
	return false
}

func TestEvaluateNoHistory(t *testing.T) {
	v := domain.Vehicle{ID: "veh-1", Plate: "AAA-111", Mileage: 5000, Status: domain.StatusOperational}

	res := EvaluateVehicle(v, nil, nil, testNow)
	if res.Status != domain.StatusMaintenanceDue {
		t.Fatalf("want maintenance_due, got %s", res.Status)
	}
	if !hasReason(res, "no maintenance history") {
		t.Fatalf("missing no-history reason: %v", res.Reasons)
	}
	if len(res.UrgentIssues) != 1 || res.UrgentIssues[0] != "vehicle has no maintenance history" {
		t.Fatalf("bad urgent issues: %v", res.UrgentIssues)
	}
	if res.LastInspection != nil {
		t.Fatalf("lastInspection should be unset, got %v", res.LastInspection)
	}
}

func TestEvaluateOilChangeAging(t *testing.T) {
	v := domain.Vehicle{ID: "veh-1", Plate: "AAA-111", Mileage: 50000, Status: domain.StatusOperational}
	oil := record(domain.MaintenanceOilChange, daysAgo(200))

	res := EvaluateVehicle(v, nil, []domain.MaintenanceRecord{oil}, testNow)
	if res.Status != domain.StatusMaintenanceDue {
		t.Fatalf("want maintenance_due, got %s", res.Status)
	}
	if !hasReason(res, "oil change due (over 6 months)") {
		t.Fatalf("missing oil-change reason: %v", res.Reasons)
	}
	wantNext := oil.CompletedAt.AddDate(0, 0, 180)
	if res.NextMaintenanceDue == nil || !res.NextMaintenanceDue.Equal(wantNext) {
		t.Fatalf("want nextMaintenanceDue=%v, got %v", wantNext, res.NextMaintenanceDue)
	}
}

func TestEvaluateFreshOilChangeIsOperational(t *testing.T) {
	v := domain.Vehicle{ID: "veh-1", Plate: "AAA-111", Mileage: 50000}
	oil := record(domain.MaintenanceOilChange, daysAgo(30))

	res := EvaluateVehicle(v, nil, []domain.MaintenanceRecord{oil}, testNow)
	if res.Status != domain.StatusOperational {
		t.Fatalf("want operational, got %s (%v)", res.Status, res.Reasons)
	}
	if res.NextMaintenanceDue != nil {
		t.Fatalf("nextMaintenanceDue should be unset, got %v", res.NextMaintenanceDue)
	}
}

func TestEvaluateInspectionExpired(t *testing.T) {
	v := domain.Vehicle{ID: "veh-1", Plate: "AAA-111", Mileage: 50000}
	insp := record(domain.MaintenanceInspection, daysAgo(400))

	res := EvaluateVehicle(v, nil, []domain.MaintenanceRecord{insp}, testNow)
	if res.Status != domain.StatusMaintenanceDue {
		t.Fatalf("want maintenance_due, got %s", res.Status)
	}
	if !hasReason(res, "technical inspection expired") {
		t.Fatalf("missing inspection reason: %v", res.Reasons)
	}
	found := false
	for _, u := range res.UrgentIssues {
		if u == "mandatory technical inspection expired" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing urgent inspection issue: %v", res.UrgentIssues)
	}
}

func TestEvaluateAnnualServiceDue(t *testing.T) {
	v := domain.Vehicle{ID: "veh-1", Plate: "AAA-111", Mileage: 50000}
	svc := record(domain.MaintenanceGeneralService, daysAgo(370))

	res := EvaluateVehicle(v, nil, []domain.MaintenanceRecord{svc}, testNow)
	if res.Status != domain.StatusMaintenanceDue || !hasReason(res, "annual service due") {
		t.Fatalf("want maintenance_due with annual-service reason, got %s %v", res.Status, res.Reasons)
	}
	if len(res.UrgentIssues) != 0 {
		t.Fatalf("annual service should not be urgent: %v", res.UrgentIssues)
	}
}

func TestEvaluateFreshRepairNotDowngraded(t *testing.T) {
	// Fresh repair plus high mileage plus an urgent alert: the status must
	// stay in_repair through all later rules.
	v := domain.Vehicle{ID: "veh-1", Plate: "AAA-111", Mileage: 250000}
	repair := record(domain.MaintenanceRepair, testNow.Add(-2*time.Hour))
	alerts := []domain.Alert{
		{ID: "a1", VehicleID: "veh-1", Message: "brakes failing", Priority: domain.PriorityUrgent},
	}

	res := EvaluateVehicle(v, alerts, []domain.MaintenanceRecord{repair}, testNow)
	if res.Status != domain.StatusInRepair {
		t.Fatalf("want in_repair, got %s", res.Status)
	}
	if !hasReason(res, "recent repair in progress") {
		t.Fatalf("missing repair reason: %v", res.Reasons)
	}
	if !hasReason(res, "high mileage (over 200k km)") {
		t.Fatalf("mileage reason should still be recorded: %v", res.Reasons)
	}
	if len(res.UrgentIssues) == 0 || res.UrgentIssues[0] != "brakes failing" {
		t.Fatalf("urgent alert message missing: %v", res.UrgentIssues)
	}
}

func TestEvaluateDayOldRepairIsNotInRepair(t *testing.T) {
	v := domain.Vehicle{ID: "veh-1", Plate: "AAA-111", Mileage: 10000}
	repair := record(domain.MaintenanceRepair, testNow.Add(-25*time.Hour))

	res := EvaluateVehicle(v, nil, []domain.MaintenanceRecord{repair}, testNow)
	if res.Status == domain.StatusInRepair {
		t.Fatalf("repair older than 24h should not pin in_repair: %v", res.Reasons)
	}
}

func TestEvaluateCleanVehicle(t *testing.T) {
	v := domain.Vehicle{ID: "veh-1", Plate: "AAA-111", Mileage: 10000}
	insp := record(domain.MaintenanceInspection, daysAgo(10))
	alerts := []domain.Alert{
		// read urgent alert must not count
		{ID: "a1", VehicleID: "veh-1", Message: "old issue", Priority: domain.PriorityUrgent, IsRead: true},
		// unread low alert must not count either
		{ID: "a2", VehicleID: "veh-1", Message: "minor note", Priority: domain.PriorityLow},
	}

	res := EvaluateVehicle(v, alerts, []domain.MaintenanceRecord{insp}, testNow)
	if res.Status != domain.StatusOperational {
		t.Fatalf("want operational, got %s (%v)", res.Status, res.Reasons)
	}
	if len(res.Reasons) != 1 || res.Reasons[0] != "all checks passed" {
		t.Fatalf("want [all checks passed], got %v", res.Reasons)
	}
	if len(res.UrgentIssues) != 0 {
		t.Fatalf("want no urgent issues, got %v", res.UrgentIssues)
	}
	if res.LastInspection == nil || !res.LastInspection.Equal(insp.CompletedAt) {
		t.Fatalf("want lastInspection=%v, got %v", insp.CompletedAt, res.LastInspection)
	}
}

func TestEvaluateMileage(t *testing.T) {
	insp := record(domain.MaintenanceInspection, daysAgo(10))

	high := domain.Vehicle{ID: "veh-1", Plate: "AAA-111", Mileage: 250000}
	res := EvaluateVehicle(high, nil, []domain.MaintenanceRecord{insp}, testNow)
	if res.Status != domain.StatusMaintenanceDue || !hasReason(res, "high mileage (over 200k km)") {
		t.Fatalf("high mileage: got %s %v", res.Status, res.Reasons)
	}

	moderate := domain.Vehicle{ID: "veh-2", Plate: "BBB-222", Mileage: 150000}
	res = EvaluateVehicle(moderate, nil, []domain.MaintenanceRecord{insp}, testNow)
	if res.Status != domain.StatusOperational {
		t.Fatalf("moderate mileage should stay operational, got %s", res.Status)
	}
	if !hasReason(res, "moderate mileage (over 100k km)") {
		t.Fatalf("missing moderate mileage reason: %v", res.Reasons)
	}
}

func TestEvaluateUrgentAlertEscalates(t *testing.T) {
	v := domain.Vehicle{ID: "veh-1", Plate: "AAA-111", Mileage: 10000}
	insp := record(domain.MaintenanceInspection, daysAgo(10))
	alerts := []domain.Alert{
		{ID: "a1", VehicleID: "veh-1", Message: "coolant leak", Priority: domain.PriorityUrgent},
	}

	res := EvaluateVehicle(v, alerts, []domain.MaintenanceRecord{insp}, testNow)
	if res.Status != domain.StatusMaintenanceDue {
		t.Fatalf("urgent alert should escalate, got %s", res.Status)
	}
	if len(res.UrgentIssues) != 1 || res.UrgentIssues[0] != "coolant leak" {
		t.Fatalf("bad urgent issues: %v", res.UrgentIssues)
	}
}

func TestEvaluateLatestMajorWins(t *testing.T) {
	// An old expired inspection is superseded by a newer oil change: only
	// the most recent major record drives the interval checks.
	v := domain.Vehicle{ID: "veh-1", Plate: "AAA-111", Mileage: 10000}
	history := []domain.MaintenanceRecord{
		record(domain.MaintenanceInspection, daysAgo(500)),
		record(domain.MaintenanceOilChange, daysAgo(20)),
		record(domain.MaintenanceUpkeep, daysAgo(5)), // not major, but most recent overall
	}

	res := EvaluateVehicle(v, nil, history, testNow)
	if res.Status != domain.StatusOperational {
		t.Fatalf("want operational, got %s (%v)", res.Status, res.Reasons)
	}
	if res.LastInspection == nil || !res.LastInspection.Equal(history[2].CompletedAt) {
		t.Fatalf("lastInspection should be the newest record of any type, got %v", res.LastInspection)
	}
}
