package handlers_test

import (
	"net/http"
	"testing"

	"fleetman/internal/domain"
)

func TestValidateVehicleEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	// fresh vehicle with no maintenance history
	resp := doJSON(t, app, "POST", "/api/vehicles",
		`{"plate":"VAL-001-FR","make":"Renault","model":"Trafic","year":2021,"type":"van"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: want 201, got %d", resp.StatusCode)
	}
	var v domain.Vehicle
	decode(t, resp, &v)

	resp = doJSON(t, app, "POST", "/api/vehicles/"+v.ID+"/validate", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("validate: want 200, got %d", resp.StatusCode)
	}
	var res domain.ValidationResult
	decode(t, resp, &res)
	if res.Status != domain.StatusMaintenanceDue {
		t.Fatalf("want maintenance_due, got %s", res.Status)
	}
	found := false
	for _, r := range res.Reasons {
		if r == "no maintenance history" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing reason: %v", res.Reasons)
	}

	// verdict persisted and alert emitted
	resp = doJSON(t, app, "GET", "/api/vehicles/"+v.ID, "")
	var detail domain.VehicleWithAlerts
	decode(t, resp, &detail)
	if detail.Status != domain.StatusMaintenanceDue {
		t.Fatalf("status not persisted: %s", detail.Status)
	}
	if len(detail.Alerts) != 1 || detail.Alerts[0].Priority != domain.PriorityUrgent {
		t.Fatalf("want one urgent alert, got %+v", detail.Alerts)
	}
}

func TestValidateUnknownVehicleIs404(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/vehicles/no-such-vehicle/validate", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
}

func TestValidateAllEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/vehicles/validate-all", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var body map[string]string
	decode(t, resp, &body)
	if body["message"] == "" {
		t.Fatalf("missing message: %v", body)
	}

	// the sweep must leave every vehicle with a freshly computed status
	for _, v := range listVehicles(t, app) {
		if v.Status != domain.StatusOperational &&
			v.Status != domain.StatusMaintenanceDue &&
			v.Status != domain.StatusInRepair {
			t.Fatalf("vehicle %s has invalid status %s", v.Plate, v.Status)
		}
	}
}
