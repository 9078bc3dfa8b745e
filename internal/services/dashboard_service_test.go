package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"

	"fleetman/internal/repos"
	"fleetman/internal/services"
)

func newDashboard(db *sqlx.DB) *services.DashboardService {
	return services.NewDashboardService(
		repos.NewVehicleRepo(db), repos.NewPartRepo(db), repos.NewAlertRepo(db))
}

func insertPart(t *testing.T, db *sqlx.DB, id, name string, stock, minStock int) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO parts(id,name,reference,category,stock,min_stock,unit_price,created_at)
	  VALUES(?,?,?,'engine',?,?,1500,?)`, id, name, "REF-"+id, stock, minStock, testNow)
	if err != nil {
		t.Fatal(err)
	}
}

func TestDashboardStatsEmptyStore(t *testing.T) {
	db := memdb(t)

	stats, err := newDashboard(db).Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalVehicles != 0 || stats.TotalParts != 0 || stats.UnreadAlerts != 0 {
		t.Fatalf("want all zeroes, got %+v", stats)
	}
}

func TestDashboardStats(t *testing.T) {
	db := memdb(t)

	insertVehicle(t, db, "v1", "AAA-111", 1000, "operational")
	insertVehicle(t, db, "v2", "BBB-222", 1000, "operational")
	insertVehicle(t, db, "v3", "CCC-333", 1000, "maintenance_due")
	insertVehicle(t, db, "v4", "DDD-444", 1000, "in_repair")

	insertPart(t, db, "p1", "Oil filter", 25, 5)
	insertPart(t, db, "p2", "Brake pads", 3, 5)
	insertPart(t, db, "p3", "Battery", 0, 2)

	insertAlert(t, db, "a1", "v3", "service due", "medium", false)
	insertAlert(t, db, "a2", "v4", "repair ongoing", "high", false)
	insertAlert(t, db, "a3", "v1", "handled", "low", true)

	stats, err := newDashboard(db).Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalVehicles != 4 || stats.Operational != 2 || stats.MaintenanceDue != 1 || stats.InRepair != 1 {
		t.Fatalf("bad vehicle counts: %+v", stats)
	}
	if stats.TotalParts != 3 || stats.PartsInStock != 1 || stats.PartsLowStock != 1 || stats.PartsOutOfStock != 1 {
		t.Fatalf("bad part counts: %+v", stats)
	}
	if stats.UnreadAlerts != 2 {
		t.Fatalf("want 2 unread alerts, got %d", stats.UnreadAlerts)
	}
}
