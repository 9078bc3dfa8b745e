package services_test

import (
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"

	"fleetman/internal/repos"
	"fleetman/internal/services"
)

func newChat(db *sqlx.DB) *services.ChatService {
	parts := services.NewPartsService(repos.NewPartRepo(db))
	return services.NewChatService(newDashboard(db), parts, repos.NewAlertRepo(db))
}

func TestChatVehicleStatus(t *testing.T) {
	db := memdb(t)
	insertVehicle(t, db, "v1", "AAA-111", 1000, "operational")
	insertVehicle(t, db, "v2", "BBB-222", 1000, "in_repair")

	got, err := newChat(db).Respond("vehicle-status")
	if err != nil {
		t.Fatal(err)
	}
	want := "You currently have 1 operational vehicles, 0 due for maintenance and 1 in repair."
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestChatMaintenanceAlerts(t *testing.T) {
	db := memdb(t)
	chat := newChat(db)

	got, err := chat.Respond("maintenance-alerts")
	if err != nil {
		t.Fatal(err)
	}
	if got != "No urgent maintenance alerts at the moment." {
		t.Fatalf("empty store: got %q", got)
	}

	insertVehicle(t, db, "v1", "AAA-111", 1000, "operational")
	insertAlert(t, db, "a1", "v1", "brake check", "high", false)
	insertAlert(t, db, "a2", "v1", "handled already", "high", true)

	got, err = chat.Respond("maintenance-alerts")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "You have 1 maintenance alerts:") || !strings.Contains(got, "brake check") {
		t.Fatalf("got %q", got)
	}
	if strings.Contains(got, "handled already") {
		t.Fatalf("read alert leaked into response: %q", got)
	}
}

func TestChatPartsInventory(t *testing.T) {
	db := memdb(t)
	insertPart(t, db, "p1", "Oil filter", 25, 5)
	insertPart(t, db, "p2", "Brake pads", 3, 5)

	got, err := newChat(db).Respond("parts-inventory")
	if err != nil {
		t.Fatal(err)
	}
	want := "Current stock: 1 parts in stock, 1 parts low on stock."
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestChatUnknownActionGetsHelp(t *testing.T) {
	db := memdb(t)

	got, err := newChat(db).Respond("weather-forecast")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "What would you like to know?") {
		t.Fatalf("want help text, got %q", got)
	}
}
