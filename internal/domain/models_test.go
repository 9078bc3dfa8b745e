package domain

import "testing"

func TestDerivePartStatus(t *testing.T) {
	cases := []struct {
		stock, minStock int
		want            PartStatus
	}{
		{0, 5, PartOutOfStock},
		{0, 0, PartOutOfStock}, // zero stock wins even with a zero threshold
		{1, 5, PartLowStock},
		{5, 5, PartLowStock}, // boundary: stock == minStock is low
		{6, 5, PartInStock},
		{3, 0, PartInStock},
	}
	for _, tc := range cases {
		if got := DerivePartStatus(tc.stock, tc.minStock); got != tc.want {
			t.Errorf("DerivePartStatus(%d, %d) = %s, want %s", tc.stock, tc.minStock, got, tc.want)
		}
	}
}

func TestStatusEscalateNeverDowngrades(t *testing.T) {
	if got := StatusInRepair.Escalate(StatusMaintenanceDue); got != StatusInRepair {
		t.Fatalf("in_repair downgraded to %s", got)
	}
	if got := StatusInRepair.Escalate(StatusOperational); got != StatusInRepair {
		t.Fatalf("in_repair downgraded to %s", got)
	}
	if got := StatusMaintenanceDue.Escalate(StatusOperational); got != StatusMaintenanceDue {
		t.Fatalf("maintenance_due downgraded to %s", got)
	}
	if got := StatusOperational.Escalate(StatusMaintenanceDue); got != StatusMaintenanceDue {
		t.Fatalf("operational did not escalate, got %s", got)
	}
	if got := StatusMaintenanceDue.Escalate(StatusInRepair); got != StatusInRepair {
		t.Fatalf("maintenance_due did not escalate, got %s", got)
	}
}
