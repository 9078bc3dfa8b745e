package repos

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fleetman/internal/domain"
)

type MaintenanceRepo struct{ db *sqlx.DB }

func NewMaintenanceRepo(db *sqlx.DB) *MaintenanceRepo { return &MaintenanceRepo{db: db} }

const maintenanceCols = `id, vehicle_id, type, description, cost, duration, technician, completed_at, next_due`

func (r *MaintenanceRepo) List() ([]domain.MaintenanceRecord, error) {
	var out []domain.MaintenanceRecord
	err := r.db.Select(&out, `
	  SELECT `+maintenanceCols+`
	  FROM maintenance_records
	  ORDER BY datetime(completed_at) DESC
	`)
	return out, err
}

func (r *MaintenanceRepo) Get(id string) (domain.MaintenanceRecord, error) {
	var m domain.MaintenanceRecord
	err := r.db.Get(&m, `SELECT `+maintenanceCols+` FROM maintenance_records WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return domain.MaintenanceRecord{}, fmt.Errorf("maintenance record %s: %w", id, ErrNotFound)
	}
	return m, err
}

func (r *MaintenanceRepo) ListByVehicle(vehicleID string) ([]domain.MaintenanceRecord, error) {
	return listMaintenanceByVehicle(r.db, vehicleID)
}

// ListByVehicleTx reads a vehicle's history inside an open transaction.
func (r *MaintenanceRepo) ListByVehicleTx(tx *sqlx.Tx, vehicleID string) ([]domain.MaintenanceRecord, error) {
	return listMaintenanceByVehicle(tx, vehicleID)
}

func listMaintenanceByVehicle(q sqlx.Queryer, vehicleID string) ([]domain.MaintenanceRecord, error) {
	var out []domain.MaintenanceRecord
	err := sqlx.Select(q, &out, `
	  SELECT `+maintenanceCols+`
	  FROM maintenance_records
	  WHERE vehicle_id = ?
	  ORDER BY datetime(completed_at) DESC
	`, vehicleID)
	return out, err
}

func (r *MaintenanceRepo) Create(m domain.MaintenanceRecord) error {
	_, err := r.db.Exec(`
	  INSERT INTO maintenance_records(id, vehicle_id, type, description, cost, duration, technician, completed_at, next_due)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.VehicleID, m.Type, m.Description, m.Cost, m.Duration, m.Technician, m.CompletedAt, m.NextDue)
	return err
}

// MaintenanceUpdate carries the optional fields of a partial update.
type MaintenanceUpdate struct {
	Type        *string
	Description *string
	Cost        *int
	Duration    *int
	Technician  *string
}

func (r *MaintenanceRepo) Update(id string, u MaintenanceUpdate) (domain.MaintenanceRecord, error) {
	set := ``
	args := []any{}
	add := func(col string, val any) {
		if set != "" {
			set += ", "
		}
		set += col + " = ?"
		args = append(args, val)
	}
	if u.Type != nil {
		add("type", *u.Type)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.Cost != nil {
		add("cost", *u.Cost)
	}
	if u.Duration != nil {
		add("duration", *u.Duration)
	}
	if u.Technician != nil {
		add("technician", *u.Technician)
	}
	if set == "" {
		return r.Get(id)
	}

	args = append(args, id)
	res, err := r.db.Exec(`UPDATE maintenance_records SET `+set+` WHERE id = ?`, args...)
	if err != nil {
		return domain.MaintenanceRecord{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.MaintenanceRecord{}, fmt.Errorf("maintenance record %s: %w", id, ErrNotFound)
	}
	return r.Get(id)
}

func (r *MaintenanceRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM maintenance_records WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("maintenance record %s: %w", id, ErrNotFound)
	}
	return nil
}

// CreateUsage records parts consumed by a maintenance event.
func (r *MaintenanceRepo) CreateUsage(u domain.PartUsage) error {
	_, err := r.db.Exec(`
	  INSERT INTO part_usage(id, maintenance_id, part_id, quantity)
	  VALUES(?, ?, ?, ?)
	`, u.ID, u.MaintenanceID, u.PartID, u.Quantity)
	return err
}

// UsagesWithParts returns the parts consumed by one maintenance event.
func (r *MaintenanceRepo) UsagesWithParts(maintenanceID string) ([]domain.PartUsageWithPart, error) {
	rows := []struct {
		domain.PartUsage `json:"-"`
		domain.Part      `db:"part" json:"-"`
	}{}
	err := r.db.Select(&rows, `
	  SELECT u.id, u.maintenance_id, u.part_id, u.quantity,
	         p.id AS "part.id", p.name AS "part.name", p.reference AS "part.reference",
	         p.category AS "part.category", p.stock AS "part.stock",
	         p.min_stock AS "part.min_stock", p.unit_price AS "part.unit_price",
	         p.created_at AS "part.created_at"
	  FROM part_usage u
	  JOIN parts p ON p.id = u.part_id
	  WHERE u.maintenance_id = ?
	`, maintenanceID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PartUsageWithPart, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.PartUsageWithPart{PartUsage: row.PartUsage, Part: row.Part})
	}
	return out, nil
}
