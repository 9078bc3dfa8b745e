package repos

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fleetman/internal/domain"
)

type VehicleRepo struct{ db *sqlx.DB }

func NewVehicleRepo(db *sqlx.DB) *VehicleRepo { return &VehicleRepo{db: db} }

const vehicleCols = `id, plate, make, model, year, type, mileage, status, created_at`

func (r *VehicleRepo) List() ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	err := r.db.Select(&out, `
	  SELECT `+vehicleCols+`
	  FROM vehicles
	  ORDER BY created_at DESC, plate
	`)
	return out, err
}

func (r *VehicleRepo) Get(id string) (domain.Vehicle, error) {
	return getVehicle(r.db, id)
}

// GetTx reads a vehicle inside an open transaction.
func (r *VehicleRepo) GetTx(tx *sqlx.Tx, id string) (domain.Vehicle, error) {
	return getVehicle(tx, id)
}

func getVehicle(q sqlx.Queryer, id string) (domain.Vehicle, error) {
	var v domain.Vehicle
	err := sqlx.Get(q, &v, `SELECT `+vehicleCols+` FROM vehicles WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return domain.Vehicle{}, fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
	}
	return v, err
}

// GetWithAlerts returns the detail view: vehicle, its alerts and its most
// recent maintenance record.
func (r *VehicleRepo) GetWithAlerts(id string) (domain.VehicleWithAlerts, error) {
	v, err := r.Get(id)
	if err != nil {
		return domain.VehicleWithAlerts{}, err
	}

	out := domain.VehicleWithAlerts{Vehicle: v, Alerts: []domain.Alert{}}
	if err := r.db.Select(&out.Alerts, `
	  SELECT id, vehicle_id, type, message, priority, is_read, created_at
	  FROM alerts WHERE vehicle_id = ?
	  ORDER BY datetime(created_at) DESC
	`, id); err != nil {
		return domain.VehicleWithAlerts{}, err
	}

	var last domain.MaintenanceRecord
	err = r.db.Get(&last, `
	  SELECT id, vehicle_id, type, description, cost, duration, technician, completed_at, next_due
	  FROM maintenance_records WHERE vehicle_id = ?
	  ORDER BY datetime(completed_at) DESC
	  LIMIT 1
	`, id)
	if err == nil {
		out.LastMaintenance = &last
	} else if err != sql.ErrNoRows {
		return domain.VehicleWithAlerts{}, err
	}
	return out, nil
}

func (r *VehicleRepo) Create(v domain.Vehicle) error {
	_, err := r.db.Exec(`
	  INSERT INTO vehicles(id, plate, make, model, year, type, mileage, status, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, v.ID, v.Plate, v.Make, v.Model, v.Year, v.Type, v.Mileage, v.Status, v.CreatedAt)
	return err
}

// VehicleUpdate carries the optional fields of a partial update; nil means
// leave the column untouched.
type VehicleUpdate struct {
	Plate   *string
	Make    *string
	Model   *string
	Year    *int
	Type    *string
	Mileage *int
	Status  *string
}

func (r *VehicleRepo) Update(id string, u VehicleUpdate) (domain.Vehicle, error) {
	set := ``
	args := []any{}
	add := func(col string, val any) {
		if set != "" {
			set += ", "
		}
		set += col + " = ?"
		args = append(args, val)
	}
	if u.Plate != nil {
		add("plate", *u.Plate)
	}
	if u.Make != nil {
		add("make", *u.Make)
	}
	if u.Model != nil {
		add("model", *u.Model)
	}
	if u.Year != nil {
		add("year", *u.Year)
	}
	if u.Type != nil {
		add("type", *u.Type)
	}
	if u.Mileage != nil {
		add("mileage", *u.Mileage)
	}
	if u.Status != nil {
		add("status", *u.Status)
	}
	if set == "" {
		return r.Get(id)
	}

	args = append(args, id)
	res, err := r.db.Exec(`UPDATE vehicles SET `+set+` WHERE id = ?`, args...)
	if err != nil {
		return domain.Vehicle{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Vehicle{}, fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
	}
	return r.Get(id)
}

// UpdateStatusTx persists a validator verdict inside an open transaction.
func (r *VehicleRepo) UpdateStatusTx(tx *sqlx.Tx, id string, status domain.VehicleStatus) error {
	res, err := tx.Exec(`UPDATE vehicles SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *VehicleRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
	}
	return nil
}
