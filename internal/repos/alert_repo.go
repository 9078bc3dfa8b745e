package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"fleetman/internal/domain"
)

type AlertRepo struct{ db *sqlx.DB }

func NewAlertRepo(db *sqlx.DB) *AlertRepo { return &AlertRepo{db: db} }

const alertCols = `id, vehicle_id, type, message, priority, is_read, created_at`

func (r *AlertRepo) List() ([]domain.Alert, error) {
	var out []domain.Alert
	err := r.db.Select(&out, `
	  SELECT `+alertCols+`
	  FROM alerts
	  ORDER BY datetime(created_at) DESC
	`)
	return out, err
}

func (r *AlertRepo) ListByVehicle(vehicleID string) ([]domain.Alert, error) {
	return listAlertsByVehicle(r.db, vehicleID)
}

// ListByVehicleTx reads a vehicle's alerts inside an open transaction.
func (r *AlertRepo) ListByVehicleTx(tx *sqlx.Tx, vehicleID string) ([]domain.Alert, error) {
	return listAlertsByVehicle(tx, vehicleID)
}

func listAlertsByVehicle(q sqlx.Queryer, vehicleID string) ([]domain.Alert, error) {
	var out []domain.Alert
	err := sqlx.Select(q, &out, `
	  SELECT `+alertCols+`
	  FROM alerts
	  WHERE vehicle_id = ?
	  ORDER BY datetime(created_at) DESC
	`, vehicleID)
	return out, err
}

func (r *AlertRepo) Create(a domain.Alert) error {
	return createAlert(r.db, a)
}

// CreateTx emits an alert inside an open transaction, so a validator
// write-back commits status and alert together.
func (r *AlertRepo) CreateTx(tx *sqlx.Tx, a domain.Alert) error {
	return createAlert(tx, a)
}

func createAlert(q sqlx.Execer, a domain.Alert) error {
	_, err := q.Exec(`
	  INSERT INTO alerts(id, vehicle_id, type, message, priority, is_read, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.VehicleID, a.Type, a.Message, a.Priority, a.IsRead, a.CreatedAt)
	return err
}

func (r *AlertRepo) MarkRead(id string) error {
	res, err := r.db.Exec(`UPDATE alerts SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("alert %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *AlertRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM alerts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("alert %s: %w", id, ErrNotFound)
	}
	return nil
}

// CountUnread is used by the dashboard.
func (r *AlertRepo) CountUnread() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM alerts WHERE is_read = 0`)
	return n, err
}
