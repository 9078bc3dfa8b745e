package repos

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fleetman/internal/domain"
)

type PartRepo struct{ db *sqlx.DB }

func NewPartRepo(db *sqlx.DB) *PartRepo { return &PartRepo{db: db} }

const partCols = `id, name, reference, category, stock, min_stock, unit_price, created_at`

func (r *PartRepo) List() ([]domain.Part, error) {
	var out []domain.Part
	err := r.db.Select(&out, `SELECT `+partCols+` FROM parts ORDER BY name`)
	return out, err
}

func (r *PartRepo) Get(id string) (domain.Part, error) {
	var p domain.Part
	err := r.db.Get(&p, `SELECT `+partCols+` FROM parts WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return domain.Part{}, fmt.Errorf("part %s: %w", id, ErrNotFound)
	}
	return p, err
}

func (r *PartRepo) Create(p domain.Part) error {
	_, err := r.db.Exec(`
	  INSERT INTO parts(id, name, reference, category, stock, min_stock, unit_price, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Reference, p.Category, p.Stock, p.MinStock, p.UnitPrice, p.CreatedAt)
	return err
}

// PartUpdate carries the optional fields of a partial update.
type PartUpdate struct {
	Name      *string
	Reference *string
	Category  *string
	Stock     *int
	MinStock  *int
	UnitPrice *int
}

func (r *PartRepo) Update(id string, u PartUpdate) (domain.Part, error) {
	set := ``
	args := []any{}
	add := func(col string, val any) {
		if set != "" {
			set += ", "
		}
		set += col + " = ?"
		args = append(args, val)
	}
	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Reference != nil {
		add("reference", *u.Reference)
	}
	if u.Category != nil {
		add("category", *u.Category)
	}
	if u.Stock != nil {
		add("stock", *u.Stock)
	}
	if u.MinStock != nil {
		add("min_stock", *u.MinStock)
	}
	if u.UnitPrice != nil {
		add("unit_price", *u.UnitPrice)
	}
	if set == "" {
		return r.Get(id)
	}

	args = append(args, id)
	res, err := r.db.Exec(`UPDATE parts SET `+set+` WHERE id = ?`, args...)
	if err != nil {
		return domain.Part{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Part{}, fmt.Errorf("part %s: %w", id, ErrNotFound)
	}
	return r.Get(id)
}

func (r *PartRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM parts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("part %s: %w", id, ErrNotFound)
	}
	return nil
}
