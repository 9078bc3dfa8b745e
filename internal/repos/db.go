package repos

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (vehicles/parts/maintenance/alerts)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Vehicles
CREATE TABLE IF NOT EXISTS vehicles(
  id TEXT PRIMARY KEY,
  plate TEXT NOT NULL UNIQUE,
  make TEXT NOT NULL,
  model TEXT NOT NULL,
  year INTEGER NOT NULL,
  type TEXT NOT NULL CHECK (type IN ('car','van','truck')),
  mileage INTEGER NOT NULL DEFAULT 0 CHECK (mileage >= 0),
  status TEXT NOT NULL DEFAULT 'operational'
    CHECK (status IN ('operational','maintenance_due','in_repair')),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_vehicles_status ON vehicles(status);

-- Parts
CREATE TABLE IF NOT EXISTS parts(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  reference TEXT NOT NULL UNIQUE,
  category TEXT NOT NULL,
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  min_stock INTEGER NOT NULL DEFAULT 5 CHECK (min_stock >= 0),
  unit_price INTEGER NOT NULL CHECK (unit_price >= 0),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Maintenance records
CREATE TABLE IF NOT EXISTS maintenance_records(
  id TEXT PRIMARY KEY,
  vehicle_id TEXT NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
  type TEXT NOT NULL
    CHECK (type IN ('oil-change','inspection','general-service','repair','upkeep')),
  description TEXT NOT NULL,
  cost INTEGER NOT NULL DEFAULT 0 CHECK (cost >= 0),
  duration INTEGER NOT NULL DEFAULT 60 CHECK (duration > 0),
  technician TEXT NOT NULL,
  completed_at DATETIME NOT NULL,
  next_due DATETIME
);
CREATE INDEX IF NOT EXISTS idx_maintenance_vehicle ON maintenance_records(vehicle_id);
CREATE INDEX IF NOT EXISTS idx_maintenance_completed ON maintenance_records(completed_at);

-- Part usage (parts consumed by a maintenance event)
CREATE TABLE IF NOT EXISTS part_usage(
  id TEXT PRIMARY KEY,
  maintenance_id TEXT NOT NULL REFERENCES maintenance_records(id) ON DELETE CASCADE,
  part_id TEXT NOT NULL REFERENCES parts(id) ON DELETE RESTRICT,
  quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 1)
);
CREATE INDEX IF NOT EXISTS idx_part_usage_maintenance ON part_usage(maintenance_id);

-- Alerts
CREATE TABLE IF NOT EXISTS alerts(
  id TEXT PRIMARY KEY,
  vehicle_id TEXT NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
  type TEXT NOT NULL,
  message TEXT NOT NULL,
  priority TEXT NOT NULL DEFAULT 'medium'
    CHECK (priority IN ('low','medium','high','urgent')),
  is_read INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_alerts_vehicle ON alerts(vehicle_id);
CREATE INDEX IF NOT EXISTS idx_alerts_unread ON alerts(is_read);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM vehicles`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo vehicles/parts/maintenance/alerts")

	now := time.Now().UTC()
	v1, v2, v3 := uuid.NewString(), uuid.NewString(), uuid.NewString()

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO vehicles(id,plate,make,model,year,type,mileage,status,created_at) VALUES
	  (?,'ABC-123-FR','Renault','Master',2020,'van',125430,'operational',?),
	  (?,'XYZ-789-FR','Peugeot','Partner',2019,'van',89750,'maintenance_due',?),
	  (?,'DEF-456-FR','Ford','Transit',2018,'van',156890,'in_repair',?)`,
		v1, now, v2, now, v3, now)

	tx.MustExec(`INSERT INTO parts(id,name,reference,category,stock,min_stock,unit_price,created_at) VALUES
	  (?,'Oil filter','FLT-001-D','filters',25,5,1250,?),
	  (?,'Brake pads','BRK-002-F','brakes',3,5,4500,?),
	  (?,'12V battery','BAT-003-70','engine',0,2,8500,?),
	  (?,'Tire 215/75 R16','TYR-004-16','tires',8,4,12000,?)`,
		uuid.NewString(), now, uuid.NewString(), now, uuid.NewString(), now, uuid.NewString(), now)

	oilDone := now.AddDate(0, 0, -30)
	oilNext := oilDone.AddDate(0, 0, 180)
	tx.MustExec(`INSERT INTO maintenance_records(id,vehicle_id,type,description,cost,duration,technician,completed_at,next_due) VALUES
	  (?,?,'oil-change','Engine oil and filter change',6500,90,'J. Dubois',?,?),
	  (?,?,'repair','Brake pad replacement',12000,165,'M. Martin',?,NULL),
	  (?,?,'inspection','Periodic technical inspection',7800,60,'Auto Control+',?,NULL)`,
		uuid.NewString(), v1, oilDone, oilNext,
		uuid.NewString(), v2, now.AddDate(0, 0, -3),
		uuid.NewString(), v3, now.AddDate(0, 0, -400))

	tx.MustExec(`INSERT INTO alerts(id,vehicle_id,type,message,priority,is_read,created_at) VALUES
	  (?,?,'maintenance-due','Oil change due in 7 days','medium',0,?),
	  (?,?,'overdue','Technical inspection expired 3 days ago','urgent',0,?),
	  (?,?,'inspection-needed','Brake pads need checking','high',0,?)`,
		uuid.NewString(), v1, now, uuid.NewString(), v2, now, uuid.NewString(), v3, now)

	return tx.Commit()
}
