package domain

import "time"

// VehicleStatus is the operational state of a fleet vehicle.
type VehicleStatus string

const (
	StatusOperational    VehicleStatus = "operational"
	StatusMaintenanceDue VehicleStatus = "maintenance_due"
	StatusInRepair       VehicleStatus = "in_repair"
)

// rank orders statuses by severity: operational < maintenance_due < in_repair.
func (s VehicleStatus) rank() int {
	switch s {
	case StatusInRepair:
		return 2
	case StatusMaintenanceDue:
		return 1
	default:
		return 0
	}
}

// Escalate returns the more severe of s and to. A status never moves down
// through Escalate, so in_repair sticks once set.
func (s VehicleStatus) Escalate(to VehicleStatus) VehicleStatus {
	if to.rank() > s.rank() {
		return to
	}
	return s
}

// Vehicle types
const (
	VehicleCar   = "car"
	VehicleVan   = "van"
	VehicleTruck = "truck"
)

type Vehicle struct {
	ID        string        `db:"id" json:"id"`
	Plate     string        `db:"plate" json:"plate"`
	Make      string        `db:"make" json:"make"`
	Model     string        `db:"model" json:"model"`
	Year      int           `db:"year" json:"year"`
	Type      string        `db:"type" json:"type"`       // car | van | truck
	Mileage   int           `db:"mileage" json:"mileage"` // km
	Status    VehicleStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"createdAt"`
}

// VehicleWithAlerts is the detail view: the vehicle plus its alerts and
// most recent maintenance record.
type VehicleWithAlerts struct {
	Vehicle
	Alerts          []Alert            `json:"alerts"`
	LastMaintenance *MaintenanceRecord `json:"lastMaintenance,omitempty"`
}

// PartStatus is derived from stock levels, never stored.
type PartStatus string

const (
	PartInStock    PartStatus = "in_stock"
	PartLowStock   PartStatus = "low_stock"
	PartOutOfStock PartStatus = "out_of_stock"
)

// DerivePartStatus maps stock against the reorder threshold. Zero stock is
// out_of_stock regardless of the threshold, even when minStock is 0.
func DerivePartStatus(stock, minStock int) PartStatus {
	switch {
	case stock == 0:
		return PartOutOfStock
	case stock <= minStock:
		return PartLowStock
	default:
		return PartInStock
	}
}

type Part struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Reference string    `db:"reference" json:"reference"`
	Category  string    `db:"category" json:"category"` // filters | brakes | engine | tires
	Stock     int       `db:"stock" json:"stock"`
	MinStock  int       `db:"min_stock" json:"minStock"`
	UnitPrice int       `db:"unit_price" json:"unitPrice"` // cents
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type PartWithStatus struct {
	Part
	Status PartStatus `json:"status"`
}

// Maintenance types
const (
	MaintenanceOilChange      = "oil-change"
	MaintenanceInspection     = "inspection"
	MaintenanceGeneralService = "general-service"
	MaintenanceRepair         = "repair"
	MaintenanceUpkeep         = "upkeep"
)

// IsMajorMaintenance reports whether a maintenance type resets the interval
// clocks (oil change, annual service, technical inspection).
func IsMajorMaintenance(typ string) bool {
	return typ == MaintenanceOilChange || typ == MaintenanceGeneralService || typ == MaintenanceInspection
}

type MaintenanceRecord struct {
	ID          string     `db:"id" json:"id"`
	VehicleID   string     `db:"vehicle_id" json:"vehicleId"`
	Type        string     `db:"type" json:"type"`
	Description string     `db:"description" json:"description"`
	Cost        int        `db:"cost" json:"cost"`         // cents
	Duration    int        `db:"duration" json:"duration"` // minutes
	Technician  string     `db:"technician" json:"technician"`
	CompletedAt time.Time  `db:"completed_at" json:"completedAt"`
	NextDue     *time.Time `db:"next_due" json:"nextDue,omitempty"`
}

// MaintenanceWithParts is the list view: the record plus its vehicle and
// the parts consumed.
type MaintenanceWithParts struct {
	MaintenanceRecord
	Vehicle   Vehicle             `json:"vehicle"`
	PartsUsed []PartUsageWithPart `json:"partsUsed"`
}

type PartUsage struct {
	ID            string `db:"id" json:"id"`
	MaintenanceID string `db:"maintenance_id" json:"maintenanceId"`
	PartID        string `db:"part_id" json:"partId"`
	Quantity      int    `db:"quantity" json:"quantity"`
}

type PartUsageWithPart struct {
	PartUsage
	Part Part `json:"part"`
}

// Alert priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

type Alert struct {
	ID        string    `db:"id" json:"id"`
	VehicleID string    `db:"vehicle_id" json:"vehicleId"`
	Type      string    `db:"type" json:"type"` // free-form tag: maintenance-due, overdue, ...
	Message   string    `db:"message" json:"message"`
	Priority  string    `db:"priority" json:"priority"`
	IsRead    bool      `db:"is_read" json:"isRead"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// ValidationResult is the verdict of one vehicle status validation run.
type ValidationResult struct {
	Status             VehicleStatus `json:"status"`
	Reasons            []string      `json:"reasons"`
	LastInspection     *time.Time    `json:"lastInspection,omitempty"`
	NextMaintenanceDue *time.Time    `json:"nextMaintenanceDue,omitempty"`
	UrgentIssues       []string      `json:"urgentIssues"`
}

// DashboardStats summarizes the fleet for the dashboard.
type DashboardStats struct {
	TotalVehicles   int `json:"totalVehicles"`
	Operational     int `json:"operational"`
	MaintenanceDue  int `json:"maintenanceDue"`
	InRepair        int `json:"inRepair"`
	TotalParts      int `json:"totalParts"`
	PartsInStock    int `json:"partsInStock"`
	PartsLowStock   int `json:"partsLowStock"`
	PartsOutOfStock int `json:"partsOutOfStock"`
	UnreadAlerts    int `json:"unreadAlerts"`
}
