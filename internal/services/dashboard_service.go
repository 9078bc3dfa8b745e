package services

import (
	"fleetman/internal/domain"
	"fleetman/internal/repos"
)

type DashboardService struct {
	Vehicles *repos.VehicleRepo
	Parts    *repos.PartRepo
	Alerts   *repos.AlertRepo
}

func NewDashboardService(vehicles *repos.VehicleRepo, parts *repos.PartRepo, alerts *repos.AlertRepo) *DashboardService {
	return &DashboardService{Vehicles: vehicles, Parts: parts, Alerts: alerts}
}

// Stats counts vehicles by status, parts by derived stock status and
// unread alerts. Pure aggregation; zeroes on an empty store.
func (s *DashboardService) Stats() (domain.DashboardStats, error) {
	var stats domain.DashboardStats

	vehicles, err := s.Vehicles.List()
	if err != nil {
		return stats, err
	}
	stats.TotalVehicles = len(vehicles)
	for _, v := range vehicles {
		switch v.Status {
		case domain.StatusOperational:
			stats.Operational++
		case domain.StatusMaintenanceDue:
			stats.MaintenanceDue++
		case domain.StatusInRepair:
			stats.InRepair++
		}
	}

	parts, err := s.Parts.List()
	if err != nil {
		return stats, err
	}
	stats.TotalParts = len(parts)
	for _, p := range parts {
		switch domain.DerivePartStatus(p.Stock, p.MinStock) {
		case domain.PartInStock:
			stats.PartsInStock++
		case domain.PartLowStock:
			stats.PartsLowStock++
		case domain.PartOutOfStock:
			stats.PartsOutOfStock++
		}
	}

	unread, err := s.Alerts.CountUnread()
	if err != nil {
		return stats, err
	}
	stats.UnreadAlerts = unread
	return stats, nil
}
