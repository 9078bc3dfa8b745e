package handlers

import (
	"github.com/jmoiron/sqlx"

	"fleetman/internal/config"
	"fleetman/internal/repos"
	"fleetman/internal/services"
)

type Deps struct {
	VehicleHandler     *VehicleHandler
	PartHandler        *PartHandler
	MaintenanceHandler *MaintenanceHandler
	AlertHandler       *AlertHandler
	ValidationHandler  *ValidationHandler
	DashboardHandler   *DashboardHandler
	ChatHandler        *ChatHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	vehicleRepo := repos.NewVehicleRepo(db)
	partRepo := repos.NewPartRepo(db)
	maintRepo := repos.NewMaintenanceRepo(db)
	alertRepo := repos.NewAlertRepo(db)

	validationSvc := services.NewValidationService(db, vehicleRepo, maintRepo, alertRepo)
	partsSvc := services.NewPartsService(partRepo)
	dashboardSvc := services.NewDashboardService(vehicleRepo, partRepo, alertRepo)
	chatSvc := services.NewChatService(dashboardSvc, partsSvc, alertRepo)

	return &Deps{
		VehicleHandler:     &VehicleHandler{Vehicles: vehicleRepo},
		PartHandler:        &PartHandler{Parts: partRepo, Svc: partsSvc},
		MaintenanceHandler: &MaintenanceHandler{Maintenance: maintRepo, Vehicles: vehicleRepo, Parts: partRepo},
		AlertHandler:       &AlertHandler{Alerts: alertRepo, Vehicles: vehicleRepo},
		ValidationHandler:  &ValidationHandler{Validation: validationSvc},
		DashboardHandler:   &DashboardHandler{Dashboard: dashboardSvc},
		ChatHandler:        &ChatHandler{Chat: chatSvc},
	}
}
