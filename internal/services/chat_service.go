package services

import (
	"fmt"
	"strings"

	"fleetman/internal/domain"
	"fleetman/internal/repos"
)

// ChatService answers the assistant widget with canned, data-backed
// responses keyed on the requested action. No language understanding.
type ChatService struct {
	Dashboard *DashboardService
	Parts     *PartsService
	Alerts    *repos.AlertRepo
}

func NewChatService(dashboard *DashboardService, parts *PartsService, alerts *repos.AlertRepo) *ChatService {
	return &ChatService{Dashboard: dashboard, Parts: parts, Alerts: alerts}
}

const chatHelp = "I can help you with vehicle information, maintenance alerts, parts inventory or scheduling interventions. What would you like to know?"

func (s *ChatService) Respond(action string) (string, error) {
	switch action {
	case "vehicle-status":
		stats, err := s.Dashboard.Stats()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("You currently have %d operational vehicles, %d due for maintenance and %d in repair.",
			stats.Operational, stats.MaintenanceDue, stats.InRepair), nil

	case "maintenance-alerts":
		alerts, err := s.Alerts.List()
		if err != nil {
			return "", err
		}
		var unread []string
		for _, a := range alerts {
			if !a.IsRead {
				unread = append(unread, a.Message)
			}
		}
		if len(unread) == 0 {
			return "No urgent maintenance alerts at the moment.", nil
		}
		preview := unread
		if len(preview) > 3 {
			preview = preview[:3]
		}
		return fmt.Sprintf("You have %d maintenance alerts: %s.", len(unread), strings.Join(preview, ", ")), nil

	case "parts-inventory":
		parts, err := s.Parts.ListWithStatus()
		if err != nil {
			return "", err
		}
		var inStock, lowStock, outOfStock int
		for _, p := range parts {
			switch p.Status {
			case domain.PartInStock:
				inStock++
			case domain.PartLowStock:
				lowStock++
			case domain.PartOutOfStock:
				outOfStock++
			}
		}
		response := fmt.Sprintf("Current stock: %d parts in stock", inStock)
		if lowStock > 0 {
			response += fmt.Sprintf(", %d parts low on stock", lowStock)
		}
		if outOfStock > 0 {
			response += fmt.Sprintf(", %d parts out of stock", outOfStock)
		}
		return response + ".", nil

	case "schedule-maintenance":
		return "To schedule a maintenance, please give me the vehicle's plate number and the type of intervention.", nil
	}

	return chatHelp, nil
}
