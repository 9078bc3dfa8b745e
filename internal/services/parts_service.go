package services

import (
	"fleetman/internal/domain"
	"fleetman/internal/repos"
)

type PartsService struct {
	Parts *repos.PartRepo
}

func NewPartsService(parts *repos.PartRepo) *PartsService {
	return &PartsService{Parts: parts}
}

// ListWithStatus returns all parts with their stock status derived on
// read; the status is never persisted.
func (s *PartsService) ListWithStatus() ([]domain.PartWithStatus, error) {
	parts, err := s.Parts.List()
	if err != nil {
		return nil, err
	}
	out := make([]domain.PartWithStatus, 0, len(parts))
	for _, p := range parts {
		out = append(out, domain.PartWithStatus{
			Part:   p,
			Status: domain.DerivePartStatus(p.Stock, p.MinStock),
		})
	}
	return out, nil
}
