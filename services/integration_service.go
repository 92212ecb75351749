package services

import (
	"context"

	"github.com/Soukthavilay/qr-order/models"
)

const (
	IntegrationConnected = "connected"
	IntegrationAvailable = "available"
)

// IntegrationCheck describes one backend and whether it was configured at start.
type IntegrationCheck struct {
	Name        string
	Description string
	Connected   bool
}

// IntegrationService reports which external systems are wired up.
type IntegrationService interface {
	ListIntegrations(ctx context.Context) []models.Integration
}

type integrationServiceImpl struct {
	integrations []models.Integration
}

func NewIntegrationService(checks []IntegrationCheck) IntegrationService {
	integrations := make([]models.Integration, 0, len(checks))
	for _, c := range checks {
		status := IntegrationAvailable
		if c.Connected {
			status = IntegrationConnected
		}
		integrations = append(integrations, models.Integration{Name: c.Name, Description: c.Description, Status: status})
	}
	return &integrationServiceImpl{integrations: integrations}
}

func (s *integrationServiceImpl) ListIntegrations(_ context.Context) []models.Integration {
	out := make([]models.Integration, len(s.integrations))
	copy(out, s.integrations)
	return out
}
