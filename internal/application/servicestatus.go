package application

import (
	"context"
	"log/slog"

	"github.com/mehtaportfolio/data-backend/internal/domain/model"
	"github.com/mehtaportfolio/data-backend/internal/domain/port/driven"
)

// ServiceStatusService reports on and restarts the hosted deployment.
type ServiceStatusService struct {
	client driven.DeployClient
}

// NewServiceStatusService creates a ServiceStatusService.
func NewServiceStatusService(client driven.DeployClient) *ServiceStatusService {
	return &ServiceStatusService{client: client}
}

// Status returns the state of the latest deploy.
func (s *ServiceStatusService) Status(ctx context.Context) (model.DeployStatus, error) {
	return s.client.LatestDeploy(ctx)
}

// Restart requests a restart and returns without waiting for it to complete.
func (s *ServiceStatusService) Restart(ctx context.Context) error {
	if err := s.client.Restart(ctx); err != nil {
		return err
	}
	slog.Info("service restart requested")
	return nil
}
