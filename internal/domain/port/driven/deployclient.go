package driven

import (
	"context"
	"errors"

	"github.com/mehtaportfolio/data-backend/internal/domain/model"
)

// Sentinel errors returned by DeployClient implementations and the service
// status use case.
var (
	// ErrDeployNotConfigured indicates the API key or service id is missing.
	ErrDeployNotConfigured = errors.New("deploy API credentials not configured")

	// ErrUpstream indicates the deploy API answered with a non-success status.
	ErrUpstream = errors.New("upstream error")
)

// DeployClient defines the driven port for the hosting provider's deploy API.
type DeployClient interface {
	// LatestDeploy returns the status of the most recent deploy.
	LatestDeploy(ctx context.Context) (model.DeployStatus, error)
	// Restart asks the provider to restart the service. It does not wait
	// for the restart to finish.
	Restart(ctx context.Context) error
}
