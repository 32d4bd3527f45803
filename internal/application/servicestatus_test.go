package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehtaportfolio/data-backend/internal/application"
	"github.com/mehtaportfolio/data-backend/internal/domain/model"
)

func TestServiceStatusService_Status(t *testing.T) {
	client := &mockDeployClient{status: model.DeployStatus{Status: model.DeployStatusLive}}
	svc := application.NewServiceStatusService(client)

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.IsRunning())
}

func TestServiceStatusService_Restart(t *testing.T) {
	client := &mockDeployClient{}
	svc := application.NewServiceStatusService(client)

	require.NoError(t, svc.Restart(context.Background()))
	assert.Equal(t, 1, client.restarts)

	client.restartErr = errBoom
	assert.ErrorIs(t, svc.Restart(context.Background()), errBoom)
}
