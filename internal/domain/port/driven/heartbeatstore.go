package driven

import (
	"context"

	"github.com/mehtaportfolio/data-backend/internal/domain/model"
)

// HeartbeatStore defines the driven port used by the heartbeat refresh job.
type HeartbeatStore interface {
	// Latest returns the most recently created row, or nil if the table is empty.
	Latest(ctx context.Context) (*model.DummyRow, error)
	Delete(ctx context.Context, id string) error
	Create(ctx context.Context, row model.DummyRow) (model.DummyRow, error)
}
