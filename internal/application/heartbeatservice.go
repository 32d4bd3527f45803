package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mehtaportfolio/data-backend/internal/domain/model"
	"github.com/mehtaportfolio/data-backend/internal/domain/port/driven"
)

const (
	// DefaultHeartbeatSchedule fires once a day at midnight UTC.
	DefaultHeartbeatSchedule = "0 0 * * *"

	heartbeatLockKey = "data-backend:heartbeat"
	heartbeatLockTTL = 5 * time.Minute
)

// HeartbeatService keeps a single fresh row in the diagnostic table so the
// hosted datastore sees regular writes.
type HeartbeatService struct {
	store    driven.HeartbeatStore
	lock     driven.RunLock
	schedule cron.Schedule
	spec     string
	now      func() time.Time
}

// NewHeartbeatService creates a HeartbeatService firing on the five-field cron
// spec. lock may be nil, in which case runs are not coordinated across
// instances.
func NewHeartbeatService(store driven.HeartbeatStore, lock driven.RunLock, spec string) (*HeartbeatService, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse heartbeat schedule %q: %w", spec, err)
	}

	return &HeartbeatService{
		store:    store,
		lock:     lock,
		schedule: schedule,
		spec:     spec,
		now:      time.Now,
	}, nil
}

// Start runs the refresh on schedule until ctx is canceled. A firing that
// overlaps a still-running one is skipped. Start blocks until the in-flight
// run, if any, has finished.
func (s *HeartbeatService) Start(ctx context.Context) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	c.Schedule(s.schedule, cron.FuncJob(func() {
		if _, err := s.RunOnce(ctx); err != nil {
			slog.Error("heartbeat refresh failed", "error", err)
		}
	}))

	slog.Info("heartbeat scheduler started", "schedule", s.spec, "next", s.schedule.Next(s.now().UTC()))
	c.Start()

	<-ctx.Done()

	<-c.Stop().Done()
	slog.Info("heartbeat scheduler stopped")
}

// RunOnce replaces the latest diagnostic row with a fresh one stamped with the
// current unix time in milliseconds. The first failing step aborts the run.
// It returns nil, nil when another instance holds the run lock.
func (s *HeartbeatService) RunOnce(ctx context.Context) (*model.DummyRow, error) {
	if s.lock != nil {
		acquired, err := s.lock.TryAcquire(ctx, heartbeatLockKey, heartbeatLockTTL)
		if err != nil {
			return nil, fmt.Errorf("acquire heartbeat lock: %w", err)
		}
		if !acquired {
			slog.Info("heartbeat refresh skipped, lock held elsewhere")
			return nil, nil
		}
		defer func() {
			if err := s.lock.Release(context.WithoutCancel(ctx), heartbeatLockKey); err != nil {
				slog.Warn("release heartbeat lock", "error", err)
			}
		}()
	}

	start := s.now()

	latest, err := s.store.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("read latest heartbeat row: %w", err)
	}

	if latest != nil {
		if err := s.store.Delete(ctx, latest.ID); err != nil {
			return nil, fmt.Errorf("delete heartbeat row %s: %w", latest.ID, err)
		}
	}

	one := int64(1)
	point := float64(start.UnixMilli())
	created, err := s.store.Create(ctx, model.DummyRow{
		SrNo:    &one,
		IndexNo: &one,
		PointNo: &point,
	})
	if err != nil {
		return nil, fmt.Errorf("insert heartbeat row: %w", err)
	}

	slog.Info("heartbeat refreshed",
		"id", created.ID,
		"replaced", latest != nil,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return &created, nil
}
