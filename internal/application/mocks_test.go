package application_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mehtaportfolio/data-backend/internal/domain/model"
)

// --- Mock implementations ---

// mockRecordStore is an in-memory driven.RecordStore. Only List is exercised
// by the application services; the remaining methods exist for the interface.
type mockRecordStore[T any] struct {
	records []T
	listErr error
}

func (m *mockRecordStore[T]) List(_ context.Context) ([]T, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.records, nil
}

func (m *mockRecordStore[T]) Create(_ context.Context, record T) (T, error) {
	m.records = append(m.records, record)
	return record, nil
}

func (m *mockRecordStore[T]) Update(_ context.Context, _ string, patch T, _ []string) (T, error) {
	return patch, nil
}

func (m *mockRecordStore[T]) Delete(_ context.Context, _ string) error { return nil }

func (m *mockRecordStore[T]) DeleteReturning(_ context.Context, _ string) (T, error) {
	var zero T
	return zero, nil
}

// mockHeartbeatStore keeps dummy rows in insertion order.
type mockHeartbeatStore struct {
	rows      []model.DummyRow
	latestErr error
	deleteErr error
	createErr error
	nextID    int
}

func (m *mockHeartbeatStore) Latest(_ context.Context) (*model.DummyRow, error) {
	if m.latestErr != nil {
		return nil, m.latestErr
	}
	if len(m.rows) == 0 {
		return nil, nil
	}
	row := m.rows[len(m.rows)-1]
	return &row, nil
}

func (m *mockHeartbeatStore) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, r := range m.rows {
		if r.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockHeartbeatStore) Create(_ context.Context, row model.DummyRow) (model.DummyRow, error) {
	if m.createErr != nil {
		return model.DummyRow{}, m.createErr
	}
	m.nextID++
	row.ID = fmt.Sprintf("row-%d", m.nextID)
	row.CreatedAt = time.Now().UTC()
	m.rows = append(m.rows, row)
	return row, nil
}

// mockRunLock is a single-process RunLock.
type mockRunLock struct {
	mu       sync.Mutex
	held     bool
	released int
	err      error
}

func (m *mockRunLock) TryAcquire(_ context.Context, _ string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if m.held {
		return false, nil
	}
	m.held = true
	return true, nil
}

func (m *mockRunLock) Release(_ context.Context, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held = false
	m.released++
	return nil
}

// mockDeployClient returns canned deploy API answers.
type mockDeployClient struct {
	status     model.DeployStatus
	statusErr  error
	restartErr error
	restarts   int
}

func (m *mockDeployClient) LatestDeploy(_ context.Context) (model.DeployStatus, error) {
	return m.status, m.statusErr
}

func (m *mockDeployClient) Restart(_ context.Context) error {
	m.restarts++
	return m.restartErr
}

var errBoom = errors.New("boom")
