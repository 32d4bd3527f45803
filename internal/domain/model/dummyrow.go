package model

import "time"

// DummyRow is the heartbeat row kept in dummy_table. The refresh job keeps a
// single row whose PointNo is the unix time in milliseconds of the last run.
type DummyRow struct {
	ID        string     `json:"id" db:"id"`
	SrNo      *int64     `json:"sr_no" db:"sr_no"`
	IndexNo   *int64     `json:"index_no" db:"index_no"`
	PointNo   *float64   `json:"point_no" db:"point_no"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}
