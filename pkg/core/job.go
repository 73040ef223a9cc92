package core

import (
	"context"
	"time"

	"gopkg.in/guregu/null.v4/zero"
)

// JobRecord is a stored job (one lineage of builds, e.g. one branch of a project).
type JobRecord struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	// GroupID is the grouping the job belongs to, empty for standalone jobs.
	GroupID zero.String `json:"group_id" db:"group_id"`
	// MultiLineage is true when the group is a branch based grouping.
	MultiLineage bool      `json:"multi_lineage" db:"multi_lineage"`
	Primary      bool      `json:"primary" db:"is_primary"`
	Created      time.Time `json:"-" db:"created_at"`
	Updated      time.Time `json:"-" db:"updated_at"`
}

// JobStore defines datastore operation for working with jobs.
type JobStore interface {
	// Find returns the job with the given id.
	Find(ctx context.Context, jobID string) (*JobRecord, error)
	// FindByGroup returns the jobs of a grouping.
	FindByGroup(ctx context.Context, groupID string) ([]*JobRecord, error)
}
