package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateJob inserts a new analysis job and returns it.
func (db *DB) CreateJob(ctx context.Context, userID uuid.UUID, content string) (*Job, error) {
	var job Job
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (user_id, content)
		 VALUES ($1, $2)
		 RETURNING id, user_id, content, search_string, title, summary, created_at`,
		userID, content,
	).Scan(&job.ID, &job.UserID, &job.Content, &job.SearchString, &job.Title, &job.Summary, &job.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &job, nil
}

// GetJob retrieves a job by ID. Returns nil when it does not exist.
func (db *DB) GetJob(ctx context.Context, jobID uuid.UUID) (*Job, error) {
	var job Job
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, content, search_string, title, summary, created_at
		 FROM jobs WHERE id = $1`,
		jobID,
	).Scan(&job.ID, &job.UserID, &job.Content, &job.SearchString, &job.Title, &job.Summary, &job.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// ListJobs retrieves a user's jobs, most recent first.
func (db *DB) ListJobs(ctx context.Context, userID uuid.UUID, limit int) ([]Job, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, content, search_string, title, summary, created_at
		 FROM jobs WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var job Job
		if err := rows.Scan(&job.ID, &job.UserID, &job.Content, &job.SearchString, &job.Title, &job.Summary, &job.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// UpdateJobSearchString stores a generated boolean search string on the job.
func (db *DB) UpdateJobSearchString(ctx context.Context, jobID uuid.UUID, searchString string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE jobs SET search_string = $1 WHERE id = $2`,
		searchString, jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to update search string: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", jobID)
	}
	return nil
}

// UpdateJobTitleSummary stores the computed title and summary on the job.
func (db *DB) UpdateJobTitleSummary(ctx context.Context, jobID uuid.UUID, title, summary string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE jobs SET title = $1, summary = $2 WHERE id = $3`,
		title, summary, jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job title/summary: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", jobID)
	}
	return nil
}
