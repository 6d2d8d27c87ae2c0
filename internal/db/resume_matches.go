package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jmtong/talentpipe/internal/types"
)

// InsertResumeMatch stores a resume match result for a job.
func (db *DB) InsertResumeMatch(ctx context.Context, jobID uuid.UUID, resumeName string, match types.ResumeMatch) (*ResumeMatch, error) {
	strengthsJSON, err := json.Marshal(match.Strengths)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal strengths: %w", err)
	}
	gapsJSON, err := json.Marshal(match.Gaps)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gaps: %w", err)
	}

	row := ResumeMatch{JobID: jobID, ResumeName: resumeName, Match: match}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resume_matches (job_id, resume_name, score, strengths, gaps, summary)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		jobID, resumeName, match.Score, strengthsJSON, gapsJSON, match.Summary,
	).Scan(&row.ID, &row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert resume match: %w", err)
	}
	return &row, nil
}

// ListResumeMatches retrieves match results for a job, highest score first.
func (db *DB) ListResumeMatches(ctx context.Context, jobID uuid.UUID) ([]ResumeMatch, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_id, resume_name, score, strengths, gaps, summary, created_at
		 FROM resume_matches WHERE job_id = $1 ORDER BY score DESC, created_at DESC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume matches: %w", err)
	}
	defer rows.Close()

	var matches []ResumeMatch
	for rows.Next() {
		var m ResumeMatch
		var strengthsJSON, gapsJSON []byte
		if err := rows.Scan(&m.ID, &m.JobID, &m.ResumeName, &m.Match.Score,
			&strengthsJSON, &gapsJSON, &m.Match.Summary, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume match: %w", err)
		}
		if strengthsJSON != nil {
			_ = json.Unmarshal(strengthsJSON, &m.Match.Strengths)
		}
		if gapsJSON != nil {
			_ = json.Unmarshal(gapsJSON, &m.Match.Gaps)
		}
		matches = append(matches, m)
	}
	return matches, nil
}
