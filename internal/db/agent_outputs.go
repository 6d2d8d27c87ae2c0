package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jmtong/talentpipe/internal/types"
)

// UpsertAgentOutput stores a pipeline output, replacing any previous output
// for the same job. The job_id uniqueness constraint is what prevents
// duplicate rows when a pipeline is re-run.
func (db *DB) UpsertAgentOutput(ctx context.Context, output *types.AgentOutput) error {
	termsJSON, err := json.Marshal(output.Terms)
	if err != nil {
		return fmt.Errorf("failed to marshal terms: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO agent_outputs (job_id, terms, compensation_analysis, enhanced_description, job_summary, fingerprint)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (job_id) DO UPDATE
		 SET terms = $2, compensation_analysis = $3, enhanced_description = $4,
		     job_summary = $5, fingerprint = $6, created_at = NOW()
		 RETURNING id, created_at`,
		output.JobID, termsJSON, output.CompensationAnalysis,
		output.EnhancedDescription, output.JobSummary, output.Fingerprint,
	).Scan(&output.ID, &output.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert agent output: %w", err)
	}
	return nil
}

// GetAgentOutputByJob retrieves the pipeline output for a job. Returns nil
// when no run has completed yet.
func (db *DB) GetAgentOutputByJob(ctx context.Context, jobID uuid.UUID) (*types.AgentOutput, error) {
	var output types.AgentOutput
	var termsJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, job_id, terms, compensation_analysis, enhanced_description, job_summary, fingerprint, created_at
		 FROM agent_outputs WHERE job_id = $1`,
		jobID,
	).Scan(&output.ID, &output.JobID, &termsJSON, &output.CompensationAnalysis,
		&output.EnhancedDescription, &output.JobSummary, &output.Fingerprint, &output.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get agent output: %w", err)
	}

	if termsJSON != nil {
		_ = json.Unmarshal(termsJSON, &output.Terms)
	}

	return &output, nil
}
