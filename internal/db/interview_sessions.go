package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jmtong/talentpipe/internal/types"
)

// CreateInterviewSession stores a generated set of interview questions.
func (db *DB) CreateInterviewSession(ctx context.Context, jobID uuid.UUID, focusArea string, questions []types.InterviewQuestion) (*InterviewSession, error) {
	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal questions: %w", err)
	}

	session := InterviewSession{JobID: jobID, FocusArea: focusArea, Questions: questions}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO interview_sessions (job_id, focus_area, questions)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		jobID, focusArea, questionsJSON,
	).Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create interview session: %w", err)
	}
	return &session, nil
}

// ListInterviewSessions retrieves interview sessions for a job, newest first.
func (db *DB) ListInterviewSessions(ctx context.Context, jobID uuid.UUID) ([]InterviewSession, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_id, COALESCE(focus_area, ''), questions, created_at
		 FROM interview_sessions WHERE job_id = $1 ORDER BY created_at DESC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list interview sessions: %w", err)
	}
	defer rows.Close()

	var sessions []InterviewSession
	for rows.Next() {
		var s InterviewSession
		var questionsJSON []byte
		if err := rows.Scan(&s.ID, &s.JobID, &s.FocusArea, &questionsJSON, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan interview session: %w", err)
		}
		if questionsJSON != nil {
			_ = json.Unmarshal(questionsJSON, &s.Questions)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}
