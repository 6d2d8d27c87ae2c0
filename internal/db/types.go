package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmtong/talentpipe/internal/types"
)

// Job represents a submitted analysis job: the free-text content a user
// wants analyzed, plus the fields later computed for it. Jobs are never
// hard-deleted.
type Job struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Content      string    `json:"content"`
	SearchString *string   `json:"search_string,omitempty"`
	Title        *string   `json:"title,omitempty"`
	Summary      *string   `json:"summary,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ResumeMatch is a persisted resume-vs-job match result.
type ResumeMatch struct {
	ID         uuid.UUID         `json:"id"`
	JobID      uuid.UUID         `json:"job_id"`
	ResumeName string            `json:"resume_name"`
	Match      types.ResumeMatch `json:"match"`
	CreatedAt  time.Time         `json:"created_at"`
}

// InterviewSession is a persisted set of generated interview questions.
type InterviewSession struct {
	ID        uuid.UUID                 `json:"id"`
	JobID     uuid.UUID                 `json:"job_id"`
	FocusArea string                    `json:"focus_area,omitempty"`
	Questions []types.InterviewQuestion `json:"questions"`
	CreatedAt time.Time                 `json:"created_at"`
}
