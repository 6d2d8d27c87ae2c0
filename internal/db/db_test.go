package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jmtong/talentpipe/internal/types"
)

func TestJobType(t *testing.T) {
	job := Job{
		ID:      uuid.New(),
		UserID:  uuid.New(),
		Content: "Senior backend engineer, Python, AWS, 5 years",
	}

	assert.NotEqual(t, uuid.Nil, job.ID)
	assert.Nil(t, job.SearchString)
	assert.Nil(t, job.Title)
	assert.Nil(t, job.Summary)
}

func TestResumeMatchType(t *testing.T) {
	m := ResumeMatch{
		JobID:      uuid.New(),
		ResumeName: "candidate.pdf",
		Match: types.ResumeMatch{
			Score:     80,
			Strengths: []string{"Python"},
			Gaps:      []string{"Kubernetes"},
			Summary:   "Strong backend background.",
		},
	}

	assert.Equal(t, 80, m.Match.Score)
	assert.Len(t, m.Match.Strengths, 1)
}
