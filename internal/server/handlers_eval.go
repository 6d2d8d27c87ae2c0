package server

import (
	"net/http"

	"github.com/jmtong/talentpipe/internal/interview"
)

// MatchRequest represents the request body for POST /jobs/{id}/match.
type MatchRequest struct {
	ResumeName string `json:"resume_name" validate:"required,min=1"`
	Resume     string `json:"resume" validate:"required,min=1"`
}

// handleMatch scores a resume against the job content and persists the result.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	job, ok := s.loadJob(w, r)
	if !ok {
		return
	}

	var req MatchRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := s.matcher.Score(r.Context(), job.Content, req.Resume)
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, "Match failed: "+err.Error())
		return
	}

	row, err := s.store.InsertResumeMatch(r.Context(), job.ID, req.ResumeName, *result)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save match: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, row)
}

// handleListMatches returns all persisted matches for a job.
func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.jobID(w, r)
	if !ok {
		return
	}

	matches, err := s.store.ListResumeMatches(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list matches: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, matches)
}

// InterviewRequest represents the request body for POST /jobs/{id}/interview-questions.
type InterviewRequest struct {
	QuestionCount int    `json:"question_count,omitempty" validate:"omitempty,min=1,max=25"`
	FocusArea     string `json:"focus_area,omitempty"`
}

// handleInterviewQuestions generates interview questions for a job and
// persists them as a session.
func (s *Server) handleInterviewQuestions(w http.ResponseWriter, r *http.Request) {
	job, ok := s.loadJob(w, r)
	if !ok {
		return
	}

	var req InterviewRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	questions, err := s.interviewer.Generate(r.Context(), interview.Request{
		Content:       job.Content,
		QuestionCount: req.QuestionCount,
		FocusArea:     req.FocusArea,
	})
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, "Question generation failed: "+err.Error())
		return
	}

	session, err := s.store.CreateInterviewSession(r.Context(), job.ID, req.FocusArea, questions)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save session: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, session)
}

// handleListInterviewSessions returns all question sessions for a job.
func (s *Server) handleListInterviewSessions(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.jobID(w, r)
	if !ok {
		return
	}

	sessions, err := s.store.ListInterviewSessions(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list sessions: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, sessions)
}
