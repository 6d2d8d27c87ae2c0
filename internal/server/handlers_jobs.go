package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jmtong/talentpipe/internal/server/middleware"
)

var validate = validator.New()

// CreateJobRequest represents the request body for POST /jobs.
type CreateJobRequest struct {
	UserID  string `json:"user_id,omitempty" validate:"omitempty,uuid4"`
	Content string `json:"content" validate:"required,min=1"`
}

// jobID parses the {id} path value.
func (s *Server) jobID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID format")
		return uuid.Nil, false
	}
	return id, true
}

// requestUserID resolves the acting user: the authenticated token user when
// present, otherwise the explicit user_id from the request.
func (s *Server) requestUserID(r *http.Request, explicit string) (uuid.UUID, error) {
	if userID, err := middleware.GetUserID(r); err == nil {
		return userID, nil
	}
	return uuid.Parse(explicit)
}

// decodeAndValidate decodes the JSON body into dst and runs struct validation.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := validate.Struct(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return false
	}
	return true
}

// handleCreateJob stores a new job's content for later analysis.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	userID, err := s.requestUserID(r, req.UserID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	job, err := s.store.CreateJob(r.Context(), userID, req.Content)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create job: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, job)
}

// handleListJobs lists recent jobs for a user.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	userID, err := s.requestUserID(r, r.URL.Query().Get("user_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	jobs, err := s.store.ListJobs(r.Context(), userID, 0)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list jobs: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, jobs)
}

// handleGetJob returns a single job by ID.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.jobID(w, r)
	if !ok {
		return
	}

	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get job: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}
