package server

import (
	"log"
	"net/http"

	"github.com/jmtong/talentpipe/internal/agent"
	"github.com/jmtong/talentpipe/internal/db"
	"github.com/jmtong/talentpipe/internal/types"
)

// ProcessResponse represents the response for POST /jobs/{id}/process.
type ProcessResponse struct {
	Output *types.AgentOutput `json:"output"`
	Steps  []agent.Step       `json:"steps"`
	Saved  *bool              `json:"saved,omitempty"`
}

// loadJob fetches the job and writes the error response when it is missing.
func (s *Server) loadJob(w http.ResponseWriter, r *http.Request) (*db.Job, bool) {
	jobID, ok := s.jobID(w, r)
	if !ok {
		return nil, false
	}

	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get job: "+err.Error())
		return nil, false
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return nil, false
	}
	return job, true
}

// handleProcess runs the analysis pipeline for a job and returns the
// completed output. The response is written as soon as the output is
// display-ready; persistence completes in the background unless the caller
// asks to wait with ?wait_for_save=true.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	job, ok := s.loadJob(w, r)
	if !ok {
		return
	}

	runner, err := agent.NewRunner(agent.Options{
		LLM:   s.llm,
		Cache: s.cache,
		Store: s.store,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := runner.Process(r.Context(), job.ID, job.Content)
	if err != nil {
		steps := []agent.Step{}
		if result != nil {
			steps = result.Steps
		}
		s.jsonResponse(w, http.StatusUnprocessableEntity, map[string]any{
			"error": err.Error(),
			"steps": steps,
		})
		return
	}

	// Keep the job row's display fields in sync with the fresh summary.
	if result.Output.JobSummary != "" {
		if err := s.store.UpdateJobTitleSummary(r.Context(), job.ID, firstTitle(result.Output), result.Output.JobSummary); err != nil {
			log.Printf("Failed to update job summary for %s: %v", job.ID, err)
		}
	}

	resp := ProcessResponse{Output: result.Output, Steps: result.Steps}

	if r.URL.Query().Get("wait_for_save") == "true" {
		saved := true
		if saveErr := <-result.Saved; saveErr != nil {
			saved = false
			log.Printf("Failed to save output for job %s: %v", job.ID, saveErr)
		}
		resp.Saved = &saved
	} else {
		go func() {
			if saveErr := <-result.Saved; saveErr != nil {
				log.Printf("Failed to save output for job %s: %v", job.ID, saveErr)
			}
		}()
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleProcessStream runs the pipeline and streams step progress as
// Server-Sent Events, followed by the output and the persistence outcome.
func (s *Server) handleProcessStream(w http.ResponseWriter, r *http.Request) {
	job, ok := s.loadJob(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	runner, err := agent.NewRunner(agent.Options{
		LLM:   s.llm,
		Cache: s.cache,
		Store: s.store,
		OnProgress: func(event agent.ProgressEvent) {
			sse.WriteStep(event) //nolint:errcheck
		},
	})
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	result, err := runner.Process(r.Context(), job.ID, job.Content)
	if err != nil {
		sse.WriteError(err.Error())
		sse.WriteComplete(job.ID, agent.StatusError)
		return
	}

	if result.Output.JobSummary != "" {
		if err := s.store.UpdateJobTitleSummary(r.Context(), job.ID, firstTitle(result.Output), result.Output.JobSummary); err != nil {
			log.Printf("Failed to update job summary for %s: %v", job.ID, err)
		}
	}

	sse.WriteOutput(result.Output) //nolint:errcheck

	sse.WriteSaveResult(<-result.Saved)

	sse.WriteComplete(job.ID, agent.StatusComplete)
}

// handleGetOutput returns a job's analysis output, preferring the in-memory
// cache over the database.
func (s *Server) handleGetOutput(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.jobID(w, r)
	if !ok {
		return
	}

	if output := s.cache.GetOutput(jobID); output != nil {
		s.jsonResponse(w, http.StatusOK, output)
		return
	}

	output, err := s.store.GetAgentOutputByJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get output: "+err.Error())
		return
	}
	if output == nil {
		s.errorResponse(w, http.StatusNotFound, "Output not found")
		return
	}

	s.cache.SetOutput(jobID, output)
	s.jsonResponse(w, http.StatusOK, output)
}

// firstTitle picks the leading extracted title as the job's display title.
func firstTitle(output *types.AgentOutput) string {
	if len(output.Terms.Titles) > 0 {
		return output.Terms.Titles[0]
	}
	return ""
}
