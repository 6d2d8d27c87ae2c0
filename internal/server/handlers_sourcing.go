package server

import (
	"log"
	"net/http"

	"github.com/jmtong/talentpipe/internal/enrich"
	"github.com/jmtong/talentpipe/internal/scrape"
	"github.com/jmtong/talentpipe/internal/sourcing"
	"github.com/jmtong/talentpipe/internal/types"
)

// SearchStringRequest represents the request body for POST /jobs/{id}/search-string.
type SearchStringRequest struct {
	Mode        string `json:"mode" validate:"required,oneof=candidates companies candidates-at-company"`
	CompanyName string `json:"company_name,omitempty"`
	MetroArea   string `json:"metro_area,omitempty"`
}

// SearchStringResponse represents the response for POST /jobs/{id}/search-string.
type SearchStringResponse struct {
	JobID        string `json:"job_id"`
	Mode         string `json:"mode"`
	SearchString string `json:"search_string"`
}

// handleSearchString generates a boolean search string from the job content
// and persists it on the job row.
func (s *Server) handleSearchString(w http.ResponseWriter, r *http.Request) {
	job, ok := s.loadJob(w, r)
	if !ok {
		return
	}

	var req SearchStringRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	searchString, err := s.sourcingGen.GenerateSearchString(r.Context(), sourcing.Request{
		Mode:        types.SearchMode(req.Mode),
		Content:     job.Content,
		CompanyName: req.CompanyName,
		MetroArea:   req.MetroArea,
	})
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, "Search string generation failed: "+err.Error())
		return
	}

	if err := s.store.UpdateJobSearchString(r.Context(), job.ID, searchString); err != nil {
		log.Printf("Failed to persist search string for job %s: %v", job.ID, err)
	}

	s.jsonResponse(w, http.StatusOK, SearchStringResponse{
		JobID:        job.ID.String(),
		Mode:         req.Mode,
		SearchString: searchString,
	})
}

// SourceRequest represents the request body for POST /jobs/{id}/source.
type SourceRequest struct {
	Query string `json:"query,omitempty"`
	Page  int    `json:"page,omitempty" validate:"omitempty,min=1"`
}

// SourceResponse represents the response for POST /jobs/{id}/source.
type SourceResponse struct {
	JobID   string               `json:"job_id"`
	Page    int                  `json:"page"`
	Results []types.SearchResult `json:"results"`
	Total   int                  `json:"total"`
}

// handleSource runs one page of a sourcing search. Results accumulate in
// the session cache across pages so the client can page through without
// re-fetching earlier hits.
func (s *Server) handleSource(w http.ResponseWriter, r *http.Request) {
	if s.searcher == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Search is not configured")
		return
	}

	job, ok := s.loadJob(w, r)
	if !ok {
		return
	}

	var req SourceRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}

	query := req.Query
	if query == "" {
		if job.SearchString == nil || *job.SearchString == "" {
			s.errorResponse(w, http.StatusBadRequest, "No search string: generate one first or pass query")
			return
		}
		query = *job.SearchString
	}

	results, err := s.searcher.Search(r.Context(), query, req.Page)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Search failed: "+err.Error())
		return
	}

	if req.Page == 1 {
		s.cache.SetSearchResults(job.ID, results)
	} else {
		s.cache.AddToSearchResults(job.ID, results)
	}

	s.jsonResponse(w, http.StatusOK, SourceResponse{
		JobID:   job.ID.String(),
		Page:    req.Page,
		Results: results,
		Total:   len(s.cache.GetSearchResults(job.ID)),
	})
}

// handleSourceResults returns all search hits accumulated for the job.
func (s *Server) handleSourceResults(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.jobID(w, r)
	if !ok {
		return
	}

	results := s.cache.GetSearchResults(jobID)
	if results == nil {
		results = []types.SearchResult{}
	}
	s.jsonResponse(w, http.StatusOK, results)
}

// EnrichRequest represents the request body for POST /enrich.
// Either profile_url or name must be provided.
type EnrichRequest struct {
	ProfileURL string `json:"profile_url,omitempty" validate:"omitempty,url"`
	Name       string `json:"name,omitempty"`
	Company    string `json:"company,omitempty"`
	Location   string `json:"location,omitempty"`
	Title      string `json:"title,omitempty"`
	Industry   string `json:"industry,omitempty"`
}

// handleEnrich resolves contact details for a candidate, by profile URL
// when given and by person search otherwise.
func (s *Server) handleEnrich(w http.ResponseWriter, r *http.Request) {
	if s.enricher == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Contact enrichment is not configured")
		return
	}

	var req EnrichRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	if req.ProfileURL == "" && req.Name == "" {
		s.errorResponse(w, http.StatusBadRequest, "Either profile_url or name is required")
		return
	}

	var contact *enrich.Contact
	var err error
	if req.ProfileURL != "" {
		contact, err = s.enricher.LookupByProfile(r.Context(), req.ProfileURL)
	} else {
		contact, err = s.enricher.SearchPerson(r.Context(), enrich.PersonSearch{
			Name:     req.Name,
			Company:  req.Company,
			Location: req.Location,
			Title:    req.Title,
			Industry: req.Industry,
		})
	}
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Enrichment failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, contact)
}

// ScrapeRequest represents the request body for POST /scrape.
type ScrapeRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// ScrapeResponse represents the response for POST /scrape.
type ScrapeResponse struct {
	URL        string `json:"url"`
	Text       string `json:"text"`
	StatusCode int    `json:"status_code"`
}

// handleScrape fetches a page and returns its extracted text, typically a
// company or careers page whose text feeds a new job.
func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req ScrapeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	opts := scrape.DefaultOptions()
	opts.UseBrowser = s.useBrowser

	result, err := scrape.Page(r.Context(), req.URL, opts)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Scrape failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ScrapeResponse{
		URL:        result.URL,
		Text:       result.Text,
		StatusCode: result.StatusCode,
	})
}
