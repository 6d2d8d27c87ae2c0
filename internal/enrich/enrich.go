// Package enrich wraps the people-data enrichment API: contact lookup by
// LinkedIn profile URL or by structured person search.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Error represents a failure talking to the enrichment API.
type Error struct {
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("enrich %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("enrich %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Contact holds the contact fields returned by the enrichment provider.
// HasContactInfo is derived locally, not returned by the API.
type Contact struct {
	WorkEmail      string   `json:"work_email"`
	PersonalEmails []string `json:"personal_emails"`
	MobilePhone    string   `json:"mobile_phone"`
	HasContactInfo bool     `json:"has_contact_info"`
}

// PersonSearch are the structured parameters for a person lookup.
type PersonSearch struct {
	Name     string `json:"name"`
	Company  string `json:"company,omitempty"`
	Location string `json:"location,omitempty"`
	Title    string `json:"title,omitempty"`
	Industry string `json:"industry,omitempty"`
}

// Client calls the enrichment API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an enrichment client for the given API base URL.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("enrichment base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid enrichment base URL: %w", err)
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}, nil
}

// LookupByProfile fetches contact info for a LinkedIn profile URL.
func (c *Client) LookupByProfile(ctx context.Context, profileURL string) (*Contact, error) {
	if profileURL == "" {
		return nil, &Error{Op: "lookup", Message: "profile URL is required"}
	}
	return c.post(ctx, "lookup", "/v1/person/lookup", map[string]string{
		"profile_url": profileURL,
	})
}

// SearchPerson fetches contact info for structured person parameters.
func (c *Client) SearchPerson(ctx context.Context, search PersonSearch) (*Contact, error) {
	if search.Name == "" {
		return nil, &Error{Op: "search", Message: "name is required"}
	}
	return c.post(ctx, "search", "/v1/person/search", search)
}

func (c *Client) post(ctx context.Context, op, path string, body any) (*Contact, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &Error{Op: op, Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{Op: op, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Provider returns 404 when no contact information exists
		return &Contact{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Op: op, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: op, Message: "failed to read response", Cause: err}
	}

	var contact Contact
	if err := json.Unmarshal(data, &contact); err != nil {
		return nil, &Error{Op: op, Message: "failed to parse response", Cause: err}
	}

	contact.HasContactInfo = contact.WorkEmail != "" ||
		len(contact.PersonalEmails) > 0 ||
		contact.MobilePhone != ""
	return &contact, nil
}
