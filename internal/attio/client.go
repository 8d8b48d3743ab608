// Package attio is the HTTP client for the Attio v2 API. It owns the
// authenticated session and returns decoded records; all business logic
// (validation, client-side filtering, projection) lives in internal/crm.
package attio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/hpungsan/attio-mcp/internal/config"
	"github.com/hpungsan/attio-mcp/internal/errors"
)

// Attio object slugs for record queries.
const (
	ObjectCompanies = "companies"
	ObjectPeople    = "people"
)

// maxErrorBodyBytes caps how much of an upstream error body is surfaced.
const maxErrorBodyBytes = 512

// Client performs authenticated requests against the Attio API.
// It is safe for concurrent use; connection reuse is owned by the
// embedded http.Client. No retries are performed at this layer.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a Client from the given configuration.
// The API key is held for the Authorization header and never logged.
func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.AttioBaseURL,
		apiKey:  cfg.AttioAPIKey,
		http: &http.Client{
			Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second,
		},
		log: log.With().Str("component", "attio").Logger(),
	}
}

// statusError carries a non-2xx upstream response through do to the
// per-operation 404 handling.
type statusError struct {
	Status int
	Body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("attio returned status %d", e.Status)
}

// do issues one request and decodes a 2xx JSON response into out.
// Connection and timeout failures surface as *statusError-free transport
// errors; non-2xx responses surface as *statusError for the caller to map.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.NewInternal(fmt.Errorf("marshal request body: %w", err))
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return errors.NewInternal(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return errors.NewTransport(err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("attio request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &statusError{Status: resp.StatusCode, Body: string(b)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewInternal(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// upstream converts a residual statusError into the adapter taxonomy.
// Callers handle their documented 404 cases before calling this.
func upstream(err error) error {
	if se, ok := err.(*statusError); ok {
		return errors.NewUpstream(se.Status, se.Body)
	}
	return err
}

// QueryRecords issues a single-page search for the given object. Filters
// are combined under $and; the API's own page size bounds the result.
func (c *Client) QueryRecords(ctx context.Context, object string, filters []Filter, limit int) ([]Record, error) {
	var out struct {
		Data []Record `json:"data"`
	}
	payload := buildQueryPayload(filters, limit)
	path := fmt.Sprintf("/objects/%s/records/query", object)
	if err := c.do(ctx, http.MethodPost, path, nil, payload, &out); err != nil {
		return nil, upstream(err)
	}
	c.log.Debug().Str("object", object).Int("count", len(out.Data)).Msg("query records")
	return out.Data, nil
}

// GetRecord fetches one record by id. A 404 maps to NOT_FOUND.
func (c *Client) GetRecord(ctx context.Context, object, id string) (Record, error) {
	var out struct {
		Data Record `json:"data"`
	}
	path := fmt.Sprintf("/objects/%s/records/%s", object, url.PathEscape(id))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		if se, ok := err.(*statusError); ok && se.Status == http.StatusNotFound {
			return nil, errors.NewNotFound(singular(object), id)
		}
		return nil, upstream(err)
	}
	return out.Data, nil
}

// ListNotes fetches the notes attached to a company or person.
// A 404 for the parent means no notes, not an error.
func (c *Client) ListNotes(ctx context.Context, parentObject, parentID string) ([]Note, error) {
	var out struct {
		Data []Note `json:"data"`
	}
	query := url.Values{
		"parent_object":    {parentObject},
		"parent_record_id": {parentID},
	}
	if err := c.do(ctx, http.MethodGet, "/notes", query, nil, &out); err != nil {
		if se, ok := err.(*statusError); ok && se.Status == http.StatusNotFound {
			return []Note{}, nil
		}
		return nil, upstream(err)
	}
	return out.Data, nil
}

// ListTasks fetches one page of tasks, optionally filtered by assignee.
// Deadline filtering is not supported by the endpoint and happens in the
// caller.
func (c *Client) ListTasks(ctx context.Context, assignee string, limit, offset int) ([]Task, error) {
	var out struct {
		Data []Task `json:"data"`
	}
	query := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}
	if assignee != "" {
		query.Set("assignee", assignee)
	}
	if err := c.do(ctx, http.MethodGet, "/tasks", query, nil, &out); err != nil {
		return nil, upstream(err)
	}
	return out.Data, nil
}

// ListWorkspaceMembers fetches all workspace members.
func (c *Client) ListWorkspaceMembers(ctx context.Context) ([]Member, error) {
	var out struct {
		Data []Member `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/workspace_members", nil, nil, &out); err != nil {
		return nil, upstream(err)
	}
	return out.Data, nil
}

// GetWorkspaceMember fetches one workspace member by id.
// A 404 maps to NOT_FOUND.
func (c *Client) GetWorkspaceMember(ctx context.Context, id string) (*Member, error) {
	var out struct {
		Data Member `json:"data"`
	}
	path := "/workspace_members/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		if se, ok := err.(*statusError); ok && se.Status == http.StatusNotFound {
			return nil, errors.NewNotFound("workspace member", id)
		}
		return nil, upstream(err)
	}
	return &out.Data, nil
}

// singular maps an object slug to the resource name used in errors.
func singular(object string) string {
	switch object {
	case ObjectCompanies:
		return "company"
	case ObjectPeople:
		return "person"
	default:
		return object
	}
}
