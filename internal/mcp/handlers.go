package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/hpungsan/attio-mcp/internal/crm"
	"github.com/hpungsan/attio-mcp/internal/errors"
)

// Handlers holds dependencies for MCP tool handlers. Handlers are
// stateless; concurrent invocations share only the CRM client, which is
// safe for concurrent use.
type Handlers struct {
	client crm.Client
	limits crm.Limits
	log    zerolog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(client crm.Client, limits crm.Limits, log zerolog.Logger) *Handlers {
	return &Handlers{client: client, limits: limits, log: log}
}

// reqLog mints a per-invocation request id for log correlation.
func (h *Handlers) reqLog(tool string) zerolog.Logger {
	return h.log.With().
		Str("tool", tool).
		Str("req_id", ulid.Make().String()).
		Logger()
}

// Request types for each tool

// SearchCompaniesRequest represents the arguments for search_companies.
type SearchCompaniesRequest struct {
	Name          string `json:"name,omitempty"`
	Domain        string `json:"domain,omitempty"`
	OwnerID       string `json:"owner_id,omitempty"`
	ReminderStart string `json:"reminder_start,omitempty"`
	ReminderEnd   string `json:"reminder_end,omitempty"`
	Limit         int    `json:"limit,omitempty"`
}

// ListTasksRequest represents the arguments for list_tasks.
type ListTasksRequest struct {
	Assignee      string `json:"assignee,omitempty"`
	DeadlineStart string `json:"deadline_start,omitempty"`
	DeadlineEnd   string `json:"deadline_end,omitempty"`
	Limit         int    `json:"limit,omitempty"`
}

// IDRequest represents the arguments for the by-id tools.
type IDRequest struct {
	ID string `json:"id"`
}

// SearchPeopleRequest represents the arguments for search_people.
type SearchPeopleRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// EmailRequest represents the arguments for search_workspace_member_by_email.
type EmailRequest struct {
	Email string `json:"email"`
}

// ListMembersRequest represents the arguments for list_workspace_members.
type ListMembersRequest struct {
	Substring string `json:"substring,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

// Handler implementations

// HandleSearchCompanies handles the search_companies tool call.
func (h *Handlers) HandleSearchCompanies(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := h.reqLog("search_companies")
	input, err := decode[SearchCompaniesRequest](req)
	if err != nil {
		return errorResult(log, errors.NewValidation("arguments", err.Error())), nil
	}

	result, err := crm.SearchCompanies(ctx, h.client, h.limits, crm.SearchCompaniesInput{
		Name:          input.Name,
		Domain:        input.Domain,
		OwnerID:       input.OwnerID,
		ReminderStart: input.ReminderStart,
		ReminderEnd:   input.ReminderEnd,
		Limit:         input.Limit,
	})
	if err != nil {
		return errorResult(log, err), nil
	}

	log.Debug().Int("count", result.Count).Msg("ok")
	return successResult(result)
}

// HandleListTasks handles the list_tasks tool call.
func (h *Handlers) HandleListTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := h.reqLog("list_tasks")
	input, err := decode[ListTasksRequest](req)
	if err != nil {
		return errorResult(log, errors.NewValidation("arguments", err.Error())), nil
	}

	result, err := crm.ListTasks(ctx, h.client, h.limits, crm.ListTasksInput{
		Assignee:      input.Assignee,
		DeadlineStart: input.DeadlineStart,
		DeadlineEnd:   input.DeadlineEnd,
		Limit:         input.Limit,
	})
	if err != nil {
		return errorResult(log, err), nil
	}

	log.Debug().Int("count", result.Count).Msg("ok")
	return successResult(result)
}

// HandleGetCompanyDetails handles the get_company_details tool call.
func (h *Handlers) HandleGetCompanyDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := h.reqLog("get_company_details")
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(log, errors.NewValidation("arguments", err.Error())), nil
	}

	result, err := crm.GetCompanyDetails(ctx, h.client, crm.DetailsInput{ID: input.ID})
	if err != nil {
		return errorResult(log, err), nil
	}
	return successResult(result)
}

// HandleGetCompanyNotes handles the get_company_notes tool call.
func (h *Handlers) HandleGetCompanyNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := h.reqLog("get_company_notes")
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(log, errors.NewValidation("arguments", err.Error())), nil
	}

	result, err := crm.GetCompanyNotes(ctx, h.client, crm.NotesInput{ID: input.ID})
	if err != nil {
		return errorResult(log, err), nil
	}

	log.Debug().Int("count", result.Count).Msg("ok")
	return successResult(result)
}

// HandleSearchPeople handles the search_people tool call.
func (h *Handlers) HandleSearchPeople(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := h.reqLog("search_people")
	input, err := decode[SearchPeopleRequest](req)
	if err != nil {
		return errorResult(log, errors.NewValidation("arguments", err.Error())), nil
	}

	result, err := crm.SearchPeople(ctx, h.client, h.limits, crm.SearchPeopleInput{
		Name:  input.Name,
		Email: input.Email,
		Limit: input.Limit,
	})
	if err != nil {
		return errorResult(log, err), nil
	}

	log.Debug().Int("count", result.Count).Msg("ok")
	return successResult(result)
}

// HandleGetPersonDetails handles the get_person_details tool call.
func (h *Handlers) HandleGetPersonDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := h.reqLog("get_person_details")
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(log, errors.NewValidation("arguments", err.Error())), nil
	}

	result, err := crm.GetPersonDetails(ctx, h.client, crm.DetailsInput{ID: input.ID})
	if err != nil {
		return errorResult(log, err), nil
	}
	return successResult(result)
}

// HandleGetPersonNotes handles the get_person_notes tool call.
func (h *Handlers) HandleGetPersonNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := h.reqLog("get_person_notes")
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(log, errors.NewValidation("arguments", err.Error())), nil
	}

	result, err := crm.GetPersonNotes(ctx, h.client, crm.NotesInput{ID: input.ID})
	if err != nil {
		return errorResult(log, err), nil
	}

	log.Debug().Int("count", result.Count).Msg("ok")
	return successResult(result)
}

// HandleGetWorkspaceMember handles the get_workspace_member tool call.
func (h *Handlers) HandleGetWorkspaceMember(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := h.reqLog("get_workspace_member")
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(log, errors.NewValidation("arguments", err.Error())), nil
	}

	result, err := crm.GetWorkspaceMember(ctx, h.client, crm.GetMemberInput{ID: input.ID})
	if err != nil {
		return errorResult(log, err), nil
	}
	return successResult(result)
}

// HandleSearchMemberByEmail handles the search_workspace_member_by_email tool call.
func (h *Handlers) HandleSearchMemberByEmail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := h.reqLog("search_workspace_member_by_email")
	input, err := decode[EmailRequest](req)
	if err != nil {
		return errorResult(log, errors.NewValidation("arguments", err.Error())), nil
	}

	result, err := crm.SearchMemberByEmail(ctx, h.client, crm.SearchMemberByEmailInput{Email: input.Email})
	if err != nil {
		return errorResult(log, err), nil
	}

	log.Debug().Int("count", result.Count).Msg("ok")
	return successResult(result)
}

// HandleListMembers handles the list_workspace_members tool call.
func (h *Handlers) HandleListMembers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := h.reqLog("list_workspace_members")
	input, err := decode[ListMembersRequest](req)
	if err != nil {
		return errorResult(log, errors.NewValidation("arguments", err.Error())), nil
	}

	result, err := crm.ListMembers(ctx, h.client, h.limits, crm.ListMembersInput{
		Contains: input.Substring,
		Limit:    input.Limit,
	})
	if err != nil {
		return errorResult(log, err), nil
	}

	log.Debug().Int("count", result.Count).Msg("ok")
	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(log zerolog.Logger, err error) *mcp.CallToolResult {
	var payload map[string]any

	if aErr, ok := err.(*errors.AdapterError); ok {
		log.Warn().Str("code", string(aErr.Code)).Msg(aErr.Message)
		errorObj := map[string]any{
			"code":    aErr.Code,
			"message": aErr.Message,
			"status":  aErr.Status,
		}
		if aErr.Code != errors.ErrInternal && aErr.Details != nil {
			errorObj["details"] = aErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		log.Error().Err(err).Msg("unexpected error")
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
