package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Tool names and parameter names are external contract:
// calling agents bind to them, so they must never be renamed silently.

var searchCompaniesToolDef = mcp.NewTool("search_companies",
	mcp.WithDescription("Search companies in the CRM by name, domain, owner, and reminder date window. Returns compact company summaries."),
	mcp.WithString("name", mcp.Description("Company name substring to search for (case-insensitive)")),
	mcp.WithString("domain", mcp.Description("Domain for disambiguation, e.g. \"openai.com\"")),
	mcp.WithString("owner_id", mcp.Description("Workspace member id of the company owner, or their email address")),
	mcp.WithString("reminder_start", mcp.Description("Inclusive lower bound on the reminder date (YYYY-MM-DD)")),
	mcp.WithString("reminder_end", mcp.Description("Inclusive upper bound on the reminder date (YYYY-MM-DD)")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 20, max 100)")),
)

var listTasksToolDef = mcp.NewTool("list_tasks",
	mcp.WithDescription("List CRM tasks, optionally filtered by assignee and deadline date window."),
	mcp.WithString("assignee", mcp.Description("Workspace member id of the assignee, or their email address")),
	mcp.WithString("deadline_start", mcp.Description("Inclusive lower bound on the deadline (YYYY-MM-DD)")),
	mcp.WithString("deadline_end", mcp.Description("Inclusive upper bound on the deadline (YYYY-MM-DD)")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 20, max 100)")),
)

var getCompanyDetailsToolDef = mcp.NewTool("get_company_details",
	mcp.WithDescription("Get the full attribute set of one company by record id."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Company record id (from search results or a known id)")),
)

var getCompanyNotesToolDef = mcp.NewTool("get_company_notes",
	mcp.WithDescription("Get the notes attached to a company, newest first."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Company record id")),
)

var searchPeopleToolDef = mcp.NewTool("search_people",
	mcp.WithDescription("Search people in the CRM by name substring and/or exact email."),
	mcp.WithString("name", mcp.Description("Person name substring to search for (case-insensitive)")),
	mcp.WithString("email", mcp.Description("Email address for disambiguation, e.g. \"john@example.com\"")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 20, max 100)")),
)

var getPersonDetailsToolDef = mcp.NewTool("get_person_details",
	mcp.WithDescription("Get the full attribute set of one person by record id."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Person record id (from search results or a known id)")),
)

var getPersonNotesToolDef = mcp.NewTool("get_person_notes",
	mcp.WithDescription("Get the notes attached to a person, newest first."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Person record id")),
)

var getWorkspaceMemberToolDef = mcp.NewTool("get_workspace_member",
	mcp.WithDescription("Get one workspace member by id."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workspace member id (found in owner and assignee fields)")),
)

var searchMemberByEmailToolDef = mcp.NewTool("search_workspace_member_by_email",
	mcp.WithDescription("Find the workspace member with the given email address (case-insensitive exact match). Empty result when nobody matches."),
	mcp.WithString("email", mcp.Required(), mcp.Description("Email address to look up")),
)

var listWorkspaceMembersToolDef = mcp.NewTool("list_workspace_members",
	mcp.WithDescription("List workspace members, optionally filtered by a substring over name and email."),
	mcp.WithString("substring", mcp.Description("Case-insensitive substring to match against member names and emails")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 20, max 100)")),
)
