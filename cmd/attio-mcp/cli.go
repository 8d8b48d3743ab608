package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/attio-mcp/internal/config"
	"github.com/hpungsan/attio-mcp/internal/crm"
	"github.com/hpungsan/attio-mcp/internal/errors"
)

// newCLIApp creates the CLI application with all commands. Each command
// runs the same operation the matching MCP tool runs, against the live
// API, and prints JSON.
func newCLIApp(client crm.Client, cfg *config.Config) *cli.App {
	limits := crm.Limits{Default: cfg.DefaultLimit, Max: cfg.MaxLimit}
	app := &cli.App{
		Name:    "attio-mcp",
		Usage:   "Attio CRM tools over MCP",
		Version: Version,
		Commands: []*cli.Command{
			searchCompaniesCmd(client, limits),
			listTasksCmd(client, limits),
			companyCmd(client),
			companyNotesCmd(client),
			searchPeopleCmd(client, limits),
			personCmd(client),
			personNotesCmd(client),
			memberCmd(client),
			memberByEmailCmd(client),
			membersCmd(client, limits),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// searchCompaniesCmd creates the search-companies command.
func searchCompaniesCmd(client crm.Client, limits crm.Limits) *cli.Command {
	return &cli.Command{
		Name:  "search-companies",
		Usage: "Search companies by name, domain, owner, and reminder window",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Company name substring"},
			&cli.StringFlag{Name: "domain", Aliases: []string{"d"}, Usage: "Exact domain, e.g. openai.com"},
			&cli.StringFlag{Name: "owner", Usage: "Owner workspace member id or email"},
			&cli.StringFlag{Name: "reminder-start", Usage: "Inclusive reminder lower bound (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "reminder-end", Usage: "Inclusive reminder upper bound (YYYY-MM-DD)"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum results"},
		},
		Action: func(c *cli.Context) error {
			output, err := crm.SearchCompanies(c.Context, client, limits, crm.SearchCompaniesInput{
				Name:          c.String("name"),
				Domain:        c.String("domain"),
				OwnerID:       c.String("owner"),
				ReminderStart: c.String("reminder-start"),
				ReminderEnd:   c.String("reminder-end"),
				Limit:         c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// listTasksCmd creates the list-tasks command.
func listTasksCmd(client crm.Client, limits crm.Limits) *cli.Command {
	return &cli.Command{
		Name:  "list-tasks",
		Usage: "List tasks by assignee and deadline window",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "assignee", Aliases: []string{"a"}, Usage: "Assignee workspace member id or email"},
			&cli.StringFlag{Name: "deadline-start", Usage: "Inclusive deadline lower bound (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "deadline-end", Usage: "Inclusive deadline upper bound (YYYY-MM-DD)"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum results"},
		},
		Action: func(c *cli.Context) error {
			output, err := crm.ListTasks(c.Context, client, limits, crm.ListTasksInput{
				Assignee:      c.String("assignee"),
				DeadlineStart: c.String("deadline-start"),
				DeadlineEnd:   c.String("deadline-end"),
				Limit:         c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// companyCmd creates the company command.
func companyCmd(client crm.Client) *cli.Command {
	return &cli.Command{
		Name:      "company",
		Usage:     "Get one company by record id",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := crm.GetCompanyDetails(c.Context, client, crm.DetailsInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// companyNotesCmd creates the company-notes command.
func companyNotesCmd(client crm.Client) *cli.Command {
	return &cli.Command{
		Name:      "company-notes",
		Usage:     "Get the notes attached to a company, newest first",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := crm.GetCompanyNotes(c.Context, client, crm.NotesInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// searchPeopleCmd creates the search-people command.
func searchPeopleCmd(client crm.Client, limits crm.Limits) *cli.Command {
	return &cli.Command{
		Name:  "search-people",
		Usage: "Search people by name substring and/or exact email",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Person name substring"},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Exact email address"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum results"},
		},
		Action: func(c *cli.Context) error {
			output, err := crm.SearchPeople(c.Context, client, limits, crm.SearchPeopleInput{
				Name:  c.String("name"),
				Email: c.String("email"),
				Limit: c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// personCmd creates the person command.
func personCmd(client crm.Client) *cli.Command {
	return &cli.Command{
		Name:      "person",
		Usage:     "Get one person by record id",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := crm.GetPersonDetails(c.Context, client, crm.DetailsInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// personNotesCmd creates the person-notes command.
func personNotesCmd(client crm.Client) *cli.Command {
	return &cli.Command{
		Name:      "person-notes",
		Usage:     "Get the notes attached to a person, newest first",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := crm.GetPersonNotes(c.Context, client, crm.NotesInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// memberCmd creates the member command.
func memberCmd(client crm.Client) *cli.Command {
	return &cli.Command{
		Name:      "member",
		Usage:     "Get one workspace member by id",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := crm.GetWorkspaceMember(c.Context, client, crm.GetMemberInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// memberByEmailCmd creates the member-by-email command.
func memberByEmailCmd(client crm.Client) *cli.Command {
	return &cli.Command{
		Name:      "member-by-email",
		Usage:     "Find the workspace member with the given email",
		ArgsUsage: "<email>",
		Action: func(c *cli.Context) error {
			output, err := crm.SearchMemberByEmail(c.Context, client, crm.SearchMemberByEmailInput{Email: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// membersCmd creates the members command.
func membersCmd(client crm.Client, limits crm.Limits) *cli.Command {
	return &cli.Command{
		Name:  "members",
		Usage: "List workspace members",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "contains", Aliases: []string{"c"}, Usage: "Substring to match against names and emails"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum results"},
		},
		Action: func(c *cli.Context) error {
			output, err := crm.ListMembers(c.Context, client, limits, crm.ListMembersInput{
				Contains: c.String("contains"),
				Limit:    c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if aErr, ok := err.(*errors.AdapterError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", aErr.Code, aErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
