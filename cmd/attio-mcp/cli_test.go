package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/hpungsan/attio-mcp/internal/attio"
	"github.com/hpungsan/attio-mcp/internal/config"
	"github.com/hpungsan/attio-mcp/internal/errors"
)

// stubClient is a canned-response crm.Client for CLI tests.
type stubClient struct {
	records   []attio.Record
	record    attio.Record
	recordErr error
	notes     []attio.Note
	tasks     []attio.Task
	members   []attio.Member
	member    *attio.Member
	memberErr error
}

func (s *stubClient) QueryRecords(ctx context.Context, object string, filters []attio.Filter, limit int) ([]attio.Record, error) {
	return s.records, nil
}

func (s *stubClient) GetRecord(ctx context.Context, object, id string) (attio.Record, error) {
	return s.record, s.recordErr
}

func (s *stubClient) ListNotes(ctx context.Context, parentObject, parentID string) ([]attio.Note, error) {
	return s.notes, nil
}

func (s *stubClient) ListTasks(ctx context.Context, assignee string, limit, offset int) ([]attio.Task, error) {
	return s.tasks, nil
}

func (s *stubClient) ListWorkspaceMembers(ctx context.Context) ([]attio.Member, error) {
	return s.members, nil
}

func (s *stubClient) GetWorkspaceMember(ctx context.Context, id string) (*attio.Member, error) {
	return s.member, s.memberErr
}

// runApp runs the CLI app with the given args and returns captured stdout.
func runApp(t *testing.T, client *stubClient, args ...string) (string, error) {
	t.Helper()

	app := newCLIApp(client, config.DefaultConfig())

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := app.Run(append([]string{"attio-mcp"}, args...))

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	return buf.String(), err
}

func TestIsCLIMode(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{
			name: "no args runs the server",
			args: []string{"attio-mcp"},
			want: false,
		},
		{
			name: "known subcommand",
			args: []string{"attio-mcp", "search-companies"},
			want: true,
		},
		{
			name: "help flag",
			args: []string{"attio-mcp", "--help"},
			want: true,
		},
		{
			name: "version flag",
			args: []string{"attio-mcp", "-v"},
			want: true,
		},
		{
			name: "unknown arg is not CLI mode",
			args: []string{"attio-mcp", "bogus"},
			want: false,
		},
	}

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			if got := isCLIMode(); got != tt.want {
				t.Errorf("isCLIMode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsHelpOrVersion(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	for _, arg := range []string{"--help", "-h", "--version", "-v", "help"} {
		os.Args = []string{"attio-mcp", arg}
		if !isHelpOrVersion() {
			t.Errorf("isHelpOrVersion() = false for %q", arg)
		}
	}

	os.Args = []string{"attio-mcp", "search-companies"}
	if isHelpOrVersion() {
		t.Error("isHelpOrVersion() = true for a subcommand")
	}
}

func TestSearchCompaniesCommand(t *testing.T) {
	client := &stubClient{records: []attio.Record{{
		"id": map[string]any{"record_id": "c-1"},
		"values": map[string]any{
			"name":    []any{map[string]any{"value": "OpenAI"}},
			"domains": []any{map[string]any{"domain": "openai.com"}},
		},
	}}}

	out, err := runApp(t, client, "search-companies", "--name=OpenAI")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	var output struct {
		Companies []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"companies"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if output.Count != 1 || output.Companies[0].Name != "OpenAI" {
		t.Errorf("output = %+v", output)
	}
}

func TestCompanyCommand_NotFound(t *testing.T) {
	client := &stubClient{recordErr: errors.NewNotFound("company", "missing")}

	_, err := runApp(t, client, "company", "missing")
	if err == nil {
		t.Fatal("expected exit error for missing record")
	}
	if !strings.Contains(err.Error(), "[NOT_FOUND]") {
		t.Errorf("error = %q, want [NOT_FOUND] prefix", err.Error())
	}
}

func TestCompanyCommand_MissingArg(t *testing.T) {
	_, err := runApp(t, &stubClient{}, "company")
	if err == nil {
		t.Fatal("expected exit error for missing id argument")
	}
	if !strings.Contains(err.Error(), "[VALIDATION]") {
		t.Errorf("error = %q, want [VALIDATION] prefix", err.Error())
	}
}

func TestMemberByEmailCommand_MissIsEmpty(t *testing.T) {
	client := &stubClient{members: []attio.Member{{
		ID:           attio.MemberID{WorkspaceMemberID: "m-1"},
		EmailAddress: "john@example.com",
	}}}

	out, err := runApp(t, client, "member-by-email", "nobody@example.com")
	if err != nil {
		t.Fatalf("a miss must not be a command error: %v", err)
	}

	var output struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if output.Count != 0 {
		t.Errorf("count = %d, want 0", output.Count)
	}
}

func TestMembersCommand_ContainsFilter(t *testing.T) {
	client := &stubClient{members: []attio.Member{
		{ID: attio.MemberID{WorkspaceMemberID: "m-1"}, FirstName: "Alice", EmailAddress: "alice@example.com"},
		{ID: attio.MemberID{WorkspaceMemberID: "m-2"}, FirstName: "Bob", EmailAddress: "bob@example.com"},
	}}

	out, err := runApp(t, client, "members", "--contains=bob")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	var output struct {
		Members []struct {
			ID string `json:"id"`
		} `json:"members"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if output.Count != 1 || output.Members[0].ID != "m-2" {
		t.Errorf("output = %+v, want only m-2", output)
	}
}

func TestListTasksCommand(t *testing.T) {
	client := &stubClient{tasks: []attio.Task{{
		ID:               attio.TaskID{TaskID: "t-1"},
		ContentPlaintext: "Call back",
		DeadlineAt:       "2024-02-10T10:00:00Z",
	}}}

	out, err := runApp(t, client, "list-tasks", "--assignee=m-1")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	var output struct {
		Tasks []struct {
			ID       string `json:"id"`
			Deadline string `json:"deadline"`
		} `json:"tasks"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if output.Count != 1 || output.Tasks[0].Deadline != "2024-02-10" {
		t.Errorf("output = %+v", output)
	}
}
