package attio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hpungsan/attio-mcp/internal/config"
	"github.com/hpungsan/attio-mcp/internal/errors"
)

// newTestClient points a Client at the given test server.
func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.AttioAPIKey = "test-key"
	cfg.AttioBaseURL = srv.URL
	return NewClient(cfg, zerolog.Nop())
}

func TestQueryRecords_PayloadAndAuth(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{
			{"id": map[string]any{"record_id": "c-1"}},
		}})
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	records, err := client.QueryRecords(context.Background(), ObjectCompanies,
		[]Filter{NameContains("OpenAI")}, 10)
	if err != nil {
		t.Fatalf("QueryRecords failed: %v", err)
	}

	if gotPath != "/objects/companies/records/query" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want bearer key", gotAuth)
	}
	if gotPayload["limit"] != float64(10) {
		t.Errorf("limit = %v, want 10", gotPayload["limit"])
	}
	filter, _ := gotPayload["filter"].(map[string]any)
	name, _ := filter["name"].(map[string]any)
	if name["$contains"] != "OpenAI" {
		t.Errorf("filter = %v, want name $contains OpenAI", gotPayload["filter"])
	}

	if len(records) != 1 || records[0].ID() != "c-1" {
		t.Errorf("records = %v", records)
	}
}

func TestQueryRecords_MultipleFiltersJoinedWithAnd(t *testing.T) {
	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{}})
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	_, err := client.QueryRecords(context.Background(), ObjectCompanies,
		[]Filter{NameContains("Microsoft"), DomainEquals("microsoft.com")}, 5)
	if err != nil {
		t.Fatalf("QueryRecords failed: %v", err)
	}

	filter, _ := gotPayload["filter"].(map[string]any)
	and, ok := filter["$and"].([]any)
	if !ok || len(and) != 2 {
		t.Fatalf("filter = %v, want $and of 2", gotPayload["filter"])
	}
}

func TestGetRecord_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	_, err := client.GetRecord(context.Background(), ObjectCompanies, "does-not-exist")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestGetRecord_UnwrapsData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/objects/people/records/p-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{
			"id":     map[string]any{"record_id": "p-1"},
			"values": map[string]any{"name": []any{map[string]any{"value": "John"}}},
		}})
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	record, err := client.GetRecord(context.Background(), ObjectPeople, "p-1")
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if record.ID() != "p-1" || record.Name() != "John" {
		t.Errorf("record = %v", record)
	}
}

func TestUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	_, err := client.QueryRecords(context.Background(), ObjectCompanies, nil, 10)
	if !errors.Is(err, errors.ErrUpstream) {
		t.Fatalf("expected UPSTREAM, got %v", err)
	}
	aErr := err.(*errors.AdapterError)
	if aErr.Details["upstream_status"] != http.StatusTooManyRequests {
		t.Errorf("upstream_status = %v, want 429", aErr.Details["upstream_status"])
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	client := newTestClient(t, srv)
	_, err := client.ListWorkspaceMembers(context.Background())
	if !errors.Is(err, errors.ErrTransport) {
		t.Fatalf("expected TRANSPORT, got %v", err)
	}
}

func TestListNotes_ParamsAnd404AsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/notes" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("parent_object") != "companies" || q.Get("parent_record_id") != "c-1" {
			t.Errorf("query = %v", q)
		}
		http.Error(w, "Not Found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	notes, err := client.ListNotes(context.Background(), ObjectCompanies, "c-1")
	if err != nil {
		t.Fatalf("404 on notes should be empty, got error: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("notes = %v, want empty", notes)
	}
}

func TestListTasks_Params(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("assignee") != "m-1" || q.Get("limit") != "500" || q.Get("offset") != "0" {
			t.Errorf("query = %v", q)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{
			{
				"id":                map[string]any{"task_id": "t-1"},
				"content_plaintext": "Call back",
				"deadline_at":       "2024-02-10T10:00:00Z",
				"is_completed":      false,
				"assignees": []map[string]any{
					{"referenced_actor_type": "workspace-member", "referenced_actor_id": "m-1"},
				},
			},
		}})
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	tasks, err := client.ListTasks(context.Background(), "m-1", 500, 0)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID.TaskID != "t-1" || tasks[0].AssigneeID() != "m-1" {
		t.Errorf("tasks = %+v", tasks)
	}
}

func TestGetWorkspaceMember_NullFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/workspace_members/m-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":{
			"id":{"workspace_id":"ws-1","workspace_member_id":"m-1"},
			"first_name":"Alex","last_name":null,
			"email_address":"alex@example.com",
			"avatar_url":null,"access_level":"member"}}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	m, err := client.GetWorkspaceMember(context.Background(), "m-1")
	if err != nil {
		t.Fatalf("GetWorkspaceMember failed: %v", err)
	}
	if m.FirstName != "Alex" || m.LastName != "" || m.AvatarURL != "" {
		t.Errorf("member = %+v, null fields should decode to empty", m)
	}
}

func TestBuildQueryPayload(t *testing.T) {
	// Nil filters are dropped; one filter is inlined.
	payload := buildQueryPayload([]Filter{nil, NameContains("Acme"), nil}, 15)
	if payload["limit"] != 15 {
		t.Errorf("limit = %v, want 15", payload["limit"])
	}
	if _, ok := payload["filter"].(Filter); !ok {
		t.Errorf("single filter should be inlined, got %T", payload["filter"])
	}

	// No filters means no filter key at all.
	payload = buildQueryPayload(nil, 10)
	if _, ok := payload["filter"]; ok {
		t.Error("empty filter list should omit the filter key")
	}
}
