package crm

import (
	"context"
	"testing"

	"github.com/hpungsan/attio-mcp/internal/attio"
	"github.com/hpungsan/attio-mcp/internal/errors"
)

func TestGetWorkspaceMember(t *testing.T) {
	m := member("m-1", "John", "Doe", "john.doe@example.com")
	client := &fakeClient{member: &m}

	output, err := GetWorkspaceMember(context.Background(), client, GetMemberInput{ID: "m-1"})
	if err != nil {
		t.Fatalf("GetWorkspaceMember failed: %v", err)
	}
	if output.ID != "m-1" || output.FirstName != "John" || output.Email != "john.doe@example.com" {
		t.Errorf("member = %+v", output)
	}
}

func TestGetWorkspaceMember_NotFound(t *testing.T) {
	client := &fakeClient{memberErr: errors.NewNotFound("workspace member", "m-404")}

	_, err := GetWorkspaceMember(context.Background(), client, GetMemberInput{ID: "m-404"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected NOT_FOUND error, got %v", err)
	}
}

func TestSearchMemberByEmail_CaseInsensitive(t *testing.T) {
	client := &fakeClient{members: []attio.Member{
		member("m-1", "John", "Doe", "john.doe@example.com"),
		member("m-2", "Jane", "Smith", "jane.smith@example.com"),
	}}

	output, err := SearchMemberByEmail(context.Background(), client, SearchMemberByEmailInput{
		Email: "JOHN.DOE@EXAMPLE.COM",
	})
	if err != nil {
		t.Fatalf("SearchMemberByEmail failed: %v", err)
	}
	if output.Count != 1 {
		t.Fatalf("Count = %d, want 1", output.Count)
	}
	if output.Members[0].ID != "m-1" {
		t.Errorf("ID = %q, want m-1", output.Members[0].ID)
	}
}

func TestSearchMemberByEmail_MissIsEmptyNotError(t *testing.T) {
	client := &fakeClient{members: []attio.Member{
		member("m-1", "John", "Doe", "john.doe@example.com"),
	}}

	output, err := SearchMemberByEmail(context.Background(), client, SearchMemberByEmailInput{
		Email: "nonexistent@example.com",
	})
	if err != nil {
		t.Fatalf("miss must not be an error, got %v", err)
	}
	if output.Count != 0 || len(output.Members) != 0 {
		t.Errorf("expected empty output, got %+v", output)
	}
}

func TestSearchMemberByEmail_BlankEmail(t *testing.T) {
	client := &fakeClient{}

	_, err := SearchMemberByEmail(context.Background(), client, SearchMemberByEmailInput{Email: "  "})
	if !errors.Is(err, errors.ErrValidation) {
		t.Fatalf("expected VALIDATION error, got %v", err)
	}
	if client.totalCalls() != 0 {
		t.Errorf("client calls = %d, want 0", client.totalCalls())
	}
}

func TestListMembers_SubstringOverNameAndEmail(t *testing.T) {
	client := &fakeClient{members: []attio.Member{
		member("m-1", "Alice", "Example", "alice@example.com"),
		member("m-2", "Bob", "Example", "bob@example.com"),
	}}

	// Matches by name, any case.
	output, err := ListMembers(context.Background(), client, DefaultLimits, ListMembersInput{Contains: "BOB"})
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	if output.Count != 1 || output.Members[0].ID != "m-2" {
		t.Errorf("name match: got %+v, want only m-2", output.Members)
	}

	// Matches by email fragment.
	output, err = ListMembers(context.Background(), client, DefaultLimits, ListMembersInput{Contains: "alice@"})
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	if output.Count != 1 || output.Members[0].ID != "m-1" {
		t.Errorf("email match: got %+v, want only m-1", output.Members)
	}
}

func TestListMembers_LimitTruncates(t *testing.T) {
	client := &fakeClient{members: []attio.Member{
		member("m-1", "Alice", "Example", "alice@example.com"),
		member("m-2", "Bob", "Example", "bob@example.com"),
	}}

	output, err := ListMembers(context.Background(), client, DefaultLimits, ListMembersInput{Limit: 1})
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	if output.Count != 1 || output.Members[0].ID != "m-1" {
		t.Errorf("got %+v, want only m-1", output.Members)
	}
}

func TestListMembers_NegativeLimit(t *testing.T) {
	client := &fakeClient{}

	_, err := ListMembers(context.Background(), client, DefaultLimits, ListMembersInput{Limit: -1})
	if !errors.Is(err, errors.ErrValidation) {
		t.Fatalf("expected VALIDATION error, got %v", err)
	}
	if client.totalCalls() != 0 {
		t.Errorf("client calls = %d, want 0", client.totalCalls())
	}
}
