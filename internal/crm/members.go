package crm

import (
	"context"
	"strings"

	"github.com/hpungsan/attio-mcp/internal/attio"
	"github.com/hpungsan/attio-mcp/internal/errors"
)

// MemberSummary is the projected output shape for one workspace member.
type MemberSummary struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	AccessLevel string `json:"access_level,omitempty"`
}

// GetMemberInput identifies the workspace member to fetch.
type GetMemberInput struct {
	ID string // required workspace_member_id
}

// GetWorkspaceMember fetches one workspace member by id.
// A miss is NOT_FOUND.
func GetWorkspaceMember(ctx context.Context, client Client, input GetMemberInput) (*MemberSummary, error) {
	if input.ID == "" {
		return nil, errors.NewValidation("id", "is required")
	}
	m, err := client.GetWorkspaceMember(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	summary := projectMember(*m)
	return &summary, nil
}

// SearchMemberByEmailInput contains the email to look up.
type SearchMemberByEmailInput struct {
	Email string // required
}

// MembersOutput contains a bounded list of workspace members.
type MembersOutput struct {
	Members []MemberSummary `json:"members"`
	Count   int             `json:"count"`
}

// SearchMemberByEmail finds the workspace member with the given email,
// case-insensitively. At most one result; a miss is an empty result,
// never an error.
func SearchMemberByEmail(ctx context.Context, client Client, input SearchMemberByEmailInput) (*MembersOutput, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, errors.NewValidation("email", "is required")
	}
	members, err := client.ListWorkspaceMembers(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		if strings.EqualFold(m.EmailAddress, email) {
			return &MembersOutput{Members: []MemberSummary{projectMember(m)}, Count: 1}, nil
		}
	}
	return &MembersOutput{Members: []MemberSummary{}}, nil
}

// ListMembersInput contains parameters for the ListMembers operation.
type ListMembersInput struct {
	Contains string // optional case-insensitive substring on name or email
	Limit    int    // default 20, max 100
}

// ListMembers lists workspace members, filtered client-side by an
// optional substring over name and email, then truncated.
func ListMembers(ctx context.Context, client Client, limits Limits, input ListMembersInput) (*MembersOutput, error) {
	limit, err := limits.clamp(input.Limit)
	if err != nil {
		return nil, err
	}
	members, err := client.ListWorkspaceMembers(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(input.Contains))
	out := make([]MemberSummary, 0, limit)
	for _, m := range members {
		if needle != "" && !memberMatches(m, needle) {
			continue
		}
		out = append(out, projectMember(m))
		if len(out) == limit {
			break
		}
	}

	return &MembersOutput{Members: out, Count: len(out)}, nil
}

// memberMatches checks the substring against the member's full name and
// email, all lowered.
func memberMatches(m attio.Member, needle string) bool {
	name := strings.ToLower(strings.TrimSpace(m.FirstName + " " + m.LastName))
	return strings.Contains(name, needle) ||
		strings.Contains(strings.ToLower(m.EmailAddress), needle)
}

func projectMember(m attio.Member) MemberSummary {
	return MemberSummary{
		ID:          m.ID.WorkspaceMemberID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.EmailAddress,
		AvatarURL:   m.AvatarURL,
		AccessLevel: m.AccessLevel,
	}
}
