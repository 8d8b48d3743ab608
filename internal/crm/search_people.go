package crm

import (
	"context"

	"github.com/hpungsan/attio-mcp/internal/attio"
)

// SearchPeopleInput contains parameters for the SearchPeople operation.
// All fields are optional.
type SearchPeopleInput struct {
	Name  string // substring match on person name
	Email string // exact email match
	Limit int    // default 20, max 100
}

// PersonSummary is the projected output shape for one person.
type PersonSummary struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Emails    []string `json:"emails"`
	CompanyID string   `json:"company_id,omitempty"`
}

// SearchPeopleOutput contains the bounded result list.
type SearchPeopleOutput struct {
	People []PersonSummary `json:"people"`
	Count  int             `json:"count"`
}

// SearchPeople searches people by name substring and/or exact email.
// Both filters are expressed natively; no client-side filtering is needed.
func SearchPeople(ctx context.Context, client Client, limits Limits, input SearchPeopleInput) (*SearchPeopleOutput, error) {
	limit, err := limits.clamp(input.Limit)
	if err != nil {
		return nil, err
	}

	var filters []attio.Filter
	if input.Name != "" {
		filters = append(filters, attio.NameContains(input.Name))
	}
	if input.Email != "" {
		filters = append(filters, attio.EmailEquals(input.Email))
	}

	records, err := client.QueryRecords(ctx, attio.ObjectPeople, filters, limit)
	if err != nil {
		return nil, err
	}

	people := make([]PersonSummary, 0, len(records))
	for _, r := range records {
		people = append(people, projectPerson(r))
		if len(people) == limit {
			break
		}
	}

	return &SearchPeopleOutput{People: people, Count: len(people)}, nil
}

func projectPerson(r attio.Record) PersonSummary {
	return PersonSummary{
		ID:        r.ID(),
		Name:      r.Name(),
		Emails:    r.Emails(),
		CompanyID: r.CompanyID(),
	}
}
