package crm

import (
	"context"

	"github.com/hpungsan/attio-mcp/internal/attio"
	"github.com/hpungsan/attio-mcp/internal/errors"
)

// DetailsInput identifies the record to fetch.
type DetailsInput struct {
	ID string // required record id
}

// CompanyDetails is the full projected shape for one company, with the
// raw attribute map passed through for fields the projection omits.
type CompanyDetails struct {
	CompanySummary
	WebURL string         `json:"web_url,omitempty"`
	Values map[string]any `json:"values,omitempty"`
}

// PersonDetails is the full projected shape for one person.
type PersonDetails struct {
	PersonSummary
	WebURL string         `json:"web_url,omitempty"`
	Values map[string]any `json:"values,omitempty"`
}

// GetCompanyDetails fetches one company by id. A miss is NOT_FOUND,
// distinct from an empty search result.
func GetCompanyDetails(ctx context.Context, client Client, input DetailsInput) (*CompanyDetails, error) {
	if input.ID == "" {
		return nil, errors.NewValidation("id", "is required")
	}
	r, err := client.GetRecord(ctx, attio.ObjectCompanies, input.ID)
	if err != nil {
		return nil, err
	}
	return &CompanyDetails{
		CompanySummary: projectCompany(r),
		WebURL:         r.WebURL(),
		Values:         r.Values(),
	}, nil
}

// GetPersonDetails fetches one person by id. A miss is NOT_FOUND.
func GetPersonDetails(ctx context.Context, client Client, input DetailsInput) (*PersonDetails, error) {
	if input.ID == "" {
		return nil, errors.NewValidation("id", "is required")
	}
	r, err := client.GetRecord(ctx, attio.ObjectPeople, input.ID)
	if err != nil {
		return nil, err
	}
	return &PersonDetails{
		PersonSummary: projectPerson(r),
		WebURL:        r.WebURL(),
		Values:        r.Values(),
	}, nil
}
