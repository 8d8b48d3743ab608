package crm

import (
	"context"

	"github.com/hpungsan/attio-mcp/internal/attio"
)

// SearchCompaniesInput contains parameters for the SearchCompanies operation.
// All fields are optional.
type SearchCompaniesInput struct {
	Name          string // substring match on company name
	Domain        string // exact domain match
	OwnerID       string // workspace member id, or an email to resolve
	ReminderStart string // inclusive YYYY-MM-DD lower bound on reminder
	ReminderEnd   string // inclusive YYYY-MM-DD upper bound on reminder
	Limit         int    // default 20, max 100
}

// CompanySummary is the projected output shape for one company.
type CompanySummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Domains     []string `json:"domains"`
	OwnerID     string   `json:"owner_id,omitempty"`
	Reminder    string   `json:"reminder,omitempty"`
	Description string   `json:"description,omitempty"`
}

// SearchCompaniesOutput contains the bounded result list.
type SearchCompaniesOutput struct {
	Companies []CompanySummary `json:"companies"`
	Count     int              `json:"count"`
}

// SearchCompanies searches companies by name, domain, and owner, then
// applies the reminder date window client-side (the records query cannot
// express it). An owner email that resolves to no workspace member yields
// an empty result without issuing the company query.
func SearchCompanies(ctx context.Context, client Client, limits Limits, input SearchCompaniesInput) (*SearchCompaniesOutput, error) {
	limit, err := limits.clamp(input.Limit)
	if err != nil {
		return nil, err
	}
	window, err := newDateWindow("reminder_start", input.ReminderStart, "reminder_end", input.ReminderEnd)
	if err != nil {
		return nil, err
	}

	var filters []attio.Filter
	if input.Name != "" {
		filters = append(filters, attio.NameContains(input.Name))
	}
	if input.Domain != "" {
		filters = append(filters, attio.DomainEquals(input.Domain))
	}
	if input.OwnerID != "" {
		ownerID, ok, err := resolveMemberID(ctx, client, input.OwnerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &SearchCompaniesOutput{Companies: []CompanySummary{}}, nil
		}
		filters = append(filters, attio.OwnerIs(ownerID))
	}

	// Over-fetch when a window is active: the date filter runs after the
	// query, so a limit-sized page could otherwise come up short.
	fetchLimit := limit
	if window.active() {
		fetchLimit = limits.Max
	}

	records, err := client.QueryRecords(ctx, attio.ObjectCompanies, filters, fetchLimit)
	if err != nil {
		return nil, err
	}

	companies := make([]CompanySummary, 0, limit)
	for _, r := range records {
		if window.active() && !window.containsDate(r.ReminderDate()) {
			continue
		}
		companies = append(companies, projectCompany(r))
		if len(companies) == limit {
			break
		}
	}

	return &SearchCompaniesOutput{Companies: companies, Count: len(companies)}, nil
}

func projectCompany(r attio.Record) CompanySummary {
	return CompanySummary{
		ID:          r.ID(),
		Name:        r.Name(),
		Domains:     r.Domains(),
		OwnerID:     r.OwnerID(),
		Reminder:    r.ReminderDate(),
		Description: r.Description(),
	}
}
