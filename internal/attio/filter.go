package attio

// Filter is one API-native filter clause in Attio query syntax.
// Clauses are combined under "$and" by the query payload builder.
type Filter map[string]any

// NameContains matches records whose name contains the given substring
// (case-insensitive on the Attio side).
func NameContains(name string) Filter {
	return Filter{"name": map[string]any{"$contains": name}}
}

// DomainEquals matches company records with the given domain.
func DomainEquals(domain string) Filter {
	return Filter{"domains": map[string]any{"domain": map[string]any{"$eq": domain}}}
}

// EmailEquals matches person records with the given email address.
func EmailEquals(email string) Filter {
	return Filter{"email_addresses": map[string]any{"email_address": map[string]any{"$eq": email}}}
}

// OwnerIs matches records owned by the given workspace member.
func OwnerIs(memberID string) Filter {
	return Filter{"owner": map[string]any{
		"referenced_actor_type": "workspace-member",
		"referenced_actor_id":   memberID,
	}}
}

// buildQueryPayload assembles the body for a records query. Nil filters are
// skipped; a single filter is inlined, multiple filters are joined with $and.
func buildQueryPayload(filters []Filter, limit int) map[string]any {
	active := make([]Filter, 0, len(filters))
	for _, f := range filters {
		if f != nil {
			active = append(active, f)
		}
	}

	payload := map[string]any{"limit": limit}
	switch len(active) {
	case 0:
	case 1:
		payload["filter"] = active[0]
	default:
		payload["filter"] = map[string]any{"$and": active}
	}
	return payload
}
