package attio

// Record is a raw company or person record as returned by the Attio API.
// Attribute values live under "values" as slotted entry lists:
//
//	{"id": {"record_id": ...}, "values": {"name": [{"value": "OpenAI"}], ...}}
//
// All accessors are defensive: a missing or oddly shaped field yields a zero
// value, never a panic, so handler logic can assume a normalized shape.
type Record map[string]any

// ID returns the record_id, or "" if absent.
func (r Record) ID() string {
	id, _ := r["id"].(map[string]any)
	s, _ := id["record_id"].(string)
	return s
}

// WebURL returns the Attio web app URL for the record, or "".
func (r Record) WebURL() string {
	s, _ := r["web_url"].(string)
	return s
}

// Values returns the raw attribute map, or nil.
func (r Record) Values() map[string]any {
	v, _ := r["values"].(map[string]any)
	return v
}

// Name returns the record's name attribute, or "".
func (r Record) Name() string {
	return r.entryString("name", "value")
}

// Description returns the description attribute, or "".
func (r Record) Description() string {
	return r.entryString("description", "value")
}

// Domains returns all domain values on a company record.
func (r Record) Domains() []string {
	return r.entryStrings("domains", "domain")
}

// Emails returns all email addresses on a person record.
func (r Record) Emails() []string {
	return r.entryStrings("email_addresses", "email_address")
}

// OwnerID returns the workspace-member id of the record's owner, or "".
func (r Record) OwnerID() string {
	return r.entryString("owner", "referenced_actor_id")
}

// CompanyID returns the id of a person's associated company record, or "".
func (r Record) CompanyID() string {
	return r.entryString("company", "target_record_id")
}

// ReminderDate returns the reminder attribute as a YYYY-MM-DD date, or "".
// Timestamp-valued reminders are truncated to their date part.
func (r Record) ReminderDate() string {
	s := r.entryString("reminder", "value")
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// entryString returns key from the first entry of the named attribute.
func (r Record) entryString(attr, key string) string {
	entries, _ := r.Values()[attr].([]any)
	if len(entries) == 0 {
		return ""
	}
	entry, _ := entries[0].(map[string]any)
	s, _ := entry[key].(string)
	return s
}

// entryStrings returns key from every entry of the named attribute.
func (r Record) entryStrings(attr, key string) []string {
	entries, _ := r.Values()[attr].([]any)
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		entry, _ := e.(map[string]any)
		if s, _ := entry[key].(string); s != "" {
			out = append(out, s)
		}
	}
	return out
}
