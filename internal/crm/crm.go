// Package crm implements the tool operations: parameter validation,
// email-to-member resolution, client-side filtering the Attio API cannot
// express natively, and projection of raw records into flat output shapes.
// Operations are stateless; every invocation is independent.
package crm

import (
	"context"
	"strings"
	"time"

	"github.com/hpungsan/attio-mcp/internal/attio"
	"github.com/hpungsan/attio-mcp/internal/errors"
)

// Client is the narrow view of the Attio client the operations depend on.
// *attio.Client satisfies it; tests substitute a recording fake.
type Client interface {
	QueryRecords(ctx context.Context, object string, filters []attio.Filter, limit int) ([]attio.Record, error)
	GetRecord(ctx context.Context, object, id string) (attio.Record, error)
	ListNotes(ctx context.Context, parentObject, parentID string) ([]attio.Note, error)
	ListTasks(ctx context.Context, assignee string, limit, offset int) ([]attio.Task, error)
	ListWorkspaceMembers(ctx context.Context) ([]attio.Member, error)
	GetWorkspaceMember(ctx context.Context, id string) (*attio.Member, error)
}

// Limits bounds result counts. Built from config at startup.
type Limits struct {
	Default int
	Max     int
}

// DefaultLimits matches the documented tool defaults.
var DefaultLimits = Limits{Default: 20, Max: 100}

// dateFormat is the wire format for all date parameters.
const dateFormat = "2006-01-02"

// clamp validates and bounds a caller-requested limit: negative is a
// validation error, zero means the default, anything above Max is capped.
func (l Limits) clamp(limit int) (int, error) {
	if limit < 0 {
		return 0, errors.NewValidation("limit", "must not be negative")
	}
	if limit == 0 {
		return l.Default, nil
	}
	if limit > l.Max {
		return l.Max, nil
	}
	return limit, nil
}

// dateWindow is an inclusive calendar-date filter. Either bound may be
// absent. start > end is accepted and matches nothing.
type dateWindow struct {
	start, end       time.Time
	hasStart, hasEnd bool
}

// newDateWindow parses the optional bounds, failing with a validation
// error naming the offending field before any network call is made.
func newDateWindow(startField, startVal, endField, endVal string) (dateWindow, error) {
	var w dateWindow
	if startVal != "" {
		t, err := time.Parse(dateFormat, startVal)
		if err != nil {
			return w, errors.NewValidation(startField, "must be a YYYY-MM-DD date")
		}
		w.start, w.hasStart = t, true
	}
	if endVal != "" {
		t, err := time.Parse(dateFormat, endVal)
		if err != nil {
			return w, errors.NewValidation(endField, "must be a YYYY-MM-DD date")
		}
		w.end, w.hasEnd = t, true
	}
	return w, nil
}

// active reports whether either bound is set.
func (w dateWindow) active() bool {
	return w.hasStart || w.hasEnd
}

// containsDate reports whether the date part of value falls inside the
// window, inclusive on both ends. Values without a parseable date never
// match an active window.
func (w dateWindow) containsDate(value string) bool {
	if len(value) < len(dateFormat) {
		return false
	}
	t, err := time.Parse(dateFormat, value[:len(dateFormat)])
	if err != nil {
		return false
	}
	if w.hasStart && t.Before(w.start) {
		return false
	}
	if w.hasEnd && t.After(w.end) {
		return false
	}
	return true
}

// looksLikeEmail distinguishes an email address from an opaque member id.
func looksLikeEmail(s string) bool {
	return strings.Contains(s, "@")
}

// resolveMemberID resolves an owner/assignee parameter to a workspace
// member id. Opaque ids pass through untouched. Email values are matched
// case-insensitively against the member list; a miss returns ok=false so
// the caller can yield an empty result instead of querying.
func resolveMemberID(ctx context.Context, client Client, value string) (string, bool, error) {
	if !looksLikeEmail(value) {
		return value, true, nil
	}
	members, err := client.ListWorkspaceMembers(ctx)
	if err != nil {
		return "", false, err
	}
	for _, m := range members {
		if strings.EqualFold(m.EmailAddress, value) {
			return m.ID.WorkspaceMemberID, true, nil
		}
	}
	return "", false, nil
}
