package crm

import (
	"context"
	"sort"
	"time"

	"github.com/hpungsan/attio-mcp/internal/attio"
	"github.com/hpungsan/attio-mcp/internal/errors"
)

// NotesInput identifies the parent record whose notes to fetch.
type NotesInput struct {
	ID string // required parent record id
}

// NoteSummary is the projected output shape for one note.
type NoteSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	CreatedAt string `json:"created_at"`
	Content   string `json:"content"`
}

// NotesOutput contains all notes for the parent, newest first.
type NotesOutput struct {
	Notes []NoteSummary `json:"notes"`
	Count int           `json:"count"`
}

// GetCompanyNotes fetches all notes attached to a company, sorted by
// creation time descending regardless of upstream order.
func GetCompanyNotes(ctx context.Context, client Client, input NotesInput) (*NotesOutput, error) {
	return getNotes(ctx, client, attio.ObjectCompanies, input)
}

// GetPersonNotes fetches all notes attached to a person, newest first.
func GetPersonNotes(ctx context.Context, client Client, input NotesInput) (*NotesOutput, error) {
	return getNotes(ctx, client, attio.ObjectPeople, input)
}

func getNotes(ctx context.Context, client Client, parentObject string, input NotesInput) (*NotesOutput, error) {
	if input.ID == "" {
		return nil, errors.NewValidation("id", "is required")
	}
	notes, err := client.ListNotes(ctx, parentObject, input.ID)
	if err != nil {
		return nil, err
	}

	out := make([]NoteSummary, 0, len(notes))
	for _, n := range notes {
		out = append(out, NoteSummary{
			ID:        n.ID.RecordID,
			Title:     n.Title,
			Author:    n.CreatedBy.Name,
			CreatedAt: n.CreatedAt,
			Content:   n.ContentPlaintext,
		})
	}

	// Stable sort so notes sharing a timestamp keep their upstream order.
	sort.SliceStable(out, func(i, j int) bool {
		return noteTime(out[i].CreatedAt).After(noteTime(out[j].CreatedAt))
	})

	return &NotesOutput{Notes: out, Count: len(out)}, nil
}

// noteTime parses an upstream timestamp, tolerating nanosecond precision.
// Unparseable values sort last.
func noteTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
