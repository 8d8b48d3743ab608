package crm

import (
	"context"
)

// taskFetchLimit is the page size used when a deadline window is present:
// the tasks endpoint cannot filter by deadline, so one wide page is
// fetched and filtered here.
const taskFetchLimit = 500

// ListTasksInput contains parameters for the ListTasks operation.
// All fields are optional.
type ListTasksInput struct {
	Assignee      string // workspace member id, or an email to resolve
	DeadlineStart string // inclusive YYYY-MM-DD lower bound on deadline
	DeadlineEnd   string // inclusive YYYY-MM-DD upper bound on deadline
	Limit         int    // default 20, max 100
}

// TaskSummary is the projected output shape for one task.
type TaskSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	AssigneeID string `json:"assignee_id,omitempty"`
	Deadline   string `json:"deadline,omitempty"`
	Completed  bool   `json:"completed"`
}

// ListTasksOutput contains the bounded result list.
type ListTasksOutput struct {
	Tasks []TaskSummary `json:"tasks"`
	Count int           `json:"count"`
}

// ListTasks lists tasks, optionally filtered by assignee natively and by
// an inclusive deadline window client-side. Tasks without a deadline are
// excluded whenever either bound is set. An assignee email that resolves
// to no workspace member yields an empty result without fetching tasks.
func ListTasks(ctx context.Context, client Client, limits Limits, input ListTasksInput) (*ListTasksOutput, error) {
	limit, err := limits.clamp(input.Limit)
	if err != nil {
		return nil, err
	}
	window, err := newDateWindow("deadline_start", input.DeadlineStart, "deadline_end", input.DeadlineEnd)
	if err != nil {
		return nil, err
	}

	assignee := ""
	if input.Assignee != "" {
		id, ok, err := resolveMemberID(ctx, client, input.Assignee)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &ListTasksOutput{Tasks: []TaskSummary{}}, nil
		}
		assignee = id
	}

	fetchLimit := limit
	if window.active() {
		fetchLimit = taskFetchLimit
	}

	tasks, err := client.ListTasks(ctx, assignee, fetchLimit, 0)
	if err != nil {
		return nil, err
	}

	out := make([]TaskSummary, 0, limit)
	for _, t := range tasks {
		if window.active() && !window.containsDate(t.DeadlineAt) {
			continue
		}
		deadline := t.DeadlineAt
		if len(deadline) > 10 {
			deadline = deadline[:10]
		}
		out = append(out, TaskSummary{
			ID:         t.ID.TaskID,
			Title:      t.ContentPlaintext,
			AssigneeID: t.AssigneeID(),
			Deadline:   deadline,
			Completed:  t.IsCompleted,
		})
		if len(out) == limit {
			break
		}
	}

	return &ListTasksOutput{Tasks: out, Count: len(out)}, nil
}
