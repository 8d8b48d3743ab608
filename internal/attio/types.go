package attio

// Task is a raw task as returned by GET /tasks.
type Task struct {
	ID               TaskID         `json:"id"`
	ContentPlaintext string         `json:"content_plaintext"`
	DeadlineAt       string         `json:"deadline_at"`
	IsCompleted      bool           `json:"is_completed"`
	Assignees        []TaskAssignee `json:"assignees"`
}

// TaskID identifies a task.
type TaskID struct {
	WorkspaceID string `json:"workspace_id"`
	TaskID      string `json:"task_id"`
}

// TaskAssignee is a workspace-member reference on a task.
type TaskAssignee struct {
	ReferencedActorType string `json:"referenced_actor_type"`
	ReferencedActorID   string `json:"referenced_actor_id"`
}

// AssigneeID returns the first assignee's workspace-member id, or "".
func (t Task) AssigneeID() string {
	if len(t.Assignees) == 0 {
		return ""
	}
	return t.Assignees[0].ReferencedActorID
}

// Note is a raw note as returned by GET /notes.
type Note struct {
	ID               NoteID     `json:"id"`
	Title            string     `json:"title"`
	ContentPlaintext string     `json:"content_plaintext"`
	ContentHTML      string     `json:"content_html"`
	CreatedAt        string     `json:"created_at"`
	CreatedBy        NoteAuthor `json:"created_by"`
}

// NoteID identifies a note and its parent record.
type NoteID struct {
	RecordID       string `json:"record_id"`
	ParentObject   string `json:"parent_object"`
	ParentRecordID string `json:"parent_record_id"`
}

// NoteAuthor is the actor that created a note.
type NoteAuthor struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Member is a workspace member as returned by GET /workspace_members.
// Nullable upstream fields (last_name, avatar_url) decode to "".
type Member struct {
	ID           MemberID `json:"id"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	EmailAddress string   `json:"email_address"`
	AvatarURL    string   `json:"avatar_url"`
	AccessLevel  string   `json:"access_level"`
	CreatedAt    string   `json:"created_at"`
}

// MemberID identifies a workspace member.
type MemberID struct {
	WorkspaceID       string `json:"workspace_id"`
	WorkspaceMemberID string `json:"workspace_member_id"`
}
