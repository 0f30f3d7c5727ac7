// server/domain/models.go
package domain

import "time"

type Workspace struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Color       string     `json:"color"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	Notes       []Note     `json:"notes,omitempty"`
}

type Note struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	WorkspaceID int64      `json:"workspace_id"`
	FilePath    string     `json:"file_path,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	Tags        []Tag      `json:"tags"`
	Workspace   *Workspace `json:"workspace,omitempty"`
}

// TagNames is what gets written to frontmatter instead of full Tag rows.
func (n *Note) TagNames() []string {
	names := make([]string, 0, len(n.Tags))
	for _, t := range n.Tags {
		names = append(names, t.Name)
	}
	return names
}

type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// AISession is a best-effort log row for one AI call. Nothing depends on it
// being written.
type AISession struct {
	ID               int64     `json:"id"`
	SessionType      string    `json:"session_type"`
	Query            string    `json:"query"`
	Response         string    `json:"response,omitempty"`
	ModelUsed        string    `json:"model_used"`
	NoteIDs          []int64   `json:"note_ids,omitempty"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	Success          bool      `json:"success"`
	CreatedAt        time.Time `json:"created_at"`
}
