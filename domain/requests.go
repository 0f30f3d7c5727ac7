// server/domain/requests.go
package domain

// Request and response shapes for the JSON API.

type WorkspaceCreate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type WorkspaceUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

type NoteCreate struct {
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	WorkspaceID int64   `json:"workspace_id"`
	TagIDs      []int64 `json:"tag_ids"`
}

type NoteUpdate struct {
	Title       *string  `json:"title"`
	Content     *string  `json:"content"`
	WorkspaceID *int64   `json:"workspace_id"`
	TagIDs      *[]int64 `json:"tag_ids"`
}

type TagCreate struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type TagUpdate struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

type AICleanupRequest struct {
	NoteID      int64  `json:"note_id"`
	CleanupType string `json:"cleanup_type"`
}

type AIRephraseRequest struct {
	Text  string `json:"text"`
	Style string `json:"style"`
}

type AIChatRequest struct {
	Message        string  `json:"message"`
	NoteIDs        []int64 `json:"note_ids"`
	ConversationID string  `json:"conversation_id"`
}

type AIResponse struct {
	Success          bool   `json:"success"`
	Response         string `json:"response,omitempty"`
	Error            string `json:"error,omitempty"`
	ProcessingTimeMs int64  `json:"processing_time_ms"`
	ModelUsed        string `json:"model_used"`
	ConversationID   string `json:"conversation_id,omitempty"`
}

type AISearchRequest struct {
	Query        string  `json:"query"`
	WorkspaceIDs []int64 `json:"workspace_ids"`
	MaxResults   int     `json:"max_results"`
}

type SearchResult struct {
	NoteID         int64   `json:"note_id"`
	NoteTitle      string  `json:"note_title"`
	RelevanceScore float64 `json:"relevance_score"`
	Snippet        string  `json:"snippet"`
	WorkspaceName  string  `json:"workspace_name"`
}

type SearchResponse struct {
	Results    []SearchResult `json:"results"`
	TotalCount int            `json:"total_count"`
	Query      string         `json:"query"`
}
