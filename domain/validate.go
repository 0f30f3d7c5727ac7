// server/domain/validate.go
package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

const (
	DefaultWorkspaceColor = "#3B82F6"
	DefaultTagColor       = "#6B7280"
)

// ValidColor reports whether s is a #RRGGBB hex code.
func ValidColor(s string) bool {
	return hexColorRe.MatchString(s)
}

var CleanupTypes = []string{"grammar", "structure", "clarity", "full"}

var RephraseStyles = []string{"academic", "casual", "formal", "creative"}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func (r WorkspaceCreate) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(r.Name) > 255 {
		return fmt.Errorf("name must be at most 255 characters")
	}
	if r.Color != "" && !ValidColor(r.Color) {
		return fmt.Errorf("color must be a #RRGGBB hex code")
	}
	return nil
}

func (r WorkspaceUpdate) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return fmt.Errorf("name must not be empty")
	}
	if r.Color != nil && !ValidColor(*r.Color) {
		return fmt.Errorf("color must be a #RRGGBB hex code")
	}
	return nil
}

func (r NoteCreate) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(r.Title) > 500 {
		return fmt.Errorf("title must be at most 500 characters")
	}
	if r.Content == "" {
		return fmt.Errorf("content is required")
	}
	if r.WorkspaceID <= 0 {
		return fmt.Errorf("workspace_id is required")
	}
	return nil
}

func (r NoteUpdate) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return fmt.Errorf("title must not be empty")
	}
	if r.Content != nil && *r.Content == "" {
		return fmt.Errorf("content must not be empty")
	}
	if r.WorkspaceID != nil && *r.WorkspaceID <= 0 {
		return fmt.Errorf("workspace_id must be positive")
	}
	return nil
}

func (r TagCreate) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(r.Name) > 100 {
		return fmt.Errorf("name must be at most 100 characters")
	}
	if r.Color != "" && !ValidColor(r.Color) {
		return fmt.Errorf("color must be a #RRGGBB hex code")
	}
	return nil
}

func (r TagUpdate) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return fmt.Errorf("name must not be empty")
	}
	if r.Color != nil && !ValidColor(*r.Color) {
		return fmt.Errorf("color must be a #RRGGBB hex code")
	}
	return nil
}

func (r AICleanupRequest) Validate() error {
	if r.NoteID <= 0 {
		return fmt.Errorf("note_id is required")
	}
	if !oneOf(r.CleanupType, CleanupTypes) {
		return fmt.Errorf("cleanup_type must be one of: %s", strings.Join(CleanupTypes, ", "))
	}
	return nil
}

func (r AIRephraseRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("text is required")
	}
	if !oneOf(r.Style, RephraseStyles) {
		return fmt.Errorf("style must be one of: %s", strings.Join(RephraseStyles, ", "))
	}
	return nil
}

func (r AIChatRequest) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return fmt.Errorf("message is required")
	}
	return nil
}

func (r AISearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return fmt.Errorf("query is required")
	}
	if r.MaxResults < 0 || r.MaxResults > 50 {
		return fmt.Errorf("max_results must be between 1 and 50")
	}
	return nil
}
