// server/filesystem/mirror.go
package filesystem

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ViniZap4/pkm-server/domain"
)

// Mirror maintains the on-disk markdown copy of every note. The database is
// the source of truth; the mirror is a durable secondary copy that can be
// rebuilt from it at any time.
type Mirror struct {
	root string
}

func NewMirror(root string) *Mirror {
	return &Mirror{root: root}
}

func (m *Mirror) Root() string { return m.root }

// Init creates the storage root.
func (m *Mirror) Init() error {
	return os.MkdirAll(m.root, 0755)
}

// frontmatter is the subset of a note written as the file header.
type frontmatter struct {
	ID          int64      `yaml:"id"`
	Title       string     `yaml:"title"`
	WorkspaceID int64      `yaml:"workspace_id"`
	Tags        []string   `yaml:"tags"`
	CreatedAt   time.Time  `yaml:"created_at"`
	UpdatedAt   *time.Time `yaml:"updated_at,omitempty"`
}

// NotePath returns the note's path relative to the storage root:
// workspace_<wid>/<id>_<sanitized title>.md
func (m *Mirror) NotePath(note *domain.Note) string {
	return filepath.Join(
		fmt.Sprintf("workspace_%d", note.WorkspaceID),
		fmt.Sprintf("%d_%s.md", note.ID, safeTitle(note.Title)),
	)
}

// WriteNote writes the note's mirror file and returns its relative path.
// When the note already has a file under a different path (title or
// workspace changed), the old file is removed first.
func (m *Mirror) WriteNote(note *domain.Note) (string, error) {
	rel := m.NotePath(note)
	full := filepath.Join(m.root, rel)

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", fmt.Errorf("create workspace dir: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	fm := frontmatter{
		ID:          note.ID,
		Title:       note.Title,
		WorkspaceID: note.WorkspaceID,
		Tags:        note.TagNames(),
		CreatedAt:   note.CreatedAt,
		UpdatedAt:   note.UpdatedAt,
	}
	if err := enc.Encode(fm); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	enc.Close()
	buf.WriteString("---\n\n")
	buf.WriteString(note.Content)

	if err := writeFileAtomic(full, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("write note file: %w", err)
	}

	if note.FilePath != "" && note.FilePath != rel {
		_ = os.Remove(filepath.Join(m.root, note.FilePath))
	}
	return rel, nil
}

// ReadNote parses a mirror file back into a note. Tags come back as names
// only; the database carries the full rows.
func (m *Mirror) ReadNote(rel string) (*domain.Note, []string, error) {
	data, err := os.ReadFile(filepath.Join(m.root, rel))
	if err != nil {
		return nil, nil, err
	}

	parts := bytes.SplitN(data, []byte("---"), 3)
	if len(parts) < 3 {
		return nil, nil, fmt.Errorf("invalid frontmatter format in %s", rel)
	}

	var fm frontmatter
	if err := yaml.Unmarshal(parts[1], &fm); err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	note := &domain.Note{
		ID:          fm.ID,
		Title:       fm.Title,
		WorkspaceID: fm.WorkspaceID,
		CreatedAt:   fm.CreatedAt,
		UpdatedAt:   fm.UpdatedAt,
		FilePath:    rel,
		Content:     string(bytes.TrimSpace(parts[2])),
	}
	return note, fm.Tags, nil
}

// DeleteNote removes a mirror file. A missing file is not an error.
func (m *Mirror) DeleteNote(rel string) error {
	if rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(m.root, rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RemoveWorkspaceDir deletes a workspace's whole directory.
func (m *Mirror) RemoveWorkspaceDir(workspaceID int64) error {
	return os.RemoveAll(filepath.Join(m.root, fmt.Sprintf("workspace_%d", workspaceID)))
}

// Rebuild wipes the storage root and rewrites every note from the given
// database rows. Returns note id -> relative file path for the caller to
// persist.
func (m *Mirror) Rebuild(notes []domain.Note) (map[int64]string, error) {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		if os.IsNotExist(err) {
			if err := m.Init(); err != nil {
				return nil, err
			}
		} else {
			return nil, fmt.Errorf("read storage root: %w", err)
		}
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(m.root, e.Name())); err != nil {
			return nil, fmt.Errorf("clear storage root: %w", err)
		}
	}

	paths := make(map[int64]string, len(notes))
	for i := range notes {
		note := notes[i]
		note.FilePath = "" // never remove from the fresh tree
		rel, err := m.WriteNote(&note)
		if err != nil {
			return nil, fmt.Errorf("rebuild note %d: %w", note.ID, err)
		}
		paths[note.ID] = rel
	}
	return paths, nil
}

// safeTitle reduces a title to filesystem-safe characters.
func safeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	s := strings.Trim(b.String(), "_")
	if s == "" {
		s = "untitled"
	}
	const maxLen = 80
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}
