package filesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ViniZap4/pkm-server/domain"
)

func testNote() *domain.Note {
	return &domain.Note{
		ID:          42,
		Title:       "Meeting Notes: Q3 Review",
		Content:     "# Q3\n\nWent fine.",
		WorkspaceID: 7,
		CreatedAt:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Tags: []domain.Tag{
			{ID: 1, Name: "work"},
			{ID: 2, Name: "meetings"},
		},
	}
}

func TestWriteAndReadNote(t *testing.T) {
	m := NewMirror(t.TempDir())
	note := testNote()

	rel, err := m.WriteNote(note)
	if err != nil {
		t.Fatalf("WriteNote: %v", err)
	}
	if want := filepath.Join("workspace_7", "42_Meeting_Notes_Q3_Review.md"); rel != want {
		t.Errorf("path = %q, want %q", rel, want)
	}

	got, tags, err := m.ReadNote(rel)
	if err != nil {
		t.Fatalf("ReadNote: %v", err)
	}
	if got.ID != note.ID || got.Title != note.Title || got.WorkspaceID != note.WorkspaceID {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Content != note.Content {
		t.Errorf("content = %q, want %q", got.Content, note.Content)
	}
	if len(tags) != 2 || tags[0] != "work" {
		t.Errorf("tags = %v", tags)
	}
}

func TestWriteNoteRemovesOldPath(t *testing.T) {
	m := NewMirror(t.TempDir())
	note := testNote()

	oldRel, err := m.WriteNote(note)
	if err != nil {
		t.Fatalf("WriteNote: %v", err)
	}

	note.FilePath = oldRel
	note.Title = "Renamed"
	newRel, err := m.WriteNote(note)
	if err != nil {
		t.Fatalf("WriteNote after rename: %v", err)
	}
	if newRel == oldRel {
		t.Fatalf("expected a new path after rename")
	}
	if _, err := os.Stat(filepath.Join(m.Root(), oldRel)); !os.IsNotExist(err) {
		t.Errorf("old file still present at %s", oldRel)
	}
	if _, err := os.Stat(filepath.Join(m.Root(), newRel)); err != nil {
		t.Errorf("new file missing at %s: %v", newRel, err)
	}
}

func TestDeleteNote(t *testing.T) {
	m := NewMirror(t.TempDir())
	note := testNote()

	rel, err := m.WriteNote(note)
	if err != nil {
		t.Fatalf("WriteNote: %v", err)
	}
	if err := m.DeleteNote(rel); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if _, err := os.Stat(filepath.Join(m.Root(), rel)); !os.IsNotExist(err) {
		t.Errorf("file still present after delete")
	}

	// Deleting again is fine.
	if err := m.DeleteNote(rel); err != nil {
		t.Errorf("second DeleteNote: %v", err)
	}
	if err := m.DeleteNote(""); err != nil {
		t.Errorf("DeleteNote with empty path: %v", err)
	}
}

func TestRemoveWorkspaceDir(t *testing.T) {
	m := NewMirror(t.TempDir())
	note := testNote()

	if _, err := m.WriteNote(note); err != nil {
		t.Fatalf("WriteNote: %v", err)
	}
	if err := m.RemoveWorkspaceDir(note.WorkspaceID); err != nil {
		t.Fatalf("RemoveWorkspaceDir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(m.Root(), "workspace_7")); !os.IsNotExist(err) {
		t.Errorf("workspace dir still present")
	}
}

func TestRebuild(t *testing.T) {
	root := t.TempDir()
	m := NewMirror(root)

	// A stale file that should not survive the rebuild.
	if err := os.MkdirAll(filepath.Join(root, "workspace_99"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "workspace_99", "stale.md"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	notes := []domain.Note{
		{ID: 1, Title: "First", Content: "one", WorkspaceID: 3, CreatedAt: time.Now()},
		{ID: 2, Title: "Second", Content: "two", WorkspaceID: 3, CreatedAt: time.Now()},
	}
	paths, err := m.Rebuild(notes)
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %v", paths)
	}
	if _, err := os.Stat(filepath.Join(root, "workspace_99")); !os.IsNotExist(err) {
		t.Errorf("stale workspace dir survived rebuild")
	}
	for id, rel := range paths {
		if _, err := os.Stat(filepath.Join(root, rel)); err != nil {
			t.Errorf("note %d missing at %s: %v", id, rel, err)
		}
	}
}

func TestSafeTitle(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Plain Title", "Plain_Title"},
		{"weird/../../path", "weirdpath"},
		{"???", "untitled"},
		{"  spaced  ", "spaced"},
		{strings.Repeat("a", 200), strings.Repeat("a", 80)},
	}
	for _, c := range cases {
		if got := safeTitle(c.in); got != c.want {
			t.Errorf("safeTitle(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestReadNoteRejectsMissingFrontmatter(t *testing.T) {
	root := t.TempDir()
	m := NewMirror(root)
	if err := os.WriteFile(filepath.Join(root, "bad.md"), []byte("no frontmatter"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := m.ReadNote("bad.md"); err == nil {
		t.Fatal("expected error for file without frontmatter")
	}
}
