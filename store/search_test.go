package store

import (
	"strings"
	"testing"
)

func TestSnippetMatchInMiddle(t *testing.T) {
	content := strings.Repeat("a", 100) + "needle" + strings.Repeat("b", 300)

	got := Snippet(content, "needle")
	if !strings.Contains(got, "needle") {
		t.Fatalf("snippet does not contain the match: %q", got)
	}
	if !strings.HasPrefix(got, "...") {
		t.Errorf("expected leading ellipsis, got %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected trailing ellipsis, got %q", got)
	}
}

func TestSnippetCaseInsensitive(t *testing.T) {
	got := Snippet("The Quick Brown Fox", "quick")
	if !strings.Contains(got, "Quick") {
		t.Fatalf("expected case-insensitive match, got %q", got)
	}
	if strings.Contains(got, "...") {
		t.Errorf("short content should not be truncated: %q", got)
	}
}

func TestSnippetNoMatchShortContent(t *testing.T) {
	content := "a short note body"
	if got := Snippet(content, "zzz"); got != content {
		t.Fatalf("expected full content, got %q", got)
	}
}

func TestSnippetNoMatchLongContent(t *testing.T) {
	content := strings.Repeat("x", 500)
	got := Snippet(content, "zzz")
	if len(got) != 203 {
		t.Fatalf("expected 200 chars plus ellipsis, got %d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected trailing ellipsis, got %q", got)
	}
}

func TestSnippetMatchAtStart(t *testing.T) {
	content := "needle" + strings.Repeat("y", 300)
	got := Snippet(content, "needle")
	if strings.HasPrefix(got, "...") {
		t.Errorf("match at offset zero should not have a leading ellipsis: %q", got)
	}
	if !strings.HasPrefix(got, "needle") {
		t.Errorf("expected snippet to start at the match: %q", got)
	}
}
