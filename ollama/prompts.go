// server/ollama/prompts.go
package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

var cleanupPrompts = map[string]string{
	"grammar":   "You are a grammar expert. Fix only grammar and spelling errors in the following text. Keep the original meaning and style intact.",
	"structure": "You are a writing expert. Improve the structure and flow of the following text while keeping the original meaning.",
	"clarity":   "You are a clarity expert. Make the following text clearer and more concise while preserving all important information.",
	"full":      "You are a writing expert. Improve the grammar, structure, and clarity of the following text while preserving the original meaning.",
}

var rephrasePrompts = map[string]string{
	"academic": "Rephrase the following text in a formal, academic style suitable for research papers.",
	"casual":   "Rephrase the following text in a casual, conversational style.",
	"formal":   "Rephrase the following text in a formal, professional style.",
	"creative": "Rephrase the following text in a creative, engaging style.",
}

const searchSystemPrompt = `You are a search expert. Given a query and a list of note contents,
rank them by relevance to the query. Return a JSON array of objects with:
- index: the index of the note in the input list
- relevance_score: a float between 0 and 1
- snippet: a brief excerpt that matches the query

Only include notes with relevance_score > 0.1`

const chatSystemPrompt = `You are a helpful assistant that can answer questions about the user's notes.
Use the provided note contents as context to answer questions accurately.
If the answer isn't in the notes, say so clearly.`

// CleanupText runs one of the cleanup prompts over the text. Unknown types
// fall back to "full".
func (c *Client) CleanupText(ctx context.Context, text, cleanupType string) (string, error) {
	system, ok := cleanupPrompts[cleanupType]
	if !ok {
		system = cleanupPrompts["full"]
	}
	prompt := "Please improve the following text:\n\n" + text
	return c.Generate(ctx, prompt, system, 0.3)
}

// RephraseText rewrites the text in the requested style. Unknown styles fall
// back to "academic".
func (c *Client) RephraseText(ctx context.Context, text, style string) (string, error) {
	system, ok := rephrasePrompts[style]
	if !ok {
		system = rephrasePrompts["academic"]
	}
	prompt := "Please rephrase this text:\n\n" + text
	return c.Generate(ctx, prompt, system, 0.5)
}

// RankedNote is one entry of the model's search ranking.
type RankedNote struct {
	Index          int     `json:"index"`
	RelevanceScore float64 `json:"relevance_score"`
	Snippet        string  `json:"snippet"`
}

// SearchNotes asks the model to rank note contents against the query. A
// response that is not valid JSON yields an empty result, not an error.
func (c *Client) SearchNotes(ctx context.Context, query string, noteContents []string) ([]RankedNote, error) {
	var sb strings.Builder
	for i, content := range noteContents {
		fmt.Fprintf(&sb, "Note %d: %s\n\n", i, content)
	}
	prompt := fmt.Sprintf("Query: %s\n\nNotes:\n%s", query, sb.String())

	raw, err := c.Generate(ctx, prompt, searchSystemPrompt, 0.2)
	if err != nil {
		return nil, err
	}

	var ranked []RankedNote
	if err := json.Unmarshal([]byte(raw), &ranked); err != nil {
		c.log.Warn().Msg("search response was not valid JSON")
		return []RankedNote{}, nil
	}
	return ranked, nil
}

// ChatWithNotes answers a question using note contents as context and an
// optional tail of earlier conversation turns.
func (c *Client) ChatWithNotes(ctx context.Context, message string, noteContents, history []string) (string, error) {
	var sb strings.Builder
	for i, content := range noteContents {
		fmt.Fprintf(&sb, "Note %d: %s\n\n", i+1, content)
	}

	prompt := fmt.Sprintf("Context from notes:\n%s\nQuestion: %s", sb.String(), message)
	if len(history) > 0 {
		tail := history
		if len(tail) > 5 {
			tail = tail[len(tail)-5:]
		}
		prompt = fmt.Sprintf("Previous conversation:\n%s\n\n%s", strings.Join(tail, "\n"), prompt)
	}

	return c.Generate(ctx, prompt, chatSystemPrompt, 0.6)
}
