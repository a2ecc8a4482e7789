package charts

import (
	"fmt"
	"sort"

	"ledgerviz/internal/markup"
	"ledgerviz/internal/scene"
)

// ChartSnippet represents an embeddable chart fragment.
// HTML contains the root div with the inline svg and the tooltip overlay.
// Document is the scene the HTML was written from.
type ChartSnippet struct {
	ID       string
	Title    string
	Kind     Kind
	HTML     string
	Document scene.Document
}

// Snippet renders src for a container of the given size and packages the markup
func (g *Generator) Snippet(src Source, id string, containerWidth, containerHeight float64) (*ChartSnippet, error) {
	doc, err := g.Render(src, id, containerWidth, containerHeight)
	if err != nil {
		return nil, err
	}
	html, err := markup.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to write markup for %s: %w", id, err)
	}
	return &ChartSnippet{
		ID:       id,
		Title:    doc.Title,
		Kind:     src.Kind(),
		HTML:     string(html),
		Document: doc,
	}, nil
}

// Snippets renders several sources into one container size, keyed by chart id
func (g *Generator) Snippets(sources map[string]Source, containerWidth, containerHeight float64) ([]ChartSnippet, error) {
	out := make([]ChartSnippet, 0, len(sources))
	for _, id := range sortedKeys(sources) {
		s, err := g.Snippet(sources[id], id, containerWidth, containerHeight)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, nil
}

func sortedKeys(m map[string]Source) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
