package adapters

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
)

// maxContentChars caps the content body of a single search result so one
// long page cannot crowd the rest of the context window.
const maxContentChars = 5000

// Search runs a web search through the RAG web browser actor and returns one
// formatted markdown string per usable result, preserving provider order.
// Items that yield no extractable text are skipped.
func (f *Fetcher) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	if maxResults <= 0 {
		maxResults = 1
	}
	input := map[string]any{
		"query":         query,
		"maxResults":    maxResults,
		"outputFormats": []string{"markdown"},
		"scrapingTool":  "raw-http",
	}

	rows, err := f.call(ctx, "search", f.cfg.SearchActor, input)
	if err != nil {
		return nil, eris.Wrap(err, "adapters: search")
	}

	results := make([]string, 0, len(rows))
	for _, row := range rows {
		if formatted := formatSearchResult(row); formatted != "" {
			results = append(results, formatted)
		}
	}
	return results, nil
}

// formatSearchResult renders one provider row as a markdown snippet: a small
// header from the search-result metadata, then the page content. Missing
// sub-fields simply omit their line.
func formatSearchResult(row map[string]any) string {
	var b strings.Builder

	sr := getMap(row, "searchResult")
	if title := getString(sr, "title"); title != "" {
		b.WriteString("# " + title + "\n\n")
	}
	if u := getString(sr, "url"); u != "" {
		b.WriteString("URL: " + u + "\n\n")
	}
	if desc := getString(sr, "description"); desc != "" {
		b.WriteString("Description: " + desc + "\n\n")
	}

	meta := getMap(row, "metadata")
	if author := getString(meta, "author"); author != "" {
		b.WriteString("Author: " + author + "\n")
	}

	if content := getString(row, "markdown"); content != "" {
		if len(content) > maxContentChars {
			content = truncateRunes(content, maxContentChars) + "...[content truncated]"
		}
		b.WriteString("Content:\n" + content + "\n")
	}

	return b.String()
}

// truncateRunes cuts s at the last rune boundary at or before max bytes so a
// multibyte rune is never split.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
