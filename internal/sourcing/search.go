package sourcing

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/jmtong/talentpipe/internal/types"
)

// PageSize is the number of results per search page.
const PageSize = 10

// Searcher runs boolean search strings against the web search API.
type Searcher struct {
	svc *customsearch.Service
	cx  string
}

// NewSearcher creates a Searcher backed by Google Programmable Search.
func NewSearcher(ctx context.Context, apiKey, cx string) (*Searcher, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &Searcher{svc: svc, cx: cx}, nil
}

// Search returns one page of results for the query. Pagination is caller-
// driven: page is 1-based, and each page maps to a start offset of
// (page-1)*PageSize+1. The caller accumulates pages itself.
func (s *Searcher) Search(ctx context.Context, query string, page int) ([]types.SearchResult, error) {
	if page < 1 {
		page = 1
	}

	call := s.svc.Cse.List().Cx(s.cx).Q(query).Num(PageSize).Context(ctx)
	if start := (page-1)*PageSize + 1; start > 1 {
		call = call.Start(int64(start))
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]types.SearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, types.SearchResult{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}
	return results, nil
}
