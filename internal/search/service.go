package search

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"glance-backend/internal/shared/telemetry"
)

// FilterPDFOnly keeps only results that expose a direct PDF link.
const FilterPDFOnly = "pdf_only"

var ErrEmptyQuery = errors.New("query is required")

// Source is one scraped paper listing site.
type Source interface {
	Name() string
	Search(ctx context.Context, query string) ([]Paper, error)
}

// Metadata describes the merged result set.
type Metadata struct {
	Total   int            `json:"total"`
	WithPDF int            `json:"withPdf"`
	Sources map[string]int `json:"sources"`
}

// Results is the merged, filtered and ranked outcome of a search.
type Results struct {
	Papers   []Paper
	Metadata Metadata
}

// Service fans a query out to all sources concurrently. A failing source
// contributes nothing; the others still return, so results are partial
// rather than all-or-nothing.
type Service struct {
	Sources []Source
}

func (s *Service) Search(ctx context.Context, query, filter string) (Results, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Results{}, ErrEmptyQuery
	}

	var mu sync.Mutex
	perSource := make(map[string]int, len(s.Sources))
	var papers []Paper

	g, gctx := errgroup.WithContext(ctx)
	for _, source := range s.Sources {
		source := source
		g.Go(func() error {
			found, err := source.Search(gctx, query)
			if err != nil {
				telemetry.Warn("search.source_failed", map[string]any{
					"source": source.Name(),
					"error":  err.Error(),
				})
				found = nil
			}
			mu.Lock()
			perSource[source.Name()] = len(found)
			papers = append(papers, found...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Results{}, err
	}

	if filter == FilterPDFOnly {
		kept := papers[:0]
		for _, p := range papers {
			if p.PDFURL != "" {
				kept = append(kept, p)
			}
		}
		papers = kept
	}

	// Cited papers first, most-cited on top; uncited keep source order.
	sort.SliceStable(papers, func(i, j int) bool {
		return papers[i].Citations > papers[j].Citations
	})

	withPDF := 0
	for _, p := range papers {
		if p.PDFURL != "" {
			withPDF++
		}
	}

	telemetry.Info("search.completed", map[string]any{
		"query":   query,
		"total":   len(papers),
		"sources": perSource,
	})
	return Results{
		Papers: papers,
		Metadata: Metadata{
			Total:   len(papers),
			WithPDF: withPDF,
			Sources: perSource,
		},
	}, nil
}
