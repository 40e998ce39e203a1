package search

import (
	"context"
	"errors"
	"testing"
)

type stubSource struct {
	name   string
	papers []Paper
	err    error
}

func (s stubSource) Name() string { return s.name }

func (s stubSource) Search(context.Context, string) ([]Paper, error) {
	return s.papers, s.err
}

func TestSearchMergesAndRanksByCitations(t *testing.T) {
	svc := &Service{Sources: []Source{
		stubSource{name: "A", papers: []Paper{
			{Title: "uncited", SourceURL: "u1"},
			{Title: "mid", SourceURL: "u2", Citations: 50},
		}},
		stubSource{name: "B", papers: []Paper{
			{Title: "top", SourceURL: "u3", Citations: 900, PDFURL: "u3.pdf"},
		}},
	}}

	results, err := svc.Search(context.Background(), "query", "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if results.Metadata.Total != 3 {
		t.Fatalf("total = %d, want 3", results.Metadata.Total)
	}
	if results.Papers[0].Title != "top" || results.Papers[1].Title != "mid" {
		t.Errorf("ranking wrong: %v, %v", results.Papers[0].Title, results.Papers[1].Title)
	}
	if results.Papers[2].Title != "uncited" {
		t.Errorf("uncited paper should sink to the bottom, got %q", results.Papers[2].Title)
	}
	if results.Metadata.WithPDF != 1 {
		t.Errorf("withPdf = %d, want 1", results.Metadata.WithPDF)
	}
	if results.Metadata.Sources["A"] != 2 || results.Metadata.Sources["B"] != 1 {
		t.Errorf("per-source counts = %v", results.Metadata.Sources)
	}
}

func TestSearchToleratesFailingSource(t *testing.T) {
	svc := &Service{Sources: []Source{
		stubSource{name: "broken", err: errors.New("blocked")},
		stubSource{name: "ok", papers: []Paper{{Title: "survivor", SourceURL: "u"}}},
	}}

	results, err := svc.Search(context.Background(), "query", "")
	if err != nil {
		t.Fatalf("Search should tolerate a failing source: %v", err)
	}
	if results.Metadata.Total != 1 || results.Papers[0].Title != "survivor" {
		t.Errorf("partial results missing: %+v", results)
	}
	if results.Metadata.Sources["broken"] != 0 {
		t.Errorf("failing source count = %d, want 0", results.Metadata.Sources["broken"])
	}
}

func TestSearchPDFOnlyFilter(t *testing.T) {
	svc := &Service{Sources: []Source{
		stubSource{name: "A", papers: []Paper{
			{Title: "with pdf", SourceURL: "u1", PDFURL: "u1.pdf"},
			{Title: "without pdf", SourceURL: "u2", Citations: 999},
		}},
	}}

	results, err := svc.Search(context.Background(), "query", FilterPDFOnly)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if results.Metadata.Total != 1 || results.Papers[0].Title != "with pdf" {
		t.Errorf("pdf_only filter failed: %+v", results.Papers)
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	svc := &Service{}
	if _, err := svc.Search(context.Background(), "  ", ""); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("err = %v, want ErrEmptyQuery", err)
	}
}
