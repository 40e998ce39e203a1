package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const researchGatePage = `<!DOCTYPE html>
<html><body>
<div class="research-item-main">
  <div class="research-item-title"><a href="/publication/12345_Deep_learning">Deep learning for protein folding</a></div>
  <span class="research-item-author">Jane Roe</span>
  <span class="research-item-author">John Doe</span>
  <div class="research-item-abstract">We present a method for predicting protein structure.</div>
  <div class="research-item-meta">Nature Methods</div>
  <a href="https://doi.org/10.1000/xyz123">DOI</a>
</div>
<div class="research-item-main">
  <div class="research-item-title">Entry without a link</div>
</div>
</body></html>`

func TestResearchGateSourceParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(researchGatePage))
	}))
	defer srv.Close()

	source := &ResearchGateSource{Client: srv.Client(), BaseURL: srv.URL}
	papers, err := source.Search(context.Background(), "protein folding")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("got %d papers, want 2", len(papers))
	}

	first := papers[0]
	if first.Title != "Deep learning for protein folding" {
		t.Errorf("title = %q", first.Title)
	}
	if first.SourceURL != srv.URL+"/publication/12345_Deep_learning" {
		t.Errorf("sourceUrl = %q", first.SourceURL)
	}
	if len(first.Authors) != 2 || first.Authors[1] != "John Doe" {
		t.Errorf("authors = %v", first.Authors)
	}
	if first.DOI != "10.1000/xyz123" {
		t.Errorf("doi = %q", first.DOI)
	}
	if first.Journal != "Nature Methods" {
		t.Errorf("journal = %q", first.Journal)
	}
	if first.Source != SourceResearchGate {
		t.Errorf("source = %q", first.Source)
	}

	if papers[1].SourceURL != "" {
		t.Errorf("linkless entry sourceUrl = %q, want empty", papers[1].SourceURL)
	}
}
