// Package search scrapes academic paper listings from public search pages
// and merges them into one ranked result set.
package search

const (
	SourceGoogleScholar = "Google Scholar"
	SourceResearchGate  = "ResearchGate"
)

// Paper is one academic search result. Fields missing from a source page
// are simply left empty.
type Paper struct {
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Year      string   `json:"year,omitempty"`
	Abstract  string   `json:"abstract,omitempty"`
	PDFURL    string   `json:"pdfUrl,omitempty"`
	SourceURL string   `json:"sourceUrl"`
	Source    string   `json:"source"`
	Citations int      `json:"citations,omitempty"`
	DOI       string   `json:"doi,omitempty"`
	Journal   string   `json:"journal,omitempty"`
}
