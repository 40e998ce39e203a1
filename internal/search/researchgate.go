package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

const researchGateBaseURL = "https://www.researchgate.net"

// ResearchGateSource scrapes ResearchGate publication search pages.
type ResearchGateSource struct {
	Client  *http.Client
	BaseURL string
}

func (s *ResearchGateSource) Name() string { return SourceResearchGate }

func (s *ResearchGateSource) Search(ctx context.Context, query string) ([]Paper, error) {
	base := s.BaseURL
	if base == "" {
		base = researchGateBaseURL
	}
	endpoint := fmt.Sprintf("%s/search/publication?q=%s", base, url.QueryEscape(query))

	root, err := fetchHTML(ctx, s.Client, endpoint)
	if err != nil {
		return nil, fmt.Errorf("researchgate: %w", err)
	}
	return parseResearchGate(root, base), nil
}

func parseResearchGate(root *html.Node, base string) []Paper {
	papers := []Paper{}
	for _, item := range findAll(root, byClass("research-item-main")) {
		paper := Paper{Source: SourceResearchGate}

		if title := findFirst(item, byClass("research-item-title")); title != nil {
			paper.Title = textContent(title)
			if link := findFirst(title, func(n *html.Node) bool { return n.Data == "a" }); link != nil {
				paper.SourceURL = absoluteURL(base, attrValue(link, "href"))
			}
		}
		if paper.Title == "" {
			continue
		}

		for _, author := range findAll(item, byClass("research-item-author")) {
			if name := textContent(author); name != "" {
				paper.Authors = append(paper.Authors, name)
			}
		}

		if abstract := findFirst(item, byClass("research-item-abstract")); abstract != nil {
			paper.Abstract = textContent(abstract)
		}

		if meta := findFirst(item, byClass("research-item-meta")); meta != nil {
			paper.Journal = textContent(meta)
		}

		if doi := findFirst(item, func(n *html.Node) bool {
			return n.Data == "a" && strings.Contains(attrValue(n, "href"), "doi.org")
		}); doi != nil {
			paper.DOI = strings.TrimPrefix(attrValue(doi, "href"), "https://doi.org/")
		}

		papers = append(papers, paper)
	}
	return papers
}

func absoluteURL(base, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	u, err := url.JoinPath(base, href)
	if err != nil {
		return href
	}
	return u
}
