package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

const scholarBaseURL = "https://scholar.google.com"

var (
	yearPattern    = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	citedByPattern = regexp.MustCompile(`Cited by (\d+)`)
)

// ScholarSource scrapes Google Scholar result pages.
type ScholarSource struct {
	Client  *http.Client
	BaseURL string
}

func (s *ScholarSource) Name() string { return SourceGoogleScholar }

func (s *ScholarSource) Search(ctx context.Context, query string) ([]Paper, error) {
	base := s.BaseURL
	if base == "" {
		base = scholarBaseURL
	}
	endpoint := fmt.Sprintf("%s/scholar?q=%s&hl=en", base, url.QueryEscape(query))

	root, err := fetchHTML(ctx, s.Client, endpoint)
	if err != nil {
		return nil, fmt.Errorf("scholar: %w", err)
	}
	return parseScholar(root), nil
}

func parseScholar(root *html.Node) []Paper {
	papers := []Paper{}
	// Each result is a .gs_r wrapper: the text block (.gs_ri) plus a
	// sidebar (.gs_ggs) that carries the direct PDF link when one exists.
	for _, result := range findAll(root, byClass("gs_r")) {
		item := findFirst(result, byClass("gs_ri"))
		if item == nil {
			continue
		}
		paper := Paper{Source: SourceGoogleScholar}

		if title := findFirst(item, func(n *html.Node) bool {
			return n.Data == "a" && n.Parent != nil && hasClass(n.Parent, "gs_rt")
		}); title != nil {
			paper.Title = textContent(title)
			paper.SourceURL = attrValue(title, "href")
		}
		if paper.Title == "" {
			continue
		}

		// The byline reads "A Author, B Author - Journal, 2019 - site.org".
		if byline := findFirst(item, byClass("gs_a")); byline != nil {
			info := textContent(byline)
			paper.Authors = splitAuthors(strings.SplitN(info, "-", 2)[0])
			paper.Year = yearPattern.FindString(info)
		}

		if abstract := findFirst(item, byClass("gs_rs")); abstract != nil {
			paper.Abstract = textContent(abstract)
		}

		if footer := findFirst(item, byClass("gs_fl")); footer != nil {
			if m := citedByPattern.FindStringSubmatch(textContent(footer)); m != nil {
				paper.Citations, _ = strconv.Atoi(m[1])
			}
		}

		for _, link := range findAll(result, func(n *html.Node) bool { return n.Data == "a" }) {
			href := attrValue(link, "href")
			if strings.HasSuffix(href, ".pdf") || strings.Contains(textContent(link), "[PDF]") {
				paper.PDFURL = href
				break
			}
		}

		papers = append(papers, paper)
	}
	return papers
}

func splitAuthors(raw string) []string {
	parts := strings.Split(raw, ",")
	authors := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}
