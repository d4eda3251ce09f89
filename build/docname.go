package build

import (
	"net/url"
	"strings"
)

// PageName derives the index document name and recorded filename for a page
// URL relative to the build's source URL.
//
// Example: base https://example.com/docs/ and page
// https://example.com/docs/api/returns.html yield docname "api/returns" and
// filename "api/returns.html".
func PageName(baseURL, pageURL string) (docName, filename string, err error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", "", err
	}
	page, err := url.Parse(pageURL)
	if err != nil {
		return "", "", err
	}

	rel := strings.TrimPrefix(page.Path, base.Path)
	rel = strings.TrimPrefix(rel, "/")

	// Root or trailing slash names the directory index page.
	if rel == "" {
		rel = "index.html"
	} else if strings.HasSuffix(rel, "/") {
		rel += "index.html"
	}

	filename = rel
	docName = rel
	for _, ext := range []string{".html", ".htm"} {
		if strings.HasSuffix(docName, ext) {
			docName = strings.TrimSuffix(docName, ext)
			break
		}
	}
	return docName, filename, nil
}
