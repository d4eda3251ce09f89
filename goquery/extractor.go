// Package goquery provides HTML content extraction for index builds. It
// pulls out the page title, the indexable body text with boilerplate
// stripped, and the symbols the page documents.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fwojciec/docdex"
)

// Ensure Extractor implements docdex.Extractor at compile time.
var _ docdex.Extractor = (*Extractor)(nil)

// Extractor extracts indexable content from documentation page HTML.
// Validated against Sphinx v4.x-v7.x output with ReadTheDocs and classic
// themes; generic pages fall back to <main>/<article>/<body>.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// contentSelectors name likely main-content containers, most specific
// first.
var contentSelectors = []string{
	"[role=main]",
	"main",
	"article",
	".body",
	".document",
	"body",
}

// Extract processes raw HTML and returns the page title, body text, and
// declared objects.
func (e *Extractor) Extract(html string) (*docdex.ExtractResult, error) {
	if html == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "failed to parse HTML: %v", err)
	}

	title := pageTitle(doc)
	objects := extractObjects(doc)

	// Boilerplate never contributes search terms.
	doc.Find("script, style, nav, header, footer, aside").Remove()

	var text string
	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if t := strings.TrimSpace(sel.Text()); t != "" {
			text = t
			break
		}
	}

	return &docdex.ExtractResult{
		Title:   title,
		Text:    text,
		Objects: objects,
	}, nil
}

// pageTitle prefers the first h1 over the <title> element and strips the
// headerlink pilcrow Sphinx appends to section headings.
func pageTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	return strings.TrimSpace(strings.TrimSuffix(title, "¶"))
}

// domainDisplay maps documentation domain codes to the human-readable
// prefix used in object kind names.
var domainDisplay = map[string]string{
	"c":   "C",
	"cpp": "C++",
	"go":  "Go",
	"js":  "JavaScript",
	"py":  "Python",
	"rst": "reStructuredText",
	"std": "",
}

// extractObjects finds the symbols a page declares.
//
// Definition lists carry the domain and role in their class attribute
// (<dl class="py function">) with the fully qualified name as the dt id.
// Module declarations appear as elements with a module- prefixed id.
func extractObjects(doc *goquery.Document) []docdex.PageObject {
	var objects []docdex.PageObject
	seen := make(map[string]bool)

	doc.Find("dl[class]").Each(func(_ int, dl *goquery.Selection) {
		classes := strings.Fields(dl.AttrOr("class", ""))
		if len(classes) < 2 {
			return
		}
		typ := objectType(classes[0], classes[1])

		dl.Find("dt[id]").Each(func(_ int, dt *goquery.Selection) {
			id := dt.AttrOr("id", "")
			if id == "" || seen[id] {
				return
			}
			seen[id] = true
			objects = append(objects, docdex.PageObject{
				Name:     id,
				Type:     typ,
				Anchor:   "", // fragment equals the qualified name
				Priority: docdex.PriorityDefault,
			})
		})
	})

	doc.Find("[id^=module-]").Each(func(_ int, sel *goquery.Selection) {
		id := sel.AttrOr("id", "")
		name := strings.TrimPrefix(id, "module-")
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		objects = append(objects, docdex.PageObject{
			Name:     name,
			Type:     objectType("py", "module"),
			Anchor:   id,
			Priority: docdex.PriorityImportant,
		})
	})

	return objects
}

// objectType builds the decoded kind for a domain and role pair.
func objectType(domain, role string) docdex.ObjectType {
	display, ok := domainDisplay[domain]
	if !ok {
		display = strings.ToUpper(domain)
	}
	if display == "" {
		display = role
	} else {
		display += " " + role
	}
	return docdex.ObjectType{
		Domain:  domain,
		Name:    role,
		Display: display,
	}
}
