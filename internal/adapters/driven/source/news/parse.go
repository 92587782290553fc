package news

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/finsim/internal/core/domain"
)

// listingItemClass marks a story entry on a listing page.
const listingItemClass = "js-stream-content"

// ParseListing extracts up to limit articles from a listing page.
// Items without a heading or link are skipped. Relative links are
// resolved against base.
func ParseListing(r io.Reader, base *url.URL, limit int) ([]domain.Article, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing listing: %w", err)
	}

	var articles []domain.Article
	walk(root, func(n *html.Node) bool {
		if limit > 0 && len(articles) >= limit {
			return false
		}
		if n.DataAtom != atom.Li || !hasClass(n, listingItemClass) {
			return true
		}

		heading := findFirst(n, atom.H3)
		anchor := findFirst(n, atom.A)
		if heading == nil || anchor == nil {
			return false
		}
		href := strings.TrimSpace(attr(anchor, "href"))
		if href == "" {
			return false
		}
		link, err := resolve(base, href)
		if err != nil {
			return false
		}

		articles = append(articles, domain.Article{
			Title: collapse(textContent(heading)),
			Link:  link,
		})
		return false
	})
	return articles, nil
}

// ParseParagraphs returns the lower-cased text of every <p> element.
func ParseParagraphs(r io.Reader) ([]string, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing article: %w", err)
	}

	var paragraphs []string
	walk(root, func(n *html.Node) bool {
		if n.DataAtom != atom.P {
			return true
		}
		if text := strings.TrimSpace(textContent(n)); text != "" {
			paragraphs = append(paragraphs, strings.ToLower(text))
		}
		return false
	})
	return paragraphs, nil
}

// walk visits n and its descendants in document order. Returning false
// from visit skips the node's children.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if n.Type == html.ElementNode && !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) bool {
		if found != nil {
			return false
		}
		if c.DataAtom == a {
			found = c
			return false
		}
		return true
	})
	return found
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func resolve(base *url.URL, href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	if base == nil {
		return ref.String(), nil
	}
	return base.ResolveReference(ref).String(), nil
}
