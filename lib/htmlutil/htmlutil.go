package htmlutil

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText returns the concatenated text content of a node and all of its
// descendants, without any normalization.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText strips non-printable characters, trims surrounding whitespace
// and collapses runs of inner whitespace into a single space. Scraped text
// goes through this before it is compared or stored.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = strings.Trim(s, " \t\n")
	return innerWhitespace.ReplaceAllString(s, " ")
}

// ResolveURL resolves a possibly relative href against a base URL. Unparseable
// hrefs resolve to the empty string.
func ResolveURL(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	link, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return link.String()
	}
	return base.ResolveReference(link).String()
}

type Anchor struct {
	Name string
	Href string
}

// GetAnchors extracts every anchor in the selection, cleaning its text and
// resolving its href against base.
func GetAnchors(sel *goquery.Selection, base *url.URL) []Anchor {
	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
				break
			}
		}
		anchors = append(anchors, Anchor{
			Name: CleanText(GetText(n)),
			Href: ResolveURL(base, href),
		})
	}
	return anchors
}
