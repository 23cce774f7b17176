// Package plenary extracts nominative votes from saved plenary-session
// transcripts of the federal parliament. The same vote is marked up
// differently across sessions (headed paragraphs, classed sections, bare
// tables), so extraction runs a fixed list of matching strategies per item
// and deduplicates overlapping matches by document position.
package plenary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"dekamer-scraper/lib/htmlutil"
	"dekamer-scraper/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("scrapers/plenary")

// ErrNotHTML is the only hard failure: the input could not be read as markup
// at all. Structural surprises inside valid markup degrade per item instead.
var ErrNotHTML = errors.New("input is not parseable markup")

type VoteGroup struct {
	// Count is the number declared next to the category label in the source.
	// It is extracted independently from Names and the two may disagree on
	// malformed transcripts; no reconciliation is attempted.
	Count int      `json:"count"`
	Names []string `json:"names"`
}

func (g VoteGroup) empty() bool {
	return g.Count == 0 && len(g.Names) == 0
}

type VotingItem struct {
	Title string                 `json:"title"`
	Votes map[Category]VoteGroup `json:"votes"`
}

type Report struct {
	TotalItems int `json:"total_items"`
	// ItemsWithVotes counts items where at least one category has a
	// non-empty name list.
	ItemsWithVotes int          `json:"items_with_votes"`
	VotingItems    []VotingItem `json:"voting_items"`
}

type Parser struct {
	cfg       Config
	labelRe   *regexp.Regexp
	headingRe *regexp.Regexp
}

func New(cfg Config) *Parser {
	cfg = cfg.WithDefaults()
	return &Parser{
		cfg:     cfg,
		labelRe: buildLabelRegexp(cfg.Labels),
		// the keyword may sit anywhere in the heading ("Nominatieve
		// stemming", "Naamstemming 3")
		headingRe: regexp.MustCompile(`(?i)(stemming|vote|nominatief)`),
	}
}

// buildLabelRegexp matches "label:", "label (N):" and their case variants.
// Longer labels sort first so "onthoudingen" wins over "onthouding".
func buildLabelRegexp(l Labels) *regexp.Regexp {
	labels := l.all()
	slices.SortFunc(labels, func(a, b string) int {
		return len(b) - len(a)
	})
	quoted := make([]string, len(labels))
	for i, label := range labels {
		quoted[i] = regexp.QuoteMeta(textutil.NormalizeLabel(label))
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\s*(?:\((\d+)\))?\s*:`)
}

func (p *Parser) ParseFile(ctx context.Context, path string) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, err
	}
	defer f.Close()
	return p.Parse(ctx, f)
}

func (p *Parser) Parse(ctx context.Context, r io.Reader) (Report, error) {
	ctx, span := tracer.Start(ctx, "Parse")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unparseable markup")
		return Report{}, fmt.Errorf("%w: %v", ErrNotHTML, err)
	}

	items := p.extractItems(doc)

	report := Report{
		TotalItems:  len(items),
		VotingItems: items,
	}
	for _, item := range items {
		for _, group := range item.Votes {
			if len(group.Names) > 0 {
				report.ItemsWithVotes++
				break
			}
		}
	}

	span.SetAttributes(
		attribute.Int("total_items", report.TotalItems),
		attribute.Int("items_with_votes", report.ItemsWithVotes),
	)
	return report, nil
}

// candidate is one possible voting item, delimited by the nodes of content.
// fromHeading candidates keep their heading text as title and survive even
// without extractable votes; section candidates must yield votes.
type candidate struct {
	title       string
	fromHeading bool
	content     *goquery.Selection
}

func (p *Parser) extractItems(doc *goquery.Document) []VotingItem {
	candidates := p.headingCandidates(doc)
	candidates = append(candidates, p.sectionCandidates(doc)...)

	// Heading candidates come first because their match is more specific. A
	// later candidate whose node span overlaps an accepted one is the same
	// physical item reached through nested markup and is dropped; comparing
	// node spans instead of titles keeps two distinct items with the same
	// title apart. The one exception runs the other way: a section strictly
	// inside an accepted section means the accepted one was a wrapper around
	// several items, so the narrower span replaces it.
	var accepted []candidate
	for _, c := range candidates {
		if len(c.content.Nodes) == 0 {
			continue
		}
		keep := true
		for i := 0; i < len(accepted); {
			a := accepted[i]
			if !overlaps(c.content.Nodes, a.content.Nodes) {
				i++
				continue
			}
			if !a.fromHeading && !c.fromHeading && strictlyContains(a.content.Nodes, c.content.Nodes) {
				accepted = slices.Delete(accepted, i, i+1)
				continue
			}
			keep = false
			break
		}
		if keep {
			accepted = append(accepted, c)
		}
	}

	positions := nodePositions(doc.Get(0))
	slices.SortStableFunc(accepted, func(a, b candidate) int {
		return positions[a.content.Nodes[0]] - positions[b.content.Nodes[0]]
	})

	items := []VotingItem{}
	for _, c := range accepted {
		votes := p.extractVotes(c.content)
		if !c.fromHeading && allEmpty(votes) {
			continue
		}
		title := c.title
		if title == "" {
			title = fmt.Sprintf("Stemming %d", len(items)+1)
		}
		items = append(items, VotingItem{
			Title: title,
			Votes: votes,
		})
	}
	return items
}

const headingSelector = "h1, h2, h3, h4, h5"

func (p *Parser) headingCandidates(doc *goquery.Document) []candidate {
	var out []candidate
	doc.Find(headingSelector).Each(func(_ int, h *goquery.Selection) {
		title := htmlutil.CleanText(h.Text())
		if !p.headingRe.MatchString(title) {
			return
		}

		// a heading without a real container (directly under body) or in a
		// container shared by several vote headings is delimited by its
		// following siblings instead, so the rest of the document does not
		// become this item's span
		container := h.Closest("div, section, article, td")
		if container.Length() == 0 || p.sharedHeadings(container) > 1 {
			out = append(out, candidate{
				title:       title,
				fromHeading: true,
				content:     p.siblingRange(h),
			})
			return
		}

		out = append(out, candidate{
			title:       title,
			fromHeading: true,
			content:     container,
		})
	})
	return out
}

func (p *Parser) sharedHeadings(container *goquery.Selection) int {
	shared := 0
	container.Find(headingSelector).Each(func(_ int, other *goquery.Selection) {
		if p.headingRe.MatchString(htmlutil.CleanText(other.Text())) {
			shared++
		}
	})
	return shared
}

// siblingRange spans the heading and its following siblings up to the next
// heading or the next standalone voting section, whichever starts first.
func (p *Parser) siblingRange(h *goquery.Selection) *goquery.Selection {
	content := h
	for sib := h.Next(); sib.Length() > 0; sib = sib.Next() {
		if sib.Is(headingSelector) || p.isSectionCandidate(sib) {
			break
		}
		content = content.AddSelection(sib)
	}
	return content
}

var sectionAttrRe = regexp.MustCompile(`(?i)(stemming|voting|vote|nominatief)`)

// sectionCandidates finds items that have no "Stemming N" heading: containers
// whose class or id advertises voting content, and bare tables that carry
// category labels.
func (p *Parser) sectionCandidates(doc *goquery.Document) []candidate {
	var out []candidate
	doc.Find("div, section, article, table").Each(func(_ int, sel *goquery.Selection) {
		if !p.isSectionCandidate(sel) {
			return
		}

		title := ""
		heading := sel.Find(headingSelector).First()
		if heading.Length() > 0 {
			title = htmlutil.CleanText(heading.Text())
		}
		out = append(out, candidate{title: title, content: sel})
	})
	return out
}

// isSectionCandidate reports whether sel alone could delimit a voting item:
// a container advertising voting content in its class or id, or a bare table,
// either way carrying at least one category label.
func (p *Parser) isSectionCandidate(sel *goquery.Selection) bool {
	if !sel.Is("div, section, article, table") {
		return false
	}
	attrMatch := sectionAttrRe.MatchString(sel.AttrOr("class", "")) ||
		sectionAttrRe.MatchString(sel.AttrOr("id", ""))
	if !attrMatch && !sel.Is("table") {
		return false
	}
	return p.containsLabel(sel)
}

// containsLabel reports whether any category label appears in the selection.
// Adjacent table cells concatenate without whitespace in Text(), so cell
// texts are checked separately from the word scan.
func (p *Parser) containsLabel(sel *goquery.Selection) bool {
	for _, word := range strings.Fields(strings.ToLower(sel.Text())) {
		for _, label := range p.cfg.Labels.all() {
			if textutil.HasLabelPrefix(word, label) {
				return true
			}
		}
	}

	found := false
	sel.Find("td, th").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		if _, ok := p.cfg.Labels.matchPrefix(htmlutil.CleanText(cell.Text())); ok {
			found = true
			return false
		}
		return true
	})
	return found
}

func allEmpty(votes map[Category]VoteGroup) bool {
	for _, group := range votes {
		if !group.empty() {
			return false
		}
	}
	return true
}

func overlaps(a, b []*html.Node) bool {
	for _, na := range a {
		for _, nb := range b {
			if na == nb || containsNode(na, nb) || containsNode(nb, na) {
				return true
			}
		}
	}
	return false
}

// strictlyContains reports whether every node of inner is a descendant of a
// node of outer, with no node shared between the two spans.
func strictlyContains(outer, inner []*html.Node) bool {
	for _, ni := range inner {
		contained := false
		for _, no := range outer {
			if containsNode(no, ni) {
				contained = true
				break
			}
		}
		if !contained {
			return false
		}
	}
	return true
}

func containsNode(ancestor, n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// nodePositions assigns each node its pre-order index, used to emit items in
// document order regardless of which strategy found them.
func nodePositions(root *html.Node) map[*html.Node]int {
	positions := map[*html.Node]int{}
	index := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		positions[n] = index
		index++
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return positions
}
