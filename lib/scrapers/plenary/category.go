package plenary

import (
	"regexp"
	"strconv"
	"strings"

	"dekamer-scraper/lib/htmlutil"
	"dekamer-scraper/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// extractVotes resolves the three categories of one item. Per category the
// matchers run in fixed priority, paragraph form before table form, and the
// first non-empty result wins; a document may mix forms across items. An
// unmatched category is emitted as a zero group, never omitted.
func (p *Parser) extractVotes(item *goquery.Selection) map[Category]VoteGroup {
	paragraph := p.matchParagraphs(item)
	table := p.matchTableRows(item)

	votes := make(map[Category]VoteGroup, len(Categories))
	for _, cat := range Categories {
		group, ok := paragraph[cat]
		if !ok || group.empty() {
			if fallback, found := table[cat]; found && !fallback.empty() {
				group = fallback
			}
		}
		if group.Names == nil {
			group.Names = []string{}
		}
		votes[cat] = group
	}
	return votes
}

// matchParagraphs handles the "<strong>Voor (20):</strong> A; B; ..." form:
// a label with optional declared count, a colon, then the name block running
// until the next label or the end of the item. Table-form markup renders
// without the trailing colon, so it falls through to matchTableRows.
func (p *Parser) matchParagraphs(item *goquery.Selection) map[Category]VoteGroup {
	text := item.Text()

	matches := p.labelRe.FindAllStringSubmatchIndex(text, -1)
	out := map[Category]VoteGroup{}
	for i, m := range matches {
		cat, ok := p.cfg.Labels.classify(text[m[2]:m[3]])
		if !ok {
			continue
		}
		if _, seen := out[cat]; seen {
			continue
		}

		declared := -1
		if m[4] >= 0 {
			declared, _ = strconv.Atoi(text[m[4]:m[5]])
		}

		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		names := textutil.SplitNames(text[m[1]:end], p.cfg.Separator)

		count := declared
		if count < 0 {
			count = len(names)
		}
		out[cat] = VoteGroup{Count: count, Names: names}
	}
	return out
}

var parenCountRe = regexp.MustCompile(`\((\d+)\)`)

// matchTableRows handles the "<td>Voor</td><td>A; B</td>" form. A row whose
// first cell starts with a label switches the current category; rows without
// a label continue the name list of the current category when they look like
// one (they contain the separator).
func (p *Parser) matchTableRows(item *goquery.Selection) map[Category]VoteGroup {
	out := map[Category]VoteGroup{}
	declared := map[Category]bool{}
	current := Category("")

	item.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() == 0 {
			return
		}

		first := htmlutil.CleanText(cells.First().Text())
		if cat, ok := p.cfg.Labels.matchPrefix(first); ok {
			current = cat
			group := out[cat]
			if m := parenCountRe.FindStringSubmatch(first); m != nil {
				group.Count, _ = strconv.Atoi(m[1])
				declared[cat] = true
			}
			cells.Slice(1, cells.Length()).Each(func(_ int, cell *goquery.Selection) {
				group.Names = append(group.Names, textutil.SplitNames(cell.Text(), p.cfg.Separator)...)
			})
			out[cat] = group
			return
		}

		if current != "" && strings.Contains(row.Text(), p.cfg.Separator) {
			group := out[current]
			group.Names = append(group.Names, textutil.SplitNames(row.Text(), p.cfg.Separator)...)
			out[current] = group
		}
	})

	// without a declared parenthetical the count falls back to the list length
	for cat, group := range out {
		if !declared[cat] {
			group.Count = len(group.Names)
			out[cat] = group
		}
	}
	return out
}
