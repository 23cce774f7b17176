package dekamer

import (
	"net/url"
	"strings"
	"testing"

	"dekamer-scraper/lib/roster"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const listingFixture = `<html><body>
<table>
  <tr><th>Naam</th><th>Fractie</th></tr>
  <tr>
    <td><a href="cvview54.cfm?key=00001">Peter De Roover</a></td>
    <td>N-VA</td>
  </tr>
  <tr>
    <td><img src="/site/images/photo2.jpg"/></td>
    <td><a href="cvview54.cfm?key=00002">Meryame Kitir</a></td>
    <td>Vooruit</td>
  </tr>
  <tr>
    <td><a href="cvview54.cfm?key=00003">Jean-Marie Dedecker</a></td>
    <td></td>
  </tr>
</table>
</body></html>`

func parseFixture(t *testing.T) []roster.Member {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(listingFixture))
	require.NoError(t, err)
	base, err := url.Parse("https://www.dekamer.be/kvvcr/")
	require.NoError(t, err)
	return ParseMembers(doc, base)
}

func TestParseMembers(t *testing.T) {
	members := parseFixture(t)

	expected := []roster.Member{
		{
			Name:       "Peter De Roover",
			Party:      "N-VA",
			ProfileURL: "https://www.dekamer.be/kvvcr/cvview54.cfm?key=00001",
		},
		{
			Name:       "Meryame Kitir",
			Party:      "Vooruit",
			PictureURL: "https://www.dekamer.be/site/images/photo2.jpg",
			ProfileURL: "https://www.dekamer.be/kvvcr/cvview54.cfm?key=00002",
		},
		{
			// missing party cell degrades to the sentinel instead of
			// dropping the member
			Name:       "Jean-Marie Dedecker",
			Party:      roster.UnknownParty,
			ProfileURL: "https://www.dekamer.be/kvvcr/cvview54.cfm?key=00003",
		},
	}
	if diff := cmp.Diff(expected, members); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseMembersEmptyPage(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body><p>Geen leden.</p></body></html>`))
	require.NoError(t, err)

	require.Empty(t, ParseMembers(doc, nil))
}
