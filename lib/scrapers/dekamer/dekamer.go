package dekamer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"dekamer-scraper/lib/htmlutil"
	"dekamer-scraper/lib/roster"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/dekamer")

// ListingURL is the current-legislature member listing of the federal
// parliament (De Kamer), dutch language version.
const ListingURL = "https://www.dekamer.be/kvvcr/showpage.cfm?section=/depute&language=nl&cfm=cvlist54.cfm?legis=56&today=y"

var (
	ErrFetch      = errors.New("failed to fetch member listing")
	ErrBadListing = errors.New("member listing is not parseable markup")
)

type Client struct {
	http *resty.Client
	base *url.URL
}

func NewClient() Client {
	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)

	base, _ := url.Parse("https://www.dekamer.be/kvvcr/")

	return Client{
		http: client,
		base: base,
	}
}

// FetchMembers makes a single GET of the listing page and extracts every
// member card on it. There is no retry, a failed fetch is fatal to the run.
func (c Client) FetchMembers(ctx context.Context) ([]roster.Member, error) {
	ctx, span := tracer.Start(ctx, "FetchMembers")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get(ListingURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if res.StatusCode() != 200 {
		err := fmt.Errorf("%w: status %d", ErrFetch, res.StatusCode())
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failed")
		return nil, fmt.Errorf("%w: %v", ErrBadListing, err)
	}

	members := ParseMembers(doc, c.base)
	span.SetAttributes(attribute.Int("members", len(members)))
	return members, nil
}

// ParseMembers extracts member cards from the listing document. A card is a
// table row holding the member's profile anchor; the party is the first plain
// text cell next to it. Cards without a readable party get the sentinel party
// instead of being dropped.
func ParseMembers(doc *goquery.Document, base *url.URL) []roster.Member {
	var members []roster.Member

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		anchors := htmlutil.GetAnchors(row.Find("a"), base)
		var profile htmlutil.Anchor
		for _, a := range anchors {
			if a.Name != "" && a.Href != "" {
				profile = a
				break
			}
		}
		if profile.Name == "" {
			// header or layout row
			return
		}

		party := partyText(row, profile.Name)
		if party == "" {
			slog.Warn("member card missing party", "name", profile.Name)
			party = roster.UnknownParty
		}

		picture := htmlutil.ResolveURL(base, row.Find("img").First().AttrOr("src", ""))

		members = append(members, roster.Member{
			Name:       profile.Name,
			Party:      party,
			PictureURL: picture,
			ProfileURL: profile.Href,
		})
	})

	return members
}

func partyText(row *goquery.Selection, name string) string {
	party := ""
	row.Find("td").Each(func(_ int, cell *goquery.Selection) {
		if party != "" {
			return
		}
		if cell.Find("a").Length() > 0 || cell.Find("img").Length() > 0 {
			// the name cell and the picture cell are not the party cell
			return
		}
		text := htmlutil.CleanText(cell.Text())
		if text == "" || text == name {
			return
		}
		party = text
	})
	return party
}
