package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"
)

// UnknownParty is assigned to members whose card carries no readable party
// affiliation, so a broken card degrades instead of dropping the member.
const UnknownParty = "Onbekend"

type Member struct {
	Name       string `json:"name"`
	Party      string `json:"party"`
	PictureURL string `json:"picture_url"`
	ProfileURL string `json:"profile_url"`
}

// Document is the on-disk shape of a scraped roster.
type Document struct {
	TotalMembers int      `json:"total_members"`
	LastUpdated  string   `json:"last_updated"`
	Members      []Member `json:"members"`
}

// NewDocument groups members by party and stamps the document. Parties are
// ordered alphabetically ascending; within a party the original page order is
// preserved (stable sort).
func NewDocument(members []Member, now time.Time) Document {
	sorted := make([]Member, len(members))
	copy(sorted, members)
	slices.SortStableFunc(sorted, func(a, b Member) int {
		return strings.Compare(a.Party, b.Party)
	})

	return Document{
		TotalMembers: len(sorted),
		LastUpdated:  now.UTC().Format(time.RFC3339),
		Members:      sorted,
	}
}

// Write replaces the file at path with the document serialized as indented
// UTF-8 JSON. Re-running a scrape overwrites the previous roster in full.
func Write(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func Read(path string) (Document, error) {
	var doc Document
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}
