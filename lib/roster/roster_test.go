package roster

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var testMembers = []Member{
	{Name: "Bert", Party: "B", ProfileURL: "https://example.be/bert"},
	{Name: "An", Party: "A", ProfileURL: "https://example.be/an"},
	{Name: "Bea", Party: "B", ProfileURL: "https://example.be/bea"},
}

func TestNewDocumentGroupsByParty(t *testing.T) {
	now := time.Date(2026, time.August, 24, 10, 30, 0, 0, time.UTC)
	doc := NewDocument(testMembers, now)

	require.Equal(t, 3, doc.TotalMembers)
	require.Equal(t, "2026-08-24T10:30:00Z", doc.LastUpdated)

	// parties ascending, page order preserved within a party
	expected := []Member{
		{Name: "An", Party: "A", ProfileURL: "https://example.be/an"},
		{Name: "Bert", Party: "B", ProfileURL: "https://example.be/bert"},
		{Name: "Bea", Party: "B", ProfileURL: "https://example.be/bea"},
	}
	if diff := cmp.Diff(expected, doc.Members); diff != "" {
		t.Fatal(diff)
	}
}

func TestPartyCounts(t *testing.T) {
	doc := NewDocument(testMembers, time.Now())

	expected := []PartyCount{
		{Party: "A", Members: 1},
		{Party: "B", Members: 2},
	}
	if diff := cmp.Diff(expected, doc.PartyCounts()); diff != "" {
		t.Fatal(diff)
	}
}

func TestFilterByParty(t *testing.T) {
	doc := NewDocument([]Member{
		{Name: "An", Party: "N-VA"},
		{Name: "Bert", Party: "Vooruit"},
		{Name: "Bea", Party: "N-VA"},
	}, time.Now())

	members := doc.FilterByParty("n-va")
	require.Len(t, members, 2)
	require.Equal(t, "An", members[0].Name)
	require.Equal(t, "Bea", members[1].Name)

	require.Empty(t, doc.FilterByParty("PVDA"))
}

func TestClosestParty(t *testing.T) {
	doc := NewDocument([]Member{
		{Name: "An", Party: "N-VA"},
		{Name: "Bert", Party: "Vooruit"},
		{Name: "Carl", Party: "Vlaams Belang"},
	}, time.Now())

	require.Equal(t, "N-VA", doc.ClosestParty("NVA"))
	require.Equal(t, "Vooruit", doc.ClosestParty("vooruit"))
	require.Equal(t, "", Document{}.ClosestParty("N-VA"))
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parliament_members.json")

	doc := NewDocument(testMembers, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, Write(path, doc))

	read, err := Read(path)
	require.NoError(t, err)
	if diff := cmp.Diff(doc, read); diff != "" {
		t.Fatal(diff)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
