package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitNames(t *testing.T) {
	cases := []struct {
		block    string
		expected []string
	}{
		{"A;  B ;C", []string{"A", "B", "C"}},
		{"A; ; B;", []string{"A", "B"}},
		{"", []string{}},
		{"  \n ", []string{}},
		{"Anke Van dermeersch (VB); Bert\n Wollants (N-VA)", []string{
			"Anke Van dermeersch (VB)",
			"Bert Wollants (N-VA)",
		}},
		{"single name", []string{"single name"}},
	}

	for _, test := range cases {
		require.Equal(t, test.expected, SplitNames(test.block, ";"), "block: %q", test.block)
	}
}

func TestHasLabelPrefix(t *testing.T) {
	cases := []struct {
		text     string
		label    string
		expected bool
	}{
		{"Voor (20)", "voor", true},
		{"voor:", "voor", true},
		{"VOOR", "voor", true},
		{"voorstel", "voor", false},
		{"Onthoudingen", "onthouding", false},
		{"Onthoudingen", "onthoudingen", true},
		{"tegen", "tegen", true},
		{"iets anders", "voor", false},
		{"", "voor", false},
	}

	for _, test := range cases {
		require.Equal(
			t, test.expected,
			HasLabelPrefix(test.text, test.label),
			"text: %q label: %q", test.text, test.label,
		)
	}
}

func TestNormalizeLabel(t *testing.T) {
	require.Equal(t, "voor", NormalizeLabel("  Voor\n"))
}
