package plenary

import (
	"dekamer-scraper/lib/textutil"
)

// Category is the closed set of nominative vote outcomes recorded in a
// plenary transcript. The values double as JSON keys.
type Category string

const (
	InFavor Category = "in-favor"
	Against Category = "against"
	Abstain Category = "abstain"
)

var Categories = []Category{InFavor, Against, Abstain}

// Labels maps each category to the source-language tokens announcing it in
// the transcript. Matching is case-insensitive.
type Labels struct {
	InFavor []string `json:"in-favor"`
	Against []string `json:"against"`
	Abstain []string `json:"abstain"`
}

type Config struct {
	Labels    Labels `json:"labels"`
	Separator string `json:"separator"`
}

// DefaultConfig carries the dutch labels used by De Kamer transcripts,
// including the inflected forms of "onthouding".
func DefaultConfig() Config {
	return Config{
		Labels: Labels{
			InFavor: []string{"voor"},
			Against: []string{"tegen"},
			Abstain: []string{"onthouding", "onthoudingen", "onthouden"},
		},
		Separator: ";",
	}
}

// WithDefaults fills unset fields from DefaultConfig, so a partial config
// file only has to spell out what it overrides.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if len(c.Labels.InFavor) == 0 {
		c.Labels.InFavor = def.Labels.InFavor
	}
	if len(c.Labels.Against) == 0 {
		c.Labels.Against = def.Labels.Against
	}
	if len(c.Labels.Abstain) == 0 {
		c.Labels.Abstain = def.Labels.Abstain
	}
	if c.Separator == "" {
		c.Separator = def.Separator
	}
	return c
}

func (l Labels) forCategory(c Category) []string {
	switch c {
	case InFavor:
		return l.InFavor
	case Against:
		return l.Against
	case Abstain:
		return l.Abstain
	}
	return nil
}

func (l Labels) all() []string {
	var out []string
	for _, c := range Categories {
		out = append(out, l.forCategory(c)...)
	}
	return out
}

// classify maps an exact label token back to its category.
func (l Labels) classify(token string) (Category, bool) {
	token = textutil.NormalizeLabel(token)
	for _, c := range Categories {
		for _, label := range l.forCategory(c) {
			if token == textutil.NormalizeLabel(label) {
				return c, true
			}
		}
	}
	return "", false
}

// matchPrefix classifies a snippet like "Voor (20)" by its leading label.
func (l Labels) matchPrefix(text string) (Category, bool) {
	for _, c := range Categories {
		for _, label := range l.forCategory(c) {
			if textutil.HasLabelPrefix(text, label) {
				return c, true
			}
		}
	}
	return "", false
}
