// Package extract finds the projects, achievements, and technologies a
// free-text message refers to. A single Aho-Corasick automaton over all
// candidate names serves the substring pass; a token-set Jaccard pass
// catches partial mentions.
package extract

import (
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"

	"github.com/kittclouds/foliobot/internal/knowledge"
	"github.com/kittclouds/foliobot/internal/livepage"
	"github.com/kittclouds/foliobot/pkg/fuzzy"
)

// Category classifies a candidate name.
type Category int

const (
	CategoryProject Category = iota
	CategoryAchievement
	CategoryTechnology
)

// Thresholds holds the per-category Jaccard acceptance floors.
// Technology names are shorter and noisier, so they get the looser value.
type Thresholds struct {
	Project     float64
	Achievement float64
	Technology  float64
}

// DefaultThresholds returns the tuned values. Empirically chosen; override
// only with evidence.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Project:     0.40,
		Achievement: 0.40,
		Technology:  0.35,
	}
}

// Entities is the result of one extraction: normalized, lower-cased,
// deduplicated names per category.
type Entities struct {
	Projects     []string `json:"projects"`
	Achievements []string `json:"achievements"`
	Technologies []string `json:"technologies"`
}

// HasProject reports whether any project entity was extracted.
func (e Entities) HasProject() bool { return len(e.Projects) > 0 }

// HasAchievement reports whether any achievement entity was extracted.
func (e Entities) HasAchievement() bool { return len(e.Achievements) > 0 }

// DatabaseTech returns the extracted technologies that look like database
// systems (mysql, firebase, firestore).
func (e Entities) DatabaseTech() []string {
	var out []string
	for _, t := range e.Technologies {
		if strings.Contains(t, "mysql") || strings.Contains(t, "firebase") || strings.Contains(t, "firestore") {
			out = append(out, t)
		}
	}
	return out
}

type candidate struct {
	norm     string
	tokens   []string
	category Category
}

// Extractor matches candidate names against free text.
type Extractor struct {
	thresholds Thresholds
	candidates []candidate
	ac         ahocorasick.AhoCorasick
	// pattern index in the automaton -> candidate index
	patternToCandidate []int
}

// New compiles an extractor from the knowledge base and the live page.
// Candidate sets: project titles (KB ∪ live cards); achievement titles,
// organizers, and linked project titles; technology tokens (KB skill list ∪
// every project's technology string).
func New(kb *knowledge.Base, page livepage.Repository, thresholds Thresholds) *Extractor {
	ex := &Extractor{thresholds: thresholds}

	add := func(raw string, cat Category) {
		norm := fuzzy.Normalize(raw)
		if norm == "" {
			return
		}
		for _, c := range ex.candidates {
			if c.norm == norm && c.category == cat {
				return
			}
		}
		ex.candidates = append(ex.candidates, candidate{
			norm:     norm,
			tokens:   strings.Fields(norm),
			category: cat,
		})
	}

	for _, p := range kb.Projects {
		add(p.Title, CategoryProject)
		for _, t := range knowledge.TechTokens(p.Technologies) {
			add(t, CategoryTechnology)
		}
	}
	for _, card := range page.ListProjectCards() {
		add(card.Title, CategoryProject)
		for _, t := range knowledge.TechTokens(card.Technologies) {
			add(t, CategoryTechnology)
		}
	}
	for _, a := range kb.Achievements {
		add(a.Title, CategoryAchievement)
		add(a.Organizer, CategoryAchievement)
		if a.ProjectTitle != "" {
			add(a.ProjectTitle, CategoryAchievement)
		}
	}
	for _, t := range kb.Skills.Technologies {
		add(t, CategoryTechnology)
	}

	patterns := make([]string, 0, len(ex.candidates))
	for i, c := range ex.candidates {
		patterns = append(patterns, c.norm)
		ex.patternToCandidate = append(ex.patternToCandidate, i)
	}

	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: false,                     // input is normalized before scanning
		MatchOnlyWholeWords:  false,                     // keep substring semantics
		MatchKind:            ahocorasick.StandardMatch, // required for IterOverlapping
	})
	ex.ac = builder.Build(patterns)

	return ex
}

// Extract runs both passes over text and returns the merged entities.
func (ex *Extractor) Extract(text string) Entities {
	norm := fuzzy.Normalize(text)
	if norm == "" {
		return Entities{}
	}
	inputTokens := strings.Fields(norm)

	matched := make(map[int]bool, 4)

	// Pass 1: substring containment via the automaton. Overlapping so a
	// candidate nested inside a longer one still reports.
	iter := ex.ac.IterOverlapping(norm)
	for {
		m := iter.Next()
		if m == nil {
			break
		}
		idx := ex.patternToCandidate[m.Pattern()]
		matched[idx] = true
	}

	// Pass 2: token-set Jaccard against the per-category threshold.
	for i, c := range ex.candidates {
		if matched[i] {
			continue
		}
		if fuzzy.Jaccard(inputTokens, c.tokens) >= ex.threshold(c.category) {
			matched[i] = true
		}
	}

	// Candidates are deduplicated per category at compile time, so output
	// order follows candidate registration order.
	var out Entities
	for i, c := range ex.candidates {
		if !matched[i] {
			continue
		}
		switch c.category {
		case CategoryProject:
			out.Projects = append(out.Projects, c.norm)
		case CategoryAchievement:
			out.Achievements = append(out.Achievements, c.norm)
		case CategoryTechnology:
			out.Technologies = append(out.Technologies, c.norm)
		}
	}
	return out
}

func (ex *Extractor) threshold(cat Category) float64 {
	switch cat {
	case CategoryProject:
		return ex.thresholds.Project
	case CategoryAchievement:
		return ex.thresholds.Achievement
	default:
		return ex.thresholds.Technology
	}
}
