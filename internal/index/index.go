// Package index builds the unified retrieval index: the knowledge base and
// the live page flattened into one list of items, each carrying a
// provenance citation. Built once per page load, read-only afterwards.
package index

import (
	"strings"

	"github.com/kittclouds/foliobot/internal/knowledge"
)

// Kind classifies what an indexed item represents.
type Kind string

const (
	KindProject      Kind = "project"
	KindAchievement  Kind = "achievement"
	KindSkill        Kind = "skill"
	KindContact      Kind = "contact"
	KindEducation    Kind = "education"
	KindOrganization Kind = "organization"
)

// Origin records where an item's data actually came from.
type Origin string

const (
	// OriginKnowledgeBase marks data from the compiled-in knowledge base.
	OriginKnowledgeBase Origin = "KnowledgeBase"
	// OriginLivePage marks data parsed out of currently rendered markup.
	OriginLivePage Origin = "LivePage"
	// OriginRetrievalSection marks a synthetic section-level anchor that
	// exists only to serve as a fallback citation.
	OriginRetrievalSection Origin = "RetrievalSection"
)

// Citation is the provenance record attached to response fragments.
type Citation struct {
	Label    string `json:"label"`
	Href     string `json:"href,omitempty"`
	Section  string `json:"section,omitempty"`
	Selector string `json:"selector,omitempty"`
	Origin   Origin `json:"origin"`
}

// ProjectFacts is derived per project entry at build time.
type ProjectFacts struct {
	Tech       []string        `json:"tech,omitempty"`
	Links      knowledge.Links `json:"links,omitempty"`
	Highlights []string        `json:"highlights,omitempty"`
}

// Item is one retrievable entry in the unified index.
type Item struct {
	ID       string        `json:"id"`
	Kind     Kind          `json:"kind"`
	Title    string        `json:"title"`
	Text     string        `json:"text,omitempty"`
	Tags     []string      `json:"tags,omitempty"`
	URL      string        `json:"url,omitempty"`
	Citation Citation      `json:"citation"`
	Facts    *ProjectFacts `json:"facts,omitempty"`
}

// Index is the built collection plus the section anchors.
type Index struct {
	Items    []Item
	Sections map[string]Citation // section name -> fallback citation
}

// ItemsOfKind returns the items of one kind in build order.
func (ix *Index) ItemsOfKind(kind Kind) []Item {
	var out []Item
	for _, it := range ix.Items {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	return out
}

// FindByTitle returns the first item of the given kind whose title matches,
// preferring KnowledgeBase origin over LivePage when both carry the title.
func (ix *Index) FindByTitle(kind Kind, title string) *Item {
	var live *Item
	for i := range ix.Items {
		it := &ix.Items[i]
		if it.Kind != kind || !strings.EqualFold(it.Title, title) {
			continue
		}
		if it.Citation.Origin == OriginKnowledgeBase {
			return it
		}
		if live == nil {
			live = it
		}
	}
	return live
}

// SectionCitation returns the synthetic fallback citation for a section
// name, or a zero Citation when the section is unknown.
func (ix *Index) SectionCitation(name string) Citation {
	if c, ok := ix.Sections[name]; ok {
		return c
	}
	return Citation{}
}
