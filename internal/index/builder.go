package index

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kittclouds/foliobot/internal/knowledge"
	"github.com/kittclouds/foliobot/internal/livepage"
)

// sectionNames are the six synthetic section anchors, in render order.
var sectionNames = []string{
	"projects", "skills", "achievements", "contact", "education", "organizations",
}

// Builder flattens the knowledge base plus the live page into an Index.
type Builder struct {
	kb   *knowledge.Base
	page livepage.Repository
}

// NewBuilder wires a builder. page may be livepage.Empty{} for headless use.
func NewBuilder(kb *knowledge.Base, page livepage.Repository) *Builder {
	return &Builder{kb: kb, page: page}
}

// Build produces the full index. Deterministic given the knowledge base and
// the current page state; per-item parse problems are skipped, never fatal.
func (b *Builder) Build() *Index {
	ix := &Index{Sections: make(map[string]Citation, len(sectionNames))}

	for _, name := range sectionNames {
		ix.Sections[name] = Citation{
			Label:    strings.ToUpper(name[:1]) + name[1:] + " section",
			Section:  name,
			Selector: "#" + name,
			Origin:   OriginRetrievalSection,
		}
	}

	b.addKnowledgeItems(ix)
	b.addLiveItems(ix)

	return ix
}

func (b *Builder) addKnowledgeItems(ix *Index) {
	panels := b.page.DetailPanels()

	for i := range b.kb.Projects {
		p := &b.kb.Projects[i]
		ix.Items = append(ix.Items, Item{
			ID:    newID(),
			Kind:  KindProject,
			Title: p.Title,
			Text:  p.Description,
			Tags:  knowledge.TechTokens(p.Technologies),
			URL:   firstLink(p.Links),
			Citation: Citation{
				Label:   p.Title,
				Href:    firstLink(p.Links),
				Section: "projects",
				Origin:  OriginKnowledgeBase,
			},
			Facts: deriveFacts(p, panels),
		})
	}

	for i := range b.kb.Achievements {
		a := &b.kb.Achievements[i]
		ix.Items = append(ix.Items, Item{
			ID:    newID(),
			Kind:  KindAchievement,
			Title: a.Title,
			Text:  a.Description,
			Tags:  []string{a.Organizer},
			Citation: Citation{
				Label:   a.Title,
				Href:    firstLink(a.Links),
				Section: "achievements",
				Origin:  OriginKnowledgeBase,
			},
		})
	}

	for _, s := range append(append([]string{}, b.kb.Skills.Core...), b.kb.Skills.Technologies...) {
		ix.Items = append(ix.Items, Item{
			ID:    newID(),
			Kind:  KindSkill,
			Title: s,
			Citation: Citation{
				Label:   s,
				Section: "skills",
				Origin:  OriginKnowledgeBase,
			},
		})
	}

	for _, e := range b.kb.Education {
		ix.Items = append(ix.Items, Item{
			ID:    newID(),
			Kind:  KindEducation,
			Title: e.Institution,
			Text:  fmt.Sprintf("%s (%s)", e.Degree, e.Period),
			Citation: Citation{
				Label:   e.Institution,
				Section: "education",
				Origin:  OriginKnowledgeBase,
			},
		})
	}

	for _, o := range b.kb.Organizations {
		ix.Items = append(ix.Items, Item{
			ID:    newID(),
			Kind:  KindOrganization,
			Title: o.Name,
			Text:  o.Role,
			Citation: Citation{
				Label:   o.Name,
				Section: "organizations",
				Origin:  OriginKnowledgeBase,
			},
		})
	}

	for _, ch := range []struct{ name, value string }{
		{"Email", b.kb.Contact.Email},
		{"GitHub", b.kb.Contact.GitHub},
		{"LinkedIn", b.kb.Contact.LinkedIn},
		{"Resume", b.kb.Contact.Resume},
	} {
		if ch.value == "" {
			continue
		}
		ix.Items = append(ix.Items, Item{
			ID:    newID(),
			Kind:  KindContact,
			Title: ch.name,
			Text:  ch.value,
			URL:   ch.value,
			Citation: Citation{
				Label:   ch.name,
				Href:    ch.value,
				Section: "contact",
				Origin:  OriginKnowledgeBase,
			},
		})
	}
}

// addLiveItems duplicates project/achievement kinds on purpose: live cards
// may carry runtime-only titles that are not in the knowledge base.
func (b *Builder) addLiveItems(ix *Index) {
	for _, card := range b.page.ListProjectCards() {
		if card.Title == "" {
			continue
		}
		ix.Items = append(ix.Items, Item{
			ID:    newID(),
			Kind:  KindProject,
			Title: card.Title,
			Text:  card.Description,
			Tags:  knowledge.TechTokens(card.Technologies),
			URL:   card.LiveURL,
			Citation: Citation{
				Label:    card.Title,
				Href:     card.LiveURL,
				Section:  "projects",
				Selector: card.Selector,
				Origin:   OriginLivePage,
			},
			Facts: &ProjectFacts{
				Tech: knowledge.TechTokens(card.Technologies),
				Links: knowledge.Links{
					GitHub: card.GitHubURL,
					Live:   card.LiveURL,
				},
				Highlights: panelHighlights(card.Title, b.page.DetailPanels()),
			},
		})
	}

	for _, card := range b.page.ListAchievementCards() {
		if card.Title == "" {
			continue
		}
		ix.Items = append(ix.Items, Item{
			ID:    newID(),
			Kind:  KindAchievement,
			Title: card.Title,
			Text:  card.Organizer,
			Citation: Citation{
				Label:    card.Title,
				Section:  "achievements",
				Selector: card.Selector,
				Origin:   OriginLivePage,
			},
		})
	}
}

// deriveFacts builds ProjectFacts for a knowledge-base project, pulling
// highlights from the live detail panel that belongs to the same title.
func deriveFacts(p *knowledge.Project, panels []livepage.DetailPanel) *ProjectFacts {
	return &ProjectFacts{
		Tech:       knowledge.TechTokens(p.Technologies),
		Links:      p.Links,
		Highlights: panelHighlights(p.Title, panels),
	}
}

// panelHighlights finds the panel whose content contains the title
// (case-insensitive), then collects list items following a "highlights" or
// "features" heading. The highlight region stops at a "tech stack" heading.
func panelHighlights(title string, panels []livepage.DetailPanel) []string {
	lower := strings.ToLower(title)
	for _, panel := range panels {
		if !strings.Contains(strings.ToLower(panel.Content), lower) {
			continue
		}

		var out []string
		collecting := false
		for _, sec := range panel.Sections {
			h := strings.ToLower(sec.Heading)
			switch {
			case strings.Contains(h, "highlight"), strings.Contains(h, "feature"):
				collecting = true
			case strings.Contains(h, "tech stack"):
				collecting = false
			}
			if collecting {
				out = append(out, sec.Items...)
			}
		}
		return out
	}
	return nil
}

func firstLink(l knowledge.Links) string {
	switch {
	case l.Live != "":
		return l.Live
	case l.GitHub != "":
		return l.GitHub
	case l.Video != "":
		return l.Video
	case l.Codedex != "":
		return l.Codedex
	}
	return ""
}

func newID() string {
	return uuid.NewString()
}
