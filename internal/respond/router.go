// Package respond maps a classified intent plus the raw utterance to a
// composed response body and its source citations. Composition reads the
// unified index and the knowledge base; it never mutates either.
package respond

import (
	"fmt"
	"strings"

	"github.com/kittclouds/foliobot/internal/index"
	"github.com/kittclouds/foliobot/internal/intent"
	"github.com/kittclouds/foliobot/internal/knowledge"
	"github.com/kittclouds/foliobot/internal/livepage"
)

// Response is one composed answer.
type Response struct {
	Body      string           `json:"body"`
	Citations []index.Citation `json:"citations"`
	// Resolved is set when a details intent matched one specific item;
	// the suggestion generator uses it to personalize follow-ups.
	Resolved *index.Item `json:"-"`
}

// Router composes responses.
type Router struct {
	kb   *knowledge.Base
	ix   *index.Index
	page livepage.Repository
	cfg  FinderConfig
}

// NewRouter wires a router over an already-built index.
func NewRouter(kb *knowledge.Base, ix *index.Index, page livepage.Repository, cfg FinderConfig) *Router {
	return &Router{kb: kb, ix: ix, page: page, cfg: cfg}
}

// Route dispatches on intent. detailed expands long-form sections when the
// user prefers full answers.
func (r *Router) Route(t intent.Type, text string, detailed bool) Response {
	switch t {
	case intent.ProjectDetails:
		return r.projectDetails(text, detailed)
	case intent.Projects:
		return r.projectList(text)
	case intent.Contact:
		return r.contact(text)
	case intent.Skills:
		return r.skills()
	case intent.Database:
		return r.database()
	case intent.Education:
		return r.education()
	case intent.Organizations:
		return r.organizations()
	case intent.Resume:
		return r.resume()
	case intent.AchievementDetails:
		return r.achievementDetails(text, detailed)
	case intent.Achievements:
		return r.achievementSummary()
	case intent.FAQ:
		return r.faq(text)
	default:
		return r.general()
	}
}

func (r *Router) projectDetails(text string, detailed bool) Response {
	item := r.findProject(text)
	if item == nil {
		// Retrieval miss: not an error, fall back to the top-3 list.
		return r.fallbackProjectList()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s", item.Title)
	if p := r.kb.ProjectByTitle(item.Title); p != nil && p.Category != "" {
		fmt.Fprintf(&b, " (%s)", p.Category)
	}
	b.WriteString("\n")
	if item.Text != "" {
		b.WriteString(item.Text + "\n")
	}

	if item.Facts != nil {
		if len(item.Facts.Tech) > 0 {
			fmt.Fprintf(&b, "Tech stack: %s\n", strings.Join(item.Facts.Tech, ", "))
		}
		for _, link := range dedupLinks(item.Facts.Links, r.kb.ProjectByTitle(item.Title)) {
			fmt.Fprintf(&b, "%s: %s\n", link.name, link.url)
		}
		if len(item.Facts.Highlights) > 0 {
			// Condensed mode keeps the list short; detail mode shows it all.
			hl := item.Facts.Highlights
			if !detailed && len(hl) > 2 {
				hl = hl[:2]
			}
			b.WriteString("Highlights:\n")
			for _, h := range hl {
				fmt.Fprintf(&b, "  - %s\n", h)
			}
		}
	}

	return Response{
		Body:      strings.TrimRight(b.String(), "\n"),
		Citations: []index.Citation{r.ix.SectionCitation("projects"), item.Citation},
		Resolved:  item,
	}
}

func (r *Router) fallbackProjectList() Response {
	items := r.topProjects(3)
	var b strings.Builder
	b.WriteString("I couldn't pin down one project from that — here are a few worth a look:\n")
	citations := []index.Citation{r.ix.SectionCitation("projects")}
	for _, it := range items {
		fmt.Fprintf(&b, "  - %s: %s\n", it.Title, it.Text)
		citations = append(citations, it.Citation)
	}
	return Response{Body: strings.TrimRight(b.String(), "\n"), Citations: citations}
}

func (r *Router) projectList(text string) Response {
	wantAI := mentionsAI(text)

	var items []*index.Item
	for i := range r.ix.Items {
		it := &r.ix.Items[i]
		if it.Kind != index.KindProject || it.Citation.Origin != index.OriginLivePage {
			continue
		}
		if wantAI && !mentionsAI(it.Title+" "+it.Text+" "+strings.Join(it.Tags, " ")) {
			continue
		}
		items = append(items, it)
	}

	// Live page yielded nothing: list from the knowledge base instead.
	if len(items) == 0 {
		for i := range r.ix.Items {
			it := &r.ix.Items[i]
			if it.Kind == index.KindProject && it.Citation.Origin == index.OriginKnowledgeBase {
				if wantAI && !mentionsAI(it.Title+" "+it.Text+" "+strings.Join(it.Tags, " ")) {
					continue
				}
				items = append(items, it)
			}
		}
	}

	if len(items) == 0 {
		return r.fallbackProjectList()
	}
	rankBySimilarity(items, text)

	var b strings.Builder
	if wantAI {
		b.WriteString("AI and ML projects:\n")
	} else {
		b.WriteString("Projects:\n")
	}
	citations := []index.Citation{r.ix.SectionCitation("projects")}
	for _, it := range items {
		fmt.Fprintf(&b, "  - %s", it.Title)
		if it.Text != "" {
			fmt.Fprintf(&b, " — %s", it.Text)
		}
		b.WriteString("\n")
		citations = append(citations, it.Citation)
	}
	return Response{Body: strings.TrimRight(b.String(), "\n"), Citations: citations}
}

// channelCues single out one contact channel from the utterance.
var channelCues = []struct {
	cue   string
	title string
}{
	{"email", "Email"},
	{"mail", "Email"},
	{"github", "GitHub"},
	{"linkedin", "LinkedIn"},
	{"resume", "Resume"},
	{"cv", "Resume"},
}

func (r *Router) contact(text string) Response {
	lower := strings.ToLower(text)
	for _, ch := range channelCues {
		if !strings.Contains(lower, ch.cue) {
			continue
		}
		if it := r.ix.FindByTitle(index.KindContact, ch.title); it != nil {
			return Response{
				Body:      fmt.Sprintf("%s: %s", it.Title, it.Text),
				Citations: []index.Citation{it.Citation},
			}
		}
	}

	// No single channel singled out: full contact card.
	var b strings.Builder
	b.WriteString("You can reach " + r.kb.Profile.Name + " here:\n")
	citations := []index.Citation{r.ix.SectionCitation("contact")}
	for _, it := range r.ix.ItemsOfKind(index.KindContact) {
		fmt.Fprintf(&b, "  - %s: %s\n", it.Title, it.Text)
		citations = append(citations, it.Citation)
	}
	return Response{Body: strings.TrimRight(b.String(), "\n"), Citations: citations}
}

func (r *Router) skills() Response {
	var b strings.Builder
	b.WriteString("Core skills: " + strings.Join(r.kb.Skills.Core, ", ") + "\n")
	b.WriteString("Technologies: " + strings.Join(r.kb.Skills.Technologies, ", "))
	return Response{
		Body:      b.String(),
		Citations: []index.Citation{r.ix.SectionCitation("skills")},
	}
}

func (r *Router) database() Response {
	var dbs []string
	for _, t := range r.kb.Skills.Technologies {
		lt := strings.ToLower(t)
		if strings.Contains(lt, "sql") || strings.Contains(lt, "firebase") || strings.Contains(lt, "firestore") {
			dbs = append(dbs, t)
		}
	}
	body := "Databases used across projects: " + strings.Join(dbs, ", ") + "."
	return Response{
		Body:      body,
		Citations: []index.Citation{r.ix.SectionCitation("skills")},
	}
}

func (r *Router) education() Response {
	var b strings.Builder
	b.WriteString("Education:\n")
	citations := []index.Citation{r.ix.SectionCitation("education")}
	for _, it := range r.ix.ItemsOfKind(index.KindEducation) {
		fmt.Fprintf(&b, "  - %s — %s\n", it.Title, it.Text)
		citations = append(citations, it.Citation)
	}
	return Response{Body: strings.TrimRight(b.String(), "\n"), Citations: citations}
}

func (r *Router) organizations() Response {
	var b strings.Builder
	b.WriteString("Organizations:\n")
	citations := []index.Citation{r.ix.SectionCitation("organizations")}
	for _, it := range r.ix.ItemsOfKind(index.KindOrganization) {
		fmt.Fprintf(&b, "  - %s (%s)\n", it.Title, it.Text)
		citations = append(citations, it.Citation)
	}
	return Response{Body: strings.TrimRight(b.String(), "\n"), Citations: citations}
}

func (r *Router) resume() Response {
	var b strings.Builder
	b.WriteString("You can grab the resume here: " + r.kb.Contact.Resume)
	if len(r.kb.Experience) > 0 {
		b.WriteString("\nRecent experience:\n")
		for _, e := range r.kb.Experience {
			fmt.Fprintf(&b, "  - %s, %s (%s)\n", e.Role, e.Company, e.Period)
		}
	}

	citations := []index.Citation{r.ix.SectionCitation("contact")}
	if it := r.ix.FindByTitle(index.KindContact, "Resume"); it != nil {
		citations = append(citations, it.Citation)
	}
	return Response{Body: strings.TrimRight(b.String(), "\n"), Citations: citations}
}

func (r *Router) achievementDetails(text string, detailed bool) Response {
	item := r.findAchievement(text)
	if item == nil {
		return r.achievementSummary()
	}

	var b strings.Builder
	b.WriteString(item.Title + "\n")
	if a := r.kb.AchievementByTitle(item.Title); a != nil {
		fmt.Fprintf(&b, "%s — %s, %s\n", a.Organizer, a.Date, a.Location)
		if a.Description != "" {
			b.WriteString(a.Description + "\n")
		}
		if a.ProjectTitle != "" {
			fmt.Fprintf(&b, "Project: %s\n", a.ProjectTitle)
		}
		if detailed && len(a.Teammates) > 0 {
			fmt.Fprintf(&b, "Team: %s\n", strings.Join(a.Teammates, ", "))
		}
	} else if item.Text != "" {
		b.WriteString(item.Text + "\n")
	}

	return Response{
		Body:      strings.TrimRight(b.String(), "\n"),
		Citations: []index.Citation{r.ix.SectionCitation("achievements"), item.Citation},
		Resolved:  item,
	}
}

func (r *Router) achievementSummary() Response {
	items := r.topAchievements(3)
	var b strings.Builder
	b.WriteString("A few highlights:\n")
	citations := []index.Citation{r.ix.SectionCitation("achievements")}
	for _, it := range items {
		fmt.Fprintf(&b, "  - %s — %s\n", it.Title, it.Text)
		citations = append(citations, it.Citation)
	}
	return Response{Body: strings.TrimRight(b.String(), "\n"), Citations: citations}
}

const (
	faqSiteBody = "This site is a hand-built static page — the galleries and animations are plain web tech, and this assistant runs locally in your browser against a small knowledge base, with an optional AI fallback for open-ended questions."
	faqBotBody  = "I'm a small digital assistant for this portfolio. I answer questions about projects, skills, achievements, education, and how to get in touch."
)

func (r *Router) faq(text string) Response {
	lower := strings.ToLower(text)
	body := faqBotBody
	if strings.Contains(lower, "site") || strings.Contains(lower, "website") || strings.Contains(lower, "built") || strings.Contains(lower, "made") {
		body = faqSiteBody
	}
	// Both answers describe what the site and bot are built with, so the
	// skills section is the anchor.
	return Response{Body: body, Citations: []index.Citation{r.ix.SectionCitation("skills")}}
}

func (r *Router) general() Response {
	return Response{Body: r.kb.Profile.Summary}
}

type namedLink struct {
	name string
	url  string
}

// dedupLinks merges explicit project links with derived facts links,
// keeping first occurrence per URL.
func dedupLinks(facts knowledge.Links, p *knowledge.Project) []namedLink {
	var all []namedLink
	push := func(name, url string) {
		if url == "" {
			return
		}
		for _, l := range all {
			if l.url == url {
				return
			}
		}
		all = append(all, namedLink{name, url})
	}

	if p != nil {
		push("GitHub", p.Links.GitHub)
		push("Live", p.Links.Live)
		push("Video", p.Links.Video)
		push("Codedex", p.Links.Codedex)
	}
	push("GitHub", facts.GitHub)
	push("Live", facts.Live)
	push("Video", facts.Video)
	push("Codedex", facts.Codedex)
	return all
}
