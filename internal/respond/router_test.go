package respond

import (
	"strings"
	"testing"

	"github.com/kittclouds/foliobot/internal/index"
	"github.com/kittclouds/foliobot/internal/intent"
	"github.com/kittclouds/foliobot/internal/knowledge"
	"github.com/kittclouds/foliobot/internal/livepage"
)

func newTestRouter(page livepage.Repository) *Router {
	kb := &knowledge.Default
	ix := index.NewBuilder(kb, page).Build()
	return NewRouter(kb, ix, page, DefaultFinderConfig())
}

func hasOrigin(citations []index.Citation, origin index.Origin) bool {
	for _, c := range citations {
		if c.Origin == origin {
			return true
		}
	}
	return false
}

func TestProjectDetails(t *testing.T) {
	r := newTestRouter(livepage.Empty{})

	resp := r.Route(intent.ProjectDetails, "Tell me about FinanceWise", false)
	if resp.Resolved == nil {
		t.Fatal("expected a resolved project")
	}
	if resp.Resolved.Title != "FinanceWise" {
		t.Errorf("resolved %q, want FinanceWise", resp.Resolved.Title)
	}
	if !strings.Contains(resp.Body, "FinanceWise") {
		t.Error("body should name the project")
	}
	if !strings.Contains(resp.Body, "Tech stack:") {
		t.Error("body should list the tech stack")
	}
	if !strings.Contains(resp.Body, "https://github.com/aaravmenon/financewise") {
		t.Error("body should carry the GitHub link")
	}
	if !hasOrigin(resp.Citations, index.OriginKnowledgeBase) {
		t.Error("expected at least one KnowledgeBase citation")
	}
	if !hasOrigin(resp.Citations, index.OriginRetrievalSection) {
		t.Error("expected the section fallback citation")
	}
}

func TestProjectDetailsMissFallsBackToList(t *testing.T) {
	r := newTestRouter(livepage.Empty{})

	resp := r.Route(intent.ProjectDetails, "tell me about that one thing", false)
	if resp.Resolved != nil {
		t.Fatalf("expected a retrieval miss, resolved %q", resp.Resolved.Title)
	}
	if !strings.Contains(resp.Body, "worth a look") {
		t.Errorf("expected the fallback list, got %q", resp.Body)
	}
	// Section anchor plus the listed projects.
	if len(resp.Citations) < 2 {
		t.Errorf("fallback should cite the section and the listed projects, got %d", len(resp.Citations))
	}
}

func TestProjectDetailsHighlights(t *testing.T) {
	page := &livepage.Fixture{
		Panels: []livepage.DetailPanel{{
			Content: "FinanceWise detail",
			Sections: []livepage.DetailSection{
				{Heading: "Highlights", Items: []string{
					"AI spending insights",
					"Budget forecasting",
					"Shared household ledgers",
				}},
			},
		}},
	}
	r := newTestRouter(page)

	// Highlights always render; brief mode just truncates the list.
	brief := r.Route(intent.ProjectDetails, "open FinanceWise", false)
	if !strings.Contains(brief.Body, "Highlights:") {
		t.Error("brief mode should still include the highlights block")
	}
	if !strings.Contains(brief.Body, "AI spending insights") {
		t.Errorf("missing highlight item in %q", brief.Body)
	}
	if strings.Contains(brief.Body, "Shared household ledgers") {
		t.Error("brief mode should condense the highlight list")
	}

	full := r.Route(intent.ProjectDetails, "open FinanceWise", true)
	if !strings.Contains(full.Body, "Shared household ledgers") {
		t.Errorf("detailed mode should show every highlight, got %q", full.Body)
	}
}

func TestProjectListAIFilter(t *testing.T) {
	r := newTestRouter(livepage.Empty{})

	resp := r.Route(intent.Projects, "show me your AI projects", false)
	if !strings.Contains(resp.Body, "AI and ML projects:") {
		t.Errorf("expected the AI heading, got %q", resp.Body)
	}
	if !strings.Contains(resp.Body, "FinanceWise") {
		t.Error("FinanceWise should pass the AI filter")
	}
	if strings.Contains(resp.Body, "Pantry Pal") {
		t.Error("Pantry Pal should be filtered out of AI listings")
	}
}

func TestProjectListPrefersLiveCards(t *testing.T) {
	page := &livepage.Fixture{
		Projects: []livepage.ProjectCard{
			{Title: "Live Thing", Description: "rendered right now", Selector: ".project-card:nth-child(1)"},
		},
	}
	r := newTestRouter(page)

	resp := r.Route(intent.Projects, "what projects do you have", false)
	if !strings.Contains(resp.Body, "Live Thing") {
		t.Errorf("live cards should drive the listing, got %q", resp.Body)
	}
	if strings.Contains(resp.Body, "StudySphere") {
		t.Error("knowledge-base fallback should not run when live cards exist")
	}
	if !hasOrigin(resp.Citations, index.OriginLivePage) {
		t.Error("expected LivePage citations")
	}
}

func TestContactSingleChannel(t *testing.T) {
	r := newTestRouter(livepage.Empty{})

	resp := r.Route(intent.Contact, "what's your email address?", false)
	if !strings.Contains(resp.Body, "aarav.menon@outlook.com") {
		t.Errorf("expected the email channel, got %q", resp.Body)
	}
	if strings.Contains(resp.Body, "linkedin.com") {
		t.Error("single-channel answer should not dump the whole card")
	}
	if len(resp.Citations) != 1 {
		t.Errorf("expected exactly the channel citation, got %d", len(resp.Citations))
	}
}

func TestContactFullCard(t *testing.T) {
	r := newTestRouter(livepage.Empty{})

	resp := r.Route(intent.Contact, "how do I reach you?", false)
	for _, want := range []string{"Email", "GitHub", "LinkedIn"} {
		if !strings.Contains(resp.Body, want) {
			t.Errorf("full contact card missing %s", want)
		}
	}
}

func TestDatabase(t *testing.T) {
	r := newTestRouter(livepage.Empty{})

	resp := r.Route(intent.Database, "what databases do you use", false)
	for _, want := range []string{"MySQL", "Firebase", "Firestore"} {
		if !strings.Contains(resp.Body, want) {
			t.Errorf("database answer missing %s: %q", want, resp.Body)
		}
	}
	if strings.Contains(resp.Body, "React") {
		t.Error("non-database tech should not appear")
	}
}

func TestSkills(t *testing.T) {
	r := newTestRouter(livepage.Empty{})

	resp := r.Route(intent.Skills, "what's your stack", false)
	if !strings.Contains(resp.Body, "Core skills:") || !strings.Contains(resp.Body, "Technologies:") {
		t.Errorf("skills body malformed: %q", resp.Body)
	}
}

func TestEducation(t *testing.T) {
	r := newTestRouter(livepage.Empty{})

	resp := r.Route(intent.Education, "where did you study", false)
	if !strings.Contains(resp.Body, "University of Toronto") {
		t.Errorf("education body missing institution: %q", resp.Body)
	}
}

func TestResume(t *testing.T) {
	r := newTestRouter(livepage.Empty{})

	resp := r.Route(intent.Resume, "can I see your resume", false)
	if !strings.Contains(resp.Body, knowledge.Default.Contact.Resume) {
		t.Errorf("resume body missing link: %q", resp.Body)
	}
	for _, e := range knowledge.Default.Experience {
		if !strings.Contains(resp.Body, e.Role) || !strings.Contains(resp.Body, e.Company) {
			t.Errorf("resume body missing experience entry %s at %s: %q", e.Role, e.Company, resp.Body)
		}
	}
}

func TestAchievementDetails(t *testing.T) {
	r := newTestRouter(livepage.Empty{})

	resp := r.Route(intent.AchievementDetails, "How did you win Best AI Application at Hack the North 2024?", false)
	if resp.Resolved == nil {
		t.Fatal("expected a resolved achievement")
	}
	if !strings.Contains(resp.Resolved.Title, "Hack the North") {
		t.Errorf("resolved %q", resp.Resolved.Title)
	}
	if !strings.Contains(resp.Body, "FinanceWise") {
		t.Error("achievement body should name the linked project")
	}
}

func TestAchievementDetailsMissFallsBackToSummary(t *testing.T) {
	r := newTestRouter(livepage.Empty{})

	resp := r.Route(intent.AchievementDetails, "something something shiny", false)
	if resp.Resolved != nil {
		t.Fatalf("expected a miss, resolved %q", resp.Resolved.Title)
	}
	if !strings.Contains(resp.Body, "A few highlights:") {
		t.Errorf("expected the achievement summary, got %q", resp.Body)
	}
}

func TestFAQ(t *testing.T) {
	r := newTestRouter(livepage.Empty{})

	site := r.Route(intent.FAQ, "who built this website?", false)
	if !strings.Contains(site.Body, "static page") {
		t.Errorf("expected the site answer, got %q", site.Body)
	}

	bot := r.Route(intent.FAQ, "what are you?", false)
	if !strings.Contains(bot.Body, "assistant for this portfolio") {
		t.Errorf("expected the bot answer, got %q", bot.Body)
	}

	for _, resp := range []Response{site, bot} {
		if len(resp.Citations) == 0 || resp.Citations[0] != r.ix.SectionCitation("skills") {
			t.Errorf("FAQ answers should carry the skills section anchor, got %v", resp.Citations)
		}
	}
}

func TestGeneral(t *testing.T) {
	r := newTestRouter(livepage.Empty{})

	resp := r.Route(intent.General, "hmm", false)
	if resp.Body != knowledge.Default.Profile.Summary {
		t.Errorf("general should answer with the profile summary, got %q", resp.Body)
	}
}

func TestFindProjectThreshold(t *testing.T) {
	r := newTestRouter(livepage.Empty{})

	if it := r.findProject("FinanceWise"); it == nil || it.Title != "FinanceWise" {
		t.Error("exact title should resolve")
	}
	if it := r.findProject("blorp gleep"); it != nil {
		t.Errorf("nonsense should stay under the threshold, got %q", it.Title)
	}
}

func TestDedupLinks(t *testing.T) {
	p := &knowledge.Project{Links: knowledge.Links{GitHub: "https://g", Live: "https://l"}}
	facts := knowledge.Links{GitHub: "https://g", Video: "https://v"}

	links := dedupLinks(facts, p)
	if len(links) != 3 {
		t.Fatalf("expected 3 deduped links, got %d: %v", len(links), links)
	}
	seen := map[string]bool{}
	for _, l := range links {
		if seen[l.url] {
			t.Errorf("duplicate url %s", l.url)
		}
		seen[l.url] = true
	}
}
