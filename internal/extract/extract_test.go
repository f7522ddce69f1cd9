package extract

import (
	"testing"

	"github.com/kittclouds/foliobot/internal/knowledge"
	"github.com/kittclouds/foliobot/internal/livepage"
)

func newTestExtractor() *Extractor {
	return New(&knowledge.Default, livepage.Empty{}, DefaultThresholds())
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func TestExtractProjectByExactMention(t *testing.T) {
	ex := newTestExtractor()
	ents := ex.Extract("Tell me about FinanceWise")
	if !contains(ents.Projects, "financewise") {
		t.Errorf("expected project financewise, got %v", ents.Projects)
	}
	if !ents.HasProject() {
		t.Error("HasProject should be true")
	}
}

func TestExtractIsCaseAndPunctuationInsensitive(t *testing.T) {
	ex := newTestExtractor()
	ents := ex.Extract("what is FINANCEWISE?!")
	if !contains(ents.Projects, "financewise") {
		t.Errorf("expected project financewise, got %v", ents.Projects)
	}
}

func TestExtractProjectByTokenOverlap(t *testing.T) {
	ex := newTestExtractor()
	// Reversed word order defeats the substring pass; the Jaccard pass
	// still matches the two-token title.
	ents := ex.Extract("pal pantry")
	if !contains(ents.Projects, "pantry pal") {
		t.Errorf("expected project pantry pal via token overlap, got %v", ents.Projects)
	}
}

func TestExtractBelowThresholdIsDropped(t *testing.T) {
	ex := newTestExtractor()
	// One shared token out of three total stays under the 0.40 floor.
	ents := ex.Extract("pantry shelf organizer")
	if contains(ents.Projects, "pantry pal") {
		t.Errorf("one-token overlap should stay below the project threshold, got %v", ents.Projects)
	}
}

func TestExtractTechnology(t *testing.T) {
	ex := newTestExtractor()
	ents := ex.Extract("Do you have experience with MySQL and React?")
	if !contains(ents.Technologies, "mysql") {
		t.Errorf("expected technology mysql, got %v", ents.Technologies)
	}
	if !contains(ents.Technologies, "react") {
		t.Errorf("expected technology react, got %v", ents.Technologies)
	}

	db := ents.DatabaseTech()
	if !contains(db, "mysql") {
		t.Errorf("expected mysql in DatabaseTech, got %v", db)
	}
	if contains(db, "react") {
		t.Errorf("react is not a database, got %v", db)
	}
}

func TestExtractAchievementByOrganizer(t *testing.T) {
	ex := newTestExtractor()
	ents := ex.Extract("How did Hack the North go?")
	if !ents.HasAchievement() {
		t.Fatalf("expected an achievement entity, got %v", ents.Achievements)
	}
	if !contains(ents.Achievements, "hack the north") {
		t.Errorf("expected organizer match, got %v", ents.Achievements)
	}
}

func TestExtractLinkedProjectTitleCountsAsAchievement(t *testing.T) {
	ex := newTestExtractor()
	ents := ex.Extract("What award did FinanceWise win?")
	if !contains(ents.Achievements, "financewise") {
		t.Errorf("linked project titles should register as achievement cues, got %v", ents.Achievements)
	}
}

func TestExtractLivePageCandidates(t *testing.T) {
	page := &livepage.Fixture{
		Projects: []livepage.ProjectCard{
			{Title: "Shadow Project", Technologies: "Rust, WebAssembly"},
		},
	}
	ex := New(&knowledge.Default, page, DefaultThresholds())

	ents := ex.Extract("is the shadow project open source?")
	if !contains(ents.Projects, "shadow project") {
		t.Errorf("live-page card titles should be candidates, got %v", ents.Projects)
	}
	ents = ex.Extract("any Rust code here?")
	if !contains(ents.Technologies, "rust") {
		t.Errorf("live-page tech tokens should be candidates, got %v", ents.Technologies)
	}
}

func TestExtractNestedCandidate(t *testing.T) {
	// "firebase" sits inside "firebase chat"; the shorter candidate must
	// still report when the longer one matches.
	page := &livepage.Fixture{
		Projects: []livepage.ProjectCard{
			{Title: "Firebase Chat", Technologies: "Firebase, React"},
		},
	}
	ex := New(&knowledge.Default, page, DefaultThresholds())

	ents := ex.Extract("open firebase chat")
	if !contains(ents.Projects, "firebase chat") {
		t.Errorf("expected the project title, got %v", ents.Projects)
	}
	if !contains(ents.Technologies, "firebase") {
		t.Errorf("expected the nested technology, got %v", ents.Technologies)
	}
	if len(ents.DatabaseTech()) == 0 {
		t.Errorf("firebase should register as a database technology, got %v", ents.Technologies)
	}
}

func TestExtractNothing(t *testing.T) {
	ex := newTestExtractor()
	for _, in := range []string{"", "   ", "zzz qqq xyzzy", "!!!"} {
		ents := ex.Extract(in)
		if ents.HasProject() || ents.HasAchievement() || len(ents.Technologies) > 0 {
			t.Errorf("Extract(%q) should find nothing, got %+v", in, ents)
		}
	}
}

func TestExtractDeduplicates(t *testing.T) {
	ex := newTestExtractor()
	ents := ex.Extract("FinanceWise FinanceWise financewise")
	count := 0
	for _, p := range ents.Projects {
		if p == "financewise" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("repeated mentions should yield one entity, got %d", count)
	}
}
