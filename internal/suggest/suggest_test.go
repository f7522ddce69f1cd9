package suggest

import (
	"strings"
	"testing"

	"github.com/kittclouds/foliobot/internal/index"
	"github.com/kittclouds/foliobot/internal/intent"
	"github.com/kittclouds/foliobot/internal/knowledge"
)

func TestSuggestEveryIntentHasPrompts(t *testing.T) {
	intents := []intent.Type{
		intent.FAQ, intent.Projects, intent.ProjectDetails, intent.Contact,
		intent.Skills, intent.Database, intent.Education, intent.Achievements,
		intent.AchievementDetails, intent.Resume, intent.Organizations, intent.General,
	}
	for _, it := range intents {
		got := Suggest(it, nil)
		if len(got) < 3 || len(got) > maxSuggestions {
			t.Errorf("Suggest(%s) returned %d prompts, want 3-%d", it, len(got), maxSuggestions)
		}
	}
}

func TestSuggestUnknownIntentFallsBack(t *testing.T) {
	got := Suggest(intent.Type("BOGUS"), nil)
	if len(got) == 0 {
		t.Fatal("unknown intent should fall back to general prompts")
	}
}

func TestSuggestPersonalizesResolvedProject(t *testing.T) {
	item := &index.Item{
		Title: "FinanceWise",
		Kind:  index.KindProject,
		Facts: &index.ProjectFacts{
			Links: knowledge.Links{
				GitHub: "https://github.com/aaravmenon/financewise",
				Live:   "https://financewise.app",
			},
		},
	}

	got := Suggest(intent.ProjectDetails, item)
	if len(got) > maxSuggestions {
		t.Fatalf("got %d suggestions, cap is %d", len(got), maxSuggestions)
	}
	if got[0] != "Open FinanceWise on GitHub" {
		t.Errorf("got[0] = %q", got[0])
	}
	if got[1] != "Try FinanceWise live" {
		t.Errorf("got[1] = %q", got[1])
	}
}

func TestSuggestResolvedWithoutLinks(t *testing.T) {
	item := &index.Item{Title: "Dean's List", Kind: index.KindAchievement}

	got := Suggest(intent.AchievementDetails, item)
	if !strings.Contains(got[0], "Dean's List") {
		t.Errorf("expected a personalized head prompt, got %q", got[0])
	}
}

func TestSuggestResolvedIgnoredForListIntents(t *testing.T) {
	item := &index.Item{Title: "FinanceWise", Kind: index.KindProject}
	got := Suggest(intent.Projects, item)
	for _, s := range got {
		if strings.Contains(s, "FinanceWise") && strings.HasPrefix(s, "More about") {
			t.Errorf("list intents should not personalize: %q", s)
		}
	}
}
