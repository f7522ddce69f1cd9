package convo

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/kittclouds/foliobot/internal/knowledge"
	"github.com/kittclouds/foliobot/internal/store"
	"github.com/kittclouds/foliobot/pkg/fuzzy"
)

// Topic categories for the tally. First matching category wins per
// message; anything else is "general".
var topicRules = []struct {
	topic   string
	pattern *regexp.Regexp
}{
	{"projects", regexp.MustCompile(`\b(projects?|built|build|app|demo|portfolio)\b`)},
	{"contact", regexp.MustCompile(`\b(contact|email|linkedin|reach|hire)\b`)},
	{"skills", regexp.MustCompile(`\b(skills?|technolog|stack|languages?|tools?)\b`)},
	{"education", regexp.MustCompile(`\b(education|degree|university|school|study)\b`)},
	{"achievements", regexp.MustCompile(`\b(achievements?|awards?|hackathons?|won|prizes?)\b`)},
}

// Summary is the derived per-window rolling summary.
type Summary struct {
	// TopicCounts maps topic -> user-message count within the window.
	TopicCounts map[string]int
	// ProjectsLine, SkillsLine, AchievementsLine are the per-topic
	// one-line syntheses; empty when the topic had no references.
	ProjectsLine     string
	SkillsLine       string
	AchievementsLine string
}

// Summarize computes the summary for a window of messages. Only user turns
// feed the topic tally; the syntheses scan the full window text.
func Summarize(window []*store.Message, kb *knowledge.Base) *Summary {
	sum := &Summary{TopicCounts: make(map[string]int)}

	var userTexts []string
	for _, m := range window {
		if m.Role != RoleUser {
			continue
		}
		userTexts = append(userTexts, m.Content)
		sum.TopicCounts[classifyTopic(m.Content)]++
	}

	joined := strings.ToLower(strings.Join(userTexts, " \n "))

	sum.ProjectsLine = synthesizeProjects(joined, kb)
	sum.SkillsLine = synthesizeSkills(joined, kb)
	sum.AchievementsLine = synthesizeAchievements(joined, kb)

	return sum
}

func classifyTopic(text string) string {
	lower := strings.ToLower(text)
	for _, r := range topicRules {
		if r.pattern.MatchString(lower) {
			return r.topic
		}
	}
	return "general"
}

// RenderTopicCounts renders "topic(count)" pairs sorted by descending
// count, ties broken alphabetically for determinism.
func (s *Summary) RenderTopicCounts() string {
	type pair struct {
		topic string
		count int
	}
	pairs := make([]pair, 0, len(s.TopicCounts))
	for t, c := range s.TopicCounts {
		pairs = append(pairs, pair{t, c})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].topic < pairs[j].topic
	})

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("%s(%d)", p.topic, p.count))
	}
	return strings.Join(parts, " ")
}

// RenderSynthesis joins the non-empty per-topic lines.
func (s *Summary) RenderSynthesis() string {
	var lines []string
	for _, l := range []string{s.ProjectsLine, s.SkillsLine, s.AchievementsLine} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return strings.Join(lines, "\n")
}

// synthesizeProjects names the projects referenced in the window plus
// their most common technologies (top 3 by frequency).
func synthesizeProjects(joined string, kb *knowledge.Base) string {
	var titles []string
	techCounts := make(map[string]int)

	for _, p := range kb.Projects {
		if !fuzzy.ContainsNormalized(joined, p.Title) {
			continue
		}
		titles = append(titles, p.Title)
		for _, t := range knowledge.TechTokens(p.Technologies) {
			techCounts[t]++
		}
	}
	if len(titles) == 0 {
		return ""
	}

	type tc struct {
		tech  string
		count int
	}
	ranked := make([]tc, 0, len(techCounts))
	for t, c := range techCounts {
		ranked = append(ranked, tc{t, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].tech < ranked[j].tech
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	techs := make([]string, 0, len(ranked))
	for _, r := range ranked {
		techs = append(techs, r.tech)
	}

	return fmt.Sprintf("projects: %s (common tech: %s)",
		strings.Join(titles, ", "), strings.Join(techs, ", "))
}

// synthesizeSkills names the knowledge-base technologies textually
// referenced in the window.
func synthesizeSkills(joined string, kb *knowledge.Base) string {
	var hits []string
	for _, t := range kb.Skills.Technologies {
		if fuzzy.ContainsNormalized(joined, t) {
			hits = append(hits, t)
		}
	}
	if len(hits) == 0 {
		return ""
	}
	return "skills: " + strings.Join(hits, ", ")
}

// synthesizeAchievements names the achievements referenced in the window.
func synthesizeAchievements(joined string, kb *knowledge.Base) string {
	var hits []string
	for _, a := range kb.Achievements {
		if fuzzy.ContainsNormalized(joined, a.Title) {
			hits = append(hits, a.Title)
		}
	}
	if len(hits) == 0 {
		return ""
	}
	return "achievements: " + strings.Join(hits, ", ")
}
