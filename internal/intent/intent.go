// Package intent scores a fixed taxonomy of intents against an utterance
// and its extracted entities. The keyword rules are data, not control flow:
// a single table evaluated uniformly, so the rule set is testable and
// extensible without touching the classifier.
package intent

import (
	"regexp"
	"sort"
	"strings"

	"github.com/kittclouds/foliobot/internal/extract"
)

// Type is one classified purpose of an utterance.
type Type string

const (
	FAQ                Type = "FAQ"
	Projects           Type = "PROJECTS"
	ProjectDetails     Type = "PROJECT_DETAILS"
	Contact            Type = "CONTACT"
	Skills             Type = "SKILLS"
	Database           Type = "DATABASE"
	Education          Type = "EDUCATION"
	Achievements       Type = "ACHIEVEMENTS"
	AchievementDetails Type = "ACHIEVEMENT_DETAILS"
	Resume             Type = "RESUME"
	Organizations      Type = "ORGANIZATIONS"
	General            Type = "GENERAL"
)

// Rule bumps one intent's score when its pattern matches the lower-cased
// input. Patterns are word-boundary anchored.
type Rule struct {
	Intent  Type
	Pattern *regexp.Regexp
	Weight  float64
}

// Keyword rule table. Weights: +2 for direct topic words, +1 for weaker cues.
var rules = []Rule{
	{Projects, regexp.MustCompile(`\b(projects?|portfolio|built|build|apps?|work)\b`), 2},
	{Projects, regexp.MustCompile(`\b(search|find|look(ing)? for)\b`), 1},
	{ProjectDetails, regexp.MustCompile(`\b(links?|demo|repo|github|source|code|video)\b`), 1},
	{Contact, regexp.MustCompile(`\b(contact|email|e-mail|reach|linkedin|hire|connect)\b`), 2},
	{Skills, regexp.MustCompile(`\b(skills?|technolog(y|ies)|stack|languages?|tools?|frameworks?)\b`), 2},
	{Database, regexp.MustCompile(`\b(databases?|sql|storage|schema)\b`), 2},
	{Education, regexp.MustCompile(`\b(education|degree|university|college|school|study|studied|courses?)\b`), 2},
	{Achievements, regexp.MustCompile(`\b(achievements?|awards?|hackathons?|won|winner|prizes?|competitions?)\b`), 2},
	{Resume, regexp.MustCompile(`\b(resume|cv|curriculum vitae)\b`), 2},
	{Organizations, regexp.MustCompile(`\b(organizations?|clubs?|societ(y|ies)|communit(y|ies)|volunteer)\b`), 2},
	{FAQ, regexp.MustCompile(`\b(who are you|what are you|how (do|does) (you|this|it) work|this (site|website|chatbot)|assistant)\b`), 2},
}

// detailCue marks "open/tell me about"-style phrasing that, combined with a
// matching entity, signals a details intent.
var detailCue = regexp.MustCompile(`\b(open|details?|more about|tell me about|show me|explain)\b`)

// Entity and cue boost weights.
const (
	entityDirectBoost  = 4.0 // project entity -> PROJECT_DETAILS, achievement -> ACHIEVEMENT_DETAILS
	entityListBoost    = 1.0 // ...and +1 to the matching list intent
	databaseTechBoost  = 2.0 // database-like technology -> DATABASE
	databaseSkillBoost = 1.0
	detailCueBoost     = 2.0
	minCredibleScore   = 1.0 // below this the signal is noise; answer GENERAL
	tieBreakMargin     = 1.0 // top two within this margin are "close"
)

// Classifier is stateless; it exists so the rule table can be swapped in
// tests.
type Classifier struct {
	rules []Rule
}

// NewClassifier returns a classifier over the default rule table.
func NewClassifier() *Classifier {
	return &Classifier{rules: rules}
}

// Classify returns the single top intent for the input.
// Deterministic, no external calls.
func (c *Classifier) Classify(text string, entities extract.Entities) Type {
	lower := strings.ToLower(text)

	scores := map[Type]float64{}

	for _, r := range c.rules {
		if r.Pattern.MatchString(lower) {
			scores[r.Intent] += r.Weight
		}
	}

	if entities.HasProject() {
		scores[ProjectDetails] += entityDirectBoost
		scores[Projects] += entityListBoost
		if detailCue.MatchString(lower) {
			scores[ProjectDetails] += detailCueBoost
		}
	}
	if entities.HasAchievement() {
		scores[AchievementDetails] += entityDirectBoost
		scores[Achievements] += entityListBoost
		if detailCue.MatchString(lower) {
			scores[AchievementDetails] += detailCueBoost
		}
	}
	if len(entities.DatabaseTech()) > 0 {
		scores[Database] += databaseTechBoost
		scores[Skills] += databaseSkillBoost
	}

	ranked := rank(scores)
	if len(ranked) == 0 || ranked[0].score < minCredibleScore {
		return General
	}

	top := ranked[0]
	if len(ranked) > 1 && top.score-ranked[1].score <= tieBreakMargin {
		if t, ok := breakTie(top.intent, ranked[1].intent, entities); ok {
			return t
		}
	}
	return top.intent
}

type scored struct {
	intent Type
	score  float64
}

func rank(scores map[Type]float64) []scored {
	out := make([]scored, 0, len(scores))
	for t, s := range scores {
		if s > 0 {
			out = append(out, scored{t, s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		// Stable order for equal scores so classification is deterministic.
		return out[i].intent < out[j].intent
	})
	return out
}

// breakTie prefers the more specific intent when the top two are close.
// The pair may arrive in either score order.
func breakTie(a, b Type, entities extract.Entities) (Type, bool) {
	pair := func(x, y Type) bool { return (a == x && b == y) || (a == y && b == x) }

	switch {
	case pair(ProjectDetails, Projects) && entities.HasProject():
		return ProjectDetails, true
	case pair(AchievementDetails, Achievements) && entities.HasAchievement():
		return AchievementDetails, true
	case pair(Database, Skills) && len(entities.DatabaseTech()) > 0:
		return Database, true
	}
	return General, false
}
