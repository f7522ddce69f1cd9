package respond

import (
	"regexp"
	"sort"
	"strings"

	"github.com/kittclouds/foliobot/internal/index"
	"github.com/kittclouds/foliobot/pkg/fuzzy"
)

// FinderConfig holds the composite-score weights for both finders.
// Values are empirically tuned; they are constants with names, not magic
// arithmetic, so the thresholds stay unit-testable.
type FinderConfig struct {
	// Project finder
	TitleJaccardWeight float64 // token overlap between query and title
	FuzzyTitleWeight   float64 // fuzzy.Similarity of query vs title
	SubstringBonus     float64 // literal title-in-query containment
	TechDescWeight     float64 // token overlap with technologies + description
	AICueBonus         float64 // both query and project mention AI/agent/ML terms

	// Achievement finder
	AchTitleWeight    float64
	AchProjectWeight  float64
	AchDescWeight     float64
	AchSubstringBonus float64

	// AcceptThreshold gates both finders: below it, a match is a retrieval
	// miss and the caller falls back to a summary list.
	AcceptThreshold float64
}

// DefaultFinderConfig returns the tuned weights.
func DefaultFinderConfig() FinderConfig {
	return FinderConfig{
		TitleJaccardWeight: 5.0,
		FuzzyTitleWeight:   2.0,
		SubstringBonus:     3.0,
		TechDescWeight:     1.0,
		AICueBonus:         2.5,

		AchTitleWeight:    4.0,
		AchProjectWeight:  2.0,
		AchDescWeight:     1.5,
		AchSubstringBonus: 2.5,

		AcceptThreshold: 2.0,
	}
}

var aiCue = regexp.MustCompile(`\b(ai|a\.i\.|agents?|agentic|ml|machine learning|llms?|neural|vision)\b`)

// mentionsAI reports whether the text carries an AI/agent/ML cue.
func mentionsAI(text string) bool {
	return aiCue.MatchString(strings.ToLower(text))
}

type match struct {
	item  *index.Item
	score float64
}

// findProject scores every project item against the query and returns the
// best one, or nil when nothing clears the acceptance threshold.
func (r *Router) findProject(query string) *index.Item {
	queryTokens := fuzzy.Tokens(query)
	queryNorm := fuzzy.Normalize(query)
	queryAI := mentionsAI(query)

	var best match
	for i := range r.ix.Items {
		it := &r.ix.Items[i]
		if it.Kind != index.KindProject {
			continue
		}

		titleTokens := fuzzy.Tokens(it.Title)
		score := r.cfg.TitleJaccardWeight * fuzzy.Jaccard(queryTokens, titleTokens)
		score += r.cfg.FuzzyTitleWeight * fuzzy.Similarity(query, it.Title)

		if norm := fuzzy.Normalize(it.Title); norm != "" && strings.Contains(queryNorm, norm) {
			score += r.cfg.SubstringBonus
		}

		body := it.Text
		if it.Facts != nil {
			body += " " + strings.Join(it.Facts.Tech, " ")
		}
		score += r.cfg.TechDescWeight * fuzzy.Jaccard(queryTokens, fuzzy.Tokens(body))

		if queryAI && mentionsAI(it.Title+" "+body) {
			score += r.cfg.AICueBonus
		}

		if score > best.score {
			best = match{item: it, score: score}
		}
	}

	if best.score < r.cfg.AcceptThreshold {
		return nil
	}
	return best.item
}

// findAchievement mirrors findProject for achievement items, weighting
// title, linked project title, and description.
func (r *Router) findAchievement(query string) *index.Item {
	queryTokens := fuzzy.Tokens(query)
	queryNorm := fuzzy.Normalize(query)

	var best match
	for i := range r.ix.Items {
		it := &r.ix.Items[i]
		if it.Kind != index.KindAchievement {
			continue
		}

		score := r.cfg.AchTitleWeight * fuzzy.Jaccard(queryTokens, fuzzy.Tokens(it.Title))

		if a := r.kb.AchievementByTitle(it.Title); a != nil && a.ProjectTitle != "" {
			score += r.cfg.AchProjectWeight * fuzzy.Jaccard(queryTokens, fuzzy.Tokens(a.ProjectTitle))
		}
		score += r.cfg.AchDescWeight * fuzzy.Jaccard(queryTokens, fuzzy.Tokens(it.Text))

		if norm := fuzzy.Normalize(it.Title); norm != "" && strings.Contains(queryNorm, norm) {
			score += r.cfg.AchSubstringBonus
		}

		if score > best.score {
			best = match{item: it, score: score}
		}
	}

	if best.score < r.cfg.AcceptThreshold {
		return nil
	}
	return best.item
}

// topProjects returns up to n knowledge-base project items in base order.
func (r *Router) topProjects(n int) []*index.Item {
	var out []*index.Item
	for i := range r.ix.Items {
		it := &r.ix.Items[i]
		if it.Kind == index.KindProject && it.Citation.Origin == index.OriginKnowledgeBase {
			out = append(out, it)
			if len(out) == n {
				break
			}
		}
	}
	return out
}

// topAchievements returns up to n knowledge-base achievements in base order.
func (r *Router) topAchievements(n int) []*index.Item {
	var out []*index.Item
	for i := range r.ix.Items {
		it := &r.ix.Items[i]
		if it.Kind == index.KindAchievement && it.Citation.Origin == index.OriginKnowledgeBase {
			out = append(out, it)
			if len(out) == n {
				break
			}
		}
	}
	return out
}

// rankBySimilarity orders items by fuzzy title similarity to the query,
// used for the live-project listing filter.
func rankBySimilarity(items []*index.Item, query string) {
	sort.SliceStable(items, func(i, j int) bool {
		return fuzzy.Similarity(query, items[i].Title) > fuzzy.Similarity(query, items[j].Title)
	})
}
