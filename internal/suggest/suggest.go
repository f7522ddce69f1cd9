// Package suggest produces quick-reply follow-ups for a resolved intent.
// Pure table lookup; details intents personalize the head of the list with
// the matched item's name and links.
package suggest

import (
	"fmt"

	"github.com/kittclouds/foliobot/internal/index"
	"github.com/kittclouds/foliobot/internal/intent"
)

// table maps each intent to its generic follow-ups.
var table = map[intent.Type][]string{
	intent.Projects: {
		"Tell me about your favorite project",
		"Which projects use AI?",
		"What tech do you use most?",
	},
	intent.ProjectDetails: {
		"Show me more projects",
		"What was the hardest part?",
		"What tech does it use?",
	},
	intent.Contact: {
		"What's your email?",
		"Show me your GitHub",
		"Can I see your resume?",
	},
	intent.Skills: {
		"Which projects use these skills?",
		"What databases do you work with?",
		"Tell me about your experience",
	},
	intent.Database: {
		"Which projects use MySQL?",
		"Tell me about Firebase projects",
		"What other tech do you use?",
	},
	intent.Education: {
		"What did you study?",
		"Tell me about your projects",
		"What organizations are you in?",
	},
	intent.Achievements: {
		"Tell me about Hack the North",
		"Which project won an award?",
		"Show me your projects",
	},
	intent.AchievementDetails: {
		"What other awards have you won?",
		"Tell me about the project behind it",
		"Show me your projects",
	},
	intent.Resume: {
		"What's your experience?",
		"Tell me about your skills",
		"How do I contact you?",
	},
	intent.Organizations: {
		"What do you do at UofT AI?",
		"Tell me about your projects",
		"How do I contact you?",
	},
	intent.FAQ: {
		"What projects have you built?",
		"What are your skills?",
		"How do I contact you?",
	},
	intent.General: {
		"What projects have you built?",
		"What are your skills?",
		"How can I contact you?",
	},
}

const maxSuggestions = 4

// Suggest returns 3–4 follow-up prompts for the intent. resolved is the
// specific item a details intent matched, or nil.
func Suggest(t intent.Type, resolved *index.Item) []string {
	base := table[t]
	if base == nil {
		base = table[intent.General]
	}

	var out []string
	if resolved != nil && (t == intent.ProjectDetails || t == intent.AchievementDetails) {
		if resolved.Facts != nil {
			if resolved.Facts.Links.GitHub != "" {
				out = append(out, fmt.Sprintf("Open %s on GitHub", resolved.Title))
			}
			if resolved.Facts.Links.Live != "" {
				out = append(out, fmt.Sprintf("Try %s live", resolved.Title))
			}
		}
		if len(out) == 0 {
			out = append(out, fmt.Sprintf("More about %s", resolved.Title))
		}
	}

	for _, s := range base {
		if len(out) >= maxSuggestions {
			break
		}
		out = append(out, s)
	}
	return out
}
