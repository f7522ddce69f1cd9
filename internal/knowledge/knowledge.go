// Package knowledge holds the static facts the assistant answers from.
// The dataset is compiled in and never mutated at runtime; every consumer
// treats it as read-only.
package knowledge

import "strings"

// Links groups the optional outbound links a project or achievement carries.
type Links struct {
	GitHub  string `json:"github,omitempty"`
	Live    string `json:"live,omitempty"`
	Video   string `json:"video,omitempty"`
	Codedex string `json:"codedex,omitempty"`
}

// Project is a portfolio project. Title is the session-unique key; a
// live-page card with the same title shadows/augments this record.
type Project struct {
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	Technologies string   `json:"technologies"` // raw delimited string, comma/semicolon separated
	Links        Links    `json:"links,omitempty"`
	Images       []string `json:"images,omitempty"`
}

// Achievement is an award, hackathon result, or similar recognition.
// ProjectTitle is a weak reference by title, not an ownership edge.
type Achievement struct {
	Title        string   `json:"title"`
	Organizer    string   `json:"organizer"`
	Date         string   `json:"date"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	ProjectTitle string   `json:"projectTitle,omitempty"`
	Links        Links    `json:"links,omitempty"`
	Teammates    []string `json:"teammates,omitempty"`
}

// Education is a single schooling entry.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Period      string `json:"period"`
	Detail      string `json:"detail,omitempty"`
}

// Experience is a work or internship entry.
type Experience struct {
	Role    string `json:"role"`
	Company string `json:"company"`
	Period  string `json:"period"`
	Detail  string `json:"detail,omitempty"`
}

// Organization is a club, society, or community the subject belongs to.
type Organization struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Detail string `json:"detail,omitempty"`
}

// Skills splits abilities into broad core skills and concrete technologies.
type Skills struct {
	Core         []string `json:"core"`
	Technologies []string `json:"technologies"`
}

// Contact holds the reachable channels.
type Contact struct {
	Email    string `json:"email"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Resume   string `json:"resume"`
}

// Profile is the one-line identity of the site owner.
type Profile struct {
	Name     string `json:"name"`
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Location string `json:"location"`
}

// Base is the full knowledge base.
type Base struct {
	Profile       Profile        `json:"profile"`
	Contact       Contact        `json:"contact"`
	Education     []Education    `json:"education"`
	Experience    []Experience   `json:"experience"`
	Skills        Skills         `json:"skills"`
	Projects      []Project      `json:"projects"`
	Achievements  []Achievement  `json:"achievements"`
	Organizations []Organization `json:"organizations"`
}

// ProjectByTitle returns the project with the given title, case-insensitive.
func (b *Base) ProjectByTitle(title string) *Project {
	for i := range b.Projects {
		if strings.EqualFold(b.Projects[i].Title, title) {
			return &b.Projects[i]
		}
	}
	return nil
}

// AchievementByTitle returns the achievement with the given title, case-insensitive.
func (b *Base) AchievementByTitle(title string) *Achievement {
	for i := range b.Achievements {
		if strings.EqualFold(b.Achievements[i].Title, title) {
			return &b.Achievements[i]
		}
	}
	return nil
}

// TechTokens splits a raw technologies string on comma/semicolon and trims
// surrounding punctuation from each token. Empty tokens are dropped.
func TechTokens(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, " \t\r\n.()[]")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
