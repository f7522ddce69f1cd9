// Package livepage abstracts the rendered page as a read-only data source.
// The engine only ever sees plain value records; markup traversal lives
// behind the Repository interface so the whole pipeline runs headless.
package livepage

// ProjectCard is one rendered project card.
type ProjectCard struct {
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	Technologies string   `json:"technologies"`
	GitHubURL    string   `json:"githubUrl,omitempty"`
	LiveURL      string   `json:"liveUrl,omitempty"`
	Images       []string `json:"images,omitempty"`
	Selector     string   `json:"selector,omitempty"` // CSS selector of the card, for citations
}

// AchievementCard is one rendered achievement card.
type AchievementCard struct {
	Title     string `json:"title"`
	Organizer string `json:"organizer"`
	Date      string `json:"date"`
	Selector  string `json:"selector,omitempty"`
}

// DetailSection is a heading plus the list items that follow it inside a
// project detail panel, in document order.
type DetailSection struct {
	Heading string   `json:"heading"`
	Items   []string `json:"items"`
}

// DetailPanel is the expanded detail view for one project.
type DetailPanel struct {
	Content  string          `json:"content"` // full text content, used for title ownership checks
	Sections []DetailSection `json:"sections"`
}

// Repository is the read-only view of the rendered page.
//
// Implementations must tolerate malformed cards: a card that fails to parse
// is skipped, never surfaced as an error (one bad card must not wipe out
// the index).
type Repository interface {
	ListProjectCards() []ProjectCard
	ListAchievementCards() []AchievementCard
	// DetailPanels returns every rendered project-detail panel. Which panel
	// belongs to which project is decided by the caller via content matching.
	DetailPanels() []DetailPanel
}

// Empty is a Repository with no rendered content. Used when the engine runs
// without a page (native builds, early boot).
type Empty struct{}

func (Empty) ListProjectCards() []ProjectCard         { return nil }
func (Empty) ListAchievementCards() []AchievementCard { return nil }
func (Empty) DetailPanels() []DetailPanel             { return nil }

// Fixture is an in-memory Repository for tests and native drivers.
type Fixture struct {
	Projects     []ProjectCard
	Achievements []AchievementCard
	Panels       []DetailPanel
}

func (f *Fixture) ListProjectCards() []ProjectCard         { return f.Projects }
func (f *Fixture) ListAchievementCards() []AchievementCard { return f.Achievements }
func (f *Fixture) DetailPanels() []DetailPanel             { return f.Panels }
