//go:build js && wasm

package livepage

import (
	"encoding/json"
	"fmt"
	"strings"
	"syscall/js"
)

// DOM reads the currently rendered page through syscall/js.
// Selectors match the portfolio markup: cards carry their data as
// data-* attributes, with image lists embedded as JSON.
type DOM struct {
	doc js.Value
}

// NewDOM returns a Repository backed by the live document.
func NewDOM() *DOM {
	return &DOM{doc: js.Global().Get("document")}
}

func (d *DOM) querySelectorAll(sel string) []js.Value {
	nodes := d.doc.Call("querySelectorAll", sel)
	n := nodes.Get("length").Int()
	out := make([]js.Value, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, nodes.Call("item", i))
	}
	return out
}

func attr(el js.Value, name string) string {
	v := el.Call("getAttribute", name)
	if v.IsNull() || v.IsUndefined() {
		return ""
	}
	return v.String()
}

func textContent(el js.Value) string {
	v := el.Get("textContent")
	if v.IsNull() || v.IsUndefined() {
		return ""
	}
	return strings.TrimSpace(v.String())
}

// ListProjectCards parses every .project-card element. A card whose
// embedded image JSON is malformed keeps its other fields; a card without
// a title is dropped.
func (d *DOM) ListProjectCards() []ProjectCard {
	var cards []ProjectCard
	for i, el := range d.querySelectorAll(".project-card") {
		card := ProjectCard{
			Title:        attr(el, "data-title"),
			Category:     attr(el, "data-category"),
			Description:  attr(el, "data-description"),
			Technologies: attr(el, "data-tech"),
			GitHubURL:    attr(el, "data-github"),
			LiveURL:      attr(el, "data-live"),
			Selector:     cardSelector(".project-card", attr(el, "data-title"), i),
		}
		if card.Title == "" {
			continue
		}
		if raw := attr(el, "data-images"); raw != "" {
			var imgs []string
			// Malformed JSON is swallowed per item.
			if err := json.Unmarshal([]byte(raw), &imgs); err == nil {
				card.Images = imgs
			}
		}
		cards = append(cards, card)
	}
	return cards
}

// ListAchievementCards parses every .achievement-card element.
func (d *DOM) ListAchievementCards() []AchievementCard {
	var cards []AchievementCard
	for i, el := range d.querySelectorAll(".achievement-card") {
		card := AchievementCard{
			Title:     attr(el, "data-title"),
			Organizer: attr(el, "data-organizer"),
			Date:      attr(el, "data-date"),
			Selector:  cardSelector(".achievement-card", attr(el, "data-title"), i),
		}
		if card.Title == "" {
			continue
		}
		cards = append(cards, card)
	}
	return cards
}

// DetailPanels walks every .project-detail panel, splitting its headings
// and following list items into sections.
func (d *DOM) DetailPanels() []DetailPanel {
	var panels []DetailPanel
	for _, el := range d.querySelectorAll(".project-detail") {
		panel := DetailPanel{Content: textContent(el)}

		for _, h := range d.panelHeadings(el) {
			section := DetailSection{Heading: textContent(h)}
			// List items live in the sibling UL directly after the heading.
			next := h.Get("nextElementSibling")
			if !next.IsNull() && !next.IsUndefined() && strings.EqualFold(next.Get("tagName").String(), "UL") {
				items := next.Call("querySelectorAll", "li")
				for i := 0; i < items.Get("length").Int(); i++ {
					if txt := textContent(items.Call("item", i)); txt != "" {
						section.Items = append(section.Items, txt)
					}
				}
			}
			panel.Sections = append(panel.Sections, section)
		}
		panels = append(panels, panel)
	}
	return panels
}

func (d *DOM) panelHeadings(panel js.Value) []js.Value {
	nodes := panel.Call("querySelectorAll", "h3, h4")
	n := nodes.Get("length").Int()
	out := make([]js.Value, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, nodes.Call("item", i))
	}
	return out
}

func cardSelector(base, title string, idx int) string {
	if title != "" {
		return base + `[data-title="` + title + `"]`
	}
	return fmt.Sprintf("%s:nth-of-type(%d)", base, idx+1)
}
