package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hack-pad/hackpadfs/mem"

	"github.com/kittclouds/foliobot/internal/convo"
	"github.com/kittclouds/foliobot/internal/engine"
	"github.com/kittclouds/foliobot/internal/knowledge"
	"github.com/kittclouds/foliobot/internal/livepage"
	"github.com/kittclouds/foliobot/internal/remote"
	"github.com/kittclouds/foliobot/internal/store"
)

func main() {
	apiKey := flag.String("api-key", os.Getenv("GEMINI_API_KEY"), "remote completion API key (empty disables the remote path)")
	sqlite := flag.Bool("sqlite", false, "use the SQLite session store instead of the in-memory one")
	flag.Parse()

	kb := &knowledge.Default
	page := fixtureFor(kb)

	var st store.Storer
	if *sqlite {
		s, err := store.NewSQLiteStore()
		if err != nil {
			log.Fatalf("NewSQLiteStore failed: %v", err)
		}
		st = s
	} else {
		st = store.NewMemStore()
	}

	fs, err := mem.NewFS()
	if err != nil {
		log.Fatalf("mem.NewFS failed: %v", err)
	}
	prefs := convo.NewPrefStore(fs, "prefs.json")

	session := convo.NewSession(kb, st, prefs, convo.DefaultConfig(), nil)
	defer session.Close()

	var opts []engine.Option
	if *apiKey != "" {
		client := remote.NewGeminiClient(remote.DefaultGeminiConfig(*apiKey), nil)
		opts = append(opts, engine.WithProvider(client))
	}

	bot := engine.New(kb, page, session, engine.DefaultConfig(), opts...)
	fmt.Printf("foliobot repl (%d indexed items, remote=%v)\n", len(bot.Index().Items), *apiKey != "")
	fmt.Println("type a question, or /quit to exit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "/quit" || text == "/exit" {
			break
		}

		reply := bot.Ask(context.Background(), text)
		fmt.Printf("\n[%s via %s]\n%s\n", reply.Intent, reply.Source, reply.Body)
		for _, c := range reply.Citations {
			fmt.Printf("  ↳ %s (%s)\n", c.Label, c.Selector)
		}
		if len(reply.Suggestions) > 0 {
			fmt.Printf("  try: %s\n", strings.Join(reply.Suggestions, " | "))
		}
		if reply.Summarized {
			fmt.Println("  (conversation summarized)")
		}
		fmt.Println()
	}
}

// fixtureFor renders the knowledge base as a fake live page so the repl
// exercises the same dual-origin index the browser build sees.
func fixtureFor(kb *knowledge.Base) *livepage.Fixture {
	f := &livepage.Fixture{}
	for i, p := range kb.Projects {
		f.Projects = append(f.Projects, livepage.ProjectCard{
			Title:        p.Title,
			Category:     p.Category,
			Description:  p.Description,
			Technologies: p.Technologies,
			GitHubURL:    p.Links.GitHub,
			LiveURL:      p.Links.Live,
			Selector:     fmt.Sprintf(".project-card:nth-child(%d)", i+1),
		})
	}
	for i, a := range kb.Achievements {
		f.Achievements = append(f.Achievements, livepage.AchievementCard{
			Title:     a.Title,
			Organizer: a.Organizer,
			Date:      a.Date,
			Selector:  fmt.Sprintf(".achievement-card:nth-child(%d)", i+1),
		})
	}
	return f
}
