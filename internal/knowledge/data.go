package knowledge

// Default is the compiled-in knowledge base for the portfolio site.
// Content edits happen here; nothing else in the engine writes to it.
var Default = Base{
	Profile: Profile{
		Name:     "Aarav Menon",
		Headline: "Software engineer & builder",
		Summary:  "Hi, I'm Aarav Menon — a software engineer who builds AI-assisted products, full-stack web apps, and the occasional hackathon winner. Ask me about my projects, skills, or how to get in touch!",
		Location: "Toronto, Canada",
	},
	Contact: Contact{
		Email:    "aarav.menon@outlook.com",
		GitHub:   "https://github.com/aaravmenon",
		LinkedIn: "https://www.linkedin.com/in/aarav-menon",
		Resume:   "/assets/docs/aarav-menon-resume.pdf",
	},
	Education: []Education{
		{
			Institution: "University of Toronto",
			Degree:      "BSc Computer Science, AI specialist stream",
			Period:      "2022 – 2026",
			Detail:      "Coursework in machine learning, distributed systems, and human-computer interaction.",
		},
		{
			Institution: "Codedex",
			Degree:      "Full-stack web development track",
			Period:      "2023",
		},
	},
	Experience: []Experience{
		{
			Role:    "Software Engineering Intern",
			Company: "Northline Robotics",
			Period:  "Summer 2025",
			Detail:  "Built telemetry dashboards and an anomaly-detection service for warehouse robots.",
		},
		{
			Role:    "Teaching Assistant",
			Company: "University of Toronto",
			Period:  "2024 – 2025",
			Detail:  "TA for the intro data structures course.",
		},
	},
	Skills: Skills{
		Core: []string{
			"Full-stack web development",
			"Machine learning & AI agents",
			"API and backend design",
			"Data visualization",
		},
		Technologies: []string{
			"JavaScript", "TypeScript", "Python", "Go", "React", "Node.js",
			"Express", "MySQL", "Firebase", "Firestore", "TensorFlow",
			"LangChain", "Docker", "Git", "Tailwind CSS",
		},
	},
	Projects: []Project{
		{
			Title:        "FinanceWise",
			Category:     "AI / Fintech",
			Description:  "A personal-finance coach that categorizes spending with an ML model and answers budgeting questions through an LLM-powered chat agent.",
			Technologies: "React, Node.js, Express; MySQL, LangChain, OpenAI API",
			Links: Links{
				GitHub: "https://github.com/aaravmenon/financewise",
				Live:   "https://financewise.app",
			},
		},
		{
			Title:        "StudySphere",
			Category:     "EdTech",
			Description:  "Collaborative study rooms with real-time shared whiteboards, spaced-repetition decks, and presence indicators.",
			Technologies: "TypeScript, React, Firebase, Firestore; Tailwind CSS",
			Links: Links{
				GitHub: "https://github.com/aaravmenon/studysphere",
				Live:   "https://studysphere.ca",
				Video:  "https://youtu.be/studysphere-demo",
			},
		},
		{
			Title:        "TrailSense",
			Category:     "AI / Computer Vision",
			Description:  "Mobile-first trail-condition reporter that classifies uploaded photos (mud, ice, blowdown) with a fine-tuned vision model and maps reports for hikers.",
			Technologies: "Python, TensorFlow; React, Node.js, MySQL",
			Links: Links{
				GitHub: "https://github.com/aaravmenon/trailsense",
			},
		},
		{
			Title:        "Pantry Pal",
			Category:     "Full-stack",
			Description:  "Scan groceries, track expiry dates, and get recipe suggestions for what's about to go bad.",
			Technologies: "JavaScript, Express, MySQL, Docker",
			Links: Links{
				GitHub:  "https://github.com/aaravmenon/pantry-pal",
				Codedex: "https://www.codedex.io/@aaravmenon/pantry-pal",
			},
		},
		{
			Title:        "AgentArena",
			Category:     "AI Agents",
			Description:  "A sandbox for benchmarking LLM agents on multi-step web tasks, with replayable traces and head-to-head scoring.",
			Technologies: "Go, Python, LangChain; Docker",
			Links: Links{
				GitHub: "https://github.com/aaravmenon/agent-arena",
			},
		},
	},
	Achievements: []Achievement{
		{
			Title:        "Hack the North 2024 — Best AI Application",
			Organizer:    "Hack the North",
			Date:         "September 2024",
			Location:     "Waterloo, ON",
			Description:  "Won Best AI Application for FinanceWise, built in 36 hours with a team of four.",
			ProjectTitle: "FinanceWise",
			Links:        Links{Video: "https://youtu.be/htn-financewise"},
			Teammates:    []string{"Priya S.", "Daniel K.", "Mo A."},
		},
		{
			Title:       "UofT Hacks Finalist",
			Organizer:   "UofT Hacks",
			Date:        "January 2024",
			Location:    "Toronto, ON",
			Description: "Top-5 finalist with StudySphere out of 120 teams.",
			ProjectTitle: "StudySphere",
		},
		{
			Title:       "Codedex Project of the Month",
			Organizer:   "Codedex",
			Date:        "June 2023",
			Location:    "Online",
			Description: "Pantry Pal featured as community project of the month.",
			ProjectTitle: "Pantry Pal",
		},
		{
			Title:       "Dean's List",
			Organizer:   "University of Toronto",
			Date:        "2023, 2024",
			Location:    "Toronto, ON",
			Description: "Dean's list standing in consecutive years.",
		},
	},
	Organizations: []Organization{
		{
			Name:   "UofT AI",
			Role:   "Projects lead",
			Detail: "Run the applied-projects stream; mentor first-year teams shipping their first models.",
		},
		{
			Name: "Google Developer Student Club",
			Role: "Member",
		},
	},
}
