package web

// ServiceItem describes one service offering card.
type ServiceItem struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Tags        []string
	Accent      string
}

// FAQItem is one expandable question on the home page.
type FAQItem struct {
	Question string
	Answer   string
}

// ProcessStep is one stage of the deployment roadmap.
type ProcessStep struct {
	ID          string
	Title       string
	Description string
	Icon        string
}

func services() []ServiceItem {
	return []ServiceItem{
		{
			ID:          "agents",
			Title:       "AI Agents & Chatbots",
			Description: "24/7 intelligent support for your Website and WhatsApp. Our agents can qualify leads, book appointments, and handle customer queries instantly using natural language processing.",
			Icon:        "lucide:bot-message-square",
			Tags:        []string{"Voice Agents", "WhatsApp Bots", "Lead Gen", "Support Desks"},
			Accent:      "blue",
		},
		{
			ID:          "workflows",
			Title:       "Workflow Automation",
			Description: "Connect your apps. Eliminate manual data entry. We are experts in Make.com, n8n, and Zapier integration to bridge data silos.",
			Icon:        "lucide:workflow",
			Accent:      "indigo",
		},
		{
			ID:          "custom",
			Title:       "Custom AI Solutions",
			Description: "Every business is different. We analyze your operations, identify bottlenecks, and build custom AI solutions aligned with your goals, designed to fit your processes, scale with growth, and deliver measurable efficiency.",
			Icon:        "lucide:code-2",
			Accent:      "blue",
		},
		{
			ID:          "strategy",
			Title:       "AI Strategy Consulting",
			Description: "We help you navigate the complex landscape of GenAI, identifying the highest ROI opportunities for your specific industry vertical.",
			Icon:        "lucide:lightbulb",
			Accent:      "purple",
		},
	}
}

func faqs() []FAQItem {
	return []FAQItem{
		{
			Question: "How much does a custom AI agent cost?",
			Answer:   "Pricing depends on complexity. Simple chatbot integrations start at competitive rates, while fully autonomous enterprise agents with deep RAG integration require custom quoting. Book a consultation for a detailed estimate.",
		},
		{
			Question: "Do you work with startups?",
			Answer:   "Yes, we specialize in helping startups and SMEs scale operations with minimal headcount by implementing high-efficiency automation layers.",
		},
		{
			Question: "Can you integrate with my existing CRM?",
			Answer:   "Absolutely. We have extensive experience integrating with HubSpot, Salesforce, Zoho, and custom proprietary databases using secure API connectors.",
		},
	}
}

func processSteps() []ProcessStep {
	return []ProcessStep{
		{ID: "01", Title: "Discovery", Description: "We analyze your bottlenecks and identify high-ROI automation opportunities.", Icon: "lucide:search"},
		{ID: "02", Title: "Build", Description: "Developing agents, connecting APIs, and setting up the infrastructure layer.", Icon: "lucide:code-2"},
		{ID: "03", Title: "Deploy", Description: "Live implementation, staff training, and rigorous performance testing.", Icon: "lucide:rocket"},
		{ID: "04", Title: "Scale", Description: "Continuous monitoring, analytics reporting, and iterative improvements.", Icon: "lucide:bar-chart-2"},
	}
}
