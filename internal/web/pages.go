package web

import (
	"fmt"
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/autonexgen/site/internal/reveal"
	"github.com/autonexgen/site/internal/reviews"
)

// HomePage renders the landing view: hero, services, playground demo,
// deployment roadmap, FAQs, and the contact form.
func HomePage(cfg reveal.Config) g.Node {
	return Layout(
		PageConfig{View: ViewHome, Reveal: cfg},
		Main(
			ID("home"),
			Revealed(0, hero()),
			Revealed(cfg.Stagger(1), servicesSection(cfg)),
			Revealed(0, playgroundSection()),
			roadmapSection(cfg),
			faqSection(cfg),
			Revealed(0, contactSection()),
		),
	)
}

// ServicesPage renders the full service catalogue.
func ServicesPage(cfg reveal.Config) g.Node {
	return Layout(
		PageConfig{
			Title:       "Services - Autonexgen",
			Description: "AI agents, workflow automation, and custom AI solutions engineered for measurable efficiency.",
			View:        ViewServices,
			Reveal:      cfg,
		},
		Main(
			pageHeader("Our Services", "From conversational agents to end-to-end workflow automation."),
			Section(
				Class("service-grid"),
				g.Group(g.Map(indexed(services()), func(entry indexedItem[ServiceItem]) g.Node {
					return Revealed(cfg.Stagger(entry.index), serviceCard(entry.item))
				})),
			),
			Revealed(0, contactSection()),
		),
	)
}

// AboutPage renders the company story.
func AboutPage(cfg reveal.Config) g.Node {
	return Layout(
		PageConfig{Title: "About - Autonexgen", View: ViewAbout, Reveal: cfg},
		Main(
			pageHeader("About Autonexgen", "An AI automation agency based in Ahmedabad, India, deploying worldwide."),
			Revealed(0, Section(
				Class("prose"),
				P(g.Text("Autonexgen engineers bespoke AI agents, chatbots, and workflow automations for high-scale organizations. We believe the next generation of businesses will run on autonomous systems that qualify leads, answer customers, and move data without human bottlenecks.")),
				P(g.Text("Our team pairs deep experience in conversational AI with hands-on expertise in Make.com, n8n, and Zapier, so every deployment fits the processes you already run.")),
			)),
			Revealed(cfg.Stagger(1), contactSection()),
		),
	)
}

// ContactPage renders the standalone contact view.
func ContactPage(cfg reveal.Config) g.Node {
	return Layout(
		PageConfig{Title: "Contact - Autonexgen", View: ViewContact, Reveal: cfg},
		Main(
			pageHeader("Book a Consultation", "Tell us about your operations and we will map the highest-ROI automations."),
			Revealed(0, contactSection()),
		),
	)
}

// CareersPage renders open positions.
func CareersPage(cfg reveal.Config) g.Node {
	return Layout(
		PageConfig{Title: "Careers - Autonexgen", View: ViewCareers, Reveal: cfg},
		Main(
			pageHeader("Careers", "Help us build the autonomous systems that run modern businesses."),
			Revealed(0, Section(
				Class("prose"),
				P(g.Text("We are always looking for automation engineers, conversational designers, and AI strategists. Send your profile to contact@autonexgen.com with a note on what you have automated.")),
			)),
		),
	)
}

// BlogPage renders the writing index.
func BlogPage(cfg reveal.Config) g.Node {
	return Layout(
		PageConfig{Title: "Blog - Autonexgen", View: ViewBlog, Reveal: cfg},
		Main(
			pageHeader("Blog", "Notes on agents, automation, and applied AI."),
			Revealed(0, Section(
				Class("prose"),
				P(g.Text("New essays are on the way. Meanwhile, book a consultation to talk through your automation roadmap in person.")),
			)),
		),
	)
}

// PrivacyPage renders the privacy policy.
func PrivacyPage(cfg reveal.Config) g.Node {
	return Layout(
		PageConfig{Title: "Privacy Policy - Autonexgen", View: ViewPrivacy, Reveal: cfg},
		Main(
			pageHeader("Privacy Policy", ""),
			Revealed(0, Section(
				Class("prose"),
				P(g.Text("We collect only the contact details you submit through our forms: name, email, phone, and message. They are used to respond to your inquiry and are never sold to third parties.")),
				P(g.Text("Review submissions are published with the name and role you provide. Write to contact@autonexgen.com to request removal of your data.")),
			)),
		),
	)
}

// TermsPage renders the terms and conditions.
func TermsPage(cfg reveal.Config) g.Node {
	return Layout(
		PageConfig{Title: "Terms & Conditions - Autonexgen", View: ViewTerms, Reveal: cfg},
		Main(
			pageHeader("Terms & Conditions", ""),
			Revealed(0, Section(
				Class("prose"),
				P(g.Text("Engagements are scoped and quoted per project. Estimates shared in the playground or chat are indicative only and not binding offers.")),
				P(g.Text("All content on this site is owned by Autonexgen and may not be reproduced without permission.")),
			)),
		),
	)
}

// ResultsPage renders case-study highlights.
func ResultsPage(cfg reveal.Config) g.Node {
	outcomes := []struct {
		Metric string
		Detail string
	}{
		{Metric: "68% faster lead response", Detail: "WhatsApp agent qualifying inbound leads for a real-estate brokerage."},
		{Metric: "40 hours saved weekly", Detail: "n8n pipelines replacing manual CRM data entry for a logistics SME."},
		{Metric: "3x demo bookings", Detail: "Website chatbot routing qualified visitors straight to calendars."},
	}
	return Layout(
		PageConfig{Title: "Results - Autonexgen", View: ViewResults, Reveal: cfg},
		Main(
			pageHeader("Results", "Outcomes from recent deployments."),
			Section(
				Class("results-grid"),
				g.Group(g.Map(indexed(outcomes), func(entry indexedItem[struct {
					Metric string
					Detail string
				}]) g.Node {
					return Revealed(cfg.Stagger(entry.index), Div(
						Class("result-card"),
						H3(g.Text(entry.item.Metric)),
						P(g.Text(entry.item.Detail)),
					))
				})),
			),
			Revealed(0, contactSection()),
		),
	)
}

// ReviewsPage renders stored reviews plus the submission form.
func ReviewsPage(cfg reveal.Config, list []reviews.Review) g.Node {
	return Layout(
		PageConfig{Title: "Reviews - Autonexgen", View: ViewReviews, Reveal: cfg},
		Main(
			pageHeader("Client Reviews", "What our clients say about working with us."),
			Section(
				ID("review-list"),
				Class("review-list"),
				g.Group(g.Map(indexed(list), func(entry indexedItem[reviews.Review]) g.Node {
					return Revealed(cfg.Stagger(entry.index), reviewCard(entry.item))
				})),
			),
			Revealed(0, reviewFormSection()),
		),
	)
}

type indexedItem[T any] struct {
	index int
	item  T
}

func indexed[T any](items []T) []indexedItem[T] {
	out := make([]indexedItem[T], len(items))
	for i, item := range items {
		out[i] = indexedItem[T]{index: i, item: item}
	}
	return out
}

func pageHeader(title, subtitle string) g.Node {
	return Revealed(0, Header(
		Class("page-header"),
		H1(g.Text(title)),
		g.If(subtitle != "", P(Class("page-subtitle"), g.Text(subtitle))),
	))
}

func hero() g.Node {
	return Div(
		Class("hero"),
		Span(Class("hero-badge"), g.Text("Next-Gen Intelligent Automation")),
		H1(
			g.Text("Autonomous Systems,"),
			Br(),
			Span(Class("hero-accent"), g.Text("Intelligent Growth.")),
		),
		P(
			Class("hero-copy"),
			g.Text("Autonexgen engineers bespoke AI Agents, Chatbots, and Workflow Automations for high-scale organizations. Based in Ahmedabad, deploying worldwide."),
		),
		Div(
			Class("hero-actions"),
			A(Href(ViewServices.Path()), Class("btn btn-primary"), g.Text("Explore Solutions")),
			A(Href("#demo"), Class("btn btn-ghost"), g.Text("Interactive Demo")),
		),
	)
}

func servicesSection(cfg reveal.Config) g.Node {
	return Section(
		ID("services"),
		Class("service-grid"),
		g.Group(g.Map(indexed(services()), func(entry indexedItem[ServiceItem]) g.Node {
			return Revealed(cfg.Stagger(entry.index), serviceCard(entry.item))
		})),
	)
}

func serviceCard(item ServiceItem) g.Node {
	return Div(
		Class("service-card accent-"+item.Accent),
		Span(Class("iconify"), g.Attr("data-icon", item.Icon)),
		H3(g.Text(item.Title)),
		P(g.Text(item.Description)),
		g.If(len(item.Tags) > 0, Div(
			Class("service-tags"),
			g.Group(g.Map(item.Tags, func(tag string) g.Node {
				return Span(Class("tag"), g.Text(tag))
			})),
		)),
	)
}

func playgroundSection() g.Node {
	return Section(
		ID("demo"),
		Class("playground"),
		H2(g.Text("Try the Assistant")),
		P(Class("playground-subtitle"), g.Text("Ask about our services, pricing, or how an agent would fit your stack.")),
		Div(ID("chat-log"), Class("chat-log")),
		Form(
			ID("chat-form"),
			Class("chat-form"),
			g.Attr("data-endpoint", "/api/chat"),
			Input(ID("chat-input"), Name("prompt"), Type("text"), Placeholder("Ask me anything about automation..."), Required()),
			Button(Type("submit"), Class("btn btn-primary"), g.Text("Send")),
		),
	)
}

func roadmapSection(cfg reveal.Config) g.Node {
	return Section(
		ID("pricing"),
		Class("roadmap"),
		Revealed(0, Div(
			Class("section-heading"),
			H2(g.Text("Deployment Roadmap")),
			P(g.Text("From concept to production-grade deployment in 4 weeks.")),
		)),
		Div(
			Class("roadmap-grid"),
			g.Group(g.Map(indexed(processSteps()), func(entry indexedItem[ProcessStep]) g.Node {
				return Revealed(cfg.Stagger(entry.index), Div(
					Class("roadmap-card"),
					Span(Class("roadmap-number"), g.Text(entry.item.ID)),
					Span(Class("iconify"), g.Attr("data-icon", entry.item.Icon)),
					H3(g.Text(entry.item.Title)),
					P(g.Text(entry.item.Description)),
				))
			})),
		),
	)
}

func faqSection(cfg reveal.Config) g.Node {
	return Section(
		Class("faq"),
		Revealed(0, H2(g.Text("Frequently Asked Questions"))),
		g.Group(g.Map(indexed(faqs()), func(entry indexedItem[FAQItem]) g.Node {
			return Revealed(cfg.Stagger(entry.index), Details(
				Class("faq-item"),
				Summary(g.Text(entry.item.Question)),
				P(g.Text(entry.item.Answer)),
			))
		})),
	)
}

func contactSection() g.Node {
	return Section(
		ID("contact"),
		Class("contact"),
		H2(g.Text("Let's Automate Your Business")),
		Form(
			ID("contact-form"),
			Class("submission-form"),
			g.Attr("data-endpoint", "/api/inquiries"),
			Input(Name("name"), Type("text"), Placeholder("Your name"), Required()),
			Input(Name("email"), Type("email"), Placeholder("Email address"), Required()),
			Input(Name("phone"), Type("tel"), Placeholder("Phone number"), Required()),
			Textarea(Name("message"), Placeholder("What would you like to automate?"), Required()),
			Button(Type("submit"), Class("btn btn-primary"), g.Text("Send Inquiry")),
			P(Class("form-status"), g.Attr("data-role", "status")),
		),
	)
}

func reviewFormSection() g.Node {
	return Section(
		Class("review-form-section"),
		H2(g.Text("Share Your Experience")),
		Form(
			ID("review-form"),
			Class("submission-form"),
			g.Attr("data-endpoint", "/api/reviews"),
			Input(Name("name"), Type("text"), Placeholder("Your name"), Required()),
			Input(Name("role"), Type("text"), Placeholder("Role and company"), Required()),
			Textarea(Name("content"), Placeholder("How did the deployment go?"), Required()),
			Div(
				Class("rating-picker"),
				g.Group(g.Map([]int{1, 2, 3, 4, 5}, func(star int) g.Node {
					value := strconv.Itoa(star)
					return Label(
						Input(Type("radio"), Name("rating"), Value(value)),
						Span(g.Text(value)),
					)
				})),
			),
			Button(Type("submit"), Class("btn btn-primary"), g.Text("Submit Review")),
			P(Class("form-status"), g.Attr("data-role", "status")),
		),
	)
}

func reviewCard(item reviews.Review) g.Node {
	return Div(
		Class("review-card"),
		Div(
			Class("review-heading"),
			H3(g.Text(item.Name)),
			g.If(item.IsVerified, Span(Class("verified-badge"), g.Text("Verified"))),
		),
		P(Class("review-role"), g.Text(item.Role)),
		P(Class("review-rating"), g.Text(fmt.Sprintf("%d/5", item.Rating))),
		P(Class("review-content"), g.Text(item.Content)),
	)
}
