package web

import (
	"encoding/json"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/autonexgen/site/internal/reveal"
)

// PageConfig carries per-page metadata for the shared layout.
type PageConfig struct {
	Title       string
	Description string
	View        View
	Reveal      reveal.Config
}

// Layout wraps page content in the shared document shell: head metadata,
// navigation, footer, and the reveal configuration consumed by the client
// mirror script.
func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = "Autonexgen - AI Automation Agency"
	}
	if config.Description == "" {
		config.Description = "Autonexgen engineers bespoke AI Agents, Chatbots, and Workflow Automations for high-scale organizations. Based in Ahmedabad, deploying worldwide."
	}
	if config.Reveal == (reveal.Config{}) {
		config.Reveal = reveal.DefaultConfig()
	}

	revealJSON, _ := json.Marshal(config.Reveal)

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				Meta(Name("description"), Content(config.Description)),

				Meta(g.Attr("property", "og:title"), Content(config.Title)),
				Meta(g.Attr("property", "og:description"), Content(config.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),

				Link(Rel("stylesheet"), Href("/static/styles.css")),

				Script(Src("https://code.iconify.design/1/1.0.7/iconify.min.js")),
			),
			Body(
				Class("site"),
				g.Attr("data-view", string(config.View)),
				g.Attr("data-reveal-config", string(revealJSON)),

				topbar(config.View),
				g.Group(content),
				pageFooter(),

				Script(Defer(), Src("/static/js/reveal.js")),
				Script(Defer(), Src("/static/js/forms.js")),
				Script(Defer(), Src("/static/js/playground.js")),
			),
		),
	})
}

func topbar(current View) g.Node {
	return Nav(
		Class("topbar"),
		A(Href("/"), Class("topbar-brand"), g.Text("Autonexgen")),
		Div(
			Class("topbar-links"),
			g.Group(g.Map(navViews(), func(view View) g.Node {
				linkClass := "topbar-link"
				if view == current {
					linkClass += " active"
				}
				return A(Href(view.Path()), Class(linkClass), g.Text(view.Title()))
			})),
		),
	)
}

func pageFooter() g.Node {
	return Footer(
		Class("site-footer"),
		Div(
			Class("footer-links"),
			g.Group(g.Map(footerViews(), func(view View) g.Node {
				return A(Href(view.Path()), g.Text(view.Title()))
			})),
		),
		P(Class("footer-contact"), g.Text("contact@autonexgen.com")),
		P(Class("footer-note"), g.Text("Autonexgen. AI Automation Agency, Ahmedabad, India.")),
	)
}
