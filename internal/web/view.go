// Package web renders the site's pages as server-side HTML.
package web

import "fmt"

// View identifies a navigable page. The set is closed: navigation code
// switches on View values instead of passing page names around as strings.
type View string

const (
	ViewHome     View = "home"
	ViewServices View = "services"
	ViewAbout    View = "about"
	ViewContact  View = "contact"
	ViewCareers  View = "careers"
	ViewBlog     View = "blog"
	ViewPrivacy  View = "privacy"
	ViewTerms    View = "terms"
	ViewResults  View = "results"
	ViewReviews  View = "reviews"
)

// AllViews lists every navigable view in display order.
func AllViews() []View {
	return []View{
		ViewHome,
		ViewServices,
		ViewAbout,
		ViewContact,
		ViewCareers,
		ViewBlog,
		ViewPrivacy,
		ViewTerms,
		ViewResults,
		ViewReviews,
	}
}

// ParseView resolves a path segment to a View.
func ParseView(segment string) (View, error) {
	switch View(segment) {
	case ViewHome, ViewServices, ViewAbout, ViewContact, ViewCareers,
		ViewBlog, ViewPrivacy, ViewTerms, ViewResults, ViewReviews:
		return View(segment), nil
	}
	if segment == "" {
		return ViewHome, nil
	}
	return "", fmt.Errorf("web: unknown view %q", segment)
}

// Path returns the URL path serving the view.
func (v View) Path() string {
	if v == ViewHome {
		return "/"
	}
	return "/" + string(v)
}

// Title returns the display title used in navigation and page headers.
func (v View) Title() string {
	switch v {
	case ViewHome:
		return "Home"
	case ViewServices:
		return "Services"
	case ViewAbout:
		return "About"
	case ViewContact:
		return "Contact"
	case ViewCareers:
		return "Careers"
	case ViewBlog:
		return "Blog"
	case ViewPrivacy:
		return "Privacy Policy"
	case ViewTerms:
		return "Terms & Conditions"
	case ViewResults:
		return "Results"
	case ViewReviews:
		return "Reviews"
	}
	return string(v)
}

// navViews are the views surfaced in the top navigation bar. Legal pages are
// linked from the footer only.
func navViews() []View {
	return []View{ViewHome, ViewServices, ViewAbout, ViewResults, ViewReviews, ViewContact}
}

// footerViews are the views linked from the footer.
func footerViews() []View {
	return []View{ViewCareers, ViewBlog, ViewPrivacy, ViewTerms}
}
