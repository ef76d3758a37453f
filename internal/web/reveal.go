package web

import (
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Revealed wraps content in a container that starts hidden and transitions in
// once the client mirror script observes it entering the viewport. The delay
// offsets the transition for staggered groups.
func Revealed(delay time.Duration, content ...g.Node) g.Node {
	return Div(
		Class("reveal"),
		g.Attr("data-reveal", "pending"),
		g.If(delay > 0, g.Attr("data-reveal-delay", strconv.FormatInt(delay.Milliseconds(), 10))),
		g.Group(content),
	)
}
