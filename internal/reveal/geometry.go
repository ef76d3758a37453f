package reveal

// Rect is an axis-aligned region in page coordinates, measured in pixels.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Area returns the covered surface in square pixels.
func (r Rect) Area() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

func (r Rect) contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right() && y >= r.Top && y <= r.Bottom()
}

func intersect(a, b Rect) Rect {
	left := max(a.Left, b.Left)
	top := max(a.Top, b.Top)
	right := min(a.Right(), b.Right())
	bottom := min(a.Bottom(), b.Bottom())
	if right <= left || bottom <= top {
		return Rect{}
	}
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// IntersectionRatio reports which fraction of target lies inside the viewport
// after the viewport has been inset by bottomInset pixels from its bottom
// edge. Zero-area targets report 1 when their origin sits inside the region
// and 0 otherwise.
func IntersectionRatio(target, viewport Rect, bottomInset float64) float64 {
	region := viewport
	region.Height -= bottomInset
	if region.Height <= 0 {
		return 0
	}

	if target.Area() == 0 {
		if region.contains(target.Left, target.Top) {
			return 1
		}
		return 0
	}

	return intersect(target, region).Area() / target.Area()
}
