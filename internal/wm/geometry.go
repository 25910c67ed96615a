package wm

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}

// ClampPosition keeps a window of size s fully inside the usable part of the
// viewport. A window larger than the viewport is pinned to 0 on that axis.
func ClampPosition(p Point, s Size, vp Viewport) Point {
	return Point{
		X: clamp(p.X, 0, vp.Width-s.Width),
		Y: clamp(p.Y, 0, vp.UsableHeight()-s.Height),
	}
}

// MaximizedBounds is the geometry of a maximized window in vp.
func MaximizedBounds(vp Viewport, l Layout) Rect {
	in := l.WideInsets
	if vp.Narrow(l) {
		in = l.NarrowInsets
	}
	return Rect{
		Point: Point{X: max(0, in.Left), Y: max(0, in.Top)},
		Size: Size{
			Width:  max(l.MinSize.Width, vp.Width-in.Left-in.Right),
			Height: max(l.MinSize.Height, vp.UsableHeight()-in.Top-in.Bottom),
		},
	}
}

func (l Layout) normalizeSize(s Size) Size {
	return Size{
		Width:  max(s.Width, l.MinSize.Width, 1),
		Height: max(s.Height, l.MinSize.Height, 1),
	}
}

func (l Layout) cascade(n int) Point {
	return Point{
		X: l.CascadeBase.X + n*l.CascadeStep.X,
		Y: l.CascadeBase.Y + n*l.CascadeStep.Y,
	}
}

// fitInto shrinks s so it fits the usable viewport, never below MinSize.
func (l Layout) fitInto(s Size, vp Viewport) Size {
	if !vp.Known() {
		return s
	}
	return l.normalizeSize(Size{
		Width:  min(s.Width, vp.Width),
		Height: min(s.Height, vp.UsableHeight()),
	})
}
