package geom

// Pure coordinate transforms. Every function returns a new path; geometry is
// never mutated in place, since paths may be referenced from several layout
// candidates at once.

// TranslatePath returns the path shifted by (dx, dy).
func TranslatePath(path ClosedPath, dx, dy float64) ClosedPath {
	return mapPath(path, func(p Point) Point { return Pt(p.X+dx, p.Y+dy) })
}

// RotatePath returns the path rotated clockwise around centre.
func RotatePath(path ClosedPath, centre Point, angleDeg float64) ClosedPath {
	return mapPath(path, func(p Point) Point { return RotatePoint(p, centre, angleDeg) })
}

// MirrorPathX reflects every point across the vertical line x = axisX.
// Mirroring reverses winding and each arc's sweep sense; call ReversePath
// afterwards to restore clockwise winding.
func MirrorPathX(path ClosedPath, axisX float64) ClosedPath {
	segs := make([]Segment, len(path.Segments))
	fn := func(p Point) Point { return Pt(2*axisX-p.X, p.Y) }
	for i, s := range path.Segments {
		switch v := s.(type) {
		case Line:
			segs[i] = Line{From: fn(v.From), To: fn(v.To)}
		case Arc:
			segs[i] = Arc{From: fn(v.From), To: fn(v.To), Radius: v.Radius, LargeArc: v.LargeArc, Clockwise: !v.Clockwise}
		case Cubic:
			segs[i] = Cubic{From: fn(v.From), CP1: fn(v.CP1), CP2: fn(v.CP2), To: fn(v.To)}
		}
	}
	return ClosedPath{Segments: segs}
}

// ReversePath reverses the segment order and flips each segment end-for-end.
func ReversePath(path ClosedPath) ClosedPath {
	n := len(path.Segments)
	segs := make([]Segment, n)
	for i, s := range path.Segments {
		var flipped Segment
		switch v := s.(type) {
		case Line:
			flipped = Line{From: v.To, To: v.From}
		case Arc:
			flipped = Arc{From: v.To, To: v.From, Radius: v.Radius, LargeArc: v.LargeArc, Clockwise: !v.Clockwise}
		case Cubic:
			flipped = Cubic{From: v.To, CP1: v.CP2, CP2: v.CP1, To: v.From}
		}
		segs[n-1-i] = flipped
	}
	return ClosedPath{Segments: segs}
}

func mapPath(path ClosedPath, fn func(Point) Point) ClosedPath {
	segs := make([]Segment, len(path.Segments))
	for i, s := range path.Segments {
		segs[i] = mapSegment(s, fn)
	}
	return ClosedPath{Segments: segs}
}
