package geom

// Segment is one piece of a path: a straight line, a circular arc, or a cubic
// curve. The set is sealed; every consumer (serialisers, transforms, the
// polyline sampler) switches exhaustively over the three kinds, so adding a
// kind forces all of them to be updated.
type Segment interface {
	// Start returns the segment's first point.
	Start() Point
	// End returns the segment's last point.
	End() Point

	sealed()
}

// Line is a straight segment.
type Line struct {
	From Point
	To   Point
}

func (l Line) Start() Point { return l.From }
func (l Line) End() Point   { return l.To }
func (Line) sealed()        {}

// Arc is a circular arc between two points, using the standard
// two-point/radius/flags parameterization. The flags map one-to-one onto the
// SVG arc command's large-arc and sweep flags.
type Arc struct {
	From      Point
	To        Point
	Radius    float64
	LargeArc  bool
	Clockwise bool
}

func (a Arc) Start() Point { return a.From }
func (a Arc) End() Point   { return a.To }
func (Arc) sealed()        {}

// Cubic is a cubic curve with two control points.
type Cubic struct {
	From Point
	CP1  Point
	CP2  Point
	To   Point
}

func (c Cubic) Start() Point { return c.From }
func (c Cubic) End() Point   { return c.To }
func (Cubic) sealed()        {}

// mapSegment applies fn to every point of a segment, preserving the segment
// kind and flags.
func mapSegment(s Segment, fn func(Point) Point) Segment {
	switch v := s.(type) {
	case Line:
		return Line{From: fn(v.From), To: fn(v.To)}
	case Arc:
		return Arc{From: fn(v.From), To: fn(v.To), Radius: v.Radius, LargeArc: v.LargeArc, Clockwise: v.Clockwise}
	case Cubic:
		return Cubic{From: fn(v.From), CP1: fn(v.CP1), CP2: fn(v.CP2), To: fn(v.To)}
	}
	panic("geom: unknown segment kind")
}
