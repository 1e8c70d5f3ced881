package timeseries

// Series is an ordered sequence of points with strictly increasing timesteps.
// The zero value is an empty series ready to use.
type Series struct {
	points []Point
}

// NewSeries returns a series holding `points`, which must be in increasing timestep order.
func NewSeries(points ...Point) (*Series, error) {
	s := &Series{points: make([]Point, 0, len(points))}
	for _, p := range points {
		if err := s.Append(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Append adds a point at the end of the series.
// It fails with a *TimestepError if the point doesn't come strictly after the last one.
func (s *Series) Append(p Point) error {
	if last, ok := s.Last(); ok && p.Timestep <= last.Timestep {
		return &TimestepError{Last: last.Timestep, Got: p.Timestep}
	}
	s.points = append(s.points, p)
	return nil
}

// NextTimestep returns the timestep to use for a new point: 0 for an empty series, the last timestep plus one otherwise.
func (s *Series) NextTimestep() int64 {
	if last, ok := s.Last(); ok {
		return last.Timestep + 1
	}
	return 0
}

func (s *Series) Len() int {
	return len(s.points)
}

// Last returns the most recent point, if any.
func (s *Series) Last() (Point, bool) {
	if len(s.points) == 0 {
		return Point{}, false
	}
	return s.points[len(s.points)-1], true
}

// At returns the point with the given timestep.
func (s *Series) At(timestep int64) (Point, bool) {
	for _, p := range s.points {
		if p.Timestep == timestep {
			return p, true
		}
	}
	return Point{}, false
}

// Points returns a copy of the points in the series.
func (s *Series) Points() []Point {
	ret := make([]Point, len(s.points))
	copy(ret, s.points)
	return ret
}

// AtomCount returns the number of (point, atom) pairs in the series, ie. the number of rows of a CSV export.
func (s *Series) AtomCount() int {
	var n int
	for _, p := range s.points {
		n += len(p.Atoms)
	}
	return n
}

// Reset empties the series.
func (s *Series) Reset() {
	s.points = nil
}
