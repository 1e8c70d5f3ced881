package timeseries

import "strconv"

// Point is the state of some atoms at a given timestep.
type Point struct {
	Timestep int64  `json:"timestep"`
	Atoms    []Atom `json:"atoms"`
	// Scheme representation of the atoms, nil if it was not captured
	Scheme *string `json:"scheme"`
}

// BuildPoint projects `records` into a Point, keeping their order.
// Records are not filtered, sorted or de-duplicated. The first record without a handle or an STI value aborts the
// projection with a *MissingFieldError.
func BuildPoint(timestep int64, records []AtomRecord, scheme *string) (Point, error) {
	atoms := make([]Atom, 0, len(records))
	for idx, r := range records {
		if err := r.Validate(idx); err != nil {
			return Point{}, err
		}
		atoms = append(atoms, Atom{Handle: *r.Handle, STI: *r.AttentionValue.STI})
	}
	return Point{Timestep: timestep, Atoms: atoms, Scheme: scheme}, nil
}

// HasScheme returns true if a Scheme dump was captured along with the point.
func (p Point) HasScheme() bool {
	return p.Scheme != nil
}

// SchemeText returns the Scheme dump or the empty string.
func (p Point) SchemeText() string {
	if p.Scheme == nil {
		return ""
	}
	return *p.Scheme
}

// Atom returns the STI of the first atom with the given handle.
func (p Point) Atom(h Handle) (float64, bool) {
	for _, a := range p.Atoms {
		if a.Handle == h {
			return a.STI, true
		}
	}
	return 0, false
}

// String is a compact text with one "handle sti" line per atom, used when diffing points without Scheme dumps.
func (p Point) String() string {
	var b []byte
	for _, a := range p.Atoms {
		b = append(b, a.Handle...)
		b = append(b, ' ')
		b = strconv.AppendFloat(b, a.STI, 'f', -1, 64)
		b = append(b, '\n')
	}
	return string(b)
}

// Text returns a pointer to s, handy to fill in Point.Scheme.
func Text(s string) *string {
	return &s
}
