package timeseries

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesAppend(t *testing.T) {
	var s Series
	assert.Equal(t, int64(0), s.NextTimestep())
	_, ok := s.Last()
	assert.False(t, ok)

	require.NoError(t, s.Append(Point{Timestep: 0}))
	require.NoError(t, s.Append(Point{Timestep: 5, Atoms: []Atom{{"1", 2}}}))
	assert.Equal(t, int64(6), s.NextTimestep())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.AtomCount())

	for _, ts := range []int64{5, 4, -1} {
		err := s.Append(Point{Timestep: ts})
		var tsErr *TimestepError
		require.True(t, errors.As(err, &tsErr))
		assert.Equal(t, int64(5), tsErr.Last)
		assert.Equal(t, ts, tsErr.Got)
	}
	assert.Equal(t, 2, s.Len())

	p, ok := s.At(5)
	assert.True(t, ok)
	assert.Equal(t, []Atom{{"1", 2}}, p.Atoms)
	_, ok = s.At(3)
	assert.False(t, ok)
}

func TestSeriesPointsIsACopy(t *testing.T) {
	s, err := NewSeries(Point{Timestep: 1}, Point{Timestep: 2})
	require.NoError(t, err)
	points := s.Points()
	points[0].Timestep = 100
	first, _ := s.At(1)
	assert.Equal(t, int64(1), first.Timestep)

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, int64(0), s.NextTimestep())
}

func TestNewSeriesOutOfOrder(t *testing.T) {
	_, err := NewSeries(Point{Timestep: 2}, Point{Timestep: 1})
	assert.EqualError(t, err, "timestep 1 must be greater than the last timestep 2")
}
