package cogserver

import (
	"context"

	"github.com/opencog/cogexp/timeseries"
)

// AttentionalFocus captures the atoms in the attentional focus at `timestep`.
// With `withScheme`, the Scheme dump of the focus is attached to the point.
func (c *Client) AttentionalFocus(ctx context.Context, timestep int64, withScheme bool) (timeseries.Point, error) {
	return c.Snapshot(ctx, AttentionalFocus, timestep, withScheme)
}

// AtomspaceSnapshot captures every atom at `timestep`.
func (c *Client) AtomspaceSnapshot(ctx context.Context, timestep int64, withScheme bool) (timeseries.Point, error) {
	return c.Snapshot(ctx, All, timestep, withScheme)
}

// Snapshot fetches the atoms selected by `filter` and builds a point out of them.
// The Scheme dump, if any, is taken after the atoms are fetched.
func (c *Client) Snapshot(ctx context.Context, filter Filter, timestep int64, withScheme bool) (timeseries.Point, error) {
	records, err := c.Atoms(ctx, filter)
	if err != nil {
		return timeseries.Point{}, err
	}
	var scheme *string
	if withScheme {
		dump := c.DumpAtomspaceScheme
		if filter == AttentionalFocus {
			dump = c.DumpAttentionalFocusScheme
		}
		s, err := dump(ctx)
		if err != nil {
			return timeseries.Point{}, err
		}
		scheme = &s
	}
	point, err := timeseries.BuildPoint(timestep, records, scheme)
	if err == nil {
		c.logger.Debug().Int64("timestep", timestep).Int("atoms", len(point.Atoms)).Stringer("filter", filter).Msg("snapshot")
	}
	return point, err
}
