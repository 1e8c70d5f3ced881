/*
Package timeseries models the state of a CogServer atomspace at discrete points in time.

A `Point` is a normalized snapshot: the short-term importance (STI) of each atom, tagged with a timestep, and optionally
the Scheme dump of the atoms it was taken from. `BuildPoint` projects the raw atom records returned by the CogServer
REST API into a `Point`, and a `Series` accumulates points in timestep order.

Nothing in this package performs I/O. Series are owned by whoever builds them and are not safe for concurrent use.
*/
package timeseries
