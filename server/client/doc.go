/*
Package client implements the state interface required by the `api` package and the functions that modify that state
as a side effect. Such state describes an evaluation environment.

An evaluation environment models everything that affects the result of a command, other than the command itself:
the CogServer REST client and process, RelEx, the Elasticsearch store, the series of points captured so far and the
user name definitions.

Each incoming connection has its own evaluation environment, nothing is shared between sessions.

`Eval` makes sure that the evaluation environment is always consistent, eg. a snapshot with a timestep older than the
last one is rejected and leaves the series untouched. Commands then depend on the result of previously executed
commands.
*/
package client
