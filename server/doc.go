/*
Package server runs the experiment shell. Users connect to a server listening on port 8234 (eg. with `nc localhost
8234`), then the server reads commands from the incoming connection, evaluates them and prints the results.

Each connection is a session with its own CogServer client and process, RelEx manager, Elasticsearch store and series
of points. Sessions share nothing but the process hosting them, and evaluate one command at a time: a command only
starts when the previous one has finished.

Commands are evaluated in the `client` package, which keeps the state of the session. Most of the functionality that
the user cares about is encapsulated in the `api` package and in the packages it relies on.

The shell doesn't try to protect itself from malicious users.
*/
package server
