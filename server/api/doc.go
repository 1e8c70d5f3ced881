package api

/*
Package `api` provides most of the read-eval-print-loop (repl) functionality that the experiment shell needs.

This includes a subpackage `io` with functions that do not necessarily are IO bound, but they are meant to be used
in a IO context, for example the `read` and `print` parts of a repl.

It does not expose an `eval` function as such, but the printable side of most shell commands: status, help, dumps and
diffs of points, name definitions. All of them return printable data (usually strings) describing the outcome.
Some functions return 2 arguments, the second one representing a side effect to be performed.

Functions in this package do never modify state, instead this package exposes a `State` interface that must be
implemented and managed externally (see the `client` package).
*/
