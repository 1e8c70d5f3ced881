/*
Package export writes time series to delimited text files.

Each (point, atom) pair becomes one row: timestep, handle, sti and, optionally, the Scheme dump of the point.
There is no header row.

By default rows have a fixed width: when Scheme dumps are requested, points without one get an empty fourth column.
The `VariableWidth` layout reproduces the older behavior, where the fourth column is only written for points that
carry a Scheme dump, so a single file may mix rows of 3 and 4 columns. Rows in that layout end with "\r\n", as
the older files did.

The text format cannot tell an empty Scheme dump from a missing one: both are written as an empty field, or no
field, and read back as missing.
*/
package export
