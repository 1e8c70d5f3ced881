package export

import (
	"bytes"
	"encoding/csv"
	stdio "io"
	"strconv"

	"github.com/opencog/cogexp/server/api/io"
	"github.com/opencog/cogexp/timeseries"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Layout decides how many columns a row has when Scheme dumps are included.
type Layout int

const (
	// FixedWidth writes 4 columns in every row, leaving the scheme column empty for points without a dump.
	FixedWidth Layout = iota
	// VariableWidth writes the scheme column only for points that have a dump, and ends rows with \r\n.
	VariableWidth
)

// CSVOptions tweaks the rows written by WriteCSV.
type CSVOptions struct {
	// adds the Scheme dump of each point as a fourth column
	IncludeScheme bool
	Layout        Layout
}

var rowsWritten = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "cogexp",
	Subsystem: "export",
	Name:      "csv_rows_total",
	Help:      "Rows written to delimited text exports.",
})

// Row returns the fields of the row for atom `a` of point `p`.
// An empty Scheme dump and a missing one give the same fields.
func Row(p timeseries.Point, a timeseries.Atom, opts CSVOptions) []string {
	row := []string{
		strconv.FormatInt(p.Timestep, 10),
		a.Handle.String(),
		strconv.FormatFloat(a.STI, 'f', -1, 64),
	}
	if !opts.IncludeScheme {
		return row
	}
	switch {
	case p.HasScheme() && *p.Scheme != "":
		row = append(row, *p.Scheme)
	case opts.Layout == FixedWidth:
		row = append(row, "")
	}
	return row
}

// WriteCSV writes one row per atom of every point to `w`, returning the number of rows written.
// Output is deterministic for a given input.
func WriteCSV(w stdio.Writer, points []timeseries.Point, opts CSVOptions) (int, error) {
	cw := csv.NewWriter(w)
	cw.UseCRLF = opts.Layout == VariableWidth
	var n int
	for _, p := range points {
		for _, a := range p.Atoms {
			if err := cw.Write(Row(p, a, opts)); err != nil {
				return n, err
			}
			n++
		}
	}
	cw.Flush()
	rowsWritten.Add(float64(n))
	return n, cw.Error()
}

// ExportCSV writes the series to `destination` through `fw`, creating or overwriting it.
// It returns the number of bytes written. Failures are reported as *ExportError.
func ExportCSV(fw io.FileWriter, destination string, points []timeseries.Point, opts CSVOptions) (int, error) {
	var buf bytes.Buffer
	if _, err := WriteCSV(&buf, points, opts); err != nil {
		return 0, &ExportError{destination, err}
	}
	if err := fw.WriteToFile(destination, buf.Bytes()); err != nil {
		return 0, &ExportError{destination, err}
	}
	return buf.Len(), nil
}

// ReadCSV parses rows written by WriteCSV, with or without scheme column and in any layout.
// Consecutive rows with the same timestep make up one point. An empty scheme field is read back as a missing
// Scheme dump, whatever the layout: a point whose dump was the empty string comes back without one.
func ReadCSV(r stdio.Reader) (*timeseries.Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	series := &timeseries.Series{}
	var current *timeseries.Point
	flush := func() error {
		if current == nil {
			return nil
		}
		return series.Append(*current)
	}
	for line := 1; ; line++ {
		record, err := cr.Read()
		if err == stdio.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 3 || len(record) > 4 {
			return nil, errors.Errorf("line %d: expected 3 or 4 fields, got %d", line, len(record))
		}
		ts, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: timestep", line)
		}
		sti, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: sti", line)
		}
		if current == nil || current.Timestep != ts {
			if err := flush(); err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
			current = &timeseries.Point{Timestep: ts, Atoms: make([]timeseries.Atom, 0)}
			if len(record) == 4 && record[3] != "" {
				current.Scheme = timeseries.Text(record[3])
			}
		}
		current.Atoms = append(current.Atoms, timeseries.Atom{Handle: timeseries.Handle(record[1]), STI: sti})
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return series, nil
}
