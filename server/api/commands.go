package api

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	s "strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/opencog/cogexp/server/api/io"
	"github.com/opencog/cogexp/server/strcoll"
	"github.com/opencog/cogexp/timeseries"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// returns the last N lines of log up to 1k containing substr, highlighting errors and warnings
func Tail(log []string, N int, subStr string) string {
	w := io.NewBufferWriter()
	ret := make([]string, 0)
	for _, line := range log {
		if s.Contains(line, subStr) {
			ret = append(ret, line)
		}
	}
	N = int(math.Min(float64(N), 1000))
	tailN := int(math.Max(0, float64(len(ret)-N)))
	for _, line := range ret[tailN:] {
		if s.Contains(line, "ERROR") || s.Contains(line, "Error:") {
			io.Reply(w, io.Red)
		} else if s.Contains(line, "WARN") {
			io.Reply(w, io.Yellow)
		} else {
			io.Reply(w, io.Grey)
		}
		io.ReplyNL(w, line)
	}
	io.ReplyNL(w, io.Yellow, fmt.Sprintf("[time now %s]", time.Now().Format(time.RFC3339)))
	return w.String()
}

// returns formatted name definitions containing `match` in either left or right side, or all if `match` is empty
func NameDefinitions(nameDefs map[string][]string, match string) string {
	w := io.NewBufferWriter()
	if len(nameDefs) == 0 {
		io.ReplyNL(w, io.Grey+"nothing to show")
		return w.String()
	}
	keys := make([]string, 0)
	for k := range nameDefs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := nameDefs[k]
		cmd := s.Join(v, " ")
		if match == "" || s.Contains(k, match) || s.Contains(cmd, match) {
			io.ReplyNL(w, io.Magenta+k+io.Grey+" "+cmd)
		}
	}
	return w.String()
}

// defines a name and returns a new name definitions map
// a name definition maps 1 word to several words
// cmd examples:
// `tick diffuse ; update ; snapshot af` maps `tick` to 3 commands
// `boost set stimulus $` maps `boost 100` to `set stimulus 100`
// `rm tick` (will remove the `tick` definition and cause commands using it to fail)
func Define(usr string, fw io.FileWriter, reserved, cmd []string, nameDefs map[string][]string) (string, map[string][]string) {
	var err error
	out := "ok"
	m := strcoll.Copy(nameDefs)
	w := io.NewBufferWriter()
	left, right := strcoll.Nth(0, cmd), strcoll.Rest(1, cmd)
	if left == "rm" {
		// this might leave dangling names
		delete(m, strcoll.Nth(0, right))
		err = io.StoreDefs(usr, fw, m)
	} else {
		if strcoll.Contains(left, reserved) {
			err = errors.New(left + " is a reserved word")
		} else if strcoll.Contains(left, right) {
			err = errors.New(left + " can't appear in the right side")
		} else {
			if v, ok := m[left]; ok {
				out = "updated old value: " + s.Join(v, " ")
			}
			m[left] = right
			err = io.StoreDefs(usr, fw, m)
		}
	}
	io.ReplyEither(w, err, io.Grey+out)
	return w.String(), m
}

// Status describes the CogServer process, the document store and the series of the session.
func Status(ctx context.Context, state State) *io.BufferWriter {
	w := io.NewBufferWriter()

	cog := state.CogServer()
	running := "stopped"
	if cog.IsRunning() {
		running = fmt.Sprintf("running (pid %d)", cog.Pid())
	} else if cog.Pid() == 0 {
		running = "not started from this session"
	}
	io.ReplyEitherNL(w, nil, io.Grey+fmt.Sprintf("CogServer [%s]: %s", cog.Url(), running))

	if store := state.Store(); store == nil {
		io.ReplyNL(w, io.Grey+"Elasticsearch: "+io.Red+"not configured "+io.Grey+fmt.Sprintf("(%v)", state.StoreErr()))
	} else {
		health, err := store.Health(ctx)
		var docs int64
		if err == nil {
			docs, err = store.Count(ctx)
		}
		io.Reply(w, io.Grey+fmt.Sprintf("Elasticsearch [%s]: ", store))
		io.ReplyEitherNL(w, err, io.Grey+printer.Sprintf("%s , %d docs", health, docs))
	}

	series := state.Series()
	io.ReplyNL(w, io.Grey+printer.Sprintf("Series: %d points, %d atoms, next timestep %d",
		series.Len(), series.AtomCount(), series.NextTimestep()))
	return w
}

// SeriesSummary describes the points accumulated so far.
func SeriesSummary(series *timeseries.Series) string {
	w := io.NewBufferWriter()
	if series.Len() == 0 {
		io.ReplyNL(w, io.Grey+"empty series")
		return w.String()
	}
	points := series.Points()
	var withScheme int
	for _, p := range points {
		if p.HasScheme() {
			withScheme++
		}
	}
	ts := strcoll.NewTuples()
	ts.Add("points", len(points))
	ts.Add("atoms", series.AtomCount())
	ts.Add("first timestep", points[0].Timestep)
	ts.Add("last timestep", points[len(points)-1].Timestep)
	ts.Add("with scheme", withScheme)
	io.ReplyNL(w, io.Grey+ts.Format(16))
	return w.String()
}

// ListPoints prints one line per point.
func ListPoints(points []timeseries.Point) string {
	w := io.NewBufferWriter()
	if len(points) == 0 {
		io.ReplyNL(w, io.Grey+"nothing to show")
		return w.String()
	}
	for _, p := range points {
		line := printer.Sprintf("timestep %d: %d atoms", p.Timestep, len(p.Atoms))
		if p.HasScheme() {
			line += " (scheme)"
		}
		io.ReplyNL(w, io.Magenta+line+io.Grey)
	}
	return w.String()
}

func pointAt(series *timeseries.Series, arg string) (timeseries.Point, error) {
	if arg == "" {
		return timeseries.Point{}, errors.New("a timestep is required")
	}
	ts, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return timeseries.Point{}, fmt.Errorf("%s is not a timestep", arg)
	}
	p, ok := series.At(ts)
	if !ok {
		return timeseries.Point{}, fmt.Errorf("no point at timestep %d", ts)
	}
	return p, nil
}

// Dump pretty prints the point at the timestep given by `arg`.
func Dump(series *timeseries.Series, arg string) string {
	w := io.NewBufferWriter()
	p, err := pointAt(series, arg)
	io.ReplyEither(w, err, io.Grey+dumper.Sdump(p))
	return w.String()
}

// Diff shows what changed between two points, as a unified diff of their Scheme dumps.
// Points captured without Scheme dump are compared by their atoms.
func Diff(series *timeseries.Series, from, to string) string {
	w := io.NewBufferWriter()
	a, err := pointAt(series, from)
	var b timeseries.Point
	if err == nil {
		b, err = pointAt(series, to)
	}
	var diff string
	if err == nil {
		diff, err = difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(diffable(a)),
			B:        difflib.SplitLines(diffable(b)),
			FromFile: "timestep " + from,
			ToFile:   "timestep " + to,
			Context:  2,
		})
	}
	if err != nil {
		io.ReplyEitherNL(w, err)
		return w.String()
	}
	if diff == "" {
		io.ReplyNL(w, io.Grey+"no differences")
		return w.String()
	}
	for _, line := range s.Split(s.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case s.HasPrefix(line, "+++"), s.HasPrefix(line, "---"):
			io.ReplyNL(w, io.Grey+line)
		case s.HasPrefix(line, "+"):
			io.ReplyNL(w, io.Green+line)
		case s.HasPrefix(line, "-"):
			io.ReplyNL(w, io.Red+line)
		case s.HasPrefix(line, "@@"):
			io.ReplyNL(w, io.Cyan+line)
		default:
			io.ReplyNL(w, io.Grey+line)
		}
	}
	return w.String()
}

func diffable(p timeseries.Point) string {
	if p.HasScheme() {
		return p.SchemeText()
	}
	return p.String()
}
