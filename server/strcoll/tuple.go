package strcoll

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// numbers are printed with thousands separators
var printer = message.NewPrinter(language.English)

type Tuple struct {
	First, Second string
}

// Tuples is an ordered list of key/value pairs, printed as an aligned table.
type Tuples struct {
	data []Tuple
}

func NewTuples() Tuples {
	return Tuples{data: make([]Tuple, 0)}
}

func (ts *Tuples) Add(first string, second interface{}) {
	ts.data = append(ts.data, Tuple{first, printer.Sprint(second)})
}

func (ts Tuples) Len() int {
	return len(ts.data)
}

// Format pads the keys with dots up to `padding` characters.
func (ts Tuples) Format(padding int) string {
	lines := make([]string, 0)
	for _, t := range ts.data {
		first, second := t.First, t.Second
		if n := padding - len(first); n > 0 {
			first += " " + strings.Repeat(".", n)
		}
		lines = append(lines, first+" "+second)
	}
	return strings.Join(lines, "\n")
}
