package timeseries

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointMarshalJSON(t *testing.T) {
	for _, test := range []struct {
		point    Point
		expected string
	}{
		{
			Point{Timestep: 0},
			`{"timestep":0,"atoms":[],"scheme":null}`,
		},
		{
			Point{Timestep: 1, Atoms: []Atom{{"1", 7}, {"2", 3}}, Scheme: Text("(AtomSpace ...)")},
			`{"timestep":1,"atoms":[{"handle":1,"sti":7},{"handle":2,"sti":3}],"scheme":"(AtomSpace ...)"}`,
		},
		{
			Point{Timestep: 2, Atoms: []Atom{{"h-1", -0.5}}, Scheme: Text(`(Concept "a")`)},
			`{"timestep":2,"atoms":[{"handle":"h-1","sti":-0.5}],"scheme":"(Concept \"a\")"}`,
		},
	} {
		b, err := json.Marshal(test.point)
		require.NoError(t, err)
		assert.JSONEq(t, test.expected, string(b))
	}
}

func TestPointUnmarshalJSON(t *testing.T) {
	var p Point
	err := json.Unmarshal([]byte(`{"timestep": 3, "atoms": [{"handle": 1, "sti": 7}, {"handle": "a", "sti": 2.5}],
		"scheme": "(cog-af)", "extra": {"ignored": [1, 2]}}`), &p)
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.Timestep)
	assert.Equal(t, []Atom{{"1", 7}, {"a", 2.5}}, p.Atoms)
	assert.Equal(t, "(cog-af)", p.SchemeText())

	p = Point{}
	require.NoError(t, json.Unmarshal([]byte(`{"timestep": 1, "atoms": [], "scheme": null}`), &p))
	assert.Nil(t, p.Scheme)
	assert.Equal(t, []Atom{}, p.Atoms)

	assert.Error(t, json.Unmarshal([]byte(`{"timestep": "x"}`), &p))
}

func TestHandleJSON(t *testing.T) {
	for _, test := range []struct {
		in, out string
		handle  Handle
	}{
		{`1`, `1`, "1"},
		{`"1"`, `1`, "1"},
		{`"abc"`, `"abc"`, "abc"},
		{`18446744073709551615`, `18446744073709551615`, "18446744073709551615"},
		{`"007"`, `"007"`, "007"},
		{`"-1"`, `"-1"`, "-1"},
		{`-1`, `"-1"`, "-1"},
		{`"+5"`, `"+5"`, "+5"},
		{`"18446744073709551616"`, `"18446744073709551616"`, "18446744073709551616"},
	} {
		var h Handle
		require.NoError(t, json.Unmarshal([]byte(test.in), &h))
		assert.Equal(t, test.handle, h)
		b, err := json.Marshal(h)
		require.NoError(t, err)
		assert.Equal(t, test.out, string(b))
	}
	var h Handle
	assert.Error(t, json.Unmarshal([]byte(`true`), &h))
}

func TestPointJSONLeadingZeroHandle(t *testing.T) {
	records, err := DecodeAtomRecords([]byte(`[{"handle":"007","attentionvalue":{"sti":2}},{"handle":"0","attentionvalue":{"sti":1}}]`))
	require.NoError(t, err)
	p, err := BuildPoint(1, records, nil)
	require.NoError(t, err)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `{"timestep":1,"atoms":[{"handle":"007","sti":2},{"handle":0,"sti":1}],"scheme":null}`, string(b))

	var back Point
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, p, back)
}
