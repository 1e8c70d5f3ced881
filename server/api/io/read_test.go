package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type m map[string][]string

func TestVariableInterpolation(t *testing.T) {
	for _, test := range []struct {
		input, output []string
		hasErr        bool
	}{
		{
			[]string{},
			[]string{},
			false,
		},
		{
			[]string{"a"},
			[]string{"a"},
			false,
		},
		{
			[]string{"a", "b", "c"},
			[]string{"a", "b", "c"},
			false,
		},
		{
			[]string{"$", ""},
			[]string{""},
			false,
		},
		{
			[]string{"$", "$", "a", "b"},
			[]string{"a", "b"},
			false,
		},
		{
			[]string{"$", "b", "$", "d", "a", "c"},
			[]string{"a", "b", "c", "d"},
			false,
		},
		{
			[]string{"$"},
			[]string{"$"},
			true,
		},
		{
			[]string{"$", "$"},
			[]string{"$", "$"},
			true,
		},
		{
			[]string{"a", "$"},
			[]string{"a", "$"},
			true,
		},
		{
			[]string{"a", "$", "$", "b"},
			[]string{"a", "$", "$", "b"},
			true,
		},
	} {
		out, err := interpolateVars(test.input, nil)
		assert.Equal(t, test.output, out)
		assert.Equal(t, test.hasErr, err != nil)
	}
}

func TestStringSubstitution(t *testing.T) {

	for _, test := range []struct {
		defs          m
		input, output []string
		hasErr        bool
	}{
		{
			m{},
			[]string{},
			[]string{},
			false,
		},
		{
			m{},
			[]string{"a", "b"},
			[]string{"a", "b"},
			false,
		},
		{
			m{"a": []string{"b"}},
			[]string{"b"},
			[]string{"b"},
			false,
		},
		{
			m{"a": []string{"b"}},
			[]string{"a"},
			[]string{"b"},
			false,
		},
		{
			m{"a": []string{"b", "c"}},
			[]string{"a", "d"},
			[]string{"b", "c", "d"},
			false,
		},
		{
			m{"a": []string{"b", "c"}, "d": []string{"e", "f"}},
			[]string{"a", "d"},
			[]string{"b", "c", "e", "f"},
			false,
		},
		{
			m{"a": []string{"b", "c"}, "c": []string{"d", "e"}},
			[]string{"c"},
			[]string{"d", "e"},
			false,
		},
		{
			m{"a": []string{"b", "c"}, "c": []string{"d", "e"}},
			[]string{"a"},
			[]string{"b", "d", "e"},
			false,
		},
		{
			m{"a": []string{"b", "c"}, "c": []string{"d", "e"}},
			[]string{"a", "c", "c"},
			[]string{"b", "d", "e", "d", "e", "d", "e"},
			false,
		},
		{
			m{"a": []string{"b"}, "b": []string{"c"}, "c": []string{"d"}},
			[]string{"a"},
			[]string{"d"},
			false,
		},
		{
			m{"a": []string{"b", "c"}, "b": []string{"f", "g"}},
			[]string{"z", "a", "x", "b", "0"},
			[]string{"z", "f", "g", "c", "x", "f", "g", "0"},
			false,
		},

		{
			m{"a": []string{"b"}, "b": []string{"a"}},
			[]string{"a"},
			[]string{"a"},
			true,
		},
	} {
		out, err := substituteN(test.defs, test.input)
		assert.Equal(t, test.output, out)
		assert.Equal(t, test.hasErr, err != nil)
	}
}

func TestRead(t *testing.T) {
	read := Read(m{
		"x":  []string{"$", "y"},
		"y":  []string{"z"},
		"g":  []string{"h"},
		"h":  []string{"$"},
		"fa": []string{"snapshot", "af", "--scheme"},
	},
	)
	for _, test := range []struct {
		input  string
		output [][]string
		errMsg string
	}{
		{
			"",
			[][]string{},
			"",
		},
		{
			"a",
			[][]string{{"a"}},
			"",
		},
		{
			";",
			[][]string{},
			"",
		},
		{
			"a; b",
			[][]string{{"a;", "b"}},
			"",
		},
		{
			"a b ; d",
			[][]string{{"a", "b"}, {"d"}},
			"",
		},
		{
			"a ; y",
			[][]string{{"a"}, {"z"}},
			"",
		},
		{
			"$ a b",
			[][]string{{"b", "a"}},
			"",
		},
		{
			"a x 1",
			[][]string{{"a", "1", "z"}},
			"",
		},
		{
			"a ; x ; 2 1",
			[][]string{{"a"}, {"1", "z"}, {"2"}},
			"",
		},
		{
			"h g 1",
			[][]string{{"$", "$", "1"}},
			"too many variables\n",
		},
		{
			"diffuse ; fa -t 3",
			[][]string{{"diffuse"}, {"snapshot", "af", "--scheme", "-t", "3"}},
			"",
		},
		{
			"define x 1 ; x",
			[][]string{{"define", "x", "1", ";", "x"}},
			"",
		},
		{
			"x ; define x 1",
			[][]string{},
			"define can only be the first word in a line\n",
		},
		{
			// scheme definitions are not name definitions
			"scheme (define n 1)",
			[][]string{{"scheme", "(define", "n", "1)"}},
			"",
		},
	} {
		out, err := read(test.input, nil)
		assert.Equal(t, test.output, out, test.input)
		assert.Equal(t, test.errMsg, errMsg(err))
	}
}

func TestParseCmdOptions(t *testing.T) {
	cmd := []string{"snapshot", "--scheme", "af", "--foo", "-t", "3", "--name", "bar"}

	cmd, str := ParseCmdStringOption(cmd, "--name", "DEFAULT")
	assert.Equal(t, "bar", str)
	cmd, str2 := ParseCmdStringOption(cmd, "--name2", "DEFAULT")
	assert.Equal(t, "DEFAULT", str2)

	cmd, b := ParseCmdBoolOption(cmd, "--scheme")
	assert.Equal(t, true, b)
	cmd, v := ParseCmdBoolOption(cmd, "--compat")
	assert.Equal(t, false, v)

	cmd, i := ParseCmdIntOption(cmd, "-t", 10)
	assert.Equal(t, 3, i)
	cmd, i2 := ParseCmdIntOption(cmd, "-n", 10)
	assert.Equal(t, 10, i2)

	assert.Equal(t, []string{"snapshot", "af", "--foo"}, cmd)

	_, i3 := ParseCmdIntOption([]string{"-t", "x"}, "-t", 7)
	assert.Equal(t, 7, i3)
}

func TestParseCmdOptionDoesNotAlias(t *testing.T) {
	original := []string{"a", "--scheme", "b"}
	rest, _ := ParseCmdBoolOption(original, "--scheme")
	assert.Equal(t, []string{"a", "b"}, rest)
	assert.Equal(t, []string{"a", "--scheme", "b"}, original)
}

func TestParseFloat(t *testing.T) {
	v, err := ParseFloat("0.25")
	assert.NoError(t, err)
	assert.Equal(t, 0.25, v)

	_, err = ParseFloat("")
	assert.EqualError(t, err, "a numeric value is required")
	_, err = ParseFloat("lots")
	assert.EqualError(t, err, "lots is not a number")
}

func errMsg(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
