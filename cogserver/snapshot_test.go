package cogserver

import (
	"context"
	"errors"
	"testing"

	"github.com/opencog/cogexp/timeseries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshots(t *testing.T) {
	f := newFakeCogServer(t)
	f.atoms = someAtoms
	f.af = `[{"handle": 1, "attentionvalue": {"sti": 5}}]`
	f.replies["(cog-af)\n"] = "(ConceptNode \"cat\")"
	f.replies["(cog-prt-atomspace)\n"] = "(AtomSpace ...)"
	c := New(f.restURL())
	ctx := context.Background()

	p, err := c.AttentionalFocus(ctx, 3, false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.Timestep)
	assert.Equal(t, []timeseries.Atom{{Handle: "1", STI: 5}}, p.Atoms)
	assert.Nil(t, p.Scheme)
	assert.Len(t, f.schemeCommands(), 0)

	p, err = c.AttentionalFocus(ctx, 4, true)
	require.NoError(t, err)
	require.NotNil(t, p.Scheme)
	assert.Equal(t, "(ConceptNode \"cat\")", *p.Scheme)

	p, err = c.AtomspaceSnapshot(ctx, 5, true)
	require.NoError(t, err)
	assert.Equal(t, []timeseries.Atom{{Handle: "1", STI: 5}, {Handle: "2", STI: -1.5}}, p.Atoms)
	assert.Equal(t, "(AtomSpace ...)", p.SchemeText())
}

func TestSnapshotMissingField(t *testing.T) {
	f := newFakeCogServer(t)
	f.af = `[{"handle": 1, "attentionvalue": {"sti": 5}}, {"handle": 2, "attentionvalue": {"lti": 1}}]`
	c := New(f.restURL())

	_, err := c.AttentionalFocus(context.Background(), 0, false)
	var missing *timeseries.MissingFieldError
	require.True(t, errors.As(err, &missing), "%v", err)
	assert.Equal(t, 1, missing.Index)
	assert.Equal(t, "attentionvalue.sti", missing.Field)
}
