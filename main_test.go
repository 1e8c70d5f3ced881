package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/opencog/cogexp/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCogServer answers snapshots with one more atom after every agent step
type fakeCogServer struct {
	*httptest.Server
	mu    sync.Mutex
	steps []string
}

func newFakeCogServer(t *testing.T) *fakeCogServer {
	f := &fakeCogServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1.1/atoms", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		n := len(f.steps)
		f.mu.Unlock()
		atoms := make([]string, 0)
		for i := 0; i <= n; i++ {
			atoms = append(atoms, `{"handle":`+string(rune('1'+i))+`,"attentionvalue":{"sti":10}}`)
		}
		w.Write([]byte(`{"result":{"atoms":[` + strings.Join(atoms, ",") + `]}}`))
	})
	mux.HandleFunc("/api/v1.1/shell", func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		buf.ReadFrom(r.Body)
		f.mu.Lock()
		f.steps = append(f.steps, buf.String())
		f.mu.Unlock()
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/api/v1.1/scheme", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"(atoms)"}`))
	})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func testConfig(t *testing.T, f *fakeCogServer) config.Config {
	u, err := url.Parse(f.URL)
	require.NoError(t, err)
	t.Setenv("COGEXP_REST_HOST", u.Hostname())
	t.Setenv("COGEXP_REST_PORT", u.Port())
	cfg, err := config.Load("")
	require.NoError(t, err)
	return *cfg
}

func TestRecord(t *testing.T) {
	f := newFakeCogServer(t)
	cfg := testConfig(t, f)
	file := filepath.Join(t.TempDir(), "sti.csv")

	series, err := record(context.Background(), cfg, recording{
		Steps:  3,
		Agent:  "HebbianUpdatingAgent",
		Focus:  true,
		Scheme: true,
		CSV:    file,
	}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 3, series.Len())
	assert.Equal(t, 6, series.AtomCount())
	assert.Len(t, f.steps, 2)
	assert.Contains(t, f.steps[0], "agents-step opencog::HebbianUpdatingAgent")

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "0,1,10,(atoms)\n1,1,10,(atoms)\n1,2,10,(atoms)\n2,1,10,(atoms)\n2,2,10,(atoms)\n2,3,10,(atoms)\n",
		string(b))
}

func TestRecordInvalidSteps(t *testing.T) {
	_, err := record(context.Background(), config.Defaults(), recording{}, zerolog.Nop())
	assert.EqualError(t, err, "invalid number of steps 0")
}

func TestRecordUnreachable(t *testing.T) {
	f := newFakeCogServer(t)
	cfg := testConfig(t, f)
	f.Close()

	series, err := record(context.Background(), cfg, recording{Steps: 2}, zerolog.Nop())
	assert.Error(t, err)
	assert.Equal(t, 0, series.Len())
}

func TestRecordCommand(t *testing.T) {
	f := newFakeCogServer(t)
	testConfig(t, f)
	file := filepath.Join(t.TempDir(), "sti.csv")

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(context.Background(), []string{"cogexp", "--log-level", "error", "record", "--steps", "2", "--csv", file})
	require.NoError(t, err)
	assert.Equal(t, "points .......... 2\natoms ........... 3\nlast timestep ... 1\n", out.String())

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "0,1,10\n1,1,10\n1,2,10\n", string(b))
}

func TestRecordCommandBadConfig(t *testing.T) {
	app := newApp()
	err := app.Run(context.Background(), []string{"cogexp", "--config", filepath.Join(t.TempDir(), "missing.yml"),
		"record", "--steps", "1"})
	assert.ErrorContains(t, err, "reading configuration file")
}
