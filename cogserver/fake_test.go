package cogserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeCogServer emulates the REST API of a CogServer and records the commands it receives
type fakeCogServer struct {
	*httptest.Server
	mu       sync.Mutex
	atoms    string
	af       string
	dot      string
	replies  map[string]string
	shell    []string
	scheme   []string
	failWith int
}

func newFakeCogServer(t *testing.T) *fakeCogServer {
	f := &fakeCogServer{
		atoms:   `[]`,
		af:      `[]`,
		replies: make(map[string]string),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1.1/atoms", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.fail(w) {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Query().Get("dot") == "True":
			body, _ := json.Marshal(map[string]string{"result": f.dot})
			w.Write(body)
		case r.URL.Query().Get("filterby") == "attentionalfocus":
			w.Write([]byte(`{"result": {"atoms": ` + f.af + `, "complete": true}}`))
		default:
			w.Write([]byte(`{"result": {"atoms": ` + f.atoms + `, "complete": true}}`))
		}
	})
	mux.HandleFunc("/api/v1.1/shell", func(w http.ResponseWriter, r *http.Request) {
		cmd := decodeCommand(t, r)
		f.mu.Lock()
		defer f.mu.Unlock()
		f.shell = append(f.shell, cmd)
		if f.fail(w) {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "success"}`))
	})
	mux.HandleFunc("/api/v1.1/scheme", func(w http.ResponseWriter, r *http.Request) {
		cmd := decodeCommand(t, r)
		f.mu.Lock()
		defer f.mu.Unlock()
		f.scheme = append(f.scheme, cmd)
		if f.fail(w) {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		body, _ := json.Marshal(map[string]string{"response": f.replies[cmd]})
		w.Write(body)
	})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeCogServer) fail(w http.ResponseWriter) bool {
	if f.failWith == 0 {
		return false
	}
	http.Error(w, "boom", f.failWith)
	return true
}

func (f *fakeCogServer) restURL() string {
	return f.URL + "/api/v1.1/"
}

func (f *fakeCogServer) schemeCommands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.scheme...)
}

func (f *fakeCogServer) shellCommands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.shell...)
}

func decodeCommand(t *testing.T, r *http.Request) string {
	var body struct {
		Command string `json:"command"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Errorf("bad request body: %v", err)
	}
	return body.Command
}
