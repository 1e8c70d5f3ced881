package es

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// fakeNode emulates the handful of Elasticsearch endpoints used by Store, keeping documents in memory
type fakeNode struct {
	mu      sync.Mutex
	indices map[string][]json.RawMessage
	// documents whose body contains this string are rejected by bulk requests
	reject string
	// requests seen, as "METHOD /path"
	requests []string
	// open scroll contexts by id
	scrolls map[string]*cursor
	// number of scroll contexts ever opened
	scrollCount int
}

// cursor is the remaining documents of a scroll and the page size
type cursor struct {
	index string
	docs  []json.RawMessage
	size  int
}

func newFakeNode(t *testing.T) (*fakeNode, *httptest.Server) {
	node := &fakeNode{indices: make(map[string][]json.RawMessage), scrolls: make(map[string]*cursor)}
	server := httptest.NewServer(node)
	t.Cleanup(server.Close)
	return node, server
}

func (n *fakeNode) docs(index string) []json.RawMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.indices[index]
}

func notFound(w http.ResponseWriter, index string) {
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprintf(w, `{"error":{"type":"index_not_found_exception","reason":"no such index [%s]"},"status":404}`, index)
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requests = append(n.requests, r.Method+" "+r.URL.Path)
	w.Header().Set("Content-Type", "application/json")

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	index := parts[0]
	action := ""
	if len(parts) > 1 {
		action = parts[1]
	}

	switch {
	case r.URL.Path == "/" || r.URL.Path == "":
		fmt.Fprint(w, `{"name":"fake","cluster_name":"fake","version":{"number":"6.8.0"},"tagline":"You Know, for Search"}`)

	case index == "_cluster":
		fmt.Fprint(w, `{"cluster_name":"fake","status":"green"}`)

	case index == "_bulk":
		n.bulk(w, r)

	case index == "_search" && action == "scroll" && r.Method == http.MethodDelete:
		var body struct {
			ScrollId []string `json:"scroll_id"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		for _, id := range body.ScrollId {
			delete(n.scrolls, id)
		}
		fmt.Fprint(w, `{"succeeded":true,"num_freed":1}`)

	case index == "_search" && action == "scroll":
		var body struct {
			ScrollId string `json:"scroll_id"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		id := body.ScrollId
		if id == "" {
			id = r.URL.Query().Get("scroll_id")
		}
		c, ok := n.scrolls[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintf(w, `{"error":{"type":"search_context_missing_exception","reason":"No search context found for id [%s]"},"status":404}`, id)
			return
		}
		n.page(w, id, c)

	case action == "_search" && r.URL.Query().Get("scroll") != "":
		docs, ok := n.indices[index]
		if !ok {
			notFound(w, index)
			return
		}
		var body struct {
			Size int `json:"size"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.Size <= 0 {
			body.Size = 10
		}
		if s := r.URL.Query().Get("size"); s != "" {
			fmt.Sscan(s, &body.Size)
		}
		n.scrollCount++
		id := fmt.Sprintf("scroll-%d", n.scrollCount)
		c := &cursor{index: index, docs: append([]json.RawMessage{}, docs...), size: body.Size}
		n.scrolls[id] = c
		n.page(w, id, c)

	case action == "" && r.Method == http.MethodDelete:
		if _, ok := n.indices[index]; !ok {
			notFound(w, index)
			return
		}
		delete(n.indices, index)
		fmt.Fprint(w, `{"acknowledged":true}`)

	case action == "" && r.Method == http.MethodPut:
		n.indices[index] = make([]json.RawMessage, 0)
		fmt.Fprintf(w, `{"acknowledged":true,"shards_acknowledged":true,"index":"%s"}`, index)

	case action == "_refresh":
		if _, ok := n.indices[index]; !ok {
			notFound(w, index)
			return
		}
		fmt.Fprint(w, `{"_shards":{"total":1,"successful":1,"failed":0}}`)

	case action == "_count":
		docs, ok := n.indices[index]
		if !ok {
			notFound(w, index)
			return
		}
		fmt.Fprintf(w, `{"count":%d}`, len(docs))

	case action == "_search":
		docs, ok := n.indices[index]
		if !ok {
			notFound(w, index)
			return
		}
		hits := make([]string, len(docs))
		for i, d := range docs {
			hits[i] = fmt.Sprintf(`{"_index":"%s","_type":"_doc","_id":"%d","_score":1,"_source":%s}`, index, i, d)
		}
		fmt.Fprintf(w, `{"took":1,"timed_out":false,"hits":{"total":%d,"max_score":1,"hits":[%s]}}`,
			len(docs), strings.Join(hits, ","))

	default:
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, `{"error":{"type":"unsupported","reason":"%s %s"},"status":400}`, r.Method, r.URL.Path)
	}
}

// page writes the next page of a scroll and advances it
func (n *fakeNode) page(w http.ResponseWriter, id string, c *cursor) {
	total := len(c.docs)
	size := c.size
	if size > len(c.docs) {
		size = len(c.docs)
	}
	hits := make([]string, size)
	for i, d := range c.docs[:size] {
		hits[i] = fmt.Sprintf(`{"_index":"%s","_type":"_doc","_id":"%d","_score":null,"_source":%s}`, c.index, i, d)
	}
	c.docs = c.docs[size:]
	fmt.Fprintf(w, `{"_scroll_id":"%s","took":1,"timed_out":false,"hits":{"total":%d,"max_score":null,"hits":[%s]}}`,
		id, total, strings.Join(hits, ","))
}

// bulk handles pairs of action/document lines
func (n *fakeNode) bulk(w http.ResponseWriter, r *http.Request) {
	scanner := bufio.NewScanner(r.Body)
	scanner.Buffer(make([]byte, 1024*1024), 10*1024*1024)
	items := make([]string, 0)
	var errs bool
	for scanner.Scan() {
		var action map[string]struct {
			Index string `json:"_index"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &action); err != nil || !scanner.Scan() {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		index := action["index"].Index
		doc := append(json.RawMessage{}, scanner.Bytes()...)
		id := len(n.indices[index])
		if n.reject != "" && strings.Contains(string(doc), n.reject) {
			errs = true
			items = append(items, fmt.Sprintf(
				`{"index":{"_index":"%s","_type":"_doc","status":400,"error":{"type":"mapper_parsing_exception","reason":"rejected %d"}}}`,
				index, id))
			continue
		}
		n.indices[index] = append(n.indices[index], doc)
		items = append(items, fmt.Sprintf(`{"index":{"_index":"%s","_type":"_doc","_id":"%d","status":201,"result":"created"}}`, index, id))
	}
	fmt.Fprintf(w, `{"took":1,"errors":%t,"items":[%s]}`, errs, strings.Join(items, ","))
}
