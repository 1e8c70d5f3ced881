/*
Package es stores time series in Elasticsearch, one document per point.

Points of a series go to a single index, named after a database and a collection (eg. "attention-timeseries-points").
`ReplaceAll` is destructive: it deletes the index before writing, so the index only ever holds the last series
exported with it. `Append` adds documents without deleting anything.
*/
package es

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olivere/elastic"
	"github.com/opencog/cogexp/timeseries"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	local   = "http://localhost:9200"
	docType = "_doc"
	// points requested per scroll page by Fetch
	pageSize = 1000
)

var docsIndexed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "cogexp",
	Subsystem: "store",
	Name:      "documents_indexed_total",
	Help:      "Points written to the document store, by operation.",
}, []string{"op"})

// Store holds an elasticsearch client plus the URL and the index where points are saved.
type Store struct {
	*elastic.Client
	Url string
	// name of the index holding the points
	Collection string
	// points per scroll page, pageSize if zero
	PageSize int
}

// IndexName builds the index name for a collection within a database.
// Elasticsearch index names must be lowercase.
func IndexName(database, collection string) string {
	return strings.ToLower(database + "-" + collection)
}

// NewStore returns a client connected to an Elasticsearch node at `url` with the given credentials.
// "local" is short for http://localhost:9200
// No request is made until the store is used.
func NewStore(url, username, password, database, collection string) (*Store, error) {
	if url == "local" || url == "" {
		url = local
	}
	opts := []elastic.ClientOptionFunc{
		elastic.SetURL(url),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	}
	if username != "" {
		opts = append(opts, elastic.SetBasicAuth(username, password))
	}
	client, err := elastic.NewClient(opts...)
	if err != nil {
		return nil, &StorageUnavailableError{url, err}
	}
	return &Store{Client: client, Url: url, Collection: IndexName(database, collection)}, nil
}

// Ping checks that the node answers.
func (s *Store) Ping(ctx context.Context) error {
	if _, _, err := s.Client.Ping(s.Url).Do(ctx); err != nil {
		return &StorageUnavailableError{s.Url, err}
	}
	return nil
}

// Health returns the cluster health status, eg. "green".
func (s *Store) Health(ctx context.Context) (string, error) {
	if err := s.Ping(ctx); err != nil {
		return "", err
	}
	status, err := s.ClusterHealth().Do(ctx)
	if err != nil {
		return "", errors.Wrap(err, "cluster health")
	}
	return strings.TrimSpace(status.Status), nil
}

// ReplaceAll deletes every document in the index and writes `points`, one document each.
//
// THIS IS DESTRUCTIVE: whatever the index held before is gone, even if writing the new points fails afterwards.
// An empty series leaves an empty index. Bulk writes are not atomic: on a *StorageWriteError some points might
// have been written.
func (s *Store) ReplaceAll(ctx context.Context, points []timeseries.Point) error {
	if err := s.Ping(ctx); err != nil {
		return err
	}
	if _, err := s.DeleteIndex(s.Collection).Do(ctx); err != nil && !elastic.IsNotFound(err) {
		return s.classify(err, "delete index")
	}
	if _, err := s.CreateIndex(s.Collection).Do(ctx); err != nil {
		return s.classify(err, "create index")
	}
	return s.bulk(ctx, "replace", points)
}

// Append writes `points` next to the documents already in the index.
func (s *Store) Append(ctx context.Context, points []timeseries.Point) error {
	if err := s.Ping(ctx); err != nil {
		return err
	}
	if len(points) == 0 {
		return nil
	}
	return s.bulk(ctx, "append", points)
}

func (s *Store) bulk(ctx context.Context, op string, points []timeseries.Point) error {
	if len(points) == 0 {
		_, err := s.Refresh(s.Collection).Do(ctx)
		return s.classify(err, "refresh")
	}
	bulk := s.Bulk().Refresh("true")
	for _, p := range points {
		bulk.Add(elastic.NewBulkIndexRequest().Index(s.Collection).Type(docType).Doc(p))
	}
	resp, err := bulk.Do(ctx)
	if err != nil {
		return s.classify(err, "bulk insert")
	}
	failed := resp.Failed()
	docsIndexed.WithLabelValues(op).Add(float64(len(points) - len(failed)))
	if len(failed) > 0 {
		reasons := make([]string, 0, len(failed))
		for _, item := range failed {
			if item.Error != nil {
				reasons = append(reasons, item.Error.Reason)
			}
		}
		return &StorageWriteError{
			Index:  s.Collection,
			Failed: len(failed),
			Err:    errors.New(strings.Join(reasons, "; ")),
		}
	}
	return nil
}

// Fetch returns all the points saved in the index, in timestep order.
// It scrolls through the index one page at a time, so it is not bound by the index result window.
func (s *Store) Fetch(ctx context.Context) ([]timeseries.Point, error) {
	size := s.PageSize
	if size <= 0 {
		size = pageSize
	}
	scroll := s.Scroll(s.Collection).Sort("timestep", true).Size(size)
	defer scroll.Clear(context.Background())

	ret := make([]timeseries.Point, 0)
	for {
		page, err := scroll.Do(ctx)
		if err == io.EOF {
			return ret, nil
		}
		if err != nil {
			if elastic.IsNotFound(err) && len(ret) == 0 {
				return ret, nil
			}
			return nil, s.classify(err, "scroll")
		}
		for _, hit := range page.Hits.Hits {
			var p timeseries.Point
			if hit.Source == nil {
				continue
			}
			if err := json.Unmarshal(*hit.Source, &p); err != nil {
				return ret, errors.Wrapf(err, "decoding document %s", hit.Id)
			}
			ret = append(ret, p)
		}
	}
}

// Count returns the number of points saved in the index.
func (s *Store) Count(ctx context.Context) (int64, error) {
	n, err := s.Client.Count(s.Collection).Do(ctx)
	if elastic.IsNotFound(err) {
		return 0, nil
	}
	return n, s.classify(err, "count")
}

func (s *Store) String() string {
	return fmt.Sprintf("%s/%s", s.Url, s.Collection)
}

// classify tells apart connection errors from everything else
func (s *Store) classify(err error, what string) error {
	if err == nil {
		return nil
	}
	if elastic.IsConnErr(err) || isNetErr(err) {
		return &StorageUnavailableError{s.Url, err}
	}
	return &StorageWriteError{Index: s.Collection, Err: errors.Wrap(err, what)}
}
