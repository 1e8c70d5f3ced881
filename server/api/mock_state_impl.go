package api

import (
	"context"

	"github.com/opencog/cogexp/timeseries"
)

type MockCogServer struct {
	url     string
	pid     int
	running bool
	L       []string
}

func (c MockCogServer) Url() string {
	return c.url
}

func (c MockCogServer) Pid() int {
	return c.pid
}

func (c MockCogServer) IsRunning() bool {
	return c.running
}

func (c MockCogServer) Log() []string {
	return c.L
}

type MockStore struct {
	docs      int64
	health    string
	name      string
	HealthErr error
}

func (s MockStore) String() string {
	return s.name
}

func (s MockStore) Health(context.Context) (string, error) {
	return s.health, s.HealthErr
}

func (s MockStore) Count(context.Context) (int64, error) {
	return s.docs, nil
}

type MockState struct {
	MockCogServer
	store    *MockStore
	storeErr error
	series   *timeseries.Series
}

func (s MockState) CogServer() CogServer {
	return s.MockCogServer
}

func (s MockState) Store() Store {
	if s.store == nil {
		return nil
	}
	return s.store
}

func (s MockState) StoreErr() error {
	return s.storeErr
}

func (s MockState) Series() *timeseries.Series {
	if s.series == nil {
		s.series, _ = timeseries.NewSeries()
	}
	return s.series
}

func (s MockState) Names() map[string][]string {
	return nil
}
