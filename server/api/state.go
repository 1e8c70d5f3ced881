package api

import (
	"context"

	"github.com/opencog/cogexp/timeseries"
)

type CogServer interface {
	// base URL of the REST API
	Url() string
	Pid() int
	IsRunning() bool
	Log() []string
}

type Store interface {
	String() string
	Health(context.Context) (string, error)
	Count(context.Context) (int64, error)
}

type State interface {
	CogServer() CogServer
	// nil if the store couldn't be configured, see StoreErr
	Store() Store
	StoreErr() error
	Series() *timeseries.Series
	Names() map[string][]string
}
