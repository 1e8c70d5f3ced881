package client

import (
	"github.com/opencog/cogexp/process"
	"github.com/opencog/cogexp/server/api"
	"github.com/opencog/cogexp/server/strcoll"
	"github.com/opencog/cogexp/timeseries"
)

type cogServer struct {
	*process.CogServer
	url string
}

func (c cogServer) Url() string {
	return c.url
}

func (env *evalEnvironment) CogServer() api.CogServer {
	return cogServer{env.cog, env.client.Url()}
}

func (env *evalEnvironment) Store() api.Store {
	if env.store == nil {
		return nil
	}
	return env.store
}

func (env *evalEnvironment) StoreErr() error {
	return env.storeErr
}

func (env *evalEnvironment) Series() *timeseries.Series {
	return env.series
}

func (env *evalEnvironment) Names() map[string][]string {
	return strcoll.Copy(env.nameDefs)
}
