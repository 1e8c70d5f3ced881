/*
Package cogserver talks to a running CogServer through its REST API.

Besides plain access to the `atoms`, `scheme` and `shell` endpoints, it formats the Scheme and shell commands used in
attention allocation experiments (stepping agents, setting ECAN parameters, dumping the atomspace) and captures
snapshots of the atomspace or the attentional focus as `timeseries.Point`s.
*/
package cogserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/opencog/cogexp/timeseries"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Filter selects which atoms are returned by the REST API.
type Filter int

const (
	// every atom in the atomspace
	All Filter = iota
	// atoms whose STI is above the attentional focus boundary
	AttentionalFocus
)

func (f Filter) String() string {
	if f == AttentionalFocus {
		return "attentionalfocus"
	}
	return "atomspace"
}

// Client is a CogServer REST API client. It is safe for concurrent use.
type Client struct {
	rest   *resty.Client
	url    string
	logger zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.rest.SetTimeout(d)
	}
}

// WithLogger logs failed requests, and every request at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
		c.rest.SetLogger(restLogger{logger})
		c.rest.SetDebug(logger.GetLevel() <= zerolog.DebugLevel && zerolog.GlobalLevel() <= zerolog.DebugLevel)
	}
}

// New returns a client for the REST API at `baseURL`, eg. http://127.0.0.1:5000/api/v1.1/
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		rest: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json").
			SetTimeout(30 * time.Second),
		url:    baseURL,
		logger: zerolog.Nop(),
	}
	c.rest.SetLogger(restLogger{c.logger})
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Url returns the base URL of the REST API.
func (c *Client) Url() string {
	return c.url
}

// StatusError is returned when the CogServer answers with a non 2xx status.
type StatusError struct {
	Endpoint string
	Status   string
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cogserver %s: %s %s", e.Endpoint, e.Status, e.Body)
}

type commandRequest struct {
	Command string `json:"command"`
}

type schemeResponse struct {
	Response string `json:"response"`
}

type atomsResponse struct {
	Result struct {
		Atoms []timeseries.AtomRecord `json:"atoms"`
	} `json:"result"`
}

type dotResponse struct {
	Result string `json:"result"`
}

func (c *Client) do(req *resty.Request, method, endpoint string, out interface{}) error {
	resp, err := req.Execute(method, endpoint)
	if err != nil {
		requests.WithLabelValues(endpoint, "error").Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("cogserver request failed")
		return errors.Wrapf(err, "cogserver %s", endpoint)
	}
	if resp.IsError() {
		requests.WithLabelValues(endpoint, "status").Inc()
		return &StatusError{endpoint, resp.Status(), resp.String()}
	}
	requests.WithLabelValues(endpoint, "ok").Inc()
	if out == nil {
		return nil
	}
	return errors.Wrapf(json.Unmarshal(resp.Body(), out), "decoding %s response", endpoint)
}

// Shell sends a command to the CogServer shell. The shell doesn't reply with anything useful.
func (c *Client) Shell(ctx context.Context, command string) error {
	req := c.rest.R().SetContext(ctx).SetBody(commandRequest{command + "\n"})
	return c.do(req, resty.MethodPost, "shell", nil)
}

// Scheme evaluates a command with the Scheme interpreter and returns its output.
func (c *Client) Scheme(ctx context.Context, command string) (string, error) {
	var out schemeResponse
	req := c.rest.R().SetContext(ctx).SetBody(commandRequest{command + "\n"})
	if err := c.do(req, resty.MethodPost, "scheme", &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

// Atoms returns the raw atom records selected by `filter`, in the order the server sends them.
func (c *Client) Atoms(ctx context.Context, filter Filter) ([]timeseries.AtomRecord, error) {
	var out atomsResponse
	req := c.rest.R().SetContext(ctx)
	if filter == AttentionalFocus {
		req.SetQueryParam("filterby", "attentionalfocus")
	}
	if err := c.do(req, resty.MethodGet, "atoms", &out); err != nil {
		return nil, err
	}
	if out.Result.Atoms == nil {
		return []timeseries.AtomRecord{}, nil
	}
	return out.Result.Atoms, nil
}

// Atomspace returns every atom keyed by its handle.
// The result is a static copy, call it again to see later changes.
func (c *Client) Atomspace(ctx context.Context) (map[timeseries.Handle]timeseries.AtomRecord, error) {
	records, err := c.Atoms(ctx, All)
	if err != nil {
		return nil, err
	}
	ret := make(map[timeseries.Handle]timeseries.AtomRecord, len(records))
	for idx, r := range records {
		if r.Handle == nil {
			return nil, &timeseries.MissingFieldError{Index: idx, Field: "handle"}
		}
		ret[*r.Handle] = r
	}
	return ret, nil
}

// DumpDot returns the atomspace in the DOT graph description language.
func (c *Client) DumpDot(ctx context.Context) (string, error) {
	var out dotResponse
	req := c.rest.R().SetContext(ctx).SetQueryParam("dot", "True")
	if err := c.do(req, resty.MethodGet, "atoms", &out); err != nil {
		return "", err
	}
	return out.Result, nil
}

// Ping checks that the REST API answers.
func (c *Client) Ping(ctx context.Context) error {
	req := c.rest.R().SetContext(ctx).SetQueryParam("filterby", "attentionalfocus")
	return c.do(req, resty.MethodGet, "atoms", nil)
}
