package es

import (
	"fmt"
	"net"
	"net/url"

	"github.com/pkg/errors"
)

// StorageUnavailableError is returned when the Elasticsearch node can't be reached.
type StorageUnavailableError struct {
	Url string
	Err error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("document store %s unavailable: %s", e.Url, e.Err)
}

func (e *StorageUnavailableError) Unwrap() error {
	return e.Err
}

// StorageWriteError is returned when the store answers but writing fails.
// Failed counts the documents rejected by a bulk request, if that is where it failed.
type StorageWriteError struct {
	Index  string
	Failed int
	Err    error
}

func (e *StorageWriteError) Error() string {
	if e.Failed > 0 {
		return fmt.Sprintf("writing to %s: %d documents failed: %s", e.Index, e.Failed, e.Err)
	}
	return fmt.Sprintf("writing to %s: %s", e.Index, e.Err)
}

func (e *StorageWriteError) Unwrap() error {
	return e.Err
}

func isNetErr(err error) bool {
	cause := errors.Cause(err)
	if _, ok := cause.(*url.Error); ok {
		return true
	}
	_, ok := cause.(net.Error)
	return ok
}
