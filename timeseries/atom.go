package timeseries

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Handle identifies an atom in the CogServer. It is opaque: the REST API may send it either as a number or as a
// string, and it is kept in its textual form.
type Handle string

// UnmarshalJSON accepts both JSON numbers and JSON strings.
func (h *Handle) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*h = Handle(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrapf(err, "invalid handle %s", data)
	}
	*h = Handle(n.String())
	return nil
}

// MarshalJSON writes numeric handles as numbers and everything else as strings.
// A handle received as the string "42" is written back as the number 42, while "007" stays a string.
func (h Handle) MarshalJSON() ([]byte, error) {
	if h.IsNumeric() {
		return []byte(h), nil
	}
	return json.Marshal(string(h))
}

// IsNumeric returns true for handles that are the canonical decimal form of an unsigned integer,
// so they can be written verbatim as a JSON number.
func (h Handle) IsNumeric() bool {
	n, err := strconv.ParseUint(string(h), 10, 64)
	return err == nil && strconv.FormatUint(n, 10) == string(h)
}

func (h Handle) String() string {
	return string(h)
}

// AttentionValue holds the importance values the CogServer reports for an atom.
type AttentionValue struct {
	STI  *float64 `json:"sti" validate:"required"`
	LTI  *float64 `json:"lti,omitempty"`
	VLTI *bool    `json:"vlti,omitempty"`
}

// AtomRecord is an atom as returned by the CogServer REST API.
// Only Handle and AttentionValue.STI survive into a Point, the rest is informative.
type AtomRecord struct {
	Handle         *Handle         `json:"handle" validate:"required"`
	AttentionValue *AttentionValue `json:"attentionvalue" validate:"required"`
	Type           string          `json:"type,omitempty"`
	Name           string          `json:"name,omitempty"`
}

// NewAtomRecord is a shortcut to build well-formed records, mostly for tests and fixtures.
func NewAtomRecord(handle Handle, sti float64) AtomRecord {
	return AtomRecord{Handle: &handle, AttentionValue: &AttentionValue{STI: &sti}}
}

// Atom is the simplified shape of an atom inside a Point.
type Atom struct {
	Handle Handle  `json:"handle"`
	STI    float64 `json:"sti"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields with the names used on the wire
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that the record carries the fields needed to project it into an Atom.
// The index is only used to build the error.
func (r AtomRecord) Validate(index int) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		ns := verrs[0].Namespace()
		// strip the struct name, eg. AtomRecord.attentionvalue.sti => attentionvalue.sti
		if idx := strings.IndexRune(ns, '.'); idx >= 0 {
			ns = ns[idx+1:]
		}
		return &MissingFieldError{Index: index, Field: ns}
	}
	return errors.Wrapf(err, "atom record %d", index)
}

// DecodeAtomRecords parses a JSON array of atom records.
// Missing fields are not reported here, but by `BuildPoint`.
func DecodeAtomRecords(data []byte) ([]AtomRecord, error) {
	var records []AtomRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, "decoding atom records")
	}
	return records, nil
}
