// Package testing provides test utilities for parcel.
package testing

import (
	"errors"
	"sync"
	"testing"

	"github.com/zoobzio/parcel"
)

// Strings used by content-encoding tests.
const (
	UnicodeString = "abcdé董"
	LatinString   = "abcdé"
)

// LatinAsLatin1 is LatinString encoded as ISO-8859-1.
var LatinAsLatin1 = []byte{'a', 'b', 'c', 'd', 0xe9}

// SampleData returns a message value in canonical form: nested mapping, list,
// integer, float, ASCII and non-ASCII text.
func SampleData() map[string]any {
	return map[string]any{
		"string":  "The quick brown fox jumps over the lazy dog",
		"int":     int64(10),
		"float":   3.14159265,
		"unicode": "Thé quick brown fox jumps over thé lazy dog",
		"list":    []any{"george", "jerry", "elaine", "cosmo"},
		"nested":  map[string]any{"depth": int64(2), "ok": true},
	}
}

// SampleJSON is the JSON form of SampleData.
const SampleJSON = `{"int": 10, "float": 3.14159265, ` +
	`"list": ["george", "jerry", "elaine", "cosmo"], ` +
	`"string": "The quick brown fox jumps over the lazy dog", ` +
	`"unicode": "Thé quick brown fox jumps over thé lazy dog", ` +
	`"nested": {"depth": 2, "ok": true}}`

// SampleYAML is the YAML form of SampleData.
const SampleYAML = "float: 3.14159265\nint: 10\n" +
	"list: [george, jerry, elaine, cosmo]\n" +
	"string: The quick brown fox jumps over the lazy dog\n" +
	"unicode: \"Th\\xE9 quick brown fox jumps over th\\xE9 lazy dog\"\n" +
	"nested: {depth: 2, ok: true}\n"

// ErrStub is returned by Stub codecs configured to fail.
var ErrStub = errors.New("stub codec failure")

// Stub is a configurable codec for registry tests. Marshal returns Body (or
// "stub" when Body is nil). Unmarshal stores Decoded, or the value last passed
// to Marshal when Decoded is nil, so a plain Stub passes the install check.
type Stub struct {
	ID           string
	Type         string
	Encoding     string
	Body         []byte
	Decoded      any
	FailMarshal  bool
	FailDecoding bool

	mu   sync.Mutex
	last any
}

func (s *Stub) Name() string            { return s.ID }
func (s *Stub) ContentType() string     { return s.Type }
func (s *Stub) ContentEncoding() string { return s.Encoding }

func (s *Stub) Marshal(v any) ([]byte, error) {
	if s.FailMarshal {
		return nil, ErrStub
	}
	s.mu.Lock()
	s.last = v
	s.mu.Unlock()
	if s.Body != nil {
		return s.Body, nil
	}
	return []byte("stub"), nil
}

func (s *Stub) Unmarshal(_ []byte, v any) error {
	if s.FailDecoding {
		return ErrStub
	}
	p, ok := v.(*any)
	if !ok {
		return nil
	}
	if s.Decoded != nil {
		*p = s.Decoded
		return nil
	}
	s.mu.Lock()
	*p = s.last
	s.mu.Unlock()
	return nil
}

// Unavailable returns a candidate whose loader always fails with err.
func Unavailable(name string, err error) parcel.Candidate {
	return parcel.Candidate{
		Name: name,
		Load: func() (parcel.Codec, error) { return nil, err },
	}
}

// Available returns a candidate that loads c.
func Available(name string, c parcel.Codec) parcel.Candidate {
	return parcel.Candidate{
		Name: name,
		Load: func() (parcel.Codec, error) { return c, nil },
	}
}

// Registry returns a registry with the given codecs registered, failing the
// test on any registration error.
func Registry(tb testing.TB, codecs ...parcel.Codec) *parcel.Registry {
	tb.Helper()
	r := parcel.New()
	for _, c := range codecs {
		if err := r.RegisterCodec(c); err != nil {
			tb.Fatalf("RegisterCodec(%s) error: %v", c.Name(), err)
		}
	}
	return r
}
