// Package json provides JSON codec implementations.
//
// Two implementations are offered in preference order: json-iterator and the
// standard library. Both preserve numeric literals while decoding so that
// integers come back as integers, and both write floats with a fractional
// part or exponent so that 3.0 does not come back as 3.
package json

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/zoobzio/parcel"
)

// ContentType is the MIME type for JSON payloads.
const ContentType = "application/json"

// Candidate names, in preference order.
const (
	CandidateIterator = "json-iterator"
	CandidateStandard = "encoding/json"
)

// jsonCodec implements parcel.Codec for JSON.
type jsonCodec struct {
	marshal   func(v any) ([]byte, error)
	unmarshal func(data []byte, v any) error
}

// New returns the preferred JSON codec.
func New() parcel.Codec {
	return Iterator()
}

// Iterator returns a JSON codec backed by json-iterator.
func Iterator() parcel.Codec {
	api := jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
		UseNumber:              true,
	}.Froze()
	api.RegisterExtension(floatExtension())
	return &jsonCodec{
		marshal:   api.Marshal,
		unmarshal: api.Unmarshal,
	}
}

// Standard returns a JSON codec backed by encoding/json.
func Standard() parcel.Codec {
	return &jsonCodec{
		marshal:   marshalStandard,
		unmarshal: unmarshalStandard,
	}
}

// Provider returns the mandatory JSON provider with both candidates.
func Provider() parcel.Provider {
	return parcel.Provider{
		Name:     "json",
		Required: true,
		Candidates: []parcel.Candidate{
			{Name: CandidateIterator, Load: func() (parcel.Codec, error) { return Iterator(), nil }},
			{Name: CandidateStandard, Load: func() (parcel.Codec, error) { return Standard(), nil }},
		},
	}
}

// Name returns the serializer name.
func (c *jsonCodec) Name() string {
	return "json"
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return ContentType
}

// ContentEncoding returns utf-8; JSON is text.
func (c *jsonCodec) ContentEncoding() string {
	return parcel.EncodingUTF8
}

// Marshal encodes v as JSON.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	return c.marshal(v)
}

// Unmarshal decodes JSON data into v.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	return c.unmarshal(data, v)
}

func marshalStandard(v any) ([]byte, error) {
	return stdjson.Marshal(literalFloats(v))
}

func unmarshalStandard(data []byte, v any) error {
	dec := stdjson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("invalid character after top-level value")
	}
	return nil
}
