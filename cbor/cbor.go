// Package cbor provides a deterministic CBOR codec implementation.
package cbor

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/zoobzio/parcel"
)

// ContentType is the MIME type for CBOR payloads.
const ContentType = "application/cbor"

type cborCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// New returns a CBOR codec using the canonical encoding profile (RFC 8949
// core deterministic encoding). Untyped maps decode as map[string]any.
func New() (parcel.Codec, error) {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		return nil, err
	}
	return &cborCodec{enc: em, dec: dm}, nil
}

// Provider returns the optional CBOR provider.
func Provider() parcel.Provider {
	return parcel.Provider{
		Name: "cbor",
		Candidates: []parcel.Candidate{
			{Name: "fxamacker/cbor/v2", Load: New},
		},
	}
}

func (c *cborCodec) Name() string            { return "cbor" }
func (c *cborCodec) ContentType() string     { return ContentType }
func (c *cborCodec) ContentEncoding() string { return parcel.EncodingBinary }

func (c *cborCodec) Marshal(v any) ([]byte, error)      { return c.enc.Marshal(v) }
func (c *cborCodec) Unmarshal(data []byte, v any) error { return c.dec.Unmarshal(data, v) }
