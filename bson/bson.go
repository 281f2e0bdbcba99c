// Package bson provides a BSON codec implementation.
//
// BSON payloads are documents: only maps and structs can be encoded at the
// top level.
package bson

import (
	"github.com/zoobzio/parcel"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentType is the MIME type for BSON payloads.
const ContentType = "application/bson"

// bsonCodec implements parcel.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec.
func New() parcel.Codec {
	return &bsonCodec{}
}

// Provider returns the optional BSON provider.
func Provider() parcel.Provider {
	return parcel.Provider{
		Name: "bson",
		Candidates: []parcel.Candidate{
			{Name: "mongo-driver/bson", Load: func() (parcel.Codec, error) { return New(), nil }},
		},
	}
}

// Name returns the serializer name.
func (c *bsonCodec) Name() string {
	return "bson"
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return ContentType
}

// ContentEncoding returns binary; payloads are not text.
func (c *bsonCodec) ContentEncoding() string {
	return parcel.EncodingBinary
}

// Marshal encodes v as BSON.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v. An untyped target receives plain maps
// and slices instead of driver document types.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	target, ok := v.(*any)
	if !ok {
		return bson.Unmarshal(data, v)
	}

	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}
	*target = plain(doc)
	return nil
}

// plain replaces driver document types with maps and slices.
func plain(v any) any {
	switch t := v.(type) {
	case bson.M:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = plain(e)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = plain(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	case primitive.Binary:
		return t.Data
	}
	return v
}
