// Package parcel provides a codec registry for message payloads.
//
// A Registry maps a serializer name (e.g. "json", "yaml") to an encoder and a
// content type to a decoder, and applies a fixed policy for choosing which
// codec handles an outbound message and which handles an inbound payload.
// Every encode produces an Envelope, and every decode consumes one:
//
//	Envelope{ContentType, ContentEncoding, Body}
//
// The three fields are the wire contract between producer and consumer and
// must always travel together.
//
// # Basic Usage
//
//	reg, report, err := builtin.New()
//	if err != nil {
//	    // JSON support is mandatory; no JSON library could be loaded.
//	}
//
//	env, _ := reg.EncodeValue(ctx, map[string]any{"int": 10}, "json")
//	// env.ContentType == "application/json"
//
//	v, _ := reg.Decode(ctx, env)
//	// v == map[string]any{"int": int64(10)}
//
// # Encode Policy
//
// Messages are tagged as Raw, Text or Value, either explicitly or with
// MessageOf at the boundary. Evaluated in order:
//
//   - Raw with no serializer: application/data, binary, body unchanged
//   - Text with no serializer: text/plain, utf-8
//   - serializer "raw": application/data, utf-8 for Text, binary for Raw
//   - otherwise the named codec, or the default codec when no name is given
//
// # Decode Policy
//
// Content encodings "binary" and "ascii-8bit" keep the body as bytes. Any
// other encoding is decoded to text first. When no decoder is registered for
// the content type the payload is returned as-is, so unknown content types
// pass through instead of failing.
//
// # Codec Providers
//
// The following codec implementations are available as subpackages:
//
//   - json - JSON encoding (application/json), json-iterator or encoding/json
//   - yaml - YAML encoding (application/x-yaml)
//   - msgpack - MessagePack encoding (application/x-msgpack)
//   - cbor - CBOR encoding (application/cbor)
//   - bson - BSON encoding (application/bson)
//   - protobuf - Protocol Buffers struct values (application/x-protobuf)
//
// The builtin package probes them at startup and installs what is available.
package parcel

// Well-known content types and encodings.
const (
	ContentTypeData = "application/data"
	ContentTypeText = "text/plain"

	EncodingUTF8      = "utf-8"
	EncodingBinary    = "binary"
	EncodingASCII8Bit = "ascii-8bit"

	// SerializerRaw forces pass-through encoding of Raw and Text messages.
	SerializerRaw = "raw"
)

// EncodeFunc turns a value into payload bytes.
type EncodeFunc func(v any) ([]byte, error)

// DecodeFunc turns payload bytes into a value. Text payloads are handed
// over as UTF-8 bytes.
type DecodeFunc func(data []byte) (any, error)

// Codec provides content-type aware marshaling.
type Codec interface {
	// Name returns the serializer name (e.g., "json").
	Name() string

	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// ContentEncoding returns the byte-level encoding of payloads ("utf-8" or "binary").
	ContentEncoding() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}
