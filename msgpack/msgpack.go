// Package msgpack provides a MessagePack codec implementation.
//
// MessagePack is the binary object format of the registry: it carries nested
// maps, lists, integers, floats, strings and raw bytes without a schema.
package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/parcel"
)

// ContentType is the MIME type for MessagePack payloads.
const ContentType = "application/x-msgpack"

// msgpackCodec implements parcel.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec.
func New() parcel.Codec {
	return &msgpackCodec{}
}

// Provider returns the optional MessagePack provider.
func Provider() parcel.Provider {
	return parcel.Provider{
		Name: "msgpack",
		Candidates: []parcel.Candidate{
			{Name: "vmihailenco/msgpack/v5", Load: func() (parcel.Codec, error) { return New(), nil }},
		},
	}
}

// Name returns the serializer name.
func (c *msgpackCodec) Name() string {
	return "msgpack"
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return ContentType
}

// ContentEncoding returns binary; payloads are not text.
func (c *msgpackCodec) ContentEncoding() string {
	return parcel.EncodingBinary
}

// Marshal encodes v as MessagePack with map keys sorted.
func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes MessagePack data into v. Untyped integers decode as
// int64/uint64 and floats as float64.
func (c *msgpackCodec) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)
	return dec.Decode(v)
}
