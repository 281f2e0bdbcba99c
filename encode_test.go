package parcel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zoobzio/parcel"
	"github.com/zoobzio/parcel/json"
	codectest "github.com/zoobzio/parcel/testing"
)

var bg = context.Background()

func TestEncode_RawWithoutSerializer(t *testing.T) {
	r := parcel.New()
	payloads := [][]byte{
		{},
		[]byte("plain ascii"),
		{0x00, 0xff, 0xfe, 0x80},
		[]byte(codectest.UnicodeString),
	}

	for _, b := range payloads {
		env, err := r.Encode(bg, parcel.Raw(b), "")
		if err != nil {
			t.Fatalf("Encode() error: %v", err)
		}
		want := parcel.Envelope{ContentType: "application/data", ContentEncoding: "binary", Body: b}
		if d := cmp.Diff(want, env); d != "" {
			t.Errorf("Encode(%q) mismatch (-want +got):\n%s", b, d)
		}
	}
}

func TestEncode_TextWithoutSerializer(t *testing.T) {
	r := parcel.New()

	for _, s := range []string{"", "hello", codectest.UnicodeString} {
		env, err := r.Encode(bg, parcel.Text(s), "")
		if err != nil {
			t.Fatalf("Encode() error: %v", err)
		}
		want := parcel.Envelope{ContentType: "text/plain", ContentEncoding: "utf-8", Body: []byte(s)}
		if d := cmp.Diff(want, env); d != "" {
			t.Errorf("Encode(%q) mismatch (-want +got):\n%s", s, d)
		}
	}
}

func TestEncode_RawSerializer(t *testing.T) {
	r := parcel.New()

	tests := []struct {
		name string
		msg  parcel.Message
		want parcel.Envelope
	}{
		{
			name: "unicode text",
			msg:  parcel.Text(codectest.UnicodeString),
			want: parcel.Envelope{ContentType: "application/data", ContentEncoding: "utf-8", Body: []byte("abcdé董")},
		},
		{
			name: "latin text",
			msg:  parcel.Text(codectest.LatinString),
			want: parcel.Envelope{ContentType: "application/data", ContentEncoding: "utf-8", Body: []byte{'a', 'b', 'c', 'd', 0xc3, 0xa9}},
		},
		{
			name: "bytes",
			msg:  parcel.Raw([]byte{0x01, 0x02}),
			want: parcel.Envelope{ContentType: "application/data", ContentEncoding: "binary", Body: []byte{0x01, 0x02}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := r.Encode(bg, tt.msg, "raw")
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			if d := cmp.Diff(tt.want, env); d != "" {
				t.Errorf("Encode() mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestEncode_RawSerializerRejectsValues(t *testing.T) {
	r := parcel.New()
	_, err := r.Encode(bg, parcel.Value(map[string]any{"a": 1}), "raw")
	if !errors.Is(err, parcel.ErrUnsupportedMessage) {
		t.Errorf("Encode() error = %v, want ErrUnsupportedMessage", err)
	}
}

func TestEncode_RawBypassesRegisteredRawName(t *testing.T) {
	r := parcel.New()
	_ = r.Register("raw", encodeConst("registered"), nil, "application/x-raw", "")

	env, err := r.Encode(bg, parcel.Text("hi"), "raw")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if string(env.Body) != "hi" || env.ContentType != "application/data" {
		t.Errorf("Encode() = %+v; the raw serializer is built in", env)
	}
}

func TestEncode_NamedSerializer(t *testing.T) {
	r := codectest.Registry(t, json.New())

	env, err := r.EncodeValue(bg, map[string]any{"int": 10, "list": []any{"a", "b"}}, "json")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if env.ContentType != "application/json" || env.ContentEncoding != "utf-8" {
		t.Errorf("Encode() labels = %q/%q", env.ContentType, env.ContentEncoding)
	}

	v, err := r.Decode(bg, env)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	want := map[string]any{"int": int64(10), "list": []any{"a", "b"}}
	if d := cmp.Diff(want, v); d != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", d)
	}
}

func TestEncode_NamedSerializerAppliesToTextAndBytes(t *testing.T) {
	r := codectest.Registry(t, json.New())

	env, err := r.Encode(bg, parcel.Text("hi"), "json")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if string(env.Body) != `"hi"` {
		t.Errorf("Encode(Text) body = %q, want %q", env.Body, `"hi"`)
	}
}

func TestEncode_DefaultSerializer(t *testing.T) {
	r := codectest.Registry(t, json.New())
	if err := r.SetDefault("json"); err != nil {
		t.Fatalf("SetDefault() error: %v", err)
	}

	env, err := r.EncodeValue(bg, map[string]any{"a": 1}, "")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if env.ContentType != "application/json" {
		t.Errorf("ContentType = %q, want %q", env.ContentType, "application/json")
	}
	if string(env.Body) != `{"a":1}` {
		t.Errorf("Body = %q, want %q", env.Body, `{"a":1}`)
	}
}

func TestEncode_NoDefault(t *testing.T) {
	r := codectest.Registry(t, json.New())

	_, err := r.EncodeValue(bg, map[string]any{"a": 1}, "")
	if !errors.Is(err, parcel.ErrNoDefaultCodec) {
		t.Errorf("Encode() error = %v, want ErrNoDefaultCodec", err)
	}
}

func TestEncode_UnknownSerializer(t *testing.T) {
	r := parcel.New()

	_, err := r.EncodeValue(bg, map[string]any{"a": 1}, "hessian")
	if !errors.Is(err, parcel.ErrCodecNotRegistered) {
		t.Errorf("Encode() error = %v, want ErrCodecNotRegistered", err)
	}
}

func TestEncode_EncoderFailure(t *testing.T) {
	r := codectest.Registry(t, &codectest.Stub{ID: "stub", Type: "application/x-stub", FailMarshal: true})

	_, err := r.EncodeValue(bg, 1, "stub")
	if !errors.Is(err, parcel.ErrPayloadEncode) {
		t.Fatalf("Encode() error = %v, want ErrPayloadEncode", err)
	}

	var codecErr *parcel.CodecError
	if !errors.As(err, &codecErr) {
		t.Fatalf("Encode() error should be *CodecError, got %T", err)
	}
	if !errors.Is(codecErr.Cause, codectest.ErrStub) {
		t.Errorf("CodecError.Cause = %v, want ErrStub", codecErr.Cause)
	}
	if codecErr.Name != "stub" {
		t.Errorf("CodecError.Name = %q, want %q", codecErr.Name, "stub")
	}
}

func TestEncodeValue_InfersKind(t *testing.T) {
	r := parcel.New()

	env, _ := r.EncodeValue(bg, []byte{0xff}, "")
	if env.ContentEncoding != "binary" {
		t.Errorf("EncodeValue([]byte) encoding = %q, want binary", env.ContentEncoding)
	}

	env, _ = r.EncodeValue(bg, "text", "")
	if env.ContentType != "text/plain" {
		t.Errorf("EncodeValue(string) content type = %q, want text/plain", env.ContentType)
	}
}

func TestEncode_TextMustBeUTF8(t *testing.T) {
	r := parcel.New()

	for _, serializer := range []string{"", "raw"} {
		_, err := r.Encode(bg, parcel.Text("ok\xff"), serializer)
		if !errors.Is(err, parcel.ErrUnsupportedMessage) {
			t.Errorf("Encode(%q) error = %v, want ErrUnsupportedMessage", serializer, err)
		}
	}

	// Bytes in the same shape stay valid as a binary payload.
	if _, err := r.Encode(bg, parcel.Raw([]byte("ok\xff")), ""); err != nil {
		t.Errorf("Encode(raw bytes) error: %v", err)
	}
}
