package parcel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMessageOf(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		kind    Kind
		payload any
	}{
		{"bytes", []byte("abc"), KindRaw, []byte("abc")},
		{"string", "abc", KindText, "abc"},
		{"map", map[string]any{"a": 1}, KindValue, map[string]any{"a": 1}},
		{"nil", nil, KindValue, nil},
		{"explicit value", Value("abc"), KindValue, "abc"},
		{"explicit raw", Raw([]byte{0xe9}), KindRaw, []byte{0xe9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MessageOf(tt.in)
			if m.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", m.Kind(), tt.kind)
			}
			if d := cmp.Diff(tt.payload, m.Payload()); d != "" {
				t.Errorf("Payload() mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestMessage_ZeroValue(t *testing.T) {
	var m Message
	if m.Kind() != KindValue || m.Payload() != nil {
		t.Errorf("zero Message = (%v, %v), want (value, nil)", m.Kind(), m.Payload())
	}
}

func TestKind_String(t *testing.T) {
	tests := map[Kind]string{
		KindValue: "value",
		KindRaw:   "raw",
		KindText:  "text",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
