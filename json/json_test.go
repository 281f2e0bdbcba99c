package json

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zoobzio/parcel"
)

func implementations() map[string]parcel.Codec {
	return map[string]parcel.Codec{
		CandidateIterator: Iterator(),
		CandidateStandard: Standard(),
	}
}

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestLabels(t *testing.T) {
	for name, c := range implementations() {
		t.Run(name, func(t *testing.T) {
			if c.Name() != "json" {
				t.Errorf("Name() = %q, want %q", c.Name(), "json")
			}
			if c.ContentType() != "application/json" {
				t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/json")
			}
			if c.ContentEncoding() != "utf-8" {
				t.Errorf("ContentEncoding() = %q, want %q", c.ContentEncoding(), "utf-8")
			}
		})
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	type TestStruct struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}

	for name, c := range implementations() {
		t.Run(name, func(t *testing.T) {
			original := TestStruct{Name: "test", Value: 42}

			data, err := c.Marshal(original)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}

			var restored TestStruct
			if err := c.Unmarshal(data, &restored); err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}

			if restored != original {
				t.Errorf("round-trip failed: got %+v, want %+v", restored, original)
			}
		})
	}
}

func TestUnmarshal_PreservesIntegers(t *testing.T) {
	for name, c := range implementations() {
		t.Run(name, func(t *testing.T) {
			var v any
			if err := c.Unmarshal([]byte(`{"int":10,"float":3.14159265,"list":["a","b"]}`), &v); err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}

			want := map[string]any{
				"int":   int64(10),
				"float": 3.14159265,
				"list":  []any{"a", "b"},
			}
			if d := cmp.Diff(want, parcel.Canonical(v)); d != "" {
				t.Errorf("Unmarshal() mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestMarshal_Floats(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"integral", 3.0, "3.0"},
		{"zero", 0.0, "0.0"},
		{"float32 integral", float32(2), "2.0"},
		{"fractional", 3.14159265, "3.14159265"},
		{"negative", -0.5, "-0.5"},
		{"large", 1e21, "1e+21"},
		{"small", 1e-7, "1e-07"},
		{"nested", map[string]any{"float": 3.0, "list": []any{1.0, int64(1)}}, `{"float":3.0,"list":[1.0,1]}`},
	}

	for name, c := range implementations() {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				data, err := c.Marshal(tt.in)
				if err != nil {
					t.Fatalf("Marshal() error: %v", err)
				}
				if string(data) != tt.want {
					t.Errorf("Marshal(%v) = %s, want %s", tt.in, data, tt.want)
				}
			})
		}
	}
}

func TestMarshal_IntegralFloatRoundTrip(t *testing.T) {
	in := map[string]any{"float": 3.0, "int": int64(3)}

	for name, c := range implementations() {
		t.Run(name, func(t *testing.T) {
			data, err := c.Marshal(in)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			var v any
			if err := c.Unmarshal(data, &v); err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			if d := cmp.Diff(in, parcel.Canonical(v)); d != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestMarshal_NonFinite(t *testing.T) {
	for name, c := range implementations() {
		for _, f := range []float64{math.NaN(), math.Inf(1)} {
			t.Run(name, func(t *testing.T) {
				if _, err := c.Marshal(map[string]any{"f": f}); err == nil {
					t.Errorf("Marshal(%v) should return error", f)
				}
			})
		}
	}
}

func TestMarshalNil(t *testing.T) {
	for name, c := range implementations() {
		t.Run(name, func(t *testing.T) {
			data, err := c.Marshal(nil)
			if err != nil {
				t.Fatalf("Marshal(nil) error: %v", err)
			}
			if string(data) != "null" {
				t.Errorf("Marshal(nil) = %q, want %q", data, "null")
			}
		})
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	inputs := []string{"invalid json", "", `{"a":1} trailing`}

	for name, c := range implementations() {
		for _, in := range inputs {
			t.Run(name+"/"+in, func(t *testing.T) {
				var v any
				if err := c.Unmarshal([]byte(in), &v); err == nil {
					t.Errorf("Unmarshal(%q) should return error", in)
				}
			})
		}
	}
}

func TestProvider(t *testing.T) {
	p := Provider()

	if p.Name != "json" {
		t.Errorf("Provider().Name = %q, want %q", p.Name, "json")
	}
	if !p.Required {
		t.Error("JSON provider must be required")
	}

	var got []string
	for _, c := range p.Candidates {
		got = append(got, c.Name)
	}
	want := []string{CandidateIterator, CandidateStandard}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("candidate order mismatch (-want +got):\n%s", d)
	}

	for _, cand := range p.Candidates {
		c, err := cand.Load()
		if err != nil {
			t.Errorf("%s Load() error: %v", cand.Name, err)
		}
		if c == nil {
			t.Errorf("%s Load() returned nil codec", cand.Name)
		}
	}
}
