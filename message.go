package parcel

// Kind tags what a Message carries.
type Kind uint8

const (
	// KindValue is a structured value handed to an encoder.
	KindValue Kind = iota
	// KindRaw is an opaque byte sequence.
	KindRaw
	// KindText is a character sequence.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindText:
		return "text"
	default:
		return "value"
	}
}

// Message is an outbound payload tagged with its kind, so the encode policy
// never has to inspect the dynamic type.
type Message struct {
	kind  Kind
	raw   []byte
	text  string
	value any
}

// Raw returns a message carrying opaque bytes.
func Raw(b []byte) Message {
	return Message{kind: KindRaw, raw: b}
}

// Text returns a message carrying a character sequence. Text written to the
// wire as-is is labelled utf-8, so it must be valid UTF-8.
func Text(s string) Message {
	return Message{kind: KindText, text: s}
}

// Value returns a message carrying a structured value. Bytes and strings
// passed here are still handed to the encoder as values.
func Value(v any) Message {
	return Message{kind: KindValue, value: v}
}

// MessageOf infers the kind of v: []byte is Raw, string is Text and anything
// else is a Value.
func MessageOf(v any) Message {
	switch t := v.(type) {
	case []byte:
		return Raw(t)
	case string:
		return Text(t)
	case Message:
		return t
	default:
		return Value(v)
	}
}

// Kind returns the message kind.
func (m Message) Kind() Kind { return m.kind }

// Payload returns the underlying []byte, string or value.
func (m Message) Payload() any {
	switch m.kind {
	case KindRaw:
		return m.raw
	case KindText:
		return m.text
	default:
		return m.value
	}
}
