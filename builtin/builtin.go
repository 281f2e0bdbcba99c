// Package builtin bootstraps a parcel.Registry with the shipped codecs.
//
// JSON is mandatory and becomes the default serializer. YAML, MessagePack,
// CBOR, BSON and Protocol Buffers are installed when available; a provider
// that cannot load is skipped and recorded in the returned Report.
package builtin

import (
	"context"
	"fmt"
	"sync"

	"github.com/zoobzio/parcel"
	"github.com/zoobzio/parcel/bson"
	"github.com/zoobzio/parcel/cbor"
	"github.com/zoobzio/parcel/json"
	"github.com/zoobzio/parcel/msgpack"
	"github.com/zoobzio/parcel/protobuf"
	"github.com/zoobzio/parcel/yaml"
)

// DefaultSerializer is the serializer name of the shipped JSON codec, made
// default after bootstrap. A JSON provider replaced with WithJSON makes its
// own codec's name the default instead.
const DefaultSerializer = "json"

// Option configures New.
type Option func(*config)

type config struct {
	ctx       context.Context
	required  parcel.Provider
	defaultTo string
	optional  []parcel.Provider
	exclude   map[string]bool
}

// WithDefault selects the default serializer. The name must belong to an
// installed codec or New fails with parcel.ErrCodecNotRegistered. It is
// applied after the optional providers are installed.
func WithDefault(name string) Option {
	return func(c *config) {
		c.defaultTo = name
	}
}

// Without skips the named optional providers.
func Without(names ...string) Option {
	return func(c *config) {
		for _, n := range names {
			c.exclude[n] = true
		}
	}
}

// WithProviders appends optional providers after the shipped ones. They are
// installed as optional even if marked Required.
func WithProviders(providers ...parcel.Provider) Option {
	return func(c *config) {
		for _, p := range providers {
			p.Required = false
			c.optional = append(c.optional, p)
		}
	}
}

// WithJSON replaces the mandatory JSON provider, e.g. to change the
// candidate order.
func WithJSON(p parcel.Provider) Option {
	return func(c *config) {
		p.Required = true
		c.required = p
	}
}

// WithContext sets the context that bootstrap signals are emitted with.
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		c.ctx = ctx
	}
}

// Optional returns the shipped optional providers in install order.
func Optional() []parcel.Provider {
	return []parcel.Provider{
		yaml.Provider(),
		msgpack.Provider(),
		cbor.Provider(),
		bson.Provider(),
		protobuf.Provider(),
	}
}

// New builds a registry: the JSON provider is installed first and made the
// default, then each optional provider is tried independently. The Report is
// returned even on failure.
func New(opts ...Option) (*parcel.Registry, *parcel.Report, error) {
	cfg := &config{
		ctx:      context.Background(),
		required: json.Provider(),
		exclude:  make(map[string]bool),
		optional: Optional(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	reg := parcel.New()

	report, err := reg.Install(cfg.ctx, cfg.required)
	if err != nil {
		return nil, report, fmt.Errorf("json support is required: %w", err)
	}
	primary, _ := report.Serializer(cfg.required.Name)
	if err := reg.SetDefault(primary); err != nil {
		return nil, report, err
	}

	var optional []parcel.Provider
	for _, p := range cfg.optional {
		if !cfg.exclude[p.Name] {
			optional = append(optional, p)
		}
	}
	rest, err := reg.Install(cfg.ctx, optional...)
	report = merge(report, rest)
	if err != nil {
		return nil, report, err
	}

	if cfg.defaultTo != "" && cfg.defaultTo != primary {
		if err := reg.SetDefault(cfg.defaultTo); err != nil {
			return nil, report, err
		}
	}

	return reg, report, nil
}

func merge(a, b *parcel.Report) *parcel.Report {
	if b == nil {
		return a
	}
	a.Attempts = append(a.Attempts, b.Attempts...)
	a.Skipped = append(a.Skipped, b.Skipped...)
	for k, v := range b.Installed {
		a.Installed[k] = v
	}
	for k, v := range b.Serializers {
		a.Serializers[k] = v
	}
	return a
}

var (
	shared     *parcel.Registry
	sharedOnce sync.Once
)

// Shared returns a process-wide registry bootstrapped on first use with the
// default options. It panics if JSON support cannot be loaded.
func Shared() *parcel.Registry {
	sharedOnce.Do(func() {
		reg, _, err := New()
		if err != nil {
			panic(err)
		}
		shared = reg
	})
	return shared
}
