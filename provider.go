package parcel

import (
	"context"
	"fmt"
)

// Candidate is one implementation a Provider may install.
type Candidate struct {
	// Name identifies the implementation (e.g., "json-iterator").
	Name string

	// Load returns the codec, or an error when the implementation is unavailable.
	Load func() (Codec, error)
}

// Provider is an ordered list of candidates for one serializer. Install keeps
// the first candidate that loads and passes a round-trip check.
type Provider struct {
	// Name is the provider label used in reports (usually the serializer name).
	Name string

	// Required makes Install fail when no candidate is available.
	Required bool

	// Candidates in preference order, most capable first.
	Candidates []Candidate
}

// Attempt records the outcome of probing one candidate.
type Attempt struct {
	Provider  string
	Candidate string
	Err       error
}

// Report lists every probe made by Install.
type Report struct {
	Attempts []Attempt

	// Installed maps provider name to the chosen candidate name.
	Installed map[string]string

	// Serializers maps provider name to the serializer name its codec
	// registered under.
	Serializers map[string]string

	// Skipped lists optional providers with no available candidate.
	Skipped []string
}

// Chosen returns the candidate installed for provider.
func (rep *Report) Chosen(provider string) (string, bool) {
	name, ok := rep.Installed[provider]
	return name, ok
}

// Serializer returns the serializer name registered for provider.
func (rep *Report) Serializer(provider string) (string, bool) {
	name, ok := rep.Serializers[provider]
	return name, ok
}

// Failures returns the attempts that did not load or register.
func (rep *Report) Failures() []Attempt {
	var out []Attempt
	for _, a := range rep.Attempts {
		if a.Err != nil {
			out = append(out, a)
		}
	}
	return out
}

// Install probes each provider in turn and registers the first available
// candidate of each. It never changes the default codec. The returned Report
// is complete even when a required provider fails.
func (r *Registry) Install(ctx context.Context, providers ...Provider) (*Report, error) {
	rep := &Report{
		Installed:   make(map[string]string),
		Serializers: make(map[string]string),
	}

	for _, p := range providers {
		c, name, err := r.probe(ctx, rep, p)
		if err == nil {
			if err = r.RegisterCodec(c); err != nil {
				rep.Attempts[len(rep.Attempts)-1].Err = err
			}
		}
		emitProviderResult(ctx, p.Name, name, err)

		if err != nil {
			if p.Required {
				return rep, err
			}
			rep.Skipped = append(rep.Skipped, p.Name)
			continue
		}
		rep.Installed[p.Name] = name
		rep.Serializers[p.Name] = c.Name()
	}

	return rep, nil
}

func (r *Registry) probe(ctx context.Context, rep *Report, p Provider) (Codec, string, error) {
	for _, cand := range p.Candidates {
		c, err := loadCandidate(cand)
		rep.Attempts = append(rep.Attempts, Attempt{Provider: p.Name, Candidate: cand.Name, Err: err})
		emitProbeAttempt(ctx, p.Name, cand.Name, err)
		if err == nil {
			return c, cand.Name, nil
		}
	}
	return nil, "", fmt.Errorf("%w: %s", ErrNoCandidate, p.Name)
}

func loadCandidate(cand Candidate) (c Codec, err error) {
	if cand.Load == nil {
		return nil, fmt.Errorf("candidate %s has no loader", cand.Name)
	}
	defer func() {
		if p := recover(); p != nil {
			c, err = nil, fmt.Errorf("candidate %s panicked: %v", cand.Name, p)
		}
	}()

	c, err = cand.Load()
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("candidate %s returned no codec", cand.Name)
	}
	if err := roundTrip(c); err != nil {
		return nil, err
	}
	return c, nil
}
