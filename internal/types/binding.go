package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Endpoint names one side of a binding as "component.port".
type Endpoint struct {
	Component string
	Port      string
}

func (e Endpoint) String() string {
	return e.Component + "." + e.Port
}

// ParseEndpoint splits a "component.port" reference. The port segment may
// itself contain dots; only the first separator is structural.
func ParseEndpoint(value string) (Endpoint, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Endpoint{}, fmt.Errorf("endpoint must be component.port: %q", value)
	}
	return Endpoint{Component: parts[0], Port: parts[1]}, nil
}

// Binding is a directed data-flow edge from one producer output port to
// one or more consumer input ports.
//
// Two surface forms exist for the target list: a compact scalar
// ("component.port") and an expanded sequence. Both normalize to the same
// internal shape on read, but the form used is remembered so an unchanged
// binding serializes back exactly as it was written.
type Binding struct {
	From           Endpoint
	To             []Endpoint
	Transformation string

	compact bool
}

// NewBinding builds a single-target binding in the compact surface form,
// the form the healer uses for inferred bindings.
func NewBinding(from, to Endpoint) Binding {
	return Binding{From: from, To: []Endpoint{to}, compact: true}
}

// Compact reports whether the binding was read from (or created in) the
// compact single-target surface form.
func (b Binding) Compact() bool {
	return b.compact
}

type bindingDoc struct {
	From           string    `yaml:"from"`
	To             yaml.Node `yaml:"to"`
	Transformation string    `yaml:"transformation,omitempty"`
}

func (b *Binding) UnmarshalYAML(node *yaml.Node) error {
	var doc bindingDoc
	if err := node.Decode(&doc); err != nil {
		return err
	}
	from, err := ParseEndpoint(doc.From)
	if err != nil {
		return fmt.Errorf("binding from: %w", err)
	}
	var targets []Endpoint
	switch doc.To.Kind {
	case yaml.ScalarNode:
		var raw string
		if err := doc.To.Decode(&raw); err != nil {
			return err
		}
		to, err := ParseEndpoint(raw)
		if err != nil {
			return fmt.Errorf("binding to: %w", err)
		}
		targets = []Endpoint{to}
		b.compact = true
	case yaml.SequenceNode:
		var raws []string
		if err := doc.To.Decode(&raws); err != nil {
			return err
		}
		for _, raw := range raws {
			to, err := ParseEndpoint(raw)
			if err != nil {
				return fmt.Errorf("binding to: %w", err)
			}
			targets = append(targets, to)
		}
		b.compact = false
	default:
		return fmt.Errorf("binding to must be an endpoint or a list of endpoints")
	}
	if len(targets) == 0 {
		return fmt.Errorf("binding has no targets: %s", doc.From)
	}
	b.From = from
	b.To = targets
	b.Transformation = doc.Transformation
	return nil
}

func (b Binding) MarshalYAML() (any, error) {
	out := struct {
		From           string `yaml:"from"`
		To             any    `yaml:"to"`
		Transformation string `yaml:"transformation,omitempty"`
	}{
		From:           b.From.String(),
		Transformation: b.Transformation,
	}
	if b.compact && len(b.To) == 1 {
		out.To = b.To[0].String()
		return out, nil
	}
	targets := make([]string, 0, len(b.To))
	for _, to := range b.To {
		targets = append(targets, to.String())
	}
	out.To = targets
	return out, nil
}
