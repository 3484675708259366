package types

// Blueprint is the root declarative system document under resolution.
// It is constructed once per generation request, mutated in place by the
// healing transforms, and treated as immutable once resolution ends.
type Blueprint struct {
	SchemaVersion string  `yaml:"schema_version"`
	System        System  `yaml:"system"`
	Policy        *Policy `yaml:"policy,omitempty"`
}

type System struct {
	Name       string      `yaml:"name"`
	Components []Component `yaml:"components"`
	Bindings   []Binding   `yaml:"bindings,omitempty"`
}

// Component is a node in the data-flow graph. Name is unique within the
// System; Ports maps port name to its descriptor. Config is free-form and
// passed through to the downstream synthesizer untouched.
type Component struct {
	Name   string          `yaml:"name"`
	Type   ComponentType   `yaml:"type"`
	Role   Role            `yaml:"role,omitempty"`
	Ports  map[string]Port `yaml:"ports,omitempty"`
	Config map[string]any  `yaml:"config,omitempty"`
}

// Port describes one endpoint on a component. Buffer and Overflow are
// opaque runtime configuration: the engine round-trips them but never
// interprets them.
type Port struct {
	Direction PortDirection  `yaml:"direction,omitempty"`
	Schema    string         `yaml:"schema"`
	Optional  bool           `yaml:"optional,omitempty"`
	Buffer    map[string]any `yaml:"buffer,omitempty"`
	Overflow  string         `yaml:"overflow,omitempty"`
}

// ComponentByName returns the component with the given name, or false
// when no such component exists.
func (s System) ComponentByName(name string) (Component, bool) {
	for _, component := range s.Components {
		if component.Name == name {
			return component, true
		}
	}
	return Component{}, false
}

// PortSchema resolves an endpoint to the schema declared on its port.
func (s System) PortSchema(ep Endpoint) (string, bool) {
	component, ok := s.ComponentByName(ep.Component)
	if !ok {
		return "", false
	}
	port, ok := component.Ports[ep.Port]
	if !ok {
		return "", false
	}
	return port.Schema, true
}
