package types

// Role is the declared (or topology-inferred) role of a component in the
// data-flow graph. Declared role is advisory metadata for the downstream
// synthesizer; only the effective role is derived from topology.
type Role string

const (
	RoleUnset       Role = ""
	RoleSource      Role = "SOURCE"
	RoleTransformer Role = "TRANSFORMER"
	RoleSink        Role = "SINK"
)

type PortDirection string

const (
	PortDirectionUnset PortDirection = ""
	PortDirectionIn    PortDirection = "in"
	PortDirectionOut   PortDirection = "out"
)

// ComponentType is the declared type of a component, drawn from the
// template vocabulary. Types outside the vocabulary are accepted but get
// no default ports.
type ComponentType string

const (
	ComponentTypeGenerator  ComponentType = "generator"
	ComponentTypeProcessor  ComponentType = "processor"
	ComponentTypeRouter     ComponentType = "router"
	ComponentTypeAggregator ComponentType = "aggregator"
	ComponentTypeStore      ComponentType = "store"
)

// SchemaAny is the universal schema: compatible with everything in
// either direction, and the only legal relaxation target.
const SchemaAny = "any"

// Port name prefixes. Every port name must begin with one of these; the
// prefix determines the port's direction when none is declared.
const (
	PortPrefixInput  = "input"
	PortPrefixOutput = "output"
	PortPrefixError  = "error"
)
