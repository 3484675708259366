package ports

import "blueprint-engine/internal/types"

// SchemaCatalogPort exposes the read-only schema compatibility relation.
//
// The relation is reflexive and the universal "any" schema is compatible
// with everything in either direction. Implementations must be fully
// initialized before the first resolution and never mutated afterward;
// the engine calls them concurrently for independent blueprints.
type SchemaCatalogPort interface {
	// Compatible reports whether a producer of the first schema may feed
	// a consumer of the second without a transformation.
	Compatible(producer, consumer string) bool

	// Known reports whether the schema name is registered.
	Known(name string) bool
}

// PortTemplatePort supplies default port shapes for a component type
// when a component omits explicit ports. Consulted once per component,
// before validation.
type PortTemplatePort interface {
	// TemplateFor returns a private copy of the default ports for the
	// type, or false when the type has no template.
	TemplateFor(componentType types.ComponentType) (map[string]types.Port, bool)
}
