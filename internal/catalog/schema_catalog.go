// Package catalog holds the read-only rule tables consulted during
// blueprint resolution: the schema compatibility relation and the
// per-component-type port templates. Both are fully initialized before
// the first resolution and never mutated afterward.
package catalog

import (
	"blueprint-engine/internal/types"
)

// SchemaAny aliases the universal schema name for catalog callers.
const SchemaAny = types.SchemaAny

// SchemaCatalog is the registry of named schemas and the partial
// compatibility relation between them. The relation is reflexive;
// beyond that, compatibility is exactly what was registered.
type SchemaCatalog struct {
	compat map[string]map[string]struct{}
}

// NewSchemaCatalog returns a catalog seeded with the built-in schema set.
// File-based layers are merged on top via Register.
func NewSchemaCatalog() *SchemaCatalog {
	c := &SchemaCatalog{compat: map[string]map[string]struct{}{}}
	for _, def := range builtinSchemas() {
		c.Register(def)
	}
	return c
}

func builtinSchemas() []types.SchemaDef {
	return []types.SchemaDef{
		{Name: SchemaAny, Description: "universal schema"},
		{Name: "common_object_schema", Description: "generic keyed object"},
		{Name: "ItemSchema"},
		{Name: "UserSchema"},
		{Name: "event_schema", CompatibleWith: []string{"common_object_schema"}},
		{Name: "metric_schema"},
	}
}

// Register adds or replaces a schema definition. Later registrations win
// per name, which gives file layers precedence over the built-ins.
func (c *SchemaCatalog) Register(def types.SchemaDef) {
	targets := map[string]struct{}{}
	for _, name := range def.CompatibleWith {
		targets[name] = struct{}{}
	}
	c.compat[def.Name] = targets
}

// Known reports whether the schema name is registered.
func (c *SchemaCatalog) Known(name string) bool {
	_, ok := c.compat[name]
	return ok
}

// Compatible reports whether a producer of the first schema may feed a
// consumer of the second without a transformation. The relation is
// reflexive, and the universal schema is compatible in either direction.
func (c *SchemaCatalog) Compatible(producer, consumer string) bool {
	if producer == consumer {
		return true
	}
	if producer == SchemaAny || consumer == SchemaAny {
		return true
	}
	targets, ok := c.compat[producer]
	if !ok {
		return false
	}
	_, ok = targets[consumer]
	return ok
}
