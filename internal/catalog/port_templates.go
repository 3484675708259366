package catalog

import (
	"blueprint-engine/internal/types"
)

// TemplateCatalog supplies default port shapes for a component type when
// a component omits explicit ports. Consumed once, before validation.
type TemplateCatalog struct {
	templates map[types.ComponentType]types.PortTemplate
}

// NewTemplateCatalog returns a catalog seeded with templates for the
// built-in component type vocabulary.
func NewTemplateCatalog() *TemplateCatalog {
	c := &TemplateCatalog{templates: map[types.ComponentType]types.PortTemplate{}}
	for componentType, template := range builtinTemplates() {
		c.Register(componentType, template)
	}
	return c
}

func builtinTemplates() map[types.ComponentType]types.PortTemplate {
	return map[types.ComponentType]types.PortTemplate{
		types.ComponentTypeGenerator: {Ports: map[string]types.Port{
			"output": {Direction: types.PortDirectionOut, Schema: SchemaAny},
		}},
		types.ComponentTypeProcessor: {Ports: map[string]types.Port{
			"input":  {Direction: types.PortDirectionIn, Schema: SchemaAny},
			"output": {Direction: types.PortDirectionOut, Schema: SchemaAny},
		}},
		types.ComponentTypeRouter: {Ports: map[string]types.Port{
			"input":        {Direction: types.PortDirectionIn, Schema: SchemaAny},
			"output":       {Direction: types.PortDirectionOut, Schema: SchemaAny},
			"error_output": {Direction: types.PortDirectionOut, Schema: SchemaAny, Optional: true},
		}},
		types.ComponentTypeAggregator: {Ports: map[string]types.Port{
			"input":  {Direction: types.PortDirectionIn, Schema: SchemaAny},
			"output": {Direction: types.PortDirectionOut, Schema: SchemaAny},
		}},
		types.ComponentTypeStore: {Ports: map[string]types.Port{
			"input": {Direction: types.PortDirectionIn, Schema: SchemaAny},
		}},
	}
}

// Register adds or replaces the template for a component type. Later
// registrations win, giving file layers precedence over the built-ins.
func (c *TemplateCatalog) Register(componentType types.ComponentType, template types.PortTemplate) {
	c.templates[componentType] = template
}

// TemplateFor returns a deep copy of the template for the given type so
// callers can attach it to a component without aliasing catalog state.
func (c *TemplateCatalog) TemplateFor(componentType types.ComponentType) (map[string]types.Port, bool) {
	template, ok := c.templates[componentType]
	if !ok {
		return nil, false
	}
	ports := make(map[string]types.Port, len(template.Ports))
	for name, port := range template.Ports {
		ports[name] = port
	}
	return ports, true
}
