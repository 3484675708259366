package core

import (
	"blueprint-engine/internal/catalog"
	"blueprint-engine/internal/types"
)

func testOrchestrator() Orchestrator {
	return NewOrchestrator(catalog.NewSchemaCatalog(), catalog.NewTemplateCatalog())
}

// scenarioBlueprint is the two-component shape used across the suite:
// a declared SOURCE producing common_object_schema and a declared SINK
// consuming ItemSchema, with no binding between them.
func scenarioBlueprint() types.Blueprint {
	return types.Blueprint{
		SchemaVersion: "1.0.0",
		System: types.System{
			Name: "event-pipeline",
			Components: []types.Component{
				{
					Name: "event_source",
					Type: types.ComponentTypeGenerator,
					Role: types.RoleSource,
					Ports: map[string]types.Port{
						"output": {Direction: types.PortDirectionOut, Schema: "common_object_schema"},
					},
				},
				{
					Name: "event_store",
					Type: types.ComponentTypeStore,
					Role: types.RoleSink,
					Ports: map[string]types.Port{
						"input": {Direction: types.PortDirectionIn, Schema: "ItemSchema"},
					},
				},
			},
		},
	}
}

func boundBlueprint() types.Blueprint {
	blueprint := scenarioBlueprint()
	blueprint.System.Components[1].Ports["input"] = types.Port{
		Direction: types.PortDirectionIn,
		Schema:    "common_object_schema",
	}
	blueprint.System.Bindings = []types.Binding{
		types.NewBinding(
			types.Endpoint{Component: "event_source", Port: "output"},
			types.Endpoint{Component: "event_store", Port: "input"},
		),
	}
	blueprint.Policy = types.DefaultPolicy()
	return blueprint
}

func categories(violations []types.Violation) []types.ViolationCategory {
	var out []types.ViolationCategory
	for _, violation := range violations {
		out = append(out, violation.Category)
	}
	return out
}
