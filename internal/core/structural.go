package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"blueprint-engine/internal/types"
)

// StructuralValidator checks referential integrity and port binding
// arity, and infers each component's effective role from topology.
type StructuralValidator struct{}

func NewStructuralValidator() StructuralValidator {
	return StructuralValidator{}
}

// Validate returns the hard violations plus the informational role
// deltas. Role deltas are never violations: declared role is advisory
// metadata for the synthesizer, not a constraint the healer resolves.
func (v StructuralValidator) Validate(ctx context.Context, blueprint types.Blueprint) ([]types.Violation, []types.RoleDelta) {
	assert.NotEmpty(ctx, blueprint.System.Name, "system name must be set")

	var violations []types.Violation
	violations = append(violations, v.checkReferences(blueprint.System)...)
	violations = append(violations, v.checkUnboundPorts(blueprint.System)...)
	deltas := v.inferRoles(ctx, blueprint.System)
	return violations, deltas
}

func (v StructuralValidator) checkReferences(system types.System) []types.Violation {
	var violations []types.Violation
	check := func(ep types.Endpoint, wantDirection types.PortDirection) {
		component, ok := system.ComponentByName(ep.Component)
		if !ok {
			violations = append(violations, types.Violation{
				Category: types.ViolationUnknownReference,
				Locator:  ep.String(),
				Message:  fmt.Sprintf("Unknown component in binding: %s", ep.Component),
			})
			return
		}
		port, ok := component.Ports[ep.Port]
		if !ok {
			violations = append(violations, types.Violation{
				Category: types.ViolationUnknownReference,
				Locator:  ep.String(),
				Message:  fmt.Sprintf("Unknown port in binding: %s", ep.String()),
			})
			return
		}
		if port.Direction != wantDirection {
			role := "an output"
			if wantDirection == types.PortDirectionIn {
				role = "an input"
			}
			violations = append(violations, types.Violation{
				Category: types.ViolationUnknownReference,
				Locator:  ep.String(),
				Message:  fmt.Sprintf("Binding endpoint is not %s port: %s", role, ep.String()),
			})
		}
	}
	for _, binding := range system.Bindings {
		check(binding.From, types.PortDirectionOut)
		for _, target := range binding.To {
			check(target, types.PortDirectionIn)
		}
	}
	return violations
}

func (v StructuralValidator) checkUnboundPorts(system types.System) []types.Violation {
	idx := indexBindings(system)
	var violations []types.Violation
	for _, direction := range []types.PortDirection{types.PortDirectionIn, types.PortDirectionOut} {
		for _, ep := range unboundPorts(system, idx, direction, false) {
			violations = append(violations, types.Violation{
				Category: types.ViolationBindingMissing,
				Locator:  ep.String(),
				Message:  fmt.Sprintf("Unbound required port: %s", ep.String()),
			})
		}
	}
	return violations
}

// inferRoles derives each component's effective role purely from port
// topology: at least one bound output makes it TRANSFORMER-like, SOURCE
// when it also has zero input ports; bound inputs with zero output ports
// make it SINK-like.
func (v StructuralValidator) inferRoles(ctx context.Context, system types.System) []types.RoleDelta {
	idx := indexBindings(system)
	var deltas []types.RoleDelta
	for _, component := range system.Components {
		var inputPorts, outputPorts, boundOutputs, boundInputs int
		for _, name := range sortedPortNames(component.Ports) {
			port := component.Ports[name]
			ep := types.Endpoint{Component: component.Name, Port: name}
			switch port.Direction {
			case types.PortDirectionIn:
				inputPorts++
				if idx.bound(ep, types.PortDirectionIn) {
					boundInputs++
				}
			case types.PortDirectionOut:
				outputPorts++
				if idx.bound(ep, types.PortDirectionOut) {
					boundOutputs++
				}
			}
		}
		effective := types.RoleUnset
		switch {
		case boundOutputs > 0 && inputPorts == 0:
			effective = types.RoleSource
		case boundOutputs > 0:
			effective = types.RoleTransformer
		case boundInputs > 0 && outputPorts == 0:
			effective = types.RoleSink
		}
		if effective == types.RoleUnset || component.Role == types.RoleUnset || component.Role == effective {
			continue
		}
		delta := types.RoleDelta{Component: component.Name, Declared: component.Role, Effective: effective}
		log.Ctx(ctx).Info().
			Str("component", delta.Component).
			Str("declared", string(delta.Declared)).
			Str("effective", string(delta.Effective)).
			Msg("role delta")
		deltas = append(deltas, delta)
	}
	return deltas
}
