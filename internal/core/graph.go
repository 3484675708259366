package core

import (
	"blueprint-engine/internal/types"
)

// bindingIndex is the arena-style lookup built once per pass: endpoint →
// bound-edge count for both directions. Ports never back-reference their
// component; everything resolves through this index.
type bindingIndex struct {
	producers map[types.Endpoint]int
	consumers map[types.Endpoint]int
}

func indexBindings(system types.System) bindingIndex {
	idx := bindingIndex{
		producers: map[types.Endpoint]int{},
		consumers: map[types.Endpoint]int{},
	}
	for _, binding := range system.Bindings {
		idx.producers[binding.From]++
		for _, target := range binding.To {
			idx.consumers[target]++
		}
	}
	return idx
}

func (idx bindingIndex) bound(ep types.Endpoint, direction types.PortDirection) bool {
	if direction == types.PortDirectionOut {
		return idx.producers[ep] > 0
	}
	return idx.consumers[ep] > 0
}

// unboundPorts lists the required ports of the given direction that have
// no direction-appropriate binding, in declaration order: components in
// document order, port names sorted within a component.
func unboundPorts(system types.System, idx bindingIndex, direction types.PortDirection, includeOptional bool) []types.Endpoint {
	var out []types.Endpoint
	for _, component := range system.Components {
		for _, name := range sortedPortNames(component.Ports) {
			port := component.Ports[name]
			if port.Direction != direction {
				continue
			}
			if port.Optional && !includeOptional {
				continue
			}
			ep := types.Endpoint{Component: component.Name, Port: name}
			if !idx.bound(ep, direction) {
				out = append(out, ep)
			}
		}
	}
	return out
}
