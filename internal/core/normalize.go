package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"blueprint-engine/internal/ports"
	"blueprint-engine/internal/types"
)

// Normalizer applies the pre-loop passes: schema-version defaulting,
// port template application, and port direction inference. It runs once
// per resolution, before the first validation attempt.
type Normalizer struct {
	Templates ports.PortTemplatePort
}

func NewNormalizer(templates ports.PortTemplatePort) Normalizer {
	return Normalizer{Templates: templates}
}

// Normalize mutates the blueprint in place. It returns an error only for
// documents malformed beyond the violation taxonomy (a port name without
// a role-indicating prefix); everything else is left for the validators.
func (n Normalizer) Normalize(ctx context.Context, blueprint *types.Blueprint) error {
	if strings.TrimSpace(blueprint.SchemaVersion) == "" {
		blueprint.SchemaVersion = DefaultSchemaVersion
		log.Ctx(ctx).Debug().Str("schema_version", DefaultSchemaVersion).Msg("schema version defaulted")
	}
	for i := range blueprint.System.Components {
		component := &blueprint.System.Components[i]
		if len(component.Ports) == 0 && n.Templates != nil {
			if template, ok := n.Templates.TemplateFor(component.Type); ok {
				component.Ports = template
				log.Ctx(ctx).Debug().
					Str("component", component.Name).
					Str("type", string(component.Type)).
					Msg("applied port template")
			}
		}
		for _, name := range sortedPortNames(component.Ports) {
			port := component.Ports[name]
			normalized, err := normalizePort(component.Name, name, port)
			if err != nil {
				return err
			}
			component.Ports[name] = normalized
		}
	}
	return nil
}

func normalizePort(componentName, portName string, port types.Port) (types.Port, error) {
	prefix, ok := portNamePrefix(portName)
	if !ok {
		return types.Port{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("port name must begin with input/output/error: %s.%s", componentName, portName))
	}
	if port.Direction == types.PortDirectionUnset {
		switch prefix {
		case types.PortPrefixInput:
			port.Direction = types.PortDirectionIn
		case types.PortPrefixOutput, types.PortPrefixError:
			port.Direction = types.PortDirectionOut
		}
	}
	// Unbound error streams are routine; do not make the healer invent
	// consumers for them.
	if prefix == types.PortPrefixError {
		port.Optional = true
	}
	return port, nil
}

func portNamePrefix(name string) (string, bool) {
	for _, prefix := range []string{types.PortPrefixInput, types.PortPrefixOutput, types.PortPrefixError} {
		if strings.HasPrefix(name, prefix) {
			return prefix, true
		}
	}
	return "", false
}

// sortedPortNames fixes the iteration order over a component's port map.
// Healing pairs ports by declaration order; within one component the
// sorted name order stands in for it, since YAML maps carry no order.
func sortedPortNames(portMap map[string]types.Port) []string {
	names := make([]string, 0, len(portMap))
	for name := range portMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
