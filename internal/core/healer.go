package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"blueprint-engine/internal/ports"
	"blueprint-engine/internal/types"
)

// Healer is the catalog of idempotent repair transforms. Each transform
// inspects the current document state and applies only repairs that are
// still needed, so re-running a pass over an already-healed blueprint
// yields zero operations.
type Healer struct {
	Catalog ports.SchemaCatalogPort
}

func NewHealer(catalog ports.SchemaCatalogPort) Healer {
	return Healer{Catalog: catalog}
}

// Heal runs every transform once, in the fixed order: missing-binding
// inference, schema-mismatch synthesis, policy defaulting. The mismatch
// scan runs against the bindings present after inference, including ones
// inference just created; scanning a stale binding list under-heals and
// loops without progress.
func (h Healer) Heal(ctx context.Context, blueprint *types.Blueprint, attempt int) types.HealingRound {
	round := types.HealingRound{
		Attempt:        attempt,
		ComponentCount: len(blueprint.System.Components),
	}
	logger := log.Ctx(ctx)
	logger.Info().Int("attempt", attempt).Msg(round.StartMarker())
	logger.Info().Msg(round.ComponentCountLine())

	round.Operations = append(round.Operations, h.inferBindings(ctx, blueprint)...)
	round.Operations = append(round.Operations, h.synthesizeTransformations(ctx, blueprint)...)
	round.Operations = append(round.Operations, h.defaultPolicy(blueprint)...)

	for _, op := range round.Operations {
		logger.Info().Str("operation", string(op.Kind)).Msg(op.Detail)
	}
	logger.Info().Msg(round.SummaryLine())
	return round
}

// inferBindings pairs unbound required output ports with unbound
// required input ports in declaration order. An input with a compatible
// schema is preferred; failing that, the first unbound input is taken
// and the mismatch is left for transformation synthesis in the same
// pass.
func (h Healer) inferBindings(ctx context.Context, blueprint *types.Blueprint) []types.Operation {
	idx := indexBindings(blueprint.System)
	outputs := unboundPorts(blueprint.System, idx, types.PortDirectionOut, false)
	inputs := unboundPorts(blueprint.System, idx, types.PortDirectionIn, false)

	var ops []types.Operation
	for _, producer := range outputs {
		if len(inputs) == 0 {
			break
		}
		producerSchema, _ := blueprint.System.PortSchema(producer)
		chosen := -1
		for i, consumer := range inputs {
			consumerSchema, _ := blueprint.System.PortSchema(consumer)
			if h.Catalog.Compatible(producerSchema, consumerSchema) {
				chosen = i
				break
			}
		}
		if chosen < 0 {
			chosen = 0
		}
		consumer := inputs[chosen]
		inputs = append(inputs[:chosen], inputs[chosen+1:]...)

		blueprint.System.Bindings = append(blueprint.System.Bindings, types.NewBinding(producer, consumer))
		ops = append(ops, types.Operation{
			Kind:   types.OperationBindingGenerated,
			Detail: fmt.Sprintf("Generated binding: %s → %s", producer, consumer),
		})
	}
	return ops
}

// synthesizeTransformations repairs schema mismatches on every binding
// currently in the document. A mismatch whose producer schema is not
// registered in the catalog is healed by relaxing the consumer's
// declared schema to the universal schema, since no implementable
// conversion can be named from an unregistered shape; only the universal
// schema is ever a relaxation target. Every other mismatch gets a named
// conversion attached.
func (h Healer) synthesizeTransformations(ctx context.Context, blueprint *types.Blueprint) []types.Operation {
	var ops []types.Operation
	for i := range blueprint.System.Bindings {
		binding := &blueprint.System.Bindings[i]
		producerSchema, ok := blueprint.System.PortSchema(binding.From)
		if !ok {
			continue
		}
		for _, target := range binding.To {
			consumerSchema, ok := blueprint.System.PortSchema(target)
			if !ok {
				continue
			}
			if h.Catalog.Compatible(producerSchema, consumerSchema) || binding.Transformation != "" {
				continue
			}
			if !h.Catalog.Known(producerSchema) {
				if relaxPortSchema(blueprint, target) {
					ops = append(ops, types.Operation{
						Kind:   types.OperationSchemaRelaxed,
						Detail: fmt.Sprintf("Relaxed schema to any: %s", target),
					})
				}
				continue
			}
			binding.Transformation = conversionName(producerSchema, consumerSchema)
			ops = append(ops, types.Operation{
				Kind: types.OperationTransformationAdded,
				Detail: fmt.Sprintf("Added transformation %s: %s → %s",
					binding.Transformation, binding.From, target),
			})
		}
	}
	return ops
}

func (h Healer) defaultPolicy(blueprint *types.Blueprint) []types.Operation {
	if blueprint.Policy != nil {
		return nil
	}
	blueprint.Policy = types.DefaultPolicy()
	return []types.Operation{{
		Kind:   types.OperationPolicyBlockInserted,
		Detail: "Added missing policy block",
	}}
}

// conversionName is the deterministic identifier the downstream
// synthesizer implements for a coercion.
func conversionName(producerSchema, consumerSchema string) string {
	return fmt.Sprintf("convert_%s_to_%s", producerSchema, consumerSchema)
}

func relaxPortSchema(blueprint *types.Blueprint, ep types.Endpoint) bool {
	for i := range blueprint.System.Components {
		component := &blueprint.System.Components[i]
		if component.Name != ep.Component {
			continue
		}
		port, ok := component.Ports[ep.Port]
		if !ok {
			return false
		}
		port.Schema = types.SchemaAny
		component.Ports[ep.Port] = port
		return true
	}
	return false
}
