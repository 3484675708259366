package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"blueprint-engine/internal/ports"
	"blueprint-engine/internal/types"
)

// CompatChecker resolves producer/consumer schemas for every binding and
// flags incompatible pairs that carry no transformation. A named
// transformation is taken on faith; the engine never checks its body.
type CompatChecker struct {
	Catalog ports.SchemaCatalogPort
}

func NewCompatChecker(catalog ports.SchemaCatalogPort) CompatChecker {
	return CompatChecker{Catalog: catalog}
}

func (c CompatChecker) Check(ctx context.Context, blueprint types.Blueprint) []types.Violation {
	var violations []types.Violation
	for _, binding := range blueprint.System.Bindings {
		producerSchema, ok := blueprint.System.PortSchema(binding.From)
		if !ok {
			// Left for the structural pass to report.
			continue
		}
		for _, target := range binding.To {
			consumerSchema, ok := blueprint.System.PortSchema(target)
			if !ok {
				continue
			}
			if c.Catalog.Compatible(producerSchema, consumerSchema) {
				continue
			}
			if binding.Transformation != "" {
				log.Ctx(ctx).Debug().
					Str("binding", binding.From.String()).
					Str("transformation", binding.Transformation).
					Msg("schema mismatch covered by transformation")
				continue
			}
			violations = append(violations, types.Violation{
				Category: types.ViolationSchemaCompatibility,
				Locator:  binding.From.String() + "->" + target.String(),
				Message:  mismatchMessage(binding.From, producerSchema, target, consumerSchema),
			})
		}
	}
	return violations
}

// mismatchMessage is an external contract consumed by logs and tests;
// the format must be reproduced verbatim.
func mismatchMessage(from types.Endpoint, producerSchema string, to types.Endpoint, consumerSchema string) string {
	return fmt.Sprintf("Schema mismatch without transformation: %s.%s (%s) → %s.%s (%s)",
		from.Component, from.Port, producerSchema, to.Component, to.Port, consumerSchema)
}
