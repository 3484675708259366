package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"blueprint-engine/internal/core"
)

// Resolve drives a blueprint through the full fixpoint loop and, on
// success, writes the healed document to the requested output path.
func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	blueprintPath := strings.TrimSpace(req.BlueprintPath)
	if blueprintPath == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("blueprint path is required")
	}
	blueprint, err := s.Blueprints.Load(blueprintPath)
	if err != nil {
		return ResolveResult{}, err
	}
	schemas, templates, err := s.buildCatalogs(req.CatalogPath, req.TemplatesPath)
	if err != nil {
		return ResolveResult{}, err
	}
	orchestrator := core.NewOrchestrator(schemas, templates)
	if req.MaxAttempts > 0 {
		orchestrator.MaxAttempts = req.MaxAttempts
	}
	result, err := orchestrator.Resolve(ctx, blueprint)
	if err != nil {
		return ResolveResult{}, err
	}

	operations := 0
	for _, round := range result.Rounds {
		operations += len(round.Operations)
	}
	out := ResolveResult{
		SystemName: result.Blueprint.System.Name,
		Attempts:   result.Attempts,
		Operations: operations,
		Rounds:     result.Rounds,
		RoleDeltas: result.RoleDeltas,
	}
	if req.OutputPath != "" {
		if err := s.Writer.Write(req.OutputPath, result.Blueprint); err != nil {
			return ResolveResult{}, err
		}
		out.OutputPath = req.OutputPath
	}
	log.Ctx(ctx).Debug().
		Str("system", out.SystemName).
		Int("attempts", out.Attempts).
		Int("operations", out.Operations).
		Msg("resolve completed")
	return out, nil
}
