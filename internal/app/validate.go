package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"blueprint-engine/internal/core"
)

// Validate runs the pre-loop passes and a single validation with no
// healing. On failure the returned error carries the full aggregated
// violation report.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	blueprintPath := strings.TrimSpace(req.BlueprintPath)
	if blueprintPath == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("blueprint path is required")
	}
	blueprint, err := s.Blueprints.Load(blueprintPath)
	if err != nil {
		return ValidateResult{}, err
	}
	schemas, templates, err := s.buildCatalogs(req.CatalogPath, req.TemplatesPath)
	if err != nil {
		return ValidateResult{}, err
	}
	orchestrator := core.NewOrchestrator(schemas, templates)
	result, err := orchestrator.ValidateOnce(ctx, blueprint)
	if err != nil {
		return ValidateResult{}, err
	}
	return ValidateResult{
		SystemName: result.Blueprint.System.Name,
		RoleDeltas: result.RoleDeltas,
	}, nil
}
