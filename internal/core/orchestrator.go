package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"blueprint-engine/internal/ports"
	"blueprint-engine/internal/types"
)

// DefaultMaxAttempts bounds the validate → heal → re-validate loop.
const DefaultMaxAttempts = 4

type State string

const (
	StateRunning   State = "RUNNING"
	StateSucceeded State = "SUCCEEDED"
	StateFailed    State = "FAILED"
)

// Result is the terminal outcome of one blueprint resolution. On
// SUCCEEDED the Blueprint is the healed document; on FAILED Violations
// carries the complete, sorted set from the final attempt.
type Result struct {
	State      State
	Blueprint  types.Blueprint
	Attempts   int
	Violations []types.Violation
	RoleDeltas []types.RoleDelta
	Rounds     []types.HealingRound
}

// Orchestrator drives the fixpoint loop under a bounded-attempt,
// stagnation-aware policy. One resolution is one sequential in-memory
// pass; the orchestrator holds no mutable state between invocations and
// may be used concurrently for independent blueprints.
type Orchestrator struct {
	Normalizer  Normalizer
	Structural  StructuralValidator
	Compat      CompatChecker
	Healer      Healer
	MaxAttempts int
}

func NewOrchestrator(schemas ports.SchemaCatalogPort, templates ports.PortTemplatePort) Orchestrator {
	return Orchestrator{
		Normalizer:  NewNormalizer(templates),
		Structural:  NewStructuralValidator(),
		Compat:      NewCompatChecker(schemas),
		Healer:      NewHealer(schemas),
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Resolve normalizes the blueprint, then loops validation and healing
// until the document is consistent, the attempt budget is exhausted, or
// two stagnant rounds abort the loop. The returned error on FAILED is
// the aggregated operator-facing report.
func (o Orchestrator) Resolve(ctx context.Context, blueprint types.Blueprint) (Result, error) {
	if err := o.guard(); err != nil {
		return Result{}, err
	}
	result := Result{State: StateRunning, Blueprint: blueprint}

	if err := o.preLoop(ctx, &result); err != nil {
		return result, err
	}

	maxAttempts := o.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	// First validation. A fatal category here means a malformed document
	// upstream: healing is never attempted.
	o.validate(ctx, &result)
	if len(fatalViolations(result.Violations)) > 0 {
		result.Attempts = 1
		result.State = StateFailed
		return result, failureError(1, &result.Violations)
	}
	if len(result.Violations) == 0 {
		result.Attempts = 1
		return o.succeed(ctx, result), nil
	}

	stagnation := 0
	previousOps := 0
	for attempt := 1; ; attempt++ {
		result.Attempts = attempt

		round := o.Healer.Heal(ctx, &result.Blueprint, attempt)
		result.Rounds = append(result.Rounds, round)
		ops := len(round.Operations)

		// Re-validate inside the same attempt so repairs the healer just
		// made (including bindings it just created) count for this
		// attempt rather than the next.
		o.validate(ctx, &result)
		if len(result.Violations) == 0 {
			return o.succeed(ctx, result), nil
		}

		if attempt > 1 && ops == 0 && previousOps == 0 {
			stagnation++
			if stagnation >= 2 {
				result.State = StateFailed
				result.Violations = append(result.Violations, types.Violation{
					Category: types.ViolationStagnation,
					Locator:  result.Blueprint.System.Name,
					Message:  fmt.Sprintf("Healing stagnated after %d attempts with no progress", attempt),
				})
				return result, failureError(attempt, &result.Violations)
			}
		}
		previousOps = ops

		if attempt+1 > maxAttempts {
			result.State = StateFailed
			return result, failureError(attempt, &result.Violations)
		}
	}
}

func (o Orchestrator) validate(ctx context.Context, result *Result) {
	violations, deltas := o.Structural.Validate(ctx, result.Blueprint)
	violations = append(violations, o.Compat.Check(ctx, result.Blueprint)...)
	result.Violations = violations
	result.RoleDeltas = deltas
}

func (o Orchestrator) succeed(ctx context.Context, result Result) Result {
	result.State = StateSucceeded
	log.Ctx(ctx).Info().
		Str("system", result.Blueprint.System.Name).
		Int("attempts", result.Attempts).
		Msg("blueprint validated")
	return result
}

// ValidateOnce runs the pre-loop passes and a single validation with no
// healing. The error carries the aggregated report when violations
// remain.
func (o Orchestrator) ValidateOnce(ctx context.Context, blueprint types.Blueprint) (Result, error) {
	if err := o.guard(); err != nil {
		return Result{}, err
	}
	result := Result{State: StateRunning, Blueprint: blueprint, Attempts: 1}

	if err := o.preLoop(ctx, &result); err != nil {
		return result, err
	}

	o.validate(ctx, &result)
	if len(result.Violations) > 0 {
		result.State = StateFailed
		return result, failureError(1, &result.Violations)
	}
	result.State = StateSucceeded
	return result, nil
}

// preLoop applies normalization and the unhealed schema-version check.
// A version mismatch is fatal and bypasses the loop entirely.
func (o Orchestrator) preLoop(ctx context.Context, result *Result) error {
	if err := o.Normalizer.Normalize(ctx, &result.Blueprint); err != nil {
		return err
	}
	if !schemaVersionSupported(result.Blueprint.SchemaVersion) {
		result.State = StateFailed
		result.Attempts = 1
		result.Violations = []types.Violation{schemaVersionViolation(result.Blueprint.SchemaVersion)}
		return failureError(1, &result.Violations)
	}
	return nil
}

func (o Orchestrator) guard() error {
	if o.Compat.Catalog == nil || o.Healer.Catalog == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("orchestrator requires a schema catalog")
	}
	return nil
}

func fatalViolations(violations []types.Violation) []types.Violation {
	var fatal []types.Violation
	for _, violation := range violations {
		if violation.Category.Fatal() {
			fatal = append(fatal, violation)
		}
	}
	return fatal
}

// failureError sorts the violation set and renders the aggregated
// operator-facing report. Both line formats are external contracts.
func failureError(attempts int, violations *[]types.Violation) error {
	types.SortViolations(*violations)
	lines := make([]string, 0, len(*violations)+1)
	lines = append(lines, fmt.Sprintf("System blueprint validation failed after %d attempts with %d errors",
		attempts, len(*violations)))
	for _, violation := range *violations {
		lines = append(lines, violation.LogLine())
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(strings.Join(lines, "\n"))
}
