package core

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"blueprint-engine/internal/types"
)

// Scenario: missing binding plus schema mismatch between two components
// must converge in the first attempt, with the mismatch on the freshly
// inferred binding repaired in the same round.
func TestResolveHealsMissingBindingAndMismatchInOneAttempt(t *testing.T) {
	orchestrator := testOrchestrator()

	result, err := orchestrator.Resolve(t.Context(), scenarioBlueprint())
	require.NoError(t, err)
	require.Equal(t, StateSucceeded, result.State)
	require.Equal(t, 1, result.Attempts)
	require.Len(t, result.Rounds, 1)

	round := result.Rounds[0]
	var details []string
	for _, op := range round.Operations {
		details = append(details, op.Detail)
	}
	require.Contains(t, details, "Generated binding: event_source.output → event_store.input")
	require.Contains(t, details,
		"Added transformation convert_common_object_schema_to_ItemSchema: event_source.output → event_store.input")
	require.Contains(t, details, "Added missing policy block")

	require.Len(t, result.Blueprint.System.Bindings, 1)
	binding := result.Blueprint.System.Bindings[0]
	require.Equal(t, "convert_common_object_schema_to_ItemSchema", binding.Transformation)
	require.True(t, binding.Compact())
	require.NotNil(t, result.Blueprint.Policy)
}

// Scenario: a binding naming a non-existent component fails on attempt 1
// with zero healing rounds.
func TestResolveUnknownReferenceFailsWithoutHealing(t *testing.T) {
	orchestrator := testOrchestrator()
	blueprint := boundBlueprint()
	blueprint.System.Bindings = append(blueprint.System.Bindings, types.NewBinding(
		types.Endpoint{Component: "event_source", Port: "output"},
		types.Endpoint{Component: "ghost", Port: "input"},
	))

	result, err := orchestrator.Resolve(t.Context(), blueprint)
	require.Error(t, err)
	require.Equal(t, StateFailed, result.State)
	require.Equal(t, 1, result.Attempts)
	require.Empty(t, result.Rounds)
	require.Contains(t, categories(result.Violations), types.ViolationUnknownReference)
	require.Contains(t, err.Error(), "System blueprint validation failed after 1 attempts with")
	require.Contains(t, err.Error(), "  structural.unknown_reference: Unknown component in binding: ghost")
}

// Scenario: a component declared SINK with a bound output port validates
// with only an informational role delta, never a hard violation.
func TestResolveRoleDeltaIsInformational(t *testing.T) {
	orchestrator := testOrchestrator()
	blueprint := boundBlueprint()
	blueprint.System.Components[0].Role = types.RoleSink

	result, err := orchestrator.Resolve(t.Context(), blueprint)
	require.NoError(t, err)
	require.Equal(t, StateSucceeded, result.State)
	require.Len(t, result.RoleDeltas, 1)
	delta := result.RoleDeltas[0]
	require.Equal(t, "event_source", delta.Component)
	require.Equal(t, types.RoleSink, delta.Declared)
	require.Equal(t, types.RoleSource, delta.Effective)
}

// Scenario: an unsupported schema version fails before any healing round.
func TestResolveUnsupportedSchemaVersion(t *testing.T) {
	orchestrator := testOrchestrator()
	blueprint := scenarioBlueprint()
	blueprint.SchemaVersion = "0.9.0"

	result, err := orchestrator.Resolve(t.Context(), blueprint)
	require.Error(t, err)
	require.Equal(t, StateFailed, result.State)
	require.Empty(t, result.Rounds)
	require.Equal(t, []types.ViolationCategory{types.ViolationSchemaVersion}, categories(result.Violations))
	require.Contains(t, err.Error(), "Unsupported schema version: 0.9.0")
}

func TestResolveSchemaVersionDefaultsPreLoop(t *testing.T) {
	orchestrator := testOrchestrator()
	blueprint := boundBlueprint()
	blueprint.SchemaVersion = ""

	result, err := orchestrator.Resolve(t.Context(), blueprint)
	require.NoError(t, err)
	require.Equal(t, "1.0.0", result.Blueprint.SchemaVersion)
}

func TestResolveSchemaVersionAliasesAccepted(t *testing.T) {
	orchestrator := testOrchestrator()
	blueprint := boundBlueprint()
	blueprint.SchemaVersion = "1.0"

	result, err := orchestrator.Resolve(t.Context(), blueprint)
	require.NoError(t, err)
	require.Equal(t, StateSucceeded, result.State)
}

// Re-resolving an already healed document must be a no-op: zero
// operations and an unchanged document.
func TestResolveIdempotentOnHealedBlueprint(t *testing.T) {
	orchestrator := testOrchestrator()

	first, err := orchestrator.Resolve(t.Context(), scenarioBlueprint())
	require.NoError(t, err)

	second, err := orchestrator.Resolve(t.Context(), first.Blueprint)
	require.NoError(t, err)
	require.Equal(t, StateSucceeded, second.State)
	require.Empty(t, second.Rounds)
	if diff := cmp.Diff(first.Blueprint, second.Blueprint, cmp.AllowUnexported(types.Binding{})); diff != "" {
		t.Fatalf("healed blueprint changed on re-resolution (-first +second):\n%s", diff)
	}
}

// An unbound required input with no producer to pair it with cannot be
// healed; the loop must abort via stagnation before the attempt budget.
func TestResolveStagnationAbortsEarly(t *testing.T) {
	orchestrator := testOrchestrator()
	orchestrator.MaxAttempts = 10
	blueprint := boundBlueprint()
	blueprint.System.Components = append(blueprint.System.Components, types.Component{
		Name: "orphan_store",
		Type: types.ComponentTypeStore,
		Ports: map[string]types.Port{
			"input": {Direction: types.PortDirectionIn, Schema: "ItemSchema"},
		},
	})

	result, err := orchestrator.Resolve(t.Context(), blueprint)
	require.Error(t, err)
	require.Equal(t, StateFailed, result.State)
	require.Equal(t, 3, result.Attempts)
	require.Contains(t, categories(result.Violations), types.ViolationBindingMissing)
	require.Contains(t, categories(result.Violations), types.ViolationStagnation)
	require.Contains(t, err.Error(), "healing.stagnation_exceeded")
}

func TestResolveAttemptBudgetExhaustion(t *testing.T) {
	orchestrator := testOrchestrator()
	orchestrator.MaxAttempts = 1
	blueprint := boundBlueprint()
	blueprint.System.Components = append(blueprint.System.Components, types.Component{
		Name: "orphan_store",
		Type: types.ComponentTypeStore,
		Ports: map[string]types.Port{
			"input": {Direction: types.PortDirectionIn, Schema: "ItemSchema"},
		},
	})

	result, err := orchestrator.Resolve(t.Context(), blueprint)
	require.Error(t, err)
	require.Equal(t, StateFailed, result.State)
	require.Equal(t, 1, result.Attempts)
	require.Contains(t, err.Error(), "System blueprint validation failed after 1 attempts with")
}

// Failure reports carry the complete violation set, one line per
// violation, deterministically sorted.
func TestFailureReportIsCompleteAndSorted(t *testing.T) {
	orchestrator := testOrchestrator()
	orchestrator.MaxAttempts = 10
	blueprint := boundBlueprint()
	blueprint.System.Components = append(blueprint.System.Components,
		types.Component{
			Name: "orphan_store_b",
			Type: types.ComponentTypeStore,
			Ports: map[string]types.Port{
				"input": {Direction: types.PortDirectionIn, Schema: "ItemSchema"},
			},
		},
		types.Component{
			Name: "orphan_store_a",
			Type: types.ComponentTypeStore,
			Ports: map[string]types.Port{
				"input": {Direction: types.PortDirectionIn, Schema: "ItemSchema"},
			},
		},
	)

	_, err := orchestrator.Resolve(t.Context(), blueprint)
	require.Error(t, err)
	lines := strings.Split(err.Error(), "\n")
	require.True(t, strings.HasPrefix(lines[0], "System blueprint validation failed after "))
	for _, line := range lines[1:] {
		require.True(t, strings.HasPrefix(line, "  "), "violation line %q must be indented", line)
	}
	aIdx := strings.Index(err.Error(), "orphan_store_a.input")
	bIdx := strings.Index(err.Error(), "orphan_store_b.input")
	require.Greater(t, aIdx, 0)
	require.Greater(t, bIdx, aIdx)
}

func TestValidateOnceReportsWithoutHealing(t *testing.T) {
	orchestrator := testOrchestrator()

	result, err := orchestrator.ValidateOnce(t.Context(), scenarioBlueprint())
	require.Error(t, err)
	require.Equal(t, StateFailed, result.State)
	require.Empty(t, result.Rounds)
	require.Contains(t, categories(result.Violations), types.ViolationBindingMissing)

	result, err = orchestrator.ValidateOnce(t.Context(), boundBlueprint())
	require.NoError(t, err)
	require.Equal(t, StateSucceeded, result.State)
}

func TestResolveWithoutCatalogIsRejected(t *testing.T) {
	var orchestrator Orchestrator
	_, err := orchestrator.Resolve(t.Context(), boundBlueprint())
	require.Error(t, err)
	require.Contains(t, err.Error(), "schema catalog")
}
