package types

import (
	"fmt"
	"strings"
)

type OperationKind string

const (
	OperationBindingGenerated     OperationKind = "binding_generated"
	OperationTransformationAdded  OperationKind = "transformation_added"
	OperationSchemaRelaxed        OperationKind = "schema_relaxed"
	OperationPolicyBlockInserted  OperationKind = "policy_block_inserted"
	OperationSchemaVersionDefault OperationKind = "schema_version_defaulted"
)

// Operation is one repair applied by a healing transform. Detail is the
// exact diagnostic line emitted for it.
type Operation struct {
	Kind   OperationKind
	Detail string
}

// HealingRound captures the diagnostic output of one healing pass: the
// start marker, the component count, one line per operation, and the
// summary line, in that order. Tests assert the contract on this record
// rather than scraping log output.
type HealingRound struct {
	Attempt        int
	ComponentCount int
	Operations     []Operation
}

func (r HealingRound) StartMarker() string {
	return "Starting system blueprint healing"
}

func (r HealingRound) ComponentCountLine() string {
	return fmt.Sprintf("Healing blueprint with %d components", r.ComponentCount)
}

// SummaryLine renders the round summary. The two possible shapes are an
// external contract consumed by operators reading logs.
func (r HealingRound) SummaryLine() string {
	if len(r.Operations) == 0 {
		return "Blueprint healing completed - no issues found"
	}
	return fmt.Sprintf("Blueprint healing completed with %d operations: %s",
		len(r.Operations), strings.Join(r.summary(), ", "))
}

// Lines returns the full ordered diagnostic output of the round.
func (r HealingRound) Lines() []string {
	lines := []string{r.StartMarker(), r.ComponentCountLine()}
	for _, op := range r.Operations {
		lines = append(lines, op.Detail)
	}
	return append(lines, r.SummaryLine())
}

func (r HealingRound) summary() []string {
	counts := map[OperationKind]int{}
	for _, op := range r.Operations {
		counts[op.Kind]++
	}
	var parts []string
	appendCount := func(kind OperationKind, singular, plural string) {
		n := counts[kind]
		switch {
		case n == 1:
			parts = append(parts, fmt.Sprintf("1 %s", singular))
		case n > 1:
			parts = append(parts, fmt.Sprintf("%d %s", n, plural))
		}
	}
	appendCount(OperationBindingGenerated, "binding generated", "bindings generated")
	appendCount(OperationTransformationAdded, "transformation added", "transformations added")
	appendCount(OperationSchemaRelaxed, "schema relaxed", "schemas relaxed")
	appendCount(OperationPolicyBlockInserted, "policy block added", "policy blocks added")
	appendCount(OperationSchemaVersionDefault, "schema version defaulted", "schema versions defaulted")
	return parts
}
