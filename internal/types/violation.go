package types

import (
	"fmt"
	"sort"
)

// ViolationCategory is the closed set of diagnostic categories the engine
// can report. The string values are an external contract: operators and
// downstream tooling match on them verbatim.
type ViolationCategory string

const (
	ViolationUnknownReference    ViolationCategory = "structural.unknown_reference"
	ViolationBindingMissing      ViolationCategory = "binding.missing"
	ViolationSchemaCompatibility ViolationCategory = "binding.schema_compatibility"
	ViolationSchemaVersion       ViolationCategory = "schema_version.unsupported"
	ViolationStagnation          ViolationCategory = "healing.stagnation_exceeded"
)

// Healable reports whether the healing transforms are allowed to attempt
// a repair for this category.
func (c ViolationCategory) Healable() bool {
	switch c {
	case ViolationBindingMissing, ViolationSchemaCompatibility:
		return true
	default:
		return false
	}
}

// Fatal reports whether the category short-circuits resolution with no
// healing round at all.
func (c ViolationCategory) Fatal() bool {
	switch c {
	case ViolationUnknownReference, ViolationSchemaVersion:
		return true
	default:
		return false
	}
}

// Violation is one diagnostic finding: a stable (category, locator,
// message) triple.
type Violation struct {
	Category ViolationCategory
	Locator  string
	Message  string
}

// LogLine renders the violation in the operator-facing report format.
// This is the single source of the "  {category}: {message}" contract.
func (v Violation) LogLine() string {
	return fmt.Sprintf("  %s: %s", v.Category, v.Message)
}

// SortViolations orders a violation set deterministically: by category,
// then locator, then message.
func SortViolations(violations []Violation) {
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].Category != violations[j].Category {
			return violations[i].Category < violations[j].Category
		}
		if violations[i].Locator != violations[j].Locator {
			return violations[i].Locator < violations[j].Locator
		}
		return violations[i].Message < violations[j].Message
	})
}

// RoleDelta records a mismatch between a component's declared role and
// the role inferred from its port topology. It is informational only and
// never blocks validation.
type RoleDelta struct {
	Component string
	Declared  Role
	Effective Role
}

func (d RoleDelta) String() string {
	return fmt.Sprintf("component %s declared %s but is effectively %s", d.Component, d.Declared, d.Effective)
}
