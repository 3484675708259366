package app

import "blueprint-engine/internal/types"

type ValidateRequest struct {
	BlueprintPath string
	CatalogPath   string
	TemplatesPath string
}

type ValidateResult struct {
	SystemName string
	RoleDeltas []types.RoleDelta
}

type ResolveRequest struct {
	BlueprintPath string
	OutputPath    string
	CatalogPath   string
	TemplatesPath string
	MaxAttempts   int
}

type ResolveResult struct {
	SystemName string
	OutputPath string
	Attempts   int
	Operations int
	Rounds     []types.HealingRound
	RoleDeltas []types.RoleDelta
}
