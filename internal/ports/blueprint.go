package ports

import "blueprint-engine/internal/types"

type BlueprintSourcePort interface {
	Load(path string) (types.Blueprint, error)
}

type BlueprintWriterPort interface {
	Write(path string, blueprint types.Blueprint) error
}
