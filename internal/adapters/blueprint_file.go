package adapters

import (
	"bytes"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"blueprint-engine/internal/shared"
	"blueprint-engine/internal/types"
)

// BlueprintFileAdapter loads and writes blueprint documents as YAML.
// Writing goes through the form-preserving binding marshaler, so a
// document that needed no structural change serializes back in the
// shape it was written in.
type BlueprintFileAdapter struct{}

func NewBlueprintFileAdapter() BlueprintFileAdapter {
	return BlueprintFileAdapter{}
}

func (a BlueprintFileAdapter) Load(path string) (types.Blueprint, error) {
	var blueprint types.Blueprint
	if err := shared.ReadYAMLFile(path, &blueprint); err != nil {
		return types.Blueprint{}, err
	}
	if blueprint.System.Name == "" {
		return types.Blueprint{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("blueprint has no system name: " + path)
	}
	return blueprint, nil
}

func (a BlueprintFileAdapter) Write(path string, blueprint types.Blueprint) error {
	data, err := MarshalBlueprint(blueprint)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write blueprint: " + path).
			WithCause(err)
	}
	return nil
}

// MarshalBlueprint renders a blueprint with the encoder settings used
// everywhere in the engine, so byte-level comparisons are stable.
func MarshalBlueprint(blueprint types.Blueprint) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(blueprint); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal blueprint").
			WithCause(err)
	}
	if err := encoder.Close(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal blueprint").
			WithCause(err)
	}
	return buf.Bytes(), nil
}
