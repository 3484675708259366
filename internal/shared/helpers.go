// Package shared provides common utility functions used across multiple
// packages in the blueprint-engine codebase.
package shared

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"
)

// ReadYAMLFile loads a YAML document into out, mapping read failures to
// CodeNotFound and parse failures to CodeInvalidArgument.
func ReadYAMLFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read file: " + path).
			WithCause(err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse yaml: " + path).
			WithCause(err)
	}
	return nil
}
