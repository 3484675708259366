package core

import (
	"fmt"
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"

	"blueprint-engine/internal/types"
)

// DefaultSchemaVersion is inserted when a document omits schema_version.
// Defaulting happens once, before the healing loop; a declared but
// unsupported version is fatal and never healed.
const DefaultSchemaVersion = "1.0.0"

var supportedSchemaVersions = []string{"1.0.0"}

// SupportedSchemaVersions returns the engine's supported version set.
func SupportedSchemaVersions() []string {
	out := make([]string, len(supportedSchemaVersions))
	copy(out, supportedSchemaVersions)
	return out
}

// schemaVersionSupported parses the declared version as PEP 440 and
// compares it against the supported set, so "1.0" and "1.0.0" name the
// same member. Unparseable versions are unsupported.
func schemaVersionSupported(value string) bool {
	declared, err := pep440.Parse(strings.TrimSpace(value))
	if err != nil {
		return false
	}
	for _, supported := range supportedSchemaVersions {
		parsed, err := pep440.Parse(supported)
		if err != nil {
			continue
		}
		if declared.Equal(parsed) {
			return true
		}
	}
	return false
}

func schemaVersionViolation(value string) types.Violation {
	return types.Violation{
		Category: types.ViolationSchemaVersion,
		Locator:  "schema_version",
		Message: fmt.Sprintf("Unsupported schema version: %s (supported: %s)",
			value, strings.Join(supportedSchemaVersions, ", ")),
	}
}
