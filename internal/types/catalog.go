package types

// SchemaDef declares one named schema and the schemas it is assignable
// to. The compatibility relation is directional: listing B under A means
// a producer of A may feed a consumer of B without a transformation.
type SchemaDef struct {
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description,omitempty"`
	CompatibleWith []string `yaml:"compatible_with,omitempty"`
}

// CatalogFile is the top-level structure of a schema catalog file.
// Catalog files are layered over the built-in catalog; later layers
// override earlier ones per schema name.
type CatalogFile struct {
	SchemaVersion string      `yaml:"schema_version"`
	Schemas       []SchemaDef `yaml:"schemas"`
}

// PortTemplate is the default port set applied to a component of a given
// type when the component declares no ports of its own.
type PortTemplate struct {
	Ports map[string]Port `yaml:"ports"`
}

// TemplateFile is the top-level structure of a port template file,
// layered over the built-in templates per component type.
type TemplateFile struct {
	SchemaVersion string                         `yaml:"schema_version"`
	Templates     map[ComponentType]PortTemplate `yaml:"templates"`
}
