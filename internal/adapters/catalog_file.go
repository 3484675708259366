package adapters

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"blueprint-engine/internal/catalog"
	"blueprint-engine/internal/shared"
	"blueprint-engine/internal/types"
)

// CatalogFileAdapter merges schema catalog and port template files over
// the built-in layers. Later loads override earlier ones per key.
type CatalogFileAdapter struct{}

func NewCatalogFileAdapter() CatalogFileAdapter {
	return CatalogFileAdapter{}
}

// LoadSchemaCatalog reads a catalog file and registers its schemas.
func (a CatalogFileAdapter) LoadSchemaCatalog(target *catalog.SchemaCatalog, path string) error {
	var file types.CatalogFile
	if err := shared.ReadYAMLFile(path, &file); err != nil {
		return err
	}
	if file.SchemaVersion == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("catalog file missing schema_version: " + path)
	}
	for _, def := range file.Schemas {
		if strings.TrimSpace(def.Name) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("catalog file has schema with empty name: " + path)
		}
		if target.Known(def.Name) {
			log.Debug().
				Str("schema", def.Name).
				Str("layer", path).
				Msg("schema overridden by later layer")
		}
		target.Register(def)
	}
	log.Debug().Str("path", path).Int("schemas", len(file.Schemas)).Msg("schema catalog layer loaded")
	return nil
}

// LoadTemplates reads a template file and registers its port templates.
func (a CatalogFileAdapter) LoadTemplates(target *catalog.TemplateCatalog, path string) error {
	var file types.TemplateFile
	if err := shared.ReadYAMLFile(path, &file); err != nil {
		return err
	}
	if file.SchemaVersion == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("template file missing schema_version: " + path)
	}
	for componentType, template := range file.Templates {
		if len(template.Ports) == 0 {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("template for type '" + string(componentType) + "' has no ports in " + path)
		}
		target.Register(componentType, template)
	}
	log.Debug().Str("path", path).Int("templates", len(file.Templates)).Msg("template layer loaded")
	return nil
}
