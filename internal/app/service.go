package app

import (
	"blueprint-engine/internal/adapters"
	"blueprint-engine/internal/catalog"
	"blueprint-engine/internal/ports"
)

type Service struct {
	Blueprints ports.BlueprintSourcePort
	Writer     ports.BlueprintWriterPort
	Catalogs   adapters.CatalogFileAdapter
}

func NewService() Service {
	blueprints := adapters.NewBlueprintFileAdapter()
	return Service{
		Blueprints: blueprints,
		Writer:     blueprints,
		Catalogs:   adapters.NewCatalogFileAdapter(),
	}
}

// buildCatalogs assembles the per-invocation catalogs: the built-in
// layer plus optional file layers. Each resolution gets private copies
// so concurrent invocations share nothing mutable.
func (s Service) buildCatalogs(catalogPath, templatesPath string) (*catalog.SchemaCatalog, *catalog.TemplateCatalog, error) {
	schemas := catalog.NewSchemaCatalog()
	if catalogPath != "" {
		if err := s.Catalogs.LoadSchemaCatalog(schemas, catalogPath); err != nil {
			return nil, nil, err
		}
	}
	templates := catalog.NewTemplateCatalog()
	if templatesPath != "" {
		if err := s.Catalogs.LoadTemplates(templates, templatesPath); err != nil {
			return nil, nil, err
		}
	}
	return schemas, templates, nil
}
